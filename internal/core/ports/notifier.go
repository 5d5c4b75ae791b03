package ports

import (
	"context"
	"time"
)

// OrderStatusChanged is the fire-and-forget event emitted after a status
// transition commits. Consumers (notification service, analytics) pick it up
// from the broker; delivery failures never roll back the transition.
type OrderStatusChanged struct {
	OrderID    string    `json:"order_id"`
	Code       string    `json:"code"`
	CustomerID string    `json:"customer_id"`
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
	Actor      string    `json:"actor"`
	ChangedAt  time.Time `json:"changed_at"`
}

// OrderNotifier publishes order lifecycle events to the outside world.
type OrderNotifier interface {
	// PublishStatusChanged emits one status-change event. Errors are the
	// caller's to log and swallow; they must never abort a committed change.
	PublishStatusChanged(ctx context.Context, event OrderStatusChanged) error
}
