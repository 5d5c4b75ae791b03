package ports

import (
	"context"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including the append-only status ledger rows.
type OrderRepository interface {
	// Add persists a new order aggregate with its line items and first
	// ledger entry.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate and appends any
	// new ledger entries. Returns errs.ErrObjectNotFound when the order row
	// is gone.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order while taking a row-level lock. It must
	// only be called inside a unit-of-work transaction; the lock is what
	// serializes concurrent status changes on the same order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetNewBefore lists identifiers of orders still in new status whose
	// direct-cancellation deadline passed before the cutoff. Used by the
	// auto-progression sweep to pick candidates; each candidate is re-read
	// under GetForUpdate before being advanced.
	GetNewBefore(ctx context.Context, cutoff time.Time) ([]kernel.UUID, error)

	// GetAllInCancelRequestedStatus retrieves all orders waiting for an admin
	// cancellation decision.
	GetAllInCancelRequestedStatus(ctx context.Context) ([]*order.Order, error)
}
