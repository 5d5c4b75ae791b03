package services

import (
	"errors"
	"time"

	"shop/internal/core/domain/model/order"
)

var (
	// ErrAlreadyTerminal is returned when a customer tries to cancel an order
	// that already reached completed or cancelled.
	ErrAlreadyTerminal = errors.New("order is already in a terminal state")

	// ErrCannotCancelAtThisStage is returned when an order is shipping, or a
	// cancellation request is already pending.
	ErrCannotCancelAtThisStage = errors.New("order cannot be cancelled at this stage")
)

// CancelRoute is the outcome of the grace-window decision.
type CancelRoute int

const (
	// CancelRouteUnknown represents an undecided route.
	CancelRouteUnknown CancelRoute = iota

	// CancelRouteDirect cancels immediately: the order is still new or
	// confirmed and the grace window has not passed.
	CancelRouteDirect

	// CancelRouteReview parks the order in cancel_requested for an admin
	// decision: fulfillment started, or the grace window has passed.
	CancelRouteReview
)

// CancellationPolicy is the domain service that decides how a customer
// cancellation is handled. It is the single place where the grace window and
// the per-status cancellation rules live, so the customer-facing and
// admin-facing flows cannot drift apart.
//
// Decision table:
//
//	completed, cancelled        -> ErrAlreadyTerminal
//	shipping, cancel_requested  -> ErrCannotCancelAtThisStage
//	preparing                   -> review
//	new, confirmed, in window   -> direct   (now == deadline still counts)
//	new, confirmed, past window -> review
//
// Example:
//
//	policy := services.NewCancellationPolicy()
//	route, err := policy.Route(ord, time.Now())
//	switch {
//	case errors.Is(err, services.ErrAlreadyTerminal):
//	    // nothing to cancel
//	case errors.Is(err, services.ErrCannotCancelAtThisStage):
//	    // shipping or already under review
//	case route == services.CancelRouteDirect:
//	    // cancel now, restore stock
//	case route == services.CancelRouteReview:
//	    // park in cancel_requested
//	}
type CancellationPolicy struct{}

// NewCancellationPolicy creates a new CancellationPolicy instance.
func NewCancellationPolicy() CancellationPolicy {
	return CancellationPolicy{}
}

// Route decides how a cancellation at the given wall-clock time is handled.
// The grace-window comparison is inclusive: a cancellation exactly at the
// deadline still goes the direct route.
func (CancellationPolicy) Route(o *order.Order, now time.Time) (CancelRoute, error) {
	if err := o.Validate(); err != nil {
		return CancelRouteUnknown, err
	}

	switch o.Status() {
	case order.Completed, order.Cancelled:
		return CancelRouteUnknown, ErrAlreadyTerminal
	case order.Shipping, order.CancelRequested:
		return CancelRouteUnknown, ErrCannotCancelAtThisStage
	case order.Preparing:
		return CancelRouteReview, nil
	case order.New, order.Confirmed:
		if now.After(o.CancelDeadline()) {
			return CancelRouteReview, nil
		}
		return CancelRouteDirect, nil
	default:
		return CancelRouteUnknown, o.Status().Validate()
	}
}
