package commands

import (
	"context"
	"log/slog"
	"time"

	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/services"
	"shop/internal/core/ports"
	"shop/internal/pkg/errs"
)

// CancelOrderCommandHandler handles customer-initiated cancellation. The
// cancellation policy routes the request: inside the grace window the order
// is cancelled directly and its stock restored; outside it (or once
// preparation started) the order is parked in cancel_requested for an admin
// decision, with no inventory effect yet.
//
// Both this handler and the admin resolution run through the same aggregate
// mutation path, so the two flows cannot drift apart.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.CancellationPolicy
	notifier   ports.OrderNotifier
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for customer cancellations.
// The notifier may be nil; status events are then skipped.
func NewCancelOrderCommandHandler(uowFactory UoWFactory, notifier ports.OrderNotifier, logger *slog.Logger) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewCancellationPolicy(),
		notifier:   notifier,
		logger:     logger.With("component", "cancel_order"),
	}
}

// Handle processes the cancellation and returns the order in its resulting
// status (cancelled or cancel_requested).
//
// Errors: services.ErrAlreadyTerminal for completed/cancelled orders,
// services.ErrCannotCancelAtThisStage while shipping or when a request is
// already pending, errs.ErrObjectNotFound when the order does not exist or
// belongs to a different customer.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	ord, err := orders.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	// Orders of other customers are reported as missing, not as forbidden.
	if !ord.CustomerID().IsEqual(cmd.CustomerID()) {
		return nil, errs.NewObjectNotFoundError("order", cmd.OrderID().String())
	}

	now := time.Now()
	route, err := h.policy.Route(ord, now)
	if err != nil {
		return nil, err
	}

	switch route {
	case services.CancelRouteDirect:
		if err = ord.Cancel(cmd.Reason(), order.ActorCustomer, now); err != nil {
			return nil, err
		}
		if err = restoreInventory(ctx, uow.ProductRepository(), ord); err != nil {
			return nil, err
		}
	case services.CancelRouteReview:
		if err = ord.RequestCancellation(cmd.CustomerID(), cmd.Reason(), now); err != nil {
			return nil, err
		}
	default:
		return nil, services.ErrCannotCancelAtThisStage
	}

	if err = orders.Update(ctx, ord); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notifyStatusChanged(ctx, h.notifier, ord, h.logger)

	return ord, nil
}
