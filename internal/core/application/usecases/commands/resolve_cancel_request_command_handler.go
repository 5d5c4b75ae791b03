package commands

import (
	"context"
	"log/slog"
	"time"

	"shop/internal/core/domain/model/order"
	"shop/internal/core/ports"
)

// ResolveCancelRequestCommandHandler handles the admin decision on a pending
// cancellation request. Approval cancels the order and restores its stock in
// the same transaction; rejection puts the order back into preparing and the
// forward flow resumes.
//
// Resolving an order that is not in cancel_requested fails with
// order.ErrNoActiveCancelRequest, so approving twice is rejected the
// second time and can never double-restore stock.
type ResolveCancelRequestCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.OrderNotifier
	logger     *slog.Logger
}

// NewResolveCancelRequestCommandHandler creates a handler for admin
// cancellation decisions. The notifier may be nil; status events are then skipped.
func NewResolveCancelRequestCommandHandler(uowFactory UoWFactory, notifier ports.OrderNotifier, logger *slog.Logger) ResolveCancelRequestCommandHandler {
	return ResolveCancelRequestCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "resolve_cancel_request"),
	}
}

// Handle processes the resolution and returns the order in its resulting
// status (cancelled on approval, preparing on rejection).
func (h ResolveCancelRequestCommandHandler) Handle(ctx context.Context, cmd ResolveCancelRequestCommand) (*order.Order, error) {
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

	now := time.Now()
	switch cmd.Resolution() {
	case ResolutionApprove:
		if err = ord.ApproveCancellation(cmd.AdminID(), now); err != nil {
			return nil, err
		}
		if err = restoreInventory(ctx, uow.ProductRepository(), ord); err != nil {
			return nil, err
		}
	case ResolutionReject:
		if err = ord.RejectCancellation(cmd.AdminID(), cmd.RejectionReason(), now); err != nil {
			return nil, err
		}
	default:
		return nil, cmd.Resolution().Validate()
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
