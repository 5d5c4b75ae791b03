package commands

import (
	"context"
	"log/slog"
	"time"

	"shop/internal/core/domain/model/order"
	"shop/internal/core/ports"
)

// ChangeOrderStatusCommandHandler is the single mutation entrypoint for order
// status. It loads the order under a row lock, runs the transition validator,
// applies the side effect bound to the destination status, appends the ledger
// entry, and commits, all indivisibly with respect to other concurrent
// changes on the same order.
//
// Side effects by destination:
//   - cancelled: inventory restore, in the same transaction, exactly once
//   - completed: review-task fan-out, after commit, best effort
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, notifier, logger)
//	cmd, _ := commands.NewChangeOrderStatusCommand(orderID, order.Shipping, "picked up", order.ActorAdmin)
//	ord, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // rejected by the rule table; nothing changed
//	case errors.Is(err, order.ErrTerminalState):
//	    // completed/cancelled orders never move again
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.OrderNotifier
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates the status mutation handler.
// The notifier may be nil; status events are then skipped.
func NewChangeOrderStatusCommandHandler(uowFactory UoWFactory, notifier ports.OrderNotifier, logger *slog.Logger) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "change_order_status"),
	}
}

// Handle processes the status change and returns the updated order.
// On any rejection the transaction rolls back whole: ledger and inventory
// are never partially applied.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
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
	if cmd.Status() == order.Cancelled {
		err = ord.Cancel(cmd.Note(), cmd.Actor(), now)
	} else {
		err = ord.ChangeStatus(cmd.Status(), cmd.Note(), cmd.Actor(), now)
	}
	if err != nil {
		return nil, err
	}

	if err = restoreInventory(ctx, uow.ProductRepository(), ord); err != nil {
		return nil, err
	}

	if err = orders.Update(ctx, ord); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if ord.Status() == order.Completed {
		dispatchReviewTasks(ctx, uow.ReviewTaskRepository(), ord, h.logger)
	}
	notifyStatusChanged(ctx, h.notifier, ord, h.logger)

	return ord, nil
}
