package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/ports"
	"shop/internal/pkg/errs"
)

// AutoProgressOrdersCommandHandler runs the scheduled sweep that
// time-advances stale orders: a new order whose confirmation window passed
// with no manual action is confirmed on behalf of actor system.
//
// The sweep is idempotent. Candidates are selected first, then each is
// re-read under a row lock in its own transaction and re-checked; an order
// another actor already moved is skipped silently. Per-order failures are
// logged and never abort the rest of the sweep.
type AutoProgressOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
	logger     *slog.Logger
}

// NewAutoProgressOrdersCommandHandler creates the sweep handler.
// The notifier may be nil; status events are then skipped.
func NewAutoProgressOrdersCommandHandler(uowFactory OrderUoWFactory, notifier ports.OrderNotifier, logger *slog.Logger) AutoProgressOrdersCommandHandler {
	return AutoProgressOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "auto_progress_orders"),
	}
}

// Handle runs one sweep and returns how many orders were advanced.
func (h AutoProgressOrdersCommandHandler) Handle(ctx context.Context, cmd AutoProgressOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now()

	// Candidate selection runs outside any transaction; every candidate is
	// re-validated under lock before being touched.
	candidates, err := h.uowFactory.Create().OrderRepository().GetNewBefore(ctx, now)
	if err != nil {
		return 0, err
	}

	advanced := 0
	for _, id := range candidates {
		moved, advanceErr := h.advance(ctx, id, now)
		if advanceErr != nil {
			h.logger.ErrorContext(ctx, "Auto-progression failed for order",
				"order", id.String(), "error", advanceErr)
			continue
		}
		if moved {
			advanced++
		}
	}

	return advanced, nil
}

// advance confirms a single stale order in its own transaction.
// Returns false without error when the order no longer qualifies.
func (h AutoProgressOrdersCommandHandler) advance(ctx context.Context, id kernel.UUID, now time.Time) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	ord, err := orders.GetForUpdate(ctx, id)
	if err != nil {
		// Deleted between selection and lock: no longer a candidate.
		if errors.Is(err, errs.ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}

	// Re-check under lock: another actor may have advanced or cancelled the
	// order since candidate selection.
	if ord.Status() != order.New || !now.After(ord.CancelDeadline()) {
		return false, nil
	}

	if err = ord.ChangeStatus(order.Confirmed, "auto-confirmed after inactivity", order.ActorSystem, now); err != nil {
		return false, err
	}

	if err = orders.Update(ctx, ord); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	notifyStatusChanged(ctx, h.notifier, ord, h.logger)

	return true, nil
}
