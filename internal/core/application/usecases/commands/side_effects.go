package commands

import (
	"context"
	"log/slog"

	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/model/review"
	"shop/internal/core/ports"
)

// restoreInventory gives every line item's units back to stock. It must run
// inside the same transaction as the status change into cancelled, and is
// guarded twice: by the row lock the caller holds on the order, and by the
// order's restored flag, so repeated cancellation attempts never double-restore.
func restoreInventory(ctx context.Context, products ports.ProductRepository, ord *order.Order) error {
	if !ord.NeedsInventoryRestore() {
		return nil
	}

	for _, item := range ord.Items() {
		if err := products.Release(ctx, item.ProductID(), item.Quantity()); err != nil {
			return err
		}
	}

	ord.MarkInventoryRestored()
	return nil
}

// dispatchReviewTasks creates one pending review task per line item of a
// completed order. Runs after the transition committed; it is best effort and
// never rolls the completion back. Duplicate completion signals are absorbed
// by the repository's insert-if-absent write.
func dispatchReviewTasks(ctx context.Context, tasks ports.ReviewTaskRepository, ord *order.Order, logger *slog.Logger) {
	for _, item := range ord.Items() {
		task, err := review.NewPendingTask(ord.CustomerID(), item.ProductID(), ord.ID())
		if err != nil {
			logger.ErrorContext(ctx, "Failed to build review task",
				"order", ord.ID().String(), "product", item.ProductID().String(), "error", err)
			continue
		}

		if err := tasks.AddIfAbsent(ctx, task); err != nil {
			logger.ErrorContext(ctx, "Failed to create review task",
				"order", ord.ID().String(), "product", item.ProductID().String(), "error", err)
		}
	}
}

// notifyStatusChanged publishes the order's latest ledger entry. Broker
// failures are logged and swallowed; the transition already committed.
func notifyStatusChanged(ctx context.Context, notifier ports.OrderNotifier, ord *order.Order, logger *slog.Logger) {
	if notifier == nil {
		return
	}

	history := ord.History()
	last := history[len(history)-1]

	event := ports.OrderStatusChanged{
		OrderID:    ord.ID().String(),
		Code:       ord.Code(),
		CustomerID: ord.CustomerID().String(),
		Status:     last.Status().String(),
		Note:       last.Note(),
		Actor:      last.Actor().String(),
		ChangedAt:  last.At(),
	}

	if err := notifier.PublishStatusChanged(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish order status change",
			"order", ord.ID().String(), "status", event.Status, "error", err)
	}
}
