package commands

import (
	"context"
	"log/slog"
	"time"

	"shop/internal/core/domain/model/order"
	"shop/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order placement.
//
// Placement verifies the delivery address, atomically reserves stock for
// every line item (the whole batch aborts on the first shortage, so no
// partial decrement ever survives), snapshots the catalog unit prices onto
// the order, and persists the aggregate with its opening ledger entry,
// all inside one transaction.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.OrderNotifier
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// The notifier may be nil; status events are then skipped.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, notifier ports.OrderNotifier, logger *slog.Logger) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "create_order"),
	}
}

// Handle processes the order placement command and returns the created order.
//
// Errors: errs.ErrObjectNotFound for a missing address or product,
// product.ErrInsufficientStock when any item cannot be covered. In both
// cases nothing is persisted.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	if err := uow.AddressRepository().Exists(ctx, cmd.AddressID(), cmd.CustomerID()); err != nil {
		return nil, err
	}

	products := uow.ProductRepository()
	items := make([]order.LineItem, 0, len(cmd.Items()))
	for _, requested := range cmd.Items() {
		prod, err := products.Get(ctx, requested.ProductID)
		if err != nil {
			return nil, err
		}

		if err = products.Reserve(ctx, requested.ProductID, requested.Quantity); err != nil {
			return nil, err
		}

		// Price is frozen at decrement time; later catalog edits
		// never touch this order.
		item, err := order.NewLineItem(requested.ProductID, requested.Quantity, prod.Price())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	ord, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), cmd.AddressID(), items, cmd.ShippingFee(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, ord); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notifyStatusChanged(ctx, h.notifier, ord, h.logger)

	return ord, nil
}
