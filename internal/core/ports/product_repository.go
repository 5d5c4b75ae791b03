package ports

import (
	"context"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for inventory records.
//
// Reserve and Release are single atomic statements on the product row
// (guarded update), not read-modify-write cycles, so two orders touching the
// same product concurrently can never lose an update.
type ProductRepository interface {
	// Add persists a new inventory record.
	Add(ctx context.Context, aggregate *product.Product) error

	// Get retrieves an inventory record by product identifier.
	// Used at order creation to snapshot the unit price.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// Reserve atomically moves qty units from stock to sold, failing with
	// product.InsufficientStockError when fewer than qty units are sellable.
	Reserve(ctx context.Context, id kernel.UUID, qty int) error

	// Release atomically moves qty units back from sold to stock, flooring
	// the sold counter at zero.
	Release(ctx context.Context, id kernel.UUID, qty int) error
}
