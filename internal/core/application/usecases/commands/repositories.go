// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// side effects bound to the destination status, and persistence.
package commands

import (
	"context"

	"shop/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProductRepoFactory provides access to the inventory repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// ReviewTaskRepoFactory provides access to the review task repository within a transaction.
	ReviewTaskRepoFactory interface {
		ReviewTaskRepository() ports.ReviewTaskRepository
	}

	// AddressRepoFactory provides access to the address book within a transaction.
	AddressRepoFactory interface {
		AddressRepository() ports.AddressRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used by the auto-progression sweep, which never touches inventory.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions across the order, inventory, review task, and
	// address book repositories. Used by commands whose side effects span
	// aggregates: creation (stock decrement) and cancellation (stock restore).
	UoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		ReviewTaskRepoFactory
		AddressRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
