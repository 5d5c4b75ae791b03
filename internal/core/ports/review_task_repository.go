package ports

import (
	"context"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/review"
)

// ReviewTaskRepository defines the persistence contract for review tasks.
type ReviewTaskRepository interface {
	// AddIfAbsent inserts a pending review task unless one already exists for
	// the same (customer, product, order) triple. Replayed completion signals
	// are therefore harmless.
	AddIfAbsent(ctx context.Context, task *review.Task) error

	// GetByOrder retrieves the review tasks created for one order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*review.Task, error)
}
