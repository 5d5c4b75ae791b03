package reviewtaskrepo

import (
	"context"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/review"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReviewTaskRepository implements ReviewTaskRepository using GORM.
type GormReviewTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormReviewTaskRepository creates a new GORM review task repository.
func NewGormReviewTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormReviewTaskRepository {
	return &GormReviewTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddIfAbsent inserts a pending review task unless one already exists for
// the same (customer, product, order) triple. The insert carries a do-nothing
// conflict clause on the composite key, so the second and later attempts are
// silent no-ops.
func (r *GormReviewTaskRepository) AddIfAbsent(ctx context.Context, task *review.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	dto := fromDomain(task)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(task.OrderID(), task)
	return nil
}

// GetByOrder retrieves the review tasks created for one order.
func (r *GormReviewTaskRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*review.Task, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TaskDTO
	err := r.db.WithContext(ctx).
		Order("product_id").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	tasks := make([]*review.Task, 0, len(dtos))
	for _, dto := range dtos {
		task, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}
