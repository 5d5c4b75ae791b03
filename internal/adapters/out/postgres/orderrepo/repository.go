package orderrepo

import (
	"context"
	"errors"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderColumns is the set of order row columns rewritten on Update. Zero
// values (an empty cancel reason, restored=false) must overwrite, so the
// column list is explicit instead of relying on non-zero struct fields.
var orderColumns = []string{
	"status",
	"cancel_reason",
	"cancel_requested_by",
	"cancel_approved_by",
	"cancel_rejection_reason",
	"cancel_deadline",
	"restored",
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its line items and first ledger entry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order. Ledger entries are append-only: every
// entry of the aggregate is written with a do-nothing conflict clause, so
// rows already present are left untouched and only new entries land.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select(orderColumns).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if len(dto.History) > 0 {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&dto.History).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(ctx, id, false)
}

// GetForUpdate retrieves an order while holding a row-level lock on the
// order row. Must run inside a unit-of-work transaction; concurrent status
// changes on the same order serialize on this lock.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(ctx, id, true)
}

func (r *GormOrderRepository) load(ctx context.Context, id kernel.UUID, lock bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx)
	if lock {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	if err := tx.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	if err := r.loadChildren(ctx, &dto); err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) loadChildren(ctx context.Context, dto *OrderDTO) error {
	err := r.db.WithContext(ctx).
		Order("product_id").
		Find(&dto.Items, "order_id = ?", dto.ID).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Order("seq").
		Find(&dto.History, "order_id = ?", dto.ID).Error
}

// GetNewBefore lists identifiers of orders still in new status whose
// confirmation deadline passed before the cutoff.
func (r *GormOrderRepository) GetNewBefore(ctx context.Context, cutoff time.Time) ([]kernel.UUID, error) {
	var rawIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("status = ? AND cancel_deadline < ?", order.New.String(), cutoff).
		Order("cancel_deadline").
		Pluck("id", &rawIDs).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// GetAllInCancelRequestedStatus retrieves all orders waiting for an admin
// cancellation decision.
func (r *GormOrderRepository) GetAllInCancelRequestedStatus(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ?", order.CancelRequested.String()).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for i := range dtos {
		if err = r.loadChildren(ctx, &dtos[i]); err != nil {
			return nil, err
		}

		o, domainErr := toDomain(dtos[i])
		if domainErr != nil {
			return nil, domainErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}
