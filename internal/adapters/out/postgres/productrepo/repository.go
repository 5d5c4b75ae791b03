package productrepo

import (
	"context"
	"errors"
	"math"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/product"
	"shop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB, tracker aggregateTracker) *GormProductRepository {
	return &GormProductRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new inventory record.
func (r *GormProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
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

// Get retrieves an inventory record by product identifier.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Reserve atomically moves qty units from stock to sold. The stock check and
// the decrement are one guarded statement; a row that no longer has qty units
// leaves zero rows affected and the reservation fails.
func (r *GormProductRepository) Reserve(ctx context.Context, id kernel.UUID, qty int) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if qty <= 0 {
		return errs.NewValueIsOutOfRangeError("qty", qty, 1, math.MaxInt)
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE products
		SET stock = stock - ?, sold = sold + ?
		WHERE id = ? AND stock >= ?
	`, qty, qty, id.Bytes(), qty)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.reserveFailure(ctx, id, qty)
	}

	return nil
}

// reserveFailure decides whether a zero-row reservation means a missing
// product or insufficient stock.
func (r *GormProductRepository) reserveFailure(ctx context.Context, id kernel.UUID, qty int) error {
	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("product", id.String())
		}
		return err
	}

	return product.NewInsufficientStockError(id, dto.Stock, qty)
}

// Release atomically returns qty units from sold back to stock. The sold
// counter floors at zero so replayed releases cannot drive it negative.
func (r *GormProductRepository) Release(ctx context.Context, id kernel.UUID, qty int) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if qty <= 0 {
		return errs.NewValueIsOutOfRangeError("qty", qty, 1, math.MaxInt)
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE products
		SET stock = stock + ?, sold = GREATEST(sold - ?, 0)
		WHERE id = ?
	`, qty, qty, id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", id.String())
	}

	return nil
}
