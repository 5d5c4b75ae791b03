// Package addressrepo gives the ordering flow read access to the customer
// address book. Orders only reference addresses, they never own them, so the
// repository exposes existence checks instead of aggregate loads.
package addressrepo

import (
	"context"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddressDTO represents one customer shipping address row.
type AddressDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;index"`
	Line       string    `gorm:"size:512"`
}

// TableName specifies the database table name for addresses.
func (AddressDTO) TableName() string {
	return "addresses"
}

// GormAddressRepository implements AddressRepository using GORM.
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GORM address repository.
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// Exists returns nil when the address exists and belongs to the customer.
// A missing row and a row owned by another customer are indistinguishable to
// the caller, both surface as not found.
func (r *GormAddressRepository) Exists(ctx context.Context, addressID, customerID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return err
	}
	if err := customerID.Validate(); err != nil {
		return err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&AddressDTO{}).
		Where("id = ? AND customer_id = ?", addressID.Bytes(), customerID.Bytes()).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("address", addressID.String())
	}

	return nil
}
