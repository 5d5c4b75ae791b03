// Package productrepo implements inventory persistence. Stock movements are
// single guarded UPDATE statements rather than read-modify-write cycles, so
// concurrent orders on the same product can never oversell it.
package productrepo

import (
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for inventory records.
type ProductDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"size:255"`
	Price int64
	Stock int
	Sold  int
}

// TableName specifies the database table name for products.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product aggregate to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:    aggregate.ID().Bytes(),
		Name:  aggregate.Name(),
		Price: aggregate.Price(),
		Stock: aggregate.Stock(),
		Sold:  aggregate.Sold(),
	}
}

// toDomain converts a database DTO back into a product aggregate.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, dto.Name, dto.Price, dto.Stock, dto.Sold)
}
