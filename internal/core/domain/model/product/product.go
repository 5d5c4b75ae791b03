package product

import (
	"errors"
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through the NewProduct or RestoreProduct factory functions.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct constructor")

	// ErrInsufficientStock is the sentinel matched with errors.Is when a
	// reservation asks for more units than are sellable. The concrete
	// InsufficientStockError carries the product and the quantities involved.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports a reservation that exceeds available stock.
type InsufficientStockError struct {
	ProductID kernel.UUID
	Available int
	Requested int
}

// NewInsufficientStockError creates an InsufficientStockError for the product.
func NewInsufficientStockError(productID kernel.UUID, available, requested int) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Available: available, Requested: requested}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %s has %d, requested %d",
		ErrInsufficientStock, e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Product is the inventory record for one catalog item: the current catalog
// price plus the stock/sold counters the order lifecycle reconciles against.
//
// Invariants:
//   - stock and sold are never negative
//   - a reservation moves units from stock to sold atomically
//   - a release is the exact inverse, with sold floored at zero
//
// The catalog price here is only a snapshot source at order creation; orders
// keep their own frozen line-item prices afterwards.
type Product struct {
	id    kernel.UUID
	name  string
	price int64
	stock int
	sold  int

	isConstructed bool
}

// NewProduct registers a catalog item with an initial sellable stock and a
// price in minor units. The sold counter starts at zero.
func NewProduct(id kernel.UUID, name string, price int64, stock int) (*Product, error) {
	p := &Product{
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPrice(price),
		p.setStock(stock),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct rebuilds an inventory record from persistence.
func RestoreProduct(id kernel.UUID, name string, price int64, stock, sold int) (*Product, error) {
	p, err := NewProduct(id, name, price, stock)
	if err != nil {
		return nil, err
	}

	if sold < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("sold is invalid",
			fmt.Errorf("%d is negative", sold))
	}
	p.sold = sold

	return p, nil
}

// Validate ensures the Product instance was created through a factory function.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the catalog name.
func (p *Product) Name() string {
	return p.name
}

// Price returns the current catalog price in minor units.
func (p *Product) Price() int64 {
	return p.price
}

// Stock returns the sellable quantity.
func (p *Product) Stock() int {
	return p.stock
}

// Sold returns the quantity held by live orders.
func (p *Product) Sold() int {
	return p.sold
}

// ChangePrice updates the catalog price. Existing orders are unaffected;
// their line items keep the price frozen at purchase time.
func (p *Product) ChangePrice(price int64) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return p.setPrice(price)
}

// Reserve moves qty units from stock to sold. Fails with
// InsufficientStockError when fewer than qty units are sellable,
// leaving the record untouched.
func (p *Product) Reserve(qty int) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", qty))
	}
	if p.stock < qty {
		return NewInsufficientStockError(p.id, p.stock, qty)
	}

	p.stock -= qty
	p.sold += qty
	return nil
}

// Release is the inverse of Reserve: qty units go back to stock and the sold
// counter drops by qty, floored at zero.
func (p *Product) Release(qty int) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", qty))
	}

	p.stock += qty
	p.sold -= qty
	if p.sold < 0 {
		p.sold = 0
	}
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price int64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price is invalid",
			fmt.Errorf("%d is negative", price))
	}
	p.price = price
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock is invalid",
			fmt.Errorf("%d is negative", stock))
	}
	p.stock = stock
	return nil
}
