package order

import (
	"errors"
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created
// through the NewLineItem constructor.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one product position within an order. The unit price is
// snapshotted from the catalog at order creation and never changes afterwards,
// regardless of later catalog price edits.
//
// LineItem is an immutable value object.
type LineItem struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	quantity  int
	unitPrice int64

	guard guard.ConstructorGuard
}

// NewLineItem creates a line item with a frozen unit price in minor currency
// units. Quantity must be positive and unit price non-negative.
func NewLineItem(productID kernel.UUID, quantity int, unitPrice int64) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate ensures the line item was created through the constructor.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// ProductID returns the purchased product's identifier.
func (i LineItem) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the purchased quantity.
func (i LineItem) Quantity() int {
	return i.quantity
}

// UnitPrice returns the unit price frozen at purchase time, in minor units.
func (i LineItem) UnitPrice() int64 {
	return i.unitPrice
}

// Subtotal returns quantity times the frozen unit price.
func (i LineItem) Subtotal() int64 {
	return int64(i.quantity) * i.unitPrice
}

func (i *LineItem) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *LineItem) setUnitPrice(unitPrice int64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
			fmt.Errorf("%d is negative", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}
