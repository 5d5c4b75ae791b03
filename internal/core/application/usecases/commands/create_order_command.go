package commands

import (
	"errors"
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one line item is required")
)

// CreateOrderItem is one requested product position. The unit price is not
// part of the request; it is snapshotted from the catalog when stock is
// decremented.
type CreateOrderItem struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand represents a request to place a new purchase order.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	items := []commands.CreateOrderItem{{ProductID: productID, Quantity: 2}}
//	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, addressID, items, 500)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	customerID  kernel.UUID
	addressID   kernel.UUID
	items       []CreateOrderItem
	shippingFee int64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates identifiers, requires at least one item with a positive quantity,
// rejects duplicate products, and requires a non-negative shipping fee.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	addressID kernel.UUID,
	items []CreateOrderItem,
	shippingFee int64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setAddressID(addressID),
		cmd.setItems(items),
		cmd.setShippingFee(shippingFee),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// AddressID returns the delivery address.
func (c CreateOrderCommand) AddressID() kernel.UUID {
	return c.addressID
}

// Items returns a copy of the requested line items.
func (c CreateOrderCommand) Items() []CreateOrderItem {
	return append([]CreateOrderItem(nil), c.items...)
}

// ShippingFee returns the shipping fee in minor units.
func (c CreateOrderCommand) ShippingFee() int64 {
	return c.shippingFee
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setAddressID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.addressID = id
	return nil
}

func (c *CreateOrderCommand) setItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return err
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
				fmt.Errorf("%d is not greater than 0", item.Quantity))
		}
		if _, dup := seen[item.ProductID]; dup {
			return errs.NewValueIsInvalidErrorWithCause("items are invalid",
				fmt.Errorf("duplicate product %s", item.ProductID))
		}
		seen[item.ProductID] = struct{}{}
	}

	c.items = append([]CreateOrderItem(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setShippingFee(fee int64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("shipping fee is invalid",
			fmt.Errorf("%d is negative", fee))
	}
	c.shippingFee = fee
	return nil
}
