package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a customer's request to cancel their order.
// Whether the cancellation applies immediately or needs admin review is
// decided by the cancellation policy, not by the caller.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a customer cancellation command.
// A non-empty reason is required; it goes into the status ledger.
func NewCancelOrderCommand(orderID, customerID kernel.UUID, reason string) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		customerID.Validate(),
	); err != nil {
		return CancelOrderCommand{}, err
	}
	if reason == "" {
		return CancelOrderCommand{}, errs.NewValueIsRequiredError("cancellation reason")
	}

	cmd.orderID = orderID
	cmd.customerID = customerID
	cmd.reason = reason

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the requesting customer; must own the order.
func (c CancelOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Reason returns the customer's cancellation reason.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}
