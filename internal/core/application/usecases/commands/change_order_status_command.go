package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a request to move an order to a new
// lifecycle status. Every caller, whether an admin update, the cancellation
// workflow, or the auto-progression sweep, expresses its change as one of
// these; there is no other mutation path.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status
	note    string
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a status-change command.
// The order id, destination status, and actor must all be valid;
// the note is optional.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	status order.Status,
	note string,
	actor order.Actor,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		status.Validate(),
		actor.Validate(),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	cmd.orderID = orderID
	cmd.status = status
	cmd.note = note
	cmd.actor = actor

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to move.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the destination status.
func (c ChangeOrderStatusCommand) Status() order.Status {
	return c.status
}

// Note returns the free-form note recorded in the ledger.
func (c ChangeOrderStatusCommand) Note() string {
	return c.note
}

// Actor returns who requested the change.
func (c ChangeOrderStatusCommand) Actor() order.Actor {
	return c.actor
}
