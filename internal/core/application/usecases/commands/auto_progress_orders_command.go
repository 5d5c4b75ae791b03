package commands

import (
	"errors"

	"shop/internal/pkg/guard"
)

var ErrAutoProgressOrdersCommandIsNotConstructed = errors.New(
	"AutoProgressOrdersCommand must be created via NewAutoProgressOrdersCommand constructor",
)

// AutoProgressOrdersCommand triggers one sweep of time-based order
// advancement. It carries no parameters; eligibility is decided per order
// against the wall clock at sweep time.
type AutoProgressOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewAutoProgressOrdersCommand creates a sweep command.
func NewAutoProgressOrdersCommand() AutoProgressOrdersCommand {
	return AutoProgressOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c AutoProgressOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAutoProgressOrdersCommandIsNotConstructed)
}
