package commands

import (
	"errors"

	"buffet/internal/pkg/guard"
)

var ErrCancelStaleCartsCommandIsNotConstructed = errors.New(
	"CancelStaleCartsCommand must be created via NewCancelStaleCartsCommand constructor",
)

// CancelStaleCartsCommand represents the periodic sweep that cancels carts
// abandoned by their customers.
type CancelStaleCartsCommand struct {
	guard guard.ConstructorGuard
}

// NewCancelStaleCartsCommand creates a command to cancel abandoned carts.
func NewCancelStaleCartsCommand() CancelStaleCartsCommand {
	return CancelStaleCartsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c CancelStaleCartsCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleCartsCommandIsNotConstructed)
}
