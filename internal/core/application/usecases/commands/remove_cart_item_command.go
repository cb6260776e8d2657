package commands

import (
	"errors"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/pkg/guard"
)

var ErrRemoveCartItemCommandIsNotConstructed = errors.New(
	"RemoveCartItemCommand must be created via NewRemoveCartItemCommand constructor",
)

// RemoveCartItemCommand represents a customer's request to delete a line item
// from their open cart.
type RemoveCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID int64
	lineItemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveCartItemCommand creates a command to remove a cart line item.
func NewRemoveCartItemCommand(customerID int64, lineItemID kernel.UUID) (RemoveCartItemCommand, error) {
	cmd := RemoveCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setLineItemID(lineItemID),
	); err != nil {
		return RemoveCartItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveCartItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartItemCommandIsNotConstructed)
}

// CustomerID returns the identity of the customer removing the line.
func (c RemoveCartItemCommand) CustomerID() int64 {
	return c.customerID
}

// LineItemID returns the line item to delete.
func (c RemoveCartItemCommand) LineItemID() kernel.UUID {
	return c.lineItemID
}

func (c *RemoveCartItemCommand) setCustomerID(customerID int64) error {
	if customerID <= 0 {
		return ErrCustomerIDIsRequired
	}
	c.customerID = customerID
	return nil
}

func (c *RemoveCartItemCommand) setLineItemID(lineItemID kernel.UUID) error {
	if err := lineItemID.Validate(); err != nil {
		return err
	}
	c.lineItemID = lineItemID
	return nil
}
