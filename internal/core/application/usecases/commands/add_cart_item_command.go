package commands

import (
	"errors"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/pkg/guard"
)

var (
	ErrAddCartItemCommandIsNotConstructed = errors.New(
		"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
	)
	ErrCustomerIDIsRequired = errors.New("customer ID must be positive")
)

// AddCartItemCommand represents a customer's request to add one unit of a
// catalog item to their cart.
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID int64
	itemID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewAddCartItemCommand creates a command to add an item to the customer's cart.
// Validates that the customer identity is present and the item ID is valid.
func NewAddCartItemCommand(customerID int64, itemID kernel.UUID) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setItemID(itemID),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

// CustomerID returns the identity of the customer adding the item.
func (c AddCartItemCommand) CustomerID() int64 {
	return c.customerID
}

// ItemID returns the catalog item to add.
func (c AddCartItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c *AddCartItemCommand) setCustomerID(customerID int64) error {
	if customerID <= 0 {
		return ErrCustomerIDIsRequired
	}
	c.customerID = customerID
	return nil
}

func (c *AddCartItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}
