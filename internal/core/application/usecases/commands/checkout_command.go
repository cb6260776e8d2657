package commands

import (
	"errors"

	"buffet/internal/core/domain/model/order"
	"buffet/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand represents a customer submitting their cart as an order
// bound to a pickup station.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	customerID int64
	station    order.Station

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a command to submit the customer's cart.
func NewCheckoutCommand(customerID int64, station order.Station) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setStation(station),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// CustomerID returns the identity of the customer checking out.
func (c CheckoutCommand) CustomerID() int64 {
	return c.customerID
}

// Station returns the pickup station the order is submitted to.
func (c CheckoutCommand) Station() order.Station {
	return c.station
}

func (c *CheckoutCommand) setCustomerID(customerID int64) error {
	if customerID <= 0 {
		return ErrCustomerIDIsRequired
	}
	c.customerID = customerID
	return nil
}

func (c *CheckoutCommand) setStation(station order.Station) error {
	if err := station.Validate(); err != nil {
		return err
	}
	c.station = station
	return nil
}
