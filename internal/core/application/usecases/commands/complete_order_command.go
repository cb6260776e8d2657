package commands

import (
	"errors"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
	"buffet/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand represents an operator recording that a ReadyForPickup
// order has been handed to the customer.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	station order.Station

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a command to complete an order.
func NewCompleteOrderCommand(orderID kernel.UUID, station order.Station) (CompleteOrderCommand, error) {
	cmd := CompleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStation(station),
	); err != nil {
		return CompleteOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// OrderID returns the order being completed.
func (c CompleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Station returns the acting operator's station.
func (c CompleteOrderCommand) Station() order.Station {
	return c.station
}

func (c *CompleteOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CompleteOrderCommand) setStation(station order.Station) error {
	if err := station.Validate(); err != nil {
		return err
	}
	c.station = station
	return nil
}
