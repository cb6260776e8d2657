package commands

import (
	"errors"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
	"buffet/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand represents an operator claiming a Pending order
// submitted to their pickup station.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	station order.Station

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a command to claim an order for preparation.
// The station is the claiming operator's own station, not a free choice.
func NewClaimOrderCommand(orderID kernel.UUID, station order.Station) (ClaimOrderCommand, error) {
	cmd := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStation(station),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the order being claimed.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Station returns the claiming operator's station.
func (c ClaimOrderCommand) Station() order.Station {
	return c.station
}

func (c *ClaimOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ClaimOrderCommand) setStation(station order.Station) error {
	if err := station.Validate(); err != nil {
		return err
	}
	c.station = station
	return nil
}
