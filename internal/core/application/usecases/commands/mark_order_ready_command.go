package commands

import (
	"errors"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
	"buffet/internal/pkg/guard"
)

var ErrMarkOrderReadyCommandIsNotConstructed = errors.New(
	"MarkOrderReadyCommand must be created via NewMarkOrderReadyCommand constructor",
)

// MarkOrderReadyCommand represents an operator announcing that a Preparing
// order is ready for pickup.
type MarkOrderReadyCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	station order.Station

	guard guard.ConstructorGuard
}

// NewMarkOrderReadyCommand creates a command to mark an order ready.
func NewMarkOrderReadyCommand(orderID kernel.UUID, station order.Station) (MarkOrderReadyCommand, error) {
	cmd := MarkOrderReadyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStation(station),
	); err != nil {
		return MarkOrderReadyCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOrderReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderReadyCommandIsNotConstructed)
}

// OrderID returns the order being marked ready.
func (c MarkOrderReadyCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Station returns the acting operator's station.
func (c MarkOrderReadyCommand) Station() order.Station {
	return c.station
}

func (c *MarkOrderReadyCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *MarkOrderReadyCommand) setStation(station order.Station) error {
	if err := station.Validate(); err != nil {
		return err
	}
	c.station = station
	return nil
}
