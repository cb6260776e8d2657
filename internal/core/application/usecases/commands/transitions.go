package commands

import (
	"context"
	"errors"
	"fmt"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
	"buffet/internal/core/ports"
	"buffet/internal/pkg/errs"
)

var (
	// ErrAlreadyClaimed is returned when a Pending order was claimed by
	// another operator between notification and this attempt.
	ErrAlreadyClaimed = fmt.Errorf("%w: order has already been claimed", errs.ErrInvalidTransition)

	// ErrStationMismatch is returned when an operator acts on an order
	// submitted to a different pickup station.
	ErrStationMismatch = errors.New("order belongs to another station")
)

// classifyTransitionFailure re-reads the order after a conditional status
// write matched no rows and turns the generic precondition failure into the
// precise reason. The diagnostic read races with further writers, so the
// reported reason is best-effort; the write itself already refused safely.
func classifyTransitionFailure(
	ctx context.Context,
	repo ports.OrderRepository,
	id kernel.UUID,
	from order.Status,
	to order.Status,
	station order.Station,
) error {
	current, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if station != order.NoStation && current.Station() != station {
		return ErrStationMismatch
	}

	if current.Status() != from {
		if from == order.Pending {
			return ErrAlreadyClaimed
		}
		return errs.NewInvalidTransitionError(current.Status().String(), to.String())
	}

	return errs.ErrPreconditionFailed
}
