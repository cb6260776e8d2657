package commands

import (
	"context"
	"errors"
	"time"

	"buffet/internal/core/domain/model/order"
	"buffet/internal/pkg/errs"
)

// ClaimOrderCommandHandler moves a Pending order to Preparing on behalf of
// exactly one operator.
//
// The claim is a single conditional write keyed on the expected status and
// the operator's station. When two operators race for the same order the
// storage layer lets exactly one write match; the loser gets
// ErrAlreadyClaimed without ever observing a half-claimed order.
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
	now        func() time.Time
}

// NewClaimOrderCommandHandler creates a handler for order claims.
func NewClaimOrderCommandHandler(uowFactory OrderUoWFactory, publisher EventPublisher) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Handle claims the order. On a zero-row conditional write the order is
// re-read to report the precise reason: gone entirely, claimed by someone
// else, or submitted to a different station. On success the claimed order is
// returned and the transition event published.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	orderRepo := h.uowFactory.Create().OrderRepository()

	err := orderRepo.TransitionStatus(
		ctx, cmd.OrderID(), order.Pending, order.Preparing, cmd.Station(), h.now().UTC())
	if err != nil {
		if errors.Is(err, errs.ErrPreconditionFailed) {
			return nil, classifyTransitionFailure(
				ctx, orderRepo, cmd.OrderID(), order.Pending, order.Preparing, cmd.Station())
		}
		return nil, err
	}

	claimed, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, order.StateChanged{
		OrderID: cmd.OrderID(),
		From:    order.Pending,
		To:      order.Preparing,
	}, claimed)

	return claimed, nil
}
