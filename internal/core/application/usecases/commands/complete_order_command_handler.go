package commands

import (
	"context"
	"errors"
	"time"

	"buffet/internal/core/domain/model/order"
	"buffet/internal/pkg/errs"
)

// CompleteOrderCommandHandler moves a ReadyForPickup order to Completed.
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
	now        func() time.Time
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(uowFactory OrderUoWFactory, publisher EventPublisher) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Handle completes the order via a conditional write requiring
// ReadyForPickup status and the operator's station.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	orderRepo := h.uowFactory.Create().OrderRepository()

	err := orderRepo.TransitionStatus(
		ctx, cmd.OrderID(), order.ReadyForPickup, order.Completed, cmd.Station(), h.now().UTC())
	if err != nil {
		if errors.Is(err, errs.ErrPreconditionFailed) {
			return nil, classifyTransitionFailure(
				ctx, orderRepo, cmd.OrderID(), order.ReadyForPickup, order.Completed, cmd.Station())
		}
		return nil, err
	}

	completed, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, order.StateChanged{
		OrderID: cmd.OrderID(),
		From:    order.ReadyForPickup,
		To:      order.Completed,
	}, completed)

	return completed, nil
}
