package commands

import (
	"context"
	"errors"
	"time"

	"buffet/internal/core/domain/model/order"
	"buffet/internal/pkg/errs"
)

// MarkOrderReadyCommandHandler moves a Preparing order to ReadyForPickup.
type MarkOrderReadyCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
	now        func() time.Time
}

// NewMarkOrderReadyCommandHandler creates a handler for readiness announcements.
func NewMarkOrderReadyCommandHandler(uowFactory OrderUoWFactory, publisher EventPublisher) MarkOrderReadyCommandHandler {
	return MarkOrderReadyCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Handle marks the order ready with the same conditional write discipline as
// the claim: the write requires Preparing status and the operator's station,
// and a zero-row result is classified by re-reading the order.
func (h MarkOrderReadyCommandHandler) Handle(ctx context.Context, cmd MarkOrderReadyCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	orderRepo := h.uowFactory.Create().OrderRepository()

	err := orderRepo.TransitionStatus(
		ctx, cmd.OrderID(), order.Preparing, order.ReadyForPickup, cmd.Station(), h.now().UTC())
	if err != nil {
		if errors.Is(err, errs.ErrPreconditionFailed) {
			return nil, classifyTransitionFailure(
				ctx, orderRepo, cmd.OrderID(), order.Preparing, order.ReadyForPickup, cmd.Station())
		}
		return nil, err
	}

	ready, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, order.StateChanged{
		OrderID: cmd.OrderID(),
		From:    order.Preparing,
		To:      order.ReadyForPickup,
	}, ready)

	return ready, nil
}
