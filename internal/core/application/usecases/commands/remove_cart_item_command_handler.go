package commands

import (
	"context"
	"time"

	"buffet/internal/core/domain/model/order"
)

// RemoveCartItemCommandHandler deletes a line item from the customer's cart.
type RemoveCartItemCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewRemoveCartItemCommandHandler creates a handler for cart line removals.
func NewRemoveCartItemCommandHandler(uowFactory OrderUoWFactory) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle removes the line item from the customer's cart and persists the
// result. A missing cart or a line item ID not present in the cart surfaces
// as errs.ObjectNotFoundError. The cart order stays in Cart status even when
// the last line is removed.
func (h RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	cart, err := orderRepo.GetCart(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}

	if err = cart.RemoveItem(cmd.LineItemID(), h.now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, cart); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return cart, nil
}
