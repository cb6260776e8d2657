package commands

import (
	"context"
	"errors"
	"time"

	"buffet/internal/core/domain/model/order"
	"buffet/internal/pkg/errs"
)

// ErrEmptyCart is returned when a checkout is attempted with no cart or with
// a cart that holds no line items.
var ErrEmptyCart = errors.New("cart is empty")

// CheckoutCommandHandler submits the customer's cart to a pickup station.
type CheckoutCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
	now        func() time.Time
}

// NewCheckoutCommandHandler creates a handler for cart submission.
func NewCheckoutCommandHandler(uowFactory OrderUoWFactory, publisher EventPublisher) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Handle submits the cart: Cart moves to Pending, the station is stamped,
// and the transition event is published after the commit succeeds. A missing
// cart and a cart without lines both surface as ErrEmptyCart, since either
// way the customer has nothing to submit.
func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (*order.Order, error) {
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
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}

	evt, err := cart.Checkout(cmd.Station(), h.now().UTC())
	if err != nil {
		if errors.Is(err, errs.ErrValueIsRequired) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}

	if err = orderRepo.Update(ctx, cart); err != nil {
		// The cart stopped being a cart between the read and the write,
		// which means the stale-cart sweep cancelled it underneath us.
		if errors.Is(err, errs.ErrPreconditionFailed) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, evt, cart)

	return cart, nil
}
