package commands

import (
	"context"
	"errors"
	"time"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
)

// ErrItemUnavailable is returned when the requested item is not in the
// current available set, whether it does not exist or is switched off.
var ErrItemUnavailable = errors.New("item is not available")

// AddCartItemCommandHandler adds items to the customer's single cart order.
//
// Cart creation is idempotent under concurrency: the repository's atomic
// find-or-create is backed by the storage-level uniqueness of one cart per
// customer, so a double-tap producing two concurrent adds converges on one
// cart rather than creating duplicates.
type AddCartItemCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    Catalog
	now        func() time.Time
}

// NewAddCartItemCommandHandler creates a handler for cart additions.
// Requires an OrderUoWFactory for transactional persistence and a Catalog
// for availability checks and price capture.
func NewAddCartItemCommandHandler(uowFactory OrderUoWFactory, catalog Catalog) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		now:        time.Now,
	}
}

// Handle processes the cart addition. Resolves the item from the available
// catalog set (capturing its current price as the line's price-at-time),
// finds or creates the cart, applies the addition, and persists order and
// line items in one transaction. Returns the updated cart.
func (h AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	itm, ok := h.catalog.Find(ctx, cmd.ItemID())
	if !ok {
		return nil, ErrItemUnavailable
	}

	now := h.now().UTC()

	candidate, err := order.NewCart(kernel.NewUUID(), cmd.CustomerID(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	cart, err := orderRepo.GetOrCreateCart(ctx, candidate)
	if err != nil {
		return nil, err
	}

	if err = cart.AddItem(itm.ID(), itm.Price(), now); err != nil {
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
