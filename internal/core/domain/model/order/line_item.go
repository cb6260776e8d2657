package order

import (
	"errors"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrLineItemIsNotConstructed is returned when a LineItem instance was not
// created through a constructor function.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem or RestoreLineItem")

// LineItem is one position of an order: an item reference, a quantity, and
// the unit price frozen at the moment the item entered the cart. Menu price
// changes never retroactively affect an open cart or a submitted order.
//
// A line item belongs to exactly one order and is only mutated through the
// owning Order aggregate.
type LineItem struct {
	id          kernel.UUID
	itemID      kernel.UUID
	quantity    int
	priceAtTime decimal.Decimal

	isConstructed bool
}

// NewLineItem creates a line item with quantity 1 and the given captured
// unit price. Called by Order.AddItem when the item is not yet in the cart.
func NewLineItem(id kernel.UUID, itemID kernel.UUID, priceAtTime decimal.Decimal) (LineItem, error) {
	return RestoreLineItem(id, itemID, 1, priceAtTime)
}

// RestoreLineItem reconstructs a line item from persistence.
// Quantity must be at least 1 and the captured price must not be negative.
func RestoreLineItem(id kernel.UUID, itemID kernel.UUID, quantity int, priceAtTime decimal.Decimal) (LineItem, error) {
	li := LineItem{isConstructed: true}

	if err := errors.Join(
		li.setID(id),
		li.setItemID(itemID),
		li.setQuantity(quantity),
		li.setPriceAtTime(priceAtTime),
	); err != nil {
		return LineItem{}, err
	}

	return li, nil
}

// Validate ensures the LineItem instance was properly constructed.
func (li LineItem) Validate() error {
	if !li.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

// ID returns the line item's unique identifier.
func (li LineItem) ID() kernel.UUID {
	return li.id
}

// ItemID returns the identifier of the referenced catalog item.
func (li LineItem) ItemID() kernel.UUID {
	return li.itemID
}

// Quantity returns how many units of the item the line holds.
func (li LineItem) Quantity() int {
	return li.quantity
}

// PriceAtTime returns the unit price captured when the item entered the cart.
func (li LineItem) PriceAtTime() decimal.Decimal {
	return li.priceAtTime
}

// Subtotal returns quantity multiplied by the captured unit price.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.priceAtTime.Mul(decimal.NewFromInt(int64(li.quantity)))
}

func (li *LineItem) increment() {
	li.quantity++
}

func (li *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.id = id
	return nil
}

func (li *LineItem) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	li.itemID = itemID
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidError("quantity")
	}
	li.quantity = quantity
	return nil
}

func (li *LineItem) setPriceAtTime(priceAtTime decimal.Decimal) error {
	if priceAtTime.IsNegative() {
		return errs.NewValueIsInvalidError("priceAtTime")
	}
	li.priceAtTime = priceAtTime
	return nil
}
