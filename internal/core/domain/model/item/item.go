// Package item contains the catalog item value object. Items are immutable
// once fetched into a cache snapshot; the source of truth is external storage,
// and this model never mutates it.
package item

import (
	"errors"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a read-only snapshot of a catalog product: what it is, what it
// costs right now, and whether it can currently be ordered.
//
// Item follows these invariants:
//   - Must have a valid unique identifier
//   - Name must not be empty
//   - Category must be a valid enumeration member
//   - Price must not be negative
//   - Can only be created through NewItem constructor
type Item struct {
	id          kernel.UUID
	name        string
	category    Category
	price       decimal.Decimal
	isAvailable bool

	isConstructed bool
}

// NewItem creates a validated Item snapshot. This is the only way to create
// a valid Item, ensuring catalog rows read from storage satisfy the model's
// invariants before entering a cache snapshot.
func NewItem(id kernel.UUID, name string, category Category, price decimal.Decimal, isAvailable bool) (Item, error) {
	itm := Item{isConstructed: true}

	if err := errors.Join(
		itm.setID(id),
		itm.setName(name),
		itm.setCategory(category),
		itm.setPrice(price),
	); err != nil {
		return Item{}, err
	}

	itm.isAvailable = isAvailable
	return itm, nil
}

// Validate ensures the Item instance was properly constructed through NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i Item) ID() kernel.UUID {
	return i.id
}

// Name returns the display name of the item.
func (i Item) Name() string {
	return i.name
}

// Category returns the item's category.
func (i Item) Category() Category {
	return i.category
}

// Price returns the current unit price of the item.
func (i Item) Price() decimal.Decimal {
	return i.price
}

// IsAvailable reports whether the item can currently be ordered.
func (i Item) IsAvailable() bool {
	return i.isAvailable
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Item) setCategory(category Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	i.category = category
	return nil
}

func (i *Item) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidError("price")
	}
	i.price = price
	return nil
}
