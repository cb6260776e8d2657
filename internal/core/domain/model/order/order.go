package order

import (
	"errors"
	"time"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewCart or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewCart or RestoreOrder")

	// ErrCustomerIsRequired is returned when an order is created without a customer identity.
	ErrCustomerIsRequired = errors.New("customer ID must be positive")
)

// StateChanged is emitted by every successful lifecycle transition. The
// notification dispatcher consumes it to decide who must be told about the
// change; the event never carries message text, only the transition itself.
type StateChanged struct {
	OrderID kernel.UUID
	From    Status
	To      Status
}

// Order is the aggregate root for the ordering workflow. It owns its line
// items and all lifecycle transitions; nothing outside the Order Ledger may
// mutate either.
//
// Order maintains these invariants:
//   - Total always equals the sum of quantity x price-at-time over its lines;
//     it is recomputed after every line-item mutation and never accepted from
//     caller input.
//   - Line items change only while the status is Cart.
//   - The status only moves along the transition table implemented by Status.
//   - A submitted order carries a station; a cart carries NoStation.
type Order struct {
	id         kernel.UUID
	customerID int64
	items      []LineItem
	status     Status
	station    Station
	total      decimal.Decimal
	createdAt  time.Time
	updatedAt  time.Time

	isConstructed bool
}

// NewCart creates the customer's mutable, unsubmitted order in Cart status
// with no line items and no station. The caller supplies the creation time so
// timestamps stay deterministic in tests.
func NewCart(id kernel.UUID, customerID int64, now time.Time) (*Order, error) {
	o := &Order{
		status:        Cart,
		station:       NoStation,
		total:         decimal.Zero,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. The total is
// recomputed from the restored line items rather than trusted from storage,
// keeping the total invariant unconditional.
func RestoreOrder(
	id kernel.UUID,
	customerID int64,
	items []LineItem,
	status Status,
	station Station,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if status != Cart && status != Cancelled {
		if err := station.Validate(); err != nil {
			return nil, err
		}
	}
	for _, li := range items {
		if err := li.Validate(); err != nil {
			return nil, err
		}
	}

	o := &Order{
		items:         items,
		status:        status,
		station:       station,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
	); err != nil {
		return nil, err
	}

	o.recomputeTotal()
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Called when reconstructing orders from persistence to ensure integrity.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identity of the customer who owns the order.
// It is also the chat address notifications are delivered to.
func (o *Order) CustomerID() int64 {
	return o.customerID
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// IsEmpty reports whether the order has no line items.
func (o *Order) IsEmpty() bool {
	return len(o.items) == 0
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Station returns the pickup station, or NoStation for an unsubmitted cart.
func (o *Order) Station() Station {
	return o.station
}

// Total returns the derived total amount: the sum of quantity x
// price-at-time across all line items.
func (o *Order) Total() decimal.Decimal {
	return o.total
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AddItem adds one unit of the given catalog item to the cart, capturing the
// current unit price. If the item is already a line item its quantity is
// incremented by 1 and the originally captured price is kept; otherwise a new
// line item with quantity 1 is appended. The total is recomputed.
//
// Returns an InvalidTransitionError if the order is not in Cart status.
func (o *Order) AddItem(itemID kernel.UUID, price decimal.Decimal, now time.Time) error {
	if o.status != Cart {
		return errs.NewInvalidTransitionError(o.status.String(), Cart.String())
	}
	if err := itemID.Validate(); err != nil {
		return err
	}

	for i := range o.items {
		if o.items[i].ItemID().IsEqual(itemID) {
			o.items[i].increment()
			o.touch(now)
			return nil
		}
	}

	li, err := NewLineItem(kernel.NewUUID(), itemID, price)
	if err != nil {
		return err
	}

	o.items = append(o.items, li)
	o.touch(now)
	return nil
}

// RemoveItem deletes the line item with the given identifier and recomputes
// the total. Returns an ObjectNotFoundError if the line does not exist, and
// an InvalidTransitionError if the order is not in Cart status.
func (o *Order) RemoveItem(lineItemID kernel.UUID, now time.Time) error {
	if o.status != Cart {
		return errs.NewInvalidTransitionError(o.status.String(), Cart.String())
	}

	for i := range o.items {
		if o.items[i].ID().IsEqual(lineItemID) {
			o.items = append(o.items[:i], o.items[i+1:]...)
			o.touch(now)
			return nil
		}
	}

	return errs.NewObjectNotFoundError("lineItemId", lineItemID.String())
}

// Checkout submits the cart to the chosen station, transitioning it to
// Pending. Fails with an InvalidTransitionError when the order is not a cart,
// and with a ValueIsRequiredError when the cart has no line items.
func (o *Order) Checkout(station Station, now time.Time) (StateChanged, error) {
	if err := station.Validate(); err != nil {
		return StateChanged{}, err
	}
	if o.IsEmpty() {
		return StateChanged{}, errs.NewValueIsRequiredError("cart must not be empty")
	}

	newStatus, err := o.status.Checkout()
	if err != nil {
		return StateChanged{}, err
	}

	evt := StateChanged{OrderID: o.id, From: o.status, To: newStatus}
	o.status = newStatus
	o.station = station
	o.touch(now)
	return evt, nil
}

// Claim transitions the order to Preparing.
//
// This method validates the in-memory transition only. The concurrency-safe
// claim is the order repository's single conditional write; reading an order,
// calling Claim, and saving unconditionally would reintroduce the race this
// system exists to prevent.
func (o *Order) Claim(now time.Time) (StateChanged, error) {
	return o.applyTransition(o.status.Claim, now)
}

// MarkReady transitions the order to ReadyForPickup.
func (o *Order) MarkReady(now time.Time) (StateChanged, error) {
	return o.applyTransition(o.status.Ready, now)
}

// Complete transitions the order to Completed, the terminal success state.
func (o *Order) Complete(now time.Time) (StateChanged, error) {
	return o.applyTransition(o.status.Complete, now)
}

// Cancel abandons an unsubmitted cart, transitioning it to Cancelled.
func (o *Order) Cancel(now time.Time) (StateChanged, error) {
	return o.applyTransition(o.status.Cancel, now)
}

func (o *Order) applyTransition(move func() (Status, error), now time.Time) (StateChanged, error) {
	newStatus, err := move()
	if err != nil {
		return StateChanged{}, err
	}

	evt := StateChanged{OrderID: o.id, From: o.status, To: newStatus}
	o.status = newStatus
	o.touch(now)
	return evt, nil
}

func (o *Order) touch(now time.Time) {
	o.recomputeTotal()
	o.updatedAt = now
}

func (o *Order) recomputeTotal() {
	total := decimal.Zero
	for _, li := range o.items {
		total = total.Add(li.Subtotal())
	}
	o.total = total
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID int64) error {
	if customerID <= 0 {
		return ErrCustomerIsRequired
	}
	o.customerID = customerID
	return nil
}
