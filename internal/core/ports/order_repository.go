// Package ports defines the interfaces the core consumes: repositories over
// external storage, the unit of work, and the outbound messaging transport.
package ports

import (
	"context"
	"time"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates together with their line items.
//
// Two operations carry the concurrency discipline of the whole system:
//
//   - GetOrCreateCart must be atomic. Creation of a cart is guarded by the
//     storage-level uniqueness of "one cart-status order per customer"; a
//     lost race returns the winning cart, never a duplicate.
//   - TransitionStatus must be a single conditional write with the expected
//     current status (and, for station-scoped transitions, the station) as
//     its precondition. A zero-row result is errs.ErrPreconditionFailed,
//     never success. Implementations must not read the status first and
//     write unconditionally.
type OrderRepository interface {
	// Add saves a new order and its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update saves an existing order and replaces its line items.
	// Only the cart workflow edits orders this way; once an order has
	// been submitted it changes via TransitionStatus. The write is
	// conditional on the row still being in Cart status, so a cart
	// cancelled concurrently cannot be dragged back out of its terminal
	// state. A zero-row result is errs.ErrPreconditionFailed.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its line items by ID.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetCart retrieves the customer's single Cart-status order.
	GetCart(ctx context.Context, customerID int64) (*order.Order, error)

	// GetOrCreateCart atomically finds the customer's cart or inserts the
	// given candidate. Returns the cart that actually exists afterwards,
	// which is the candidate only if the insert won.
	GetOrCreateCart(ctx context.Context, candidate *order.Order) (*order.Order, error)

	// GetPendingByStation retrieves all Pending orders submitted to the station.
	GetPendingByStation(ctx context.Context, station order.Station) ([]*order.Order, error)

	// GetCartsUpdatedBefore retrieves Cart-status orders untouched since the cutoff.
	GetCartsUpdatedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// TransitionStatus performs the atomic conditional transition
	// from -> to, additionally requiring the order's station when one is
	// given. Bumps updated_at. Returns errs.ErrPreconditionFailed when the
	// precondition did not hold at write time.
	TransitionStatus(
		ctx context.Context,
		id kernel.UUID,
		from, to order.Status,
		station order.Station,
		now time.Time,
	) error

	// CancelIdleCart cancels the cart only while it is still in Cart
	// status and untouched since the cutoff. Same conditional-write
	// contract as TransitionStatus: a cart the customer revives between
	// the caller's read and this write stays open, reported as
	// errs.ErrPreconditionFailed.
	CancelIdleCart(ctx context.Context, id kernel.UUID, cutoff, now time.Time) error
}
