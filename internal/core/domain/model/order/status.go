package order

import (
	"buffet/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Cart ──> Pending ──> Preparing ──> ReadyForPickup ──> Completed
//	  │
//	  └────> Cancelled
//
// Completed and Cancelled are terminal: no transition leaves them.
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Cart is the initial status: the customer's single mutable,
	// unsubmitted order. Only Cart orders accept line-item changes.
	Cart

	// Pending indicates the order has been submitted to a station
	// and is waiting for an operator to claim it.
	Pending

	// Preparing indicates exactly one operator has claimed the order
	// and is working on it.
	Preparing

	// ReadyForPickup indicates the order is assembled and waiting for
	// the customer at its station.
	ReadyForPickup

	// Completed indicates the order has been handed over.
	// This is a final state with no further transitions allowed.
	Completed

	// Cancelled indicates the cart was abandoned before submission.
	// This is a final state with no further transitions allowed.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Cart:           "cart",
		Pending:        "pending",
		Preparing:      "preparing",
		ReadyForPickup: "ready_for_pickup",
		Completed:      "completed",
		Cancelled:      "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Cart:           "cart",
		Pending:        "pending",
		Preparing:      "preparing",
		ReadyForPickup: "ready_for_pickup",
		Completed:      "completed",
		Cancelled:      "cancelled",
	}
}

// Validate checks if the Status value is a member of the enumeration.
// Unknown (0) and any other values are invalid. Used to ensure Status
// values read from external sources are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("status")
	}
	return nil
}

// String returns the persisted name of the status.
// Implements the fmt.Stringer interface and is safe to call on any
// Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition may leave this status.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsActive reports whether the order is submitted but not yet handed over.
// Active statuses are Pending, Preparing and ReadyForPickup.
func (s Status) IsActive() bool {
	return s == Pending || s == Preparing || s == ReadyForPickup
}

// Checkout transitions the status to Pending.
//
// Valid transitions:
//   - Cart -> Pending (customer submits the cart)
//
// Returns (Pending, nil) on a valid transition, or (0, error) if the
// transition is not allowed from the current status.
func (s Status) Checkout() (Status, error) {
	return s.transition(Cart, Pending)
}

// Claim transitions the status to Preparing.
//
// Valid transitions:
//   - Pending -> Preparing (an operator takes the order)
//
// This method only validates the in-memory transition. The concurrency-safe
// claim itself is a single conditional write in the order repository; callers
// must never implement a claim as this check followed by an unconditional save.
func (s Status) Claim() (Status, error) {
	return s.transition(Pending, Preparing)
}

// Ready transitions the status to ReadyForPickup.
//
// Valid transitions:
//   - Preparing -> ReadyForPickup (order assembled)
func (s Status) Ready() (Status, error) {
	return s.transition(Preparing, ReadyForPickup)
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - ReadyForPickup -> Completed (order handed over)
//
// Completed is a final state with no further transitions possible.
func (s Status) Complete() (Status, error) {
	return s.transition(ReadyForPickup, Completed)
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Cart -> Cancelled (cart abandoned before submission)
//
// Submitted orders cannot be cancelled.
func (s Status) Cancel() (Status, error) {
	return s.transition(Cart, Cancelled)
}

func (s Status) transition(from, to Status) (Status, error) {
	if s != from {
		return 0, errs.NewInvalidTransitionError(s.String(), to.String())
	}
	return to, nil
}
