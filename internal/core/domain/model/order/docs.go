// Package order contains the Order aggregate root and its lifecycle state
// machine. The aggregate exclusively owns line items and status transitions:
// carts mutate only through it, and every successful transition yields a
// StateChanged event for notification fanout.
//
// The one transition the aggregate deliberately does not make safe on its own
// is the claim (Pending -> Preparing): with several operators viewing the same
// pending order, exactly one claim may win, which requires a single atomic
// conditional write at the storage layer. See the order repository.
package order
