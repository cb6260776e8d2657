// Package queries contains read operations in the CQRS split. Handlers run
// raw SQL against the read connection and return plain response structs;
// they never load aggregates or mutate state.
package queries

import (
	"errors"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

var ErrCustomerIDIsRequired = errors.New("customer ID must be positive")

// GetCartQuery retrieves the customer's open cart with item names resolved,
// ready for rendering.
//
// Example:
//
//	query, err := NewGetCartQuery(chatID)
//	if err != nil {
//	    return err
//	}
//	cart, err := handler.Handle(ctx, query)
//	if cart == nil {
//	    // nothing in the basket yet
//	}
type GetCartQuery struct {
	customerID int64

	guard guard.ConstructorGuard
}

// NewGetCartQuery creates a query for the customer's cart contents.
func NewGetCartQuery(customerID int64) (GetCartQuery, error) {
	if customerID <= 0 {
		return GetCartQuery{}, ErrCustomerIDIsRequired
	}
	return GetCartQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// CustomerID returns the cart owner's identity.
func (q GetCartQuery) CustomerID() int64 {
	return q.customerID
}

// CartLineResponse is one rendered cart line. ItemName falls back to the raw
// item ID when the item has left the catalog since it was added.
type CartLineResponse struct {
	LineItemID  kernel.UUID
	ItemName    string
	Quantity    int
	PriceAtTime decimal.Decimal
	Subtotal    decimal.Decimal
}

// GetCartQueryResponse is the customer's cart snapshot. A nil response means
// the customer has no open cart.
type GetCartQueryResponse struct {
	OrderID kernel.UUID
	Lines   []CartLineResponse
	Total   decimal.Decimal
}
