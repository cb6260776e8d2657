package queries

import (
	"errors"
	"time"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetActiveOrderQueryIsNotConstructed = errors.New(
	"GetActiveOrderQuery must be created via NewGetActiveOrderQuery constructor",
)

// GetActiveOrderQuery retrieves the customer's most recent in-flight order,
// meaning one in Pending, Preparing or ReadyForPickup status.
type GetActiveOrderQuery struct {
	customerID int64

	guard guard.ConstructorGuard
}

// NewGetActiveOrderQuery creates a query for the customer's order in
// progress.
func NewGetActiveOrderQuery(customerID int64) (GetActiveOrderQuery, error) {
	if customerID <= 0 {
		return GetActiveOrderQuery{}, ErrCustomerIDIsRequired
	}
	return GetActiveOrderQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrderQueryIsNotConstructed)
}

// CustomerID returns the identity whose active order is requested.
func (q GetActiveOrderQuery) CustomerID() int64 {
	return q.customerID
}

// GetActiveOrderQueryResponse describes the in-flight order. A nil response
// means the customer has nothing in progress.
type GetActiveOrderQueryResponse struct {
	OrderID   kernel.UUID
	Status    string
	Station   string
	Total     decimal.Decimal
	CreatedAt time.Time
}
