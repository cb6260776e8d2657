package queries

import (
	"errors"
	"time"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// DefaultHistoryLimit caps the history page at the most recent orders.
const DefaultHistoryLimit = 10

// GetOrderHistoryQuery retrieves the customer's submitted orders, newest
// first. Carts are not history and are excluded.
type GetOrderHistoryQuery struct {
	customerID int64
	limit      int

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for the customer's order history.
// A non-positive limit falls back to DefaultHistoryLimit.
func NewGetOrderHistoryQuery(customerID int64, limit int) (GetOrderHistoryQuery, error) {
	if customerID <= 0 {
		return GetOrderHistoryQuery{}, ErrCustomerIDIsRequired
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return GetOrderHistoryQuery{
		customerID: customerID,
		limit:      limit,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// CustomerID returns the identity whose history is requested.
func (q GetOrderHistoryQuery) CustomerID() int64 {
	return q.customerID
}

// Limit returns the maximum number of orders to return.
func (q GetOrderHistoryQuery) Limit() int {
	return q.limit
}

// GetOrderHistoryQueryResponse is one past order.
type GetOrderHistoryQueryResponse struct {
	OrderID   kernel.UUID
	Status    string
	Station   string
	Total     decimal.Decimal
	CreatedAt time.Time
}
