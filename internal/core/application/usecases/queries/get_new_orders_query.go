package queries

import (
	"errors"
	"time"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
	"buffet/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetNewOrdersQueryIsNotConstructed = errors.New(
	"GetNewOrdersQuery must be created via NewGetNewOrdersQuery constructor",
)

// GetNewOrdersQuery retrieves the unclaimed Pending orders submitted to one
// pickup station, oldest first.
type GetNewOrdersQuery struct {
	station order.Station

	guard guard.ConstructorGuard
}

// NewGetNewOrdersQuery creates a query for a station's claimable orders.
func NewGetNewOrdersQuery(station order.Station) (GetNewOrdersQuery, error) {
	if err := station.Validate(); err != nil {
		return GetNewOrdersQuery{}, err
	}
	return GetNewOrdersQuery{
		station: station,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNewOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetNewOrdersQueryIsNotConstructed)
}

// Station returns the station whose queue is requested.
func (q GetNewOrdersQuery) Station() order.Station {
	return q.station
}

// GetNewOrdersQueryResponse is one claimable order in a station's queue.
// CustomerName is the profile's full name, falling back to the username and
// then to the raw chat ID.
type GetNewOrdersQueryResponse struct {
	OrderID      kernel.UUID
	CustomerName string
	ItemCount    int
	Total        decimal.Decimal
	CreatedAt    time.Time
}
