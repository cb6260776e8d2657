package queries

import (
	"context"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads the customer's past orders.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for order history reads.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle returns the customer's submitted orders newest first, capped at the
// query's limit.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, status, pickup_station, total, created_at
		FROM orders
		WHERE customer_id = ? AND status != ?
		ORDER BY created_at DESC
		LIMIT ?
	`, query.CustomerID(), order.Cart, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOrderHistoryQueryResponse
		var id uuid.UUID
		var status, station int

		err = rows.Scan(&id, &status, &station, &resp.Total, &resp.CreatedAt)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderID = orderID
		resp.Status = order.Status(status).String()
		resp.Station = order.Station(station).String()

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
