package queries

import (
	"context"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetNewOrdersQueryHandler reads a station's claimable queue. The result is
// advisory: between this read and an operator's claim another operator may
// take any order in it, which the claim's conditional write then reports.
type GetNewOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetNewOrdersQueryHandler creates a handler for station queue reads.
func NewGetNewOrdersQueryHandler(db *gorm.DB) GetNewOrdersQueryHandler {
	return GetNewOrdersQueryHandler{db: db}
}

// Handle returns the station's Pending orders oldest first, so operators
// work the queue in submission order.
func (h GetNewOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetNewOrdersQuery,
) ([]GetNewOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetNewOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			COALESCE(NULLIF(p.full_name, ''), NULLIF(p.username, ''), o.customer_id::text),
			COALESCE(SUM(oi.quantity), 0),
			o.total,
			o.created_at
		FROM orders o
		LEFT JOIN profiles p ON p.user_id = o.customer_id
		LEFT JOIN order_items oi ON oi.order_id = o.id
		WHERE o.status = ? AND o.pickup_station = ?
		GROUP BY o.id, p.full_name, p.username
		ORDER BY o.created_at
	`, order.Pending, query.Station()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetNewOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(&id, &resp.CustomerName, &resp.ItemCount, &resp.Total, &resp.CreatedAt)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderID = orderID

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
