package queries

import (
	"context"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCartQueryHandler reads the customer's cart straight from storage,
// joining line items with the catalog for display names.
type GetCartQueryHandler struct {
	db *gorm.DB
}

// NewGetCartQueryHandler creates a handler for cart snapshots.
func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

// Handle returns the cart snapshot, or nil when the customer has no open
// cart. The total is summed over the lines here rather than read from the
// orders row, so the snapshot is internally consistent even mid-update.
func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (*GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			oi.id,
			COALESCE(i.name, oi.item_id::text),
			oi.quantity,
			oi.price_at_time
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		LEFT JOIN items i ON i.id = oi.item_id
		WHERE o.customer_id = ? AND o.status = ?
		ORDER BY oi.id
	`, query.CustomerID(), order.Cart).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resp *GetCartQueryResponse

	for rows.Next() {
		var orderID, lineID uuid.UUID
		var line CartLineResponse

		err = rows.Scan(&orderID, &lineID, &line.ItemName, &line.Quantity, &line.PriceAtTime)
		if err != nil {
			return nil, err
		}

		if resp == nil {
			id, idErr := kernel.UUIDFromBytes(orderID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp = &GetCartQueryResponse{OrderID: id, Total: decimal.Zero}
		}

		lineItemID, idErr := kernel.UUIDFromBytes(lineID[:])
		if idErr != nil {
			return nil, idErr
		}
		line.LineItemID = lineItemID
		line.Subtotal = line.PriceAtTime.Mul(decimal.NewFromInt(int64(line.Quantity)))

		resp.Lines = append(resp.Lines, line)
		resp.Total = resp.Total.Add(line.Subtotal)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return resp, nil
}
