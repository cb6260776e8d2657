package queries

import (
	"context"
	"database/sql"
	"errors"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrderQueryHandler reads the customer's order in progress.
type GetActiveOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrderQueryHandler creates a handler for active order reads.
func NewGetActiveOrderQueryHandler(db *gorm.DB) GetActiveOrderQueryHandler {
	return GetActiveOrderQueryHandler{db: db}
}

// Handle returns the newest in-flight order, or nil when none exists.
func (h GetActiveOrderQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrderQuery,
) (*GetActiveOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, status, pickup_station, total, created_at
		FROM orders
		WHERE customer_id = ? AND status IN (?, ?, ?)
		ORDER BY created_at DESC
		LIMIT 1
	`, query.CustomerID(), order.Pending, order.Preparing, order.ReadyForPickup).Row()

	var resp GetActiveOrderQueryResponse
	var id uuid.UUID
	var status, station int

	err := row.Scan(&id, &status, &station, &resp.Total, &resp.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	resp.OrderID = orderID
	resp.Status = order.Status(status).String()
	resp.Station = order.Station(station).String()

	return &resp, nil
}
