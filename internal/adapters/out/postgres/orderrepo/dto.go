// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The partial unique index on customer_id enforces at most one Cart-status
// order per customer; concurrent cart creation resolves through it.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID    int64     `gorm:"index;uniqueIndex:ux_orders_open_cart,where:status = 1"`
	Status        int       `gorm:"index"`
	PickupStation int
	Total         decimal.Decimal `gorm:"type:numeric"`
	CreatedAt     time.Time       `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime:false"`

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one line item row belonging to an order.
type OrderItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index"`
	ItemID      uuid.UUID       `gorm:"type:uuid"`
	Quantity    int
	PriceAtTime decimal.Decimal `gorm:"type:numeric"`
}

// TableName specifies the database table name for line item entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database
// representation including its line items.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, line := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			ID:          line.ID().Bytes(),
			OrderID:     aggregate.ID().Bytes(),
			ItemID:      line.ItemID().Bytes(),
			Quantity:    line.Quantity(),
			PriceAtTime: line.PriceAtTime(),
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		CustomerID:    aggregate.CustomerID(),
		Status:        int(aggregate.Status()),
		PickupStation: int(aggregate.Station()),
		Total:         aggregate.Total(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
		Items:         items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// The aggregate recomputes its total from the restored lines, so the stored
// total column is never trusted on the way back in.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, row := range dto.Items {
		lineID, lineErr := kernel.UUIDFromBytes(row.ID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		itemID, itemErr := kernel.UUIDFromBytes(row.ItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		line, lineErr := order.RestoreLineItem(lineID, itemID, row.Quantity, row.PriceAtTime)
		if lineErr != nil {
			return nil, lineErr
		}
		items = append(items, line)
	}

	return order.RestoreOrder(
		id,
		dto.CustomerID,
		items,
		order.Status(dto.Status),
		order.Station(dto.PickupStation),
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
