// Package itemrepo persists the catalog of sellable items.
package itemrepo

import (
	"buffet/internal/core/domain/model/item"
	"buffet/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemDTO represents the database structure for catalog items.
type ItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string
	Category    string          `gorm:"index"`
	Price       decimal.Decimal `gorm:"type:numeric"`
	IsAvailable bool            `gorm:"index"`
}

// TableName specifies the database table name for catalog items.
func (ItemDTO) TableName() string {
	return "items"
}

func fromDomain(itm item.Item) ItemDTO {
	return ItemDTO{
		ID:          itm.ID().Bytes(),
		Name:        itm.Name(),
		Category:    itm.Category().String(),
		Price:       itm.Price(),
		IsAvailable: itm.IsAvailable(),
	}
}

func toDomain(dto ItemDTO) (item.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return item.Item{}, err
	}

	return item.NewItem(id, dto.Name, item.CategoryFromString(dto.Category), dto.Price, dto.IsAvailable)
}
