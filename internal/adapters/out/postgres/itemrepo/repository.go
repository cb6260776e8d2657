package itemrepo

import (
	"context"

	"buffet/internal/core/domain/model/item"

	"gorm.io/gorm"
)

// GormItemRepository implements ports.ItemRepository using GORM.
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GORM item repository.
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// GetAllAvailable retrieves the full set of currently orderable items,
// sorted by name for stable menu rendering.
func (r *GormItemRepository) GetAllAvailable(ctx context.Context) ([]item.Item, error) {
	var dtos []ItemDTO
	err := r.db.WithContext(ctx).Order("name").Find(&dtos, "is_available = ?", true).Error
	if err != nil {
		return nil, err
	}

	items := make([]item.Item, 0, len(dtos))
	for _, dto := range dtos {
		itm, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		items = append(items, itm)
	}

	return items, nil
}

// Add saves a catalog item. The ordering workflow never calls this; it
// exists for seeding and tests, since catalog management is out of scope.
func (r *GormItemRepository) Add(ctx context.Context, itm item.Item) error {
	if err := itm.Validate(); err != nil {
		return err
	}

	dto := fromDomain(itm)
	return r.db.WithContext(ctx).Create(&dto).Error
}
