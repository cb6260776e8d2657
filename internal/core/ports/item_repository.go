package ports

import (
	"context"

	"buffet/internal/core/domain/model/item"
)

// ItemRepository reads catalog items from external storage. The catalog is
// read-only from the core's point of view; availability and prices are
// managed elsewhere.
type ItemRepository interface {
	// GetAllAvailable retrieves the full set of currently orderable items.
	GetAllAvailable(ctx context.Context) ([]item.Item, error)
}
