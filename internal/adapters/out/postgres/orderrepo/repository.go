package orderrepo

import (
	"context"
	"errors"
	"time"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
	"buffet/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order and its line items to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing order and replaces its line items. Line items are
// deleted and re-inserted rather than diffed; cart line sets are small and
// the whole replacement runs inside the caller's transaction.
//
// The write requires the row to still be in Cart status. Only the cart
// workflow edits orders this way, and without the precondition a concurrent
// Cart -> Cancelled sweep could be silently undone by writing the in-memory
// status back over it. A zero-row result is errs.ErrPreconditionFailed.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(order.Cart)).
		Updates(map[string]any{
			"status":         dto.Status,
			"pickup_station": dto.PickupStation,
			"total":          dto.Total,
			"updated_at":     dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrPreconditionFailed
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).
		Delete(&OrderItemDTO{}).Error; err != nil {
		return err
	}

	if len(dto.Items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&dto.Items).Error
}

// Get retrieves an order with its line items by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetCart retrieves the customer's single Cart-status order. The row is read
// FOR UPDATE so that two transactions mutating the same cart serialize on the
// read instead of both building on the same snapshot; outside a transaction
// the lock ends with the statement.
func (r *GormOrderRepository) GetCart(ctx context.Context, customerID int64) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "customer_id = ? AND status = ?", customerID, int(order.Cart)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart", customerID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOrCreateCart atomically finds the customer's cart or inserts the given
// candidate. The insert rides on the partial unique cart index: a concurrent
// creation makes it a no-op, and the follow-up read returns whichever cart
// actually won.
func (r *GormOrderRepository) GetOrCreateCart(ctx context.Context, candidate *order.Order) (*order.Order, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(candidate)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit("Items").
		Create(&dto).Error
	if err != nil {
		return nil, err
	}

	return r.GetCart(ctx, candidate.CustomerID())
}

// GetPendingByStation retrieves all Pending orders submitted to the station,
// oldest first.
func (r *GormOrderRepository) GetPendingByStation(
	ctx context.Context, station order.Station,
) ([]*order.Order, error) {
	if err := station.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at").
		Find(&dtos, "status = ? AND pickup_station = ?", int(order.Pending), int(station)).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetCartsUpdatedBefore retrieves Cart-status orders untouched since the cutoff.
func (r *GormOrderRepository) GetCartsUpdatedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Find(&dtos, "status = ? AND updated_at < ?", int(order.Cart), cutoff).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// TransitionStatus performs the atomic conditional status move. The expected
// current status, and the station when one is given, are part of the WHERE
// clause of a single UPDATE; the row either moves in one step or stays
// untouched. A zero-row result maps to errs.ErrPreconditionFailed and the
// caller decides what that means.
func (r *GormOrderRepository) TransitionStatus(
	ctx context.Context,
	id kernel.UUID,
	from, to order.Status,
	station order.Station,
	now time.Time,
) error {
	if err := id.Validate(); err != nil {
		return err
	}

	tx := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int(from))
	if station != order.NoStation {
		tx = tx.Where("pickup_station = ?", int(station))
	}

	result := tx.Updates(map[string]any{
		"status":     int(to),
		"updated_at": now,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrPreconditionFailed
	}

	return nil
}

// CancelIdleCart cancels the cart only while it is still untouched: the
// WHERE clause requires Cart status and an updated_at older than the cutoff,
// so a cart the customer revives after the sweep's read no longer matches.
func (r *GormOrderRepository) CancelIdleCart(
	ctx context.Context,
	id kernel.UUID,
	cutoff, now time.Time,
) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND updated_at < ?", id.Bytes(), int(order.Cart), cutoff).
		Updates(map[string]any{
			"status":     int(order.Cancelled),
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrPreconditionFailed
	}

	return nil
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
