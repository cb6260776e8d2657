package commands_test

import (
	"context"
	"time"

	"buffet/internal/core/application/usecases/commands"
	"buffet/internal/core/domain/model/item"
	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
	"buffet/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Shared mocks for the command handler tests. Every handler in this package
// works through the same repository surface, so one set of mocks serves all
// of them.

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *OrderRepoMock) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *OrderRepoMock) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *OrderRepoMock) GetCart(ctx context.Context, customerID int64) (*order.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *OrderRepoMock) GetOrCreateCart(ctx context.Context, candidate *order.Order) (*order.Order, error) {
	args := m.Called(ctx, candidate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *OrderRepoMock) GetPendingByStation(ctx context.Context, station order.Station) ([]*order.Order, error) {
	args := m.Called(ctx, station)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *OrderRepoMock) GetCartsUpdatedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *OrderRepoMock) TransitionStatus(
	ctx context.Context,
	id kernel.UUID,
	from, to order.Status,
	station order.Station,
	now time.Time,
) error {
	args := m.Called(ctx, id, from, to, station, now)
	return args.Error(0)
}

func (m *OrderRepoMock) CancelIdleCart(ctx context.Context, id kernel.UUID, cutoff, now time.Time) error {
	args := m.Called(ctx, id, cutoff, now)
	return args.Error(0)
}

type OrderUoWMock struct{ mock.Mock }

func (m *OrderUoWMock) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *OrderUoWMock) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *OrderUoWMock) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *OrderUoWMock) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type OrderUoWFactoryMock struct{ mock.Mock }

func (m *OrderUoWFactoryMock) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// CatalogStub resolves only the items it was seeded with.
type CatalogStub struct {
	items map[kernel.UUID]item.Item
}

func NewCatalogStub(items ...item.Item) *CatalogStub {
	byID := make(map[kernel.UUID]item.Item, len(items))
	for _, itm := range items {
		byID[itm.ID()] = itm
	}
	return &CatalogStub{items: byID}
}

func (c *CatalogStub) Find(_ context.Context, id kernel.UUID) (item.Item, bool) {
	itm, ok := c.items[id]
	return itm, ok
}

// PublisherRecorder captures published events for assertions.
type PublisherRecorder struct {
	Events []order.StateChanged
	Orders []*order.Order
}

func (p *PublisherRecorder) Publish(_ context.Context, evt order.StateChanged, aggregate *order.Order) {
	p.Events = append(p.Events, evt)
	p.Orders = append(p.Orders, aggregate)
}

func mustCartWithItem(customerID int64, itemID kernel.UUID, price decimal.Decimal, now time.Time) *order.Order {
	cart, err := order.NewCart(kernel.NewUUID(), customerID, now)
	if err != nil {
		panic(err)
	}
	if err = cart.AddItem(itemID, price, now); err != nil {
		panic(err)
	}
	return cart
}

func two() decimal.Decimal {
	return decimal.NewFromInt(2)
}

func mustPopcorn(price string) item.Item {
	itm, err := item.NewItem(
		kernel.NewUUID(), "Popcorn L", item.Popcorn, decimal.RequireFromString(price), true)
	if err != nil {
		panic(err)
	}
	return itm
}
