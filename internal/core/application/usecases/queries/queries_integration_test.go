package queries_test

import (
	"context"
	"testing"
	"time"

	"buffet/internal/adapters/out/postgres/itemrepo"
	"buffet/internal/adapters/out/postgres/orderrepo"
	"buffet/internal/adapters/out/postgres/profilerepo"
	"buffet/internal/core/application/usecases/queries"
	"buffet/internal/core/domain/model/item"
	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
	"buffet/internal/core/domain/model/profile"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// QueriesIntegrationTestSuite exercises the raw-SQL read handlers against a
// real PostgreSQL schema populated through the write-side repositories.
type QueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgrescontainer.PostgresContainer
	db        *gorm.DB

	orderRepo   *orderrepo.GormOrderRepository
	itemRepo    *itemrepo.GormItemRepository
	profileRepo *profilerepo.GormProfileRepository

	popcorn item.Item
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgrescontainer.Run(ctx,
		"postgres:15-alpine",
		postgrescontainer.WithDatabase("testdb"),
		postgrescontainer.WithUsername("testuser"),
		postgrescontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{},
		&itemrepo.ItemDTO{}, &profilerepo.ProfileDTO{}))
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_items, items, profiles").Error)

	suite.orderRepo = orderrepo.NewGormOrderRepository(suite.db)
	suite.itemRepo = itemrepo.NewGormItemRepository(suite.db)
	suite.profileRepo = profilerepo.NewGormProfileRepository(suite.db)

	ctx := context.Background()

	popcorn, err := item.NewItem(
		kernel.NewUUID(), "Popcorn L", item.Popcorn, decimal.RequireFromString("5.50"), true)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.itemRepo.Add(ctx, popcorn))
	suite.popcorn = popcorn
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) addCart(customerID int64, quantity int) *order.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	cart, err := order.NewCart(kernel.NewUUID(), customerID, now)
	suite.Require().NoError(err)
	for range quantity {
		suite.Require().NoError(cart.AddItem(suite.popcorn.ID(), suite.popcorn.Price(), now))
	}
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), cart))
	return cart
}

func (suite *QueriesIntegrationTestSuite) TestGetCart_ResolvesItemNames() {
	ctx := context.Background()
	cart := suite.addCart(42, 2)

	handler := queries.NewGetCartQueryHandler(suite.db)
	query, err := queries.NewGetCartQuery(42)
	suite.Require().NoError(err)

	resp, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.True(resp.OrderID.IsEqual(cart.ID()))
	suite.Require().Len(resp.Lines, 1)
	suite.Equal("Popcorn L", resp.Lines[0].ItemName)
	suite.Equal(2, resp.Lines[0].Quantity)
	suite.True(resp.Lines[0].Subtotal.Equal(decimal.RequireFromString("11.00")))
	suite.True(resp.Total.Equal(decimal.RequireFromString("11.00")))
}

func (suite *QueriesIntegrationTestSuite) TestGetCart_NoCartReturnsNil() {
	handler := queries.NewGetCartQueryHandler(suite.db)
	query, err := queries.NewGetCartQuery(42)
	suite.Require().NoError(err)

	resp, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Nil(resp)
}

func (suite *QueriesIntegrationTestSuite) TestGetNewOrders_StationScopedOldestFirst() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	operatorCustomer, err := profile.NewProfile(42, "alice", "Alice", profile.RoleCustomer)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.profileRepo.Upsert(ctx, operatorCustomer))

	first := suite.addCart(42, 1)
	_, err = first.Checkout(order.StationLeft, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Update(ctx, first))

	second := suite.addCart(43, 1)
	_, err = second.Checkout(order.StationLeft, now.Add(time.Second))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Update(ctx, second))

	other := suite.addCart(44, 1)
	_, err = other.Checkout(order.StationRight, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Update(ctx, other))

	handler := queries.NewGetNewOrdersQueryHandler(suite.db)
	query, err := queries.NewGetNewOrdersQuery(order.StationLeft)
	suite.Require().NoError(err)

	resp, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(resp, 2)
	suite.True(resp[0].OrderID.IsEqual(first.ID()))
	suite.Equal("Alice", resp[0].CustomerName)
	suite.Equal(1, resp[0].ItemCount)
	// No profile row for the second customer, fall back to the chat ID.
	suite.Equal("43", resp[1].CustomerName)
}

func (suite *QueriesIntegrationTestSuite) TestGetActiveOrder_And_History() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	done := suite.addCart(42, 1)
	_, err := done.Checkout(order.StationLeft, now.Add(-2*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Update(ctx, done))
	suite.Require().NoError(suite.orderRepo.TransitionStatus(
		ctx, done.ID(), order.Pending, order.Preparing, order.StationLeft, now))
	suite.Require().NoError(suite.orderRepo.TransitionStatus(
		ctx, done.ID(), order.Preparing, order.ReadyForPickup, order.StationLeft, now))
	suite.Require().NoError(suite.orderRepo.TransitionStatus(
		ctx, done.ID(), order.ReadyForPickup, order.Completed, order.StationLeft, now))

	active := suite.addCart(42, 2)
	_, err = active.Checkout(order.StationRight, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Update(ctx, active))

	activeHandler := queries.NewGetActiveOrderQueryHandler(suite.db)
	activeQuery, err := queries.NewGetActiveOrderQuery(42)
	suite.Require().NoError(err)

	resp, err := activeHandler.Handle(ctx, activeQuery)
	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.True(resp.OrderID.IsEqual(active.ID()))
	suite.Equal("pending", resp.Status)
	suite.Equal("right", resp.Station)

	historyHandler := queries.NewGetOrderHistoryQueryHandler(suite.db)
	historyQuery, err := queries.NewGetOrderHistoryQuery(42, 0)
	suite.Require().NoError(err)

	history, err := historyHandler.Handle(ctx, historyQuery)
	suite.Require().NoError(err)
	suite.Require().Len(history, 2)
	suite.True(history[0].OrderID.IsEqual(active.ID()))
	suite.True(history[1].OrderID.IsEqual(done.ID()))
	suite.Equal("completed", history[1].Status)
}

func (suite *QueriesIntegrationTestSuite) TestGetActiveOrder_NoneReturnsNil() {
	handler := queries.NewGetActiveOrderQueryHandler(suite.db)
	query, err := queries.NewGetActiveOrderQuery(42)
	suite.Require().NoError(err)

	resp, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Nil(resp)
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
