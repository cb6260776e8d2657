package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"buffet/internal/adapters/out/postgres"
	"buffet/internal/adapters/out/postgres/orderrepo"
	"buffet/internal/adapters/out/postgres/profilerepo"
	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
	"buffet/internal/core/domain/model/profile"
	"buffet/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transaction semantics of the GORM
// unit of work against a real PostgreSQL instance.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgrescontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
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
		&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}, &profilerepo.ProfileDTO{}))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items, profiles").Error)
	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newCart(customerID int64) *order.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	cart, err := order.NewCart(kernel.NewUUID(), customerID, now)
	suite.Require().NoError(err)
	suite.Require().NoError(cart.AddItem(kernel.NewUUID(), decimal.RequireFromString("2.00"), now))
	return cart
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsChanges() {
	ctx := context.Background()
	cart := suite.newCart(42)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, cart))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := orderrepo.NewGormOrderRepository(suite.db).Get(ctx, cart.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(cart.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	cart := suite.newCart(42)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, cart))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := orderrepo.NewGormOrderRepository(suite.db).Get(ctx, cart.ID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackAfterCommit_IsInvalidTransaction() {
	ctx := context.Background()
	cart := suite.newCart(42)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, cart))
	suite.Require().NoError(uow.Commit(ctx))

	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositories_WithoutBegin_UseBaseConnection() {
	ctx := context.Background()
	cart := suite.newCart(42)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, cart))

	loaded, err := orderrepo.NewGormOrderRepository(suite.db).Get(ctx, cart.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(cart.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentCartAdds_BothIncrementsSurvive() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	itemID := kernel.NewUUID()
	price := decimal.RequireFromString("2.00")

	seed, err := order.NewCart(kernel.NewUUID(), 42, now)
	suite.Require().NoError(err)
	suite.Require().NoError(seed.AddItem(itemID, price, now))
	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.db).Add(ctx, seed))

	// Two transactions add the same item concurrently. The locked cart read
	// makes the second wait for the first commit, so it builds on quantity 2
	// instead of overwriting it.
	const adders = 2
	errors := make([]error, adders)
	var wg sync.WaitGroup
	for i := range adders {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			uow := suite.factory.Create()
			if errors[slot] = uow.Begin(ctx); errors[slot] != nil {
				return
			}
			defer func() {
				_ = uow.Rollback(ctx)
			}()

			repo := uow.OrderRepository()
			cart, err := repo.GetCart(ctx, 42)
			if err != nil {
				errors[slot] = err
				return
			}
			if err = cart.AddItem(itemID, price, time.Now().UTC()); err != nil {
				errors[slot] = err
				return
			}
			if err = repo.Update(ctx, cart); err != nil {
				errors[slot] = err
				return
			}
			errors[slot] = uow.Commit(ctx)
		}(i)
	}
	wg.Wait()

	for i := range adders {
		suite.Require().NoError(errors[i])
	}

	loaded, err := orderrepo.NewGormOrderRepository(suite.db).GetCart(ctx, 42)
	suite.Require().NoError(err)
	suite.Require().Len(loaded.Items(), 1)
	suite.Equal(3, loaded.Items()[0].Quantity())
	suite.True(loaded.Total().Equal(decimal.RequireFromString("6.00")))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestProfileUpsert_KeepsAssignedRole() {
	ctx := context.Background()
	uow := suite.factory.Create()
	profiles := uow.ProfileRepository()

	operator, err := profile.NewProfile(7, "lefty", "Left Operator", profile.RoleOperatorLeft)
	suite.Require().NoError(err)
	suite.Require().NoError(profiles.Upsert(ctx, operator))

	// A later /start arrives as a plain customer upsert.
	returning, err := profile.NewProfile(7, "lefty_new", "Left Operator", profile.RoleCustomer)
	suite.Require().NoError(err)
	suite.Require().NoError(profiles.Upsert(ctx, returning))

	stored, err := profiles.Get(ctx, 7)
	suite.Require().NoError(err)
	suite.Equal(profile.RoleOperatorLeft, stored.Role())
	suite.Equal("lefty_new", stored.Username())

	operators, err := profiles.GetByRole(ctx, profile.RoleOperatorLeft)
	suite.Require().NoError(err)
	suite.Len(operators, 1)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
