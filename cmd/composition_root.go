package cmd

import (
	"log/slog"
	"time"

	buffethttp "buffet/internal/adapters/in/http"
	"buffet/internal/adapters/out/postgres"
	"buffet/internal/adapters/out/postgres/itemrepo"
	"buffet/internal/adapters/out/postgres/profilerepo"
	"buffet/internal/adapters/out/telegram"
	"buffet/internal/catalog"
	"buffet/internal/core/application/auth"
	"buffet/internal/core/application/usecases/commands"
	"buffet/internal/core/application/usecases/queries"
	"buffet/internal/core/ports"
	"buffet/internal/jobs"
	"buffet/internal/notifications"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, use cases and background jobs together.
// Everything is constructed once; handler factory methods hand out cheap
// value copies over the shared connections.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	catalogCache *catalog.Cache
	messenger    ports.Messenger
	profiles     ports.ProfileRepository
	dispatcher   *notifications.Dispatcher
	roleGate     *auth.RoleGate

	cartMaxIdle time.Duration
}

// NewCompositionRoot builds the object graph from the config and an open
// database connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	catalogOpts := make([]catalog.Option, 0, 1)
	if ttl, err := time.ParseDuration(config.CatalogTTL); err == nil && ttl > 0 {
		catalogOpts = append(catalogOpts, catalog.WithTTL(ttl))
	}

	catalogCache := catalog.NewCache(itemrepo.NewGormItemRepository(gormDB), logger, catalogOpts...)
	messenger := telegram.NewClient(config.TelegramBotToken)
	profiles := profilerepo.NewGormProfileRepository(gormDB)

	var cartMaxIdle time.Duration
	if idle, err := time.ParseDuration(config.CartMaxIdle); err == nil && idle > 0 {
		cartMaxIdle = idle
	}

	return CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:       logger,
		catalogCache: catalogCache,
		messenger:    messenger,
		profiles:     profiles,
		dispatcher:   notifications.NewDispatcher(messenger, profiles, catalogCache, logger),
		roleGate:     auth.NewRoleGate(profiles, logger),
		cartMaxIdle:  cartMaxIdle,
	}
}

// CatalogCache returns the shared menu snapshot cache.
func (c *CompositionRoot) CatalogCache() *catalog.Cache {
	return c.catalogCache
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	return commands.NewAddCartItemCommandHandler(c.orderUoWFactory(), c.catalogCache)
}

func (c *CompositionRoot) CreateRemoveCartItemCommandHandler() commands.RemoveCartItemCommandHandler {
	return commands.NewRemoveCartItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	return commands.NewCheckoutCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateMarkOrderReadyCommandHandler() commands.MarkOrderReadyCommandHandler {
	return commands.NewMarkOrderReadyCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateCancelStaleCartsCommandHandler() commands.CancelStaleCartsCommandHandler {
	return commands.NewCancelStaleCartsCommandHandler(c.orderUoWFactory(), c.cartMaxIdle)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNewOrdersQueryHandler() queries.GetNewOrdersQueryHandler {
	return queries.NewGetNewOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrderQueryHandler() queries.GetActiveOrderQueryHandler {
	return queries.NewGetActiveOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

// CreateJobManager builds the background jobs over the shared cache and the
// stale cart sweep handler.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.catalogCache,
		c.CreateCancelStaleCartsCommandHandler(),
		c.logger,
	)
}

// CreateWebhookServer builds the inbound webhook server with every handler
// wired.
func (c *CompositionRoot) CreateWebhookServer(config Config) *buffethttp.Server {
	return buffethttp.NewServer(
		config.TelegramWebhookSecret,
		c.roleGate,
		c.messenger,
		c.profiles,
		c.catalogCache,
		buffethttp.Handlers{
			AddCartItem:    c.CreateAddCartItemCommandHandler(),
			RemoveCartItem: c.CreateRemoveCartItemCommandHandler(),
			Checkout:       c.CreateCheckoutCommandHandler(),
			ClaimOrder:     c.CreateClaimOrderCommandHandler(),
			MarkOrderReady: c.CreateMarkOrderReadyCommandHandler(),
			CompleteOrder:  c.CreateCompleteOrderCommandHandler(),

			GetCart:         c.CreateGetCartQueryHandler(),
			GetNewOrders:    c.CreateGetNewOrdersQueryHandler(),
			GetActiveOrder:  c.CreateGetActiveOrderQueryHandler(),
			GetOrderHistory: c.CreateGetOrderHistoryQueryHandler(),
		},
		c.logger,
	)
}

// FuncOrderUoWFactory adapts a closure to the commands.OrderUoWFactory
// interface.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
