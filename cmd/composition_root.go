package cmd

import (
	"errors"
	"log/slog"

	httpadapter "shop/internal/adapters/in/http"
	"shop/internal/adapters/out/kafka"
	"shop/internal/adapters/out/postgres"
	"shop/internal/adapters/out/redis"
	"shop/internal/core/application/eventhandlers"
	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs     Config
	gormDB      *gorm.DB
	logger      *slog.Logger
	publisher   *kafka.OrderEventPublisher
	redisClient *goredis.Client
	statusCache *redis.OrderStatusCache
	uowFactory  postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	publisher := kafka.NewOrderEventPublisher(configs.KafkaBrokers, configs.KafkaOrderChangedTopic)
	redisClient := redis.NewClient(configs.RedisAddr)
	statusCache := redis.NewOrderStatusCache(redisClient, configs.OrderStatusCacheTTL)
	eventHandler := eventhandlers.NewOrderStatusChangedHandler(publisher, statusCache, logger)

	return CompositionRoot{
		configs:     configs,
		gormDB:      gormDB,
		logger:      logger,
		publisher:   publisher,
		redisClient: redisClient,
		statusCache: statusCache,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB, eventHandler),
	}
}

// Close releases the Kafka writer and the Redis connections.
func (c *CompositionRoot) Close() error {
	return errors.Join(c.publisher.Close(), c.redisClient.Close())
}

func (c *CompositionRoot) checkoutUoWFactory() commands.CheckoutUoWFactory {
	return FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateCheckoutCommandHandler() commands.CreateCheckoutCommandHandler {
	return commands.NewCreateCheckoutCommandHandler(c.checkoutUoWFactory())
}

func (c *CompositionRoot) CreateSetCheckoutAddressCommandHandler() commands.SetCheckoutAddressCommandHandler {
	return commands.NewSetCheckoutAddressCommandHandler(c.checkoutUoWFactory())
}

func (c *CompositionRoot) CreateUseSingleAddressCommandHandler() commands.UseSingleAddressCommandHandler {
	return commands.NewUseSingleAddressCommandHandler(c.checkoutUoWFactory())
}

func (c *CompositionRoot) CreateSetCheckoutShippingMethodCommandHandler() commands.SetCheckoutShippingMethodCommandHandler {
	return commands.NewSetCheckoutShippingMethodCommandHandler(c.checkoutUoWFactory())
}

func (c *CompositionRoot) CreateSetCheckoutPaymentCommandHandler() commands.SetCheckoutPaymentCommandHandler {
	return commands.NewSetCheckoutPaymentCommandHandler(c.checkoutUoWFactory())
}

func (c *CompositionRoot) CreateCompleteCheckoutCommandHandler() commands.CompleteCheckoutCommandHandler {
	var f commands.CompleteCheckoutUoWFactory = FuncCompleteCheckoutUoWFactory(func() commands.CompleteCheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteCheckoutCommandHandler(f)
}

func (c *CompositionRoot) CreateDeleteStaleCheckoutsCommandHandler() commands.DeleteStaleCheckoutsCommandHandler {
	return commands.NewDeleteStaleCheckoutsCommandHandler(c.checkoutUoWFactory())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCreateFulfillmentCommandHandler() commands.CreateFulfillmentCommandHandler {
	return commands.NewCreateFulfillmentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateFulfillmentCommandHandler() commands.FulfillmentCommandHandler {
	return commands.NewFulfillmentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.gormDB, c.statusCache, c.logger)
}

// CreateServer wires every use case into the HTTP server.
func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	createCheckout := c.CreateCreateCheckoutCommandHandler()
	setCheckoutAddress := c.CreateSetCheckoutAddressCommandHandler()
	useSingleAddress := c.CreateUseSingleAddressCommandHandler()
	setCheckoutShippingMethod := c.CreateSetCheckoutShippingMethodCommandHandler()
	setCheckoutPayment := c.CreateSetCheckoutPaymentCommandHandler()
	completeCheckout := c.CreateCompleteCheckoutCommandHandler()
	changeOrderStatus := c.CreateChangeOrderStatusCommandHandler()
	createFulfillment := c.CreateCreateFulfillmentCommandHandler()
	fulfillment := c.CreateFulfillmentCommandHandler()

	return httpadapter.NewServer(httpadapter.Handlers{
		CreateCheckout:            &createCheckout,
		SetCheckoutAddress:        &setCheckoutAddress,
		UseSingleAddress:          &useSingleAddress,
		SetCheckoutShippingMethod: &setCheckoutShippingMethod,
		SetCheckoutPayment:        &setCheckoutPayment,
		CompleteCheckout:          &completeCheckout,
		ChangeOrderStatus:         &changeOrderStatus,
		CreateFulfillment:         &createFulfillment,
		Fulfillment:               &fulfillment,
		GetOrder:                  c.CreateGetOrderQueryHandler(),
		GetOrderStatus:            c.CreateGetOrderStatusQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	deleteStaleCheckouts := c.CreateDeleteStaleCheckoutsCommandHandler()
	return jobs.NewJobManager(&deleteStaleCheckouts, c.configs.StaleCheckoutSchedule, c.configs.StaleCheckoutTTL, c.logger)
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCompleteCheckoutUoWFactory func() commands.CompleteCheckoutUoW

func (f FuncCompleteCheckoutUoWFactory) Create() commands.CompleteCheckoutUoW {
	return f()
}
