package cmd

import (
	"context"
	"errors"
	"log/slog"

	httpadapter "bookstore/internal/adapters/in/http"
	"bookstore/internal/adapters/out/kafka"
	"bookstore/internal/adapters/out/metrics"
	"bookstore/internal/adapters/out/postgres"
	idempotency "bookstore/internal/adapters/out/redis"
	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/ports"
	"bookstore/internal/jobs"
	"bookstore/internal/pkg/clock"
	"bookstore/internal/pkg/logging"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot holds the long-lived dependencies of the service and builds the
// handlers and servers on top of them. Close releases the Kafka and Redis clients it
// opened; the database pool stays with the caller.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      clock.Clock
	logger     *slog.Logger

	metrics  *metrics.Metrics
	notifier ports.Notifier
	kafka    *kafka.OrderStatusNotifier
	redis    *redis.Client
}

// NewCompositionRoot wires the adapters selected by cfg. Kafka and Redis clients are
// created lazily by their drivers; nothing here dials out.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      clock.System(),
		logger:     logger,
		metrics:    metrics.New(prometheus.NewRegistry()),
	}

	var next ports.Notifier
	if len(cfg.KafkaBrokers) > 0 {
		c.kafka = kafka.NewOrderStatusNotifier(cfg.KafkaBrokers, cfg.KafkaOrderChangedTopic, logger)
		next = c.kafka
	}
	c.notifier = metrics.NewCountingNotifier(c.metrics, next)

	if cfg.RedisAddr != "" {
		c.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	return c
}

func (c *CompositionRoot) placementUoWFactory() commands.PlacementUoWFactory {
	return FuncPlacementUoWFactory(func() commands.PlacementUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) lifecycleUoWFactory() commands.LifecycleUoWFactory {
	return FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) invoiceUoWFactory() commands.InvoiceUoWFactory {
	return FuncInvoiceUoWFactory(func() commands.InvoiceUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) pricingUoWFactory() commands.PricingUoWFactory {
	return FuncPricingUoWFactory(func() commands.PricingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) readers() queries.Readers {
	return FuncReaders(c.uowFactory.Create)
}

func (c *CompositionRoot) invoiceGenerator() commands.InvoiceGenerator {
	return commands.NewInvoiceGenerator(c.cfg.TaxRate, c.clock)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.placementUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateApproveOrderCommandHandler() commands.ApproveOrderCommandHandler {
	return commands.NewApproveOrderCommandHandler(c.lifecycleUoWFactory(), c.notifier, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.lifecycleUoWFactory(), c.notifier, c.clock, c.logger)
}

func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() commands.AssignDeliveryCommandHandler {
	return commands.NewAssignDeliveryCommandHandler(c.lifecycleUoWFactory(), c.notifier, c.clock, c.logger)
}

func (c *CompositionRoot) CreateConfirmDeliveredCommandHandler() commands.ConfirmDeliveredCommandHandler {
	return commands.NewConfirmDeliveredCommandHandler(
		c.lifecycleUoWFactory(), c.invoiceGenerator(), c.notifier, c.clock, c.logger)
}

func (c *CompositionRoot) CreateGenerateInvoiceCommandHandler() commands.GenerateInvoiceCommandHandler {
	return commands.NewGenerateInvoiceCommandHandler(c.invoiceUoWFactory(), c.invoiceGenerator())
}

func (c *CompositionRoot) CreateMarkInvoicePaidCommandHandler() commands.MarkInvoicePaidCommandHandler {
	return commands.NewMarkInvoicePaidCommandHandler(c.invoiceUoWFactory(), c.invoiceGenerator())
}

func (c *CompositionRoot) CreateRecordPriceChangeCommandHandler() commands.RecordPriceChangeCommandHandler {
	return commands.NewRecordPriceChangeCommandHandler(c.pricingUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCreatePromotionCommandHandler() commands.CreatePromotionCommandHandler {
	return commands.NewCreatePromotionCommandHandler(c.pricingUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderByIDQueryHandler() queries.GetOrderByIDQueryHandler {
	return queries.NewGetOrderByIDQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInvoiceQueryHandler() queries.GetInvoiceQueryHandler {
	return queries.NewGetInvoiceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryCandidatesQueryHandler() queries.GetDeliveryCandidatesQueryHandler {
	return queries.NewGetDeliveryCandidatesQueryHandler(c.readers())
}

func (c *CompositionRoot) CreateGetCurrentPriceQueryHandler() queries.GetCurrentPriceQueryHandler {
	return queries.NewGetCurrentPriceQueryHandler(c.readers(), c.clock)
}

func (c *CompositionRoot) CreateGetPriceHistoryQueryHandler() queries.GetPriceHistoryQueryHandler {
	return queries.NewGetPriceHistoryQueryHandler(c.readers())
}

func (c *CompositionRoot) CreateGetActivePromotionsQueryHandler() queries.GetActivePromotionsQueryHandler {
	return queries.NewGetActivePromotionsQueryHandler(c.readers(), c.clock)
}

// Handlers collects every use case the HTTP adapter serves.
func (c *CompositionRoot) Handlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		ApproveOrder:      c.CreateApproveOrderCommandHandler(),
		CancelOrder:       c.CreateCancelOrderCommandHandler(),
		AssignDelivery:    c.CreateAssignDeliveryCommandHandler(),
		ConfirmDelivered:  c.CreateConfirmDeliveredCommandHandler(),
		GenerateInvoice:   c.CreateGenerateInvoiceCommandHandler(),
		MarkInvoicePaid:   c.CreateMarkInvoicePaidCommandHandler(),
		RecordPriceChange: c.CreateRecordPriceChangeCommandHandler(),
		CreatePromotion:   c.CreateCreatePromotionCommandHandler(),

		GetOrders:             c.CreateGetOrdersQueryHandler(),
		GetOrderByID:          c.CreateGetOrderByIDQueryHandler(),
		GetInvoice:            c.CreateGetInvoiceQueryHandler(),
		GetDeliveryCandidates: c.CreateGetDeliveryCandidatesQueryHandler(),
		GetCurrentPrice:       c.CreateGetCurrentPriceQueryHandler(),
		GetPriceHistory:       c.CreateGetPriceHistoryQueryHandler(),
		GetActivePromotions:   c.CreateGetActivePromotionsQueryHandler(),
	}
}

// NewHTTPServer builds the echo instance with metrics and, when Redis is configured,
// Idempotency-Key handling.
func (c *CompositionRoot) NewHTTPServer() (*echo.Echo, error) {
	cfg := httpadapter.RouterConfig{
		Metrics:  c.metrics,
		LogLevel: logging.EchoLevel(c.cfg.LogLevel),
		Logger:   c.logger,
	}
	if c.redis != nil {
		cfg.Idempotency = idempotency.NewIdempotencyStore(c.redis, c.cfg.IdempotencyTTL)
	}
	return httpadapter.NewRouter(httpadapter.NewServer(c.Handlers(), c.logger), cfg)
}

// NewJobManager returns the background jobs of the service.
func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	lister := FuncDeliveredOrderLister(func(ctx context.Context, limit int) ([]kernel.UUID, error) {
		return c.uowFactory.Create().OrderRepository().ListDeliveredWithoutInvoice(ctx, limit)
	})
	return jobs.NewJobManager(
		jobs.NewInvoiceBackfillJob(lister, c.CreateGenerateInvoiceCommandHandler(),
			c.cfg.InvoiceBackfillSchedule, c.logger),
	)
}

// Close releases the Kafka writer and the Redis client.
func (c *CompositionRoot) Close() error {
	var errList []error
	if c.kafka != nil {
		errList = append(errList, c.kafka.Close())
	}
	if c.redis != nil {
		errList = append(errList, c.redis.Close())
	}
	return errors.Join(errList...)
}

type FuncPlacementUoWFactory func() commands.PlacementUoW

func (f FuncPlacementUoWFactory) Create() commands.PlacementUoW {
	return f()
}

type FuncLifecycleUoWFactory func() commands.LifecycleUoW

func (f FuncLifecycleUoWFactory) Create() commands.LifecycleUoW {
	return f()
}

type FuncInvoiceUoWFactory func() commands.InvoiceUoW

func (f FuncInvoiceUoWFactory) Create() commands.InvoiceUoW {
	return f()
}

type FuncPricingUoWFactory func() commands.PricingUoW

func (f FuncPricingUoWFactory) Create() commands.PricingUoW {
	return f()
}

// FuncReaders hands out repositories of a fresh, never-begun unit of work per call,
// so concurrent queries share nothing but the pool.
type FuncReaders func() ports.UnitOfWork

func (f FuncReaders) OrderRepository() ports.OrderRepository { return f().OrderRepository() }

func (f FuncReaders) PriceChangeRepository() ports.PriceChangeRepository {
	return f().PriceChangeRepository()
}

func (f FuncReaders) PromotionRepository() ports.PromotionRepository { return f().PromotionRepository() }

func (f FuncReaders) BookCatalog() ports.BookCatalog { return f().BookCatalog() }

func (f FuncReaders) EmployeeDirectory() ports.EmployeeDirectory { return f().EmployeeDirectory() }

type FuncDeliveredOrderLister func(ctx context.Context, limit int) ([]kernel.UUID, error)

func (f FuncDeliveredOrderLister) ListDeliveredWithoutInvoice(ctx context.Context, limit int) ([]kernel.UUID, error) {
	return f(ctx, limit)
}
