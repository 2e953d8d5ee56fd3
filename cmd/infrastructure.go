package cmd

import (
	"context"
	"fmt"

	"propertyhub/api/health"
	cartapp "propertyhub/application/cart"
	"propertyhub/config"
	"propertyhub/domain/cart"
	"propertyhub/domain/enquiry"
	"propertyhub/domain/shared"
	"propertyhub/infrastructure/lock"
	"propertyhub/infrastructure/messaging/rabbitmq"
	"propertyhub/infrastructure/persistence/memory"
	"propertyhub/infrastructure/persistence/outbox"
	"propertyhub/infrastructure/persistence/relational"
	"propertyhub/infrastructure/persistence/retry"
	"propertyhub/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infrastructure holds the storage-backed ports selected by configuration.
type Infrastructure struct {
	CartRepo    cart.Repository
	EnquiryRepo enquiry.Repository
	Outbox      outbox.Store
	UoWFactory  shared.UnitOfWorkFactory
	Locker      cartapp.Locker
	Checks      map[string]health.CheckFunc

	DB       *gorm.DB
	InMemory bool

	closers []func() error
}

// NewInfrastructure opens storage and, when configured, the redis lock client.
func NewInfrastructure(ctx context.Context, cfg *config.Config) (*Infrastructure, error) {
	infra := &Infrastructure{Checks: map[string]health.CheckFunc{}}
	retryConfig := retry.FromAppConfig(cfg)

	switch cfg.Database.Type {
	case "memory":
		logger.Info("Using in-memory persistence layer")
		store := memory.NewStore()
		infra.CartRepo = memory.NewCartRepository(store)
		infra.EnquiryRepo = memory.NewEnquiryRepository(store)
		infra.Outbox = memory.NewOutboxRepository(store)
		infra.UoWFactory = memory.NewUnitOfWorkFactory(store, retryConfig)
		infra.InMemory = true
	default:
		db, err := relational.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := relational.Ping(ctx, db); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		if cfg.Database.AutoMigrate {
			if err := relational.AutoMigrate(db); err != nil {
				return nil, err
			}
		}
		infra.DB = db
		infra.CartRepo = relational.NewCartRepository(db)
		infra.EnquiryRepo = relational.NewEnquiryRepository(db)
		infra.Outbox = relational.NewOutboxRepository(db)
		infra.UoWFactory = relational.NewUnitOfWorkFactory(db, retryConfig)
		infra.Checks["database"] = func(ctx context.Context) error { return relational.Ping(ctx, db) }
		infra.closers = append(infra.closers, func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
	}

	switch cfg.Cart.Lock.Mode {
	case "local":
		infra.Locker = lock.NewLocalLocker(cfg.Cart.Lock.WaitLimit)
	case "redis":
		client, err := lock.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.Locker = lock.NewRedisLocker(client, cfg.Cart.Lock)
		infra.Checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		infra.closers = append(infra.closers, client.Close)
	}

	logger.Info("Infrastructure ready",
		zap.String("database", cfg.Database.Type),
		zap.String("cart_lock", cfg.Cart.Lock.Mode),
		zap.Bool("retry_enabled", retryConfig.Enabled),
	)
	return infra, nil
}

// NewOutboxWorker builds the relay, publishing to RabbitMQ when a URL is
// configured and to the log otherwise.
func (i *Infrastructure) NewOutboxWorker(cfg *config.Config) (*outbox.Worker, error) {
	var publisher outbox.Publisher = &outbox.LoggingPublisher{}
	if cfg.RabbitMQ.URL != "" {
		pool, err := rabbitmq.NewChannelPool(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.ChannelPoolSize)
		if err != nil {
			return nil, err
		}
		i.closers = append(i.closers, func() error { pool.Close(); return nil })
		publisher = rabbitmq.NewPublisher(pool, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.PublishTimeout)
	}

	return outbox.NewWorker(i.Outbox, publisher, cfg.Worker.PollInterval, cfg.Worker.BatchSize, cfg.Worker.MaxRetries)
}

// Close releases connections in reverse order of opening.
func (i *Infrastructure) Close() {
	for j := len(i.closers) - 1; j >= 0; j-- {
		if err := i.closers[j](); err != nil {
			logger.Warn("Failed to close resource", zap.Error(err))
		}
	}
	i.closers = nil
}
