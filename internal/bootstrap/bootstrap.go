package bootstrap

import (
	"context"

	"github.com/hoanghiep2625/cex-be/internal/config"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/hoanghiep2625/cex-be/pkg/postgresql"
	"github.com/hoanghiep2625/cex-be/pkg/redis"
)

// Bootstrap holds every component of the trading core.
type Bootstrap struct {
	Config     *config.Config
	Logger     logger.Interface
	Repository Repository
	Usecase    Usecase
	App        App

	DB    postgresql.PostgreSQLClient
	Redis redis.Client
}

// BootstrapConfig is the config for the bootstrap.
type BootstrapConfig struct {
	Config *config.Config
	DB     postgresql.PostgreSQLClient
	Redis  redis.Client
	Logger logger.Interface
}

// Init wires repositories, usecases and the app layer.
func (b *Bootstrap) Init(cfg BootstrapConfig) *Bootstrap {
	b.Config = cfg.Config
	b.DB = cfg.DB
	b.Redis = cfg.Redis
	b.Logger = cfg.Logger

	b.registerRepository()
	b.registerUsecase()
	b.registerApp()

	return b
}

// Start runs the event dispatcher, rebuilds the books, then opens the inbound surfaces.
func (b *Bootstrap) Start(ctx context.Context) error {
	b.Usecase.Dispatcher.Start()

	if err := b.App.Engine.Start(ctx); err != nil {
		return err
	}

	if b.App.Consumer != nil {
		b.App.Consumer.Start(ctx)
	}
	return nil
}

// Stop shuts components down in reverse start order.
func (b *Bootstrap) Stop(ctx context.Context) {
	if b.App.Consumer != nil {
		if err := b.App.Consumer.Stop(ctx); err != nil {
			b.Logger.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "stop_consumer"})
		}
	}

	if err := b.App.Engine.Stop(ctx); err != nil {
		b.Logger.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "stop_engine"})
	}

	if err := b.Usecase.Dispatcher.Stop(ctx); err != nil {
		b.Logger.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "stop_dispatcher"})
	}

	if b.Usecase.KafkaPublisher != nil {
		if err := b.Usecase.KafkaPublisher.Close(); err != nil {
			b.Logger.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "close_kafka_publisher"})
		}
	}
}
