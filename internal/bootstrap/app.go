package bootstrap

import (
	"time"

	"github.com/hoanghiep2625/cex-be/internal/app/consumer"
	"github.com/hoanghiep2625/cex-be/internal/app/engine"
	"github.com/hoanghiep2625/cex-be/internal/app/query"
	"github.com/hoanghiep2625/cex-be/internal/infrastructure/kafka/command"
	"github.com/hoanghiep2625/cex-be/pkg/httplib/healthcheck"
	"github.com/hoanghiep2625/cex-be/pkg/postgresql"
)

// App holds the long-running processes.
type App struct {
	Engine   *engine.Engine
	Consumer *consumer.Consumer
	Query    *query.Server
	Health   *healthcheck.HealthCheck
}

// registerApp registers the engine and its inbound surfaces.
func (b *Bootstrap) registerApp() {
	cfg := b.Config

	b.App.Engine = engine.NewEngineWithOptions(
		b.Usecase.OrderUsecase,
		b.Repository.SymbolRegistry,
		b.Repository.TxManager,
		b.Usecase.Books,
		b.Usecase.Dispatcher,
		b.Logger,
		engine.OptionsFromConfig(cfg.Engine),
	)

	if cfg.Kafka.Enabled {
		reader := command.NewReader(command.ReaderConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.OrderCommandTopic,
			GroupID: cfg.Kafka.ConsumerGroup,
			MaxWait: cfg.Kafka.MaxWait,
		}, b.Logger)
		b.App.Consumer = consumer.NewConsumer(reader, b.App.Engine, b.Logger, cfg.Engine.Retry.BaseDelay)
	}

	b.App.Health = healthcheck.New(2*time.Second, map[string]healthcheck.Probe{
		"postgres": postgresql.Probe(b.DB),
		"redis":    b.Redis.Ping,
	})

	b.App.Query = query.NewServer(
		query.Config{Port: cfg.HTTP.Port, AllowedOrigins: cfg.HTTP.AllowedOrigins},
		b.App.Engine,
		b.Usecase.TradeRecorder,
		b.Usecase.OrderUsecase,
		b.Repository.BalanceRepository,
		b.Repository.DepthStore,
		b.App.Health,
		b.Logger,
	)
}
