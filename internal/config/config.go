package config

import (
	"fmt"
	"time"

	"github.com/hoanghiep2625/cex-be/pkg/config"
	"github.com/hoanghiep2625/cex-be/pkg/postgresql"
	"github.com/hoanghiep2625/cex-be/pkg/redis"
	"github.com/hoanghiep2625/cex-be/pkg/retry"
	"github.com/shopspring/decimal"
)

// MarketBuyReservation selects how much quote a MARKET BUY locks up front.
type MarketBuyReservation string

const (
	// ReserveDepth locks the exact cost of the fills the book can provide.
	ReserveDepth MarketBuyReservation = "depth"
	// ReserveMaxNotional locks the symbol's max notional and spends at most that.
	ReserveMaxNotional MarketBuyReservation = "max_notional"
)

// Config represents the trading core configuration.
type Config struct {
	App      AppConfig         `envPrefix:"APP_"`
	Postgres postgresql.Config `envPrefix:"POSTGRES_"`
	Redis    redis.Config      `envPrefix:"REDIS_"`
	Kafka    KafkaConfig       `envPrefix:"KAFKA_"`
	Engine   EngineConfig      `envPrefix:"ENGINE_"`
	Fee      FeeConfig         `envPrefix:"FEE_"`
	HTTP     HTTPConfig        `envPrefix:"HTTP_"`
	GRPC     GRPCConfig        `envPrefix:"GRPC_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"trading-core"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// KafkaConfig represents the Kafka configuration.
type KafkaConfig struct {
	Enabled           bool          `env:"ENABLED" envDefault:"true"`
	Brokers           []string      `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	OrderCommandTopic string        `env:"ORDER_COMMAND_TOPIC" envDefault:"order-commands"`
	ConsumerGroup     string        `env:"CONSUMER_GROUP" envDefault:"trading-core"`
	OrderEventTopic   string        `env:"ORDER_EVENT_TOPIC" envDefault:"order-events"`
	TradeEventTopic   string        `env:"TRADE_EVENT_TOPIC" envDefault:"trade-events"`
	MaxWait           time.Duration `env:"MAX_WAIT" envDefault:"500ms"`
}

// EngineConfig represents the matching engine configuration.
type EngineConfig struct {
	QueueSize            int                  `env:"QUEUE_SIZE" envDefault:"1024"`
	Retry                retry.Config         `envPrefix:"RETRY_"`
	MarketBuyReservation MarketBuyReservation `env:"MARKET_BUY_RESERVATION" envDefault:"depth"`
	DefaultMaxNotional   decimal.Decimal      `env:"DEFAULT_MAX_NOTIONAL" envDefault:"100000"`
	EventBuffer          int                  `env:"EVENT_BUFFER" envDefault:"4096"`
	PublishTimeout       time.Duration        `env:"PUBLISH_TIMEOUT" envDefault:"2s"`
	DepthMirrorLevels    int                  `env:"DEPTH_MIRROR_LEVELS" envDefault:"50"`
	// Symbols restricts the engine to these symbols. Empty means every TRADING symbol.
	Symbols []string `env:"SYMBOLS" envSeparator:","`
}

// FeeConfig represents the trading fee configuration.
type FeeConfig struct {
	MakerRate     decimal.Decimal `env:"MAKER_RATE" envDefault:"0"`
	TakerRate     decimal.Decimal `env:"TAKER_RATE" envDefault:"0"`
	AccountUserID string          `env:"ACCOUNT_USER_ID" envDefault:"fee-account"`
}

// HTTPConfig represents the query API configuration.
type HTTPConfig struct {
	Port           int      `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// GRPCConfig represents the gRPC health server configuration.
type GRPCConfig struct {
	Port int `env:"PORT" envDefault:"8880"`
}

// Load loads the configuration from the environment and an optional .env file.
func Load(files ...string) (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, files...); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c *Config) Validate() error {
	switch c.Engine.MarketBuyReservation {
	case ReserveDepth, ReserveMaxNotional:
	default:
		return fmt.Errorf("invalid ENGINE_MARKET_BUY_RESERVATION %q", c.Engine.MarketBuyReservation)
	}

	if c.Engine.QueueSize <= 0 {
		return fmt.Errorf("ENGINE_QUEUE_SIZE must be positive")
	}
	if c.Engine.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("ENGINE_RETRY_MAX_ATTEMPTS must be positive")
	}
	if !c.Engine.DefaultMaxNotional.IsPositive() {
		return fmt.Errorf("ENGINE_DEFAULT_MAX_NOTIONAL must be positive")
	}

	for name, rate := range map[string]decimal.Decimal{"FEE_MAKER_RATE": c.Fee.MakerRate, "FEE_TAKER_RATE": c.Fee.TakerRate} {
		if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s must be in [0, 1)", name)
		}
	}
	if c.Fee.AccountUserID == "" {
		return fmt.Errorf("FEE_ACCOUNT_USER_ID must be set")
	}

	return nil
}
