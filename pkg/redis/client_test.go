package redis

import (
	"context"
	"testing"

	"github.com/hoanghiep2625/cex-be/pkg/errors"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{
			name:   "default config is valid",
			mutate: func(c *Config) {},
		},
		{
			name:      "empty addrs",
			mutate:    func(c *Config) { c.Addrs = nil },
			wantField: "addrs",
		},
		{
			name:      "unknown mode",
			mutate:    func(c *Config) { c.Mode = "sentinel" },
			wantField: "mode",
		},
		{
			name:      "zero pool size",
			mutate:    func(c *Config) { c.PoolSize = 0 },
			wantField: "pool_size",
		},
		{
			name:      "negative retries",
			mutate:    func(c *Config) { c.MaxRetries = -1 },
			wantField: "max_retries",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantField == "" {
				assert.NoError(t, err)
				return
			}

			assert.True(t, errors.IsCode(err, errors.RedisConfigError))
			var details *errors.ErrorDetails
			assert.ErrorAs(t, err, &details)
			assert.Equal(t, tc.wantField, details.Field)
		})
	}
}

func TestClient_ConnectNilConfig(t *testing.T) {
	c := NewClient(logger.NewNop(), nil)

	err := c.Connect(context.Background())

	assert.True(t, errors.IsCode(err, errors.RedisConfigError))
}

func TestClient_PingBeforeConnect(t *testing.T) {
	c := NewClient(logger.NewNop(), DefaultConfig())

	err := c.Ping(context.Background())

	assert.True(t, errors.IsCode(err, errors.RedisConnectionError))
}

func TestClient_Key(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PrefixKey = "cex:"
	c := &client{config: cfg}

	assert.Equal(t, "cex:orderbook:BTCUSDT", c.key("orderbook:BTCUSDT"))
}
