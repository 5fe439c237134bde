package redis

import (
	"context"
	"time"

	"github.com/hoanghiep2625/cex-be/pkg/errors"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/hoanghiep2625/cex-be/pkg/retry"
	"github.com/redis/go-redis/v9"
)

type client struct {
	logger  logger.Interface
	config  *Config
	cmdable redis.UniversalClient
}

// NewClient creates a new Redis client with the provided logger and configuration.
func NewClient(logger logger.Interface, config *Config) Client {
	return &client{
		logger: logger,
		config: config,
	}
}

// Validate checks the configuration before a connection is attempted.
func (c *Config) Validate() error {
	switch {
	case len(c.Addrs) == 0:
		return errors.NewErrorDetails("Redis addresses are empty", string(errors.RedisConfigError), "addrs")
	case c.Mode != Standalone && c.Mode != Cluster:
		return errors.NewErrorDetails("Invalid Redis mode", string(errors.RedisConfigError), "mode")
	case c.ConnectTimeout <= 0:
		return errors.NewErrorDetails("Invalid Redis connect timeout", string(errors.RedisConfigError), "connect_timeout")
	case c.PoolSize <= 0:
		return errors.NewErrorDetails("Invalid Redis pool size", string(errors.RedisConfigError), "pool_size")
	case c.MinIdleConns < 0 || c.MaxIdleConns < 0:
		return errors.NewErrorDetails("Invalid Redis idle connections", string(errors.RedisConfigError), "idle_conns")
	case c.ConnMaxLifetime <= 0:
		return errors.NewErrorDetails("Invalid Redis connection max lifetime", string(errors.RedisConfigError), "conn_max_lifetime")
	case c.ConnMaxIdleTime <= 0:
		return errors.NewErrorDetails("Invalid Redis connection max idle time", string(errors.RedisConfigError), "conn_max_idle_time")
	case c.PoolTimeout <= 0:
		return errors.NewErrorDetails("Invalid Redis pool timeout", string(errors.RedisConfigError), "pool_timeout")
	case c.MaxRetries < 0:
		return errors.NewErrorDetails("Invalid Redis max retries", string(errors.RedisConfigError), "max_retries")
	case c.MinRetryBackoff < 0 || c.MaxRetryBackoff < 0:
		return errors.NewErrorDetails("Invalid Redis retry backoff", string(errors.RedisConfigError), "retry_backoff")
	}
	return nil
}

func (c *client) Connect(ctx context.Context) error {
	if c.config == nil {
		return errors.NewErrorDetails("Redis config is nil", string(errors.RedisConfigError), "connect")
	}
	if err := c.config.Validate(); err != nil {
		return err
	}

	var cmdable redis.UniversalClient
	switch c.config.Mode {
	case Standalone:
		cmdable = redis.NewClient(&redis.Options{
			Addr:            c.config.Addrs[0],
			Username:        c.config.Username,
			Password:        c.config.Password,
			DB:              c.config.DB,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			MaxIdleConns:    c.config.MaxIdleConns,
			ConnMaxLifetime: c.config.ConnMaxLifetime,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
	case Cluster:
		cmdable = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:           c.config.Addrs,
			Username:        c.config.Username,
			Password:        c.config.Password,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			MaxIdleConns:    c.config.MaxIdleConns,
			ConnMaxLifetime: c.config.ConnMaxLifetime,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
	}

	if err := cmdable.Ping(ctx).Err(); err != nil {
		_ = cmdable.Close()
		return errors.NewTracer("redis_connect_error").Wrap(err)
	}

	c.cmdable = cmdable
	return nil
}

// Reconnect retries Connect with exponential backoff and reports whether it succeeded.
func (c *client) Reconnect(ctx context.Context) bool {
	cfg := retry.Config{
		MaxAttempts: c.config.ReconnectMaxRetries,
		BaseDelay:   c.config.MinRetryBackoff,
		MaxDelay:    c.config.MaxRetryBackoff,
		MaxJitter:   time.Second,
	}

	err := retry.Do(ctx, cfg, func(error) bool { return true }, func(ctx context.Context, attempt int) error {
		c.logger.Info("Reconnecting to Redis", logger.Field{
			Key:   "attempt",
			Value: attempt,
		})

		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		err := c.Connect(connectCtx)
		if err != nil {
			c.logger.Error(errors.TracerFromError(err), logger.Field{
				Key:   "attempt",
				Value: attempt,
			})
		}
		return err
	})
	if err != nil {
		c.logger.Warn("Reconnect to Redis gave up", logger.Field{
			Key:   "reason",
			Value: err,
		})
		return false
	}

	c.logger.Info("Reconnected to Redis successfully")
	return true
}

func (c *client) Disconnect(ctx context.Context) error {
	if c.cmdable == nil {
		return nil
	}
	if err := c.cmdable.Close(); err != nil {
		return errors.NewErrorDetails("Failed to close Redis client", string(errors.RedisDisconnectionError), "disconnect")
	}
	return nil
}

func (c *client) Ping(ctx context.Context) error {
	if c.cmdable == nil {
		return errors.NewErrorDetails("Redis client is not connected", string(errors.RedisConnectionError), "ping")
	}
	if err := c.cmdable.Ping(ctx).Err(); err != nil {
		return errors.NewErrorDetails("Failed to ping Redis", string(errors.RedisPingError), "ping")
	}
	return nil
}

func (c *client) key(k string) string {
	return c.config.PrefixKey + k
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.cmdable.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.NewErrorDetails("Failed to get value from Redis", string(errors.RedisGetError), "get")
	}
	return val, nil
}

func (c *client) Apply(ctx context.Context, writes ...Write) error {
	if len(writes) == 0 {
		return nil
	}

	_, err := c.cmdable.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, w := range writes {
			key := c.key(w.Key)
			if w.Members == nil {
				pipe.Set(ctx, key, w.Value, 0)
				continue
			}
			pipe.Del(ctx, key)
			if len(w.Members) > 0 {
				pipe.ZAdd(ctx, key, w.Members...)
			}
		}
		return nil
	})
	if err != nil {
		return errors.NewErrorDetails("Failed to apply writes in Redis", string(errors.RedisSetError), "apply")
	}
	return nil
}

// Publish sends message to channel. Having no subscribers is not an error.
func (c *client) Publish(ctx context.Context, channel string, message any) (int64, error) {
	received, err := c.cmdable.Publish(ctx, channel, message).Result()
	if err != nil {
		return 0, errors.NewErrorDetails("Failed to publish message to Redis", string(errors.RedisPublishError), "publish")
	}
	return received, nil
}
