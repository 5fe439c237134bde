package redis

import (
	"context"

	v9 "github.com/redis/go-redis/v9"
)

// Write replaces one key inside an atomic Apply. A non-nil Members replaces
// the key with a sorted set (empty clears it); otherwise Value is stored as a string.
type Write struct {
	Key     string
	Value   any
	Members []v9.Z
}

// Client is the Redis surface the trading core uses.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=redis_mock
type Client interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Ping(ctx context.Context) error
	Reconnect(ctx context.Context) bool

	Get(ctx context.Context, key string) (string, error)
	// Apply runs every write in one MULTI/EXEC so readers never see a half replaced set of keys.
	Apply(ctx context.Context, writes ...Write) error

	Publish(ctx context.Context, channel string, message any) (int64, error)
}
