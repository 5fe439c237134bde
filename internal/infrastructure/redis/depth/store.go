package depth

import (
	"context"
	"encoding/json"
	"fmt"

	orderbookv1 "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1"
	"github.com/hoanghiep2625/cex-be/pkg/errors"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/hoanghiep2625/cex-be/pkg/redis"
	v9 "github.com/redis/go-redis/v9"
)

// SnapshotKey is the key of the JSON depth snapshot of a symbol.
func SnapshotKey(symbol string) string {
	return "orderbook:" + symbol
}

// BidsKey is the sorted set of bid levels of a symbol scored by price.
func BidsKey(symbol string) string {
	return SnapshotKey(symbol) + ":bids"
}

// AsksKey is the sorted set of ask levels of a symbol scored by price.
func AsksKey(symbol string) string {
	return SnapshotKey(symbol) + ":asks"
}

// Store mirrors book depth into Redis.
type Store struct {
	redisclient redis.Client
	logger      logger.Interface
}

// NewStore creates a depth store over the given Redis client.
func NewStore(redisclient redis.Client, logger logger.Interface) *Store {
	return &Store{
		redisclient: redisclient,
		logger:      logger,
	}
}

var _ orderbookv1.DepthStore = (*Store)(nil)

// Save replaces the mirrored depth of a symbol in one transaction.
func (s *Store) Save(ctx context.Context, depth *orderbookv1.Depth) error {
	buf, err := json.Marshal(depth)
	if err != nil {
		return errors.NewTracer("depth_marshal_error").Wrap(err)
	}

	err = s.redisclient.Apply(ctx,
		redis.Write{Key: SnapshotKey(depth.Symbol), Value: buf},
		redis.Write{Key: BidsKey(depth.Symbol), Members: levelMembers(depth.Bids)},
		redis.Write{Key: AsksKey(depth.Symbol), Members: levelMembers(depth.Asks)},
	)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "symbol",
			Value: depth.Symbol,
		}, logger.Field{
			Key:   "action",
			Value: "store depth snapshot",
		})
		return errors.NewTracer("depth_store_error").Wrap(err)
	}

	s.logger.DebugContext(ctx, fmt.Sprintf("Depth stored for symbol %s", depth.Symbol), logger.Field{
		Key:   "bids",
		Value: len(depth.Bids),
	}, logger.Field{
		Key:   "asks",
		Value: len(depth.Asks),
	})
	return nil
}

func levelMembers(levels []orderbookv1.PriceLevel) []v9.Z {
	members := make([]v9.Z, len(levels))
	for i, l := range levels {
		members[i] = v9.Z{
			Score:  l.Price.InexactFloat64(),
			Member: levelMember(l),
		}
	}
	return members
}

// levelMember encodes a level as "price:quantity:orders" so equal scores stay distinct members.
func levelMember(l orderbookv1.PriceLevel) string {
	return fmt.Sprintf("%s:%s:%d", l.Price.String(), l.Quantity.String(), l.Orders)
}

// Load returns the mirrored depth of a symbol, or nil when none is stored.
func (s *Store) Load(ctx context.Context, symbol string) (*orderbookv1.Depth, error) {
	data, err := s.redisclient.Get(ctx, SnapshotKey(symbol))
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "symbol",
			Value: symbol,
		}, logger.Field{
			Key:   "action",
			Value: "load depth snapshot",
		})
		return nil, errors.NewTracer("depth_load_error").Wrap(err)
	}

	if data == "" {
		s.logger.WarnContext(ctx, fmt.Sprintf("No depth found for symbol %s", symbol))
		return nil, nil
	}

	var depth orderbookv1.Depth
	if err := json.Unmarshal([]byte(data), &depth); err != nil {
		return nil, errors.NewTracer("depth_unmarshal_error").Wrap(err)
	}

	return &depth, nil
}
