package publisher

import (
	"context"
	"encoding/json"
	stderrors "errors"

	eventv1 "github.com/hoanghiep2625/cex-be/internal/domain/event/v1"
	orderbookv1 "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1"
	"github.com/hoanghiep2625/cex-be/pkg/errors"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/hoanghiep2625/cex-be/pkg/redis"
)

// OrdersChannel receives every order event.
const OrdersChannel = "orders"

// SymbolOrdersChannel receives the order events of one symbol.
func SymbolOrdersChannel(symbol string) string {
	return "orders:" + symbol
}

// UserOrdersChannel receives the order events of one user.
func UserOrdersChannel(userID string) string {
	return "user:" + userID + ":orders"
}

// TradesChannel receives the trades of one symbol.
func TradesChannel(symbol string) string {
	return "trades:" + symbol
}

// Publisher fans events out to Redis pub/sub channels and mirrors depth events.
type Publisher struct {
	redisclient redis.Client
	depth       orderbookv1.DepthStore
	logger      logger.Interface
}

// NewPublisher creates a Redis event publisher. depth may be nil to skip mirroring.
func NewPublisher(redisclient redis.Client, depth orderbookv1.DepthStore, logger logger.Interface) *Publisher {
	return &Publisher{
		redisclient: redisclient,
		depth:       depth,
		logger:      logger,
	}
}

var _ eventv1.Publisher = (*Publisher)(nil)

// Publish sends each event to its channels. A failed event does not hold back the rest;
// every failure is returned joined.
func (p *Publisher) Publish(ctx context.Context, events ...eventv1.Event) error {
	var errs []error
	for _, e := range events {
		if err := p.publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

func (p *Publisher) publish(ctx context.Context, e eventv1.Event) error {
	if e.Type == eventv1.BookDepth {
		if p.depth == nil || e.Depth == nil {
			return nil
		}
		return p.depth.Save(ctx, e.Depth)
	}

	channels := Channels(e)
	if len(channels) == 0 {
		return nil
	}

	buf, err := json.Marshal(e)
	if err != nil {
		return errors.NewTracer("event_marshal_error").Wrap(err)
	}

	var errs []error
	for _, channel := range channels {
		if _, err := p.redisclient.Publish(ctx, channel, buf); err != nil {
			p.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "channel",
				Value: channel,
			}, logger.Field{
				Key:   "event",
				Value: string(e.Type),
			})
			errs = append(errs, errors.NewTracer("event_publish_error").Wrap(err))
		}
	}

	return stderrors.Join(errs...)
}

// Channels returns the pub/sub channels an event is delivered to.
func Channels(e eventv1.Event) []string {
	switch e.Type {
	case eventv1.OrderCreated, eventv1.OrderCanceled, eventv1.OrderUpdated:
		if e.Order == nil {
			return nil
		}
		return []string{OrdersChannel, SymbolOrdersChannel(e.Symbol), UserOrdersChannel(e.Order.UserID)}
	case eventv1.TradeCreated:
		return []string{TradesChannel(e.Symbol)}
	}
	return nil
}
