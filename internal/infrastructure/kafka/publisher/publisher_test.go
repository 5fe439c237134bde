package publisher

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	eventv1 "github.com/hoanghiep2625/cex-be/internal/domain/event/v1"
	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	orderbookv1 "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1"
	tradev1 "github.com/hoanghiep2625/cex-be/internal/domain/trade/v1"
	mockLogger "github.com/hoanghiep2625/cex-be/pkg/logger/mock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	order := &orderv1.Order{ID: "o1", UserID: "u1", Symbol: "BTCUSDT"}
	trade := &tradev1.Trade{ID: "t1", Symbol: "BTCUSDT"}

	t.Run("routes by event type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		orders, trades := &fakeWriter{}, &fakeWriter{}
		p := newPublisher(orders, trades, mockLogger.NewMockInterface(ctrl))

		err := p.Publish(ctx,
			eventv1.NewOrderEvent(eventv1.OrderCreated, order, ""),
			eventv1.NewTradeEvent(trade),
			eventv1.NewOrderEvent(eventv1.OrderUpdated, order, eventv1.ReasonFilled),
			eventv1.NewDepthEvent(&orderbookv1.Depth{Symbol: "BTCUSDT"}),
		)
		require.NoError(t, err)

		require.Len(t, orders.msgs, 2)
		require.Len(t, trades.msgs, 1)
		assert.Equal(t, "BTCUSDT", string(orders.msgs[0].Key))
		assert.Equal(t, "order.updated", string(orders.msgs[1].Headers[0].Value))
		assert.Contains(t, string(trades.msgs[0].Value), `"trade.created"`)

		require.NoError(t, p.Close())
		assert.True(t, orders.closed)
		assert.True(t, trades.closed)
	})

	t.Run("write failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		log := mockLogger.NewMockInterface(ctrl)
		log.EXPECT().Error(gomock.Any(), gomock.Any(), gomock.Any())

		p := newPublisher(&fakeWriter{err: errors.New("down")}, &fakeWriter{}, log)
		err := p.Publish(ctx, eventv1.NewOrderEvent(eventv1.OrderCanceled, order, ""))
		assert.Error(t, err)
	})
}
