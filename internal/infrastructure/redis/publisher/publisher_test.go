package publisher

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	eventv1 "github.com/hoanghiep2625/cex-be/internal/domain/event/v1"
	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	orderbookv1 "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1"
	mockOrderbook "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1/mock"
	tradev1 "github.com/hoanghiep2625/cex-be/internal/domain/trade/v1"
	mockLogger "github.com/hoanghiep2625/cex-be/pkg/logger/mock"
	mockRedis "github.com/hoanghiep2625/cex-be/pkg/redis/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannels(t *testing.T) {
	order := &orderv1.Order{ID: "o1", UserID: "u1", Symbol: "BTCUSDT"}
	trade := &tradev1.Trade{ID: "t1", Symbol: "BTCUSDT"}

	assert.Equal(t,
		[]string{"orders", "orders:BTCUSDT", "user:u1:orders"},
		Channels(eventv1.NewOrderEvent(eventv1.OrderCreated, order, "")),
	)
	assert.Equal(t, []string{"trades:BTCUSDT"}, Channels(eventv1.NewTradeEvent(trade)))
	assert.Nil(t, Channels(eventv1.NewDepthEvent(&orderbookv1.Depth{Symbol: "BTCUSDT"})))
}

func TestPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	order := &orderv1.Order{ID: "o1", UserID: "u1", Symbol: "BTCUSDT"}
	depth := &orderbookv1.Depth{Symbol: "BTCUSDT"}

	testCases := []struct {
		name     string
		events   []eventv1.Event
		mockFn   func(rc *mockRedis.MockClient, ds *mockOrderbook.MockDepthStore, log *mockLogger.MockInterface)
		assertFn func(t *testing.T, err error)
	}{
		{
			name:   "order event goes to three channels",
			events: []eventv1.Event{eventv1.NewOrderEvent(eventv1.OrderCanceled, order, "")},
			mockFn: func(rc *mockRedis.MockClient, ds *mockOrderbook.MockDepthStore, log *mockLogger.MockInterface) {
				rc.EXPECT().Publish(ctx, "orders", gomock.Any()).Return(int64(1), nil)
				rc.EXPECT().Publish(ctx, "orders:BTCUSDT", gomock.Any()).Return(int64(0), nil)
				rc.EXPECT().Publish(ctx, "user:u1:orders", gomock.Any()).Return(int64(0), nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:   "depth event is mirrored",
			events: []eventv1.Event{eventv1.NewDepthEvent(depth)},
			mockFn: func(rc *mockRedis.MockClient, ds *mockOrderbook.MockDepthStore, log *mockLogger.MockInterface) {
				ds.EXPECT().Save(ctx, depth).Return(nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:   "publish failure",
			events: []eventv1.Event{eventv1.NewTradeEvent(&tradev1.Trade{ID: "t1", Symbol: "BTCUSDT"})},
			mockFn: func(rc *mockRedis.MockClient, ds *mockOrderbook.MockDepthStore, log *mockLogger.MockInterface) {
				rc.EXPECT().Publish(ctx, "trades:BTCUSDT", gomock.Any()).Return(int64(0), errors.New("down"))
				log.EXPECT().ErrorContext(ctx, gomock.Any(), gomock.Any(), gomock.Any())
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
		{
			name: "failed event does not hold back the rest",
			events: []eventv1.Event{
				eventv1.NewTradeEvent(&tradev1.Trade{ID: "t1", Symbol: "BTCUSDT"}),
				eventv1.NewDepthEvent(depth),
				eventv1.NewOrderEvent(eventv1.OrderUpdated, order, ""),
			},
			mockFn: func(rc *mockRedis.MockClient, ds *mockOrderbook.MockDepthStore, log *mockLogger.MockInterface) {
				rc.EXPECT().Publish(ctx, "trades:BTCUSDT", gomock.Any()).Return(int64(0), errors.New("trades down"))
				ds.EXPECT().Save(ctx, depth).Return(errors.New("mirror down"))
				rc.EXPECT().Publish(ctx, "orders", gomock.Any()).Return(int64(1), nil)
				rc.EXPECT().Publish(ctx, "orders:BTCUSDT", gomock.Any()).Return(int64(0), errors.New("orders down"))
				rc.EXPECT().Publish(ctx, "user:u1:orders", gomock.Any()).Return(int64(0), nil)
				log.EXPECT().ErrorContext(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Times(2)
			},
			assertFn: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "trades down")
				assert.Contains(t, err.Error(), "mirror down")
				assert.Contains(t, err.Error(), "orders down")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			rc := mockRedis.NewMockClient(ctrl)
			ds := mockOrderbook.NewMockDepthStore(ctrl)
			log := mockLogger.NewMockInterface(ctrl)
			tc.mockFn(rc, ds, log)

			err := NewPublisher(rc, ds, log).Publish(ctx, tc.events...)
			tc.assertFn(t, err)
		})
	}
}
