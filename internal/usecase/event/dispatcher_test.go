package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	eventv1 "github.com/hoanghiep2625/cex-be/internal/domain/event/v1"
	mockEvent "github.com/hoanghiep2625/cex-be/internal/domain/event/v1/mock"
	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	mockLogger "github.com/hoanghiep2625/cex-be/pkg/logger/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collected struct {
	mu     sync.Mutex
	events []eventv1.Event
}

func (c *collected) add(events ...eventv1.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, events...)
}

func (c *collected) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func orderEvent(id string) eventv1.Event {
	return eventv1.NewOrderEvent(eventv1.OrderCreated, &orderv1.Order{ID: id, Symbol: "BTCUSDT"}, "")
}

func quietLogger(ctrl *gomock.Controller) *mockLogger.MockInterface {
	log := mockLogger.NewMockInterface(ctrl)
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	return log
}

func TestDispatcher_DeliversToEveryPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var first, second collected
	p1 := mockEvent.NewMockPublisher(ctrl)
	p1.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, events ...eventv1.Event) error {
		first.add(events...)
		return nil
	}).AnyTimes()
	p2 := mockEvent.NewMockPublisher(ctrl)
	p2.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, events ...eventv1.Event) error {
		second.add(events...)
		return nil
	}).AnyTimes()

	d := NewDispatcher(16, time.Second, quietLogger(ctrl), p1, p2)
	d.Start()

	d.Dispatch(orderEvent("o1"), orderEvent("o2"))
	d.Dispatch(orderEvent("o3"))

	require.NoError(t, d.Stop(context.Background()))
	assert.Equal(t, 3, first.len())
	assert.Equal(t, 3, second.len())
	assert.Equal(t, "o1", first.events[0].Order.ID)
	assert.Equal(t, "o3", first.events[2].Order.ID)
}

func TestDispatcher_PublisherFailureIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var ok collected
	failing := mockEvent.NewMockPublisher(ctrl)
	failing.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down")).AnyTimes()
	healthy := mockEvent.NewMockPublisher(ctrl)
	healthy.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, events ...eventv1.Event) error {
		ok.add(events...)
		return nil
	}).AnyTimes()

	log := quietLogger(ctrl)
	log.EXPECT().Error(gomock.Any(), gomock.Any()).MinTimes(1)

	d := NewDispatcher(16, time.Second, log, failing, healthy)
	d.Start()
	d.Dispatch(orderEvent("o1"))

	require.NoError(t, d.Stop(context.Background()))
	assert.Equal(t, 1, ok.len())
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var got collected
	p := mockEvent.NewMockPublisher(ctrl)
	p.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, events ...eventv1.Event) error {
		got.add(events...)
		return nil
	}).AnyTimes()

	d := NewDispatcher(2, time.Second, quietLogger(ctrl), p)
	d.Dispatch(orderEvent("o1"), orderEvent("o2"), orderEvent("o3"))

	d.Start()
	require.NoError(t, d.Stop(context.Background()))
	assert.Equal(t, 2, got.len())
}

func TestDispatcher_DispatchAfterStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := NewDispatcher(4, time.Second, quietLogger(ctrl))
	d.Start()
	require.NoError(t, d.Stop(context.Background()))

	assert.NotPanics(t, func() { d.Dispatch(orderEvent("late")) })
	require.NoError(t, d.Stop(context.Background()))
}
