package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	mockConsumer "github.com/hoanghiep2625/cex-be/internal/app/consumer/mock"
	"github.com/hoanghiep2625/cex-be/internal/app/engine"
	orderreaderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order-reader/v1"
	mockOrderReader "github.com/hoanghiep2625/cex-be/internal/domain/order-reader/v1/mock"
	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	pkgErrors "github.com/hoanghiep2625/cex-be/pkg/errors"
	mockLogger "github.com/hoanghiep2625/cex-be/pkg/logger/mock"
	"github.com/hoanghiep2625/cex-be/pkg/util"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFixture struct {
	reader *mockOrderReader.MockOrderReader
	engine *mockConsumer.MockOrderEngine
	logger *mockLogger.MockInterface
}

func newFixture(ctrl *gomock.Controller) *testFixture {
	log := mockLogger.NewMockInterface(ctrl)
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().WarnContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	return &testFixture{
		reader: mockOrderReader.NewMockOrderReader(ctrl),
		engine: mockConsumer.NewMockOrderEngine(ctrl),
		logger: log,
	}
}

// deliver makes the reader return one message and then block until the consumer stops.
func (f *testFixture) deliver(msg kafka.Message, cmd *orderreaderv1.OrderCommand, err error) {
	f.reader.EXPECT().ReadMessage(gomock.Any()).Return(msg, cmd, err).Times(1)
	f.reader.EXPECT().ReadMessage(gomock.Any()).DoAndReturn(
		func(ctx context.Context) (kafka.Message, *orderreaderv1.OrderCommand, error) {
			<-ctx.Done()
			return kafka.Message{}, nil, ctx.Err()
		},
	).AnyTimes()
	f.reader.EXPECT().Close().Return(nil).Times(1)
}

func submitCommand() *orderreaderv1.OrderCommand {
	return &orderreaderv1.OrderCommand{
		Action:    orderreaderv1.ActionSubmit,
		RequestID: "req-1",
		Submit: &orderv1.SubmitOrderRequest{
			UserID:   "user-1",
			Symbol:   "BTCUSDT",
			Side:     orderv1.SideBuy,
			Type:     orderv1.TypeLimit,
			Price:    decimal.NewNullDecimal(decimal.RequireFromString("50000")),
			Quantity: decimal.RequireFromString("1"),
		},
	}
}

func cancelCommand() *orderreaderv1.OrderCommand {
	return &orderreaderv1.OrderCommand{
		Action: orderreaderv1.ActionCancel,
		Cancel: &orderreaderv1.CancelRequest{UserID: "user-1", Symbol: "BTCUSDT", OrderID: "order-1"},
	}
}

func accepted() *orderv1.Order {
	return &orderv1.Order{ID: "order-1", Status: orderv1.StatusNew}
}

func TestConsumer_CommitPolicy(t *testing.T) {
	msg := kafka.Message{Partition: 0, Offset: 42}

	testCases := []struct {
		name       string
		cmd        *orderreaderv1.OrderCommand
		readErr    error
		setupMocks func(f *testFixture)
	}{
		{
			name: "accepted submit is committed",
			cmd:  submitCommand(),
			setupMocks: func(f *testFixture) {
				f.engine.EXPECT().SubmitOrder(gomock.Any(), *submitCommand().Submit).
					DoAndReturn(func(ctx context.Context, _ orderv1.SubmitOrderRequest) (*orderv1.Order, error) {
						assert.Equal(t, "req-1", util.GetRequestID(ctx))
						assert.Equal(t, "kafka", util.GetSource(ctx))
						assert.Equal(t, "BTCUSDT", util.GetSymbol(ctx))
						return accepted(), nil
					})
			},
		},
		{
			name: "rejected submit is committed",
			cmd:  submitCommand(),
			setupMocks: func(f *testFixture) {
				f.engine.EXPECT().SubmitOrder(gomock.Any(), gomock.Any()).
					Return(nil, pkgErrors.New(pkgErrors.InsufficientBalanceError, "balance", "insufficient"))
			},
		},
		{
			name: "transient failure is retried before commit",
			cmd:  submitCommand(),
			setupMocks: func(f *testFixture) {
				gomock.InOrder(
					f.engine.EXPECT().SubmitOrder(gomock.Any(), gomock.Any()).
						Return(nil, pkgErrors.New(pkgErrors.TransientConflictError, "", "serialization failure")),
					f.engine.EXPECT().SubmitOrder(gomock.Any(), gomock.Any()).
						Return(nil, pkgErrors.New(pkgErrors.TransientConflictError, "", "serialization failure")),
					f.engine.EXPECT().SubmitOrder(gomock.Any(), gomock.Any()).Return(accepted(), nil),
				)
			},
		},
		{
			name: "cancel is dispatched by user, symbol and order",
			cmd:  cancelCommand(),
			setupMocks: func(f *testFixture) {
				f.engine.EXPECT().CancelOrder(gomock.Any(), "user-1", "BTCUSDT", "order-1").
					Return(&orderv1.Order{ID: "order-1", Status: orderv1.StatusCanceled}, nil)
			},
		},
		{
			name:       "malformed payload is committed without processing",
			readErr:    &orderreaderv1.DecodeError{Err: errors.New("unexpected end of JSON input")},
			setupMocks: func(f *testFixture) {},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			f.deliver(msg, tc.cmd, tc.readErr)
			tc.setupMocks(f)

			committed := make(chan struct{})
			f.reader.EXPECT().CommitMessages(gomock.Any(), msg).DoAndReturn(func(context.Context, ...kafka.Message) error {
				close(committed)
				return nil
			}).Times(1)

			c := NewConsumer(f.reader, f.engine, f.logger, time.Millisecond)
			c.Start(context.Background())

			select {
			case <-committed:
			case <-time.After(2 * time.Second):
				t.Fatal("message was not committed")
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			require.NoError(t, c.Stop(ctx))
		})
	}
}

func TestConsumer_StopDuringTransientRetryLeavesOffset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	f.deliver(kafka.Message{Offset: 7}, submitCommand(), nil)

	attempted := make(chan struct{}, 1)
	f.engine.EXPECT().SubmitOrder(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, orderv1.SubmitOrderRequest) (*orderv1.Order, error) {
			select {
			case attempted <- struct{}{}:
			default:
			}
			return nil, engine.ErrEngineStopped
		},
	).MinTimes(1)
	f.reader.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Times(0)

	c := NewConsumer(f.reader, f.engine, f.logger, 5*time.Millisecond)
	c.Start(context.Background())

	select {
	case <-attempted:
	case <-time.After(2 * time.Second):
		t.Fatal("command was not attempted")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, c.Stop(ctx))
}

func TestConsumer_StopCommitsOutcomeReachedWhileStopping(t *testing.T) {
	testCases := []struct {
		name    string
		outcome func(ctx context.Context) (*orderv1.Order, error)
		commits int
	}{
		{
			name: "accepted after stop is committed",
			outcome: func(context.Context) (*orderv1.Order, error) {
				return accepted(), nil
			},
			commits: 1,
		},
		{
			name: "rejected after stop is committed",
			outcome: func(context.Context) (*orderv1.Order, error) {
				return nil, pkgErrors.New(pkgErrors.InsufficientBalanceError, "balance", "insufficient")
			},
			commits: 1,
		},
		{
			name: "withdrawn before execution is left for redelivery",
			outcome: func(ctx context.Context) (*orderv1.Order, error) {
				return nil, ctx.Err()
			},
			commits: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			msg := kafka.Message{Offset: 9}
			f := newFixture(ctrl)
			f.deliver(msg, submitCommand(), nil)

			entered := make(chan struct{})
			f.engine.EXPECT().SubmitOrder(gomock.Any(), gomock.Any()).DoAndReturn(
				func(ctx context.Context, _ orderv1.SubmitOrderRequest) (*orderv1.Order, error) {
					close(entered)
					<-ctx.Done()
					return tc.outcome(ctx)
				},
			).Times(1)
			f.reader.EXPECT().CommitMessages(gomock.Any(), msg).DoAndReturn(
				func(ctx context.Context, _ ...kafka.Message) error {
					assert.NoError(t, ctx.Err())
					_, hasDeadline := ctx.Deadline()
					assert.True(t, hasDeadline)
					return nil
				},
			).Times(tc.commits)

			c := NewConsumer(f.reader, f.engine, f.logger, time.Millisecond)
			c.Start(context.Background())

			select {
			case <-entered:
			case <-time.After(2 * time.Second):
				t.Fatal("command was not dispatched")
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			require.NoError(t, c.Stop(ctx))
		})
	}
}

func TestIsTransient(t *testing.T) {
	assert.True(t, isTransient(pkgErrors.New(pkgErrors.TransientConflictError, "", "conflict")))
	assert.True(t, isTransient(engine.ErrEngineStopped))
	assert.True(t, isTransient(context.Canceled))
	assert.False(t, isTransient(pkgErrors.New(pkgErrors.ValidationError, "quantity", "bad")))
	assert.False(t, isTransient(pkgErrors.New(pkgErrors.SymbolHaltedError, "symbol", "halted")))
}
