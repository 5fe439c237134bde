package engine

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	mockEngine "github.com/hoanghiep2625/cex-be/internal/app/engine/mock"
	eventv1 "github.com/hoanghiep2625/cex-be/internal/domain/event/v1"
	mockEvent "github.com/hoanghiep2625/cex-be/internal/domain/event/v1/mock"
	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	orderbookv1 "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1"
	symbolv1 "github.com/hoanghiep2625/cex-be/internal/domain/symbol/v1"
	mockSymbol "github.com/hoanghiep2625/cex-be/internal/domain/symbol/v1/mock"
	"github.com/hoanghiep2625/cex-be/internal/usecase/matching"
	"github.com/hoanghiep2625/cex-be/internal/usecase/order"
	"github.com/hoanghiep2625/cex-be/internal/usecase/orderbook"
	pkgErrors "github.com/hoanghiep2625/cex-be/pkg/errors"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	mockPg "github.com/hoanghiep2625/cex-be/pkg/postgresql/mock"
	"github.com/hoanghiep2625/cex-be/pkg/retry"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func restingOrder(id, user string, side orderv1.Side, price, qty string) *orderv1.Order {
	return &orderv1.Order{
		ID:             id,
		UserID:         user,
		Symbol:         "BTCUSDT",
		Side:           side,
		Type:           orderv1.TypeLimit,
		Price:          decimal.NewNullDecimal(d(price)),
		Quantity:       d(qty),
		FilledQuantity: decimal.Zero,
		Status:         orderv1.StatusNew,
		TimeInForce:    orderv1.GTC,
		CreatedAt:      time.Now(),
	}
}

type engineMocks struct {
	orders  *mockEngine.MockOrderLifecycle
	symbols *mockSymbol.MockRegistry
	tx      *mockPg.MockTxManager
	events  *mockEvent.MockDispatcher
}

func startEngine(t *testing.T, ctrl *gomock.Controller, active []*orderv1.Order, setup func(m engineMocks)) (*Engine, engineMocks) {
	t.Helper()
	return startEngineWithContext(t, context.Background(), ctrl, active, setup)
}

func startEngineWithContext(t *testing.T, ctx context.Context, ctrl *gomock.Controller, active []*orderv1.Order, setup func(m engineMocks)) (*Engine, engineMocks) {
	t.Helper()

	m := engineMocks{
		orders:  mockEngine.NewMockOrderLifecycle(ctrl),
		symbols: mockSymbol.NewMockRegistry(ctrl),
		tx:      mockPg.NewMockTxManager(ctrl),
		events:  mockEvent.NewMockDispatcher(ctrl),
	}
	m.symbols.EXPECT().ListSymbols(gomock.Any(), symbolv1.StatusTrading).Return([]*symbolv1.Symbol{{Symbol: "BTCUSDT"}}, nil)
	m.orders.EXPECT().ListActive(gomock.Any(), "BTCUSDT").Return(active, nil)
	m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}).AnyTimes()
	m.events.EXPECT().Dispatch(gomock.Any()).AnyTimes()
	if setup != nil {
		setup(m)
	}

	opts := DefaultEngineOptions()
	opts.Retry = retry.Config{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}

	e := NewEngineWithOptions(m.orders, m.symbols, m.tx, orderbook.NewManager(), m.events, logger.NewNop(), opts)
	require.NoError(t, e.Start(ctx))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = e.Stop(ctx)
	})
	return e, m
}

func TestEngine_StartRebuildsBooks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, _ := startEngine(t, ctrl, []*orderv1.Order{
		restingOrder("b1", "u1", orderv1.SideBuy, "49000", "1"),
		restingOrder("a1", "u2", orderv1.SideSell, "51000", "2"),
	}, nil)

	assert.Equal(t, []string{"BTCUSDT"}, e.Symbols())

	top, err := e.BestBidAsk("BTCUSDT")
	require.NoError(t, err)
	assert.True(t, top.BidPrice.Decimal.Equal(d("49000")))
	assert.True(t, top.AskQuantity.Equal(d("2")))

	depth, err := e.Depth("BTCUSDT", 10)
	require.NoError(t, err)
	assert.Len(t, depth.Bids, 1)
	assert.Len(t, depth.Asks, 1)

	_, err = e.Depth("ETHUSDT", 10)
	assert.True(t, pkgErrors.IsCode(err, pkgErrors.SymbolUnavailableError))
}

func TestEngine_SubmitOrder(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		req      orderv1.SubmitOrderRequest
		mockFn   func(m engineMocks)
		assertFn func(t *testing.T, e *Engine, o *orderv1.Order, err error)
	}{
		{
			name: "unknown symbol",
			req:  orderv1.SubmitOrderRequest{Symbol: "ETHUSDT"},
			mockFn: func(m engineMocks) {
				m.symbols.EXPECT().GetSymbol(gomock.Any(), "ETHUSDT").Return(nil, symbolv1.NewUnavailableError("ETHUSDT"))
			},
			assertFn: func(t *testing.T, e *Engine, o *orderv1.Order, err error) {
				assert.Nil(t, o)
				assert.True(t, pkgErrors.IsCode(err, pkgErrors.SymbolUnavailableError))
			},
		},
		{
			name: "symbol under maintenance",
			req:  orderv1.SubmitOrderRequest{Symbol: "ETHUSDT"},
			mockFn: func(m engineMocks) {
				m.symbols.EXPECT().GetSymbol(gomock.Any(), "ETHUSDT").Return(&symbolv1.Symbol{Symbol: "ETHUSDT", Status: symbolv1.StatusMaintenance}, nil)
			},
			assertFn: func(t *testing.T, e *Engine, o *orderv1.Order, err error) {
				assert.Nil(t, o)
				assert.True(t, pkgErrors.IsCode(err, pkgErrors.SymbolUnavailableError))
				assert.NotContains(t, e.Symbols(), "ETHUSDT")
			},
		},
		{
			name: "resting order joins the book",
			req:  orderv1.SubmitOrderRequest{Symbol: "BTCUSDT"},
			mockFn: func(m engineMocks) {
				m.orders.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, book orderbookv1.Reader, _ orderv1.SubmitOrderRequest) (*order.SubmitResult, error) {
						taker := restingOrder("new", "u3", orderv1.SideBuy, "50000", "1")
						return &order.SubmitResult{Order: taker, Execution: &matching.Result{Taker: taker}}, nil
					})
			},
			assertFn: func(t *testing.T, e *Engine, o *orderv1.Order, err error) {
				require.NoError(t, err)
				assert.Equal(t, "new", o.ID)
				top, _ := e.BestBidAsk("BTCUSDT")
				assert.True(t, top.BidPrice.Decimal.Equal(d("50000")))
			},
		},
		{
			name: "validation error passes through",
			req:  orderv1.SubmitOrderRequest{Symbol: "BTCUSDT"},
			mockFn: func(m engineMocks) {
				m.orders.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, orderv1.NewValidationError("quantity", "bad"))
			},
			assertFn: func(t *testing.T, e *Engine, o *orderv1.Order, err error) {
				assert.True(t, pkgErrors.IsCode(err, pkgErrors.ValidationError))
				assert.Nil(t, e.Halted("BTCUSDT"))
			},
		},
		{
			name: "serialization conflicts exhaust into transient conflict",
			req:  orderv1.SubmitOrderRequest{Symbol: "BTCUSDT"},
			mockFn: func(m engineMocks) {
				m.orders.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, &pgconn.PgError{Code: "40001"}).Times(3)
			},
			assertFn: func(t *testing.T, e *Engine, o *orderv1.Order, err error) {
				assert.True(t, pkgErrors.IsCode(err, pkgErrors.TransientConflictError))
			},
		},
		{
			name: "retry succeeds after one deadlock",
			req:  orderv1.SubmitOrderRequest{Symbol: "BTCUSDT"},
			mockFn: func(m engineMocks) {
				taker := restingOrder("new", "u3", orderv1.SideSell, "52000", "1")
				gomock.InOrder(
					m.orders.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, &pgconn.PgError{Code: "40P01"}),
					m.orders.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).
						Return(&order.SubmitResult{Order: taker, Execution: &matching.Result{Taker: taker}}, nil),
				)
			},
			assertFn: func(t *testing.T, e *Engine, o *orderv1.Order, err error) {
				require.NoError(t, err)
				top, _ := e.BestBidAsk("BTCUSDT")
				assert.True(t, top.AskPrice.Decimal.Equal(d("52000")))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			e, _ := startEngine(t, ctrl, nil, tc.mockFn)
			o, err := e.SubmitOrder(ctx, tc.req)
			tc.assertFn(t, e, o, err)
		})
	}
}

func TestEngine_HaltAndResume(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, m := startEngine(t, ctrl, nil, nil)

	m.orders.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, pkgErrors.New(pkgErrors.InvariantViolationError, "locked", "locked balance below settlement"))

	_, err := e.SubmitOrder(ctx, orderv1.SubmitOrderRequest{Symbol: "BTCUSDT"})
	assert.True(t, pkgErrors.IsCode(err, pkgErrors.InvariantViolationError))
	assert.Error(t, e.Halted("BTCUSDT"))

	_, err = e.SubmitOrder(ctx, orderv1.SubmitOrderRequest{Symbol: "BTCUSDT"})
	assert.True(t, pkgErrors.IsCode(err, pkgErrors.SymbolHaltedError))

	m.orders.EXPECT().ListActive(gomock.Any(), "BTCUSDT").Return([]*orderv1.Order{
		restingOrder("b1", "u1", orderv1.SideBuy, "49000", "1"),
	}, nil)
	require.NoError(t, e.Resume(ctx, "BTCUSDT"))
	assert.NoError(t, e.Halted("BTCUSDT"))

	top, err := e.BestBidAsk("BTCUSDT")
	require.NoError(t, err)
	assert.True(t, top.BidPrice.Decimal.Equal(d("49000")))
}

func TestEngine_OpensSymbolListedAfterStart(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, m := startEngine(t, ctrl, nil, nil)

	resting := restingOrder("a1", "u2", orderv1.SideSell, "3000", "2")
	resting.Symbol = "ETHUSDT"

	gomock.InOrder(
		m.symbols.EXPECT().GetSymbol(gomock.Any(), "ETHUSDT").Return(&symbolv1.Symbol{Symbol: "ETHUSDT", Status: symbolv1.StatusTrading}, nil),
		m.orders.EXPECT().ListActive(gomock.Any(), "ETHUSDT").Return([]*orderv1.Order{resting}, nil),
		m.orders.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ orderbookv1.Reader, req orderv1.SubmitOrderRequest) (*order.SubmitResult, error) {
				taker := restingOrder(req.ClientOrderID, "u3", orderv1.SideBuy, "2900", "1")
				taker.Symbol = "ETHUSDT"
				return &order.SubmitResult{Order: taker, Execution: &matching.Result{Taker: taker}}, nil
			}).Times(2),
	)

	o, err := e.SubmitOrder(ctx, orderv1.SubmitOrderRequest{Symbol: "ETHUSDT", ClientOrderID: "e1"})
	require.NoError(t, err)
	assert.Equal(t, "e1", o.ID)
	assert.ElementsMatch(t, []string{"BTCUSDT", "ETHUSDT"}, e.Symbols())
	assert.NoError(t, e.Halted("ETHUSDT"))

	top, err := e.BestBidAsk("ETHUSDT")
	require.NoError(t, err)
	assert.True(t, top.AskPrice.Decimal.Equal(d("3000")))
	assert.True(t, top.BidPrice.Decimal.Equal(d("2900")))

	// The worker is opened once; later commands skip the registry.
	_, err = e.SubmitOrder(ctx, orderv1.SubmitOrderRequest{Symbol: "ETHUSDT", ClientOrderID: "e2"})
	require.NoError(t, err)
}

func TestEngine_StartedCommandOutlivesCallerContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entered := make(chan struct{})
	release := make(chan struct{})
	var stepErr error

	e, _ := startEngine(t, ctrl, nil, func(m engineMocks) {
		m.orders.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, _ orderbookv1.Reader, _ orderv1.SubmitOrderRequest) (*order.SubmitResult, error) {
				close(entered)
				<-release
				stepErr = ctx.Err()
				taker := restingOrder("new", "u3", orderv1.SideBuy, "50000", "1")
				return &order.SubmitResult{Order: taker, Execution: &matching.Result{Taker: taker}}, nil
			})
	})

	ctx, cancel := context.WithCancel(context.Background())
	type result struct {
		o   *orderv1.Order
		err error
	}
	results := make(chan result, 1)
	go func() {
		o, err := e.SubmitOrder(ctx, orderv1.SubmitOrderRequest{Symbol: "BTCUSDT"})
		results <- result{o, err}
	}()

	<-entered
	cancel()
	close(release)

	res := <-results
	require.NoError(t, res.err)
	assert.Equal(t, "new", res.o.ID)
	assert.NoError(t, stepErr)

	top, err := e.BestBidAsk("BTCUSDT")
	require.NoError(t, err)
	assert.True(t, top.BidPrice.Decimal.Equal(d("50000")))
}

func TestEngine_StopRunsQueuedCommands(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entered := make(chan struct{}, 2)
	release := make(chan struct{})

	e, _ := startEngine(t, ctrl, nil, func(m engineMocks) {
		m.orders.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ orderbookv1.Reader, req orderv1.SubmitOrderRequest) (*order.SubmitResult, error) {
				entered <- struct{}{}
				<-release
				taker := restingOrder(req.ClientOrderID, "u3", orderv1.SideBuy, "50000", "1")
				return &order.SubmitResult{Order: taker, Execution: &matching.Result{Taker: taker}}, nil
			}).Times(2)
	})

	errs := make(chan error, 2)
	submit := func(id string) {
		_, err := e.SubmitOrder(context.Background(), orderv1.SubmitOrderRequest{Symbol: "BTCUSDT", ClientOrderID: id})
		errs <- err
	}

	go submit("first")
	<-entered
	go submit("second")

	w, ok := e.lookup("BTCUSDT")
	require.True(t, ok)
	assert.Eventually(t, func() bool { return len(w.queue) == 1 }, time.Second, time.Millisecond)

	stopped := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		stopped <- e.Stop(ctx)
	}()
	assert.Eventually(t, func() bool { return e.ctx.Err() != nil }, time.Second, time.Millisecond)

	_, err := e.SubmitOrder(context.Background(), orderv1.SubmitOrderRequest{Symbol: "BTCUSDT"})
	assert.ErrorIs(t, err, ErrEngineStopped)

	close(release)
	require.NoError(t, <-stopped)
	assert.NoError(t, <-errs)
	assert.NoError(t, <-errs)

	depth, err := e.Depth("BTCUSDT", 10)
	require.NoError(t, err)
	require.Len(t, depth.Bids, 1)
	assert.True(t, depth.Bids[0].Quantity.Equal(d("2")))
}

func TestEngine_WorkersOutliveStartContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	e, m := startEngineWithContext(t, ctx, ctrl, nil, nil)
	cancel()

	taker := restingOrder("new", "u3", orderv1.SideBuy, "50000", "1")
	m.orders.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&order.SubmitResult{Order: taker, Execution: &matching.Result{Taker: taker}}, nil)

	o, err := e.SubmitOrder(context.Background(), orderv1.SubmitOrderRequest{Symbol: "BTCUSDT"})
	require.NoError(t, err)
	assert.Equal(t, "new", o.ID)
}

func TestEngine_CancelOrder(t *testing.T) {
	ctx := context.Background()
	resting := restingOrder("b1", "u1", orderv1.SideBuy, "49000", "1")

	testCases := []struct {
		name     string
		userID   string
		symbol   string
		mockFn   func(m engineMocks)
		assertFn func(t *testing.T, e *Engine, o *orderv1.Order, err error)
	}{
		{
			name:   "unknown order",
			userID: "u1",
			mockFn: func(m engineMocks) {
				m.orders.EXPECT().Get(ctx, "b1").Return(nil, orderv1.NewNotFoundError("b1"))
			},
			assertFn: func(t *testing.T, e *Engine, o *orderv1.Order, err error) {
				assert.True(t, pkgErrors.IsCode(err, pkgErrors.OrderNotFoundError))
			},
		},
		{
			name:   "someone else's order",
			userID: "u9",
			mockFn: func(m engineMocks) {
				m.orders.EXPECT().Get(ctx, "b1").Return(resting, nil)
			},
			assertFn: func(t *testing.T, e *Engine, o *orderv1.Order, err error) {
				assert.True(t, pkgErrors.IsCode(err, pkgErrors.OrderNotFoundError))
			},
		},
		{
			name:   "order of another symbol",
			userID: "u1",
			symbol: "ETHUSDT",
			mockFn: func(m engineMocks) {
				m.orders.EXPECT().Get(ctx, "b1").Return(resting, nil)
			},
			assertFn: func(t *testing.T, e *Engine, o *orderv1.Order, err error) {
				assert.True(t, pkgErrors.IsCode(err, pkgErrors.OrderNotFoundError))
				top, _ := e.BestBidAsk("BTCUSDT")
				assert.True(t, top.BidPrice.Valid)
			},
		},
		{
			name:   "removes the order from the book",
			symbol: "BTCUSDT",
			userID: "u1",
			mockFn: func(m engineMocks) {
				m.orders.EXPECT().Get(ctx, "b1").Return(resting, nil)
				m.orders.EXPECT().Cancel(gomock.Any(), "u1", "b1").DoAndReturn(func(context.Context, string, string) (*orderv1.Order, error) {
					canceled := *resting
					canceled.Status = orderv1.StatusCanceled
					return &canceled, nil
				})
			},
			assertFn: func(t *testing.T, e *Engine, o *orderv1.Order, err error) {
				require.NoError(t, err)
				assert.Equal(t, orderv1.StatusCanceled, o.Status)
				top, _ := e.BestBidAsk("BTCUSDT")
				assert.False(t, top.BidPrice.Valid)
			},
		},
		{
			name:   "second cancel is an invalid state",
			userID: "u1",
			mockFn: func(m engineMocks) {
				canceled := *resting
				canceled.Status = orderv1.StatusCanceled
				m.orders.EXPECT().Get(ctx, "b1").Return(&canceled, nil)
				m.orders.EXPECT().Cancel(gomock.Any(), "u1", "b1").Return(nil, orderv1.NewInvalidStateError(&canceled))
			},
			assertFn: func(t *testing.T, e *Engine, o *orderv1.Order, err error) {
				assert.True(t, pkgErrors.IsCode(err, pkgErrors.InvalidOrderStateError))
				assert.Nil(t, e.Halted("BTCUSDT"))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			e, _ := startEngine(t, ctrl, []*orderv1.Order{resting}, tc.mockFn)
			o, err := e.CancelOrder(ctx, tc.userID, tc.symbol, "b1")
			tc.assertFn(t, e, o, err)
		})
	}
}

func TestSubmitEvents(t *testing.T) {
	taker := restingOrder("t", "u1", orderv1.SideBuy, "50000", "1")
	taker.FilledQuantity = d("0.4")
	taker.Status = orderv1.StatusPartiallyFilled
	maker := restingOrder("m", "u2", orderv1.SideSell, "50000", "0.4")
	maker.FilledQuantity = d("0.4")
	maker.Status = orderv1.StatusFilled

	events := submitEvents(&order.SubmitResult{
		Order: taker,
		Execution: &matching.Result{
			Taker:  taker,
			Makers: []*orderv1.Order{maker},
			Trades: nil,
		},
	}, &orderbookv1.Depth{Symbol: "BTCUSDT"})

	types := make([]eventv1.Type, 0, len(events))
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []eventv1.Type{eventv1.OrderCreated, eventv1.OrderUpdated, eventv1.BookDepth}, types)
	assert.Equal(t, orderv1.StatusNew, events[0].Order.Status)
	assert.Equal(t, eventv1.ReasonPartiallyFilled, events[1].Reason)

	rejected := restingOrder("r", "u1", orderv1.SideBuy, "50000", "1")
	rejected.Status = orderv1.StatusRejected
	events = submitEvents(&order.SubmitResult{Order: rejected}, nil)
	require.Len(t, events, 2)
	assert.Equal(t, eventv1.ReasonRejected, events[1].Reason)
}
