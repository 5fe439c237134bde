package query

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	mockQuery "github.com/hoanghiep2625/cex-be/internal/app/query/mock"
	balancev1 "github.com/hoanghiep2625/cex-be/internal/domain/balance/v1"
	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	orderbookv1 "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1"
	mockOrderbook "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1/mock"
	symbolv1 "github.com/hoanghiep2625/cex-be/internal/domain/symbol/v1"
	tradev1 "github.com/hoanghiep2625/cex-be/internal/domain/trade/v1"
	mockTrade "github.com/hoanghiep2625/cex-be/internal/domain/trade/v1/mock"
	"github.com/hoanghiep2625/cex-be/pkg/httplib/healthcheck"
	mockLogger "github.com/hoanghiep2625/cex-be/pkg/logger/mock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFixture struct {
	markets  *mockQuery.MockMarkets
	orders   *mockQuery.MockOrders
	balances *mockQuery.MockBalances
	depths   *mockOrderbook.MockDepthStore
	trades   *mockTrade.MockRecorder
	logger   *mockLogger.MockInterface
	server   *Server
}

func newFixture(ctrl *gomock.Controller) *testFixture {
	f := &testFixture{
		markets:  mockQuery.NewMockMarkets(ctrl),
		orders:   mockQuery.NewMockOrders(ctrl),
		balances: mockQuery.NewMockBalances(ctrl),
		depths:   mockOrderbook.NewMockDepthStore(ctrl),
		trades:   mockTrade.NewMockRecorder(ctrl),
		logger:   mockLogger.NewMockInterface(ctrl),
	}
	f.server = NewServer(
		Config{Port: 0, AllowedOrigins: []string{"*"}},
		f.markets, f.trades, f.orders, f.balances, f.depths,
		healthcheck.New(time.Second, nil),
		f.logger,
	)
	return f
}

func (f *testFixture) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestServer_Depth(t *testing.T) {
	testCases := []struct {
		name       string
		path       string
		setupMocks func(f *testFixture)
		wantStatus int
		assertFn   func(t *testing.T, body []byte)
	}{
		{
			name: "default limit",
			path: "/api/v1/markets/BTCUSDT/depth",
			setupMocks: func(f *testFixture) {
				f.markets.EXPECT().Halted("BTCUSDT").Return(nil)
				f.markets.EXPECT().Depth("BTCUSDT", defaultDepthLimit).Return(&orderbookv1.Depth{
					Symbol: "BTCUSDT",
					Bids:   []orderbookv1.PriceLevel{{Price: d("49999.5"), Quantity: d("1.5"), Orders: 2}},
				}, nil)
			},
			wantStatus: http.StatusOK,
			assertFn: func(t *testing.T, body []byte) {
				var resp DepthResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				require.Len(t, resp.Bids, 1)
				assert.True(t, d("49999.5").Equal(resp.Bids[0].Price))
				assert.NotNil(t, resp.Asks)
				assert.Empty(t, resp.Asks)
			},
		},
		{
			name: "explicit limit",
			path: "/api/v1/markets/BTCUSDT/depth?limit=5",
			setupMocks: func(f *testFixture) {
				f.markets.EXPECT().Halted("BTCUSDT").Return(nil)
				f.markets.EXPECT().Depth("BTCUSDT", 5).Return(&orderbookv1.Depth{Symbol: "BTCUSDT"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid limit",
			path:       "/api/v1/markets/BTCUSDT/depth?limit=abc",
			setupMocks: func(f *testFixture) {},
			wantStatus: http.StatusBadRequest,
			assertFn: func(t *testing.T, body []byte) {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "validation_error", resp.Error)
				assert.Equal(t, "limit", resp.Field)
			},
		},
		{
			name: "unknown symbol",
			path: "/api/v1/markets/DOGEUSDT/depth",
			setupMocks: func(f *testFixture) {
				f.markets.EXPECT().Halted("DOGEUSDT").Return(symbolv1.NewUnavailableError("DOGEUSDT"))
				f.depths.EXPECT().Load(gomock.Any(), "DOGEUSDT").Return(nil, nil)
				f.markets.EXPECT().Depth("DOGEUSDT", defaultDepthLimit).Return(nil, symbolv1.NewUnavailableError("DOGEUSDT"))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "halted symbol is served from the mirror",
			path: "/api/v1/markets/BTCUSDT/depth?limit=1",
			setupMocks: func(f *testFixture) {
				f.markets.EXPECT().Halted("BTCUSDT").Return(errors.New("locked balance below settlement"))
				f.depths.EXPECT().Load(gomock.Any(), "BTCUSDT").Return(&orderbookv1.Depth{
					Symbol: "BTCUSDT",
					Bids: []orderbookv1.PriceLevel{
						{Price: d("49999"), Quantity: d("1"), Orders: 1},
						{Price: d("49998"), Quantity: d("2"), Orders: 1},
					},
				}, nil)
			},
			wantStatus: http.StatusOK,
			assertFn: func(t *testing.T, body []byte) {
				var resp DepthResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				require.Len(t, resp.Bids, 1)
				assert.True(t, d("49999").Equal(resp.Bids[0].Price))
			},
		},
		{
			name: "symbol traded elsewhere is served from the mirror",
			path: "/api/v1/markets/ETHUSDT/depth",
			setupMocks: func(f *testFixture) {
				f.markets.EXPECT().Halted("ETHUSDT").Return(symbolv1.NewUnavailableError("ETHUSDT"))
				f.depths.EXPECT().Load(gomock.Any(), "ETHUSDT").Return(&orderbookv1.Depth{
					Symbol: "ETHUSDT",
					Asks:   []orderbookv1.PriceLevel{{Price: d("3000"), Quantity: d("4"), Orders: 2}},
				}, nil)
			},
			wantStatus: http.StatusOK,
			assertFn: func(t *testing.T, body []byte) {
				var resp DepthResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "ETHUSDT", resp.Symbol)
				require.Len(t, resp.Asks, 1)
				assert.NotNil(t, resp.Bids)
			},
		},
		{
			name: "mirror failure falls back to the local book",
			path: "/api/v1/markets/BTCUSDT/depth",
			setupMocks: func(f *testFixture) {
				f.markets.EXPECT().Halted("BTCUSDT").Return(errors.New("halted"))
				f.depths.EXPECT().Load(gomock.Any(), "BTCUSDT").Return(nil, errors.New("redis down"))
				f.markets.EXPECT().Depth("BTCUSDT", defaultDepthLimit).Return(&orderbookv1.Depth{Symbol: "BTCUSDT"}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			tc.setupMocks(f)

			rec := f.get(tc.path)
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
			if tc.assertFn != nil {
				tc.assertFn(t, rec.Body.Bytes())
			}
		})
	}
}

func TestServer_Ticker(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	f.markets.EXPECT().BestBidAsk("BTCUSDT").Return(orderbookv1.BestBidAsk{
		Symbol:      "BTCUSDT",
		BidPrice:    decimal.NewNullDecimal(d("49990")),
		BidQuantity: d("1"),
		AskPrice:    decimal.NewNullDecimal(d("50010")),
		AskQuantity: d("2"),
	}, nil)
	f.trades.EXPECT().Recent(gomock.Any(), "BTCUSDT", 1).Return([]*tradev1.Trade{{Price: d("50000")}}, nil)

	rec := f.get("/api/v1/markets/BTCUSDT/ticker")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TickerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Spread.Valid)
	assert.True(t, d("20").Equal(resp.Spread.Decimal))
	require.True(t, resp.LastPrice.Valid)
	assert.True(t, d("50000").Equal(resp.LastPrice.Decimal))
}

func TestServer_Trades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	f.trades.EXPECT().Recent(gomock.Any(), "BTCUSDT", 0).Return(nil, nil)
	f.trades.EXPECT().Recent(gomock.Any(), "BTCUSDT", 50).Return(nil, errors.New("connection reset"))
	f.logger.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)

	rec := f.get("/api/v1/markets/BTCUSDT/trades")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = f.get("/api/v1/markets/BTCUSDT/trades?limit=50")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestServer_Order(t *testing.T) {
	o := &orderv1.Order{ID: "order-1", UserID: "user-1", Symbol: "BTCUSDT", Status: orderv1.StatusNew}

	testCases := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "found", path: "/api/v1/orders/order-1", wantStatus: http.StatusOK},
		{name: "owner matches", path: "/api/v1/orders/order-1?userId=user-1", wantStatus: http.StatusOK},
		{name: "other user", path: "/api/v1/orders/order-1?userId=user-2", wantStatus: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			f.orders.EXPECT().Get(gomock.Any(), "order-1").Return(o, nil)

			rec := f.get(tc.path)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestServer_Orders(t *testing.T) {
	listed := []*orderv1.Order{{ID: "order-2", UserID: "user-1", Symbol: "BTCUSDT", Status: orderv1.StatusFilled}}

	testCases := []struct {
		name       string
		path       string
		setupMocks func(f *testFixture)
		wantStatus int
		wantField  string
	}{
		{
			name: "filters are passed through",
			path: "/api/v1/orders?userId=user-1&symbol=BTCUSDT&status=NEW&status=PARTIALLY_FILLED&side=BUY&limit=10&offset=20",
			setupMocks: func(f *testFixture) {
				f.orders.EXPECT().List(gomock.Any(), orderv1.ListFilter{
					UserID:   "user-1",
					Symbol:   "BTCUSDT",
					Side:     orderv1.SideBuy,
					Statuses: []orderv1.Status{orderv1.StatusNew, orderv1.StatusPartiallyFilled},
					Limit:    10,
					Offset:   20,
				}).Return(listed, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "defaults",
			path: "/api/v1/orders?userId=user-1",
			setupMocks: func(f *testFixture) {
				f.orders.EXPECT().List(gomock.Any(), orderv1.ListFilter{UserID: "user-1", Limit: defaultOrderLimit}).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "user is required",
			path:       "/api/v1/orders?symbol=BTCUSDT",
			setupMocks: func(f *testFixture) {},
			wantStatus: http.StatusBadRequest,
			wantField:  "userId",
		},
		{
			name:       "unknown status",
			path:       "/api/v1/orders?userId=user-1&status=OPEN",
			setupMocks: func(f *testFixture) {},
			wantStatus: http.StatusBadRequest,
			wantField:  "status",
		},
		{
			name:       "unknown side",
			path:       "/api/v1/orders?userId=user-1&side=LONG",
			setupMocks: func(f *testFixture) {},
			wantStatus: http.StatusBadRequest,
			wantField:  "side",
		},
		{
			name:       "negative offset",
			path:       "/api/v1/orders?userId=user-1&offset=-1",
			setupMocks: func(f *testFixture) {},
			wantStatus: http.StatusBadRequest,
			wantField:  "offset",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			tc.setupMocks(f)

			rec := f.get(tc.path)
			require.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantField != "" {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tc.wantField, resp.Field)
				return
			}
			var orders []*orderv1.Order
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
			assert.NotNil(t, orders)
		})
	}
}

func TestServer_ClientOrder(t *testing.T) {
	testCases := []struct {
		name       string
		path       string
		setupMocks func(f *testFixture)
		wantStatus int
	}{
		{
			name: "found",
			path: "/api/v1/orders/client/my-order-1?userId=user-1",
			setupMocks: func(f *testFixture) {
				f.orders.EXPECT().GetByClientOrderID(gomock.Any(), "user-1", "my-order-1").
					Return(&orderv1.Order{ID: "order-1", UserID: "user-1", ClientOrderID: "my-order-1"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			path: "/api/v1/orders/client/my-order-2?userId=user-1",
			setupMocks: func(f *testFixture) {
				f.orders.EXPECT().GetByClientOrderID(gomock.Any(), "user-1", "my-order-2").
					Return(nil, orderv1.NewNotFoundError("my-order-2"))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "user is required",
			path:       "/api/v1/orders/client/my-order-1",
			setupMocks: func(f *testFixture) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			tc.setupMocks(f)

			rec := f.get(tc.path)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestServer_Balances(t *testing.T) {
	usdt := &balancev1.Balance{Key: balancev1.SpotKey("user-1", "USDT"), Available: d("900"), Locked: d("100")}
	btc := &balancev1.Balance{Key: balancev1.SpotKey("user-1", "BTC"), Available: d("0.5"), Locked: decimal.Zero}

	testCases := []struct {
		name       string
		path       string
		setupMocks func(f *testFixture)
		wantStatus int
		wantLen    int
	}{
		{
			name: "all wallets of a user",
			path: "/api/v1/balances?userId=user-1",
			setupMocks: func(f *testFixture) {
				f.balances.EXPECT().ListByUser(gomock.Any(), "user-1").Return([]*balancev1.Balance{btc, usdt}, nil)
			},
			wantStatus: http.StatusOK,
			wantLen:    2,
		},
		{
			name: "one currency",
			path: "/api/v1/balances?userId=user-1&currency=USDT",
			setupMocks: func(f *testFixture) {
				f.balances.EXPECT().Get(gomock.Any(), balancev1.SpotKey("user-1", "USDT")).Return(usdt, nil)
			},
			wantStatus: http.StatusOK,
			wantLen:    1,
		},
		{
			name: "user without balances",
			path: "/api/v1/balances?userId=user-2",
			setupMocks: func(f *testFixture) {
				f.balances.EXPECT().ListByUser(gomock.Any(), "user-2").Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantLen:    0,
		},
		{
			name:       "user is required",
			path:       "/api/v1/balances",
			setupMocks: func(f *testFixture) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			tc.setupMocks(f)

			rec := f.get(tc.path)
			require.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus != http.StatusOK {
				return
			}

			var balances []*balancev1.Balance
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &balances))
			require.NotNil(t, balances)
			assert.Len(t, balances, tc.wantLen)
			if tc.wantLen == 1 {
				assert.Equal(t, "USDT", balances[0].Currency)
				assert.True(t, d("100").Equal(balances[0].Locked))
			}
		})
	}
}

func TestServer_HealthAndCORS(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	rec := f.get("/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/markets/BTCUSDT/depth", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
