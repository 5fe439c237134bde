package query

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	balancev1 "github.com/hoanghiep2625/cex-be/internal/domain/balance/v1"
	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	orderbookv1 "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1"
	tradev1 "github.com/hoanghiep2625/cex-be/internal/domain/trade/v1"
	"github.com/hoanghiep2625/cex-be/pkg/errors"
	"github.com/hoanghiep2625/cex-be/pkg/httplib/healthcheck"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/hoanghiep2625/cex-be/pkg/util"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"
)

const (
	defaultDepthLimit = 20
	maxDepthLimit     = 500
	maxTradesLimit    = 1000
	defaultOrderLimit = 100
	maxOrderLimit     = 1000
	sourceHTTP        = "http"
)

// Markets serves book snapshots.
//
//go:generate mockgen -source server.go -destination=mock/server_mock.go -package=query_mock
type Markets interface {
	BestBidAsk(symbol string) (orderbookv1.BestBidAsk, error)
	Depth(symbol string, levels int) (*orderbookv1.Depth, error)
	Halted(symbol string) error
}

// Orders serves order lookups.
type Orders interface {
	Get(ctx context.Context, orderID string) (*orderv1.Order, error)
	GetByClientOrderID(ctx context.Context, userID, clientOrderID string) (*orderv1.Order, error)
	List(ctx context.Context, filter orderv1.ListFilter) ([]*orderv1.Order, error)
}

// Balances serves wallet balances.
type Balances interface {
	Get(ctx context.Context, key balancev1.Key) (*balancev1.Balance, error)
	ListByUser(ctx context.Context, userID string) ([]*balancev1.Balance, error)
}

// Config configures the query API.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// Server is the read-only HTTP API over books, trades, orders and balances.
type Server struct {
	markets  Markets
	trades   tradev1.Recorder
	orders   Orders
	balances Balances
	depths   orderbookv1.DepthStore
	health   *healthcheck.HealthCheck
	logger   logger.Interface

	router *mux.Router
	http   *http.Server
}

// NewServer creates the query API.
func NewServer(
	config Config,
	markets Markets,
	trades tradev1.Recorder,
	orders Orders,
	balances Balances,
	depths orderbookv1.DepthStore,
	health *healthcheck.HealthCheck,
	logger logger.Interface,
) *Server {
	s := &Server{
		markets:  markets,
		trades:   trades,
		orders:   orders,
		balances: balances,
		depths:   depths,
		health:   health,
		logger:   logger,
		router:   mux.NewRouter(),
	}
	s.setupRoutes()

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           s.handler(config.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.requestContext)

	api.HandleFunc("/markets/{symbol}/depth", s.handleDepth).Methods(http.MethodGet)
	api.HandleFunc("/markets/{symbol}/ticker", s.handleTicker).Methods(http.MethodGet)
	api.HandleFunc("/markets/{symbol}/trades", s.handleTrades).Methods(http.MethodGet)
	api.HandleFunc("/orders", s.handleOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/client/{clientOrderId}", s.handleClientOrder).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", s.handleOrder).Methods(http.MethodGet)
	api.HandleFunc("/balances", s.handleBalances).Methods(http.MethodGet)
}

func (s *Server) handler(allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	})
	return c.Handler(s.health.Handler(s.router))
}

// Handler returns the full HTTP handler, health endpoints and CORS included.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start serves until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("Query API listening", logger.Field{Key: "addr", Value: s.http.Addr})
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop drains the health endpoints and shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.health.Shutdown()
	return s.http.Shutdown(ctx)
}

func (s *Server) requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := util.ContextWithRequestID(r.Context(), r.Header.Get("X-Request-ID"))
		ctx = util.WithSource(ctx, sourceHTTP)
		w.Header().Set("X-Request-ID", util.GetRequestID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DepthResponse is the L2 book of a symbol.
type DepthResponse struct {
	Symbol    string                   `json:"symbol"`
	Bids      []orderbookv1.PriceLevel `json:"bids"`
	Asks      []orderbookv1.PriceLevel `json:"asks"`
	Timestamp int64                    `json:"timestamp"`
}

// TickerResponse is the top of book and last trade of a symbol.
type TickerResponse struct {
	Symbol      string              `json:"symbol"`
	BidPrice    decimal.NullDecimal `json:"bidPrice"`
	BidQuantity decimal.Decimal     `json:"bidQuantity"`
	AskPrice    decimal.NullDecimal `json:"askPrice"`
	AskQuantity decimal.Decimal     `json:"askQuantity"`
	Spread      decimal.NullDecimal `json:"spread"`
	LastPrice   decimal.NullDecimal `json:"lastPrice"`
}

// ErrorResponse is returned for all errors
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (s *Server) handleDepth(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	limit, err := intParam(r, "limit", defaultDepthLimit, maxDepthLimit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	depth, err := s.depth(r.Context(), symbol, limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, DepthResponse{
		Symbol:    depth.Symbol,
		Bids:      nonNil(depth.Bids),
		Asks:      nonNil(depth.Asks),
		Timestamp: depth.UpdatedAt.UnixMilli(),
	})
}

// depth serves the mirrored snapshot when the local book is halted or not served here.
func (s *Server) depth(ctx context.Context, symbol string, limit int) (*orderbookv1.Depth, error) {
	if s.markets.Halted(symbol) != nil {
		mirrored, err := s.depths.Load(ctx, symbol)
		if err == nil && mirrored != nil {
			return truncateDepth(mirrored, limit), nil
		}
	}
	return s.markets.Depth(symbol, limit)
}

func truncateDepth(depth *orderbookv1.Depth, limit int) *orderbookv1.Depth {
	if len(depth.Bids) > limit {
		depth.Bids = depth.Bids[:limit]
	}
	if len(depth.Asks) > limit {
		depth.Asks = depth.Asks[:limit]
	}
	return depth
}

func (s *Server) handleTicker(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	top, err := s.markets.BestBidAsk(symbol)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp := TickerResponse{
		Symbol:      symbol,
		BidPrice:    top.BidPrice,
		BidQuantity: top.BidQuantity,
		AskPrice:    top.AskPrice,
		AskQuantity: top.AskQuantity,
		Spread:      top.Spread(),
	}

	last, err := s.trades.Recent(r.Context(), symbol, 1)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if len(last) > 0 {
		resp.LastPrice = decimal.NewNullDecimal(last[0].Price)
	}

	respondJSON(w, resp)
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	limit, err := intParam(r, "limit", 0, maxTradesLimit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	trades, err := s.trades.Recent(r.Context(), symbol, limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, nonNil(trades))
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	o, err := s.orders.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if userID := r.URL.Query().Get("userId"); userID != "" && userID != o.UserID {
		s.respondError(w, r, orderv1.NewNotFoundError(id))
		return
	}

	respondJSON(w, o)
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	userID, err := requiredParam(r, "userId")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	filter := orderv1.ListFilter{
		UserID: userID,
		Symbol: q.Get("symbol"),
		Side:   orderv1.Side(q.Get("side")),
	}
	if filter.Side != "" && !filter.Side.IsValid() {
		s.respondError(w, r, errors.New(errors.ValidationError, "side", "unknown side %q", filter.Side))
		return
	}
	for _, raw := range q["status"] {
		status := orderv1.Status(raw)
		if !status.IsValid() {
			s.respondError(w, r, errors.New(errors.ValidationError, "status", "unknown status %q", raw))
			return
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	if filter.Limit, err = intParam(r, "limit", defaultOrderLimit, maxOrderLimit); err != nil {
		s.respondError(w, r, err)
		return
	}
	if filter.Offset, err = offsetParam(r); err != nil {
		s.respondError(w, r, err)
		return
	}

	orders, err := s.orders.List(r.Context(), filter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, nonNil(orders))
}

func (s *Server) handleClientOrder(w http.ResponseWriter, r *http.Request) {
	userID, err := requiredParam(r, "userId")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	o, err := s.orders.GetByClientOrderID(r.Context(), userID, mux.Vars(r)["clientOrderId"])
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, o)
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	userID, err := requiredParam(r, "userId")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if currency := r.URL.Query().Get("currency"); currency != "" {
		b, err := s.balances.Get(r.Context(), balancev1.SpotKey(userID, currency))
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, []*balancev1.Balance{b})
		return
	}

	balances, err := s.balances.ListByUser(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, nonNil(balances))
}

func requiredParam(r *http.Request, name string) (string, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", errors.New(errors.ValidationError, name, "%s is required", name)
	}
	return v, nil
}

func offsetParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("offset")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New(errors.ValidationError, "offset", "offset must not be negative")
	}
	return n, nil
}

func intParam(r *http.Request, name string, fallback, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > max {
		return 0, errors.New(errors.ValidationError, name, "%s must be between 1 and %d", name, max)
	}
	return n, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func statusOf(code errors.ErrorCode) int {
	switch code {
	case errors.ValidationError:
		return http.StatusBadRequest
	case errors.SymbolUnavailableError, errors.OrderNotFoundError:
		return http.StatusNotFound
	case errors.SymbolHaltedError, errors.TransientConflictError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.CodeOf(err)
	status := statusOf(code)

	resp := ErrorResponse{Error: string(code), Message: err.Error()}
	if code == "" {
		resp.Error = string(errors.GeneralInternalServerError)
	}
	var details *errors.ErrorDetails
	if stderrors.As(err, &details) {
		resp.Field = details.Field
	}

	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), err,
			logger.Field{Key: "action", Value: "query_api"},
			logger.Field{Key: "path", Value: r.URL.Path},
		)
		resp.Message = "internal error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}
