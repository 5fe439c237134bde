package order

import (
	"context"
	"time"

	balancev1 "github.com/hoanghiep2625/cex-be/internal/domain/balance/v1"
	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	orderbookv1 "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1"
	symbolv1 "github.com/hoanghiep2625/cex-be/internal/domain/symbol/v1"
	tradev1 "github.com/hoanghiep2625/cex-be/internal/domain/trade/v1"
	"github.com/hoanghiep2625/cex-be/internal/usecase/matching"
	"github.com/hoanghiep2625/cex-be/pkg/errors"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Options tune order acceptance.
type Options struct {
	// ReserveMaxNotional makes a market buy lock its symbol's max notional
	// instead of the cost of the fills the book offers.
	ReserveMaxNotional bool
	// DefaultMaxNotional applies to symbols without a max notional.
	DefaultMaxNotional decimal.Decimal
}

// SubmitResult is the committed outcome of a submission.
type SubmitResult struct {
	Order *orderv1.Order
	// Execution is nil for an order rejected before matching.
	Execution *matching.Result
}

// Usecase runs the order lifecycle. Mutating calls expect a transaction in ctx.
type Usecase struct {
	orders   orderv1.Repository
	balances balancev1.Repository
	symbols  symbolv1.Registry
	executor *matching.Executor
	opts     Options
	logger   logger.Interface

	now   func() time.Time
	newID func() string
}

var _ matching.OrderStates = (*Usecase)(nil)

// NewUsecase creates the order usecase and the match step it drives.
func NewUsecase(
	orders orderv1.Repository,
	balances balancev1.Repository,
	symbols symbolv1.Registry,
	recorder tradev1.Recorder,
	fees matching.FeeSchedule,
	opts Options,
	logger logger.Interface,
) *Usecase {
	if !opts.DefaultMaxNotional.IsPositive() {
		opts.DefaultMaxNotional = symbolv1.DefaultMaxNotional
	}

	u := &Usecase{
		orders:   orders,
		balances: balances,
		symbols:  symbols,
		opts:     opts,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return ulid.Make().String() },
	}
	u.executor = matching.NewExecutor(balances, recorder, u, fees, logger)
	return u
}

// Submit validates and reserves a new order, then matches it against book.
// The book is only read; the caller applies the result after commit.
func (u *Usecase) Submit(ctx context.Context, book orderbookv1.Reader, req orderv1.SubmitOrderRequest) (*SubmitResult, error) {
	sym, err := u.tradableSymbol(ctx, req.Symbol)
	if err != nil {
		return nil, err
	}

	o := u.newOrder(req)
	if err := validate(sym, o); err != nil {
		return nil, err
	}
	if err := u.checkClientOrderID(ctx, o); err != nil {
		return nil, err
	}

	opts := matching.PlanOptions{LotSize: sym.LotSize}
	marketBuyQuote := decimal.Zero
	if o.Type == orderv1.TypeMarket && o.Side == orderv1.SideBuy && u.opts.ReserveMaxNotional {
		marketBuyQuote = sym.MaxNotionalOr(u.opts.DefaultMaxNotional)
		opts.QuoteBudget = decimal.NewNullDecimal(marketBuyQuote)
	}

	plan := matching.PlanOrder(book, o, opts)
	if plan.Rejected {
		return u.reject(ctx, o)
	}
	if o.Type == orderv1.TypeMarket && o.Side == orderv1.SideBuy && !u.opts.ReserveMaxNotional {
		marketBuyQuote = plan.QuoteCost
	}

	reservation := matching.ReservationFor(sym, o, marketBuyQuote)
	if err := u.balances.LockRows(ctx, u.executor.LockKeys(sym, o, plan)...); err != nil {
		return nil, err
	}
	if err := u.balances.Lock(ctx, reservation.Key, reservation.Amount); err != nil {
		return nil, err
	}
	if err := u.orders.Store(ctx, o); err != nil {
		return nil, err
	}

	res, err := u.executor.Execute(ctx, matching.ExecuteRequest{
		Symbol:      sym,
		Taker:       o,
		Plan:        plan,
		Reservation: reservation,
	})
	if err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "Order submitted",
		logger.Field{Key: "orderID", Value: o.ID},
		logger.Field{Key: "symbol", Value: o.Symbol},
		logger.Field{Key: "status", Value: o.Status},
		logger.Field{Key: "fills", Value: len(res.Fills)},
	)

	return &SubmitResult{Order: o, Execution: res}, nil
}

func (u *Usecase) tradableSymbol(ctx context.Context, symbol string) (*symbolv1.Symbol, error) {
	sym, err := u.symbols.GetSymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if !sym.IsTradable() {
		return nil, symbolv1.NewUnavailableError(symbol)
	}
	return sym, nil
}

func (u *Usecase) newOrder(req orderv1.SubmitOrderRequest) *orderv1.Order {
	now := u.now()
	o := &orderv1.Order{
		ID:             u.newID(),
		UserID:         req.UserID,
		Symbol:         req.Symbol,
		Side:           req.Side,
		Type:           req.Type,
		Price:          req.Price,
		Quantity:       req.Quantity,
		FilledQuantity: decimal.Zero,
		Status:         orderv1.StatusNew,
		TimeInForce:    req.TimeInForce,
		ClientOrderID:  req.ClientOrderID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	applyDefaults(o)
	return o
}

func (u *Usecase) checkClientOrderID(ctx context.Context, o *orderv1.Order) error {
	if o.ClientOrderID == "" {
		return nil
	}
	_, err := u.orders.GetByClientOrderID(ctx, o.UserID, o.ClientOrderID)
	switch {
	case err == nil:
		return orderv1.NewDuplicateClientOrderError(o.ClientOrderID)
	case errors.IsCode(err, errors.OrderNotFoundError):
		return nil
	default:
		return err
	}
}

// reject stores a FOK order the book cannot fill. Nothing is reserved.
func (u *Usecase) reject(ctx context.Context, o *orderv1.Order) (*SubmitResult, error) {
	o.Status = orderv1.StatusRejected
	if err := u.orders.Store(ctx, o); err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "Order rejected",
		logger.Field{Key: "orderID", Value: o.ID},
		logger.Field{Key: "symbol", Value: o.Symbol},
	)
	return &SubmitResult{Order: o}, nil
}

// Cancel cancels a resting order of the user and releases its remaining reservation.
// The caller removes the order from the book after commit.
func (u *Usecase) Cancel(ctx context.Context, userID, orderID string) (*orderv1.Order, error) {
	o, err := u.orders.GetByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, orderv1.NewNotFoundError(orderID)
	}
	if !o.IsResting() {
		return nil, orderv1.NewInvalidStateError(o)
	}

	sym, err := u.symbols.GetSymbol(ctx, o.Symbol)
	if err != nil {
		return nil, err
	}

	release := matching.ReservationFor(sym, o, decimal.Zero)
	if err := u.balances.LockRows(ctx, release.Key); err != nil {
		return nil, err
	}
	if err := u.balances.Unlock(ctx, release.Key, release.Amount); err != nil {
		return nil, err
	}

	o.Status = orderv1.StatusCanceled
	o.UpdatedAt = u.now()
	if err := u.orders.Update(ctx, o); err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "Order canceled",
		logger.Field{Key: "orderID", Value: o.ID},
		logger.Field{Key: "released", Value: release.Amount.String()},
	)
	return o, nil
}

// LoadMaker returns a resting order with its row locked.
func (u *Usecase) LoadMaker(ctx context.Context, orderID string) (*orderv1.Order, error) {
	return u.orders.GetByIDForUpdate(ctx, orderID)
}

// Fill records qty more filled on the order.
func (u *Usecase) Fill(ctx context.Context, o *orderv1.Order, qty decimal.Decimal) error {
	filled := o.FilledQuantity.Add(qty)
	if !qty.IsPositive() || filled.GreaterThan(o.Quantity) {
		return errors.New(errors.InvariantViolationError, "filledQuantity", "fill of %s would take order %s to %s of %s", qty, o.ID, filled, o.Quantity)
	}

	o.FilledQuantity = filled
	o.Status = o.FillStatus()
	o.UpdatedAt = u.now()
	return u.orders.Update(ctx, o)
}

// Close discards the remainder of an order that cannot rest.
func (u *Usecase) Close(ctx context.Context, o *orderv1.Order) error {
	o.Status = o.CloseStatus()
	o.UpdatedAt = u.now()
	return u.orders.Update(ctx, o)
}

// Get returns an order by id.
func (u *Usecase) Get(ctx context.Context, orderID string) (*orderv1.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// GetByClientOrderID returns the user's order with the given client order id.
func (u *Usecase) GetByClientOrderID(ctx context.Context, userID, clientOrderID string) (*orderv1.Order, error) {
	return u.orders.GetByClientOrderID(ctx, userID, clientOrderID)
}

// List returns orders matching filter, newest first.
func (u *Usecase) List(ctx context.Context, filter orderv1.ListFilter) ([]*orderv1.Order, error) {
	return u.orders.List(ctx, filter)
}

// ListActive returns the resting orders of a symbol in book priority order.
func (u *Usecase) ListActive(ctx context.Context, symbol string) ([]*orderv1.Order, error) {
	return u.orders.ListActive(ctx, symbol)
}
