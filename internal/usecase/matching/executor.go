package matching

import (
	"context"

	balancev1 "github.com/hoanghiep2625/cex-be/internal/domain/balance/v1"
	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	symbolv1 "github.com/hoanghiep2625/cex-be/internal/domain/symbol/v1"
	tradev1 "github.com/hoanghiep2625/cex-be/internal/domain/trade/v1"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/shopspring/decimal"
)

// OrderStates is the part of the order lifecycle the match step drives.
//
//go:generate mockgen -source executor.go -destination=mock/executor_mock.go -package=matching_mock
type OrderStates interface {
	// LoadMaker returns the resting order with its row locked.
	LoadMaker(ctx context.Context, orderID string) (*orderv1.Order, error)
	// Fill adds qty to the filled quantity and persists the implied status.
	Fill(ctx context.Context, order *orderv1.Order, qty decimal.Decimal) error
	// Close persists the final status of an order whose remainder is discarded.
	Close(ctx context.Context, order *orderv1.Order) error
}

// FeeSchedule prices a fill. Fees are credited to the account of AccountUserID.
type FeeSchedule struct {
	MakerRate     decimal.Decimal
	TakerRate     decimal.Decimal
	AccountUserID string
}

func (f FeeSchedule) charges() bool {
	return f.MakerRate.IsPositive() || f.TakerRate.IsPositive()
}

// Reservation is what was locked for the taker when it was created.
type Reservation struct {
	Key    balancev1.Key
	Amount decimal.Decimal
}

// ReservationFor returns the lock an order needs. Market buys pass the quote amount they reserve.
func ReservationFor(sym *symbolv1.Symbol, o *orderv1.Order, marketBuyQuote decimal.Decimal) Reservation {
	if o.Side == orderv1.SideSell {
		return Reservation{Key: balancev1.SpotKey(o.UserID, sym.BaseAsset), Amount: o.Remaining()}
	}
	key := balancev1.SpotKey(o.UserID, sym.QuoteAsset)
	if o.Type == orderv1.TypeMarket {
		return Reservation{Key: key, Amount: marketBuyQuote}
	}
	return Reservation{Key: key, Amount: o.Price.Decimal.Mul(o.Remaining())}
}

// ExecuteRequest is one taker order with its plan.
type ExecuteRequest struct {
	Symbol      *symbolv1.Symbol
	Taker       *orderv1.Order
	Plan        *Plan
	Reservation Reservation
}

// Result is the outcome of a committed match step.
type Result struct {
	Taker    *orderv1.Order
	Fills    []Fill
	Makers   []*orderv1.Order
	Trades   []*tradev1.Trade
	Released decimal.Decimal
}

// Executor settles a plan: balances, order states and trades, all in the caller's transaction.
type Executor struct {
	balances balancev1.Repository
	recorder tradev1.Recorder
	states   OrderStates
	fees     FeeSchedule
	logger   logger.Interface
}

// NewExecutor creates an executor.
func NewExecutor(
	balances balancev1.Repository,
	recorder tradev1.Recorder,
	states OrderStates,
	fees FeeSchedule,
	logger logger.Interface,
) *Executor {
	return &Executor{
		balances: balances,
		recorder: recorder,
		states:   states,
		fees:     fees,
		logger:   logger,
	}
}

// LockKeys returns every balance row a match step for the order may touch.
func (e *Executor) LockKeys(sym *symbolv1.Symbol, taker *orderv1.Order, plan *Plan) []balancev1.Key {
	users := []string{taker.UserID}
	for _, f := range plan.Fills {
		users = append(users, f.Maker.UserID)
	}
	if e.fees.charges() && len(plan.Fills) > 0 {
		users = append(users, e.fees.AccountUserID)
	}

	keys := make([]balancev1.Key, 0, len(users)*2)
	for _, u := range users {
		keys = append(keys, balancev1.SpotKey(u, sym.BaseAsset), balancev1.SpotKey(u, sym.QuoteAsset))
	}
	return balancev1.SortKeys(keys)
}

// Execute settles every fill of the plan, then advances or closes the taker.
// The taker must already be stored with its reservation locked.
func (e *Executor) Execute(ctx context.Context, req ExecuteRequest) (*Result, error) {
	taker := req.Taker
	res := &Result{
		Taker:    taker,
		Fills:    req.Plan.Fills,
		Released: decimal.Zero,
	}
	consumed := decimal.Zero

	for _, fill := range req.Plan.Fills {
		maker, err := e.loadMaker(ctx, fill)
		if err != nil {
			return nil, err
		}

		trade, released, err := e.settle(ctx, req.Symbol, taker, maker, fill)
		if err != nil {
			return nil, err
		}

		if err := e.states.Fill(ctx, maker, fill.Quantity); err != nil {
			return nil, err
		}

		if taker.Side == orderv1.SideBuy {
			consumed = consumed.Add(fill.QuoteQuantity())
		} else {
			consumed = consumed.Add(fill.Quantity)
		}
		res.Released = res.Released.Add(released)
		res.Makers = append(res.Makers, maker)
		res.Trades = append(res.Trades, trade)
	}

	if err := e.finishTaker(ctx, req, consumed, res); err != nil {
		return nil, err
	}

	e.logger.DebugContext(ctx, "Match step settled",
		logger.Field{Key: "orderID", Value: taker.ID},
		logger.Field{Key: "fills", Value: len(res.Fills)},
		logger.Field{Key: "status", Value: taker.Status},
	)

	return res, nil
}

func (e *Executor) loadMaker(ctx context.Context, fill Fill) (*orderv1.Order, error) {
	maker, err := e.states.LoadMaker(ctx, fill.Maker.OrderID)
	if err != nil {
		return nil, err
	}

	switch {
	case !maker.IsResting():
		return nil, NewMakerDesyncError(fill.Maker, "order is "+string(maker.Status))
	case maker.Side != fill.Maker.Side:
		return nil, NewMakerDesyncError(fill.Maker, "side differs")
	case !maker.Price.Valid || !maker.Price.Decimal.Equal(fill.Price):
		return nil, NewMakerDesyncError(fill.Maker, "price differs")
	case !maker.Remaining().Equal(fill.Maker.Remaining):
		return nil, NewMakerDesyncError(fill.Maker, "remaining "+maker.Remaining().String()+" on record, "+fill.Maker.Remaining.String()+" on book")
	}

	return maker, nil
}

// settle moves the funds of one fill and records its trade. It returns the quote
// released back to a buying taker whose limit was better than the fill price.
func (e *Executor) settle(ctx context.Context, sym *symbolv1.Symbol, taker, maker *orderv1.Order, fill Fill) (*tradev1.Trade, decimal.Decimal, error) {
	buyer, seller := taker, maker
	buyerRate, sellerRate := e.fees.TakerRate, e.fees.MakerRate
	if taker.Side == orderv1.SideSell {
		buyer, seller = maker, taker
		buyerRate, sellerRate = e.fees.MakerRate, e.fees.TakerRate
	}

	quote := fill.QuoteQuantity()
	sellerFee := feeOf(quote, sellerRate)
	buyerFee := feeOf(fill.Quantity, buyerRate)

	if err := e.balances.DebitLocked(ctx, balancev1.SpotKey(buyer.UserID, sym.QuoteAsset), quote); err != nil {
		return nil, decimal.Zero, err
	}
	if err := e.balances.Credit(ctx, balancev1.SpotKey(seller.UserID, sym.QuoteAsset), quote.Sub(sellerFee)); err != nil {
		return nil, decimal.Zero, err
	}
	if err := e.balances.DebitLocked(ctx, balancev1.SpotKey(seller.UserID, sym.BaseAsset), fill.Quantity); err != nil {
		return nil, decimal.Zero, err
	}
	if err := e.balances.Credit(ctx, balancev1.SpotKey(buyer.UserID, sym.BaseAsset), fill.Quantity.Sub(buyerFee)); err != nil {
		return nil, decimal.Zero, err
	}
	if err := e.collect(ctx, sym.QuoteAsset, sellerFee); err != nil {
		return nil, decimal.Zero, err
	}
	if err := e.collect(ctx, sym.BaseAsset, buyerFee); err != nil {
		return nil, decimal.Zero, err
	}

	released := decimal.Zero
	if buyer == taker && taker.Type == orderv1.TypeLimit && taker.Price.Decimal.GreaterThan(fill.Price) {
		released = fill.Quantity.Mul(taker.Price.Decimal.Sub(fill.Price))
		if err := e.balances.Unlock(ctx, balancev1.SpotKey(taker.UserID, sym.QuoteAsset), released); err != nil {
			return nil, decimal.Zero, err
		}
	}

	makerFee, makerAsset := sellerFee, sym.QuoteAsset
	takerFee, takerAsset := buyerFee, sym.BaseAsset
	if taker.Side == orderv1.SideSell {
		makerFee, makerAsset = buyerFee, sym.BaseAsset
		takerFee, takerAsset = sellerFee, sym.QuoteAsset
	}

	trade, err := e.recorder.Record(ctx, tradev1.RecordRequest{
		Symbol:        sym.Symbol,
		MakerOrderID:  maker.ID,
		TakerOrderID:  taker.ID,
		MakerUserID:   maker.UserID,
		TakerUserID:   taker.UserID,
		TakerSide:     taker.Side,
		Price:         fill.Price,
		Quantity:      fill.Quantity,
		MakerFee:      makerFee,
		MakerFeeAsset: makerAsset,
		TakerFee:      takerFee,
		TakerFeeAsset: takerAsset,
	})
	if err != nil {
		return nil, decimal.Zero, err
	}

	return trade, released, nil
}

func (e *Executor) collect(ctx context.Context, currency string, fee decimal.Decimal) error {
	if !fee.IsPositive() {
		return nil
	}
	return e.balances.Credit(ctx, balancev1.SpotKey(e.fees.AccountUserID, currency), fee)
}

// finishTaker persists the taker's fills. A taker that does not rest is closed
// and whatever is still locked for it goes back to available.
func (e *Executor) finishTaker(ctx context.Context, req ExecuteRequest, consumed decimal.Decimal, res *Result) error {
	taker := req.Taker
	filled := req.Plan.Filled
	rests := taker.CanRest() && filled.LessThan(taker.Remaining())

	if !rests && filled.LessThan(taker.Remaining()) {
		taker.FilledQuantity = taker.FilledQuantity.Add(filled)
		if err := e.states.Close(ctx, taker); err != nil {
			return err
		}
	} else if filled.IsPositive() {
		if err := e.states.Fill(ctx, taker, filled); err != nil {
			return err
		}
	}

	if rests {
		return nil
	}

	leftover := req.Reservation.Amount.Sub(consumed).Sub(res.Released)
	if leftover.IsNegative() {
		return NewOverReleaseError(taker.ID, leftover)
	}
	if leftover.IsZero() {
		return nil
	}
	if err := e.balances.Unlock(ctx, req.Reservation.Key, leftover); err != nil {
		return err
	}
	res.Released = res.Released.Add(leftover)
	return nil
}

func feeOf(amount, rate decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() {
		return decimal.Zero
	}
	return amount.Mul(rate).Truncate(quotePrecision)
}
