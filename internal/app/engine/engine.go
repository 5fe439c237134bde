package engine

import (
	"context"
	stderrors "errors"
	"sync"

	eventv1 "github.com/hoanghiep2625/cex-be/internal/domain/event/v1"
	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	orderbookv1 "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1"
	symbolv1 "github.com/hoanghiep2625/cex-be/internal/domain/symbol/v1"
	"github.com/hoanghiep2625/cex-be/internal/usecase/matching"
	"github.com/hoanghiep2625/cex-be/internal/usecase/order"
	"github.com/hoanghiep2625/cex-be/internal/usecase/orderbook"
	"github.com/hoanghiep2625/cex-be/pkg/errors"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/hoanghiep2625/cex-be/pkg/postgresql"
	"github.com/hoanghiep2625/cex-be/pkg/retry"
)

// ErrEngineStopped is returned for commands sent to a stopped engine.
var ErrEngineStopped = stderrors.New("engine stopped")

// OrderLifecycle is the order usecase as seen by the engine.
//
//go:generate mockgen -source engine.go -destination=mock/engine_mock.go -package=engine_mock
type OrderLifecycle interface {
	Submit(ctx context.Context, book orderbookv1.Reader, req orderv1.SubmitOrderRequest) (*order.SubmitResult, error)
	Cancel(ctx context.Context, userID, orderID string) (*orderv1.Order, error)
	Get(ctx context.Context, orderID string) (*orderv1.Order, error)
	ListActive(ctx context.Context, symbol string) ([]*orderv1.Order, error)
}

// Engine sequences every command of a symbol through one worker goroutine, so a
// match step and the book mutation that follows it are never interleaved.
type Engine struct {
	orders  OrderLifecycle
	symbols symbolv1.Registry
	tx      postgresql.TxManager
	books   *orderbook.Manager
	events  eventv1.Dispatcher
	logger  logger.Interface
	options *Options

	mu      sync.RWMutex
	workers map[string]*worker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngine creates a new instance of Engine with the provided dependencies.
func NewEngine(
	orders OrderLifecycle,
	symbols symbolv1.Registry,
	tx postgresql.TxManager,
	books *orderbook.Manager,
	events eventv1.Dispatcher,
	logger logger.Interface,
) *Engine {
	return NewEngineWithOptions(orders, symbols, tx, books, events, logger, DefaultEngineOptions())
}

// NewEngineWithOptions creates a new engine with custom options
func NewEngineWithOptions(
	orders OrderLifecycle,
	symbols symbolv1.Registry,
	tx postgresql.TxManager,
	books *orderbook.Manager,
	events eventv1.Dispatcher,
	logger logger.Interface,
	options *Options,
) *Engine {
	if options.QueueSize <= 0 {
		options.QueueSize = DefaultEngineOptions().QueueSize
	}
	return &Engine{
		orders:  orders,
		symbols: symbols,
		tx:      tx,
		books:   books,
		events:  events,
		logger:  logger,
		options: options,
		workers: make(map[string]*worker),
	}
}

// Start opens a book and a worker per symbol and rebuilds the books from storage.
// Workers outlive ctx; only Stop ends them.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	e.ctx, e.cancel = context.WithCancel(context.WithoutCancel(ctx))
	e.mu.Unlock()

	symbols, err := e.loadSymbols(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	for _, s := range symbols {
		e.openWorker(s)
	}
	e.mu.Unlock()

	e.logger.Info("Engine started", logger.Field{Key: "symbols", Value: symbols})

	return e.Reconcile(ctx)
}

// Stop rejects new commands, runs the commands already queued and waits for the workers to exit.
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

func (e *Engine) loadSymbols(ctx context.Context) ([]string, error) {
	if len(e.options.Symbols) > 0 {
		for _, s := range e.options.Symbols {
			if _, err := e.symbols.GetSymbol(ctx, s); err != nil {
				return nil, err
			}
		}
		return e.options.Symbols, nil
	}

	list, err := e.symbols.ListSymbols(ctx, symbolv1.StatusTrading)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(list))
	for _, s := range list {
		symbols = append(symbols, s.Symbol)
	}
	return symbols, nil
}

// openWorker starts the worker of symbol. Callers hold e.mu.
func (e *Engine) openWorker(symbol string) *worker {
	w := newWorker(symbol, e.books.Open(symbol), e.options.QueueSize, e.ctx.Done())
	e.workers[symbol] = w
	e.wg.Add(1)
	go e.runWorker(w)
	return w
}

func (e *Engine) runWorker(w *worker) {
	defer e.wg.Done()
	defer close(w.stopped)

	e.logger.Info("Starting symbol worker", logger.Field{Key: "symbol", Value: w.symbol})

	for {
		select {
		case <-e.ctx.Done():
			e.drain(w)
			e.logger.Info("Symbol worker shutting down", logger.Field{Key: "symbol", Value: w.symbol})
			return
		case t := <-w.queue:
			e.run(w, t)
		}
	}
}

// drain runs the tasks queued before shutdown.
func (e *Engine) drain(w *worker) {
	for {
		select {
		case t := <-w.queue:
			e.run(w, t)
		default:
			return
		}
	}
}

func (e *Engine) run(w *worker, t *task) {
	if !t.start() {
		return
	}
	t.done <- e.execute(w, t)
}

// execute runs a started task to completion even when its caller has gone away.
func (e *Engine) execute(w *worker, t *task) error {
	if cause := w.halted(); cause != nil && !t.ignoreHalt {
		return newHaltedError(w.symbol, cause)
	}

	ctx := context.WithoutCancel(t.ctx)
	err := t.fn(ctx)
	if errors.IsCode(err, errors.InvariantViolationError) {
		w.halt(err)
		e.logger.ErrorContext(ctx, err,
			logger.Field{Key: "action", Value: "halt_symbol"},
			logger.Field{Key: "symbol", Value: w.symbol},
		)
	}
	return err
}

func (e *Engine) lookup(symbol string) (*worker, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	w, ok := e.workers[symbol]
	return w, ok
}

// worker returns the worker of symbol, opening it when the symbol started trading after Start.
func (e *Engine) worker(ctx context.Context, symbol string) (*worker, error) {
	if w, ok := e.lookup(symbol); ok {
		return w, nil
	}
	if !e.serves(symbol) {
		return nil, symbolv1.NewUnavailableError(symbol)
	}

	s, err := e.symbols.GetSymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if s.Status != symbolv1.StatusTrading {
		return nil, symbolv1.NewUnavailableError(symbol)
	}

	e.mu.Lock()
	if w, ok := e.workers[symbol]; ok {
		e.mu.Unlock()
		return w, nil
	}
	if e.ctx == nil || e.ctx.Err() != nil {
		e.mu.Unlock()
		return nil, ErrEngineStopped
	}
	w := e.openWorker(symbol)
	// Queued ahead of any command so the first one sees the rebuilt book.
	rctx := context.WithoutCancel(ctx)
	t, err := w.enqueue(rctx, true, e.reconcileFn(w))
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "Symbol worker opened", logger.Field{Key: "symbol", Value: symbol})
	if err := w.wait(rctx, t); err != nil {
		return nil, err
	}
	return w, nil
}

// serves reports whether symbol is within the configured symbol set, if any.
func (e *Engine) serves(symbol string) bool {
	if len(e.options.Symbols) == 0 {
		return true
	}
	for _, s := range e.options.Symbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// SubmitOrder accepts a new order and runs its match step on the symbol's worker.
func (e *Engine) SubmitOrder(ctx context.Context, req orderv1.SubmitOrderRequest) (*orderv1.Order, error) {
	w, err := e.worker(ctx, req.Symbol)
	if err != nil {
		return nil, err
	}

	var submitted *orderv1.Order
	err = w.do(ctx, false, func(ctx context.Context) error {
		o, err := e.submit(ctx, w, req)
		submitted = o
		return err
	})
	return submitted, err
}

func (e *Engine) submit(ctx context.Context, w *worker, req orderv1.SubmitOrderRequest) (*orderv1.Order, error) {
	var res *order.SubmitResult
	err := e.inTx(ctx, func(ctx context.Context) error {
		r, err := e.orders.Submit(ctx, w.book, req)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.Execution != nil {
		if err := matching.Apply(w.book, res.Execution); err != nil {
			return nil, err
		}
	}

	e.events.Dispatch(submitEvents(res, w.book.Depth(e.options.DepthLevels))...)
	return res.Order, nil
}

// CancelOrder cancels a resting order of the user on its symbol's worker.
// An empty symbol skips the check that the order trades on it.
func (e *Engine) CancelOrder(ctx context.Context, userID, symbol, orderID string) (*orderv1.Order, error) {
	o, err := e.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID || (symbol != "" && o.Symbol != symbol) {
		return nil, orderv1.NewNotFoundError(orderID)
	}

	w, err := e.worker(ctx, o.Symbol)
	if err != nil {
		return nil, err
	}

	var canceled *orderv1.Order
	err = w.do(ctx, false, func(ctx context.Context) error {
		c, err := e.cancelOrder(ctx, w, userID, orderID)
		canceled = c
		return err
	})
	return canceled, err
}

func (e *Engine) cancelOrder(ctx context.Context, w *worker, userID, orderID string) (*orderv1.Order, error) {
	var o *orderv1.Order
	err := e.inTx(ctx, func(ctx context.Context) error {
		c, err := e.orders.Cancel(ctx, userID, orderID)
		if err != nil {
			return err
		}
		o = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := w.book.Remove(o.Side, o.Price.Decimal, o.ID); err != nil {
		return nil, matching.NewBookApplyError(o.ID, err)
	}

	e.events.Dispatch(
		eventv1.NewOrderEvent(eventv1.OrderCanceled, o, ""),
		eventv1.NewDepthEvent(w.book.Depth(e.options.DepthLevels)),
	)
	return o, nil
}

// inTx runs fn in one transaction, retrying serialization and lock conflicts.
func (e *Engine) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	err := retry.Do(ctx, e.options.Retry, postgresql.IsRetryable, func(ctx context.Context, attempt int) error {
		if attempt > 1 {
			e.logger.WarnContext(ctx, "Retrying match step", logger.Field{Key: "attempt", Value: attempt})
		}
		return e.tx.WithTx(ctx, fn)
	})

	var exhausted *retry.ExhaustedError
	if stderrors.As(err, &exhausted) {
		return errors.New(errors.TransientConflictError, "", "%v", exhausted)
	}
	return err
}

// Reconcile rebuilds every book from the resting orders in storage.
func (e *Engine) Reconcile(ctx context.Context) error {
	e.mu.RLock()
	workers := make([]*worker, 0, len(e.workers))
	for _, w := range e.workers {
		workers = append(workers, w)
	}
	e.mu.RUnlock()

	for _, w := range workers {
		if err := e.reconcile(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

// Resume rebuilds a halted symbol's book from storage and accepts commands again.
func (e *Engine) Resume(ctx context.Context, symbol string) error {
	w, err := e.worker(ctx, symbol)
	if err != nil {
		return err
	}
	return e.reconcile(ctx, w)
}

func (e *Engine) reconcile(ctx context.Context, w *worker) error {
	return w.do(ctx, true, e.reconcileFn(w))
}

func (e *Engine) reconcileFn(w *worker) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		orders, err := e.orders.ListActive(ctx, w.symbol)
		if err != nil {
			return err
		}

		w.book.Clear()
		for _, o := range orders {
			if _, err := w.book.Insert(orderbookv1.EntryFromOrder(o)); err != nil {
				w.book.Clear()
				w.halt(err)
				return matching.NewBookApplyError(o.ID, err)
			}
		}
		w.resume()

		e.logger.Info("Book reconciled",
			logger.Field{Key: "symbol", Value: w.symbol},
			logger.Field{Key: "orders", Value: len(orders)},
		)
		e.events.Dispatch(eventv1.NewDepthEvent(w.book.Depth(e.options.DepthLevels)))
		return nil
	}
}

// Halted reports why a symbol stopped accepting commands, or nil.
func (e *Engine) Halted(symbol string) error {
	w, ok := e.lookup(symbol)
	if !ok {
		return symbolv1.NewUnavailableError(symbol)
	}
	return w.halted()
}

// Symbols returns the symbols the engine trades.
func (e *Engine) Symbols() []string {
	return e.books.Symbols()
}

// BestBidAsk returns the top of a symbol's book.
func (e *Engine) BestBidAsk(symbol string) (orderbookv1.BestBidAsk, error) {
	top, err := e.books.BestBidAsk(symbol)
	if stderrors.Is(err, orderbookv1.ErrUnknownSymbol) {
		return top, symbolv1.NewUnavailableError(symbol)
	}
	return top, err
}

// Depth returns up to levels aggregated price levels per side of a symbol's book.
func (e *Engine) Depth(symbol string, levels int) (*orderbookv1.Depth, error) {
	depth, err := e.books.DepthSnapshot(symbol, levels)
	if stderrors.Is(err, orderbookv1.ErrUnknownSymbol) {
		return nil, symbolv1.NewUnavailableError(symbol)
	}
	return depth, err
}
