package engine

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"

	"github.com/hoanghiep2625/cex-be/internal/usecase/orderbook"
	"github.com/hoanghiep2625/cex-be/pkg/errors"
)

const (
	taskQueued int32 = iota
	taskStarted
	taskAbandoned
)

// errNotReconciled halts a worker until its book has been rebuilt from storage.
var errNotReconciled = stderrors.New("book not reconciled")

// task is one command executed on a symbol's worker.
type task struct {
	ctx context.Context
	fn  func(ctx context.Context) error
	// ignoreHalt lets reconciliation run on a halted worker.
	ignoreHalt bool
	done       chan error
	state      atomic.Int32
}

func newTask(ctx context.Context, ignoreHalt bool, fn func(ctx context.Context) error) *task {
	return &task{ctx: ctx, fn: fn, ignoreHalt: ignoreHalt, done: make(chan error, 1)}
}

// start claims t for execution. It fails when the caller already gave up on t.
func (t *task) start() bool {
	return t.state.CompareAndSwap(taskQueued, taskStarted)
}

// abandon withdraws t before the worker picks it up. It fails once t has started.
func (t *task) abandon() bool {
	return t.state.CompareAndSwap(taskQueued, taskAbandoned)
}

// worker is the single writer of one symbol's book.
type worker struct {
	symbol  string
	book    *orderbook.Book
	queue   chan *task
	closing <-chan struct{}
	stopped chan struct{}

	mu      sync.RWMutex
	haltErr error
}

// newWorker creates a worker that stays halted until its first reconciliation.
func newWorker(symbol string, book *orderbook.Book, queueSize int, closing <-chan struct{}) *worker {
	return &worker{
		symbol:  symbol,
		book:    book,
		queue:   make(chan *task, queueSize),
		closing: closing,
		stopped: make(chan struct{}),
		haltErr: errNotReconciled,
	}
}

// do queues fn and waits for its result.
func (w *worker) do(ctx context.Context, ignoreHalt bool, fn func(ctx context.Context) error) error {
	t, err := w.enqueue(ctx, ignoreHalt, fn)
	if err != nil {
		return err
	}
	return w.wait(ctx, t)
}

func (w *worker) enqueue(ctx context.Context, ignoreHalt bool, fn func(ctx context.Context) error) (*task, error) {
	select {
	case <-w.closing:
		return nil, ErrEngineStopped
	default:
	}

	t := newTask(ctx, ignoreHalt, fn)
	select {
	case w.queue <- t:
		return t, nil
	case <-w.stopped:
		return nil, ErrEngineStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// wait returns the result of t. A task the worker already started always reports its own result.
func (w *worker) wait(ctx context.Context, t *task) error {
	select {
	case err := <-t.done:
		return err
	case <-w.stopped:
		if t.abandon() {
			return ErrEngineStopped
		}
		return <-t.done
	case <-ctx.Done():
		if t.abandon() {
			return ctx.Err()
		}
		return <-t.done
	}
}

func (w *worker) halt(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.haltErr == nil {
		w.haltErr = err
	}
}

func (w *worker) resume() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.haltErr = nil
}

func (w *worker) halted() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.haltErr
}

func newHaltedError(symbol string, cause error) *errors.ErrorDetails {
	return errors.New(errors.SymbolHaltedError, "symbol", "symbol %s is halted: %v", symbol, cause)
}
