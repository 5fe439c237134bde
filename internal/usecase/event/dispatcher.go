package event

import (
	"context"
	"sync"
	"time"

	eventv1 "github.com/hoanghiep2625/cex-be/internal/domain/event/v1"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
)

const maxBatch = 256

// Dispatcher delivers committed events to every publisher from a background goroutine.
// Delivery is best effort: a full buffer drops events and publisher errors are only logged.
type Dispatcher struct {
	publishers []eventv1.Publisher
	timeout    time.Duration
	logger     logger.Interface

	events chan eventv1.Event
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

var _ eventv1.Dispatcher = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher buffering up to buffer events.
func NewDispatcher(buffer int, timeout time.Duration, logger logger.Interface, publishers ...eventv1.Publisher) *Dispatcher {
	if buffer <= 0 {
		buffer = 1
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Dispatcher{
		publishers: publishers,
		timeout:    timeout,
		logger:     logger,
		events:     make(chan eventv1.Event, buffer),
	}
}

// Start launches the delivery goroutine.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.run()
}

// Stop stops accepting events and waits for the buffered ones to be delivered.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.events)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("Event dispatcher stopped")
		return nil
	case <-ctx.Done():
		d.logger.Warn("Event dispatcher stop timeout exceeded")
		return ctx.Err()
	}
}

// Dispatch queues events without blocking.
func (d *Dispatcher) Dispatch(events ...eventv1.Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("Event dispatcher closed, dropping events", logger.Field{Key: "count", Value: len(events)})
		return
	}

	for _, e := range events {
		select {
		case d.events <- e:
		default:
			d.logger.Warn("Event buffer full, dropping event",
				logger.Field{Key: "type", Value: e.Type},
				logger.Field{Key: "symbol", Value: e.Symbol},
			)
		}
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for e := range d.events {
		batch := []eventv1.Event{e}
	drain:
		for len(batch) < maxBatch {
			select {
			case next, ok := <-d.events:
				if !ok {
					break drain
				}
				batch = append(batch, next)
			default:
				break drain
			}
		}
		d.publish(batch)
	}
}

func (d *Dispatcher) publish(batch []eventv1.Event) {
	for _, p := range d.publishers {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := p.Publish(ctx, batch...)
		cancel()

		if err != nil {
			d.logger.Error(err,
				logger.Field{Key: "action", Value: "publish_events"},
				logger.Field{Key: "count", Value: len(batch)},
			)
		}
	}
}
