package consumer

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/hoanghiep2625/cex-be/internal/app/engine"
	orderreaderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order-reader/v1"
	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	"github.com/hoanghiep2625/cex-be/pkg/errors"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/hoanghiep2625/cex-be/pkg/util"
	"github.com/segmentio/kafka-go"
)

const (
	sourceKafka   = "kafka"
	commitTimeout = 5 * time.Second
)

// OrderEngine executes order commands.
//
//go:generate mockgen -source consumer.go -destination=mock/consumer_mock.go -package=consumer_mock
type OrderEngine interface {
	SubmitOrder(ctx context.Context, req orderv1.SubmitOrderRequest) (*orderv1.Order, error)
	CancelOrder(ctx context.Context, userID, symbol, orderID string) (*orderv1.Order, error)
}

// Consumer feeds order commands from Kafka into the engine.
// An offset is committed once its command has a final outcome, accepted or rejected.
// Transient failures keep the message uncommitted and are retried in place.
type Consumer struct {
	reader     orderreaderv1.OrderReader
	engine     OrderEngine
	logger     logger.Interface
	retryDelay time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewConsumer creates a command consumer. retryDelay spaces out retries of transient failures.
func NewConsumer(reader orderreaderv1.OrderReader, engine OrderEngine, logger logger.Interface, retryDelay time.Duration) *Consumer {
	if retryDelay <= 0 {
		retryDelay = 100 * time.Millisecond
	}
	return &Consumer{
		reader:     reader,
		engine:     engine,
		logger:     logger,
		retryDelay: retryDelay,
	}
}

// Start launches the consume loop.
func (c *Consumer) Start(ctx context.Context) {
	c.ctx, c.cancel = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.run()

	c.logger.InfoContext(ctx, "Order command consumer started", logger.Field{Key: "action", Value: "order_consumer_start"})
}

// Stop ends the consume loop and closes the reader.
func (c *Consumer) Stop(ctx context.Context) error {
	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Order command consumer stopped", logger.Field{Key: "action", Value: "order_consumer_stop"})
		return c.reader.Close()
	case <-ctx.Done():
		c.logger.Warn("Order command consumer stop timeout exceeded")
		return ctx.Err()
	}
}

func (c *Consumer) run() {
	defer c.wg.Done()

	for {
		msg, cmd, err := c.reader.ReadMessage(c.ctx)
		if c.ctx.Err() != nil {
			return
		}

		if err != nil {
			var decodeErr *orderreaderv1.DecodeError
			if stderrors.As(err, &decodeErr) {
				c.logger.WarnContext(c.ctx, "Skipping malformed order command",
					logger.Field{Key: "error", Value: err.Error()},
					logger.Field{Key: "partition", Value: msg.Partition},
					logger.Field{Key: "offset", Value: msg.Offset},
				)
				c.commit(msg)
				continue
			}

			c.logger.ErrorContext(c.ctx, err, logger.Field{Key: "action", Value: "read_order_command"})
			if !c.wait() {
				return
			}
			continue
		}

		if !c.handle(msg, cmd) {
			return
		}
		c.commit(msg)
	}
}

// handle runs cmd until it has a final outcome. It returns false when the consumer is stopping.
func (c *Consumer) handle(msg kafka.Message, cmd *orderreaderv1.OrderCommand) bool {
	ctx := util.WithSource(util.ContextWithRequestID(c.ctx, cmd.RequestID), sourceKafka)

	for attempt := 1; ; attempt++ {
		o, err := c.process(ctx, cmd)
		switch {
		case err == nil:
			c.logger.InfoContext(ctx, "Order command processed",
				logger.Field{Key: "command", Value: string(cmd.Action)},
				logger.Field{Key: "orderID", Value: o.ID},
				logger.Field{Key: "status", Value: string(o.Status)},
			)
			return true
		case isTransient(err):
			if c.ctx.Err() != nil {
				return false
			}
			c.logger.WarnContext(ctx, "Order command failed transiently, retrying",
				logger.Field{Key: "command", Value: string(cmd.Action)},
				logger.Field{Key: "attempt", Value: attempt},
				logger.Field{Key: "offset", Value: msg.Offset},
				logger.Field{Key: "error", Value: err.Error()},
			)
			if !c.wait() {
				return false
			}
		default:
			c.logger.WarnContext(ctx, "Order command rejected",
				logger.Field{Key: "command", Value: string(cmd.Action)},
				logger.Field{Key: "code", Value: errors.CodeOf(err)},
				logger.Field{Key: "error", Value: err.Error()},
			)
			return true
		}
	}
}

func (c *Consumer) process(ctx context.Context, cmd *orderreaderv1.OrderCommand) (*orderv1.Order, error) {
	switch cmd.Action {
	case orderreaderv1.ActionSubmit:
		ctx = util.WithSymbol(util.WithActorID(ctx, cmd.Submit.UserID), cmd.Submit.Symbol)
		return c.engine.SubmitOrder(ctx, *cmd.Submit)
	case orderreaderv1.ActionCancel:
		ctx = util.WithSymbol(util.WithActorID(ctx, cmd.Cancel.UserID), cmd.Cancel.Symbol)
		return c.engine.CancelOrder(ctx, cmd.Cancel.UserID, cmd.Cancel.Symbol, cmd.Cancel.OrderID)
	default:
		return nil, errors.New(errors.ValidationError, "action", "unknown action %q", cmd.Action)
	}
}

// commit records msg's outcome. It still runs while the consumer is stopping.
func (c *Consumer) commit(msg kafka.Message) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.ctx), commitTimeout)
	defer cancel()

	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.ErrorContext(ctx, err,
			logger.Field{Key: "action", Value: "commit_order_command"},
			logger.Field{Key: "offset", Value: msg.Offset},
		)
	}
}

// wait sleeps for the retry delay and reports whether the consumer is still running.
func (c *Consumer) wait() bool {
	t := time.NewTimer(c.retryDelay)
	defer t.Stop()

	select {
	case <-c.ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func isTransient(err error) bool {
	return errors.IsCode(err, errors.TransientConflictError) ||
		stderrors.Is(err, engine.ErrEngineStopped) ||
		stderrors.Is(err, context.DeadlineExceeded) ||
		stderrors.Is(err, context.Canceled)
}
