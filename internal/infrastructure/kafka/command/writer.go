package command

import (
	"context"

	orderreaderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order-reader/v1"
	"github.com/hoanghiep2625/cex-be/pkg/errors"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Writer publishes order commands keyed by symbol so one symbol's commands stay ordered.
type Writer struct {
	kafkaWriter messageWriter
	logger      logger.Interface
}

// NewWriter creates a Kafka writer for the order command topic.
func NewWriter(brokers []string, topic string, log logger.Interface) *Writer {
	return newWriter(&kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}, log)
}

func newWriter(w messageWriter, log logger.Interface) *Writer {
	return &Writer{
		kafkaWriter: w,
		logger:      log,
	}
}

var _ orderreaderv1.OrderWriter = (*Writer)(nil)

// WriteCommands publishes the commands in one batch.
func (w *Writer) WriteCommands(ctx context.Context, cmds ...*orderreaderv1.OrderCommand) error {
	msgs := make([]kafka.Message, 0, len(cmds))
	for _, cmd := range cmds {
		if err := cmd.Validate(); err != nil {
			return errors.NewTracer("invalid_order_command").Wrap(err)
		}
		value, err := cmd.ToBytes()
		if err != nil {
			return errors.NewTracer("command_marshal_error").Wrap(err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(cmd.Key()),
			Value: value,
		})
	}

	if err := w.kafkaWriter.WriteMessages(ctx, msgs...); err != nil {
		w.logger.Error(err,
			logger.Field{Key: "error", Value: err.Error()},
			logger.Field{Key: "commands", Value: len(cmds)},
		)
		return errors.NewTracer("command_publish_error").Wrap(err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (w *Writer) Close() error {
	return w.kafkaWriter.Close()
}
