package command

import (
	"context"
	"time"

	orderreaderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order-reader/v1"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// ReaderConfig configures the order command consumer.
type ReaderConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	MaxWait time.Duration
}

type messageFetcher interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Reader consumes order commands from a Kafka consumer group.
type Reader struct {
	kafkaReader messageFetcher
	logger      logger.Interface
}

// NewReader creates a Kafka reader for the order command topic.
func NewReader(config ReaderConfig, log logger.Interface) *Reader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     config.Brokers,
		Topic:       config.Topic,
		GroupID:     config.GroupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     config.MaxWait,
		StartOffset: kafka.FirstOffset,
	})

	return newReader(kafkaReader, log)
}

func newReader(fetcher messageFetcher, log logger.Interface) *Reader {
	return &Reader{
		kafkaReader: fetcher,
		logger:      log,
	}
}

var _ orderreaderv1.OrderReader = (*Reader)(nil)

func (r *Reader) logError(err error, operation string) {
	r.logger.Error(err,
		logger.Field{Key: "error", Value: err.Error()},
		logger.Field{Key: "operation", Value: operation},
	)
}

// ReadMessage fetches the next message without committing it and decodes its command.
func (r *Reader) ReadMessage(ctx context.Context) (kafka.Message, *orderreaderv1.OrderCommand, error) {
	msg, err := r.kafkaReader.FetchMessage(ctx)
	if err != nil {
		if ctx.Err() == nil {
			r.logError(err, "FetchMessage")
		}
		return kafka.Message{}, nil, err
	}

	cmd, err := orderreaderv1.FromBytes(msg.Value)
	if err != nil {
		r.logError(err, "DecodeCommand")
		return msg, nil, err
	}

	r.logger.DebugContext(ctx, "ReadMessage",
		logger.Field{Key: "action", Value: string(cmd.Action)},
		logger.Field{Key: "requestID", Value: cmd.RequestID},
		logger.Field{Key: "partition", Value: msg.Partition},
		logger.Field{Key: "offset", Value: msg.Offset},
	)

	return msg, cmd, nil
}

// CommitMessages commits the messages to Kafka after processing.
func (r *Reader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	if err := r.kafkaReader.CommitMessages(ctx, msgs...); err != nil {
		r.logError(err, "CommitMessages")
		return err
	}
	return nil
}

// Close properly closes the Kafka reader.
func (r *Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(err, "Close")
		return err
	}
	return nil
}
