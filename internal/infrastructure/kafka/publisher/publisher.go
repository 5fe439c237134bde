package publisher

import (
	"context"
	"encoding/json"

	eventv1 "github.com/hoanghiep2625/cex-be/internal/domain/event/v1"
	"github.com/hoanghiep2625/cex-be/pkg/errors"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Config names the event topics.
type Config struct {
	Brokers    []string
	OrderTopic string
	TradeTopic string
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes order and trade events to Kafka for downstream services.
type Publisher struct {
	orderWriter messageWriter
	tradeWriter messageWriter
	logger      logger.Interface
}

// NewPublisher creates a Kafka event publisher.
func NewPublisher(config Config, logger logger.Interface) *Publisher {
	return newPublisher(newWriter(config.Brokers, config.OrderTopic), newWriter(config.Brokers, config.TradeTopic), logger)
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}

func newPublisher(orderWriter, tradeWriter messageWriter, logger logger.Interface) *Publisher {
	return &Publisher{
		orderWriter: orderWriter,
		tradeWriter: tradeWriter,
		logger:      logger,
	}
}

var _ eventv1.Publisher = (*Publisher)(nil)

// Publish writes order events to the order topic and trade events to the trade topic.
// Events are keyed by symbol. Depth events are not published to Kafka.
func (p *Publisher) Publish(ctx context.Context, events ...eventv1.Event) error {
	var orderMsgs, tradeMsgs []kafka.Message

	for _, e := range events {
		value, err := json.Marshal(e)
		if err != nil {
			return errors.NewTracer("event_marshal_error").Wrap(err)
		}
		msg := kafka.Message{
			Key:   []byte(e.Symbol),
			Value: value,
			Headers: []kafka.Header{
				{Key: "type", Value: []byte(e.Type)},
			},
		}

		switch e.Type {
		case eventv1.OrderCreated, eventv1.OrderCanceled, eventv1.OrderUpdated:
			orderMsgs = append(orderMsgs, msg)
		case eventv1.TradeCreated:
			tradeMsgs = append(tradeMsgs, msg)
		}
	}

	if err := p.write(ctx, p.orderWriter, orderMsgs); err != nil {
		return err
	}
	return p.write(ctx, p.tradeWriter, tradeMsgs)
}

func (p *Publisher) write(ctx context.Context, w messageWriter, msgs []kafka.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	if err := w.WriteMessages(ctx, msgs...); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "error", Value: err.Error()},
			logger.Field{Key: "messages", Value: len(msgs)},
		)
		return errors.NewTracer("event_publish_error").Wrap(err)
	}
	return nil
}

// Close flushes and closes both writers.
func (p *Publisher) Close() error {
	orderErr := p.orderWriter.Close()
	if err := p.tradeWriter.Close(); err != nil {
		return err
	}
	return orderErr
}
