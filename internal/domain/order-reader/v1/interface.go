package orderreaderv1

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// OrderReader reads order commands from a source.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderreaderv1_mock
type OrderReader interface {
	// ReadMessage fetches the next message and decodes its command.
	// A message that cannot be decoded is returned together with the error so it can be committed.
	ReadMessage(ctx context.Context) (kafka.Message, *OrderCommand, error)
	// CommitMessages commits the messages to Kafka after processing
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderWriter publishes order commands.
type OrderWriter interface {
	WriteCommands(ctx context.Context, cmds ...*OrderCommand) error
	Close() error
}
