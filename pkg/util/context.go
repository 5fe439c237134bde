package util

import (
	"context"

	"github.com/google/uuid"
)

type key string

const (
	requestIDKey = key("x-request-id")
	actorIDKey   = key("actor-id")
	symbolKey    = key("symbol")
	sourceKey    = key("source")
)

// ContextWithRequestID returns a context carrying id, or a fresh uuid when id is empty.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// WithActorID returns a context carrying the id of the user acting on the order.
func WithActorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, actorIDKey, id)
}

// WithSymbol returns a context carrying the trading pair being processed.
func WithSymbol(ctx context.Context, symbol string) context.Context {
	return context.WithValue(ctx, symbolKey, symbol)
}

// WithSource tags ctx with the inbound channel (kafka, http, reconcile).
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey, source)
}

func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

func GetActorID(ctx context.Context) string {
	return stringValue(ctx, actorIDKey)
}

func GetSymbol(ctx context.Context) string {
	return stringValue(ctx, symbolKey)
}

func GetSource(ctx context.Context) string {
	return stringValue(ctx, sourceKey)
}

// Fields returns the correlation values set in ctx, keyed for logging.
// request_id is always present; the others only when set.
func Fields(ctx context.Context) map[string]string {
	fields := map[string]string{"request_id": GetRequestID(ctx)}
	for name, k := range map[string]key{"actor_id": actorIDKey, "symbol": symbolKey, "source": sourceKey} {
		if v := stringValue(ctx, k); v != "" {
			fields[name] = v
		}
	}
	return fields
}

func stringValue(ctx context.Context, k key) string {
	v, _ := ctx.Value(k).(string)
	return v
}
