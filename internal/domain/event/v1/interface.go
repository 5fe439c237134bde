package eventv1

import "context"

// Publisher delivers events to one sink.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=eventv1_mock
type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
}

// Dispatcher hands events to publishers without blocking the caller.
type Dispatcher interface {
	Dispatch(events ...Event)
}
