package errors

import "github.com/pkg/errors"

// StackTracer is implemented by errors created through github.com/pkg/errors.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

// ErrorTracer names a failed operation and keeps the cause with its stack.
// ErrorDetails in the cause stay reachable through Unwrap.
type ErrorTracer struct {
	Message string
	Err     error
}

// NewTracer creates an ErrorTracer for the operation described by message.
func NewTracer(message string) *ErrorTracer {
	return &ErrorTracer{Message: message}
}

// TracerFromError wraps err under its own message.
func TracerFromError(err error) *ErrorTracer {
	return NewTracer(err.Error()).Wrap(err)
}

// Wrap sets the cause, attaching a stack if it has none.
func (e *ErrorTracer) Wrap(err error) *ErrorTracer {
	if _, ok := err.(StackTracer); !ok {
		err = errors.WithStack(err)
	}
	e.Err = err
	return e
}

func (e *ErrorTracer) Error() string {
	if e.Err == nil || e.Message == e.Err.Error() {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ErrorTracer) Unwrap() error {
	return e.Err
}

// StackTrace returns the stack recorded when the cause was wrapped.
func (e *ErrorTracer) StackTrace() errors.StackTrace {
	if st, ok := e.Err.(StackTracer); ok {
		return st.StackTrace()
	}
	return nil
}
