package errors

// ErrorDetails is an error with a machine readable code.
type ErrorDetails struct {
	// Message is safe to show to the caller, e.g. "quantity must be a multiple of 0.001".
	Message string

	// Code is one of the ErrorCode values.
	Code string

	// Field names the request field the error is about, if any.
	Field string
}

// NewErrorDetails creates a new ErrorDetails.
func NewErrorDetails(message, code, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

func (e *ErrorDetails) Error() string {
	return e.Message
}

// Is matches another ErrorDetails with the same code.
func (e *ErrorDetails) Is(target error) bool {
	t, ok := target.(*ErrorDetails)
	return ok && t.Code == e.Code
}
