package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode classifies an error for callers and transports.
type ErrorCode string

// Trading codes.
const (
	ValidationError           ErrorCode = "validation_error"
	InsufficientBalanceError  ErrorCode = "insufficient_balance"
	DuplicateClientOrderError ErrorCode = "duplicate_client_order"
	SymbolUnavailableError    ErrorCode = "symbol_unavailable"
	OrderNotFoundError        ErrorCode = "order_not_found"
	InvalidOrderStateError    ErrorCode = "invalid_order_state"
	// TransientConflictError is returned once every retry of a conflicting transaction failed.
	TransientConflictError ErrorCode = "transient_conflict"
	// InvariantViolationError halts the symbol that produced it.
	InvariantViolationError ErrorCode = "invariant_violation"
	SymbolHaltedError       ErrorCode = "symbol_halted"

	GeneralInternalServerError ErrorCode = "general_internal_server_error"
)

// Redis client codes.
const (
	RedisConfigError        ErrorCode = "redis_config_error"
	RedisConnectionError    ErrorCode = "redis_connection_error"
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	RedisPingError          ErrorCode = "redis_pinging_error"
	RedisGetError           ErrorCode = "redis_get_error"
	RedisSetError           ErrorCode = "redis_set_error"
	RedisPublishError       ErrorCode = "redis_publish_error"
)

// New creates an ErrorDetails for the given code.
func New(code ErrorCode, field, format string, args ...any) *ErrorDetails {
	return NewErrorDetails(fmt.Sprintf(format, args...), string(code), field)
}

// IsCode reports whether any error in err's chain is an ErrorDetails with the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the first ErrorDetails in err's chain.
func CodeOf(err error) ErrorCode {
	var details *ErrorDetails
	if !stderrors.As(err, &details) {
		return ""
	}
	return ErrorCode(details.Code)
}
