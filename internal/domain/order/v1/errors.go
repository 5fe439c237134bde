package orderv1

import (
	"github.com/hoanghiep2625/cex-be/pkg/errors"
)

// NewValidationError reports an order that violates the trading rules of its symbol.
func NewValidationError(field, format string, args ...any) *errors.ErrorDetails {
	return errors.New(errors.ValidationError, field, format, args...)
}

// NewDuplicateClientOrderError reports a client order id already used by the user.
func NewDuplicateClientOrderError(clientOrderID string) *errors.ErrorDetails {
	return errors.New(errors.DuplicateClientOrderError, "clientOrderID", "client order id %q already used", clientOrderID)
}

// NewNotFoundError reports an order that does not exist for the caller.
func NewNotFoundError(orderID string) *errors.ErrorDetails {
	return errors.New(errors.OrderNotFoundError, "orderID", "order %s not found", orderID)
}

// NewInvalidStateError reports a transition that the order's status does not allow.
func NewInvalidStateError(o *Order) *errors.ErrorDetails {
	return errors.New(errors.InvalidOrderStateError, "status", "order %s is %s", o.ID, o.Status)
}
