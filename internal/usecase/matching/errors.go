package matching

import (
	orderbookv1 "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1"
	"github.com/hoanghiep2625/cex-be/pkg/errors"
	"github.com/shopspring/decimal"
)

// NewMakerDesyncError reports a book entry that disagrees with the stored order.
func NewMakerDesyncError(entry orderbookv1.Entry, reason string) *errors.ErrorDetails {
	return errors.New(errors.InvariantViolationError, "orderbook", "book entry of order %s out of sync: %s", entry.OrderID, reason)
}

// NewBookApplyError reports a committed match step that could not be applied to the book.
func NewBookApplyError(orderID string, err error) *errors.ErrorDetails {
	return errors.New(errors.InvariantViolationError, "orderbook", "apply order %s to book: %v", orderID, err)
}

// NewOverReleaseError reports a taker whose settlement consumed more than its reservation.
func NewOverReleaseError(orderID string, leftover decimal.Decimal) *errors.ErrorDetails {
	return errors.New(errors.InvariantViolationError, "locked", "order %s settled beyond its reservation by %s", orderID, leftover.Neg())
}
