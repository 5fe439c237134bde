package balancev1

import (
	"github.com/hoanghiep2625/cex-be/pkg/errors"
	"github.com/shopspring/decimal"
)

// NewInsufficientBalanceError reports a reservation larger than the available balance.
func NewInsufficientBalanceError(key Key, required decimal.Decimal) *errors.ErrorDetails {
	return errors.New(errors.InsufficientBalanceError, "available", "insufficient %s balance for %s: required %s", key.Currency, key.UserID, required)
}

// NewLockedShortfallError reports a settlement or release larger than the locked balance.
func NewLockedShortfallError(key Key, amount decimal.Decimal) *errors.ErrorDetails {
	return errors.New(errors.InvariantViolationError, "locked", "locked %s balance of %s is below %s", key.Currency, key.UserID, amount)
}
