package symbolv1

import "github.com/hoanghiep2625/cex-be/pkg/errors"

// NewUnavailableError reports an unknown symbol or one that is not trading.
func NewUnavailableError(symbol string) *errors.ErrorDetails {
	return errors.New(errors.SymbolUnavailableError, "symbol", "symbol %s is not available for trading", symbol)
}
