package symbolv1

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the trading status of a symbol.
type Status string

const (
	StatusTrading     Status = "TRADING"
	StatusDisabled    Status = "DISABLED"
	StatusMaintenance Status = "MAINTENANCE"
)

// DefaultMaxNotional bounds market buy reservations of symbols without a max notional.
var DefaultMaxNotional = decimal.NewFromInt(100000)

// Symbol holds the trading rules of a pair.
type Symbol struct {
	Symbol               string              `json:"symbol"`
	BaseAsset            string              `json:"baseAsset"`
	QuoteAsset           string              `json:"quoteAsset"`
	Status               Status              `json:"status"`
	TickSize             decimal.Decimal     `json:"tickSize"`
	LotSize              decimal.Decimal     `json:"lotSize"`
	MinQty               decimal.Decimal     `json:"minQty"`
	MaxQty               decimal.NullDecimal `json:"maxQty"`
	MinNotional          decimal.Decimal     `json:"minNotional"`
	MaxNotional          decimal.NullDecimal `json:"maxNotional"`
	IsSpotTradingAllowed bool                `json:"isSpotTradingAllowed"`
	CreatedAt            time.Time           `json:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt"`
}

// IsTradable reports whether orders may be accepted for the symbol.
func (s *Symbol) IsTradable() bool {
	return s.Status == StatusTrading && s.IsSpotTradingAllowed
}

// MaxNotionalOr returns the symbol's max notional, or fallback when it has none.
func (s *Symbol) MaxNotionalOr(fallback decimal.Decimal) decimal.Decimal {
	if s.MaxNotional.Valid {
		return s.MaxNotional.Decimal
	}
	return fallback
}

// IsMultiple reports whether value is an integral multiple of step. A zero step accepts anything.
func IsMultiple(value, step decimal.Decimal) bool {
	if !step.IsPositive() {
		return true
	}
	return value.Mod(step).IsZero()
}

// FloorToStep truncates value down to a multiple of step.
func FloorToStep(value, step decimal.Decimal) decimal.Decimal {
	if !step.IsPositive() {
		return value
	}
	return value.Div(step).Floor().Mul(step)
}
