package orderv1

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of an order.
type Side string

const (
	// SideBuy buys base asset with quote asset.
	SideBuy Side = "BUY"
	// SideSell sells base asset for quote asset.
	SideSell Side = "SELL"
)

// Opposite returns the side an order of this side matches against.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// IsValid reports whether s is a known side.
func (s Side) IsValid() bool {
	return s == SideBuy || s == SideSell
}

// Type is the pricing type of an order.
type Type string

const (
	// TypeLimit orders carry a limit price.
	TypeLimit Type = "LIMIT"
	// TypeMarket orders execute against available liquidity at any price.
	TypeMarket Type = "MARKET"
)

// IsValid reports whether t is a known order type.
func (t Type) IsValid() bool {
	return t == TypeLimit || t == TypeMarket
}

// Status is the lifecycle state of an order.
type Status string

const (
	StatusNew             Status = "NEW"
	StatusPartiallyFilled Status = "PARTIALLY_FILLED"
	StatusFilled          Status = "FILLED"
	StatusCanceled        Status = "CANCELED"
	StatusRejected        Status = "REJECTED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusPartiallyFilled, StatusFilled, StatusCanceled, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed from s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusFilled, StatusCanceled, StatusRejected:
		return true
	}
	return false
}

// TimeInForce controls what happens to the unfilled remainder of an order.
type TimeInForce string

const (
	// GTC rests the remainder on the book until filled or canceled.
	GTC TimeInForce = "GTC"
	// IOC discards the remainder immediately.
	IOC TimeInForce = "IOC"
	// FOK fills the whole order immediately or not at all.
	FOK TimeInForce = "FOK"
)

// IsValid reports whether tif is a known time in force.
func (tif TimeInForce) IsValid() bool {
	switch tif {
	case GTC, IOC, FOK:
		return true
	}
	return false
}

// Order is a persisted order.
type Order struct {
	ID             string              `json:"id"`
	UserID         string              `json:"userID"`
	Symbol         string              `json:"symbol"`
	Side           Side                `json:"side"`
	Type           Type                `json:"type"`
	Price          decimal.NullDecimal `json:"price"`
	Quantity       decimal.Decimal     `json:"quantity"`
	FilledQuantity decimal.Decimal     `json:"filledQuantity"`
	Status         Status              `json:"status"`
	TimeInForce    TimeInForce         `json:"timeInForce"`
	ClientOrderID  string              `json:"clientOrderID,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// Remaining returns the unfilled quantity.
func (o *Order) Remaining() decimal.Decimal {
	return o.Quantity.Sub(o.FilledQuantity)
}

// IsTerminal reports whether the order can no longer change.
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// CanRest reports whether an unfilled remainder of the order goes on the book.
func (o *Order) CanRest() bool {
	return o.Type == TypeLimit && o.TimeInForce == GTC
}

// IsResting reports whether the order is expected to have an entry on the book.
func (o *Order) IsResting() bool {
	return o.CanRest() && (o.Status == StatusNew || o.Status == StatusPartiallyFilled)
}

// FillStatus returns the status implied by the filled quantity.
func (o *Order) FillStatus() Status {
	switch {
	case o.FilledQuantity.GreaterThanOrEqual(o.Quantity):
		return StatusFilled
	case o.FilledQuantity.IsPositive():
		return StatusPartiallyFilled
	default:
		return StatusNew
	}
}

// CloseStatus returns the final status of an order whose remainder is discarded.
func (o *Order) CloseStatus() Status {
	switch {
	case o.FilledQuantity.GreaterThanOrEqual(o.Quantity):
		return StatusFilled
	case o.FilledQuantity.IsPositive():
		return StatusPartiallyFilled
	default:
		return StatusCanceled
	}
}

// SubmitOrderRequest is the input to order submission.
type SubmitOrderRequest struct {
	UserID        string              `json:"userID"`
	Symbol        string              `json:"symbol"`
	Side          Side                `json:"side"`
	Type          Type                `json:"type"`
	Price         decimal.NullDecimal `json:"price"`
	Quantity      decimal.Decimal     `json:"quantity"`
	TimeInForce   TimeInForce         `json:"timeInForce,omitempty"`
	ClientOrderID string              `json:"clientOrderID,omitempty"`
}

// ListFilter narrows an order listing.
type ListFilter struct {
	UserID   string
	Symbol   string
	Side     Side
	Statuses []Status
	Limit    int
	Offset   int
}
