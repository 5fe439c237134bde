package eventv1

import (
	"time"

	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	orderbookv1 "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1"
	tradev1 "github.com/hoanghiep2625/cex-be/internal/domain/trade/v1"
)

// Type names an outbound event.
type Type string

const (
	OrderCreated  Type = "order.created"
	OrderCanceled Type = "order.canceled"
	OrderUpdated  Type = "order.updated"
	TradeCreated  Type = "trade.created"
	BookDepth     Type = "book.depth"
)

// Reason explains an order.updated event.
type Reason string

const (
	ReasonPartiallyFilled Reason = "partially_filled"
	ReasonFilled          Reason = "filled"
	ReasonRejected        Reason = "rejected"
	// ReasonExpired marks an IOC or market order closed with its remainder discarded.
	ReasonExpired Reason = "expired"
)

// Event is emitted after a state change has been committed.
type Event struct {
	Type       Type               `json:"type"`
	Symbol     string             `json:"symbol"`
	Reason     Reason             `json:"reason,omitempty"`
	Order      *orderv1.Order     `json:"order,omitempty"`
	Trade      *tradev1.Trade     `json:"trade,omitempty"`
	Depth      *orderbookv1.Depth `json:"depth,omitempty"`
	OccurredAt time.Time          `json:"occurredAt"`
}

// NewOrderEvent builds an order event.
func NewOrderEvent(t Type, o *orderv1.Order, reason Reason) Event {
	return Event{
		Type:       t,
		Symbol:     o.Symbol,
		Reason:     reason,
		Order:      o,
		OccurredAt: time.Now().UTC(),
	}
}

// NewTradeEvent builds a trade.created event.
func NewTradeEvent(t *tradev1.Trade) Event {
	return Event{
		Type:       TradeCreated,
		Symbol:     t.Symbol,
		Trade:      t,
		OccurredAt: time.Now().UTC(),
	}
}

// NewDepthEvent builds a book.depth event.
func NewDepthEvent(d *orderbookv1.Depth) Event {
	return Event{
		Type:       BookDepth,
		Symbol:     d.Symbol,
		Depth:      d,
		OccurredAt: time.Now().UTC(),
	}
}

// ReasonForStatus maps an order status reached by matching to the update reason.
func ReasonForStatus(o *orderv1.Order) Reason {
	switch o.Status {
	case orderv1.StatusFilled:
		return ReasonFilled
	case orderv1.StatusRejected:
		return ReasonRejected
	case orderv1.StatusCanceled:
		return ReasonExpired
	case orderv1.StatusPartiallyFilled:
		if !o.CanRest() {
			return ReasonExpired
		}
		return ReasonPartiallyFilled
	}
	return ""
}
