package engine

import (
	eventv1 "github.com/hoanghiep2625/cex-be/internal/domain/event/v1"
	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	orderbookv1 "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1"
	"github.com/hoanghiep2625/cex-be/internal/usecase/order"
	"github.com/shopspring/decimal"
)

// submitEvents lists what a committed submission tells the outside world, in order:
// the order as accepted, each trade with its maker's update, the taker's final state, the new depth.
func submitEvents(res *order.SubmitResult, depth *orderbookv1.Depth) []eventv1.Event {
	o := res.Order

	accepted := *o
	accepted.FilledQuantity = decimal.Zero
	accepted.Status = orderv1.StatusNew
	events := []eventv1.Event{eventv1.NewOrderEvent(eventv1.OrderCreated, &accepted, "")}

	if res.Execution == nil {
		return append(events, eventv1.NewOrderEvent(eventv1.OrderUpdated, o, eventv1.ReasonRejected))
	}

	for i, t := range res.Execution.Trades {
		events = append(events, eventv1.NewTradeEvent(t))
		if i < len(res.Execution.Makers) {
			maker := res.Execution.Makers[i]
			events = append(events, eventv1.NewOrderEvent(eventv1.OrderUpdated, maker, eventv1.ReasonForStatus(maker)))
		}
	}

	if reason := eventv1.ReasonForStatus(o); reason != "" {
		events = append(events, eventv1.NewOrderEvent(eventv1.OrderUpdated, o, reason))
	}

	return append(events, eventv1.NewDepthEvent(depth))
}
