package matching

import (
	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	orderbookv1 "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1"
	symbolv1 "github.com/hoanghiep2625/cex-be/internal/domain/symbol/v1"
	"github.com/shopspring/decimal"
)

// quotePrecision is the scale of balances in storage.
const quotePrecision = 18

// Fill is one planned execution of the taker against a resting order.
type Fill struct {
	Maker          orderbookv1.Entry
	Price          decimal.Decimal
	Quantity       decimal.Decimal
	MakerRemaining decimal.Decimal
}

// QuoteQuantity returns price times quantity.
func (f Fill) QuoteQuantity() decimal.Decimal {
	return f.Price.Mul(f.Quantity)
}

// Plan is the ordered list of fills an order would execute against a book.
type Plan struct {
	Fills     []Fill
	Filled    decimal.Decimal
	QuoteCost decimal.Decimal
	// Rejected is set for a FOK order the book cannot fill completely.
	Rejected bool
}

// PlanOptions bound a plan.
type PlanOptions struct {
	// QuoteBudget caps the quote spent by a market buy.
	QuoteBudget decimal.NullDecimal
	// LotSize rounds budget-limited quantities down.
	LotSize decimal.Decimal
}

// Crosses reports whether a resting price is acceptable to the order.
func Crosses(o *orderv1.Order, price decimal.Decimal) bool {
	if o.Type == orderv1.TypeMarket || !o.Price.Valid {
		return true
	}
	if o.Side == orderv1.SideBuy {
		return o.Price.Decimal.GreaterThanOrEqual(price)
	}
	return o.Price.Decimal.LessThanOrEqual(price)
}

// PlanOrder walks the opposite side of book from the best price outwards and
// returns the fills the order would execute, at maker prices, FIFO within a level.
// The book is not modified.
func PlanOrder(book orderbookv1.Reader, o *orderv1.Order, opts PlanOptions) *Plan {
	plan := &Plan{
		Filled:    decimal.Zero,
		QuoteCost: decimal.Zero,
	}

	remaining := o.Remaining()
	budget := opts.QuoteBudget
	exhausted := false

	book.Walk(o.Side.Opposite(), func(level orderbookv1.Level) bool {
		if !Crosses(o, level.Price) {
			return false
		}

		for _, entry := range level.Entries {
			if !remaining.IsPositive() {
				return false
			}

			qty := decimal.Min(remaining, entry.Remaining)
			if budget.Valid {
				qty = decimal.Min(qty, affordable(budget.Decimal.Sub(plan.QuoteCost), level.Price, opts.LotSize))
				if !qty.IsPositive() {
					exhausted = true
					return false
				}
			}

			fill := Fill{
				Maker:          entry,
				Price:          level.Price,
				Quantity:       qty,
				MakerRemaining: entry.Remaining.Sub(qty),
			}
			plan.Fills = append(plan.Fills, fill)
			plan.Filled = plan.Filled.Add(qty)
			plan.QuoteCost = plan.QuoteCost.Add(fill.QuoteQuantity())
			remaining = remaining.Sub(qty)
		}

		return remaining.IsPositive() && !exhausted
	})

	if o.TimeInForce == orderv1.FOK && remaining.IsPositive() {
		return &Plan{
			Filled:    decimal.Zero,
			QuoteCost: decimal.Zero,
			Rejected:  true,
		}
	}

	return plan
}

// affordable returns the largest lot multiple that budget buys at price.
func affordable(budget, price, lot decimal.Decimal) decimal.Decimal {
	if !budget.IsPositive() {
		return decimal.Zero
	}
	qty, _ := budget.QuoRem(price, quotePrecision)
	return symbolv1.FloorToStep(qty, lot)
}
