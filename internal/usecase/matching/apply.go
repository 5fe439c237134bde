package matching

import (
	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	orderbookv1 "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

// BookWriter is the mutating view of one symbol's book.
type BookWriter interface {
	Insert(entry orderbookv1.Entry) (orderbookv1.Entry, error)
	ReduceQuantity(side orderv1.Side, price decimal.Decimal, orderID string, newRemaining decimal.Decimal) error
}

// Apply brings the book in line with a committed match step: makers shrink or
// leave in fill order, and a resting taker joins the back of its level.
func Apply(book BookWriter, res *Result) error {
	for _, f := range res.Fills {
		if err := book.ReduceQuantity(f.Maker.Side, f.Price, f.Maker.OrderID, f.MakerRemaining); err != nil {
			return NewBookApplyError(f.Maker.OrderID, err)
		}
	}

	taker := res.Taker
	if taker.IsResting() && taker.Remaining().IsPositive() {
		if _, err := book.Insert(orderbookv1.EntryFromOrder(taker)); err != nil {
			return NewBookApplyError(taker.ID, err)
		}
	}
	return nil
}
