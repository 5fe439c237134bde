package orderbookv1

import (
	"time"

	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	"github.com/shopspring/decimal"
)

// Entry is a resting order on the book.
type Entry struct {
	OrderID   string          `json:"orderID"`
	UserID    string          `json:"userID"`
	Side      orderv1.Side    `json:"side"`
	Price     decimal.Decimal `json:"price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Remaining decimal.Decimal `json:"remaining"`
	CreatedAt time.Time       `json:"createdAt"`
	// Sequence is assigned by the book on insert and breaks FIFO ties.
	Sequence uint64 `json:"sequence"`
}

// EntryFromOrder builds the book entry for the unfilled part of a resting order.
func EntryFromOrder(o *orderv1.Order) Entry {
	return Entry{
		OrderID:   o.ID,
		UserID:    o.UserID,
		Side:      o.Side,
		Price:     o.Price.Decimal,
		Quantity:  o.Quantity,
		Remaining: o.Remaining(),
		CreatedAt: o.CreatedAt,
	}
}

// Level is one price of one side of the book with its entries in FIFO order.
type Level struct {
	Price    decimal.Decimal `json:"price"`
	Entries  []Entry         `json:"entries"`
	Quantity decimal.Decimal `json:"quantity"`
}

// PriceLevel is the aggregated view of a level.
type PriceLevel struct {
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	Orders   int             `json:"orders"`
}

// Depth is an L2 snapshot of a book, bids descending and asks ascending.
type Depth struct {
	Symbol    string       `json:"symbol"`
	Bids      []PriceLevel `json:"bids"`
	Asks      []PriceLevel `json:"asks"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// BestBidAsk is the top of a book. Prices are invalid when the side is empty.
type BestBidAsk struct {
	Symbol      string              `json:"symbol"`
	BidPrice    decimal.NullDecimal `json:"bidPrice"`
	BidQuantity decimal.Decimal     `json:"bidQuantity"`
	AskPrice    decimal.NullDecimal `json:"askPrice"`
	AskQuantity decimal.Decimal     `json:"askQuantity"`
}

// Spread returns ask minus bid when both sides are present.
func (b BestBidAsk) Spread() decimal.NullDecimal {
	if !b.BidPrice.Valid || !b.AskPrice.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(b.AskPrice.Decimal.Sub(b.BidPrice.Decimal))
}
