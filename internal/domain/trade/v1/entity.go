package tradev1

import (
	"time"

	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	"github.com/shopspring/decimal"
)

// Trade is an immutable record of one maker/taker fill.
type Trade struct {
	ID            string          `json:"id"`
	Symbol        string          `json:"symbol"`
	MakerOrderID  string          `json:"makerOrderID"`
	TakerOrderID  string          `json:"takerOrderID"`
	MakerUserID   string          `json:"makerUserID"`
	TakerUserID   string          `json:"takerUserID"`
	TakerSide     orderv1.Side    `json:"takerSide"`
	Price         decimal.Decimal `json:"price"`
	Quantity      decimal.Decimal `json:"quantity"`
	QuoteQuantity decimal.Decimal `json:"quoteQuantity"`
	MakerFee      decimal.Decimal `json:"makerFee"`
	MakerFeeAsset string          `json:"makerFeeAsset"`
	TakerFee      decimal.Decimal `json:"takerFee"`
	TakerFeeAsset string          `json:"takerFeeAsset"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// MakerSide returns the side of the resting order.
func (t *Trade) MakerSide() orderv1.Side {
	return t.TakerSide.Opposite()
}

// BuyerUserID returns the user on the buy side of the trade.
func (t *Trade) BuyerUserID() string {
	if t.TakerSide == orderv1.SideBuy {
		return t.TakerUserID
	}
	return t.MakerUserID
}

// SellerUserID returns the user on the sell side of the trade.
func (t *Trade) SellerUserID() string {
	if t.TakerSide == orderv1.SideSell {
		return t.TakerUserID
	}
	return t.MakerUserID
}

// RecordRequest carries one fill to the trade recorder.
type RecordRequest struct {
	Symbol        string
	MakerOrderID  string
	TakerOrderID  string
	MakerUserID   string
	TakerUserID   string
	TakerSide     orderv1.Side
	Price         decimal.Decimal
	Quantity      decimal.Decimal
	MakerFee      decimal.Decimal
	MakerFeeAsset string
	TakerFee      decimal.Decimal
	TakerFeeAsset string
}
