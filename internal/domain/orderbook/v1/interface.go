package orderbookv1

import (
	"context"

	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	"github.com/shopspring/decimal"
)

// Reader is the read view of one symbol's book.
type Reader interface {
	Symbol() string
	BestPrice(side orderv1.Side) (decimal.Decimal, bool)
	EntriesAt(side orderv1.Side, price decimal.Decimal) []Entry
	// Walk visits the levels of side from the best price outwards until fn returns false.
	Walk(side orderv1.Side, fn func(level Level) bool)
}

// DepthStore mirrors book depth to an external store for display layers.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderbookv1_mock
type DepthStore interface {
	Save(ctx context.Context, depth *Depth) error
	Load(ctx context.Context, symbol string) (*Depth, error)
}
