package tradev1

import "context"

// Repository stores trades. It offers no update or delete.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=tradev1_mock
type Repository interface {
	// Store inserts a trade inside the caller's transaction.
	Store(ctx context.Context, trade *Trade) error
	// ListBySymbol returns the latest trades of a symbol, newest first.
	ListBySymbol(ctx context.Context, symbol string, limit int) ([]*Trade, error)
	// ListByOrder returns the trades an order took part in, oldest first.
	ListByOrder(ctx context.Context, orderID string) ([]*Trade, error)
}

// Recorder turns fills into trades.
type Recorder interface {
	Record(ctx context.Context, req RecordRequest) (*Trade, error)
	Recent(ctx context.Context, symbol string, limit int) ([]*Trade, error)
}
