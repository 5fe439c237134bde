package orderv1

import (
	"context"
)

// Repository persists orders.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderv1_mock
type Repository interface {
	// Store inserts a new order. A reused client order id yields a duplicate client order error.
	Store(ctx context.Context, order *Order) error
	// GetByID returns the order or a not found error.
	GetByID(ctx context.Context, id string) (*Order, error)
	// GetByIDForUpdate returns the order with its row locked for the current transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*Order, error)
	// GetByClientOrderID returns the user's order with the given client order id, or a not found error.
	GetByClientOrderID(ctx context.Context, userID, clientOrderID string) (*Order, error)
	// Update persists filled quantity and status of a non-terminal order.
	Update(ctx context.Context, order *Order) error
	// ListActive returns resting GTC limit orders of a symbol in (created_at, id) order.
	ListActive(ctx context.Context, symbol string) ([]*Order, error)
	// List returns orders matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]*Order, error)
}
