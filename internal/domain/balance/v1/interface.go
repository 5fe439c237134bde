package balancev1

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository mutates balances. Every mutation must run inside the caller's transaction.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=balancev1_mock
type Repository interface {
	// Get returns the balance, or a zero balance when the row does not exist.
	Get(ctx context.Context, key Key) (*Balance, error)
	// LockRows takes row locks on the given balances in key order.
	LockRows(ctx context.Context, keys ...Key) error
	// Lock moves amount from available to locked, or fails with an insufficient balance error.
	Lock(ctx context.Context, key Key, amount decimal.Decimal) error
	// Unlock moves amount from locked back to available.
	Unlock(ctx context.Context, key Key, amount decimal.Decimal) error
	// DebitLocked removes amount from the locked balance.
	DebitLocked(ctx context.Context, key Key, amount decimal.Decimal) error
	// Credit adds amount to the available balance, creating the row when needed.
	Credit(ctx context.Context, key Key, amount decimal.Decimal) error
	// ListByUser returns all balances of a user.
	ListByUser(ctx context.Context, userID string) ([]*Balance, error)
}
