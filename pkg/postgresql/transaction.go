package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type txKey struct{}

//go:generate mockgen -source=transaction.go -destination=mock/transaction_mock.go -package=mock

// TxManager runs a unit of work in one database transaction carried by ctx.
// Repositories built on PostgreSQLClient join it automatically.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txManager struct {
	db      PostgreSQLClient
	options pgx.TxOptions
}

// NewTxManager creates a read-committed TxManager over db. Row locks taken
// with SELECT ... FOR UPDATE give the isolation the match step needs.
func NewTxManager(db PostgreSQLClient) TxManager {
	return &txManager{db: db, options: pgx.TxOptions{IsoLevel: pgx.ReadCommitted}}
}

// WithTx runs fn in a new transaction, or inside the one already in ctx.
func (m *txManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := GetTx(ctx); ok {
		return fn(ctx)
	}
	return WithTxOptions(ctx, m.db, m.options, fn)
}

// GetTx returns the transaction stored in ctx.
func GetTx(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}

// WithTx runs fn in a read-committed transaction.
func WithTx(ctx context.Context, db PostgreSQLClient, fn func(ctx context.Context) error) error {
	return WithTxOptions(ctx, db, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// WithTxOptions runs fn in a transaction that commits when fn returns nil and
// rolls back otherwise, including on panic.
func WithTxOptions(ctx context.Context, db PostgreSQLClient, txOptions pgx.TxOptions, fn func(ctx context.Context) error) (err error) {
	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	txCtx := context.WithValue(ctx, txKey{}, tx)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}
