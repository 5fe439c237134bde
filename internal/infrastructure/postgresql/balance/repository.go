package balance

import (
	"context"

	balancev1 "github.com/hoanghiep2625/cex-be/internal/domain/balance/v1"
	"github.com/hoanghiep2625/cex-be/pkg/errors"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/hoanghiep2625/cex-be/pkg/postgresql"
	"github.com/shopspring/decimal"
)

const (
	ensureRowQuery = `INSERT INTO balances (user_id, currency, wallet_type) VALUES ($1, $2, $3) ON CONFLICT (user_id, currency, wallet_type) DO NOTHING`
	lockRowQuery   = `SELECT 1 FROM balances WHERE user_id = $1 AND currency = $2 AND wallet_type = $3 FOR UPDATE`

	lockQuery = `UPDATE balances SET available = available - $1, locked = locked + $1, updated_at = NOW()
		WHERE user_id = $2 AND currency = $3 AND wallet_type = $4 AND available >= $1`
	unlockQuery = `UPDATE balances SET available = available + $1, locked = locked - $1, updated_at = NOW()
		WHERE user_id = $2 AND currency = $3 AND wallet_type = $4 AND locked >= $1`
	debitLockedQuery = `UPDATE balances SET locked = locked - $1, updated_at = NOW()
		WHERE user_id = $2 AND currency = $3 AND wallet_type = $4 AND locked >= $1`
	creditQuery = `INSERT INTO balances (user_id, currency, wallet_type, available) VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, currency, wallet_type) DO UPDATE SET available = balances.available + EXCLUDED.available, updated_at = NOW()`
)

type repository struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

// NewRepository creates a new balance repository.
func NewRepository(db postgresql.PostgreSQLClient, logger logger.Interface) balancev1.Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// Get returns a balance, or a zero balance when the row does not exist.
func (r *repository) Get(ctx context.Context, key balancev1.Key) (*balancev1.Balance, error) {
	query := `SELECT available, locked, updated_at FROM balances WHERE user_id = $1 AND currency = $2 AND wallet_type = $3`

	b := &balancev1.Balance{Key: key, Available: decimal.Zero, Locked: decimal.Zero}
	err := r.db.QueryRow(ctx, query, key.UserID, key.Currency, key.WalletType).Scan(&b.Available, &b.Locked, &b.UpdatedAt)
	if err != nil {
		if postgresql.IsNoRows(err) {
			return b, nil
		}
		return nil, errors.TracerFromError(err)
	}

	return b, nil
}

// LockRows creates missing rows and takes row locks in key order.
func (r *repository) LockRows(ctx context.Context, keys ...balancev1.Key) error {
	for _, key := range balancev1.SortKeys(keys) {
		if _, err := r.db.Exec(ctx, ensureRowQuery, key.UserID, key.Currency, key.WalletType); err != nil {
			return errors.TracerFromError(err)
		}

		var one int
		if err := r.db.QueryRow(ctx, lockRowQuery, key.UserID, key.Currency, key.WalletType).Scan(&one); err != nil {
			return errors.TracerFromError(err)
		}
	}
	return nil
}

// Lock moves amount from available to locked.
func (r *repository) Lock(ctx context.Context, key balancev1.Key, amount decimal.Decimal) error {
	ok, err := r.apply(ctx, lockQuery, key, amount)
	if err != nil {
		return err
	}
	if !ok {
		return balancev1.NewInsufficientBalanceError(key, amount)
	}
	return nil
}

// Unlock moves amount from locked back to available.
func (r *repository) Unlock(ctx context.Context, key balancev1.Key, amount decimal.Decimal) error {
	ok, err := r.apply(ctx, unlockQuery, key, amount)
	if err != nil {
		return err
	}
	if !ok {
		return balancev1.NewLockedShortfallError(key, amount)
	}
	return nil
}

// DebitLocked removes amount from the locked balance.
func (r *repository) DebitLocked(ctx context.Context, key balancev1.Key, amount decimal.Decimal) error {
	ok, err := r.apply(ctx, debitLockedQuery, key, amount)
	if err != nil {
		return err
	}
	if !ok {
		return balancev1.NewLockedShortfallError(key, amount)
	}
	return nil
}

// Credit adds amount to the available balance.
func (r *repository) Credit(ctx context.Context, key balancev1.Key, amount decimal.Decimal) error {
	if err := checkAmount(key, amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}

	cmd, err := r.db.Exec(ctx, creditQuery, key.UserID, key.Currency, key.WalletType, amount)
	if err != nil {
		return errors.TracerFromError(err)
	}

	r.logger.Debug("Credited balance", logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	}, logger.Field{
		Key:   "balance",
		Value: key.String(),
	})

	return nil
}

// ListByUser returns all balances of a user ordered by currency.
func (r *repository) ListByUser(ctx context.Context, userID string) ([]*balancev1.Balance, error) {
	query := `SELECT user_id, currency, wallet_type, available, locked, updated_at FROM balances WHERE user_id = $1 ORDER BY currency, wallet_type`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer rows.Close()

	balances := []*balancev1.Balance{}
	for rows.Next() {
		var b balancev1.Balance
		if err := rows.Scan(&b.UserID, &b.Currency, &b.WalletType, &b.Available, &b.Locked, &b.UpdatedAt); err != nil {
			return nil, errors.TracerFromError(err)
		}
		balances = append(balances, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	return balances, nil
}

// apply runs a guarded update and reports whether the guard held.
func (r *repository) apply(ctx context.Context, query string, key balancev1.Key, amount decimal.Decimal) (bool, error) {
	if err := checkAmount(key, amount); err != nil {
		return false, err
	}
	if amount.IsZero() {
		return true, nil
	}

	cmd, err := r.db.Exec(ctx, query, amount, key.UserID, key.Currency, key.WalletType)
	if err != nil {
		return false, errors.TracerFromError(err)
	}

	return cmd.RowsAffected() == 1, nil
}

func checkAmount(key balancev1.Key, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errors.New(errors.InvariantViolationError, "amount", "negative amount %s for %s", amount, key)
	}
	return nil
}
