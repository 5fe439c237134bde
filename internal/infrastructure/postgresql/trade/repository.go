package trade

import (
	"context"

	tradev1 "github.com/hoanghiep2625/cex-be/internal/domain/trade/v1"
	"github.com/hoanghiep2625/cex-be/pkg/errors"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/hoanghiep2625/cex-be/pkg/postgresql"
)

const tradeColumns = "id, symbol, maker_order_id, taker_order_id, maker_user_id, taker_user_id, taker_side, price, quantity, quote_quantity, maker_fee, maker_fee_asset, taker_fee, taker_fee_asset, created_at"

type repository struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

// NewRepository creates a new trade repository.
func NewRepository(db postgresql.PostgreSQLClient, logger logger.Interface) tradev1.Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// Store inserts a trade.
func (r *repository) Store(ctx context.Context, trade *tradev1.Trade) error {
	query := `INSERT INTO trades (` + tradeColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	cmd, err := r.db.Exec(ctx, query,
		trade.ID,
		trade.Symbol,
		trade.MakerOrderID,
		trade.TakerOrderID,
		trade.MakerUserID,
		trade.TakerUserID,
		trade.TakerSide,
		trade.Price,
		trade.Quantity,
		trade.QuoteQuantity,
		trade.MakerFee,
		trade.MakerFeeAsset,
		trade.TakerFee,
		trade.TakerFeeAsset,
		trade.CreatedAt,
	)
	if err != nil {
		return errors.TracerFromError(err)
	}

	r.logger.Debug("Inserted trade", logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	}, logger.Field{
		Key:   "tradeID",
		Value: trade.ID,
	})

	return nil
}

// ListBySymbol returns the latest trades of a symbol.
func (r *repository) ListBySymbol(ctx context.Context, symbol string, limit int) ([]*tradev1.Trade, error) {
	query, args := postgresql.NewQueryBuilder().
		Select(tradeColumns).
		From("trades").
		Where("symbol = ?", symbol).
		OrderBy("created_at", true).
		Limit(limit).
		Build()

	return r.query(ctx, query, args...)
}

// ListByOrder returns the trades an order took part in.
func (r *repository) ListByOrder(ctx context.Context, orderID string) ([]*tradev1.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE maker_order_id = $1 OR taker_order_id = $1 ORDER BY created_at ASC`

	return r.query(ctx, query, orderID)
}

func (r *repository) query(ctx context.Context, query string, args ...any) ([]*tradev1.Trade, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer rows.Close()

	trades := []*tradev1.Trade{}
	for rows.Next() {
		var t tradev1.Trade
		err := rows.Scan(
			&t.ID,
			&t.Symbol,
			&t.MakerOrderID,
			&t.TakerOrderID,
			&t.MakerUserID,
			&t.TakerUserID,
			&t.TakerSide,
			&t.Price,
			&t.Quantity,
			&t.QuoteQuantity,
			&t.MakerFee,
			&t.MakerFeeAsset,
			&t.TakerFee,
			&t.TakerFeeAsset,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, errors.TracerFromError(err)
		}
		trades = append(trades, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	return trades, nil
}
