package symbol

import (
	"context"

	symbolv1 "github.com/hoanghiep2625/cex-be/internal/domain/symbol/v1"
	"github.com/hoanghiep2625/cex-be/pkg/errors"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/hoanghiep2625/cex-be/pkg/postgresql"
)

const symbolColumns = "symbol, base_asset, quote_asset, status, tick_size, lot_size, min_qty, max_qty, min_notional, max_notional, is_spot_trading_allowed, created_at, updated_at"

type registry struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

// NewRegistry creates a symbol registry backed by the symbols table.
func NewRegistry(db postgresql.PostgreSQLClient, logger logger.Interface) symbolv1.Registry {
	return &registry{
		db:     db,
		logger: logger,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSymbol(row scanner) (*symbolv1.Symbol, error) {
	var s symbolv1.Symbol
	err := row.Scan(
		&s.Symbol,
		&s.BaseAsset,
		&s.QuoteAsset,
		&s.Status,
		&s.TickSize,
		&s.LotSize,
		&s.MinQty,
		&s.MaxQty,
		&s.MinNotional,
		&s.MaxNotional,
		&s.IsSpotTradingAllowed,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSymbol returns a symbol by name.
func (r *registry) GetSymbol(ctx context.Context, symbol string) (*symbolv1.Symbol, error) {
	query := `SELECT ` + symbolColumns + ` FROM symbols WHERE symbol = $1`

	s, err := scanSymbol(r.db.QueryRow(ctx, query, symbol))
	if err != nil {
		if postgresql.IsNoRows(err) {
			return nil, symbolv1.NewUnavailableError(symbol)
		}
		return nil, errors.TracerFromError(err)
	}

	return s, nil
}

// ListSymbols lists symbols, optionally by status.
func (r *registry) ListSymbols(ctx context.Context, status symbolv1.Status) ([]*symbolv1.Symbol, error) {
	qb := postgresql.NewQueryBuilder().
		Select(symbolColumns).
		From("symbols")
	if status != "" {
		qb.Where("status = ?", status)
	}
	query, args := qb.OrderBy("symbol").Build()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer rows.Close()

	symbols := []*symbolv1.Symbol{}
	for rows.Next() {
		s, err := scanSymbol(rows)
		if err != nil {
			return nil, errors.TracerFromError(err)
		}
		symbols = append(symbols, s)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	return symbols, nil
}
