package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	tradev1 "github.com/hoanghiep2625/cex-be/internal/domain/trade/v1"
	"github.com/hoanghiep2625/cex-be/pkg/errors"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
)

// DefaultRecentLimit caps Recent when the caller asks for no limit.
const DefaultRecentLimit = 100

type recorder struct {
	repo   tradev1.Repository
	logger logger.Interface
	now    func() time.Time
}

// NewRecorder creates a trade recorder over the trade repository.
func NewRecorder(repo tradev1.Repository, logger logger.Interface) tradev1.Recorder {
	return &recorder{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Record turns one fill into an immutable trade inside the caller's transaction.
func (r *recorder) Record(ctx context.Context, req tradev1.RecordRequest) (*tradev1.Trade, error) {
	if !req.Price.IsPositive() {
		return nil, errors.New(errors.InvariantViolationError, "price", "trade price %s must be positive", req.Price)
	}
	if !req.Quantity.IsPositive() {
		return nil, errors.New(errors.InvariantViolationError, "quantity", "trade quantity %s must be positive", req.Quantity)
	}
	if req.MakerOrderID == "" || req.TakerOrderID == "" || req.MakerOrderID == req.TakerOrderID {
		return nil, errors.New(errors.InvariantViolationError, "orderID", "trade needs distinct maker and taker orders")
	}

	t := &tradev1.Trade{
		ID:            uuid.NewString(),
		Symbol:        req.Symbol,
		MakerOrderID:  req.MakerOrderID,
		TakerOrderID:  req.TakerOrderID,
		MakerUserID:   req.MakerUserID,
		TakerUserID:   req.TakerUserID,
		TakerSide:     req.TakerSide,
		Price:         req.Price,
		Quantity:      req.Quantity,
		QuoteQuantity: req.Price.Mul(req.Quantity),
		MakerFee:      req.MakerFee,
		MakerFeeAsset: req.MakerFeeAsset,
		TakerFee:      req.TakerFee,
		TakerFeeAsset: req.TakerFeeAsset,
		CreatedAt:     r.now(),
	}

	if err := r.repo.Store(ctx, t); err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "Trade recorded",
		logger.Field{Key: "tradeID", Value: t.ID},
		logger.Field{Key: "symbol", Value: t.Symbol},
		logger.Field{Key: "price", Value: t.Price.String()},
		logger.Field{Key: "quantity", Value: t.Quantity.String()},
	)

	return t, nil
}

// Recent returns the latest trades of a symbol, newest first.
func (r *recorder) Recent(ctx context.Context, symbol string, limit int) ([]*tradev1.Trade, error) {
	if limit <= 0 || limit > DefaultRecentLimit {
		limit = DefaultRecentLimit
	}
	return r.repo.ListBySymbol(ctx, symbol, limit)
}
