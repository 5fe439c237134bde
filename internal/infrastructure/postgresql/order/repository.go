package order

import (
	"context"
	"time"

	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	"github.com/hoanghiep2625/cex-be/pkg/errors"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/hoanghiep2625/cex-be/pkg/postgresql"
)

const (
	orderColumns = "id, user_id, symbol, side, type, price, quantity, filled_quantity, status, time_in_force, client_order_id, created_at, updated_at"

	clientOrderIDConstraint = "orders_user_client_order_id_key"
)

type repository struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

// NewRepository creates a new order repository.
func NewRepository(db postgresql.PostgreSQLClient, logger logger.Interface) orderv1.Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(row scanner) (*orderv1.Order, error) {
	var (
		o             orderv1.Order
		clientOrderID *string
	)

	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Symbol,
		&o.Side,
		&o.Type,
		&o.Price,
		&o.Quantity,
		&o.FilledQuantity,
		&o.Status,
		&o.TimeInForce,
		&clientOrderID,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if clientOrderID != nil {
		o.ClientOrderID = *clientOrderID
	}
	return &o, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Store inserts an order.
func (r *repository) Store(ctx context.Context, order *orderv1.Order) error {
	query := `INSERT INTO orders (` + orderColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	cmd, err := r.db.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.Symbol,
		order.Side,
		order.Type,
		order.Price,
		order.Quantity,
		order.FilledQuantity,
		order.Status,
		order.TimeInForce,
		nullableString(order.ClientOrderID),
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		if postgresql.IsUniqueViolation(err, clientOrderIDConstraint) {
			return orderv1.NewDuplicateClientOrderError(order.ClientOrderID)
		}
		return errors.TracerFromError(err)
	}

	r.logger.Debug("Inserted order", logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	}, logger.Field{
		Key:   "orderID",
		Value: order.ID,
	})

	return nil
}

// GetByID gets an order by ID.
func (r *repository) GetByID(ctx context.Context, id string) (*orderv1.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if postgresql.IsNoRows(err) {
			return nil, orderv1.NewNotFoundError(id)
		}
		return nil, errors.TracerFromError(err)
	}

	return order, nil
}

// GetByIDForUpdate gets an order by ID and locks its row until the transaction ends.
func (r *repository) GetByIDForUpdate(ctx context.Context, id string) (*orderv1.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`

	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if postgresql.IsNoRows(err) {
			return nil, orderv1.NewNotFoundError(id)
		}
		return nil, errors.TracerFromError(err)
	}

	return order, nil
}

// GetByClientOrderID gets a user's order by its client order id.
func (r *repository) GetByClientOrderID(ctx context.Context, userID, clientOrderID string) (*orderv1.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 AND client_order_id = $2`

	order, err := scanOrder(r.db.QueryRow(ctx, query, userID, clientOrderID))
	if err != nil {
		if postgresql.IsNoRows(err) {
			return nil, orderv1.NewNotFoundError(clientOrderID)
		}
		return nil, errors.TracerFromError(err)
	}

	return order, nil
}

// Update persists the filled quantity and status of an order that is not yet terminal.
func (r *repository) Update(ctx context.Context, order *orderv1.Order) error {
	query := `UPDATE orders SET filled_quantity = $1, status = $2, updated_at = $3 WHERE id = $4 AND status IN ('NEW', 'PARTIALLY_FILLED')`

	order.UpdatedAt = time.Now().UTC()

	cmd, err := r.db.Exec(ctx, query,
		order.FilledQuantity,
		order.Status,
		order.UpdatedAt,
		order.ID,
	)
	if err != nil {
		return errors.TracerFromError(err)
	}

	if cmd.RowsAffected() == 0 {
		return orderv1.NewInvalidStateError(order)
	}

	r.logger.Debug("Updated order", logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	}, logger.Field{
		Key:   "orderID",
		Value: order.ID,
	})

	return nil
}

// ListActive lists the resting GTC limit orders of a symbol in book priority order.
func (r *repository) ListActive(ctx context.Context, symbol string) ([]*orderv1.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE symbol = $1 AND type = 'LIMIT' AND time_in_force = 'GTC' AND status IN ('NEW', 'PARTIALLY_FILLED')
		ORDER BY created_at ASC, id ASC`

	return r.query(ctx, query, symbol)
}

// List lists orders.
func (r *repository) List(ctx context.Context, filter orderv1.ListFilter) ([]*orderv1.Order, error) {
	qb := postgresql.NewQueryBuilder().
		Select(orderColumns).
		From("orders")

	if filter.UserID != "" {
		qb.Where("user_id = ?", filter.UserID)
	}
	if filter.Symbol != "" {
		qb.Where("symbol = ?", filter.Symbol)
	}
	if filter.Side != "" {
		qb.Where("side = ?", filter.Side)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		qb.Where("status = ANY(?)", statuses)
	}

	qb.OrderBy("created_at", true).OrderBy("id", true)

	if filter.Limit > 0 {
		qb.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		qb.Offset(filter.Offset)
	}

	query, args := qb.Build()
	return r.query(ctx, query, args...)
}

func (r *repository) query(ctx context.Context, query string, args ...any) ([]*orderv1.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer rows.Close()

	orders := []*orderv1.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, errors.TracerFromError(err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	return orders, nil
}
