package order

import (
	"context"
	"testing"
	"time"

	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	"github.com/hoanghiep2625/cex-be/internal/infrastructure/postgresql/migrations"
	pkgErrors "github.com/hoanghiep2625/cex-be/pkg/errors"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/hoanghiep2625/cex-be/pkg/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite
	helper *postgresql.TestHelper
	repo   orderv1.Repository
	ctx    context.Context
}

// SetupSuite runs once before all tests
func (suite *RepositoryTestSuite) SetupSuite() {
	suite.ctx = context.Background()

	suite.helper = postgresql.NewTestHelperWithSetup(suite.T(), func(ctx context.Context, client postgresql.PostgreSQLClient) error {
		return migrations.Up(ctx, client, logger.NewNop())
	})

	suite.repo = NewRepository(suite.helper.GetClient(), logger.NewNop())
}

// SetupTest runs before each test
func (suite *RepositoryTestSuite) SetupTest() {
	suite.helper.CleanupTables("trades", "orders", "symbols")
	suite.helper.ExecuteSQL(`INSERT INTO symbols (symbol, base_asset, quote_asset, tick_size, lot_size) VALUES ('BTCUSDT', 'BTC', 'USDT', 0.01, 0.00001)`)
}

func (suite *RepositoryTestSuite) order(id, clientOrderID string, createdAt time.Time) *orderv1.Order {
	return &orderv1.Order{
		ID:             id,
		UserID:         "user-1",
		Symbol:         "BTCUSDT",
		Side:           orderv1.SideSell,
		Type:           orderv1.TypeLimit,
		Price:          decimal.NewNullDecimal(decimal.RequireFromString("50000.5")),
		Quantity:       decimal.RequireFromString("1.25"),
		FilledQuantity: decimal.Zero,
		Status:         orderv1.StatusNew,
		TimeInForce:    orderv1.GTC,
		ClientOrderID:  clientOrderID,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}

func (suite *RepositoryTestSuite) TestStoreAndGet() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	o := suite.order("01J9Z7Q0000000000000000001", "c-1", now)

	require.NoError(suite.T(), suite.repo.Store(suite.ctx, o))

	stored, err := suite.repo.GetByID(suite.ctx, o.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), o.UserID, stored.UserID)
	assert.True(suite.T(), o.Price.Decimal.Equal(stored.Price.Decimal))
	assert.True(suite.T(), o.Quantity.Equal(stored.Quantity))
	assert.Equal(suite.T(), orderv1.StatusNew, stored.Status)
	assert.Equal(suite.T(), "c-1", stored.ClientOrderID)

	byClient, err := suite.repo.GetByClientOrderID(suite.ctx, "user-1", "c-1")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), o.ID, byClient.ID)

	_, err = suite.repo.GetByID(suite.ctx, "missing")
	assert.True(suite.T(), pkgErrors.IsCode(err, pkgErrors.OrderNotFoundError))
}

func (suite *RepositoryTestSuite) TestStoreDuplicateClientOrderID() {
	now := time.Now().UTC()

	require.NoError(suite.T(), suite.repo.Store(suite.ctx, suite.order("01J9Z7Q0000000000000000001", "c-1", now)))

	err := suite.repo.Store(suite.ctx, suite.order("01J9Z7Q0000000000000000002", "c-1", now))
	assert.True(suite.T(), pkgErrors.IsCode(err, pkgErrors.DuplicateClientOrderError))

	// orders without a client order id never collide
	require.NoError(suite.T(), suite.repo.Store(suite.ctx, suite.order("01J9Z7Q0000000000000000003", "", now)))
	require.NoError(suite.T(), suite.repo.Store(suite.ctx, suite.order("01J9Z7Q0000000000000000004", "", now)))
}

func (suite *RepositoryTestSuite) TestUpdateRejectsTerminal() {
	now := time.Now().UTC()
	o := suite.order("01J9Z7Q0000000000000000001", "", now)
	require.NoError(suite.T(), suite.repo.Store(suite.ctx, o))

	o.FilledQuantity = o.Quantity
	o.Status = orderv1.StatusFilled
	require.NoError(suite.T(), suite.repo.Update(suite.ctx, o))

	o.Status = orderv1.StatusCanceled
	err := suite.repo.Update(suite.ctx, o)
	assert.True(suite.T(), pkgErrors.IsCode(err, pkgErrors.InvalidOrderStateError))

	stored, err := suite.repo.GetByID(suite.ctx, o.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), orderv1.StatusFilled, stored.Status)
}

func (suite *RepositoryTestSuite) TestListActive() {
	base := time.Now().UTC().Truncate(time.Microsecond)

	second := suite.order("01J9Z7Q0000000000000000002", "", base.Add(time.Second))
	first := suite.order("01J9Z7Q0000000000000000001", "", base)
	ioc := suite.order("01J9Z7Q0000000000000000003", "", base)
	ioc.TimeInForce = orderv1.IOC
	filled := suite.order("01J9Z7Q0000000000000000004", "", base)
	filled.FilledQuantity = filled.Quantity
	filled.Status = orderv1.StatusFilled

	for _, o := range []*orderv1.Order{second, first, ioc, filled} {
		require.NoError(suite.T(), suite.repo.Store(suite.ctx, o))
	}

	active, err := suite.repo.ListActive(suite.ctx, "BTCUSDT")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), active, 2)
	assert.Equal(suite.T(), first.ID, active[0].ID)
	assert.Equal(suite.T(), second.ID, active[1].ID)

	listed, err := suite.repo.List(suite.ctx, orderv1.ListFilter{
		UserID:   "user-1",
		Statuses: []orderv1.Status{orderv1.StatusFilled},
	})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), listed, 1)
	assert.Equal(suite.T(), filled.ID, listed[0].ID)
}

func TestRepositoryTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(RepositoryTestSuite))
}
