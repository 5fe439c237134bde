package bootstrap

import (
	balancev1 "github.com/hoanghiep2625/cex-be/internal/domain/balance/v1"
	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	orderbookv1 "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1"
	symbolv1 "github.com/hoanghiep2625/cex-be/internal/domain/symbol/v1"
	tradev1 "github.com/hoanghiep2625/cex-be/internal/domain/trade/v1"
	balanceInfra "github.com/hoanghiep2625/cex-be/internal/infrastructure/postgresql/balance"
	orderInfra "github.com/hoanghiep2625/cex-be/internal/infrastructure/postgresql/order"
	symbolInfra "github.com/hoanghiep2625/cex-be/internal/infrastructure/postgresql/symbol"
	tradeInfra "github.com/hoanghiep2625/cex-be/internal/infrastructure/postgresql/trade"
	depthInfra "github.com/hoanghiep2625/cex-be/internal/infrastructure/redis/depth"
	"github.com/hoanghiep2625/cex-be/pkg/postgresql"
)

// Repository holds the storage adapters.
type Repository struct {
	OrderRepository   orderv1.Repository
	BalanceRepository balancev1.Repository
	TradeRepository   tradev1.Repository
	SymbolRegistry    symbolv1.Registry
	DepthStore        orderbookv1.DepthStore
	TxManager         postgresql.TxManager
}

// registerRepository registers the repository.
func (b *Bootstrap) registerRepository() {
	b.Repository.OrderRepository = orderInfra.NewRepository(b.DB, b.Logger)
	b.Repository.BalanceRepository = balanceInfra.NewRepository(b.DB, b.Logger)
	b.Repository.TradeRepository = tradeInfra.NewRepository(b.DB, b.Logger)
	b.Repository.SymbolRegistry = symbolInfra.NewRegistry(b.DB, b.Logger)
	b.Repository.DepthStore = depthInfra.NewStore(b.Redis, b.Logger)
	b.Repository.TxManager = postgresql.NewTxManager(b.DB)
}
