package bootstrap

import (
	"github.com/hoanghiep2625/cex-be/internal/config"
	eventv1 "github.com/hoanghiep2625/cex-be/internal/domain/event/v1"
	tradev1 "github.com/hoanghiep2625/cex-be/internal/domain/trade/v1"
	kafkaPublisher "github.com/hoanghiep2625/cex-be/internal/infrastructure/kafka/publisher"
	redisPublisher "github.com/hoanghiep2625/cex-be/internal/infrastructure/redis/publisher"
	"github.com/hoanghiep2625/cex-be/internal/usecase/event"
	"github.com/hoanghiep2625/cex-be/internal/usecase/matching"
	"github.com/hoanghiep2625/cex-be/internal/usecase/order"
	"github.com/hoanghiep2625/cex-be/internal/usecase/orderbook"
	"github.com/hoanghiep2625/cex-be/internal/usecase/trade"
)

// Usecase holds the business logic components.
type Usecase struct {
	OrderUsecase   *order.Usecase
	TradeRecorder  tradev1.Recorder
	Books          *orderbook.Manager
	Dispatcher     *event.Dispatcher
	KafkaPublisher *kafkaPublisher.Publisher
}

// registerUsecase registers the usecases.
func (b *Bootstrap) registerUsecase() {
	cfg := b.Config

	b.Usecase.TradeRecorder = trade.NewRecorder(b.Repository.TradeRepository, b.Logger)
	b.Usecase.OrderUsecase = order.NewUsecase(
		b.Repository.OrderRepository,
		b.Repository.BalanceRepository,
		b.Repository.SymbolRegistry,
		b.Usecase.TradeRecorder,
		matching.FeeSchedule{
			MakerRate:     cfg.Fee.MakerRate,
			TakerRate:     cfg.Fee.TakerRate,
			AccountUserID: cfg.Fee.AccountUserID,
		},
		order.Options{
			ReserveMaxNotional: cfg.Engine.MarketBuyReservation == config.ReserveMaxNotional,
			DefaultMaxNotional: cfg.Engine.DefaultMaxNotional,
		},
		b.Logger,
	)
	b.Usecase.Books = orderbook.NewManager()

	publishers := []eventv1.Publisher{
		redisPublisher.NewPublisher(b.Redis, b.Repository.DepthStore, b.Logger),
	}
	if cfg.Kafka.Enabled {
		b.Usecase.KafkaPublisher = kafkaPublisher.NewPublisher(kafkaPublisher.Config{
			Brokers:    cfg.Kafka.Brokers,
			OrderTopic: cfg.Kafka.OrderEventTopic,
			TradeTopic: cfg.Kafka.TradeEventTopic,
		}, b.Logger)
		publishers = append(publishers, b.Usecase.KafkaPublisher)
	}

	b.Usecase.Dispatcher = event.NewDispatcher(cfg.Engine.EventBuffer, cfg.Engine.PublishTimeout, b.Logger, publishers...)
}
