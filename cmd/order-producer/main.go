package main

import (
	"context"
	"encoding/json"
	"flag"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	orderreaderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order-reader/v1"
	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	"github.com/hoanghiep2625/cex-be/internal/infrastructure/kafka/command"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/shopspring/decimal"
)

type generatorConfig struct {
	symbol      string
	users       int
	basePrice   decimal.Decimal
	priceSpread decimal.Decimal
	tickSize    decimal.Decimal
	lotSize     decimal.Decimal
	maxQuantity decimal.Decimal
	marketRatio float64
}

// generateCommands creates submit commands around basePrice, snapped to the symbol's tick and lot.
func generateCommands(rng *rand.Rand, count int, cfg generatorConfig) []*orderreaderv1.OrderCommand {
	cmds := make([]*orderreaderv1.OrderCommand, count)

	for i := 0; i < count; i++ {
		side := orderv1.SideSell
		if rng.Float64() < 0.5 {
			side = orderv1.SideBuy
		}

		lots := cfg.maxQuantity.Div(cfg.lotSize).IntPart()
		if lots < 1 {
			lots = 1
		}
		qty := cfg.lotSize.Mul(decimal.NewFromInt(rng.Int63n(lots) + 1))

		req := &orderv1.SubmitOrderRequest{
			UserID:        "user-" + strconv.Itoa(rng.Intn(cfg.users)+1),
			Symbol:        cfg.symbol,
			Side:          side,
			Quantity:      qty,
			ClientOrderID: uuid.NewString(),
		}

		if rng.Float64() < cfg.marketRatio {
			req.Type = orderv1.TypeMarket
		} else {
			// buys below the base price, sells above it
			offset := cfg.priceSpread.Mul(decimal.NewFromFloat(rng.Float64() * 0.8))
			price := cfg.basePrice.Add(offset)
			if side == orderv1.SideBuy {
				price = cfg.basePrice.Sub(offset)
			}
			price = price.Div(cfg.tickSize).Floor().Mul(cfg.tickSize)
			if !price.IsPositive() {
				price = cfg.basePrice
			}

			req.Type = orderv1.TypeLimit
			req.TimeInForce = orderv1.GTC
			req.Price = decimal.NewNullDecimal(price)
		}

		cmds[i] = &orderreaderv1.OrderCommand{
			Action:    orderreaderv1.ActionSubmit,
			RequestID: uuid.NewString(),
			Submit:    req,
		}
	}

	return cmds
}

func loadCommands(path string) ([]*orderreaderv1.OrderCommand, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cmds []*orderreaderv1.OrderCommand
	if err := json.Unmarshal(data, &cmds); err != nil {
		return nil, err
	}
	return cmds, nil
}

func main() {
	var (
		brokers     = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic       = flag.String("topic", "order-commands", "Kafka order command topic")
		file        = flag.String("file", "", "JSON file with order commands (optional, generates commands if not provided)")
		delay       = flag.Duration("delay", 100*time.Millisecond, "Delay between sending commands")
		count       = flag.Int("count", 1000, "Number of commands to generate")
		symbol      = flag.String("symbol", "BTCUSDT", "Symbol of generated orders")
		users       = flag.Int("users", 10, "Number of distinct users in generated orders")
		basePrice   = flag.String("base-price", "50000", "Base price for orders")
		priceSpread = flag.String("price-spread", "200", "Price spread range")
		tickSize    = flag.String("tick-size", "0.01", "Price increment of the symbol")
		lotSize     = flag.String("lot-size", "0.0001", "Quantity increment of the symbol")
		maxQuantity = flag.String("max-quantity", "1", "Largest generated quantity")
		marketRatio = flag.Float64("market-ratio", 0.3, "Share of MARKET orders")
	)
	flag.Parse()

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	writer := command.NewWriter(strings.Split(*brokers, ","), *topic, log)
	defer writer.Close()

	var cmds []*orderreaderv1.OrderCommand
	if *file != "" {
		cmds, err = loadCommands(*file)
		if err != nil {
			log.Error(err, logger.Field{Key: "action", Value: "load_commands"}, logger.Field{Key: "file", Value: *file})
			os.Exit(1)
		}
	} else {
		cmds = generateCommands(rand.New(rand.NewSource(time.Now().UnixNano())), *count, generatorConfig{
			symbol:      *symbol,
			users:       *users,
			basePrice:   decimal.RequireFromString(*basePrice),
			priceSpread: decimal.RequireFromString(*priceSpread),
			tickSize:    decimal.RequireFromString(*tickSize),
			lotSize:     decimal.RequireFromString(*lotSize),
			maxQuantity: decimal.RequireFromString(*maxQuantity),
			marketRatio: *marketRatio,
		})
	}

	log.Info("Sending order commands",
		logger.Field{Key: "brokers", Value: *brokers},
		logger.Field{Key: "topic", Value: *topic},
		logger.Field{Key: "commands", Value: len(cmds)},
	)

	ctx := context.Background()
	sent := 0
	for i, cmd := range cmds {
		if err := writer.WriteCommands(ctx, cmd); err != nil {
			log.Error(err, logger.Field{Key: "action", Value: "write_command"}, logger.Field{Key: "index", Value: i})
			continue
		}
		sent++

		if (i+1)%100 == 0 || i == len(cmds)-1 {
			log.Info("Progress", logger.Field{Key: "sent", Value: sent}, logger.Field{Key: "total", Value: len(cmds)})
		}

		if i < len(cmds)-1 {
			time.Sleep(*delay)
		}
	}

	log.Info("Order commands sent", logger.Field{Key: "sent", Value: sent}, logger.Field{Key: "failed", Value: len(cmds) - sent})
}
