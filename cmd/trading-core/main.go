package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hoanghiep2625/cex-be/internal/bootstrap"
	"github.com/hoanghiep2625/cex-be/internal/config"
	"github.com/hoanghiep2625/cex-be/pkg/grpclib/health"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	"github.com/hoanghiep2625/cex-be/pkg/postgresql"
	"github.com/hoanghiep2625/cex-be/pkg/redis"
	"google.golang.org/grpc"
)

const shutdownTimeout = 30 * time.Second

var cfg *config.Config
var log *logger.Logger

func init() {
	var err error
	cfg, err = config.Load(".env")
	if err != nil {
		panic(err)
	}

	log, err = logger.NewLogger(
		logger.WithLoggingLevel(logger.ParseLevel(cfg.App.LogLevel)),
		logger.WithDevelopment(cfg.App.Environment == "development"),
	)
	if err != nil {
		panic(err)
	}
}

func main() {
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	db, err := postgresql.NewClient(ctx, cfg.Postgres)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "connect_postgres"})
		return
	}
	defer db.Close()

	rclient := redis.NewClient(log, &cfg.Redis)
	if err := rclient.Connect(ctx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "connect_redis"})
		if !rclient.Reconnect(ctx) {
			return
		}
	}

	b := (&bootstrap.Bootstrap{}).Init(bootstrap.BootstrapConfig{
		Config: cfg,
		DB:     db,
		Redis:  rclient,
		Logger: log,
	})

	if err := b.Start(ctx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "start_trading_core"})
		return
	}

	healthServer := health.NewServer()
	healthServer.InitService(cfg.App.Name)
	grpcServer := grpc.NewServer()
	healthServer.Register(grpcServer)

	go healthServer.Sync(ctx, time.Second, func() map[string]bool {
		statuses := make(map[string]bool)
		for _, symbol := range b.App.Engine.Symbols() {
			statuses[cfg.App.Name+"."+symbol] = b.App.Engine.Halted(symbol) == nil
		}
		return statuses
	})

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPC.Port))
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "listen_grpc"})
		return
	}
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			log.Error(err, logger.Field{Key: "action", Value: "serve_grpc"})
		}
	}()

	go func() {
		if err := b.App.Query.Start(); err != nil {
			log.Error(err, logger.Field{Key: "action", Value: "serve_http"})
		}
	}()

	log.Info("Trading core started",
		logger.Field{Key: "symbols", Value: b.App.Engine.Symbols()},
		logger.Field{Key: "grpc_port", Value: cfg.GRPC.Port},
		logger.Field{Key: "http_port", Value: cfg.HTTP.Port},
	)

	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{Key: "signal", Value: sig.String()})

	healthServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := b.App.Query.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "stop_http"})
	}
	// The consumer stops first and the engine then drains its queues; both run on ctx until here.
	b.Stop(shutdownCtx)
	cancel()
	grpcServer.GracefulStop()

	if err := rclient.Disconnect(shutdownCtx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "close_redis_client"})
	}

	log.Info("Trading core shutdown complete")
}
