package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hoanghiep2625/cex-be/internal/config"
	"github.com/hoanghiep2625/cex-be/internal/infrastructure/postgresql/migrations"
	"github.com/hoanghiep2625/cex-be/pkg/logger"
	migrationpg "github.com/hoanghiep2625/cex-be/pkg/migration-pg"
	"github.com/hoanghiep2625/cex-be/pkg/postgresql"
)

func main() {
	var (
		direction = flag.String("direction", "up", "Migration direction: up, down or status")
		steps     = flag.Int("steps", 0, "Number of steps to migrate (0 = all)")
	)
	flag.Parse()

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(*direction, *steps, log); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "migrate"}, logger.Field{Key: "direction", Value: *direction})
		os.Exit(1)
	}
}

func run(direction string, steps int, log *logger.Logger) error {
	ctx := context.Background()

	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	db, err := postgresql.NewClient(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer db.Close()

	runner := migrations.NewRunner(db, log)
	if err := runner.EnsureMigrationTable(ctx); err != nil {
		return err
	}

	switch direction {
	case "up":
		err = runner.MigrateUp(ctx, steps)
	case "down":
		err = runner.MigrateDown(ctx, steps)
	case "status":
		var statuses []migrationpg.Status
		statuses, err = runner.Status(ctx)
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Printf("%-50s %s\n", s.ID, state)
		}
	default:
		return fmt.Errorf("invalid direction %q, use up, down or status", direction)
	}
	if err != nil {
		return err
	}

	log.Info("Migration completed", logger.Field{Key: "direction", Value: direction}, logger.Field{Key: "steps", Value: steps})
	return nil
}
