// Package migrations holds the PostgreSQL schema of the trading core.
package migrations

import (
	"context"
	"embed"

	"github.com/hoanghiep2625/cex-be/pkg/logger"
	migrationpg "github.com/hoanghiep2625/cex-be/pkg/migration-pg"
	"github.com/hoanghiep2625/cex-be/pkg/postgresql"
)

// FS contains every *.up.sql and *.down.sql file of this directory.
//
//go:embed *.sql
var FS embed.FS

// NewRunner returns a migration runner over the embedded files.
func NewRunner(client postgresql.PostgreSQLClient, log logger.Interface) *migrationpg.Runner {
	return migrationpg.NewRunner(client, log, migrationpg.Config{Source: FS})
}

// Up applies every pending migration.
func Up(ctx context.Context, client postgresql.PostgreSQLClient, log logger.Interface) error {
	return NewRunner(client, log).MigrateUp(ctx, 0)
}
