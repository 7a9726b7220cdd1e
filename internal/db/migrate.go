package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/udisondev/battlecore/internal/db/migrations"
)

// MigrateSchema brings the battle journal schema at dsn up to date and
// returns the resulting schema version.
func MigrateSchema(ctx context.Context, dsn string) (int64, error) {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return 0, fmt.Errorf("opening schema connection: %w", err)
	}
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		return 0, fmt.Errorf("loading battle schema migrations: %w", err)
	}
	applied, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrating battle schema: %w", err)
	}
	for _, r := range applied {
		slog.Info("battle schema migrated", "version", r.Source.Version, "file", r.Source.Path, "took", r.Duration)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading battle schema version: %w", err)
	}
	return version, nil
}
