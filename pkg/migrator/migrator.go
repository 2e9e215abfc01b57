// Package migrator applies a bounded context's embedded goose migrations.
// Each context records its progress in its own version table so catalog and
// rental schemas can evolve independently in one database.
package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"

	"github.com/rentrobe/rentrobe/pkg/logger"
)

// Run opens dbURL and applies the pending migrations in files.
func Run(ctx context.Context, dbURL string, files fs.FS, table string, log logger.Logger) error {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("migrator: open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	applied, err := up(ctx, db, files, table)
	for _, r := range applied {
		log.InfoContext(ctx, "migration applied", "table", table, "source", r.Source.Path, "duration", r.Duration)
	}
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		log.InfoContext(ctx, "schema up to date", "table", table)
	}
	return nil
}

// Up applies pending migrations on an already open connection, tracking
// versions in table.
func Up(ctx context.Context, db *sql.DB, files fs.FS, table string) error {
	_, err := up(ctx, db, files, table)
	return err
}

func up(ctx context.Context, db *sql.DB, files fs.FS, table string) ([]*goose.MigrationResult, error) {
	store, err := database.NewStore(database.DialectPostgres, table)
	if err != nil {
		return nil, fmt.Errorf("migrator: version store %s: %w", table, err)
	}
	provider, err := goose.NewProvider("", db, files, goose.WithStore(store))
	if err != nil {
		return nil, fmt.Errorf("migrator: provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return results, fmt.Errorf("migrator: up %s: %w", table, err)
	}
	return results, nil
}
