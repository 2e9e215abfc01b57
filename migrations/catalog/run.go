// Command catalog applies the catalog schema migrations. Run it before the
// rental migrations, which reference catalog.items.
package main

import (
	"context"
	"embed"
	"errors"
	"log/slog"
	"os"

	"github.com/rentrobe/rentrobe/pkg/config"
	"github.com/rentrobe/rentrobe/pkg/logger"
	"github.com/rentrobe/rentrobe/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	switch {
	case errors.Is(err, config.ErrHelp):
		return
	case err != nil:
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg).With("context", "catalog")
	if err := migrator.Run(context.Background(), cfg.DatabaseURL, MigrationsFS, "goose_catalog_version", log); err != nil {
		log.Error("catalog migrations failed", "error", err)
		os.Exit(1)
	}
}
