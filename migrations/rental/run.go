// Command rental applies the rental schema migrations. The catalog
// migrations must already be applied.
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
	log := logger.New(cfg).With("context", "rental")
	if err := migrator.Run(context.Background(), cfg.DatabaseURL, MigrationsFS, "goose_rental_version", log); err != nil {
		log.Error("rental migrations failed", "error", err)
		os.Exit(1)
	}
}
