// Command migrate applies the embedded goose migrations to the configured
// database.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/antage/opencorpora/internal/adapter/postgres"
	"github.com/antage/opencorpora/internal/app"
	"github.com/antage/opencorpora/migrations"
)

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, logger, err := app.Init("migrate", *configFlag)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	applied, err := postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS)
	if err != nil {
		logger.Error("migrate failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if len(applied) == 0 {
		logger.Info("schema is up to date")
		return
	}
	logger.Info("migrations applied", slog.Any("versions", applied))
}
