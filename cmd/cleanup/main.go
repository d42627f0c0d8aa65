// Command cleanup removes old dictionary imports, keeping the newest
// retention.keep_imports of them. Child rows go with their import through
// ON DELETE CASCADE. It is intended to be invoked by an external cron job.
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
	"github.com/antage/opencorpora/internal/adapter/postgres/morph"
	"github.com/antage/opencorpora/internal/app"
	"github.com/antage/opencorpora/internal/service/morphology"
)

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	keepFlag := flag.Int("keep", 0, "imports to keep (overrides retention.keep_imports)")
	flag.Parse()

	cfg, logger, err := app.Init("cleanup", *configFlag)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	keep := cfg.Retention.KeepImports
	if *keepFlag > 0 {
		keep = *keepFlag
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := morphology.NewService(logger, morph.New(pool))

	deleted, err := svc.Prune(ctx, keep)
	if err != nil {
		logger.Error("delete old imports failed",
			slog.String("error", err.Error()),
			slog.Int("keep", keep),
		)
		pool.Close()
		os.Exit(1)
	}

	logger.Info("cleanup completed",
		slog.Int64("deleted", deleted),
		slog.Int("keep", keep),
	)
}
