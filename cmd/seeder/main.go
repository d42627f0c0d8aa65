// Command seeder loads an OpenCorpora dictionary dump into PostgreSQL as a
// new import. It is intended to be run offline, not as part of a server.
//
// Flags:
//
//	--config             path to YAML config file (default: CONFIG_PATH or ./config.yaml)
//	--file               dictionary dump (.xml, .xml.bz2, .xml.gz, .xml.zst)
//	--phase              comma-separated list of phases to run (default: all)
//	--dry-run            parse the dump without writing to DB
//	--strict-link-kinds  fail on links that reference an undeclared link type
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/antage/opencorpora/internal/adapter/postgres"
	"github.com/antage/opencorpora/internal/adapter/postgres/morph"
	"github.com/antage/opencorpora/internal/app"
	"github.com/antage/opencorpora/internal/app/seeder"
	"github.com/antage/opencorpora/internal/config"
)

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	fileFlag := flag.String("file", "", "dictionary dump to import (overrides seeder.dict_path)")
	phaseFlag := flag.String("phase", "", "comma-separated phases to run (default: all)")
	dryRunFlag := flag.Bool("dry-run", false, "parse the dump without writing to DB")
	strictFlag := flag.Bool("strict-link-kinds", false, "fail on links with an undeclared link type")
	flag.Parse()

	cfg, logger, err := app.Init("seeder", *configFlag)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	// CLI flags override config.
	seederCfg := seeder.NewConfig(cfg.Seeder)
	if *fileFlag != "" {
		seederCfg.DictPath = *fileFlag
	}
	if *dryRunFlag {
		seederCfg.DryRun = true
	}
	if *strictFlag {
		seederCfg.StrictLinkKinds = true
	}

	phases := cfg.Seeder.Phases
	if *phaseFlag != "" {
		phases = config.ParsePhases(*phaseFlag)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Seeder.Timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	pipeline := seeder.NewPipeline(logger, morph.New(pool), postgres.NewTxManager(pool), seederCfg)
	if err := pipeline.Run(ctx, phases); err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		pool.Close()
		os.Exit(1)
	}

	if imp := pipeline.Import(); imp != nil {
		logger.Info("import stored",
			slog.String("import_id", imp.ID.String()),
			slog.String("version", imp.Version),
			slog.Uint64("revision", imp.Revision),
		)
	}
	logger.Info("pipeline completed successfully")
}
