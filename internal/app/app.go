package app

import (
	"log/slog"

	"github.com/antage/opencorpora/internal/config"
)

// Init loads configuration, initializes the default logger and logs
// startup information for the named command. An empty configPath falls
// back to CONFIG_PATH / ./config.yaml.
func Init(command, configPath string) (*config.Config, *slog.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, err
	}

	logger := NewLogger(cfg.Log).With(slog.String("command", command))

	logger.Info("starting",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	return cfg, logger, nil
}
