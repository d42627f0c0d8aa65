package seeder

import "github.com/antage/opencorpora/internal/config"

// Config holds seeder pipeline settings.
type Config struct {
	DictPath        string
	BatchSize       int
	DryRun          bool
	StrictLinkKinds bool
}

// NewConfig takes the pipeline settings from the application configuration.
func NewConfig(c config.SeederConfig) Config {
	return Config{
		DictPath:        c.DictPath,
		BatchSize:       c.BatchSize,
		DryRun:          c.DryRun,
		StrictLinkKinds: c.StrictLinkKinds,
	}
}
