package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Seeder.validate(); err != nil {
		return fmt.Errorf("seeder: %w", err)
	}

	if c.Retention.KeepImports < 1 {
		return fmt.Errorf("retention.keep_imports must be >= 1 (got %d)", c.Retention.KeepImports)
	}

	return nil
}

func (s *SeederConfig) validate() error {
	if s.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", s.BatchSize)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", s.Timeout)
	}

	s.Phases = ParsePhases(s.PhasesRaw)
	return nil
}

// ParsePhases splits a comma-separated phase list (e.g. "grammemes,lemmata").
// Blank entries are dropped; an empty string returns a nil slice.
func ParsePhases(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var phases []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		phases = append(phases, p)
	}
	return phases
}
