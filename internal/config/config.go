package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Seeder    SeederConfig    `yaml:"seeder"`
	Retention RetentionConfig `yaml:"retention"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// ApplicationName is reported in pg_stat_activity unless the DSN sets
	// application_name itself.
	ApplicationName string `yaml:"application_name" env:"DATABASE_APPLICATION_NAME" env-default:"opencorpora"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SeederConfig holds dictionary import settings.
type SeederConfig struct {
	DictPath        string        `yaml:"dict_path"         env:"SEEDER_DICT_PATH"`
	PhasesRaw       string        `yaml:"phases"            env:"SEEDER_PHASES"`
	BatchSize       int           `yaml:"batch_size"        env:"SEEDER_BATCH_SIZE"        env-default:"500"`
	DryRun          bool          `yaml:"dry_run"           env:"SEEDER_DRY_RUN"`
	StrictLinkKinds bool          `yaml:"strict_link_kinds" env:"SEEDER_STRICT_LINK_KINDS"`
	Timeout         time.Duration `yaml:"timeout"           env:"SEEDER_TIMEOUT"           env-default:"30m"`

	// Phases is parsed from PhasesRaw during validation. Empty means all.
	Phases []string `yaml:"-" env:"-"`
}

// RetentionConfig controls how many dictionary imports are kept.
type RetentionConfig struct {
	KeepImports int `yaml:"keep_imports" env:"RETENTION_KEEP_IMPORTS" env-default:"2"`
}
