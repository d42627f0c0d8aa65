package seeder_test

import (
	"github.com/antage/opencorpora/internal/adapter/postgres"
	"github.com/antage/opencorpora/internal/adapter/postgres/morph"
	"github.com/antage/opencorpora/internal/app/seeder"
)

// Compile-time checks: the postgres adapters satisfy the pipeline contracts.
var (
	_ seeder.MorphBulkRepo = (*morph.Repo)(nil)
	_ seeder.TxManager     = (*postgres.TxManager)(nil)
)
