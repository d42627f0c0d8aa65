package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/antage/opencorpora/internal/domain"
)

// SeedImport inserts an empty dict_imports row and returns it.
// createdAt orders imports for retention tests.
func SeedImport(t *testing.T, pool *pgxpool.Pool, createdAt time.Time) domain.DictImport {
	t.Helper()

	imp := domain.DictImport{
		ID:        uuid.New(),
		Version:   "0.92",
		Revision:  1,
		Source:    "seed-" + uuid.New().String()[:8],
		CreatedAt: createdAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO dict_imports (id, version, revision, source, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		imp.ID, imp.Version, int64(imp.Revision), imp.Source, imp.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedImport: %v", err)
	}

	return imp
}
