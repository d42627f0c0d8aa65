//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/antage/opencorpora/internal/adapter/postgres"
	"github.com/antage/opencorpora/internal/adapter/postgres/testhelper"
)

func importExists(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM dict_imports WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("importExists query: %v", err)
	}
	return exists
}

func insertImport(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, pool)
	_, err := q.Exec(ctx,
		`INSERT INTO dict_imports (id, version, revision, source) VALUES ($1, '0.92', 1, 'tx-test')`, id,
	)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	id := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertImport(ctx, pool, id)
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !importExists(t, pool, id) {
		t.Fatal("expected import to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	id := uuid.New()
	sentinel := errors.New("phase failed")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertImport(ctx, pool, id); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if importExists(t, pool, id) {
		t.Fatal("expected import NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	id := uuid.New()

	defer func() {
		if r := recover(); r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}
		if importExists(t, pool, id) {
			t.Fatal("expected import NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertImport(ctx, pool, id); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_NestedJoinsOuter(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	id := uuid.New()
	sentinel := errors.New("outer failed")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := tm.RunInTx(ctx, func(inner context.Context) error {
			return insertImport(inner, pool, id)
		}); err != nil {
			return err
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if importExists(t, pool, id) {
		t.Fatal("inner insert should roll back with the outer transaction")
	}
}
