package morphology

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antage/opencorpora/internal/domain"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockMorphRepo struct {
	LatestImportFunc        func(ctx context.Context) (*domain.DictImport, error)
	ListImportsFunc         func(ctx context.Context) ([]domain.DictImport, error)
	FindLemmataFunc         func(ctx context.Context, importID uuid.UUID, word string, limit int) ([]domain.LemmaMatch, error)
	DeleteImportsExceptFunc func(ctx context.Context, keep int) (int64, error)
}

func (m *mockMorphRepo) LatestImport(ctx context.Context) (*domain.DictImport, error) {
	return m.LatestImportFunc(ctx)
}

func (m *mockMorphRepo) ListImports(ctx context.Context) ([]domain.DictImport, error) {
	return m.ListImportsFunc(ctx)
}

func (m *mockMorphRepo) FindLemmata(ctx context.Context, importID uuid.UUID, word string, limit int) ([]domain.LemmaMatch, error) {
	return m.FindLemmataFunc(ctx, importID, word, limit)
}

func (m *mockMorphRepo) DeleteImportsExcept(ctx context.Context, keep int) (int64, error) {
	return m.DeleteImportsExceptFunc(ctx, keep)
}

func newTestService(repo *mockMorphRepo) *Service {
	return NewService(slog.Default(), repo)
}

func latest(id uuid.UUID) func(context.Context) (*domain.DictImport, error) {
	return func(context.Context) (*domain.DictImport, error) {
		return &domain.DictImport{ID: id, Version: "0.92"}, nil
	}
}

// ---------------------------------------------------------------------------
// Lookup tests
// ---------------------------------------------------------------------------

func TestService_Lookup_LatestImport(t *testing.T) {
	t.Parallel()

	importID := uuid.New()
	var gotID uuid.UUID
	var gotLimit int
	repo := &mockMorphRepo{
		LatestImportFunc: latest(importID),
		FindLemmataFunc: func(_ context.Context, id uuid.UUID, word string, limit int) ([]domain.LemmaMatch, error) {
			gotID, gotLimit = id, limit
			return []domain.LemmaMatch{{ImportID: id, LemmaID: 1, Lemma: "ёж", Form: word}}, nil
		},
	}

	res, err := newTestService(repo).Lookup(context.Background(), nil, "ежи", 0)
	require.NoError(t, err)

	assert.Equal(t, importID, res.ImportID)
	assert.Equal(t, importID, gotID)
	assert.Equal(t, defaultLimit, gotLimit)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "ёж", res.Matches[0].Lemma)
}

func TestService_Lookup_ExplicitImport(t *testing.T) {
	t.Parallel()

	importID := uuid.New()
	repo := &mockMorphRepo{
		LatestImportFunc: func(context.Context) (*domain.DictImport, error) {
			t.Fatal("LatestImport should not be called")
			return nil, nil
		},
		FindLemmataFunc: func(_ context.Context, id uuid.UUID, _ string, _ int) ([]domain.LemmaMatch, error) {
			assert.Equal(t, importID, id)
			return []domain.LemmaMatch{}, nil
		},
	}

	res, err := newTestService(repo).Lookup(context.Background(), &importID, "стол", 5)
	require.NoError(t, err)
	assert.Empty(t, res.Matches)
}

func TestService_Lookup_EmptyWord(t *testing.T) {
	t.Parallel()

	repo := &mockMorphRepo{
		LatestImportFunc: latest(uuid.New()),
		FindLemmataFunc: func(context.Context, uuid.UUID, string, int) ([]domain.LemmaMatch, error) {
			t.Fatal("FindLemmata should not be called")
			return nil, nil
		},
	}

	res, err := newTestService(repo).Lookup(context.Background(), nil, "   ", 10)
	require.NoError(t, err)
	assert.NotNil(t, res.Matches)
	assert.Empty(t, res.Matches)
}

func TestService_Lookup_NoImports(t *testing.T) {
	t.Parallel()

	repo := &mockMorphRepo{
		LatestImportFunc: func(context.Context) (*domain.DictImport, error) {
			return nil, fmt.Errorf("dict import latest: %w", domain.ErrNotFound)
		},
	}

	_, err := newTestService(repo).Lookup(context.Background(), nil, "ёж", 10)
	assert.ErrorIs(t, err, ErrNoImports)
}

func TestService_Lookup_RepoError(t *testing.T) {
	t.Parallel()

	repoErr := errors.New("connection reset")
	repo := &mockMorphRepo{
		LatestImportFunc: latest(uuid.New()),
		FindLemmataFunc: func(context.Context, uuid.UUID, string, int) ([]domain.LemmaMatch, error) {
			return nil, repoErr
		},
	}

	_, err := newTestService(repo).Lookup(context.Background(), nil, "ёж", 10)
	assert.ErrorIs(t, err, repoErr)
}

func TestClampLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want int
	}{
		{in: -1, want: defaultLimit},
		{in: 0, want: defaultLimit},
		{in: 1, want: 1},
		{in: 50, want: 50},
		{in: maxLimit, want: maxLimit},
		{in: maxLimit + 1, want: maxLimit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clampLimit(tt.in), "clampLimit(%d)", tt.in)
	}
}

// ---------------------------------------------------------------------------
// Retention tests
// ---------------------------------------------------------------------------

func TestService_Prune(t *testing.T) {
	t.Parallel()

	var gotKeep int
	repo := &mockMorphRepo{
		DeleteImportsExceptFunc: func(_ context.Context, keep int) (int64, error) {
			gotKeep = keep
			return 3, nil
		},
	}

	deleted, err := newTestService(repo).Prune(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.Equal(t, 2, gotKeep)
}

func TestService_Prune_InvalidKeep(t *testing.T) {
	t.Parallel()

	repo := &mockMorphRepo{
		DeleteImportsExceptFunc: func(context.Context, int) (int64, error) {
			t.Fatal("DeleteImportsExcept should not be called")
			return 0, nil
		},
	}

	_, err := newTestService(repo).Prune(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Imports(t *testing.T) {
	t.Parallel()

	want := []domain.DictImport{{ID: uuid.New()}, {ID: uuid.New()}}
	repo := &mockMorphRepo{
		ListImportsFunc: func(context.Context) ([]domain.DictImport, error) {
			return want, nil
		},
	}

	got, err := newTestService(repo).Imports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
