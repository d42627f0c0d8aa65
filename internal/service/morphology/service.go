// Package morphology answers read-side questions about stored dictionary
// imports: word lookup, import listing and retention.
package morphology

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/antage/opencorpora/internal/domain"
)

type morphRepo interface {
	LatestImport(ctx context.Context) (*domain.DictImport, error)
	ListImports(ctx context.Context) ([]domain.DictImport, error)
	FindLemmata(ctx context.Context, importID uuid.UUID, word string, limit int) ([]domain.LemmaMatch, error)
	DeleteImportsExcept(ctx context.Context, keep int) (int64, error)
}

// ErrNoImports indicates that no dictionary has been imported yet.
var ErrNoImports = errors.New("no dictionary imported")

const (
	defaultLimit = 20
	maxLimit     = 200
)

// Service implements lookup and retention over stored imports.
type Service struct {
	log  *slog.Logger
	repo morphRepo
}

// NewService creates a new morphology service.
func NewService(logger *slog.Logger, repo morphRepo) *Service {
	return &Service{
		log:  logger.With("service", "morphology"),
		repo: repo,
	}
}

// LookupResult is the outcome of a word lookup in one import.
type LookupResult struct {
	ImportID uuid.UUID
	Word     string
	Matches  []domain.LemmaMatch
}

// Lookup finds lemmata whose headword or forms match word. A nil importID
// selects the latest import. An empty word returns an empty result.
// Limit is clamped to [1, 200], defaulting to 20.
func (s *Service) Lookup(ctx context.Context, importID *uuid.UUID, word string, limit int) (*LookupResult, error) {
	id, err := s.resolveImport(ctx, importID)
	if err != nil {
		return nil, err
	}

	res := &LookupResult{ImportID: id, Word: word, Matches: []domain.LemmaMatch{}}
	if domain.NormalizeText(word) == "" {
		return res, nil
	}

	matches, err := s.repo.FindLemmata(ctx, id, word, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("find lemmata: %w", err)
	}
	res.Matches = matches

	s.log.DebugContext(ctx, "lookup",
		slog.String("word", word),
		slog.String("import_id", id.String()),
		slog.Int("matches", len(matches)),
	)
	return res, nil
}

// Imports returns all stored imports, newest first.
func (s *Service) Imports(ctx context.Context) ([]domain.DictImport, error) {
	return s.repo.ListImports(ctx)
}

// Prune deletes every import except the newest keep ones.
func (s *Service) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		return 0, domain.NewValidationError("keep", "must be at least 1")
	}

	deleted, err := s.repo.DeleteImportsExcept(ctx, keep)
	if err != nil {
		return 0, fmt.Errorf("delete old imports: %w", err)
	}

	if deleted > 0 {
		s.log.InfoContext(ctx, "old imports deleted",
			slog.Int64("deleted", deleted),
			slog.Int("keep", keep),
		)
	}
	return deleted, nil
}

func (s *Service) resolveImport(ctx context.Context, importID *uuid.UUID) (uuid.UUID, error) {
	if importID != nil {
		return *importID, nil
	}

	imp, err := s.repo.LatestImport(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return uuid.Nil, ErrNoImports
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("latest import: %w", err)
	}
	return imp.ID, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return min(limit, maxLimit)
}
