// Package morph stores parsed OpenCorpora dictionaries in PostgreSQL.
// Every load is a separate dict_imports row; child tables are keyed by
// (import_id, position) and keep references by value (grammeme name,
// lemma id, link kind id).
package morph

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/antage/opencorpora/internal/adapter/postgres"
	"github.com/antage/opencorpora/internal/domain"
)

// Repo provides dictionary persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new dictionary repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

var importColumns = []string{
	"id", "version", "revision", "source",
	"grammemes", "restrictions", "lemmata", "forms", "link_kinds", "links",
	"created_at",
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// LatestImport returns the most recent import.
// Returns domain.ErrNotFound if nothing was imported yet.
func (r *Repo) LatestImport(ctx context.Context) (*domain.DictImport, error) {
	query, args, err := builder().
		Select(importColumns...).
		From("dict_imports").
		OrderBy("created_at DESC", "id").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build latest import query: %w", err)
	}

	imp, err := scanImport(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "dict_import", "latest")
	}
	return &imp, nil
}

// ListImports returns all imports, newest first.
func (r *Repo) ListImports(ctx context.Context) ([]domain.DictImport, error) {
	query, args, err := builder().
		Select(importColumns...).
		From("dict_imports").
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list imports query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	defer rows.Close()

	imports := []domain.DictImport{}
	for rows.Next() {
		imp, err := scanImport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		imports = append(imports, imp)
	}
	return imports, rows.Err()
}

// FindLemmata returns lemmata of an import whose headword or one of whose
// forms equals word after normalization. A hit on the headword alone has an
// empty Form. Empty word returns an empty result without a DB query.
func (r *Repo) FindLemmata(ctx context.Context, importID uuid.UUID, word string, limit int) ([]domain.LemmaMatch, error) {
	normalized := domain.NormalizeText(word)
	if normalized == "" || limit <= 0 {
		return []domain.LemmaMatch{}, nil
	}

	query, args, err := builder().
		Select(
			"l.lemma_id", "l.revision", "l.word", "l.grammemes",
			"COALESCE(f.word, '')", "COALESCE(f.grammemes, '{}'::text[])",
		).
		From("lemmata l").
		LeftJoin("forms f ON f.import_id = l.import_id AND f.lemma_position = l.position AND f.word_normalized = ?", normalized).
		Where(sq.Eq{"l.import_id": importID}).
		Where(sq.Or{
			sq.Eq{"l.word_normalized": normalized},
			sq.NotEq{"f.word": nil},
		}).
		OrderBy("l.position", "f.position NULLS FIRST").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find lemmata query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find lemmata %q: %w", word, err)
	}
	defer rows.Close()

	matches := []domain.LemmaMatch{}
	for rows.Next() {
		m := domain.LemmaMatch{ImportID: importID}
		var lemmaID, revision int64
		if err := rows.Scan(&lemmaID, &revision, &m.Lemma, &m.Grammemes, &m.Form, &m.FormGrammemes); err != nil {
			return nil, fmt.Errorf("scan lemma match: %w", err)
		}
		m.LemmaID = uint64(lemmaID)
		m.Revision = uint64(revision)
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateImport inserts the dict_imports row that every child row refers to.
func (r *Repo) CreateImport(ctx context.Context, imp domain.DictImport) error {
	revision, err := bigint("dictionary revision", imp.Revision)
	if err != nil {
		return err
	}

	query, args, err := builder().
		Insert("dict_imports").
		Columns(importColumns...).
		Values(
			imp.ID, imp.Version, revision, imp.Source,
			imp.Stats.Grammemes, imp.Stats.Restrictions, imp.Stats.Lemmata, imp.Stats.Forms,
			imp.Stats.LinkKinds, imp.Stats.Links,
			imp.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create import query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "dict_import", imp.ID)
	}
	return nil
}

// DeleteImportsExcept deletes all but the keep newest imports; child rows go
// with them through ON DELETE CASCADE. Returns the number of deleted imports.
func (r *Repo) DeleteImportsExcept(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		return 0, domain.NewValidationError("keep", "must be at least 1")
	}

	query, args, err := builder().
		Delete("dict_imports").
		Where(sq.Expr("id NOT IN (SELECT id FROM dict_imports ORDER BY created_at DESC, id LIMIT ?)", keep)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete imports query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete old imports: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func scanImport(row pgx.Row) (domain.DictImport, error) {
	var (
		imp      domain.DictImport
		revision int64
	)
	err := row.Scan(
		&imp.ID, &imp.Version, &revision, &imp.Source,
		&imp.Stats.Grammemes, &imp.Stats.Restrictions, &imp.Stats.Lemmata, &imp.Stats.Forms,
		&imp.Stats.LinkKinds, &imp.Stats.Links,
		&imp.CreatedAt,
	)
	imp.Revision = uint64(revision)
	return imp, err
}
