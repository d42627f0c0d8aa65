package morph

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/antage/opencorpora/internal/adapter/postgres"
	"github.com/antage/opencorpora/internal/domain"
)

// ---------------------------------------------------------------------------
// Batch insert methods (pgx.Batch API)
//
// Each method stores one slice of a dictionary section. offset is the
// position of items[0] within the whole section, so consecutive calls with
// growing offsets reproduce the document order.
//
// Dictionary numbers are uint64 but the columns are BIGINT: a value above
// math.MaxInt64 fails the whole call with domain.ErrValidation before
// anything is sent.
// ---------------------------------------------------------------------------

// BulkInsertGrammemes inserts grammeme rows. Returns the number of inserted rows.
func (r *Repo) BulkInsertGrammemes(ctx context.Context, importID uuid.UUID, offset int, grammemes []*domain.Grammeme) (int, error) {
	if len(grammemes) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for i, g := range grammemes {
		batch.Queue(
			`INSERT INTO grammemes (import_id, position, name, parent, alias, description)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			importID, offset+i, g.Name, g.Parent, g.Alias, g.Description,
		)
	}

	return r.sendBatchExec(ctx, batch, "grammemes")
}

// BulkInsertRestrictions inserts restriction rows. Grammemes are stored by
// name; a side without a grammeme is NULL.
func (r *Repo) BulkInsertRestrictions(ctx context.Context, importID uuid.UUID, offset int, restrictions []domain.Restriction) (int, error) {
	if len(restrictions) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for i, rs := range restrictions {
		auto, err := bigint("restriction auto", rs.Auto)
		if err != nil {
			return 0, err
		}
		batch.Queue(
			`INSERT INTO restrictions (import_id, position, kind, auto, left_scope, left_grammeme, right_scope, right_grammeme)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			importID, offset+i, string(rs.Kind), auto,
			string(rs.LeftScope), domain.GrammemeName(rs.LeftGrammeme),
			string(rs.RightScope), domain.GrammemeName(rs.RightGrammeme),
		)
	}

	return r.sendBatchExec(ctx, batch, "restrictions")
}

// BulkInsertLemmata inserts lemma rows (headword and lemma-level grammemes).
// Forms are stored separately by BulkInsertForms.
func (r *Repo) BulkInsertLemmata(ctx context.Context, importID uuid.UUID, offset int, lemmata []*domain.Lemma) (int, error) {
	if len(lemmata) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for i, l := range lemmata {
		id, err := lemmaID(l)
		if err != nil {
			return 0, err
		}
		rev, err := bigint("lemma revision", l.Revision)
		if err != nil {
			return 0, err
		}
		batch.Queue(
			`INSERT INTO lemmata (import_id, position, lemma_id, revision, word, word_normalized, grammemes)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			importID, offset+i, id, rev,
			l.Word, domain.NormalizeText(l.Word), grammemeNames(l.Grammemes),
		)
	}

	return r.sendBatchExec(ctx, batch, "lemmata")
}

// BulkInsertForms copies the forms of lemmata, which must already be stored
// at the same offset. Forms are the bulk of a dictionary, so they go through
// COPY instead of a batch.
func (r *Repo) BulkInsertForms(ctx context.Context, importID uuid.UUID, offset int, lemmata []*domain.Lemma) (int, error) {
	var rows [][]any
	for i, l := range lemmata {
		for j, f := range l.Forms {
			rows = append(rows, []any{
				importID, offset + i, j,
				f.Word, domain.NormalizeText(f.Word), grammemeNames(f.Grammemes),
			})
		}
	}
	if len(rows) == 0 {
		return 0, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	n, err := q.CopyFrom(ctx,
		pgx.Identifier{"forms"},
		[]string{"import_id", "lemma_position", "position", "word", "word_normalized", "grammemes"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return int(n), postgres.MapError(err, "forms", fmt.Sprintf("from position %d", offset))
	}
	return int(n), nil
}

// BulkInsertLinkKinds inserts link kind rows.
func (r *Repo) BulkInsertLinkKinds(ctx context.Context, importID uuid.UUID, offset int, kinds []*domain.LinkKind) (int, error) {
	if len(kinds) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for i, k := range kinds {
		id, err := bigint("link kind id", k.ID)
		if err != nil {
			return 0, err
		}
		batch.Queue(
			`INSERT INTO link_kinds (import_id, position, kind_id, name)
			 VALUES ($1, $2, $3, $4)`,
			importID, offset+i, id, k.Name,
		)
	}

	return r.sendBatchExec(ctx, batch, "link_kinds")
}

// BulkInsertLinks inserts link rows. Lemmata are stored by id; an
// unresolved link kind is NULL.
func (r *Repo) BulkInsertLinks(ctx context.Context, importID uuid.UUID, offset int, links []domain.Link) (int, error) {
	if len(links) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for i, l := range links {
		id, err := bigint("link id", l.ID)
		if err != nil {
			return 0, err
		}
		from, err := lemmaID(l.From)
		if err != nil {
			return 0, err
		}
		to, err := lemmaID(l.To)
		if err != nil {
			return 0, err
		}
		var kindID *int64
		if l.Kind != nil {
			kid, err := bigint("link kind id", l.Kind.ID)
			if err != nil {
				return 0, err
			}
			kindID = &kid
		}
		batch.Queue(
			`INSERT INTO links (import_id, position, link_id, from_lemma_id, to_lemma_id, kind_id)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			importID, offset+i, id, from, to, kindID,
		)
	}

	return r.sendBatchExec(ctx, batch, "links")
}

// sendBatchExec sends a pgx.Batch and counts affected rows from Exec results.
func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch, table string) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, postgres.MapError(err, table, fmt.Sprintf("batch row %d", inserted))
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// grammemeNames never returns nil: the grammemes columns are NOT NULL.
func grammemeNames(gs []*domain.Grammeme) []string {
	names := domain.GrammemeNames(gs)
	if names == nil {
		return []string{}
	}
	return names
}

func lemmaID(l *domain.Lemma) (int64, error) {
	if l == nil {
		return 0, nil
	}
	return bigint("lemma id", l.ID)
}

// bigint converts an unsigned dictionary number to a BIGINT column value.
func bigint(field string, v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, domain.NewValidationError(field, fmt.Sprintf("%d exceeds the bigint range", v))
	}
	return int64(v), nil
}
