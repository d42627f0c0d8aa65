// Package seeder loads an OpenCorpora dictionary dump into the database.
package seeder

import (
	"context"

	"github.com/google/uuid"

	"github.com/antage/opencorpora/internal/domain"
)

// MorphBulkRepo defines the batch repository contract consumed by the seeder pipeline.
// All methods use only domain types. Implemented by morph.Repo.
type MorphBulkRepo interface {
	CreateImport(ctx context.Context, imp domain.DictImport) error

	// Batch inserts. offset is the section position of the first item.
	BulkInsertGrammemes(ctx context.Context, importID uuid.UUID, offset int, grammemes []*domain.Grammeme) (int, error)
	BulkInsertRestrictions(ctx context.Context, importID uuid.UUID, offset int, restrictions []domain.Restriction) (int, error)
	BulkInsertLemmata(ctx context.Context, importID uuid.UUID, offset int, lemmata []*domain.Lemma) (int, error)
	BulkInsertForms(ctx context.Context, importID uuid.UUID, offset int, lemmata []*domain.Lemma) (int, error)
	BulkInsertLinkKinds(ctx context.Context, importID uuid.UUID, offset int, kinds []*domain.LinkKind) (int, error)
	BulkInsertLinks(ctx context.Context, importID uuid.UUID, offset int, links []domain.Link) (int, error)
}

// TxManager runs fn in one database transaction. Implemented by postgres.TxManager.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
