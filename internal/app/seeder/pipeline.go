package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/antage/opencorpora/internal/app/seeder/opencorpora"
	"github.com/antage/opencorpora/internal/domain"
)

// Phase names, one per dictionary section.
const (
	PhaseGrammemes    = "grammemes"
	PhaseRestrictions = "restrictions"
	PhaseLemmata      = "lemmata"
	PhaseLinkTypes    = "link_types"
	PhaseLinks        = "links"
)

// allPhases defines the canonical execution order. Later sections refer to
// earlier ones by value only, but keeping document order makes partial
// imports predictable.
var allPhases = []string{PhaseGrammemes, PhaseRestrictions, PhaseLemmata, PhaseLinkTypes, PhaseLinks}

// AllPhases returns the phase names in execution order.
func AllPhases() []string {
	return slices.Clone(allPhases)
}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Inserted int
	// Nested counts rows stored in child tables (forms of the lemmata phase).
	Nested   int
	Skipped  int
	Duration time.Duration
	Err      error
}

// Pipeline parses a dictionary dump once and stores the selected sections
// as a new import, all inside one transaction.
type Pipeline struct {
	log     *slog.Logger
	repo    MorphBulkRepo
	txm     TxManager
	cfg     Config
	results map[string]PhaseResult
	parsed  opencorpora.Stats
	imp     *domain.DictImport
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, repo MorphBulkRepo, txm TxManager, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log,
		repo:    repo,
		txm:     txm,
		cfg:     cfg,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// ParseStats returns the parser statistics of the last Run.
func (p *Pipeline) ParseStats() opencorpora.Stats {
	return p.parsed
}

// Import returns the stored import, or nil after a dry run or a failure.
func (p *Pipeline) Import() *domain.DictImport {
	return p.imp
}

// HasErrors returns true if any phase recorded an error.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Run executes the pipeline. If phases is non-empty, only the listed phases
// run, still in canonical order. A failing phase rolls back the whole import.
func (p *Pipeline) Run(ctx context.Context, phases []string) error {
	toRun, err := selectPhases(phases)
	if err != nil {
		return err
	}
	if p.cfg.DictPath == "" {
		return domain.NewValidationError("dict_path", "is required")
	}

	// Step 1: Parse the whole document; references are resolved here.
	start := time.Now()
	res, err := opencorpora.ParseFile(ctx, p.cfg.DictPath, opencorpora.Options{
		StrictLinkKinds: p.cfg.StrictLinkKinds,
	})
	if err != nil {
		return fmt.Errorf("parse %s: %w", p.cfg.DictPath, err)
	}
	p.parsed = res.Stats
	d := res.Dict
	stats := d.Stats()

	p.log.Info("dictionary parsed",
		slog.String("version", d.Version),
		slog.Uint64("revision", d.Revision),
		slog.Int("grammemes", stats.Grammemes),
		slog.Int("restrictions", stats.Restrictions),
		slog.Int("lemmata", stats.Lemmata),
		slog.Int("forms", stats.Forms),
		slog.Int("link_kinds", stats.LinkKinds),
		slog.Int("links", stats.Links),
		slog.Duration("duration", time.Since(start)),
	)
	if res.Stats.DuplicateGrammemes > 0 || res.Stats.DuplicateLemmata > 0 || res.Stats.UnresolvedLinkKinds > 0 {
		p.log.Warn("dictionary has inconsistent references",
			slog.Int("duplicate_grammemes", res.Stats.DuplicateGrammemes),
			slog.Int("duplicate_lemmata", res.Stats.DuplicateLemmata),
			slog.Int("unresolved_link_kinds", res.Stats.UnresolvedLinkKinds),
		)
	}

	// Step 2: Dry run stops after parsing.
	if p.cfg.DryRun {
		for _, phase := range toRun {
			p.results[phase] = PhaseResult{Skipped: sectionLen(d, phase)}
		}
		p.log.Info("dry run, nothing stored", slog.Int("phases", len(toRun)))
		return nil
	}

	// Step 3: Store the selected sections as one import.
	imp := domain.DictImport{
		ID:        uuid.New(),
		Version:   d.Version,
		Revision:  d.Revision,
		Source:    filepath.Base(p.cfg.DictPath),
		Stats:     stats,
		CreatedAt: time.Now().UTC(),
	}

	err = p.txm.RunInTx(ctx, func(ctx context.Context) error {
		if err := p.repo.CreateImport(ctx, imp); err != nil {
			return fmt.Errorf("create import: %w", err)
		}

		for _, phase := range toRun {
			started := time.Now()
			p.log.Info("starting phase", slog.String("phase", phase))

			result := p.runPhase(ctx, phase, imp.ID, d)
			result.Duration = time.Since(started)
			p.results[phase] = result

			if result.Err != nil {
				p.log.Warn("phase failed",
					slog.String("phase", phase),
					slog.String("error", result.Err.Error()),
					slog.Duration("duration", result.Duration),
				)
				return fmt.Errorf("phase %s: %w", phase, result.Err)
			}
			p.log.Info("phase completed",
				slog.String("phase", phase),
				slog.Int("inserted", result.Inserted),
				slog.Int("nested", result.Nested),
				slog.Duration("duration", result.Duration),
			)
		}
		return nil
	})
	if err != nil {
		return err
	}

	p.imp = &imp
	p.log.Info("pipeline completed",
		slog.String("import_id", imp.ID.String()),
		slog.Int("phases_run", len(toRun)),
	)
	return nil
}

func (p *Pipeline) runPhase(ctx context.Context, phase string, importID uuid.UUID, d *domain.Dict) PhaseResult {
	var (
		result PhaseResult
		err    error
	)
	switch phase {
	case PhaseGrammemes:
		result.Inserted, err = batchProcess(d.Grammemes, p.cfg.BatchSize, func(off int, batch []*domain.Grammeme) (int, error) {
			return p.repo.BulkInsertGrammemes(ctx, importID, off, batch)
		})
	case PhaseRestrictions:
		result.Inserted, err = batchProcess(d.Restrictions, p.cfg.BatchSize, func(off int, batch []domain.Restriction) (int, error) {
			return p.repo.BulkInsertRestrictions(ctx, importID, off, batch)
		})
	case PhaseLemmata:
		result.Inserted, err = batchProcess(d.Lemmata, p.cfg.BatchSize, func(off int, batch []*domain.Lemma) (int, error) {
			n, err := p.repo.BulkInsertLemmata(ctx, importID, off, batch)
			if err != nil {
				return n, err
			}
			forms, err := p.repo.BulkInsertForms(ctx, importID, off, batch)
			result.Nested += forms
			return n, err
		})
	case PhaseLinkTypes:
		result.Inserted, err = batchProcess(d.LinkKinds, p.cfg.BatchSize, func(off int, batch []*domain.LinkKind) (int, error) {
			return p.repo.BulkInsertLinkKinds(ctx, importID, off, batch)
		})
	case PhaseLinks:
		result.Inserted, err = batchProcess(d.Links, p.cfg.BatchSize, func(off int, batch []domain.Link) (int, error) {
			return p.repo.BulkInsertLinks(ctx, importID, off, batch)
		})
	}
	if err != nil {
		result.Err = fmt.Errorf("insert %s: %w", phase, err)
	}
	return result
}

// selectPhases filters allPhases by the requested names. Unknown names are
// a validation error; an empty request selects everything.
func selectPhases(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return allPhases, nil
	}
	var unknown []domain.FieldError
	for _, ph := range requested {
		if !slices.Contains(allPhases, ph) {
			unknown = append(unknown, domain.FieldError{Field: "phase", Message: fmt.Sprintf("unknown phase %q", ph)})
		}
	}
	if len(unknown) > 0 {
		return nil, domain.NewValidationErrors(unknown)
	}

	var filtered []string
	for _, ph := range allPhases {
		if slices.Contains(requested, ph) {
			filtered = append(filtered, ph)
		}
	}
	return filtered, nil
}

func sectionLen(d *domain.Dict, phase string) int {
	switch phase {
	case PhaseGrammemes:
		return len(d.Grammemes)
	case PhaseRestrictions:
		return len(d.Restrictions)
	case PhaseLemmata:
		return len(d.Lemmata)
	case PhaseLinkTypes:
		return len(d.LinkKinds)
	case PhaseLinks:
		return len(d.Links)
	}
	return 0
}

// batchProcess splits items into batches of batchSize and calls fn with
// each batch and the position of its first item.
func batchProcess[T any](items []T, batchSize int, fn func(offset int, batch []T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(i, items[i:end])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
