package opencorpora

import (
	"strconv"

	"github.com/antage/opencorpora/internal/domain"
)

// referenceIndex resolves grammeme names and lemma ids to entities that
// were already finalized in the current parse.
type referenceIndex struct {
	grammemes map[string]*domain.Grammeme
	lemmata   map[uint64]*domain.Lemma
}

func newReferenceIndex() *referenceIndex {
	return &referenceIndex{
		grammemes: make(map[string]*domain.Grammeme),
		lemmata:   make(map[uint64]*domain.Lemma),
	}
}

// addGrammeme indexes g by name. A later grammeme with the same name
// replaces the earlier one; replaced reports whether that happened.
func (ix *referenceIndex) addGrammeme(g *domain.Grammeme) (replaced bool) {
	_, replaced = ix.grammemes[g.Name]
	ix.grammemes[g.Name] = g
	return replaced
}

// addLemma indexes l by id with the same last-wins policy as addGrammeme.
func (ix *referenceIndex) addLemma(l *domain.Lemma) (replaced bool) {
	_, replaced = ix.lemmata[l.ID]
	ix.lemmata[l.ID] = l
	return replaced
}

func (ix *referenceIndex) resetGrammemes() {
	clear(ix.grammemes)
}

func (ix *referenceIndex) grammeme(raw []byte) (*domain.Grammeme, error) {
	name, err := decodeString(raw)
	if err != nil {
		return nil, err
	}
	g, ok := ix.grammemes[name]
	if !ok {
		return nil, newReferenceError(ErrNoSuchGrammeme, "grammeme", name)
	}
	return g, nil
}

func (ix *referenceIndex) lemma(raw []byte) (*domain.Lemma, error) {
	id, err := decodeUint(raw)
	if err != nil {
		return nil, err
	}
	l, ok := ix.lemmata[id]
	if !ok {
		return nil, newReferenceError(ErrNoSuchLemma, "lemma", strconv.FormatUint(id, 10))
	}
	return l, nil
}

// findLinkKind scans the declared link kinds for id. Link kinds are not
// indexed; when several share an id the last declared one wins. It returns
// nil when nothing matches.
func findLinkKind(kinds []*domain.LinkKind, id uint64) *domain.LinkKind {
	for i := len(kinds) - 1; i >= 0; i-- {
		if kinds[i].ID == id {
			return kinds[i]
		}
	}
	return nil
}
