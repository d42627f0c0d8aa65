package domain

import (
	"time"

	"github.com/google/uuid"
)

// DictStats summarizes the size of a dictionary.
type DictStats struct {
	Grammemes          int
	Restrictions       int
	Lemmata            int
	Forms              int
	MaxFormsInLemma    int
	MaxGrammemesInForm int
	LinkKinds          int
	Links              int
}

// Stats walks the dictionary once and counts its contents.
// MaxGrammemesInForm counts lemma-level and form-level grammemes together,
// since a form inherits the grammemes of its lemma.
func (d *Dict) Stats() DictStats {
	s := DictStats{
		Grammemes:    len(d.Grammemes),
		Restrictions: len(d.Restrictions),
		Lemmata:      len(d.Lemmata),
		LinkKinds:    len(d.LinkKinds),
		Links:        len(d.Links),
	}
	for _, l := range d.Lemmata {
		s.Forms += len(l.Forms)
		s.MaxFormsInLemma = max(s.MaxFormsInLemma, len(l.Forms))
		for _, f := range l.Forms {
			s.MaxGrammemesInForm = max(s.MaxGrammemesInForm, len(l.Grammemes)+len(f.Grammemes))
		}
	}
	return s
}

// DictImport is one dictionary load persisted to the database.
type DictImport struct {
	ID        uuid.UUID
	Version   string
	Revision  uint64
	Source    string
	Stats     DictStats
	CreatedAt time.Time
}

// LemmaMatch is a lookup hit: a lemma whose headword or one of whose forms
// matched the query.
type LemmaMatch struct {
	ImportID      uuid.UUID
	LemmaID       uint64
	Revision      uint64
	Lemma         string
	Grammemes     []string
	Form          string
	FormGrammemes []string
}
