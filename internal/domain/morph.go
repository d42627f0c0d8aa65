package domain

// Grammeme is a grammatical category (part of speech, case, number, ...)
// declared in the dictionary header and referenced by name everywhere else.
type Grammeme struct {
	// Parent is the name of the parent grammeme; nil for top-level grammemes.
	// It is stored as written and never resolved.
	Parent      *string
	Name        string
	Alias       string
	Description string
}

// RestrictionKind is the severity of a grammeme restriction.
type RestrictionKind string

const (
	RestrictionMaybe      RestrictionKind = "maybe"
	RestrictionObligatory RestrictionKind = "obligatory"
	RestrictionForbidden  RestrictionKind = "forbidden"
)

func (k RestrictionKind) String() string { return string(k) }

func (k RestrictionKind) IsValid() bool {
	switch k {
	case RestrictionMaybe, RestrictionObligatory, RestrictionForbidden:
		return true
	}
	return false
}

// RestrictionScope tells whether a restriction side applies to the lemma
// as a whole or to one of its forms.
type RestrictionScope string

const (
	ScopeLemma RestrictionScope = "lemma"
	ScopeForm  RestrictionScope = "form"
)

func (s RestrictionScope) String() string { return string(s) }

func (s RestrictionScope) IsValid() bool {
	switch s {
	case ScopeLemma, ScopeForm:
		return true
	}
	return false
}

// Restriction constrains which grammemes may co-occur. Either side's
// grammeme may be nil, meaning "unspecified".
type Restriction struct {
	Kind          RestrictionKind
	Auto          uint64
	LeftScope     RestrictionScope
	LeftGrammeme  *Grammeme
	RightScope    RestrictionScope
	RightGrammeme *Grammeme
}

// NewRestriction returns a restriction with the dictionary defaults:
// kind "maybe", auto 0, both sides scoped to the lemma.
func NewRestriction() Restriction {
	return Restriction{
		Kind:       RestrictionMaybe,
		LeftScope:  ScopeLemma,
		RightScope: ScopeLemma,
	}
}

// Form is one inflected surface form of a lemma. A form belongs to exactly
// one lemma and is stored by value.
type Form struct {
	Word      string
	Grammemes []*Grammeme
}

// Lemma is a lexeme: headword, lexeme-level grammemes and its forms.
type Lemma struct {
	ID        uint64
	Revision  uint64
	Word      string
	Grammemes []*Grammeme
	Forms     []Form
}

// LinkKind is an entry of the link type catalog.
type LinkKind struct {
	ID   uint64
	Name string
}

// Link is a typed relation between two lemmata. Kind is nil when the
// document referenced a link type id that was never declared.
type Link struct {
	ID   uint64
	From *Lemma
	To   *Lemma
	Kind *LinkKind
}

// Dict is the root aggregate of a parsed dictionary. It owns every entity;
// pointers between entities always point into these collections.
type Dict struct {
	Version      string
	Revision     uint64
	Grammemes    []*Grammeme
	Restrictions []Restriction
	Lemmata      []*Lemma
	LinkKinds    []*LinkKind
	Links        []Link
}

// GrammemeNames returns the names of gs in order.
func GrammemeNames(gs []*Grammeme) []string {
	if len(gs) == 0 {
		return nil
	}
	names := make([]string, len(gs))
	for i, g := range gs {
		names[i] = g.Name
	}
	return names
}

// GrammemeName returns g.Name, or nil when g is nil.
func GrammemeName(g *Grammeme) *string {
	if g == nil {
		return nil
	}
	name := g.Name
	return &name
}
