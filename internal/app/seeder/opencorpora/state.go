package opencorpora

// parsingState is the parser's position in the dictionary schema.
//
// The schema is a fixed tree at most four levels below <dictionary>
// (lemmata > lemma > l/f > g) and no state value is reachable from two
// different parents, so a single value identifies the full open-element
// path. A recursive schema would need an explicit stack instead.
type parsingState uint8

const (
	stateStart parsingState = iota
	stateDictionary
	stateGrammemes
	stateGrammeme
	stateGrammemeName
	stateGrammemeAlias
	stateGrammemeDescription
	stateRestrictions
	stateRestriction
	stateRestrictionLeft
	stateRestrictionRight
	stateLemmata
	stateLemma
	stateLemmaL
	stateLemmaLGrammeme
	stateLemmaF
	stateLemmaFGrammeme
	stateLinkTypes
	stateLinkType
	stateLinks
	stateLink
	stateEnd
)

var stateNames = [...]string{
	stateStart:               "start",
	stateDictionary:          "dictionary",
	stateGrammemes:           "grammemes",
	stateGrammeme:            "grammeme",
	stateGrammemeName:        "grammeme/name",
	stateGrammemeAlias:       "grammeme/alias",
	stateGrammemeDescription: "grammeme/description",
	stateRestrictions:        "restrictions",
	stateRestriction:         "restr",
	stateRestrictionLeft:     "restr/left",
	stateRestrictionRight:    "restr/right",
	stateLemmata:             "lemmata",
	stateLemma:               "lemma",
	stateLemmaL:              "lemma/l",
	stateLemmaLGrammeme:      "lemma/l/g",
	stateLemmaF:              "lemma/f",
	stateLemmaFGrammeme:      "lemma/f/g",
	stateLinkTypes:           "link_types",
	stateLinkType:            "link_types/type",
	stateLinks:               "links",
	stateLink:                "links/link",
	stateEnd:                 "end",
}

func (s parsingState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// transition is a (state, tag name) pair; the parser switches on it to pick
// the single legal move for a start or end tag.
type transition struct {
	from parsingState
	tag  string
}
