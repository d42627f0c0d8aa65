// Package opencorpora parses the OpenCorpora morphological dictionary XML
// (dict.opcorpora.xml) into a cross-referenced domain.Dict.
// Pure function: reader in, domain structs out. No database dependencies.
//
// The document is read in one forward pass. Grammeme names and lemma ids are
// resolved when they are used, so every reference must point at an entity
// declared earlier in the document.
package opencorpora

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/antage/opencorpora/internal/domain"
)

// ctxCheckInterval is how many events are processed between context checks.
const ctxCheckInterval = 4096

// Options tunes reference resolution.
type Options struct {
	// StrictLinkKinds makes a link whose type id matches no declared link
	// kind fail with ErrNoSuchLinkKind. By default such a link is kept with
	// a nil Kind and counted in Stats.UnresolvedLinkKinds.
	StrictLinkKinds bool
}

// ParseResult holds the parsed dictionary.
type ParseResult struct {
	Dict  *domain.Dict
	Stats Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	Events              int
	DuplicateGrammemes  int
	DuplicateLemmata    int
	UnresolvedLinkKinds int
}

// Parser turns an event stream into a domain.Dict. A Parser handles exactly
// one document and must not be used concurrently.
type Parser struct {
	src   EventSource
	opts  Options
	state parsingState
	dict  *domain.Dict
	index *referenceIndex
	cur   builder
	stats Stats
	last  Event
	used  bool
}

// NewParser creates a parser reading events from src.
func NewParser(src EventSource, opts Options) *Parser {
	return &Parser{
		src:   src,
		opts:  opts,
		state: stateStart,
		dict:  &domain.Dict{},
		index: newReferenceIndex(),
	}
}

// Parse reads a dictionary document from r.
func Parse(ctx context.Context, r io.Reader, opts Options) (ParseResult, error) {
	return NewParser(NewXMLSource(r), opts).Parse(ctx)
}

// Parse consumes the event source to the end. On failure it returns a
// *ParseError and no dictionary.
func (p *Parser) Parse(ctx context.Context) (ParseResult, error) {
	if p.used {
		return ParseResult{}, errParserUsed
	}
	p.used = true

	for {
		if p.stats.Events%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return ParseResult{}, p.fail(err)
			}
		}

		ev, err := p.src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, ErrEncoding) {
			return ParseResult{}, p.fail(err)
		}
		if err != nil {
			return ParseResult{}, p.fail(fmt.Errorf("%w: %w", ErrTokenizer, err))
		}
		p.stats.Events++
		p.last = ev

		if err := p.handle(ev); err != nil {
			return ParseResult{}, p.fail(err)
		}
	}

	if p.state != stateEnd {
		return ParseResult{}, p.fail(fmt.Errorf("%w: stopped inside %s", ErrTruncated, p.state))
	}
	return ParseResult{Dict: p.dict, Stats: p.stats}, nil
}

func (p *Parser) fail(err error) error {
	return &ParseError{
		Line:   p.last.Line,
		Column: p.last.Column,
		State:  p.state.String(),
		Err:    err,
	}
}

func (p *Parser) handle(ev Event) error {
	switch ev.Kind {
	case EventStart:
		return p.start(ev)
	case EventEnd:
		return p.end(ev.Name)
	case EventEmpty:
		if err := p.start(ev); err != nil {
			return err
		}
		return p.end(ev.Name)
	case EventText:
		return p.text(ev.Text)
	}
	return fmt.Errorf("%w: event kind %d", ErrTokenizer, ev.Kind)
}

func (p *Parser) start(ev Event) error {
	switch (transition{p.state, ev.Name}) {
	case transition{stateStart, "dictionary"}:
		p.state = stateDictionary
		return p.openDictionary(ev)

	case transition{stateDictionary, "grammemes"}:
		p.state = stateGrammemes
		p.dict.Grammemes = nil
		p.index.resetGrammemes()
	case transition{stateGrammemes, "grammeme"}:
		p.state = stateGrammeme
		return p.openGrammeme(ev)
	case transition{stateGrammeme, "name"}:
		p.state = stateGrammemeName
	case transition{stateGrammeme, "alias"}:
		p.state = stateGrammemeAlias
	case transition{stateGrammeme, "description"}:
		p.state = stateGrammemeDescription

	case transition{stateDictionary, "restrictions"}:
		p.state = stateRestrictions
		p.dict.Restrictions = nil
	case transition{stateRestrictions, "restr"}:
		p.state = stateRestriction
		return p.openRestriction(ev)
	case transition{stateRestriction, "left"}:
		p.state = stateRestrictionLeft
		return p.openRestrictionSide(ev)
	case transition{stateRestriction, "right"}:
		p.state = stateRestrictionRight
		return p.openRestrictionSide(ev)

	case transition{stateDictionary, "lemmata"}:
		p.state = stateLemmata
		p.dict.Lemmata = nil
	case transition{stateLemmata, "lemma"}:
		p.state = stateLemma
		return p.openLemma(ev)
	case transition{stateLemma, "l"}:
		p.state = stateLemmaL
		return p.openLemmaHead(ev)
	case transition{stateLemma, "f"}:
		p.state = stateLemmaF
		return p.openForm(ev)
	case transition{stateLemmaL, "g"}:
		p.state = stateLemmaLGrammeme
		return p.appendGrammeme(ev, &p.cur.lemma.Grammemes)
	case transition{stateLemmaF, "g"}:
		p.state = stateLemmaFGrammeme
		return p.appendGrammeme(ev, &p.cur.form.Grammemes)

	case transition{stateDictionary, "link_types"}:
		p.state = stateLinkTypes
		p.dict.LinkKinds = nil
	case transition{stateLinkTypes, "type"}:
		p.state = stateLinkType
		return p.openLinkKind(ev)

	case transition{stateDictionary, "links"}:
		p.state = stateLinks
		p.dict.Links = nil
	case transition{stateLinks, "link"}:
		p.state = stateLink
		return p.openLink(ev)

	default:
		return fmt.Errorf("%w: opening <%s>", ErrUnexpectedTag, ev.Name)
	}
	return nil
}

func (p *Parser) end(name string) error {
	switch (transition{p.state, name}) {
	case transition{stateDictionary, "dictionary"}:
		p.state = stateEnd

	case transition{stateGrammemes, "grammemes"}:
		p.state = stateDictionary
	case transition{stateGrammeme, "grammeme"}:
		p.state = stateGrammemes
		p.finishGrammeme()
	case transition{stateGrammemeName, "name"},
		transition{stateGrammemeAlias, "alias"},
		transition{stateGrammemeDescription, "description"}:
		p.state = stateGrammeme

	case transition{stateRestrictions, "restrictions"}:
		p.state = stateDictionary
	case transition{stateRestriction, "restr"}:
		p.state = stateRestrictions
		p.finishRestriction()
	case transition{stateRestrictionLeft, "left"}:
		p.state = stateRestriction
		g, err := p.closeRestrictionSide()
		if err != nil {
			return err
		}
		p.cur.restriction.LeftGrammeme = g
	case transition{stateRestrictionRight, "right"}:
		p.state = stateRestriction
		g, err := p.closeRestrictionSide()
		if err != nil {
			return err
		}
		p.cur.restriction.RightGrammeme = g

	case transition{stateLemmata, "lemmata"}:
		p.state = stateDictionary
	case transition{stateLemma, "lemma"}:
		p.state = stateLemmata
		p.finishLemma()
	case transition{stateLemmaL, "l"}:
		p.state = stateLemma
	case transition{stateLemmaF, "f"}:
		p.state = stateLemma
		p.finishForm()
	case transition{stateLemmaLGrammeme, "g"}:
		p.state = stateLemmaL
	case transition{stateLemmaFGrammeme, "g"}:
		p.state = stateLemmaF

	case transition{stateLinkTypes, "link_types"}:
		p.state = stateDictionary
	case transition{stateLinkType, "type"}:
		p.state = stateLinkTypes
		p.finishLinkKind()

	case transition{stateLinks, "links"}:
		p.state = stateDictionary
	case transition{stateLink, "link"}:
		p.state = stateLinks
		p.finishLink()

	default:
		return fmt.Errorf("%w: closing </%s>", ErrUnexpectedTag, name)
	}
	return nil
}

// text routes character data by state alone. Text outside the
// text-bearing elements (indentation between tags) is ignored.
func (p *Parser) text(raw []byte) error {
	switch p.state {
	case stateGrammemeName, stateGrammemeAlias, stateGrammemeDescription,
		stateRestrictionLeft, stateRestrictionRight, stateLinkType:
	default:
		return nil
	}

	s, err := decodeString(raw)
	if err != nil {
		return err
	}

	switch p.state {
	case stateGrammemeName:
		p.cur.grammeme.Name += s
	case stateGrammemeAlias:
		p.cur.grammeme.Alias += s
	case stateGrammemeDescription:
		p.cur.grammeme.Description += s
	case stateRestrictionLeft, stateRestrictionRight:
		p.cur.text.WriteString(s)
	case stateLinkType:
		p.cur.linkKind.Name += s
	}
	return nil
}
