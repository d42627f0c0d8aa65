package opencorpora

import (
	"strconv"
	"strings"

	"github.com/antage/opencorpora/internal/domain"
)

// builder holds the entities under construction. Each open element gets a
// fresh value; closing it moves the value into the dictionary and clears the
// slot, so nothing leaks from one sibling into the next.
type builder struct {
	grammeme    *domain.Grammeme
	restriction *domain.Restriction
	lemma       *domain.Lemma
	form        *domain.Form
	linkKind    *domain.LinkKind
	link        *domain.Link

	// text collects the body of the open <left> or <right>.
	text strings.Builder
}

func (p *Parser) openDictionary(ev Event) error {
	var err error
	for _, a := range ev.Attrs {
		switch a.Name {
		case "version":
			p.dict.Version, err = decodeString(a.Value)
		case "revision":
			p.dict.Revision, err = decodeUint(a.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) openGrammeme(ev Event) error {
	g := &domain.Grammeme{}
	if raw, ok := ev.attr("parent"); ok {
		parent, err := decodeOptional(raw)
		if err != nil {
			return err
		}
		g.Parent = parent
	}
	p.cur.grammeme = g
	return nil
}

func (p *Parser) finishGrammeme() {
	g := p.cur.grammeme
	p.cur.grammeme = nil
	p.dict.Grammemes = append(p.dict.Grammemes, g)
	if p.index.addGrammeme(g) {
		p.stats.DuplicateGrammemes++
	}
}

func (p *Parser) openRestriction(ev Event) error {
	r := domain.NewRestriction()
	var err error
	for _, a := range ev.Attrs {
		switch a.Name {
		case "type":
			r.Kind, err = decodeRestrictionKind(a.Value)
		case "auto":
			r.Auto, err = decodeUint(a.Value)
		}
		if err != nil {
			return err
		}
	}
	p.cur.restriction = &r
	return nil
}

// openRestrictionSide reads the scope of <left> or <right>; the grammeme is
// resolved from the element body when it closes.
func (p *Parser) openRestrictionSide(ev Event) error {
	scope, err := decodeRestrictionScope(ev)
	if err != nil {
		return err
	}
	if ev.Name == "left" {
		p.cur.restriction.LeftScope = scope
	} else {
		p.cur.restriction.RightScope = scope
	}
	p.cur.text.Reset()
	return nil
}

// closeRestrictionSide resolves the collected body. An empty body means the
// side has no grammeme.
func (p *Parser) closeRestrictionSide() (*domain.Grammeme, error) {
	name := p.cur.text.String()
	p.cur.text.Reset()
	if name == "" {
		return nil, nil
	}
	return p.index.grammeme([]byte(name))
}

func (p *Parser) finishRestriction() {
	r := p.cur.restriction
	p.cur.restriction = nil
	p.dict.Restrictions = append(p.dict.Restrictions, *r)
}

func (p *Parser) openLemma(ev Event) error {
	l := &domain.Lemma{}
	var err error
	for _, a := range ev.Attrs {
		switch a.Name {
		case "id":
			l.ID, err = decodeUint(a.Value)
		case "rev":
			l.Revision, err = decodeUint(a.Value)
		}
		if err != nil {
			return err
		}
	}
	p.cur.lemma = l
	return nil
}

// openLemmaHead handles <l>, which carries the headword and lexeme-level
// grammemes. A repeated <l> replaces the grammemes of the previous one.
func (p *Parser) openLemmaHead(ev Event) error {
	p.cur.lemma.Grammemes = nil
	if raw, ok := ev.attr("t"); ok {
		word, err := decodeString(raw)
		if err != nil {
			return err
		}
		p.cur.lemma.Word = word
	}
	return nil
}

func (p *Parser) openForm(ev Event) error {
	f := &domain.Form{}
	if raw, ok := ev.attr("t"); ok {
		word, err := decodeString(raw)
		if err != nil {
			return err
		}
		f.Word = word
	}
	p.cur.form = f
	return nil
}

// appendGrammeme resolves the "v" attribute of <g> and appends the grammeme
// to dst. A <g> without "v" adds nothing.
func (p *Parser) appendGrammeme(ev Event, dst *[]*domain.Grammeme) error {
	raw, ok := ev.attr("v")
	if !ok {
		return nil
	}
	g, err := p.index.grammeme(raw)
	if err != nil {
		return err
	}
	*dst = append(*dst, g)
	return nil
}

func (p *Parser) finishForm() {
	f := p.cur.form
	p.cur.form = nil
	p.cur.lemma.Forms = append(p.cur.lemma.Forms, *f)
}

func (p *Parser) finishLemma() {
	l := p.cur.lemma
	p.cur.lemma = nil
	p.dict.Lemmata = append(p.dict.Lemmata, l)
	if p.index.addLemma(l) {
		p.stats.DuplicateLemmata++
	}
}

func (p *Parser) openLinkKind(ev Event) error {
	k := &domain.LinkKind{}
	if raw, ok := ev.attr("id"); ok {
		id, err := decodeUint(raw)
		if err != nil {
			return err
		}
		k.ID = id
	}
	p.cur.linkKind = k
	return nil
}

func (p *Parser) finishLinkKind() {
	k := p.cur.linkKind
	p.cur.linkKind = nil
	p.dict.LinkKinds = append(p.dict.LinkKinds, k)
}

func (p *Parser) openLink(ev Event) error {
	link := &domain.Link{}
	var err error
	for _, a := range ev.Attrs {
		switch a.Name {
		case "id":
			link.ID, err = decodeUint(a.Value)
		case "from":
			link.From, err = p.index.lemma(a.Value)
		case "to":
			link.To, err = p.index.lemma(a.Value)
		case "type":
			link.Kind, err = p.resolveLinkKind(a.Value)
		}
		if err != nil {
			return err
		}
	}
	p.cur.link = link
	return nil
}

// resolveLinkKind looks the id up among the link kinds declared so far.
// An unknown id yields a nil kind unless StrictLinkKinds is set.
func (p *Parser) resolveLinkKind(raw []byte) (*domain.LinkKind, error) {
	id, err := decodeUint(raw)
	if err != nil {
		return nil, err
	}
	kind := findLinkKind(p.dict.LinkKinds, id)
	if kind != nil {
		return kind, nil
	}
	if p.opts.StrictLinkKinds {
		return nil, newReferenceError(ErrNoSuchLinkKind, "link kind", strconv.FormatUint(id, 10))
	}
	p.stats.UnresolvedLinkKinds++
	return nil, nil
}

func (p *Parser) finishLink() {
	link := p.cur.link
	p.cur.link = nil
	p.dict.Links = append(p.dict.Links, *link)
}
