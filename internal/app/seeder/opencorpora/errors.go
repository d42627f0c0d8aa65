package opencorpora

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the parser is a *ParseError wrapping
// one of these, so callers can branch with errors.Is.
var (
	ErrEncoding         = errors.New("invalid utf-8")
	ErrFormat           = errors.New("invalid format")
	ErrMissingAttribute = fmt.Errorf("%w: missing attribute", ErrFormat)
	ErrUnexpectedTag    = errors.New("unexpected tag")
	ErrNoSuchGrammeme   = errors.New("no such grammeme")
	ErrNoSuchLemma      = errors.New("no such lemma")
	ErrNoSuchLinkKind   = errors.New("no such link kind")
	ErrTruncated        = errors.New("unexpected end of document")
	ErrTokenizer        = errors.New("malformed xml")
)

var errParserUsed = errors.New("parser already used")

// ParseError reports where in the document a parse failed.
type ParseError struct {
	Line   int
	Column int
	State  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("opencorpora: %s: %v", e.State, e.Err)
	}
	return fmt.Sprintf("opencorpora: line %d, column %d (%s): %v", e.Line, e.Column, e.State, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ReferenceError is returned when a grammeme name, lemma id or (in strict
// mode) link kind id does not match any entity declared earlier.
type ReferenceError struct {
	Entity string
	Key    string
	kind   error
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("no such %s: %q", e.Entity, e.Key)
}

// Unwrap returns ErrNoSuchGrammeme, ErrNoSuchLemma or ErrNoSuchLinkKind.
func (e *ReferenceError) Unwrap() error { return e.kind }

func newReferenceError(kind error, entity, key string) *ReferenceError {
	return &ReferenceError{Entity: entity, Key: key, kind: kind}
}
