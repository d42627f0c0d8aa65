package opencorpora

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/antage/opencorpora/internal/domain"
)

// decodeString validates raw attribute or text bytes as UTF-8.
func decodeString(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: %q", ErrEncoding, b)
	}
	return string(b), nil
}

// decodeUint parses a non-negative base-10 integer.
func decodeUint(b []byte) (uint64, error) {
	s, err := decodeString(b)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a non-negative integer", ErrFormat, s)
	}
	return n, nil
}

// decodeOptional returns nil for an empty value.
func decodeOptional(b []byte) (*string, error) {
	if len(b) == 0 {
		return nil, nil
	}
	s, err := decodeString(b)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func decodeRestrictionKind(b []byte) (domain.RestrictionKind, error) {
	s, err := decodeString(b)
	if err != nil {
		return "", err
	}
	kind := domain.RestrictionKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: invalid restriction kind %q", ErrFormat, s)
	}
	return kind, nil
}

// decodeRestrictionScope reads the required "type" attribute of a
// restriction side.
func decodeRestrictionScope(ev Event) (domain.RestrictionScope, error) {
	raw, ok := ev.attr("type")
	if !ok {
		return "", fmt.Errorf("%w: <%s> has no \"type\"", ErrMissingAttribute, ev.Name)
	}
	s, err := decodeString(raw)
	if err != nil {
		return "", err
	}
	scope := domain.RestrictionScope(s)
	if !scope.IsValid() {
		return "", fmt.Errorf("%w: invalid restriction scope %q", ErrFormat, s)
	}
	return scope, nil
}

// attr returns the value of the first attribute called name.
func (e Event) attr(name string) ([]byte, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}
