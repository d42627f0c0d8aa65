package opencorpora

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// invalidUTF8Msg is the message encoding/xml uses when text or an attribute
// value is not valid UTF-8.
const invalidUTF8Msg = "invalid UTF-8"

// XMLSource is the default EventSource, backed by encoding/xml.
//
// It uses RawToken, so start/end tag matching is left to the parser's state
// machine and a document cut off between tags ends with io.EOF instead of a
// tokenizer error. Comments, directives and processing instructions
// (including the XML declaration) are skipped.
type XMLSource struct {
	dec *xml.Decoder
}

// NewXMLSource creates an XMLSource reading from r.
func NewXMLSource(r io.Reader) *XMLSource {
	return &XMLSource{dec: xml.NewDecoder(r)}
}

// Next returns the next structural event.
func (s *XMLSource) Next() (Event, error) {
	for {
		tok, err := s.dec.RawToken()
		if err != nil {
			return Event{}, classify(err)
		}
		line, col := s.dec.InputPos()

		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make([]Attr, len(t.Attr))
			for i, a := range t.Attr {
				attrs[i] = Attr{Name: qualifiedName(a.Name), Value: []byte(a.Value)}
			}
			return Event{Kind: EventStart, Name: qualifiedName(t.Name), Attrs: attrs, Line: line, Column: col}, nil
		case xml.EndElement:
			return Event{Kind: EventEnd, Name: qualifiedName(t.Name), Line: line, Column: col}, nil
		case xml.CharData:
			// CharData is only valid until the next RawToken call.
			return Event{Kind: EventText, Text: bytes.Clone(t), Line: line, Column: col}, nil
		}
	}
}

// classify reports UTF-8 failures of the tokenizer as ErrEncoding, the same
// kind the decoder returns for events from other sources. The original
// *xml.SyntaxError stays reachable through errors.As.
func classify(err error) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) && syntaxErr.Msg == invalidUTF8Msg {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return err
}

// qualifiedName keeps the prefix so that a prefixed element never matches
// one of the dictionary's unprefixed names.
func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
