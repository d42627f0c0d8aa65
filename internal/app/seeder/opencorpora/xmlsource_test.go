package opencorpora

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
)

func collect(t *testing.T, src EventSource) []Event {
	t.Helper()
	var events []Event
	for {
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			return events
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		events = append(events, ev)
	}
}

func TestXMLSource_Events(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
<!-- header -->
<dictionary version="1"><g v="NOUN"/><name>a&lt;b</name></dictionary>`

	events := collect(t, NewXMLSource(strings.NewReader(doc)))

	want := []struct {
		kind EventKind
		name string
		text string
	}{
		{kind: EventText, text: "\n"},
		{kind: EventText, text: "\n"},
		{kind: EventStart, name: "dictionary"},
		{kind: EventStart, name: "g"},
		{kind: EventEnd, name: "g"},
		{kind: EventStart, name: "name"},
		{kind: EventText, text: "a<b"},
		{kind: EventEnd, name: "name"},
		{kind: EventEnd, name: "dictionary"},
	}

	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, w := range want {
		ev := events[i]
		if ev.Kind != w.kind || ev.Name != w.name || string(ev.Text) != w.text {
			t.Errorf("event %d = {%s %q %q}, want {%s %q %q}", i, ev.Kind, ev.Name, ev.Text, w.kind, w.name, w.text)
		}
	}

	root := events[2]
	if v, ok := root.attr("version"); !ok || string(v) != "1" {
		t.Errorf("version attr = %q, %v", v, ok)
	}
	if root.Line != 3 {
		t.Errorf("root line = %d, want 3", root.Line)
	}
}

func TestXMLSource_PrefixedNames(t *testing.T) {
	events := collect(t, NewXMLSource(strings.NewReader(`<oc:dictionary xmlns:oc="urn:x" oc:version="1"></oc:dictionary>`)))
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Name != "oc:dictionary" {
		t.Errorf("name = %q, want oc:dictionary", events[0].Name)
	}
	if _, ok := events[0].attr("oc:version"); !ok {
		t.Error("prefixed attribute lost its prefix")
	}
	if _, ok := events[0].attr("version"); ok {
		t.Error("prefixed attribute matched unprefixed name")
	}
}

func TestXMLSource_TruncatedInputEndsWithEOF(t *testing.T) {
	src := NewXMLSource(strings.NewReader(`<dictionary><grammemes>`))
	events := collect(t, src)
	if len(events) != 2 {
		t.Errorf("got %d events, want 2", len(events))
	}
}

func TestXMLSource_TextIsCopied(t *testing.T) {
	src := NewXMLSource(strings.NewReader(`<a>one</a><b>two</b>`))
	events := collect(t, src)
	if string(events[1].Text) != "one" || string(events[4].Text) != "two" {
		t.Errorf("text events = %q, %q", events[1].Text, events[4].Text)
	}
}

func TestEventKind_String(t *testing.T) {
	for kind, want := range map[EventKind]string{
		EventStart: "start",
		EventEnd:   "end",
		EventEmpty: "empty",
		EventText:  "text",
		0:          "unknown",
	} {
		if got := kind.String(); got != want {
			t.Errorf("EventKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestXMLSource_InvalidUTF8IsEncodingError(t *testing.T) {
	src := NewXMLSource(strings.NewReader("<dictionary><name>\xff</name></dictionary>"))

	var err error
	for err == nil {
		_, err = src.Next()
	}

	if !errors.Is(err, ErrEncoding) {
		t.Fatalf("error = %v, want ErrEncoding", err)
	}
	var syntaxErr *xml.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Errorf("*xml.SyntaxError not reachable from %v", err)
	}
}

func TestXMLSource_MalformedMarkupIsNotEncodingError(t *testing.T) {
	src := NewXMLSource(strings.NewReader("<dictionary><<"))

	var err error
	for err == nil {
		_, err = src.Next()
	}

	if errors.Is(err, ErrEncoding) {
		t.Errorf("error = %v, should not be ErrEncoding", err)
	}
}
