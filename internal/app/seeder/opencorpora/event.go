package opencorpora

// EventKind identifies a structural markup event.
type EventKind uint8

const (
	EventStart EventKind = iota + 1
	EventEnd
	// EventEmpty is a self-closing element with no separate end event.
	EventEmpty
	EventText
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventEnd:
		return "end"
	case EventEmpty:
		return "empty"
	case EventText:
		return "text"
	}
	return "unknown"
}

// Attr is a raw attribute. Value is undecoded; the parser validates it.
type Attr struct {
	Name  string
	Value []byte
}

// Event is one structural markup event. Name and Attrs are set for start,
// end and empty events; Text is set for text events. Line and Column point
// at the end of the event in the input, when the source knows them.
type Event struct {
	Kind   EventKind
	Name   string
	Attrs  []Attr
	Text   []byte
	Line   int
	Column int
}

// EventSource yields the events of one document in order.
// Next returns io.EOF once the input is exhausted.
type EventSource interface {
	Next() (Event, error)
}
