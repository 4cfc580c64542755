package input

import "github.com/gdamore/tcell/v2"

// EventKind classifies translated terminal events.
type EventKind int

const (
	EventNone EventKind = iota
	EventKey
	EventResize
	EventInterrupt
)

// Event is a terminal event reduced to what the application loop needs.
type Event struct {
	Kind   EventKind
	Key    Key
	Width  int
	Height int
}

// Translate converts a tcell event. Mouse, paste and focus events are
// reported as EventNone and ignored by the loop.
func Translate(ev tcell.Event) Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return Event{Kind: EventKey, Key: FromEvent(ev)}
	case *tcell.EventResize:
		w, h := ev.Size()
		return Event{Kind: EventResize, Width: w, Height: h}
	case *tcell.EventInterrupt:
		return Event{Kind: EventInterrupt}
	default:
		return Event{Kind: EventNone}
	}
}
