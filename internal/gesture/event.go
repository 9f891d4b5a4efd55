package gesture

import "fmt"

// EventKind identifies a discrete control action.
type EventKind int

const (
	CursorMove EventKind = iota
	Click
	RightClick
	ScrollUp
	ScrollDown
)

var eventKindNames = map[EventKind]string{
	CursorMove: "move",
	Click:      "click",
	RightClick: "right_click",
	ScrollUp:   "scroll_up",
	ScrollDown: "scroll_down",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// ParseEventKind is the inverse of EventKind.String.
func ParseEventKind(s string) (EventKind, error) {
	for k, name := range eventKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", s)
}

// Source identifies the modality an event came from.
type Source int

const (
	SourceHand Source = iota
	SourceEye
)

func (s Source) String() string {
	if s == SourceEye {
		return "eye"
	}
	return "hand"
}

// Event is one action produced by the Engine. X and Y carry the normalized
// pointer landmark the event was read from.
type Event struct {
	Kind   EventKind
	Source Source
	X      float64
	Y      float64
}

// Discrete reports whether the event is anything other than cursor tracking.
func (e Event) Discrete() bool {
	return e.Kind != CursorMove
}
