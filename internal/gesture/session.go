package gesture

import "time"

// Session is the mutable state of one control session. It belongs to the
// control loop, which passes it to every Engine call; nothing else writes it.
type Session struct {
	Mode Mode

	// Dragging is the pinch latch. It is set on the frame a pinch clicks and
	// cleared on the first frame the pinch opens again.
	Dragging bool

	// ScrollCount counts consecutive frames past the scroll threshold in
	// ScrollDirection (+1 up, -1 down, 0 no run).
	ScrollCount     int
	ScrollDirection int

	// LastClick is when the engine last emitted a Click.
	LastClick time.Time
}

// NewSession returns a session in ModeBoth with both latches clear.
func NewSession() *Session {
	return &Session{Mode: ModeBoth}
}

// SwitchMode applies a mode-switch key. Keys that are not mode keys leave the
// mode alone. It reports whether the mode changed.
func (s *Session) SwitchMode(key int) bool {
	m, ok := ModeForKey(key)
	if !ok || m == s.Mode {
		return false
	}
	s.Mode = m
	return true
}
