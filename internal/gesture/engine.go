// Package gesture turns per-frame landmark geometry into debounced pointer
// events.
package gesture

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ayusman/nayana/internal/detector"
)

// Engine classifies landmarks into events. It holds no per-session state;
// everything that persists across frames lives in the Session it is given.
type Engine struct {
	thresholds Thresholds
	now        func() time.Time
}

// NewEngine creates an Engine classifying against t.
func NewEngine(t Thresholds) *Engine {
	return &Engine{
		thresholds: t,
		now:        time.Now,
	}
}

// Thresholds returns the thresholds the engine classifies against.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Process runs every rule the session mode allows over one frame of
// landmarks. Hands are handled in detection order, then the first face.
// A frame without landmarks returns nil and leaves s untouched.
func (e *Engine) Process(s *Session, lm detector.Landmarks) []Event {
	if s == nil {
		return nil
	}

	var events []Event
	if s.Mode.Hands() {
		for i := range lm.Hands {
			events = append(events, e.HandleHand(s, &lm.Hands[i])...)
		}
	}
	if s.Mode.Eyes() && len(lm.Faces) > 0 {
		events = append(events, e.HandleFace(s, &lm.Faces[0])...)
	}
	return events
}

// HandleHand applies the hand rules: cursor tracking on the index tip,
// click on the pinch rising edge and right click while the middle finger
// touches the thumb.
func (e *Engine) HandleHand(s *Session, hand *detector.HandLandmarks) []Event {
	if s == nil || hand == nil {
		return nil
	}

	sig := HandSignals(hand)
	pointer := hand.Points[detector.IndexTip]

	logrus.WithFields(logrus.Fields{
		"pinch":      sig.Pinch,
		"two_finger": sig.TwoFinger,
	}).Debug("hand signals")

	events := []Event{newEvent(CursorMove, SourceHand, pointer)}

	if e.pinch(s, sig.Pinch) {
		s.LastClick = e.now()
		events = append(events, newEvent(Click, SourceHand, pointer))
	}

	// Fires on every frame the fingers stay together.
	if sig.TwoFinger < e.thresholds.TwoFinger {
		events = append(events, newEvent(RightClick, SourceHand, pointer))
	}

	return events
}

// HandleFace applies the eye rules: cursor tracking on the iris landmark,
// click on blink and scroll once per cooldown run of eye movement.
func (e *Engine) HandleFace(s *Session, face *detector.FaceLandmarks) []Event {
	if s == nil {
		return nil
	}

	sig, ok := FaceSignals(face)
	if !ok {
		return nil
	}
	pointer, _ := face.Point(detector.FaceRightIris)

	logrus.WithFields(logrus.Fields{
		"blink":  sig.Blink,
		"scroll": sig.Scroll,
	}).Debug("eye signals")

	events := []Event{newEvent(CursorMove, SourceEye, pointer)}

	// Fires on every frame the eye stays shut.
	if sig.Blink < e.thresholds.Blink {
		s.LastClick = e.now()
		events = append(events, newEvent(Click, SourceEye, pointer))
	}

	if kind, fired := e.scroll(s, sig.Scroll); fired {
		events = append(events, newEvent(kind, SourceEye, pointer))
	}

	return events
}

// pinch advances the drag latch and reports whether this frame clicks.
func (e *Engine) pinch(s *Session, distance float64) bool {
	if distance >= e.thresholds.Pinch {
		s.Dragging = false
		return false
	}
	if s.Dragging {
		return false
	}
	s.Dragging = true
	return true
}

// scroll advances the scroll run and reports the event to fire, if any.
func (e *Engine) scroll(s *Session, delta float64) (EventKind, bool) {
	var dir int
	switch {
	case delta > e.thresholds.Scroll:
		dir = 1
	case delta < -e.thresholds.Scroll:
		dir = -1
	default:
		s.ScrollCount = 0
		s.ScrollDirection = 0
		return 0, false
	}

	if dir != s.ScrollDirection {
		s.ScrollCount = 0
		s.ScrollDirection = dir
	}
	s.ScrollCount++

	if s.ScrollCount < e.thresholds.ScrollCooldown {
		return 0, false
	}
	s.ScrollCount = 0

	if dir > 0 {
		return ScrollUp, true
	}
	return ScrollDown, true
}

func newEvent(kind EventKind, source Source, p detector.Point3D) Event {
	return Event{Kind: kind, Source: source, X: p.X, Y: p.Y}
}
