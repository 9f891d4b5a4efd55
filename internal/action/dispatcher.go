package action

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ayusman/nayana/internal/gesture"
)

// Dispatcher translates gesture events into Pointer calls.
type Dispatcher struct {
	pointer      Pointer
	width        int
	height       int
	scrollAmount int
}

// NewDispatcher creates a Dispatcher. Each scroll event turns the wheel by
// scrollAmount.
func NewDispatcher(p Pointer, scrollAmount int) *Dispatcher {
	w, h := p.ScreenSize()
	return &Dispatcher{
		pointer:      p,
		width:        w,
		height:       h,
		scrollAmount: scrollAmount,
	}
}

// Dispatch applies every event in order. A failing event is logged and
// skipped; it never stops the rest. It returns the events that were applied.
func (d *Dispatcher) Dispatch(events []gesture.Event) []gesture.Event {
	var applied []gesture.Event
	for _, ev := range events {
		if err := d.Apply(ev); err != nil {
			logrus.WithFields(logrus.Fields{
				"event":  ev.Kind.String(),
				"source": ev.Source.String(),
			}).WithError(err).Warn("Pointer action failed")
			continue
		}
		applied = append(applied, ev)
	}
	return applied
}

// Target returns the clamped screen position an event refers to.
func (d *Dispatcher) Target(ev gesture.Event) (int, int) {
	return Clamp(ev.X, ev.Y, d.width, d.height)
}

// Apply performs a single event.
func (d *Dispatcher) Apply(ev gesture.Event) error {
	switch ev.Kind {
	case gesture.CursorMove:
		return d.pointer.MoveTo(d.Target(ev))
	case gesture.Click:
		logrus.WithField("source", ev.Source.String()).Info("Left click")
		return d.pointer.Click()
	case gesture.RightClick:
		logrus.WithField("source", ev.Source.String()).Info("Right click")
		return d.pointer.RightClick()
	case gesture.ScrollUp:
		logrus.Info("Scrolling up")
		return d.pointer.Scroll(d.scrollAmount)
	case gesture.ScrollDown:
		logrus.Info("Scrolling down")
		return d.pointer.Scroll(-d.scrollAmount)
	}
	return fmt.Errorf("unknown event kind %v", ev.Kind)
}
