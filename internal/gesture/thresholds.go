package gesture

import "time"

// Gesture thresholds. Distances are in normalized frame units.
const (
	// PinchThreshold is the index-thumb distance below which a pinch clicks.
	PinchThreshold = 0.05
	// TwoFingerThreshold is the middle-thumb distance below which a right click fires.
	TwoFingerThreshold = 0.04
	// BlinkThreshold is the eye gap below which a blink clicks.
	BlinkThreshold = 0.006
	// ScrollThreshold is the signed eye gap beyond which a frame counts toward a scroll.
	ScrollThreshold = 0.01
	// ScrollCooldown is the number of consecutive qualifying frames per scroll event.
	ScrollCooldown = 5
	// ScrollAmount is the wheel distance of one scroll event.
	ScrollAmount = 5
	// MinClickInterval is reserved. No click path consults it; pinch clicks
	// are debounced by the drag latch alone.
	MinClickInterval = 800 * time.Millisecond
)

// Thresholds groups the values the Engine classifies against.
type Thresholds struct {
	Pinch          float64
	TwoFinger      float64
	Blink          float64
	Scroll         float64
	ScrollCooldown int

	// MinClickInterval is carried for reporting only; see the constant.
	MinClickInterval time.Duration
}

// DefaultThresholds returns the compiled-in thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Pinch:            PinchThreshold,
		TwoFinger:        TwoFingerThreshold,
		Blink:            BlinkThreshold,
		Scroll:           ScrollThreshold,
		ScrollCooldown:   ScrollCooldown,
		MinClickInterval: MinClickInterval,
	}
}
