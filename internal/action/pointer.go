// Package action injects the pointer events produced by the gesture engine
// into the operating system.
package action

import (
	"errors"
	"math"
)

// ScreenMargin is the distance in pixels kept between the cursor and every
// screen edge. Parking the cursor on an edge or corner trips OS and toolkit
// fail-safes.
const ScreenMargin = 10

// ErrFailSafe is returned when a move targets the fail-safe margin.
var ErrFailSafe = errors.New("cursor target inside fail-safe margin")

// Pointer defines the OS automation primitives the dispatcher drives.
type Pointer interface {
	// MoveTo moves the cursor to absolute screen pixel coordinates.
	MoveTo(x, y int) error
	Click() error
	RightClick() error
	// Scroll turns the wheel; positive amounts scroll up.
	Scroll(amount int) error
	// ScreenSize returns the primary screen size in pixels.
	ScreenSize() (width, height int)
}

// Clamp converts a normalized point to screen pixels inside
// [ScreenMargin, size-ScreenMargin] on both axes. NaN maps to the low edge
// and infinities to the nearest edge.
func Clamp(x, y float64, width, height int) (int, int) {
	return clampAxis(x, width), clampAxis(y, height)
}

func clampAxis(v float64, size int) int {
	lo, hi := ScreenMargin, size-ScreenMargin
	if hi < lo {
		// Screen narrower than both margins; the centre is the only safe spot.
		return size / 2
	}
	if math.IsNaN(v) {
		return lo
	}

	p := float64(size) * v
	if p < float64(lo) {
		return lo
	}
	if p > float64(hi) {
		return hi
	}
	return int(p)
}

// inBounds reports whether (x, y) keeps clear of the fail-safe margin.
func inBounds(x, y, width, height int) bool {
	return x >= ScreenMargin && x <= width-ScreenMargin &&
		y >= ScreenMargin && y <= height-ScreenMargin
}
