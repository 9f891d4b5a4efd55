// Package overlay draws tracking markers onto camera frames and shows them
// in a preview window.
package overlay

import (
	"image"
	"image/color"
	"math"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/nayana/internal/gesture"
)

// Marker and label styling.
const (
	MarkerRadius   = 5
	LabelFontScale = 1.0
	LabelThickness = 2
)

var (
	// HandColor marks the index fingertip.
	HandColor = color.RGBA{R: 255, A: 255}
	// EyeColor marks the tracked iris.
	EyeColor = color.RGBA{B: 255, A: 255}
	// LabelColor is used for the mode label.
	LabelColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	// LabelOrigin is the baseline of the mode label in pixels.
	LabelOrigin = image.Pt(10, 30)
)

// Renderer shows annotated frames and reports key presses.
type Renderer interface {
	Show(frame *gocv.Mat)
	// PollKey waits up to d for a key press and returns its code, or -1.
	PollKey(d time.Duration) int
	Close() error
}

// ToPixel converts a normalized landmark coordinate to a pixel position
// inside a frame of the given size.
func ToPixel(x, y float64, cols, rows int) image.Point {
	return image.Pt(scaleAxis(x, cols), scaleAxis(y, rows))
}

func scaleAxis(v float64, size int) int {
	if size <= 0 {
		return 0
	}
	if math.IsNaN(v) || v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p := int(v * float64(size))
	if p >= size {
		p = size - 1
	}
	return p
}

// MarkerColor returns the marker color for a signal source.
func MarkerColor(src gesture.Source) color.RGBA {
	if src == gesture.SourceEye {
		return EyeColor
	}
	return HandColor
}

// DrawMarker draws a filled dot at the normalized position (x, y).
func DrawMarker(frame *gocv.Mat, x, y float64, src gesture.Source) {
	if frame == nil || frame.Empty() {
		return
	}
	center := ToPixel(x, y, frame.Cols(), frame.Rows())
	gocv.Circle(frame, center, MarkerRadius, MarkerColor(src), -1)
}

// ModeLabel returns the text shown for a mode, e.g. "Mode: H".
func ModeLabel(m gesture.Mode) string {
	return "Mode: " + m.String()
}

// DrawModeLabel writes the current mode in the top left corner.
func DrawModeLabel(frame *gocv.Mat, m gesture.Mode) {
	if frame == nil || frame.Empty() {
		return
	}
	gocv.PutText(frame, ModeLabel(m), LabelOrigin, gocv.FontHersheySimplex, LabelFontScale, LabelColor, LabelThickness)
}
