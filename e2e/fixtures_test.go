// Synthetic frames and scripted landmark sequences for the workflows.

package e2e

import (
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/nayana/internal/detector"
)

// BlankFrames creates n black 640x480 BGR frames. Close them with CloseAll.
func BlankFrames(n int) []*gocv.Mat {
	frames := make([]*gocv.Mat, n)
	for i := range frames {
		m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 480, 640, gocv.MatTypeCV8UC3)
		frames[i] = &m
	}
	return frames
}

// CloseAll closes every frame.
func CloseAll(frames []*gocv.Mat) {
	for _, f := range frames {
		f.Close()
	}
}

// PinchHand returns an open hand whose thumb tip sits d to the right of the
// index tip, so its pinch distance is exactly d. The middle finger stays
// clear of the thumb.
func PinchHand(d float64) detector.HandLandmarks {
	hand := detector.OpenHandLandmarks()
	tip := hand.Points[detector.IndexTip]
	hand.Points[detector.ThumbTip] = detector.Point3D{X: tip.X + d, Y: tip.Y}
	return hand
}

// PinchSequence returns one frame of landmarks per pinch distance.
func PinchSequence(distances ...float64) []detector.Landmarks {
	out := make([]detector.Landmarks, len(distances))
	for i, d := range distances {
		out[i] = detector.Landmarks{Hands: []detector.HandLandmarks{PinchHand(d)}}
	}
	return out
}

// GazeFace returns a face whose upper eyelid sits delta above the lower
// one. The blink distance equals |delta|, so small deltas also blink.
func GazeFace(delta float64) detector.FaceLandmarks {
	return detector.FaceWithEyes(0.3, 0.6, 0.4+delta, 0.4)
}

// ScrollSequence returns one frame of landmarks per scroll delta.
func ScrollSequence(deltas ...float64) []detector.Landmarks {
	out := make([]detector.Landmarks, len(deltas))
	for i, d := range deltas {
		out[i] = detector.Landmarks{Faces: []detector.FaceLandmarks{GazeFace(d)}}
	}
	return out
}

// ScriptedDetector replays a landmark sequence, one entry per Detect call,
// and detects nothing once the script runs out.
type ScriptedDetector struct {
	mu     sync.Mutex
	script []detector.Landmarks
	calls  int
	closed bool
}

// NewScriptedDetector creates a detector replaying script.
func NewScriptedDetector(script ...[]detector.Landmarks) *ScriptedDetector {
	var all []detector.Landmarks
	for _, s := range script {
		all = append(all, s...)
	}
	return &ScriptedDetector{script: all}
}

func (d *ScriptedDetector) Detect(*gocv.Mat) (detector.Landmarks, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.calls
	d.calls++
	if i >= len(d.script) {
		return detector.Landmarks{}, nil
	}
	return d.script[i], nil
}

func (d *ScriptedDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Len returns the script length.
func (d *ScriptedDetector) Len() int {
	return len(d.script)
}

// Closed reports whether Close was called.
func (d *ScriptedDetector) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
