package gesture

import (
	"math"

	"github.com/ayusman/nayana/internal/detector"
)

// FrameSignals holds the scalar measurements derived from one frame.
type FrameSignals struct {
	Pinch     float64 // index tip to thumb tip
	TwoFinger float64 // middle tip to thumb tip
	Blink     float64 // absolute eye gap
	Scroll    float64 // signed eye gap; positive scrolls up
}

// PinchDistance returns the planar distance between the index and thumb tips.
func PinchDistance(indexTip, thumbTip detector.Point3D) float64 {
	return distance2D(indexTip, thumbTip)
}

// TwoFingerDistance returns the planar distance between the middle and thumb tips.
func TwoFingerDistance(middleTip, thumbTip detector.Point3D) float64 {
	return distance2D(middleTip, thumbTip)
}

// BlinkDistance returns the vertical gap between the two eye landmarks.
func BlinkDistance(eyeTop, eyeBottom detector.Point3D) float64 {
	return math.Abs(ScrollDelta(eyeTop, eyeBottom))
}

// ScrollDelta returns the signed vertical gap between the two eye landmarks.
func ScrollDelta(eyeTop, eyeBottom detector.Point3D) float64 {
	return eyeTop.Y - eyeBottom.Y
}

// HandSignals computes the hand half of FrameSignals.
func HandSignals(hand *detector.HandLandmarks) FrameSignals {
	thumb := hand.Points[detector.ThumbTip]
	return FrameSignals{
		Pinch:     PinchDistance(hand.Points[detector.IndexTip], thumb),
		TwoFinger: TwoFingerDistance(hand.Points[detector.MiddleTip], thumb),
	}
}

// FaceSignals computes the eye half of FrameSignals. It reports false when
// the mesh lacks the eye landmarks.
func FaceSignals(face *detector.FaceLandmarks) (FrameSignals, bool) {
	if !face.HasEyes() {
		return FrameSignals{}, false
	}
	top, _ := face.Point(detector.LeftEyeTop)
	bottom, _ := face.Point(detector.LeftEyeBottom)
	return FrameSignals{
		Blink:  BlinkDistance(top, bottom),
		Scroll: ScrollDelta(top, bottom),
	}, true
}

// distance2D ignores Z; depth from a single camera is too noisy to help.
func distance2D(a, b detector.Point3D) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
