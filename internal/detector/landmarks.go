// Package detector provides the landmark source interfaces and types consumed by
// the gesture engine.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Face mesh landmark indices used by eye control. The mesh must be produced
// with iris refinement enabled, which extends it to 478 points.
const (
	LeftEyeTop       = 145
	LeftEyeBottom    = 159
	FaceRightIris    = 474
	NumFaceLandmarks = 478
	minFaceLandmarks = FaceRightIris + 1
)

// Point3D represents a normalized landmark. X and Y are in [0,1] relative to
// the frame dimensions; Z is relative depth and may be zero.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// FaceLandmarks represents one face mesh.
type FaceLandmarks struct {
	Points []Point3D `json:"points"`
	Score  float64   `json:"score"`
}

// Point returns the landmark at index i and whether it exists.
func (f *FaceLandmarks) Point(i int) (Point3D, bool) {
	if f == nil || i < 0 || i >= len(f.Points) {
		return Point3D{}, false
	}
	return f.Points[i], true
}

// HasEyes reports whether the mesh is long enough to carry every landmark
// eye control reads.
func (f *FaceLandmarks) HasEyes() bool {
	return f != nil && len(f.Points) >= minFaceLandmarks
}

// Landmarks is everything the detector found in one frame. Either slice may
// be empty.
type Landmarks struct {
	Hands []HandLandmarks `json:"hands"`
	Faces []FaceLandmarks `json:"faces"`
}

// Empty reports whether no hand and no face was detected.
func (l Landmarks) Empty() bool {
	return len(l.Hands) == 0 && len(l.Faces) == 0
}
