package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	landmarks Landmarks
	err       error
	calls     int
	closes    int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.landmarks.Hands = hands
}

// SetFaces sets the faces that will be returned by Detect.
func (m *MockDetector) SetFaces(faces []FaceLandmarks) {
	m.landmarks.Faces = faces
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Detect returns the pre-configured landmarks or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (Landmarks, error) {
	m.calls++
	if m.err != nil {
		return Landmarks{}, m.err
	}
	return m.landmarks, nil
}

// Close counts the call; the mock holds no resources.
func (m *MockDetector) Close() error {
	m.closes++
	return nil
}

// Closes returns how many times Close has been called.
func (m *MockDetector) Closes() int {
	return m.closes
}

// OpenHandLandmarks returns a right hand with every finger spread. No
// fingertip is close to the thumb, so it triggers no click.
func OpenHandLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended to the side
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	landmarks.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	landmarks.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	landmarks.Points[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	landmarks.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return landmarks
}

// PinchLandmarks returns an open hand with the thumb tip brought against the
// index fingertip.
func PinchLandmarks() HandLandmarks {
	landmarks := OpenHandLandmarks()
	landmarks.Points[ThumbIP] = Point3D{X: 0.62, Y: 0.45, Z: 0.02}
	landmarks.Points[ThumbTip] = Point3D{X: 0.59, Y: 0.37, Z: 0.01}
	return landmarks
}

// TwoFingerLandmarks returns an open hand with the thumb tip brought against
// the middle fingertip.
func TwoFingerLandmarks() HandLandmarks {
	landmarks := OpenHandLandmarks()
	landmarks.Points[ThumbIP] = Point3D{X: 0.55, Y: 0.40, Z: 0.02}
	landmarks.Points[ThumbTip] = Point3D{X: 0.51, Y: 0.30, Z: 0.01}
	return landmarks
}

// FaceWithEyes returns a refined face mesh with the pointer landmark at
// (x, y) and the left eye landmarks at the given heights. Every other point
// sits at the frame centre.
func FaceWithEyes(x, y, eyeTop, eyeBottom float64) FaceLandmarks {
	face := FaceLandmarks{
		Points: make([]Point3D, NumFaceLandmarks),
		Score:  0.9,
	}
	for i := range face.Points {
		face.Points[i] = Point3D{X: 0.5, Y: 0.5}
	}
	face.Points[FaceRightIris] = Point3D{X: x, Y: y}
	face.Points[LeftEyeTop] = Point3D{X: 0.45, Y: eyeTop}
	face.Points[LeftEyeBottom] = Point3D{X: 0.45, Y: eyeBottom}
	return face
}

// RestingFaceLandmarks returns a face whose eye gap neither blinks nor
// scrolls under the default thresholds.
func RestingFaceLandmarks() FaceLandmarks {
	return FaceWithEyes(0.52, 0.44, 0.400, 0.393)
}

// BlinkFaceLandmarks returns a face with the eye landmarks almost touching.
func BlinkFaceLandmarks() FaceLandmarks {
	return FaceWithEyes(0.52, 0.44, 0.400, 0.398)
}
