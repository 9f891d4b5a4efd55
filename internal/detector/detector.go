package detector

import "gocv.io/x/gocv"

// Detector defines the interface for landmark detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns the hand and face landmarks
	// found in it. A frame with nothing in it yields empty Landmarks, not an
	// error.
	Detect(frame *gocv.Mat) (Landmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for landmark detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// MaxFaces is the maximum number of face meshes to detect (default: 1).
	MaxFaces int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// RefineLandmarks enables iris refinement on the face mesh. Eye control
	// needs it: the pointer landmark only exists in the refined mesh.
	RefineLandmarks bool

	// ScriptPath overrides the lookup of the MediaPipe service script.
	ScriptPath string
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MaxFaces:        1,
		MinConfidence:   0.7,
		MinTrackingConf: 0.7,
		RefineLandmarks: true,
	}
}
