// Package track implements the per-frame hand tracking pass over a video.
package track

import "github.com/ayusman/mudra/internal/detector"

// Hand is the handedness classification assigned per detected hand.
type Hand string

// Handedness labels as reported by the detector.
const (
	HandLeft  Hand = "Left"
	HandRight Hand = "Right"
)

// Record is one observation of a single hand in a single frame.
// Records are append-only during tracking and never mutated afterwards.
type Record struct {
	// Frame is the 1-based index into the video's frame sequence.
	Frame int

	// Hand is the detector's handedness classification.
	Hand Hand

	// Wrist is the hand's representative position: x/y normalized to
	// [0,1], z a relative depth on the detector's scale.
	Wrist detector.Point3D

	// LandmarkCount is the number of skeletal points detected for the
	// hand. Constant per detector configuration; kept for diagnostics.
	LandmarkCount int
}
