package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// Results can either be fixed for every frame or queued per frame to
// script a whole video pass.
type MockDetector struct {
	hands  []HandLandmarks
	queue  [][]HandLandmarks
	errs   map[int]error
	calls  int
	err    error
	closed bool
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{errs: make(map[int]error)}
}

// SetHands sets the hands returned by every Detect call once the queue
// is exhausted.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// QueueHands appends a per-frame result. Each Detect call consumes one
// queued entry before falling back to the fixed hands.
func (m *MockDetector) QueueHands(hands []HandLandmarks) {
	m.queue = append(m.queue, hands)
}

// SetError sets the error that will be returned by every Detect call.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// FailAt makes the Detect call for the given 1-based invocation return err.
func (m *MockDetector) FailAt(call int, err error) {
	m.errs[call] = err
}

// Calls returns the number of Detect invocations so far.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.calls++
	if err, ok := m.errs[m.calls]; ok {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		hands := m.queue[0]
		m.queue = m.queue[1:]
		return hands, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (m *MockDetector) Closed() bool {
	return m.closed
}

// HandAt returns a full 21-point HandLandmarks with the wrist at the given
// position. The remaining landmarks are laid out in a plausible open-palm
// arrangement relative to the wrist so drawing code has real geometry to
// work with.
func HandAt(handedness string, x, y, z float64) HandLandmarks {
	lm := HandLandmarks{
		Handedness: handedness,
		Score:      0.95,
	}

	// Offsets from the wrist for an open palm, roughly to MediaPipe scale.
	offsets := [NumLandmarks]Point3D{
		{0, 0, 0},                // Wrist
		{0.05, -0.05, 0.02},      // ThumbCMC
		{0.12, -0.10, 0.03},      // ThumbMCP
		{0.18, -0.15, 0.03},      // ThumbIP
		{0.23, -0.20, 0.03},      // ThumbTip
		{0.05, -0.12, 0},         // IndexMCP
		{0.07, -0.25, 0},         // IndexPIP
		{0.08, -0.35, 0},         // IndexDIP
		{0.08, -0.45, 0},         // IndexTip
		{0.00, -0.14, 0},         // MiddleMCP
		{0.00, -0.28, 0},         // MiddlePIP
		{0.00, -0.40, 0},         // MiddleDIP
		{0.00, -0.52, 0},         // MiddleTip
		{-0.05, -0.12, 0},        // RingMCP
		{-0.07, -0.25, 0},        // RingPIP
		{-0.08, -0.35, 0},        // RingDIP
		{-0.08, -0.45, 0},        // RingTip
		{-0.10, -0.08, -0.02},    // PinkyMCP
		{-0.13, -0.18, -0.05},    // PinkyPIP
		{-0.15, -0.28, -0.04},    // PinkyDIP
		{-0.16, -0.38, -0.02},    // PinkyTip
	}

	for i, off := range offsets {
		lm.Points[i] = Point3D{X: x + off.X, Y: y + off.Y, Z: z + off.Z}
	}

	return lm
}
