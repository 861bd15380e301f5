package video

import (
	"gocv.io/x/gocv"
)

// MockSource plays back pre-recorded frames for testing. Individual frame
// positions can be marked as decode failures to exercise skip handling.
type MockSource struct {
	frames []*gocv.Mat
	meta   Meta
	failAt map[int]bool
	index  int
	closed bool
}

// NewMockSource creates a MockSource over the given frames.
func NewMockSource(frames []*gocv.Mat, meta Meta) *MockSource {
	return &MockSource{
		frames: frames,
		meta:   meta,
		failAt: make(map[int]bool),
	}
}

// FailAt marks the 1-based frame position as a decode failure.
func (s *MockSource) FailAt(pos int) {
	s.failAt[pos] = true
}

// ReadFrame returns a clone of the next frame, ErrDecodeFailed for
// positions marked with FailAt, or ErrEndOfVideo past the last frame.
func (s *MockSource) ReadFrame() (*gocv.Mat, error) {
	if s.closed || s.index >= len(s.frames) {
		return nil, ErrEndOfVideo
	}

	s.index++
	if s.failAt[s.index] {
		return nil, ErrDecodeFailed
	}

	// Clone so the caller can close or draw on it freely.
	frame := s.frames[s.index-1].Clone()
	return &frame, nil
}

// Meta returns the configured metadata.
func (s *MockSource) Meta() Meta {
	return s.meta
}

// Close stops playback.
func (s *MockSource) Close() error {
	s.closed = true
	return nil
}

// MockSink collects written frame counts without encoding anything.
type MockSink struct {
	Frames int
	Err    error
}

// Write records one frame, returning the configured error if set.
func (s *MockSink) Write(frame *gocv.Mat) error {
	if s.Err != nil {
		return s.Err
	}
	s.Frames++
	return nil
}
