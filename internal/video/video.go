// Package video provides file-backed video decoding and encoding using
// GoCV (OpenCV).
package video

import (
	"errors"
	"fmt"
	"time"

	"gocv.io/x/gocv"
)

// ErrEndOfVideo is returned by ReadFrame when the source has no more frames.
var ErrEndOfVideo = errors.New("end of video")

// ErrDecodeFailed is returned by ReadFrame when a single frame could not be
// decoded. The caller may skip the frame and continue reading.
var ErrDecodeFailed = errors.New("frame decode failed")

// Meta describes a video stream.
type Meta struct {
	Width      int
	Height     int
	FPS        float64
	FrameCount int
}

// Duration returns the nominal video duration derived from the frame count
// and frame rate. Zero when the frame rate is unknown.
func (m Meta) Duration() time.Duration {
	if m.FPS <= 0 {
		return 0
	}
	return time.Duration(float64(m.FrameCount) / m.FPS * float64(time.Second))
}

// Source delivers decoded frames in video order.
type Source interface {
	// ReadFrame returns the next decoded frame. The caller owns the
	// returned Mat and must close it. Returns ErrEndOfVideo when the
	// stream is exhausted and ErrDecodeFailed for a single unreadable
	// frame.
	ReadFrame() (*gocv.Mat, error)

	// Meta returns the stream metadata.
	Meta() Meta

	// Close releases decoder resources.
	Close() error
}

// fileSource reads frames from a video file via gocv.VideoCapture.
type fileSource struct {
	capture *gocv.VideoCapture
	meta    Meta
}

// Open opens a video file for sequential frame reading.
func Open(path string) (Source, error) {
	capture, err := gocv.OpenVideoCapture(path)
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", path, err)
	}

	meta := Meta{
		Width:      int(capture.Get(gocv.VideoCaptureFrameWidth)),
		Height:     int(capture.Get(gocv.VideoCaptureFrameHeight)),
		FPS:        capture.Get(gocv.VideoCaptureFPS),
		FrameCount: int(capture.Get(gocv.VideoCaptureFrameCount)),
	}

	return &fileSource{capture: capture, meta: meta}, nil
}

// ReadFrame reads the next frame from the file.
func (s *fileSource) ReadFrame() (*gocv.Mat, error) {
	mat := gocv.NewMat()
	if ok := s.capture.Read(&mat); !ok {
		mat.Close()
		return nil, ErrEndOfVideo
	}

	if mat.Empty() {
		mat.Close()
		return nil, ErrDecodeFailed
	}

	return &mat, nil
}

// Meta returns the stream metadata.
func (s *fileSource) Meta() Meta {
	return s.meta
}

// Close releases the underlying capture.
func (s *fileSource) Close() error {
	return s.capture.Close()
}
