package video

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// ErrWriterClosed is returned when writing to a closed Writer.
var ErrWriterClosed = errors.New("video writer is closed")

// Writer encodes frames to an mp4 file at the source's frame rate and size.
// It serves as the rendering sink for annotated tracking output.
type Writer struct {
	writer *gocv.VideoWriter
	closed bool
}

// NewWriter creates an mp4v encoder writing to path with the given metadata.
func NewWriter(path string, meta Meta) (*Writer, error) {
	fps := meta.FPS
	if fps <= 0 {
		// VideoWriter refuses a zero rate; fall back to a nominal one.
		fps = 30
	}

	w, err := gocv.VideoWriterFile(path, "mp4v", fps, meta.Width, meta.Height, true)
	if err != nil {
		return nil, fmt.Errorf("create video writer %s: %w", path, err)
	}

	return &Writer{writer: w}, nil
}

// Write encodes a single frame.
func (w *Writer) Write(frame *gocv.Mat) error {
	if w.closed {
		return ErrWriterClosed
	}
	return w.writer.Write(*frame)
}

// Close finalizes the output file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.writer.Close()
}
