package video

import (
	"errors"
	"testing"
	"time"

	"gocv.io/x/gocv"
)

func makeFrames(t *testing.T, n int) []*gocv.Mat {
	t.Helper()

	frames := make([]*gocv.Mat, n)
	for i := range frames {
		mat := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
		frames[i] = &mat
	}

	t.Cleanup(func() {
		for _, f := range frames {
			f.Close()
		}
	})

	return frames
}

func TestMeta_Duration(t *testing.T) {
	tests := []struct {
		name string
		meta Meta
		want time.Duration
	}{
		{"thirty fps", Meta{FPS: 30, FrameCount: 90}, 3 * time.Second},
		{"zero fps", Meta{FPS: 0, FrameCount: 90}, 0},
		{"zero frames", Meta{FPS: 30, FrameCount: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.meta.Duration(); got != tt.want {
				t.Errorf("Duration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMockSource_PlaysAllFrames(t *testing.T) {
	frames := makeFrames(t, 3)
	src := NewMockSource(frames, Meta{Width: 64, Height: 48, FPS: 30, FrameCount: 3})

	for i := 0; i < 3; i++ {
		frame, err := src.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: ReadFrame() error = %v", i+1, err)
		}
		frame.Close()
	}

	if _, err := src.ReadFrame(); !errors.Is(err, ErrEndOfVideo) {
		t.Errorf("after last frame: error = %v, want ErrEndOfVideo", err)
	}
}

func TestMockSource_FailAt(t *testing.T) {
	frames := makeFrames(t, 3)
	src := NewMockSource(frames, Meta{FrameCount: 3})
	src.FailAt(2)

	frame, err := src.ReadFrame()
	if err != nil {
		t.Fatalf("frame 1: error = %v", err)
	}
	frame.Close()

	if _, err := src.ReadFrame(); !errors.Is(err, ErrDecodeFailed) {
		t.Fatalf("frame 2: error = %v, want ErrDecodeFailed", err)
	}

	// Failure consumes the position; the next read returns frame 3.
	frame, err = src.ReadFrame()
	if err != nil {
		t.Fatalf("frame 3: error = %v", err)
	}
	frame.Close()

	if _, err := src.ReadFrame(); !errors.Is(err, ErrEndOfVideo) {
		t.Errorf("after last frame: error = %v, want ErrEndOfVideo", err)
	}
}

func TestMockSource_ClosedReturnsEnd(t *testing.T) {
	frames := makeFrames(t, 1)
	src := NewMockSource(frames, Meta{FrameCount: 1})

	if err := src.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, err := src.ReadFrame(); !errors.Is(err, ErrEndOfVideo) {
		t.Errorf("ReadFrame() after Close error = %v, want ErrEndOfVideo", err)
	}
}
