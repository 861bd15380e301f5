package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/library"
	"github.com/ayusman/mudra/internal/media"
	"github.com/ayusman/mudra/internal/report"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/video"
)

// newTestApp builds an App over a temp workspace with a mock detector
// and a deliberately broken ffmpeg so the mux falls back to the silent
// annotated video.
func newTestApp(t *testing.T, det detector.Detector) (*App, *library.Library, *store.Store, *bytes.Buffer) {
	t.Helper()

	lib := library.New(t.TempDir())
	if err := lib.EnsureDirs(); err != nil {
		t.Fatal(err)
	}

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	var out bytes.Buffer
	a := New(Config{
		Library: lib,
		Store:   st,
		Tools:   media.Tools{FFmpeg: filepath.Join(t.TempDir(), "no-ffmpeg")},
		Out:     &out,
		NewDetector: func(detector.Config) (detector.Detector, error) {
			return det, nil
		},
	})
	return a, lib, st, &out
}

func testFrames(t *testing.T, n int) []*gocv.Mat {
	t.Helper()
	frames := make([]*gocv.Mat, n)
	for i := range frames {
		m := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
		frames[i] = &m
	}
	t.Cleanup(func() {
		for _, f := range frames {
			f.Close()
		}
	})
	return frames
}

func TestProcessSource_FullPipeline(t *testing.T) {
	det := detector.NewMockDetector()
	det.QueueHands([]detector.HandLandmarks{detector.HandAt("Left", 0.2, 0.3, 0.0)})
	det.QueueHands([]detector.HandLandmarks{
		detector.HandAt("Left", 0.25, 0.3, 0.0),
		detector.HandAt("Right", 0.7, 0.6, 0.0),
	})
	det.QueueHands(nil)

	a, lib, st, out := newTestApp(t, det)

	meta := video.Meta{Width: 64, Height: 48, FPS: 30, FrameCount: 3}
	src := video.NewMockSource(testFrames(t, 3), meta)
	defer src.Close()

	res, err := a.processSource(context.Background(), "dance.mp4", src)
	if err != nil {
		t.Fatalf("processSource() error = %v", err)
	}

	if len(res.Records) != 3 {
		t.Fatalf("len(Records) = %d, want 3", len(res.Records))
	}
	if res.ArtifactErr != nil {
		t.Errorf("ArtifactErr = %v, want nil", res.ArtifactErr)
	}
	if res.Stats.Left.TotalDetections != 2 || res.Stats.Right.TotalDetections != 1 {
		t.Errorf("detections = %d left / %d right, want 2/1",
			res.Stats.Left.TotalDetections, res.Stats.Right.TotalDetections)
	}

	// CSV round-trips the records.
	got, err := report.ReadCSV(res.CSVPath)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("csv rows = %d, want 3", len(got))
	}

	// Text report and trajectory were written.
	data, err := os.ReadFile(res.ReportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(data), "HAND TRACKING ANALYSIS REPORT") {
		t.Error("report missing header")
	}
	if _, err := os.Stat(res.TrajectoryPath); err != nil {
		t.Errorf("trajectory not written: %v", err)
	}

	// Mux fails with the broken ffmpeg, so the silent annotated video
	// must be kept at the tracked path.
	if _, err := os.Stat(res.TrackedPath); err != nil {
		t.Errorf("tracked video not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(lib.TrackedDir(), "raw_dance.mp4")); !os.IsNotExist(err) {
		t.Error("raw annotated file should not remain")
	}

	// Heatmap went to the console writer.
	if !strings.Contains(out.String(), "dance.mp4") {
		t.Error("heatmap output missing title")
	}

	// Run summary was persisted.
	run, err := st.Runs().LatestForVideo("dance.mp4")
	if err != nil {
		t.Fatalf("LatestForVideo() error = %v", err)
	}
	if run == nil {
		t.Fatal("run not recorded")
	}
	if run.TotalDetections != 3 {
		t.Errorf("run.TotalDetections = %d, want 3", run.TotalDetections)
	}
	if run.FPS != 30 {
		t.Errorf("run.FPS = %v, want 30", run.FPS)
	}
}

func TestProcessSource_ReplacesStaleArtifacts(t *testing.T) {
	det := detector.NewMockDetector()
	a, lib, _, _ := newTestApp(t, det)

	stale := lib.CSVPath("dance")
	if err := os.WriteFile(stale, []byte("old junk\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	meta := video.Meta{Width: 64, Height: 48, FPS: 30, FrameCount: 1}
	src := video.NewMockSource(testFrames(t, 1), meta)
	defer src.Close()

	res, err := a.processSource(context.Background(), "dance.mp4", src)
	if err != nil {
		t.Fatalf("processSource() error = %v", err)
	}

	data, err := os.ReadFile(res.CSVPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "old junk") {
		t.Error("stale csv content should be replaced")
	}
}

func TestProcessSource_DetectorStartFailure(t *testing.T) {
	a, _, _, _ := newTestApp(t, nil)
	a.newDetector = func(detector.Config) (detector.Detector, error) {
		return nil, os.ErrNotExist
	}

	src := video.NewMockSource(testFrames(t, 1), video.Meta{Width: 64, Height: 48, FPS: 30, FrameCount: 1})
	defer src.Close()

	if _, err := a.processSource(context.Background(), "dance.mp4", src); err == nil {
		t.Error("processSource() should fail when the detector cannot start")
	}
}

func TestProcessSource_ArtifactFailureIsSurfacedAndIsolated(t *testing.T) {
	det := detector.NewMockDetector()
	det.QueueHands([]detector.HandLandmarks{detector.HandAt("Left", 0.2, 0.3, 0.0)})

	a, lib, _, _ := newTestApp(t, det)

	// Block the CSV path with a non-empty directory so that emitter
	// fails while the others can still write.
	if err := os.Mkdir(lib.CSVPath("dance"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(lib.CSVPath("dance"), "blocker"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	meta := video.Meta{Width: 64, Height: 48, FPS: 30, FrameCount: 1}
	src := video.NewMockSource(testFrames(t, 1), meta)
	defer src.Close()

	res, err := a.processSource(context.Background(), "dance.mp4", src)
	if err != nil {
		t.Fatalf("processSource() error = %v", err)
	}

	if res.ArtifactErr == nil {
		t.Fatal("ArtifactErr should report the failed csv emitter")
	}
	if !strings.Contains(res.ArtifactErr.Error(), "csv") {
		t.Errorf("ArtifactErr = %v, want a csv failure", res.ArtifactErr)
	}

	// The other artifacts must still be written.
	if _, err := os.Stat(res.ReportPath); err != nil {
		t.Errorf("report not written: %v", err)
	}
	if _, err := os.Stat(res.TrajectoryPath); err != nil {
		t.Errorf("trajectory not written: %v", err)
	}
}

func TestProcessSource_NoDetections(t *testing.T) {
	det := detector.NewMockDetector()
	a, _, _, _ := newTestApp(t, det)

	meta := video.Meta{Width: 64, Height: 48, FPS: 30, FrameCount: 2}
	src := video.NewMockSource(testFrames(t, 2), meta)
	defer src.Close()

	res, err := a.processSource(context.Background(), "empty.mp4", src)
	if err != nil {
		t.Fatalf("processSource() error = %v", err)
	}
	if len(res.Records) != 0 {
		t.Errorf("len(Records) = %d, want 0", len(res.Records))
	}

	// Artifacts still exist, reporting the absence of data.
	if _, err := os.Stat(res.CSVPath); err != nil {
		t.Errorf("csv not written: %v", err)
	}
	data, err := os.ReadFile(res.ReportPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "No data") {
		t.Error("report should state that no hands were seen")
	}
}
