package report

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/stats"
	"github.com/ayusman/mudra/internal/track"
)

func sampleRecords() []track.Record {
	return []track.Record{
		{Frame: 1, Hand: track.HandLeft, Wrist: detector.Point3D{X: 0.123456789, Y: 0.2, Z: -0.05}, LandmarkCount: 21},
		{Frame: 2, Hand: track.HandRight, Wrist: detector.Point3D{X: 0.8, Y: 0.5, Z: 0.01}, LandmarkCount: 21},
		{Frame: 2, Hand: track.HandLeft, Wrist: detector.Point3D{X: 0.2, Y: 0.25, Z: -0.04}, LandmarkCount: 21},
		{Frame: 5, Hand: track.HandRight, Wrist: detector.Point3D{X: 0.75, Y: 0.55, Z: 0}, LandmarkCount: 21},
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip_hand_data.csv")
	records := sampleRecords()

	if err := WriteCSV(path, records); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	if !reflect.DeepEqual(got, records) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, records)
	}
}

func TestCSV_Header(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip_hand_data.csv")

	if err := WriteCSV(path, nil); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	want := "frame,hand,wrist_x,wrist_y,wrist_z,num_landmarks\n"
	if string(data) != want {
		t.Errorf("empty csv = %q, want header only %q", data, want)
	}
}

func TestCSV_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip_hand_data.csv")

	if err := WriteCSV(path, sampleRecords()); err != nil {
		t.Fatalf("first WriteCSV() error = %v", err)
	}
	if err := WriteCSV(path, sampleRecords()[:1]); err != nil {
		t.Fatalf("second WriteCSV() error = %v", err)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d records after rewrite, want 1 (no append)", len(got))
	}
}

func TestCSV_ReadRejectsShortRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "frame,hand,wrist_x,wrist_y,wrist_z,num_landmarks\n1,Left,0.5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadCSV(path); err == nil {
		t.Error("ReadCSV() should fail on a malformed row")
	}
}

func TestWriteReport_ContainsMetrics(t *testing.T) {
	agg := stats.Compute(sampleRecords(), 30)
	info := Info{Video: "clip", FPS: 30, DurationSec: 2}

	var b strings.Builder
	if err := WriteReport(&b, info, agg); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}
	out := b.String()

	for _, want := range []string{
		"Video: clip",
		"FPS: 30.00",
		"Total Frames: 60",
		"Left Hand:",
		"Right Hand:",
		"Total Distance:",
		"Speed Variation (std):",
		"Coverage Ratio:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteReport_NoData(t *testing.T) {
	agg := stats.Compute(nil, 30)
	info := Info{Video: "empty", FPS: 30, DurationSec: 1}

	var b strings.Builder
	if err := WriteReport(&b, info, agg); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	if !strings.Contains(b.String(), "No data") {
		t.Error("report for empty records should render an explicit no-data state")
	}
}

func TestSaveReport_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip_tracking_report.txt")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	agg := stats.Compute(sampleRecords(), 30)
	if err := SaveReport(path, Info{Video: "clip", FPS: 30, DurationSec: 2}, agg); err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "stale") {
		t.Error("old report content should be gone")
	}
}

func TestWriteHeatmap_Renders(t *testing.T) {
	var b strings.Builder
	err := WriteHeatmap(&b, sampleRecords(), "clip", HeatmapConfig{})
	if err != nil {
		t.Fatalf("WriteHeatmap() error = %v", err)
	}
	out := b.String()

	for _, want := range []string{
		"HAND MOVEMENT HEATMAP - clip",
		"← Top",
		"← Center",
		"← Bottom",
		"Total Hand Detections: 4",
		"Left Hand Detections: 2 (50.0%)",
		"Right Hand Detections: 2 (50.0%)",
		"Screen Coverage:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("heatmap missing %q", want)
		}
	}
}

func TestWriteHeatmap_NoData(t *testing.T) {
	var b strings.Builder
	if err := WriteHeatmap(&b, nil, "empty", HeatmapConfig{}); err != nil {
		t.Fatalf("WriteHeatmap() error = %v", err)
	}
	if !strings.Contains(b.String(), "No tracking data") {
		t.Error("heatmap without records should say so, not render an empty grid")
	}
}

func TestWriteHeatmap_ClampsOutOfRange(t *testing.T) {
	// Detector contract says [0,1] but out-of-range values pass through
	// tracking; the heatmap must still bin them without panicking.
	records := []track.Record{
		{Frame: 1, Hand: track.HandLeft, Wrist: detector.Point3D{X: -0.2, Y: 1.4, Z: 0}, LandmarkCount: 21},
	}

	var b strings.Builder
	if err := WriteHeatmap(&b, records, "clip", HeatmapConfig{GridWidth: 10, GridHeight: 5}); err != nil {
		t.Fatalf("WriteHeatmap() error = %v", err)
	}
	if !strings.Contains(b.String(), "Total Hand Detections: 1") {
		t.Error("out-of-range record should still be counted")
	}
}

func TestSaveTrajectory_WritesHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip_3d_trajectory.html")

	if err := SaveTrajectory(path, "clip", sampleRecords()); err != nil {
		t.Fatalf("SaveTrajectory() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	if !strings.Contains(out, "Left Hand Path") || !strings.Contains(out, "Right Hand Path") {
		t.Error("trajectory HTML should contain a series per hand")
	}
	if !strings.Contains(out, "Hand Movement Analysis: clip") {
		t.Error("trajectory HTML should carry the video title")
	}
}

func TestSaveTrajectory_EmptyRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty_3d_trajectory.html")

	if err := SaveTrajectory(path, "empty", nil); err != nil {
		t.Fatalf("SaveTrajectory() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("trajectory file should still be written: %v", err)
	}
}
