package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ayusman/mudra/internal/stats"
	"github.com/ayusman/mudra/internal/track"
)

// Info carries the video metadata printed at the top of the report.
type Info struct {
	Video       string
	FPS         float64
	DurationSec float64
}

// NominalFrames is the frame count the report's detection rates divide by.
// It is int(duration*fps), which can differ from the decoded frame count
// when frames were skipped; the reported rate is then an approximation of
// true coverage. Kept as-is deliberately.
func (i Info) NominalFrames() int {
	return int(i.DurationSec * i.FPS)
}

// SaveReport writes the text report to path, replacing any prior file.
func SaveReport(path string, info Info, agg *stats.Aggregate) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove old report %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteReport(f, info, agg); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// WriteReport renders the human-readable tracking analysis report.
// All movement metrics are printed to four decimal places.
func WriteReport(w io.Writer, info Info, agg *stats.Aggregate) error {
	var b strings.Builder

	b.WriteString("HAND TRACKING ANALYSIS REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Video: %s\n", info.Video)
	fmt.Fprintf(&b, "Duration: %.2f seconds\n", info.DurationSec)
	fmt.Fprintf(&b, "FPS: %.2f\n", info.FPS)
	fmt.Fprintf(&b, "Total Frames: %d\n\n", info.NominalFrames())

	b.WriteString("DETECTION SUMMARY:\n")
	b.WriteString(strings.Repeat("-", 30) + "\n")
	writeDetectionSummary(&b, "Left", agg.Hand(track.HandLeft), info.NominalFrames())
	writeDetectionSummary(&b, "Right", agg.Hand(track.HandRight), info.NominalFrames())

	b.WriteString("\nMOVEMENT ANALYSIS:\n")
	b.WriteString(strings.Repeat("-", 30) + "\n")
	writeMovement(&b, "Left", agg.Hand(track.HandLeft))
	writeMovement(&b, "Right", agg.Hand(track.HandRight))

	fmt.Fprintf(&b, "OVERALL COVERAGE:\n")
	b.WriteString(strings.Repeat("-", 30) + "\n")
	fmt.Fprintf(&b, "  - Total Detections: %d\n", agg.Combined.TotalDetections)
	fmt.Fprintf(&b, "  - Frames With Any Hand: %d\n", agg.Combined.ActiveFrames)
	fmt.Fprintf(&b, "  - Coverage Ratio: %.4f\n", agg.Combined.CoverageRatio)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeDetectionSummary(b *strings.Builder, label string, hs *stats.HandStats, totalFrames int) {
	fmt.Fprintf(b, "%s Hand:\n", label)
	if !hs.Present {
		b.WriteString("  - No data\n")
		return
	}

	rate := 0.0
	if totalFrames > 0 {
		rate = float64(hs.ActiveFrames) / float64(totalFrames) * 100
	}

	fmt.Fprintf(b, "  - Total Detections: %d\n", hs.TotalDetections)
	fmt.Fprintf(b, "  - Active Frames: %d\n", hs.ActiveFrames)
	fmt.Fprintf(b, "  - Detection Rate: %.1f%%\n", rate)
}

func writeMovement(b *strings.Builder, label string, hs *stats.HandStats) {
	fmt.Fprintf(b, "%s Hand Movement:\n", label)
	if !hs.Present {
		b.WriteString("  - No data\n\n")
		return
	}

	fmt.Fprintf(b, "  - Total Distance: %.4f\n", hs.Distance.Total)
	fmt.Fprintf(b, "  - Avg Distance Per Step: %.4f\n", hs.Distance.Avg)
	fmt.Fprintf(b, "  - Max Distance Per Step: %.4f\n", hs.Distance.Max)
	fmt.Fprintf(b, "  - Min Distance Per Step: %.4f\n", hs.Distance.Min)
	fmt.Fprintf(b, "  - Avg Speed (units/sec): %.4f\n", hs.Speed.Avg)
	fmt.Fprintf(b, "  - Max Speed (units/sec): %.4f\n", hs.Speed.Max)
	fmt.Fprintf(b, "  - Min Speed (units/sec): %.4f\n", hs.Speed.Min)
	fmt.Fprintf(b, "  - Speed Variation (std): %.4f\n", hs.Speed.Std)
	fmt.Fprintf(b, "  - X Movement Range: %.4f\n", hs.Range.X)
	fmt.Fprintf(b, "  - Y Movement Range: %.4f\n", hs.Range.Y)
	fmt.Fprintf(b, "  - Z Movement Range: %.4f\n", hs.Range.Z)
	fmt.Fprintf(b, "  - Center Of Mass: (%.4f, %.4f, %.4f)\n\n",
		hs.Centroid.X, hs.Centroid.Y, hs.Centroid.Z)
}
