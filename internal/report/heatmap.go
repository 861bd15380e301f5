package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ayusman/mudra/internal/track"
)

// Default heatmap grid resolution, sized for an 80-column terminal.
const (
	DefaultGridWidth  = 80
	DefaultGridHeight = 25
)

// Intensity ramp from no activity to very high.
var heatmapChars = []rune{' ', '·', '░', '▒', '▓', '█'}

// HeatmapConfig controls the ASCII heatmap rendering.
type HeatmapConfig struct {
	GridWidth  int
	GridHeight int
}

// WriteHeatmap renders an ASCII heatmap of wrist positions to w. Right
// hand detections are weighted 1.5x so the dominant hand stands out.
// With no records it renders an explicit no-data notice instead.
func WriteHeatmap(w io.Writer, records []track.Record, title string, cfg HeatmapConfig) error {
	gw := cfg.GridWidth
	gh := cfg.GridHeight
	if gw <= 0 {
		gw = DefaultGridWidth
	}
	if gh <= 0 {
		gh = DefaultGridHeight
	}

	var b strings.Builder
	fmt.Fprintf(&b, "HAND MOVEMENT HEATMAP - %s\n", title)

	if len(records) == 0 {
		b.WriteString("No tracking data available for heatmap\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	grid := make([][]float64, gh)
	for i := range grid {
		grid[i] = make([]float64, gw)
	}

	var left, right int
	for _, r := range records {
		if r.Hand == track.HandRight {
			right++
		} else {
			left++
		}

		gx := clamp(int(r.Wrist.X*float64(gw-1)), 0, gw-1)
		gy := clamp(int(r.Wrist.Y*float64(gh-1)), 0, gh-1)

		weight := 1.0
		if r.Hand == track.HandRight {
			weight = 1.5
		}
		grid[gy][gx] += weight
	}

	maxVal := 0.0
	covered := 0
	for _, row := range grid {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
			if v > 0 {
				covered++
			}
		}
	}

	b.WriteString("┌" + strings.Repeat("─", gw) + "┐\n")
	for i, row := range grid {
		b.WriteString("│")
		for _, v := range row {
			idx := 0
			if maxVal > 0 {
				idx = int(v / maxVal * float64(len(heatmapChars)-1))
			}
			b.WriteRune(heatmapChars[idx])
		}
		switch i {
		case 0:
			b.WriteString("│ ← Top\n")
		case gh / 2:
			b.WriteString("│ ← Center\n")
		case gh - 1:
			b.WriteString("│ ← Bottom\n")
		default:
			b.WriteString("│\n")
		}
	}
	b.WriteString("└" + strings.Repeat("─", gw) + "┘\n\n")

	total := len(records)
	fmt.Fprintf(&b, "Total Hand Detections: %d\n", total)
	fmt.Fprintf(&b, "Left Hand Detections: %d (%.1f%%)\n", left, pct(left, total))
	fmt.Fprintf(&b, "Right Hand Detections: %d (%.1f%%)\n", right, pct(right, total))
	fmt.Fprintf(&b, "Screen Coverage: %.1f%%\n", float64(covered)/float64(gw*gh)*100)

	_, err := io.WriteString(w, b.String())
	return err
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
