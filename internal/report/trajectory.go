package report

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ayusman/mudra/internal/track"
)

// SaveTrajectory renders the 3D wrist trajectory to a self-contained HTML
// file, replacing any prior output at path. Each hand gets a time-ordered
// point trail plus a marked start position; a visual map colors points by
// frame index so the direction of travel is readable.
func SaveTrajectory(path, title string, records []track.Record) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove old trajectory %s: %w", path, err)
	}

	scatter := charts.NewScatter3D()

	maxFrame := 0
	for _, r := range records {
		if r.Frame > maxFrame {
			maxFrame = r.Frame
		}
	}
	if maxFrame == 0 {
		maxFrame = 1
	}

	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Hand Movement Trajectory",
			Width:     "1200px",
			Height:    "800px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Hand Movement Analysis: %s", title),
			Subtitle: fmt.Sprintf("Left: %d detections | Right: %d detections | Frames: %d",
				countHand(records, track.HandLeft), countHand(records, track.HandRight), maxFrame),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "Horizontal (0=left edge)", Min: 0, Max: 1}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Vertical (0=top edge)", Min: 0, Max: 1}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Depth"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxFrame),
			Dimension:  "3",
			InRange: &opts.VisualMapInRange{Color: []string{
				"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
				"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
			}},
		}),
	)

	addHandSeries(scatter, records, track.HandLeft, "Left Hand Path", "darkred")
	addHandSeries(scatter, records, track.HandRight, "Right Hand Path", "darkblue")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trajectory %s: %w", path, err)
	}
	defer f.Close()

	if err := scatter.Render(f); err != nil {
		return fmt.Errorf("render trajectory %s: %w", path, err)
	}
	return nil
}

// addHandSeries appends the time-ordered trail for one hand and a second
// single-point series marking where that hand first appears.
func addHandSeries(scatter *charts.Scatter3D, records []track.Record, hand track.Hand, name, startColor string) {
	var subset []track.Record
	for _, r := range records {
		if r.Hand == hand {
			subset = append(subset, r)
		}
	}
	if len(subset) == 0 {
		return
	}

	sort.SliceStable(subset, func(i, j int) bool {
		return subset[i].Frame < subset[j].Frame
	})

	data := make([]opts.Chart3DData, len(subset))
	for i, r := range subset {
		data[i] = opts.Chart3DData{
			Value: []interface{}{r.Wrist.X, r.Wrist.Y, r.Wrist.Z, r.Frame},
		}
	}
	scatter.AddSeries(name, data)

	start := subset[0]
	scatter.AddSeries(name+" Start",
		[]opts.Chart3DData{{
			Value: []interface{}{start.Wrist.X, start.Wrist.Y, start.Wrist.Z, start.Frame},
		}},
		charts.WithItemStyleOpts(opts.ItemStyle{Color: startColor}),
	)
}

func countHand(records []track.Record, hand track.Hand) int {
	n := 0
	for _, r := range records {
		if r.Hand == hand {
			n++
		}
	}
	return n
}
