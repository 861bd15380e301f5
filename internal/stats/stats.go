// Package stats computes per-hand movement statistics from a tracking
// record sequence. Everything here is a pure function of the records and
// the frame rate: inputs are never mutated and results are deterministic.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/track"
)

// DistanceStats summarizes the 3D Euclidean displacement between
// consecutive detections of one hand.
type DistanceStats struct {
	Total float64
	Avg   float64
	Max   float64
	Min   float64
}

// SpeedStats summarizes time-normalized movement speed in coordinate
// units per second. Std is the population standard deviation, matching
// the numpy convention of the original analysis.
type SpeedStats struct {
	Avg float64
	Max float64
	Min float64
	Std float64
}

// Range is the positional extent (max minus min) per axis.
type Range struct {
	X float64
	Y float64
	Z float64
}

// HandStats aggregates movement metrics for a single hand. When Present
// is false the hand was never detected and all numeric fields are zero;
// report emitters render that as an explicit "no data" state.
type HandStats struct {
	Present         bool
	TotalDetections int
	ActiveFrames    int
	Distance        DistanceStats
	Speed           SpeedStats
	Range           Range
	Centroid        detector.Point3D
}

// Combined aggregates detection coverage across both hands.
type Combined struct {
	TotalDetections int
	ActiveFrames    int
	MaxFrame        int
	// CoverageRatio is the fraction of the frame-number span containing
	// at least one detection of either hand. Zero when no records exist.
	CoverageRatio float64
}

// Aggregate is the full statistics result, partitioned by hand. It is
// never mutated after computation.
type Aggregate struct {
	Left     HandStats
	Right    HandStats
	Combined Combined
}

// Hand returns the per-hand stats for the given handedness label.
func (a *Aggregate) Hand(h track.Hand) *HandStats {
	if h == track.HandRight {
		return &a.Right
	}
	return &a.Left
}

// Compute derives the statistics aggregate from the record sequence and
// the video frame rate. A zero or unknown frame rate leaves all speed
// fields zero rather than faulting; an empty record sequence yields an
// all-zero aggregate.
func Compute(records []track.Record, fps float64) *Aggregate {
	agg := &Aggregate{
		Left:  handStats(records, track.HandLeft, fps),
		Right: handStats(records, track.HandRight, fps),
	}

	if len(records) == 0 {
		return agg
	}

	frames := make(map[int]struct{}, len(records))
	maxFrame := 0
	for _, r := range records {
		frames[r.Frame] = struct{}{}
		if r.Frame > maxFrame {
			maxFrame = r.Frame
		}
	}

	agg.Combined = Combined{
		TotalDetections: len(records),
		ActiveFrames:    len(frames),
		MaxFrame:        maxFrame,
	}
	if maxFrame > 0 {
		agg.Combined.CoverageRatio = float64(len(frames)) / float64(maxFrame)
	}

	return agg
}

func handStats(records []track.Record, hand track.Hand, fps float64) HandStats {
	// Copy the matching subset so the caller's slice is never reordered.
	var subset []track.Record
	for _, r := range records {
		if r.Hand == hand {
			subset = append(subset, r)
		}
	}
	if len(subset) == 0 {
		return HandStats{}
	}

	// Detection order per hand is not stable across the raw sequence
	// since hands interleave per frame; sort before pairing.
	sort.SliceStable(subset, func(i, j int) bool {
		return subset[i].Frame < subset[j].Frame
	})

	hs := HandStats{
		Present:         true,
		TotalDetections: len(subset),
		ActiveFrames:    distinctFrames(subset),
	}

	var distances, speeds []float64
	for i := 1; i < len(subset); i++ {
		prev, curr := subset[i-1], subset[i]
		d := distance3D(prev.Wrist, curr.Wrist)
		distances = append(distances, d)

		frameGap := curr.Frame - prev.Frame
		if frameGap > 0 && fps > 0 {
			speeds = append(speeds, d/(float64(frameGap)/fps))
		}
	}

	if len(distances) > 0 {
		hs.Distance = DistanceStats{
			Total: sum(distances),
			Avg:   stat.Mean(distances, nil),
			Max:   maxOf(distances),
			Min:   minOf(distances),
		}
	}

	if len(speeds) > 0 {
		hs.Speed = SpeedStats{
			Avg: stat.Mean(speeds, nil),
			Max: maxOf(speeds),
			Min: minOf(speeds),
		}
		if len(speeds) > 1 {
			hs.Speed.Std = stat.PopStdDev(speeds, nil)
		}
	}

	hs.Range, hs.Centroid = extent(subset)

	return hs
}

// distinctFrames counts frames with at least one detection, de-duplicated
// by frame number in case a hand anomalously appears twice in one frame.
func distinctFrames(subset []track.Record) int {
	seen := make(map[int]struct{}, len(subset))
	for _, r := range subset {
		seen[r.Frame] = struct{}{}
	}
	return len(seen)
}

// extent computes the per-axis min/max range and the arithmetic centroid.
// Out-of-range coordinates pass through unchanged; nothing is clamped.
func extent(subset []track.Record) (Range, detector.Point3D) {
	minP := subset[0].Wrist
	maxP := subset[0].Wrist
	var sumX, sumY, sumZ float64

	for _, r := range subset {
		p := r.Wrist
		minP.X = math.Min(minP.X, p.X)
		minP.Y = math.Min(minP.Y, p.Y)
		minP.Z = math.Min(minP.Z, p.Z)
		maxP.X = math.Max(maxP.X, p.X)
		maxP.Y = math.Max(maxP.Y, p.Y)
		maxP.Z = math.Max(maxP.Z, p.Z)
		sumX += p.X
		sumY += p.Y
		sumZ += p.Z
	}

	n := float64(len(subset))
	r := Range{X: maxP.X - minP.X, Y: maxP.Y - minP.Y, Z: maxP.Z - minP.Z}
	c := detector.Point3D{X: sumX / n, Y: sumY / n, Z: sumZ / n}
	return r, c
}

func distance3D(a, b detector.Point3D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dz := b.Z - a.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}
