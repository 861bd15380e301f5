// Package report formats tracking records and movement statistics into
// the CSV, text, heatmap and 3D trajectory artifacts.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/track"
)

// CSVColumns is the fixed column order of the tabular record file.
var CSVColumns = []string{"frame", "hand", "wrist_x", "wrist_y", "wrist_z", "num_landmarks"}

// WriteCSV writes one row per record to path, header first. Any
// pre-existing file at path is deleted first; output is never appended
// or merged.
func WriteCSV(path string, records []track.Record) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove old csv %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(CSVColumns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Frame),
			string(r.Hand),
			formatCoord(r.Wrist.X),
			formatCoord(r.Wrist.Y),
			formatCoord(r.Wrist.Z),
			strconv.Itoa(r.LandmarkCount),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ReadCSV reads a record file written by WriteCSV, reproducing the
// original record sequence exactly.
func ReadCSV(path string) ([]track.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv %s: missing header", path)
	}

	records := make([]track.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != len(CSVColumns) {
			return nil, fmt.Errorf("csv %s row %d: %d columns, want %d", path, i+2, len(row), len(CSVColumns))
		}

		frame, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("csv %s row %d: frame: %w", path, i+2, err)
		}
		x, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("csv %s row %d: wrist_x: %w", path, i+2, err)
		}
		y, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("csv %s row %d: wrist_y: %w", path, i+2, err)
		}
		z, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, fmt.Errorf("csv %s row %d: wrist_z: %w", path, i+2, err)
		}
		count, err := strconv.Atoi(row[5])
		if err != nil {
			return nil, fmt.Errorf("csv %s row %d: num_landmarks: %w", path, i+2, err)
		}

		records = append(records, track.Record{
			Frame:         frame,
			Hand:          track.Hand(row[1]),
			Wrist:         detector.Point3D{X: x, Y: y, Z: z},
			LandmarkCount: count,
		})
	}

	return records, nil
}

// formatCoord renders a coordinate with the shortest representation that
// round-trips exactly through ParseFloat.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
