package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Run records one completed tracking pass over a video.
type Run struct {
	ID              string    `json:"id"`
	Video           string    `json:"video"`
	FPS             float64   `json:"fps"`
	FrameCount      int       `json:"frame_count"`
	DurationSec     float64   `json:"duration_sec"`
	TotalDetections int       `json:"total_detections"`
	LeftDetections  int       `json:"left_detections"`
	RightDetections int       `json:"right_detections"`
	Coverage        float64   `json:"coverage"`
	CreatedAt       time.Time `json:"created_at"`
}

// RunRepository provides access to the run history.
type RunRepository struct {
	db *sql.DB
}

// Runs returns the run repository for this store.
func (s *Store) Runs() *RunRepository {
	return &RunRepository{db: s.db}
}

// Create inserts a run. A missing ID is assigned a fresh UUID; the
// assigned ID is written back to the run.
func (r *RunRepository) Create(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	_, err := r.db.Exec(
		`INSERT INTO runs (id, video, fps, frame_count, duration_sec,
		 total_detections, left_detections, right_detections, coverage)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Video, run.FPS, run.FrameCount, run.DurationSec,
		run.TotalDetections, run.LeftDetections, run.RightDetections, run.Coverage,
	)
	return err
}

// List returns the most recent runs, newest first.
func (r *RunRepository) List(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(
		`SELECT id, video, fps, frame_count, duration_sec,
		 total_detections, left_detections, right_detections, coverage, created_at
		 FROM runs
		 ORDER BY created_at DESC, id
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Video, &run.FPS, &run.FrameCount,
			&run.DurationSec, &run.TotalDetections, &run.LeftDetections,
			&run.RightDetections, &run.Coverage, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

// LatestForVideo returns the most recent run for a video name, or nil if
// the video has never been processed.
func (r *RunRepository) LatestForVideo(video string) (*Run, error) {
	runs, err := r.listForVideo(video, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func (r *RunRepository) listForVideo(video string, limit int) ([]Run, error) {
	rows, err := r.db.Query(
		`SELECT id, video, fps, frame_count, duration_sec,
		 total_detections, left_detections, right_detections, coverage, created_at
		 FROM runs
		 WHERE video = ?
		 ORDER BY created_at DESC, id
		 LIMIT ?`,
		video, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Video, &run.FPS, &run.FrameCount,
			&run.DurationSec, &run.TotalDetections, &run.LeftDetections,
			&run.RightDetections, &run.Coverage, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}
