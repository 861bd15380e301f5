package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// URL cache - maps a source URL to the downloaded video filename
		`CREATE TABLE IF NOT EXISTS url_cache (
			url TEXT PRIMARY KEY,
			filename TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Runs - one row per completed tracking pass over a video
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			video TEXT NOT NULL,
			fps REAL NOT NULL,
			frame_count INTEGER NOT NULL,
			duration_sec REAL NOT NULL,
			total_detections INTEGER NOT NULL,
			left_detections INTEGER NOT NULL,
			right_detections INTEGER NOT NULL,
			coverage REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_runs_video ON runs(video)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
