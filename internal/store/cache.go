package store

import (
	"database/sql"
	"errors"
)

// CacheRepository maps previously downloaded URLs to their video filenames
// so the same URL is never fetched twice.
type CacheRepository struct {
	db *sql.DB
}

// Cache returns the URL cache repository for this store.
func (s *Store) Cache() *CacheRepository {
	return &CacheRepository{db: s.db}
}

// Lookup returns the cached filename for url, or ok=false if the URL has
// not been downloaded before.
func (r *CacheRepository) Lookup(url string) (filename string, ok bool, err error) {
	err = r.db.QueryRow(`SELECT filename FROM url_cache WHERE url = ?`, url).Scan(&filename)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return filename, true, nil
}

// Put records a downloaded URL. An existing entry for the same URL is
// replaced.
func (r *CacheRepository) Put(url, filename string) error {
	_, err := r.db.Exec(
		`INSERT INTO url_cache (url, filename) VALUES (?, ?)
		 ON CONFLICT(url) DO UPDATE SET filename = excluded.filename`,
		url, filename,
	)
	return err
}

// Clear removes all cached URL entries.
func (r *CacheRepository) Clear() error {
	_, err := r.db.Exec(`DELETE FROM url_cache`)
	return err
}
