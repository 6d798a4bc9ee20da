package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// StatusCacheRepository handles database operations for cached commercial
// status responses. The upstream is rate-limited and paid per call, so
// fresh responses are reused for a short TTL.
type StatusCacheRepository struct {
	db *sql.DB
}

// NewStatusCacheRepository creates a new status cache repository
func NewStatusCacheRepository(db *sql.DB) *StatusCacheRepository {
	return &StatusCacheRepository{db: db}
}

// Get returns the cached payload for a flight code if it was fetched within
// ttl. A miss (absent or stale) returns ok=false without error.
func (r *StatusCacheRepository) Get(flightCode string, ttl time.Duration) (string, bool, error) {
	var payload string
	var fetchedAt int64

	err := r.db.QueryRow(
		"SELECT payload, fetched_at FROM status_cache WHERE flight_code = ?",
		flightCode,
	).Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query status cache: %w", err)
	}

	if time.Since(time.Unix(fetchedAt, 0)) > ttl {
		return "", false, nil
	}
	return payload, true, nil
}

// Put stores or refreshes the cached payload for a flight code.
func (r *StatusCacheRepository) Put(flightCode, payload string) error {
	_, err := r.db.Exec(
		`INSERT INTO status_cache (flight_code, payload, fetched_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(flight_code) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at`,
		flightCode, payload, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert status cache: %w", err)
	}
	return nil
}

// Prune deletes entries older than the given age. Returns rows removed.
func (r *StatusCacheRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).Unix()
	res, err := r.db.Exec("DELETE FROM status_cache WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune status cache: %w", err)
	}
	return res.RowsAffected()
}
