package store

import (
	"fmt"
	"time"
)

// DeleteOlderThan removes every summary strictly older than cutoff and
// returns the number of rows deleted. A row exactly at the cutoff is
// retained. The delete is one statement: on error nothing is removed, and
// running it again against the same data deletes nothing.
func (s *Store) DeleteOlderThan(cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM ping_results WHERE timestamp < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("delete old summaries: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted summaries: %w", err)
	}
	return deleted, nil
}

// Vacuum reclaims space after deletions. Callers treat failures as
// non-fatal since reclamation is an optimization.
func (s *Store) Vacuum() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("VACUUM"); err != nil {
		return fmt.Errorf("vacuum: %w", err)
	}
	return nil
}
