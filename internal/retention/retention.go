// Package retention deletes probe summaries older than the configured
// horizon and reclaims the freed space.
package retention

import (
	"log/slog"
	"time"

	"connlogger/internal/logging"
	"connlogger/internal/store"
)

// Engine prunes old summaries. It holds no state between runs; each run
// recomputes the cutoff from the current time.
type Engine struct {
	store         *store.Store
	retentionDays int
	now           func() time.Time
	log           *slog.Logger
}

// New creates an engine that keeps retentionDays of data.
func New(st *store.Store, retentionDays int) *Engine {
	return &Engine{
		store:         st,
		retentionDays: retentionDays,
		now:           time.Now,
		log:           logging.Component("retention"),
	}
}

// Run executes one cleanup pass: records strictly older than the retention
// horizon are deleted in a single atomic operation, then space is reclaimed
// if anything was removed. An empty store (zero deletions) is a normal
// outcome. Vacuum failures are logged and swallowed; delete failures are
// returned so the caller can retry on its next scheduled run.
func (e *Engine) Run() (int64, error) {
	cutoff := e.now().UTC().Truncate(time.Second).AddDate(0, 0, -e.retentionDays)

	deleted, err := e.store.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		e.log.Info("retention cleanup complete", "deleted", deleted, "cutoff", cutoff)
		if err := e.store.Vacuum(); err != nil {
			e.log.Warn("vacuum failed", "error", err)
		}
	} else {
		e.log.Debug("retention cleanup found nothing to delete", "cutoff", cutoff)
	}
	return deleted, nil
}

// SetNow overrides the clock, for tests.
func (e *Engine) SetNow(now func() time.Time) {
	e.now = now
}
