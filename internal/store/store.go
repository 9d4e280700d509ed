// Package store persists probe summaries and outage events in a local
// SQLite database. The summary table is append-only: rows are created by
// the monitor's write path and removed only by retention cleanup.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	_ "modernc.org/sqlite"

	"connlogger/internal/logging"
)

// ErrDuplicateWrite reports an insert that collides with an existing
// (host_address, timestamp) pair. The original row is left untouched.
var ErrDuplicateWrite = errors.New("duplicate summary write")

// Store wraps the SQLite database. It is safe for concurrent use: readers
// run against WAL snapshots while mutating operations serialize on mu.
type Store struct {
	db  *sql.DB
	mu  sync.Mutex
	log *slog.Logger
}

// Open opens (creating if necessary) the database at path and initializes
// the schema. The store is a process-lifetime resource; call Close on
// shutdown.
func Open(path string) (*Store, error) {
	// WAL keeps readers off the writer's lock; busy_timeout bounds writer
	// backoff under contention instead of failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	s := &Store{db: db, log: logging.Component("store")}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS ping_results (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        host_name TEXT NOT NULL,
        host_address TEXT NOT NULL,
        timestamp INTEGER NOT NULL,
        success_count INTEGER NOT NULL,
        failure_count INTEGER NOT NULL,
        success_rate REAL NOT NULL,
        min_latency REAL,
        max_latency REAL,
        avg_latency REAL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
        UNIQUE (host_address, timestamp)
    );

    CREATE INDEX IF NOT EXISTS idx_timestamp ON ping_results(timestamp);
    CREATE INDEX IF NOT EXISTS idx_host_timestamp ON ping_results(host_address, timestamp);

    CREATE TABLE IF NOT EXISTS outage_events (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        host_name TEXT NOT NULL,
        host_address TEXT NOT NULL,
        start_time INTEGER NOT NULL,
        end_time INTEGER,
        checks_failed INTEGER NOT NULL DEFAULT 1,
        checks_during_outage INTEGER NOT NULL DEFAULT 1,
        recovery_success_rate REAL,
        notes TEXT NOT NULL DEFAULT ''
    );

    CREATE INDEX IF NOT EXISTS idx_outage_host ON outage_events(host_address, end_time);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
