package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"connlogger/internal/models"
)

const summaryColumns = `host_name, host_address, timestamp, success_count, failure_count,
        success_rate, min_latency, max_latency, avg_latency`

// Write appends one probe summary. A summary that collides with an existing
// (host_address, timestamp) pair is rejected with ErrDuplicateWrite and the
// stored row is not modified. The insert is a single statement, so it is
// all-or-nothing.
func (s *Store) Write(summary models.ProbeSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
        INSERT INTO ping_results
        (host_name, host_address, timestamp, success_count, failure_count,
         success_rate, min_latency, max_latency, avg_latency)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := s.db.Exec(query,
		summary.HostName,
		summary.HostAddress,
		summary.Timestamp.Unix(),
		summary.SuccessCount,
		summary.FailureCount,
		summary.SuccessRate,
		nullable(summary.MinLatency),
		nullable(summary.MaxLatency),
		nullable(summary.AvgLatency),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s at %s", ErrDuplicateWrite,
				summary.HostAddress, summary.Timestamp.Format(time.RFC3339))
		}
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// Query returns summaries matching the filter, ordered by timestamp
// ascending. Zero filter fields leave the corresponding bound open. The
// (host_address, timestamp) index serves bounded per-host scans.
func (s *Store) Query(filter models.QueryFilter) ([]models.ProbeSummary, error) {
	var where []string
	var args []any

	if filter.HostAddress != "" {
		where = append(where, "host_address = ?")
		args = append(args, filter.HostAddress)
	}
	if !filter.Since.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, filter.Since.Unix())
	}
	if !filter.Until.IsZero() {
		where = append(where, "timestamp <= ?")
		args = append(args, filter.Until.Unix())
	}

	query := "SELECT " + summaryColumns + " FROM ping_results"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY timestamp ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// Latest returns the most recent summary per host address, ordered by host
// name.
func (s *Store) Latest() ([]models.ProbeSummary, error) {
	query := `
        SELECT ` + summaryColumns + `
        FROM ping_results p
        JOIN (
            SELECT host_address AS addr, MAX(timestamp) AS ts
            FROM ping_results
            GROUP BY host_address
        ) m ON p.host_address = m.addr AND p.timestamp = m.ts
        ORDER BY host_name
    `

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query latest summaries: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// MonitoredHosts lists every host that has data, including ones removed
// from the configuration. Each address appears once with its most recently
// recorded name; results are sorted by name.
func (s *Store) MonitoredHosts() ([]models.Host, error) {
	query := `
        SELECT host_name, host_address
        FROM ping_results p
        WHERE id = (
            SELECT id FROM ping_results
            WHERE host_address = p.host_address
            ORDER BY timestamp DESC, id DESC
            LIMIT 1
        )
        ORDER BY host_name
    `

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query monitored hosts: %w", err)
	}
	defer rows.Close()

	var hosts []models.Host
	for rows.Next() {
		var h models.Host
		if err := rows.Scan(&h.Name, &h.Address); err != nil {
			return nil, fmt.Errorf("scan host: %w", err)
		}
		hosts = append(hosts, h)
	}
	return hosts, rows.Err()
}

func scanSummaries(rows *sql.Rows) ([]models.ProbeSummary, error) {
	var results []models.ProbeSummary
	for rows.Next() {
		var r models.ProbeSummary
		var ts int64
		var minL, maxL, avgL sql.NullFloat64
		err := rows.Scan(&r.HostName, &r.HostAddress, &ts, &r.SuccessCount,
			&r.FailureCount, &r.SuccessRate, &minL, &maxL, &avgL)
		if err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		r.Timestamp = time.Unix(ts, 0).UTC()
		r.MinLatency = floatPtr(minL)
		r.MaxLatency = floatPtr(maxL)
		r.AvgLatency = floatPtr(avgL)
		results = append(results, r)
	}
	return results, rows.Err()
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
