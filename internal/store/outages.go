package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"connlogger/internal/models"
)

const outageColumns = `id, host_name, host_address, start_time, end_time,
        checks_failed, checks_during_outage, recovery_success_rate, notes`

// OpenOutage records the start of an outage for a host and returns the new
// event id. The event stays active until CloseOutage is called.
func (s *Store) OpenOutage(hostName, hostAddress string, start time.Time, notes string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
        INSERT INTO outage_events (host_name, host_address, start_time, notes)
        VALUES (?, ?, ?, ?)`,
		hostName, hostAddress, start.Unix(), notes)
	if err != nil {
		return 0, fmt.Errorf("open outage: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("outage id: %w", err)
	}
	return id, nil
}

// ActiveOutage returns the active outage for a host address, or nil when
// the host has none.
func (s *Store) ActiveOutage(hostAddress string) (*models.Outage, error) {
	row := s.db.QueryRow(`
        SELECT `+outageColumns+`
        FROM outage_events
        WHERE host_address = ? AND end_time IS NULL
        ORDER BY start_time DESC
        LIMIT 1`, hostAddress)

	outage, err := scanOutage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query active outage: %w", err)
	}
	return outage, nil
}

// UpdateOutage refreshes the failure counters of an ongoing outage.
func (s *Store) UpdateOutage(id int64, checksFailed, checksDuringOutage int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
        UPDATE outage_events
        SET checks_failed = ?, checks_during_outage = ?
        WHERE id = ?`,
		checksFailed, checksDuringOutage, id)
	if err != nil {
		return fmt.Errorf("update outage: %w", err)
	}
	return nil
}

// CloseOutage marks an outage as recovered, recording when it ended and the
// success rate of the recovery cycle.
func (s *Store) CloseOutage(id int64, end time.Time, recoverySuccessRate float64, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
        UPDATE outage_events
        SET end_time = ?, recovery_success_rate = ?, notes = ?
        WHERE id = ? AND end_time IS NULL`,
		end.Unix(), recoverySuccessRate, notes, id)
	if err != nil {
		return fmt.Errorf("close outage: %w", err)
	}
	return nil
}

// CloseAbandonedOutages closes active outages for hosts that are no longer
// configured, so removed hosts do not stay "down" forever. It returns the
// number of events closed.
func (s *Store) CloseAbandonedOutages(configured []string, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `UPDATE outage_events SET end_time = ?, notes = 'host removed from configuration' WHERE end_time IS NULL`
	args := []any{now.Unix()}
	if len(configured) > 0 {
		query += ` AND host_address NOT IN (?` + strings.Repeat(", ?", len(configured)-1) + `)`
		for _, addr := range configured {
			args = append(args, addr)
		}
	}

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("close abandoned outages: %w", err)
	}
	return res.RowsAffected()
}

// RecentOutages returns outages that started within the last given number
// of days, newest first.
func (s *Store) RecentOutages(days int) ([]models.Outage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.db.Query(`
        SELECT `+outageColumns+`
        FROM outage_events
        WHERE start_time >= ?
        ORDER BY start_time DESC`, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("query recent outages: %w", err)
	}
	defer rows.Close()

	var outages []models.Outage
	for rows.Next() {
		o, err := scanOutage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outage: %w", err)
		}
		outages = append(outages, *o)
	}
	return outages, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOutage(row rowScanner) (*models.Outage, error) {
	var o models.Outage
	var start int64
	var end sql.NullInt64
	var rate sql.NullFloat64
	err := row.Scan(&o.ID, &o.HostName, &o.HostAddress, &start, &end,
		&o.ChecksFailed, &o.ChecksDuringOutage, &rate, &o.Notes)
	if err != nil {
		return nil, err
	}
	o.StartTime = time.Unix(start, 0).UTC()
	if end.Valid {
		t := time.Unix(end.Int64, 0).UTC()
		o.EndTime = &t
	}
	if rate.Valid {
		r := rate.Float64
		o.RecoverySuccessRate = &r
	}
	return &o, nil
}
