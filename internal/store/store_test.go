package store

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connlogger/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func ptr(v float64) *float64 { return &v }

func testSummary(name, addr string, ts time.Time, successes, failures int) models.ProbeSummary {
	s := models.ProbeSummary{
		HostName:     name,
		HostAddress:  addr,
		Timestamp:    ts.UTC().Truncate(time.Second),
		SuccessCount: successes,
		FailureCount: failures,
	}
	if total := successes + failures; total > 0 {
		s.SuccessRate = float64(successes) / float64(total)
	}
	if successes > 0 {
		s.MinLatency = ptr(10.5)
		s.MaxLatency = ptr(15.2)
		s.AvgLatency = ptr(12.3)
	}
	return s
}

func TestWriteQueryRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	want := testSummary("Google DNS", "8.8.8.8", ts, 4, 1)

	if err := st.Write(want); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := st.Query(models.QueryFilter{HostAddress: "8.8.8.8", Since: ts, Until: ts})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(got))
	}

	r := got[0]
	if r.HostName != want.HostName || r.HostAddress != want.HostAddress {
		t.Errorf("host fields = %q/%q, want %q/%q", r.HostName, r.HostAddress, want.HostName, want.HostAddress)
	}
	if !r.Timestamp.Equal(want.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", r.Timestamp, want.Timestamp)
	}
	if r.SuccessCount != 4 || r.FailureCount != 1 || r.SuccessRate != 0.8 {
		t.Errorf("counts = %d/%d rate %v", r.SuccessCount, r.FailureCount, r.SuccessRate)
	}
	if *r.MinLatency != 10.5 || *r.MaxLatency != 15.2 || *r.AvgLatency != 12.3 {
		t.Errorf("latency fields differ: %v/%v/%v", *r.MinLatency, *r.MaxLatency, *r.AvgLatency)
	}
}

func TestWriteNullLatencyRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := st.Write(testSummary("Down Host", "10.0.0.9", ts, 0, 5)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := st.Query(models.QueryFilter{HostAddress: "10.0.0.9"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one row, got %d", len(got))
	}
	if got[0].MinLatency != nil || got[0].MaxLatency != nil || got[0].AvgLatency != nil {
		t.Errorf("latency fields should round-trip as nil: %+v", got[0])
	}
	if got[0].SuccessRate != 0 {
		t.Errorf("SuccessRate = %v, want 0", got[0].SuccessRate)
	}
}

func TestWriteRejectsDuplicate(t *testing.T) {
	st := newTestStore(t)
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	first := testSummary("Google DNS", "8.8.8.8", ts, 5, 0)
	if err := st.Write(first); err != nil {
		t.Fatalf("first Write failed: %v", err)
	}

	second := testSummary("Google DNS", "8.8.8.8", ts, 0, 5)
	err := st.Write(second)
	if !errors.Is(err, ErrDuplicateWrite) {
		t.Fatalf("expected ErrDuplicateWrite, got %v", err)
	}

	got, err := st.Query(models.QueryFilter{HostAddress: "8.8.8.8"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected exactly one persisted row, got %d", len(got))
	}
	if got[0].SuccessCount != 5 {
		t.Errorf("original row was modified: %+v", got[0])
	}
}

func TestWriteSameTimestampDifferentHosts(t *testing.T) {
	st := newTestStore(t)
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := st.Write(testSummary("A", "10.0.0.1", ts, 5, 0)); err != nil {
		t.Fatalf("Write A failed: %v", err)
	}
	if err := st.Write(testSummary("B", "10.0.0.2", ts, 5, 0)); err != nil {
		t.Errorf("same timestamp for a different host must not conflict: %v", err)
	}
}

func TestQueryOrderingAndRange(t *testing.T) {
	st := newTestStore(t)
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	// insert out of order
	for _, offset := range []int{3, 0, 4, 1, 2} {
		ts := base.Add(time.Duration(offset) * time.Minute)
		if err := st.Write(testSummary("A", "10.0.0.1", ts, 5, 0)); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	got, err := st.Query(models.QueryFilter{
		HostAddress: "10.0.0.1",
		Since:       base.Add(1 * time.Minute),
		Until:       base.Add(3 * time.Minute),
	})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rows in bounded range, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp.Before(got[i-1].Timestamp) {
			t.Errorf("rows not in ascending timestamp order: %v after %v",
				got[i].Timestamp, got[i-1].Timestamp)
		}
	}

	all, err := st.Query(models.QueryFilter{})
	if err != nil {
		t.Fatalf("unbounded Query failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("unbounded query returned %d rows, want 5", len(all))
	}
}

func TestLatestPerHost(t *testing.T) {
	st := newTestStore(t)
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		if err := st.Write(testSummary("Alpha", "10.0.0.1", ts, 5, 0)); err != nil {
			t.Fatal(err)
		}
		if err := st.Write(testSummary("Beta", "10.0.0.2", ts, 0, 5)); err != nil {
			t.Fatal(err)
		}
	}

	latest, err := st.Latest()
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("expected one row per host, got %d", len(latest))
	}
	want := base.Add(2 * time.Minute)
	for _, s := range latest {
		if !s.Timestamp.Equal(want) {
			t.Errorf("host %s latest = %v, want %v", s.HostAddress, s.Timestamp, want)
		}
	}
}

func TestMonitoredHosts(t *testing.T) {
	st := newTestStore(t)
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	if err := st.Write(testSummary("Old Name", "8.8.8.8", base, 5, 0)); err != nil {
		t.Fatal(err)
	}
	if err := st.Write(testSummary("Google DNS", "8.8.8.8", base.Add(time.Hour), 5, 0)); err != nil {
		t.Fatal(err)
	}
	if err := st.Write(testSummary("Alpha Host", "10.0.0.1", base, 5, 0)); err != nil {
		t.Fatal(err)
	}

	hosts, err := st.MonitoredHosts()
	if err != nil {
		t.Fatalf("MonitoredHosts failed: %v", err)
	}
	if len(hosts) != 2 {
		t.Fatalf("expected 2 hosts, got %d: %+v", len(hosts), hosts)
	}
	// sorted by name; address 8.8.8.8 must carry its most recent name
	if hosts[0].Name != "Alpha Host" || hosts[1].Name != "Google DNS" {
		t.Errorf("unexpected order or names: %+v", hosts)
	}
	if hosts[1].Address != "8.8.8.8" {
		t.Errorf("renamed host lost its address: %+v", hosts[1])
	}
}

func TestMonitoredHostsEmptyDatabase(t *testing.T) {
	st := newTestStore(t)
	hosts, err := st.MonitoredHosts()
	if err != nil {
		t.Fatalf("MonitoredHosts failed: %v", err)
	}
	if len(hosts) != 0 {
		t.Errorf("expected no hosts, got %+v", hosts)
	}
}

func TestDeleteOlderThanBoundary(t *testing.T) {
	st := newTestStore(t)
	cutoff := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	older := testSummary("A", "10.0.0.1", cutoff.Add(-time.Second), 5, 0)
	atBoundary := testSummary("A", "10.0.0.1", cutoff, 5, 0)
	newer := testSummary("A", "10.0.0.1", cutoff.Add(time.Second), 5, 0)
	for _, s := range []models.ProbeSummary{older, atBoundary, newer} {
		if err := st.Write(s); err != nil {
			t.Fatal(err)
		}
	}

	deleted, err := st.DeleteOlderThan(cutoff)
	if err != nil {
		t.Fatalf("DeleteOlderThan failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1 (only the strictly older row)", deleted)
	}

	remaining, err := st.Query(models.QueryFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 2 {
		t.Fatalf("expected 2 remaining rows, got %d", len(remaining))
	}
	if !remaining[0].Timestamp.Equal(cutoff) {
		t.Errorf("boundary row should be retained, got %v", remaining[0].Timestamp)
	}

	// idempotent with respect to end state
	deleted, err = st.DeleteOlderThan(cutoff)
	if err != nil {
		t.Fatalf("second DeleteOlderThan failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("second delete removed %d rows, want 0", deleted)
	}
}

func TestDeleteOlderThanEmptyStore(t *testing.T) {
	st := newTestStore(t)
	deleted, err := st.DeleteOlderThan(time.Now())
	if err != nil {
		t.Fatalf("delete on empty store must succeed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}

func TestConcurrentQueriesDuringDelete(t *testing.T) {
	st := newTestStore(t)
	cutoff := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	const oldRows, newRows = 50, 50
	for i := 0; i < oldRows; i++ {
		ts := cutoff.Add(-time.Duration(i+1) * time.Minute)
		if err := st.Write(testSummary("A", "10.0.0.1", ts, 5, 0)); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < newRows; i++ {
		ts := cutoff.Add(time.Duration(i) * time.Minute)
		if err := st.Write(testSummary("A", "10.0.0.1", ts, 5, 0)); err != nil {
			t.Fatal(err)
		}
	}

	var wg sync.WaitGroup
	errCh := make(chan error, 8)
	start := make(chan struct{})

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 20; j++ {
				rows, err := st.Query(models.QueryFilter{HostAddress: "10.0.0.1"})
				if err != nil {
					errCh <- err
					return
				}
				// snapshot isolation: either the full set or the post-delete set
				if len(rows) != oldRows+newRows && len(rows) != newRows {
					errCh <- errors.New("observed partially deleted row set")
					return
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		if _, err := st.DeleteOlderThan(cutoff); err != nil {
			errCh <- err
		}
	}()

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Error(err)
	}
}

func TestVacuumAfterDelete(t *testing.T) {
	st := newTestStore(t)
	ts := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if err := st.Write(testSummary("A", "10.0.0.1", ts, 5, 0)); err != nil {
		t.Fatal(err)
	}
	if _, err := st.DeleteOlderThan(ts.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := st.Vacuum(); err != nil {
		t.Errorf("Vacuum failed: %v", err)
	}
}
