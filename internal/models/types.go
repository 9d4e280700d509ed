package models

import (
	"context"
	"time"
)

// QueryFilter selects summaries by host and time range. Zero values leave
// the corresponding bound open.
type QueryFilter struct {
	HostAddress string
	Since       time.Time
	Until       time.Time
}

// Pinger executes the configured number of ping attempts against a host.
// The returned slice always has count entries; per-attempt failures are
// normalized into failed outcomes rather than errors.
type Pinger interface {
	Probe(ctx context.Context, host Host, count int, timeout time.Duration) ([]ProbeOutcome, error)
}

// Monitor defines the monitoring lifecycle.
type Monitor interface {
	Start() error
	Stop()
	Wait()
}
