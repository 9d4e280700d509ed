// Package monitor drives the probe and retention loops.
package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"connlogger/internal/config"
	"connlogger/internal/logging"
	"connlogger/internal/models"
	"connlogger/internal/retention"
	"connlogger/internal/store"
)

// Monitor coordinates periodic probing and retention cleanup. Two
// long-lived goroutines run independently: the probe loop executes cycles
// strictly one at a time, and the retention loop prunes old data on a
// coarser schedule. Neither blocks the other.
type Monitor struct {
	config    config.Config
	store     *store.Store
	pinger    models.Pinger
	retention *retention.Engine
	now       func() time.Time
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	log       *slog.Logger
}

// New creates a Monitor.
func New(cfg config.Config, st *store.Store, pinger models.Pinger, engine *retention.Engine) *Monitor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Monitor{
		config:    cfg,
		store:     st,
		pinger:    pinger,
		retention: engine,
		now:       time.Now,
		ctx:       ctx,
		cancel:    cancel,
		log:       logging.Component("monitor"),
	}
}

// SetNow overrides the clock used to stamp probe cycles, for tests.
func (m *Monitor) SetNow(now func() time.Time) {
	m.now = now
}
