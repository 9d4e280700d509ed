package monitor

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"connlogger/internal/models"
	"connlogger/internal/ping"
	"connlogger/internal/stats"
	"connlogger/internal/store"
)

// probeLoop runs probe cycles at the configured interval. Cycles execute
// sequentially in this goroutine, so two cycles can never overlap: when a
// cycle overruns the interval, the pending tick fires as soon as it
// finishes.
func (m *Monitor) probeLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.config.Interval())
	defer ticker.Stop()

	m.runCycle()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.runCycle()
		}
	}
}

// runCycle probes every configured host concurrently and writes one summary
// per host. The cycle timestamp is captured once, before fan-out, so all
// summaries of the cycle share it and per-host timestamps never go
// backwards across cycles. The cycle runs on a non-cancelable context so a
// shutdown signal drains it instead of aborting writes.
func (m *Monitor) runCycle() {
	if len(m.config.Hosts) == 0 {
		return
	}

	cycleCtx := context.WithoutCancel(m.ctx)
	timestamp := m.now().UTC().Truncate(time.Second)
	started := time.Now()

	var g errgroup.Group
	g.SetLimit(len(m.config.Hosts))
	for _, host := range m.config.Hosts {
		host := host
		g.Go(func() error {
			m.probeHost(cycleCtx, host, timestamp)
			return nil
		})
	}
	g.Wait()

	m.log.Debug("probe cycle complete",
		"hosts", len(m.config.Hosts),
		"timestamp", timestamp,
		"elapsed", time.Since(started))
}

// probeHost runs the probe → summarize → write path for one host. Failures
// are logged and contained: nothing here can affect another host's probe or
// a future cycle.
func (m *Monitor) probeHost(ctx context.Context, host models.Host, timestamp time.Time) {
	outcomes, err := m.pinger.Probe(ctx, host, m.config.PingCount, m.config.Timeout())
	if err != nil {
		if errors.Is(err, ping.ErrInvalidHost) {
			m.log.Warn("skipping host with invalid address", "host", host.Name, "error", err)
		} else {
			m.log.Error("probe failed", "host", host.Name, "address", host.Address, "error", err)
		}
		return
	}

	summary := stats.Summarize(host, outcomes, timestamp)

	if err := m.store.Write(summary); err != nil {
		if errors.Is(err, store.ErrDuplicateWrite) {
			m.log.Warn("duplicate summary rejected", "host", host.Address, "timestamp", timestamp)
		} else {
			m.log.Error("failed to save summary", "host", host.Address, "error", err)
		}
		return
	}

	m.trackOutage(summary)
}
