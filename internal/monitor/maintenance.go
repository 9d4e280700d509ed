package monitor

import "time"

// retentionLoop runs retention cleanup on its own schedule, independent of
// probing. A failed run is logged and retried on the next tick; it never
// brings the process down.
func (m *Monitor) retentionLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.config.CleanupInterval())
	defer ticker.Stop()

	m.runRetention()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.runRetention()
		}
	}
}

func (m *Monitor) runRetention() {
	if _, err := m.retention.Run(); err != nil {
		m.log.Error("retention run failed, will retry next cycle", "error", err)
	}
}
