package monitor

import "connlogger/internal/models"

// trackOutage updates outage state from a freshly written summary. A fully
// failed cycle opens an outage (or extends the active one); any successful
// attempt closes the active outage, recording the recovery success rate.
// Outage bookkeeping failures are logged only: the summary is already
// persisted and the next cycle will reconverge.
func (m *Monitor) trackOutage(summary models.ProbeSummary) {
	active, err := m.store.ActiveOutage(summary.HostAddress)
	if err != nil {
		m.log.Error("failed to look up active outage", "host", summary.HostAddress, "error", err)
		return
	}

	if summary.Down() {
		if active == nil {
			id, err := m.store.OpenOutage(summary.HostName, summary.HostAddress, summary.Timestamp, "all attempts failed")
			if err != nil {
				m.log.Error("failed to open outage", "host", summary.HostAddress, "error", err)
				return
			}
			m.log.Warn("outage started", "host", summary.HostName, "address", summary.HostAddress, "event_id", id)
			return
		}
		if err := m.store.UpdateOutage(active.ID, active.ChecksFailed+1, active.ChecksDuringOutage+1); err != nil {
			m.log.Error("failed to update outage", "host", summary.HostAddress, "error", err)
		}
		return
	}

	if active != nil {
		if err := m.store.CloseOutage(active.ID, summary.Timestamp, summary.SuccessRate, "recovered"); err != nil {
			m.log.Error("failed to close outage", "host", summary.HostAddress, "error", err)
			return
		}
		m.log.Info("outage ended",
			"host", summary.HostName,
			"address", summary.HostAddress,
			"duration", summary.Timestamp.Sub(active.StartTime),
			"failed_cycles", active.ChecksFailed)
	}
}
