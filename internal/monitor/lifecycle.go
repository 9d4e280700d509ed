package monitor

// Start launches the probe and retention loops. Active outages recorded for
// hosts that are no longer configured are closed first, so they do not
// linger as permanently "down".
func (m *Monitor) Start() error {
	addrs := make([]string, 0, len(m.config.Hosts))
	for _, h := range m.config.Hosts {
		addrs = append(addrs, h.Address)
	}
	closed, err := m.store.CloseAbandonedOutages(addrs, m.now().UTC())
	if err != nil {
		m.log.Warn("failed to close abandoned outages", "error", err)
	} else if closed > 0 {
		m.log.Info("closed outages for removed hosts", "count", closed)
	}

	m.wg.Add(2)
	go m.probeLoop()
	go m.retentionLoop()

	m.log.Info("monitor started",
		"hosts", len(m.config.Hosts),
		"interval", m.config.Interval(),
		"cleanup_interval", m.config.CleanupInterval())
	return nil
}

// Stop requests shutdown. New cycles stop being scheduled; an in-flight
// cycle is allowed to finish so no write is aborted mid-transaction.
func (m *Monitor) Stop() {
	m.log.Info("stopping monitor")
	m.cancel()
}

// Wait blocks until both loops have exited.
func (m *Monitor) Wait() {
	m.wg.Wait()
	m.log.Info("monitor stopped")
}
