package models

import "time"

// Host is a monitored endpoint. Identity is the address; the name is a
// human-readable label that may change between configurations.
type Host struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
}

// ProbeOutcome is the result of a single ping attempt against one host.
// LatencyMs is only meaningful when Succeeded is true.
type ProbeOutcome struct {
	Sent      bool    `json:"sent"`
	Succeeded bool    `json:"succeeded"`
	LatencyMs float64 `json:"latency_ms"`
}

// ProbeSummary aggregates one probe cycle for one host. The latency fields
// are nil when no attempt in the cycle succeeded. Timestamp is UTC with
// second precision and, together with HostAddress, uniquely identifies the
// persisted row.
type ProbeSummary struct {
	HostName     string    `json:"host_name"`
	HostAddress  string    `json:"host_address"`
	Timestamp    time.Time `json:"timestamp"`
	SuccessCount int       `json:"success_count"`
	FailureCount int       `json:"failure_count"`
	SuccessRate  float64   `json:"success_rate"`
	MinLatency   *float64  `json:"min_latency"`
	MaxLatency   *float64  `json:"max_latency"`
	AvgLatency   *float64  `json:"avg_latency"`
}

// Attempts returns the total number of ping attempts in the cycle.
func (s ProbeSummary) Attempts() int {
	return s.SuccessCount + s.FailureCount
}

// Down reports whether every attempt in the cycle failed.
func (s ProbeSummary) Down() bool {
	return s.SuccessCount == 0 && s.FailureCount > 0
}
