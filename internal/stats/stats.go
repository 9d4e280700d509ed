// Package stats reduces per-attempt probe outcomes into per-cycle
// summaries.
package stats

import (
	"time"

	"connlogger/internal/models"
)

// Summarize aggregates one cycle of outcomes for a host into a summary
// stamped with the cycle timestamp. It is a pure function and
// order-independent: latency stats are computed over the set of successful
// outcomes only. When no attempt succeeded the latency fields are nil and
// the success rate is 0.
func Summarize(host models.Host, outcomes []models.ProbeOutcome, timestamp time.Time) models.ProbeSummary {
	summary := models.ProbeSummary{
		HostName:    host.Name,
		HostAddress: host.Address,
		Timestamp:   timestamp.UTC().Truncate(time.Second),
	}

	var sum, lowest, highest float64
	for _, o := range outcomes {
		if !o.Succeeded {
			summary.FailureCount++
			continue
		}
		if summary.SuccessCount == 0 || o.LatencyMs < lowest {
			lowest = o.LatencyMs
		}
		if summary.SuccessCount == 0 || o.LatencyMs > highest {
			highest = o.LatencyMs
		}
		sum += o.LatencyMs
		summary.SuccessCount++
	}

	if total := summary.Attempts(); total > 0 {
		summary.SuccessRate = float64(summary.SuccessCount) / float64(total)
	}
	if summary.SuccessCount > 0 {
		avg := sum / float64(summary.SuccessCount)
		summary.MinLatency = &lowest
		summary.MaxLatency = &highest
		summary.AvgLatency = &avg
	}
	return summary
}
