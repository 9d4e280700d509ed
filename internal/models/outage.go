package models

import "time"

// Outage is a connectivity outage event for one host. An outage is active
// while EndTime is nil. ChecksFailed counts fully failed probe cycles since
// the outage began; RecoverySuccessRate records the success rate of the
// cycle that closed it.
type Outage struct {
	ID                  int64      `json:"id"`
	HostName            string     `json:"host_name"`
	HostAddress         string     `json:"host_address"`
	StartTime           time.Time  `json:"start_time"`
	EndTime             *time.Time `json:"end_time"`
	ChecksFailed        int        `json:"checks_failed"`
	ChecksDuringOutage  int        `json:"checks_during_outage"`
	RecoverySuccessRate *float64   `json:"recovery_success_rate"`
	Notes               string     `json:"notes"`
}

// Duration returns the outage length, using now for still-active outages.
func (o Outage) Duration(now time.Time) time.Duration {
	if o.EndTime != nil {
		return o.EndTime.Sub(o.StartTime)
	}
	return now.Sub(o.StartTime)
}
