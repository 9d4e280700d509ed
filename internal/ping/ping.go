// Package ping probes hosts using the system ping binary and normalizes
// raw attempt results into probe outcomes.
package ping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connlogger/internal/logging"
	"connlogger/internal/models"
)

// ErrInvalidHost reports a host whose address cannot be probed at all.
var ErrInvalidHost = errors.New("invalid host address")

// Runner executes a single ping attempt and returns the round-trip time in
// milliseconds. Any error means the attempt failed (timeout, unreachable,
// DNS failure); the prober turns it into a failed outcome.
type Runner interface {
	PingOnce(ctx context.Context, address string, timeout time.Duration) (float64, error)
}

// Prober implements the models.Pinger interface.
type Prober struct {
	runner Runner
	log    *slog.Logger
}

// New creates a Prober backed by the system ping binary.
func New() *Prober {
	return NewWithRunner(execRunner{})
}

// NewWithRunner creates a Prober with a custom attempt runner.
func NewWithRunner(r Runner) *Prober {
	return &Prober{
		runner: r,
		log:    logging.Component("ping"),
	}
}

// Probe runs count independent ping attempts against the host. Each attempt
// is bounded by timeout and a failed attempt never aborts the remaining
// ones. Only a malformed address is a caller-visible error, returned before
// any attempt is made.
func (p *Prober) Probe(ctx context.Context, host models.Host, count int, timeout time.Duration) ([]models.ProbeOutcome, error) {
	if err := validateAddress(host.Address); err != nil {
		return nil, err
	}

	outcomes := make([]models.ProbeOutcome, 0, count)
	for i := 0; i < count; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		rtt, err := p.runner.PingOnce(attemptCtx, host.Address, timeout)
		cancel()

		if err != nil {
			p.log.Debug("ping attempt failed", "host", host.Address, "attempt", i+1, "error", err)
			outcomes = append(outcomes, models.ProbeOutcome{Sent: true, Succeeded: false})
			continue
		}
		outcomes = append(outcomes, models.ProbeOutcome{Sent: true, Succeeded: true, LatencyMs: rtt})
	}
	return outcomes, nil
}

func validateAddress(address string) error {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return fmt.Errorf("%w: empty address", ErrInvalidHost)
	}
	if trimmed != address || strings.ContainsAny(address, " \t\n") {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidHost, address)
	}
	return nil
}
