package ping

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"time"
)

// execRunner shells out to the platform ping binary, one packet per call.
type execRunner struct{}

func (execRunner) PingOnce(ctx context.Context, address string, timeout time.Duration) (float64, error) {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "ping", "-n", "1", "-w", strconv.Itoa(int(timeout.Milliseconds())), address)
	} else {
		cmd = exec.CommandContext(ctx, "ping", "-c", "1", "-W", strconv.Itoa(int(timeout.Seconds())), address)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ping %s: %w", address, err)
	}
	return parsePingOutput(string(output)), nil
}

var rttPatterns = []*regexp.Regexp{
	// Linux/Mac: "time=XX.X ms"
	regexp.MustCompile(`time[=<]([0-9.]+)\s*ms`),
	// Windows: "time=XXms" or "time<1ms"
	regexp.MustCompile(`time[=<]([0-9.]+)ms`),
	regexp.MustCompile(`round-trip min/avg/max = [0-9.]+/([0-9.]+)/`),
}

// parsePingOutput parses RTT in milliseconds from ping output.
func parsePingOutput(output string) float64 {
	for _, re := range rttPatterns {
		matches := re.FindStringSubmatch(output)
		if len(matches) > 1 {
			if rtt, err := strconv.ParseFloat(matches[1], 64); err == nil {
				return rtt
			}
		}
	}
	return 0
}
