package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DataDog/sketches-go/ddsketch"
)

// sketchAccuracy is the DDSketch relative accuracy for latency percentiles.
const sketchAccuracy = 0.01

func (g *Generator) generateTextReport(outputDir string, hours int, byHost []hostSeries) error {
	filename := filepath.Join(outputDir, "summary.txt")
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "Connectivity Report\n")
	fmt.Fprintf(file, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "Period: Last %d hours\n\n", hours)
	fmt.Fprintln(file, strings.Repeat("=", 60))
	fmt.Fprintln(file, "\nPER-HOST STATISTICS")

	for _, series := range byHost {
		var success, failure int
		var weightedSum float64
		var minL, maxL float64
		haveLatency := false

		sketch, sketchErr := ddsketch.NewDefaultDDSketch(sketchAccuracy)

		for _, s := range series.Summaries {
			success += s.SuccessCount
			failure += s.FailureCount
			if s.AvgLatency == nil {
				continue
			}
			if !haveLatency || *s.MinLatency < minL {
				minL = *s.MinLatency
			}
			if !haveLatency || *s.MaxLatency > maxL {
				maxL = *s.MaxLatency
			}
			weightedSum += *s.AvgLatency * float64(s.SuccessCount)
			haveLatency = true
			if sketchErr == nil {
				sketchErr = sketch.Add(*s.AvgLatency)
			}
		}

		total := success + failure
		fmt.Fprintf(file, "\nHost: %s (%s)\n", series.Name, series.Address)
		fmt.Fprintf(file, "  Probe Cycles: %d\n", len(series.Summaries))
		fmt.Fprintf(file, "  Total Attempts: %d\n", total)
		if total > 0 {
			rate := float64(success) / float64(total) * 100
			fmt.Fprintf(file, "  Successful: %d (%.2f%%)\n", success, rate)
			fmt.Fprintf(file, "  Packet Loss: %.2f%%\n", 100-rate)
		}
		if haveLatency {
			fmt.Fprintf(file, "  Average Latency: %.2f ms\n", weightedSum/float64(success))
			fmt.Fprintf(file, "  Min Latency: %.2f ms\n", minL)
			fmt.Fprintf(file, "  Max Latency: %.2f ms\n", maxL)
			if sketchErr == nil {
				writePercentiles(file, sketch)
			}
		} else {
			fmt.Fprintln(file, "  No successful probes in period")
		}
	}

	fmt.Fprintln(file)
	fmt.Fprintln(file, strings.Repeat("=", 60))
	g.writeOutageSection(file, hours)

	return nil
}

func writePercentiles(file *os.File, sketch *ddsketch.DDSketch) {
	for _, q := range []struct {
		label    string
		quantile float64
	}{
		{"p50", 0.50},
		{"p95", 0.95},
		{"p99", 0.99},
	} {
		v, err := sketch.GetValueAtQuantile(q.quantile)
		if err != nil {
			continue
		}
		fmt.Fprintf(file, "  Cycle Latency %s: %.2f ms\n", q.label, v)
	}
}

func (g *Generator) writeOutageSection(file *os.File, hours int) {
	days := hours/24 + 1
	outages, err := g.store.RecentOutages(days)
	if err != nil {
		g.log.Error("failed to load outages for report", "error", err)
		return
	}

	fmt.Fprintln(file, "\nOUTAGES")
	if len(outages) == 0 {
		fmt.Fprintln(file, "No outages recorded.")
		return
	}

	now := time.Now().UTC()
	for i, o := range outages {
		fmt.Fprintf(file, "Outage #%d\n", i+1)
		fmt.Fprintf(file, "  Host: %s (%s)\n", o.HostName, o.HostAddress)
		fmt.Fprintf(file, "  Start: %s\n", o.StartTime.Format("2006-01-02 15:04:05"))
		if o.EndTime != nil {
			fmt.Fprintf(file, "  End: %s\n", o.EndTime.Format("2006-01-02 15:04:05"))
		} else {
			fmt.Fprintln(file, "  End: still active")
		}
		fmt.Fprintf(file, "  Duration: %s\n", o.Duration(now))
		fmt.Fprintf(file, "  Failed Cycles: %d\n", o.ChecksFailed)
		fmt.Fprintln(file)
	}
	fmt.Fprintf(file, "Total Outages: %d\n", len(outages))
}
