// Package report renders text summaries and charts from stored probe data.
// It consumes the store's query API only; it never touches the underlying
// tables.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"connlogger/internal/logging"
	"connlogger/internal/models"
	"connlogger/internal/store"
)

// Generator creates static reports for connectivity evidence.
type Generator struct {
	store *store.Store
	log   *slog.Logger
}

// NewGenerator creates a report generator.
func NewGenerator(st *store.Store) *Generator {
	return &Generator{store: st, log: logging.Component("report")}
}

// GenerateReport writes a text summary and per-host charts covering the
// last hours of data into a timestamped directory under outputDir.
// Individual sections that fail are logged and skipped so one bad chart
// does not lose the rest of the report.
func (g *Generator) GenerateReport(outputDir string, hours int) error {
	summaries, err := g.store.Query(models.QueryFilter{
		Since: time.Now().UTC().Add(-time.Duration(hours) * time.Hour),
	})
	if err != nil {
		return fmt.Errorf("load report data: %w", err)
	}

	reportDir := filepath.Join(outputDir, fmt.Sprintf("connectivity_report_%s",
		time.Now().Format("2006-01-02_15-04-05")))
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	byHost := groupByHost(summaries)

	if err := g.generateTextReport(reportDir, hours, byHost); err != nil {
		g.log.Error("failed to generate text report", "error", err)
	}
	for _, series := range byHost {
		if err := g.generateLatencyChart(reportDir, series); err != nil {
			g.log.Error("failed to generate latency chart", "host", series.Address, "error", err)
		}
		if err := g.generateAvailabilityChart(reportDir, series); err != nil {
			g.log.Error("failed to generate availability chart", "host", series.Address, "error", err)
		}
	}

	g.log.Info("report generated", "dir", reportDir, "hosts", len(byHost))
	return nil
}

// hostSeries is one host's summaries in timestamp order.
type hostSeries struct {
	Name      string
	Address   string
	Summaries []models.ProbeSummary
}

func groupByHost(summaries []models.ProbeSummary) []hostSeries {
	index := make(map[string]int)
	var series []hostSeries
	for _, s := range summaries {
		i, ok := index[s.HostAddress]
		if !ok {
			i = len(series)
			index[s.HostAddress] = i
			series = append(series, hostSeries{Name: s.HostName, Address: s.HostAddress})
		}
		series[i].Name = s.HostName
		series[i].Summaries = append(series[i].Summaries, s)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Name < series[j].Name })
	return series
}
