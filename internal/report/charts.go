package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func (g *Generator) generateLatencyChart(outputDir string, series hostSeries) error {
	var timestamps []time.Time
	var values []float64
	for _, s := range series.Summaries {
		if s.AvgLatency == nil {
			continue
		}
		timestamps = append(timestamps, s.Timestamp)
		values = append(values, *s.AvgLatency)
	}
	if len(values) < 2 {
		return nil
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("Latency - %s", series.Name),
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Time",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			ValueFormatter: chart.TimeMinuteValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Latency (ms)",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: series.Address,
				Style: chart.Style{
					StrokeColor: chart.GetDefaultColor(0),
					StrokeWidth: 2,
				},
				XValues: timestamps,
				YValues: values,
			},
		},
	}

	if len(values) > 10 {
		ts := graph.Series[0].(chart.TimeSeries)
		graph.Series = append(graph.Series, chart.SMASeries{
			Name: "Moving Avg",
			Style: chart.Style{
				StrokeColor:     chart.GetDefaultColor(1),
				StrokeWidth:     2,
				StrokeDashArray: []float64{5, 5},
			},
			InnerSeries: ts,
			Period:      10,
		})
	}

	return renderPNG(graph, filepath.Join(outputDir,
		fmt.Sprintf("latency_%s.png", sanitizeFilename(series.Address))))
}

func (g *Generator) generateAvailabilityChart(outputDir string, series hostSeries) error {
	var timestamps []time.Time
	var values []float64
	for _, s := range series.Summaries {
		timestamps = append(timestamps, s.Timestamp)
		values = append(values, s.SuccessRate*100)
	}
	if len(values) < 2 {
		return nil
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("Availability - %s", series.Name),
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Time",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			ValueFormatter: chart.TimeMinuteValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Success Rate (%)",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			Range: &chart.ContinuousRange{Min: 0, Max: 105},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: series.Address,
				Style: chart.Style{
					StrokeColor: chart.GetDefaultColor(2),
					StrokeWidth: 2,
				},
				XValues: timestamps,
				YValues: values,
			},
		},
	}

	return renderPNG(graph, filepath.Join(outputDir,
		fmt.Sprintf("availability_%s.png", sanitizeFilename(series.Address))))
}

func renderPNG(graph chart.Chart, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return graph.Render(chart.PNG, file)
}
