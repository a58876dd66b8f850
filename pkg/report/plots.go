package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"trainwatch/pkg/metrics"
)

// Plot filenames, fixed per plot kind and overwritten each cycle.
const (
	MainPlotFile = "main_metrics.png"
	WERPlotFile  = "wer_progress.png"
)

const (
	plotWidth  = 12 * vg.Inch
	plotHeight = 6 * vg.Inch
)

// mainPlotMetrics are the series overlaid on the primary plot.
var mainPlotMetrics = []string{
	metrics.MetricLoss,
	metrics.MetricValLoss,
	metrics.MetricAccuracy,
	metrics.MetricValAccuracy,
}

// werComponentMetrics are overlaid on the WER plot when non-empty.
var werComponentMetrics = []string{
	metrics.MetricSubstitutions,
	metrics.MetricDeletions,
	metrics.MetricInsertions,
}

// RenderPlots regenerates the plot PNGs from the full series and returns
// the paths written. The primary plot overlays the well-known metrics;
// the WER plot is written only when the WER series is non-empty,
// overlaying whichever component series have data. The output directory
// is created if absent and files of the same name are overwritten.
func RenderPlots(series map[string][]float64, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating plot directory: %w", err)
	}

	var written []string

	mainPath := filepath.Join(dir, MainPlotFile)
	if err := renderMainPlot(series, mainPath); err != nil {
		return written, err
	}
	written = append(written, mainPath)

	if len(series[metrics.MetricWER]) > 0 {
		werPath := filepath.Join(dir, WERPlotFile)
		if err := renderWERPlot(series, werPath); err != nil {
			return written, err
		}
		written = append(written, werPath)
	}

	return written, nil
}

func renderMainPlot(series map[string][]float64, path string) error {
	p := plot.New()
	p.Title.Text = "Training Progress - Main Metrics"
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Value"
	p.Add(plotter.NewGrid())

	idx := 0
	for _, name := range mainPlotMetrics {
		values := series[name]
		if len(values) == 0 {
			continue
		}
		if err := addLine(p, name, values, idx, nil); err != nil {
			return err
		}
		idx++
	}

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func renderWERPlot(series map[string][]float64, path string) error {
	p := plot.New()
	p.Title.Text = "WER Progress"
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Rate"
	p.Add(plotter.NewGrid())

	if err := addLine(p, metrics.MetricWER, series[metrics.MetricWER], 0, nil); err != nil {
		return err
	}

	for i, name := range werComponentMetrics {
		values := series[name]
		if len(values) == 0 {
			continue
		}
		// Dashed lines distinguish components from the rate.
		if err := addLine(p, name, values, i+1, plotutil.Dashes(i+1)); err != nil {
			return err
		}
	}

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// addLine plots values against their occurrence index.
func addLine(p *plot.Plot, name string, values []float64, colorIdx int, dashes []vg.Length) error {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i] = plotter.XY{X: float64(i), Y: v}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building line for %s: %w", name, err)
	}
	line.Color = plotutil.Color(colorIdx)
	if dashes != nil {
		line.Dashes = dashes
	}

	p.Add(line)
	p.Legend.Add(name, line)
	return nil
}
