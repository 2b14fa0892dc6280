package nfl

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/antoninbas/renderbench/internal/chart"
	"github.com/antoninbas/renderbench/internal/config"
)

var renderers = []string{Forward, Deferred}

// frameRange feeds the min-max error bars around the average frame time.
type frameRange struct {
	plotter.XYs
	plotter.YErrors
}

// RenderChart draws the 2x2 comparison panel: average frame time, FPS,
// frame time range and the derived speedup metrics.
func RenderChart(path string, cmp *Comparison, cfg config.ChartConfiguration) error {
	colors := []color.Color{chart.Fade(chart.Sky, 0.7), chart.Fade(chart.Coral, 0.7)}

	avg, err := valueBars("Average Frame Time", "Average Frame Time (ms)", colors,
		[]float64{cmp.Forward.AvgFrameTimeMs, cmp.Deferred.AvgFrameTimeMs}, "%.2f ms")
	if err != nil {
		return err
	}
	fps, err := valueBars("Rendering FPS", "Frames Per Second (FPS)", colors,
		[]float64{cmp.Forward.FPS, cmp.Deferred.FPS}, "%.2f")
	if err != nil {
		return err
	}
	spread, err := rangePlot(cmp)
	if err != nil {
		return err
	}
	metrics, err := metricsPlot(cmp)
	if err != nil {
		return err
	}

	grid := [][]*plot.Plot{{avg, fps}, {spread, metrics}}
	return chart.SaveGrid(grid, "NFL Renderer Comparison: Forward vs Deferred", path, cfg.PanelWidth, cfg.PanelHeight, cfg.DPI)
}

func valueBars(title, yLabel string, colors []color.Color, values []float64, format string) (*plot.Plot, error) {
	p := chart.New(title, "", yLabel)
	xs := make([]float64, len(values))
	labels := make([]string, len(values))
	for i, v := range values {
		if err := chart.AddBar(p, float64(i), v, colors[i]); err != nil {
			return nil, err
		}
		xs[i] = float64(i)
		labels[i] = fmt.Sprintf(format, v)
	}
	if err := chart.AddLabels(p, xs, values, labels); err != nil {
		return nil, err
	}
	p.NominalX(renderers...)
	p.Y.Min = 0
	return p, nil
}

func rangePlot(cmp *Comparison) (*plot.Plot, error) {
	p := chart.New("Frame Time Range (Min-Max)", "", "Frame Time (ms)")
	for i, r := range []*RendererSummary{&cmp.Forward, &cmp.Deferred} {
		c := chart.Sky
		if i == 1 {
			c = chart.Coral
		}
		data := frameRange{
			XYs:     plotter.XYs{{X: float64(i), Y: r.AvgFrameTimeMs}},
			YErrors: plotter.YErrors{{Low: r.AvgFrameTimeMs - r.MinFrameTimeMs, High: r.MaxFrameTimeMs - r.AvgFrameTimeMs}},
		}
		bars, err := plotter.NewYErrorBars(data)
		if err != nil {
			return nil, fmt.Errorf("unable to build frame time range: %w", err)
		}
		bars.LineStyle.Color = c
		bars.LineStyle.Width = vg.Points(2)
		bars.CapWidth = vg.Points(20)

		pt, err := plotter.NewScatter(data.XYs)
		if err != nil {
			return nil, fmt.Errorf("unable to build frame time range: %w", err)
		}
		pt.GlyphStyle.Color = c
		pt.GlyphStyle.Shape = draw.CircleGlyph{}
		pt.GlyphStyle.Radius = vg.Points(5)

		p.Add(bars, pt)
		p.Legend.Add(r.Renderer, pt)
	}
	p.NominalX(renderers...)
	p.X.Min, p.X.Max = -0.5, 1.5
	return p, nil
}

func metricsPlot(cmp *Comparison) (*plot.Plot, error) {
	p := chart.New("Performance Metrics", "", "Value")
	speedup, improvement := cmp.Speedup(), cmp.FPSImprovement()
	values := []float64{speedup, improvement}
	colors := []color.Color{chart.Fade(chart.Mint, 0.7), chart.Fade(chart.Orange, 0.7)}
	for i, v := range values {
		if err := chart.AddBar(p, float64(i), v, colors[i]); err != nil {
			return nil, err
		}
	}
	labels := []string{fmt.Sprintf("%.2fx", speedup), fmt.Sprintf("%.2f%%", improvement)}
	if err := chart.AddLabels(p, []float64{0, 1}, values, labels); err != nil {
		return nil, err
	}
	baseline := chart.HLine(1, chart.Red)
	zero := chart.HLine(0, chart.Black)
	zero.Dashes = nil
	zero.Width = vg.Points(0.5)
	p.Add(baseline, zero)
	p.Legend.Add("Baseline (1x)", baseline)
	p.NominalX("Speedup (Total Time)", "FPS Improvement %")
	return p, nil
}

// RenderHTML writes the interactive variant of the comparison panel.
func RenderHTML(path string, cmp *Comparison) error {
	return chart.SavePage(path,
		chart.HTMLBar("Average Frame Time", "", "ms", renderers, 0,
			chart.Series{Name: "Avg Frame Time", Values: []float64{cmp.Forward.AvgFrameTimeMs, cmp.Deferred.AvgFrameTimeMs}}),
		chart.HTMLBar("Rendering FPS", "", "FPS", renderers, 0,
			chart.Series{Name: "FPS", Values: []float64{cmp.Forward.FPS, cmp.Deferred.FPS}}),
		chart.HTMLBar("Frame Time Range", "", "ms", renderers, 0,
			chart.Series{Name: "Min", Values: []float64{cmp.Forward.MinFrameTimeMs, cmp.Deferred.MinFrameTimeMs}},
			chart.Series{Name: "Avg", Values: []float64{cmp.Forward.AvgFrameTimeMs, cmp.Deferred.AvgFrameTimeMs}},
			chart.Series{Name: "Max", Values: []float64{cmp.Forward.MaxFrameTimeMs, cmp.Deferred.MaxFrameTimeMs}}),
		chart.HTMLBar("Performance Metrics", "", "Value", []string{"Speedup", "FPS Improvement %"}, 1,
			chart.Series{Name: "Value", Values: []float64{cmp.Speedup(), cmp.FPSImprovement()}}),
	)
}

// WriteTable prints both renderers side by side on the console.
func WriteTable(w io.Writer, cmp *Comparison) {
	fmt.Fprintln(w, "\nResult")
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", 6))

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetHeader([]string{"Renderer", "TotalTimeMs", "AvgFrameTimeMs", "FPS", "MinFrameTimeMs", "MaxFrameTimeMs"})
	table.SetRowLine(true)
	for _, r := range []*RendererSummary{&cmp.Forward, &cmp.Deferred} {
		row := []string{
			r.Renderer,
			fmt.Sprintf("%.2f", r.TotalTimeMs),
			fmt.Sprintf("%.2f", r.AvgFrameTimeMs),
			fmt.Sprintf("%.2f", r.FPS),
			fmt.Sprintf("%.2f", r.MinFrameTimeMs),
			fmt.Sprintf("%.2f", r.MaxFrameTimeMs),
		}
		colors := []tablewriter.Colors{{}, {}, {}, {}, {}, {}}
		if r.Renderer == cmp.Winner() {
			colors[0] = tablewriter.Colors{tablewriter.Bold, tablewriter.FgGreenColor}
		}
		table.Rich(row, colors)
	}
	table.Render()
	fmt.Fprintf(w, "\nSpeedup: %.2fx, FPS improvement: %.1f%%\n", cmp.Speedup(), cmp.FPSImprovement())
}
