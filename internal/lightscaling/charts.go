package lightscaling

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"

	"github.com/antoninbas/renderbench/internal/chart"
	"github.com/antoninbas/renderbench/internal/config"
)

type series struct {
	title  string
	yLabel string
	fwd    []float64
	def    []float64
}

// RenderCharts writes the five light scaling charts into dir, creating it
// if needed, and returns the paths written.
func RenderCharts(dir string, samples []Sample, cfg config.ChartConfiguration) ([]string, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples to chart")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create output directory: %w", err)
	}

	crossover, hasCrossover := Crossover(samples)
	fwdNorm, err := Normalize(column(samples, forwardTimeMs))
	if err != nil {
		return nil, fmt.Errorf("forward frame times: %w", err)
	}
	defNorm, err := Normalize(column(samples, deferredTimeMs))
	if err != nil {
		return nil, fmt.Errorf("deferred frame times: %w", err)
	}

	fps := series{"Forward vs Deferred Rendering: FPS by Light Count", "Frames Per Second (FPS)",
		column(samples, forwardFPS), column(samples, deferredFPS)}
	frameTime := series{"Forward vs Deferred Rendering: Frame Time by Light Count", "Frame Time (milliseconds)",
		column(samples, forwardTimeMs), column(samples, deferredTimeMs)}
	scaling := series{"Performance Scaling: How Each Renderer Handles More Lights\n(Lower is Better)", "Relative Frame Time (1 = baseline)",
		fwdNorm, defNorm}

	var plots [4]*plot.Plot
	var written []string
	save := func(p *plot.Plot, name string) error {
		path := filepath.Join(dir, name)
		if err := chart.SavePNG(p, path, cfg.Width, cfg.Height, cfg.DPI); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	for i, s := range []series{fps, frameTime} {
		p, err := comparisonPlot(samples, s, crossover, hasCrossover, "Forward Renderer", "Deferred Renderer")
		if err != nil {
			return written, err
		}
		if err := save(p, Charts[i]); err != nil {
			return written, err
		}
	}

	p, err := speedupPlot(samples, "Deferred Renderer Speedup by Light Count\n(>1.0 = Deferred Faster, <1.0 = Forward Faster)", "Speedup (Forward/Deferred Time)", true)
	if err != nil {
		return written, err
	}
	if err := save(p, SpeedupChart); err != nil {
		return written, err
	}

	p, err = scalingPlot(samples, scaling, "Forward Renderer", "Deferred Renderer", true)
	if err != nil {
		return written, err
	}
	if err := save(p, NormalizedChart); err != nil {
		return written, err
	}

	// The combined panel uses short titles and legends.
	if plots[0], err = comparisonPlot(samples, series{"FPS Comparison", "FPS", fps.fwd, fps.def}, crossover, hasCrossover, "Forward", "Deferred"); err != nil {
		return written, err
	}
	if plots[1], err = comparisonPlot(samples, series{"Frame Time Comparison", "Frame Time (ms)", frameTime.fwd, frameTime.def}, crossover, hasCrossover, "Forward", "Deferred"); err != nil {
		return written, err
	}
	if plots[2], err = speedupPlot(samples, "Deferred Speedup (>1 = Deferred Faster)", "Speedup", false); err != nil {
		return written, err
	}
	if plots[3], err = scalingPlot(samples, series{"Performance Scaling (1 = baseline)", "Relative Frame Time", fwdNorm, defNorm}, "Forward", "Deferred", false); err != nil {
		return written, err
	}

	title := "Forward vs Deferred Rendering: Light Scaling Analysis\n" + crossoverText(crossover, hasCrossover)
	path := filepath.Join(dir, CombinedChart)
	grid := [][]*plot.Plot{{plots[0], plots[1]}, {plots[2], plots[3]}}
	if err := chart.SaveGrid(grid, title, path, cfg.PanelWidth, cfg.PanelHeight, cfg.DPI); err != nil {
		return written, err
	}
	written = append(written, path)
	return written, nil
}

func crossoverText(crossover int, ok bool) string {
	if ok {
		return fmt.Sprintf("Crossover: ~%d lights", crossover)
	}
	return "No crossover detected"
}

func comparisonPlot(samples []Sample, s series, crossover int, hasCrossover bool, fwdName, defName string) (*plot.Plot, error) {
	p := chart.New(s.title, "Number of Lights", s.yLabel)
	xs := lights(samples)
	if err := chart.AddSeries(p, fwdName, xs, s.fwd, chart.Blue, draw.CircleGlyph{}); err != nil {
		return nil, err
	}
	if err := chart.AddSeries(p, defName, xs, s.def, chart.Red, draw.BoxGlyph{}); err != nil {
		return nil, err
	}
	if hasCrossover {
		l := chart.VLine(float64(crossover), chart.Fade(chart.Green, 0.7))
		p.Add(l)
		p.Legend.Add(fmt.Sprintf("Crossover (~%d lights)", crossover), l)
	}
	return p, nil
}

func speedupPlot(samples []Sample, title, yLabel string, legend bool) (*plot.Plot, error) {
	p := chart.New(title, "Number of Lights", yLabel)
	labels := make([]string, len(samples))
	for i, s := range samples {
		c := chart.Fade(chart.Blue, 0.7)
		if s.Speedup > CrossoverThreshold {
			c = chart.Fade(chart.Green, 0.7)
		}
		if err := chart.AddBar(p, float64(i), s.Speedup, c); err != nil {
			return nil, err
		}
		labels[i] = strconv.Itoa(s.LightCount)
	}
	p.NominalX(labels...)
	equal := chart.HLine(CrossoverThreshold, chart.Red)
	equal.Width *= 1.5
	p.Add(equal)
	if legend {
		p.Legend.Add("Equal Performance", equal)
	}
	return p, nil
}

func scalingPlot(samples []Sample, s series, fwdName, defName string, legend bool) (*plot.Plot, error) {
	p := chart.New(s.title, "Number of Lights", s.yLabel)
	xs := lights(samples)
	if err := chart.AddSeries(p, fwdName, xs, s.fwd, chart.Blue, draw.CircleGlyph{}); err != nil {
		return nil, err
	}
	if err := chart.AddSeries(p, defName, xs, s.def, chart.Red, draw.BoxGlyph{}); err != nil {
		return nil, err
	}
	base := chart.HLine(1, chart.Fade(chart.Gray, 0.5))
	p.Add(base)
	if legend {
		p.Legend.Add(fmt.Sprintf("Baseline (%d light%s)", samples[0].LightCount, plural(samples[0].LightCount)), base)
	}
	return p, nil
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// RenderHTML writes an interactive version of the charts into dir.
func RenderHTML(dir string, samples []Sample) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("unable to create output directory: %w", err)
	}
	labels := make([]string, len(samples))
	for i, s := range samples {
		labels[i] = strconv.Itoa(s.LightCount)
	}
	fwdNorm, err := Normalize(column(samples, forwardTimeMs))
	if err != nil {
		return "", err
	}
	defNorm, err := Normalize(column(samples, deferredTimeMs))
	if err != nil {
		return "", err
	}

	crossover, ok := Crossover(samples)
	path := filepath.Join(dir, HTMLReport)
	err = chart.SavePage(path,
		chart.HTMLLine("FPS by Light Count ("+crossoverText(crossover, ok)+")", "Lights", "FPS", labels,
			chart.Series{Name: "Forward", Values: column(samples, forwardFPS)},
			chart.Series{Name: "Deferred", Values: column(samples, deferredFPS)}),
		chart.HTMLLine("Frame Time by Light Count", "Lights", "ms", labels,
			chart.Series{Name: "Forward", Values: column(samples, forwardTimeMs)},
			chart.Series{Name: "Deferred", Values: column(samples, deferredTimeMs)}),
		chart.HTMLBar("Deferred Speedup", "Lights", "Speedup", labels, CrossoverThreshold,
			chart.Series{Name: "Speedup", Values: column(samples, speedup)}),
		chart.HTMLLine("Performance Scaling (1 = baseline)", "Lights", "Relative Frame Time", labels,
			chart.Series{Name: "Forward", Values: fwdNorm},
			chart.Series{Name: "Deferred", Values: defNorm}),
	)
	if err != nil {
		return "", err
	}
	return path, nil
}
