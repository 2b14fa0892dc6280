package chart

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type Series struct {
	Name   string
	Values []float64
}

func globalOpts(title, xName, yName string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	}
}

// HTMLLine builds an interactive line chart over categorical x labels.
func HTMLLine(title, xName, yName string, xLabels []string, series ...Series) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(globalOpts(title, xName, yName)...)
	line.SetXAxis(xLabels)
	for _, s := range series {
		data := make([]opts.LineData, 0, len(s.Values))
		for _, v := range s.Values {
			data = append(data, opts.LineData{Value: v})
		}
		line.AddSeries(s.Name, data)
	}
	return line
}

// HTMLBar builds an interactive bar chart. A non-zero baseline is drawn as a
// mark line on every series.
func HTMLBar(title, xName, yName string, xLabels []string, baseline float64, series ...Series) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts(title, xName, yName)...)
	bar.SetXAxis(xLabels)
	var seriesOpts []charts.SeriesOpts
	if baseline != 0 {
		seriesOpts = append(seriesOpts, charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
			Name:  "Baseline",
			YAxis: baseline,
		}))
	}
	for _, s := range series {
		data := make([]opts.BarData, 0, len(s.Values))
		for _, v := range s.Values {
			data = append(data, opts.BarData{Value: v})
		}
		bar.AddSeries(s.Name, data, seriesOpts...)
	}
	return bar
}

// SavePage writes all charts into a single HTML page.
func SavePage(path string, cs ...components.Charter) error {
	page := components.NewPage()
	page.AddCharts(cs...)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create '%s': %w", path, err)
	}
	if err := page.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("unable to render '%s': %w", path, err)
	}
	return f.Close()
}
