// Package chart holds the plotting helpers shared by the report generators.
package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	Blue   = color.RGBA{B: 0xff, A: 0xff}
	Red    = color.RGBA{R: 0xff, A: 0xff}
	Green  = color.RGBA{G: 0x80, A: 0xff}
	Gray   = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	Black  = color.RGBA{A: 0xff}
	Sky    = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}
	Coral  = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	Mint   = color.RGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff}
	Orange = color.RGBA{R: 0xf3, G: 0x9c, B: 0x12, A: 0xff}
)

var dashed = []vg.Length{vg.Points(6), vg.Points(4)}

// Fade returns c with the given opacity in [0,1].
func Fade(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(alpha * 0xff))}
}

// New creates a plot with a title, axis labels and a light background grid.
func New(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	g := plotter.NewGrid()
	g.Vertical.Color = Fade(Gray, 0.3)
	g.Horizontal.Color = Fade(Gray, 0.3)
	p.Add(g)
	p.Legend.Top = true
	return p
}

// AddSeries draws ys against xs as a line with markers and adds a legend
// entry for it.
func AddSeries(p *plot.Plot, name string, xs, ys []float64, c color.Color, shape draw.GlyphDrawer) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("series '%s' has %d x values and %d y values", name, len(xs), len(ys))
	}
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	l, s, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("unable to build series '%s': %w", name, err)
	}
	l.Color = c
	l.Width = vg.Points(2)
	s.GlyphStyle.Color = c
	s.GlyphStyle.Shape = shape
	s.GlyphStyle.Radius = vg.Points(4)
	p.Add(l, s)
	if name != "" {
		p.Legend.Add(name, l, s)
	}
	return nil
}

// AddBar adds a single bar centered on x. Bars are added one at a time so
// that each one can carry its own color.
func AddBar(p *plot.Plot, x, value float64, c color.Color) error {
	b, err := plotter.NewBarChart(plotter.Values{value}, vg.Points(28))
	if err != nil {
		return fmt.Errorf("unable to build bar: %w", err)
	}
	b.XMin = x
	b.Color = c
	b.LineStyle.Color = Black
	b.LineStyle.Width = vg.Points(1)
	p.Add(b)
	return nil
}

// AddLabels writes a text label above each point.
func AddLabels(p *plot.Plot, xs, ys []float64, labels []string) error {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
	if err != nil {
		return fmt.Errorf("unable to build labels: %w", err)
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = text.XCenter
		l.TextStyle[i].YAlign = text.YBottom
	}
	p.Add(l)
	return nil
}

// RefLine is a horizontal or vertical reference line spanning the whole
// data area.
type RefLine struct {
	Vertical bool
	Value    float64
	draw.LineStyle
}

func VLine(x float64, c color.Color) *RefLine {
	return &RefLine{Vertical: true, Value: x, LineStyle: draw.LineStyle{Color: c, Width: vg.Points(1.5), Dashes: dashed}}
}

func HLine(y float64, c color.Color) *RefLine {
	return &RefLine{Value: y, LineStyle: draw.LineStyle{Color: c, Width: vg.Points(1.5), Dashes: dashed}}
}

func (r *RefLine) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	if r.Vertical {
		x := trX(r.Value)
		c.StrokeLine2(r.LineStyle, x, c.Min.Y, x, c.Max.Y)
		return
	}
	y := trY(r.Value)
	c.StrokeLine2(r.LineStyle, c.Min.X, y, c.Max.X, y)
}

// DataRange keeps the line inside the axes without widening the other axis.
func (r *RefLine) DataRange() (xmin, xmax, ymin, ymax float64) {
	if r.Vertical {
		return r.Value, r.Value, math.Inf(1), math.Inf(-1)
	}
	return math.Inf(1), math.Inf(-1), r.Value, r.Value
}

func (r *RefLine) Thumbnail(c *draw.Canvas) {
	y := (c.Min.Y + c.Max.Y) / 2
	c.StrokeLine2(r.LineStyle, c.Min.X, y, c.Max.X, y)
}

func newImage(width, height float64, dpi int) *vgimg.Canvas {
	return vgimg.NewWith(
		vgimg.UseWH(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch),
		vgimg.UseDPI(dpi),
	)
}

func writePNG(img *vgimg.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create '%s': %w", path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("unable to write '%s': %w", path, err)
	}
	return f.Close()
}

// SavePNG renders p into a width x height inch PNG at the given dpi.
func SavePNG(p *plot.Plot, path string, width, height float64, dpi int) error {
	img := newImage(width, height, dpi)
	p.Draw(draw.New(img))
	return writePNG(img, path)
}

// SaveGrid lays plots out in rows and columns under a figure title and writes
// the result as a PNG.
func SaveGrid(plots [][]*plot.Plot, title, path string, width, height float64, dpi int) error {
	if len(plots) == 0 {
		return fmt.Errorf("no plots to lay out")
	}
	img := newImage(width, height, dpi)
	dc := draw.New(img)

	if title != "" {
		sty := text.Style{
			Color:   Black,
			Font:    font.From(plot.DefaultFont, vg.Points(16)),
			XAlign:  text.XCenter,
			YAlign:  text.YTop,
			Handler: plot.DefaultTextHandler,
		}
		pad := vg.Points(8)
		dc.FillText(sty, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - pad}, title)
		dc = draw.Crop(dc, 0, 0, 0, -(sty.Height(title) + 2*pad))
	}

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      len(plots[0]),
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		for i := range plots[j] {
			if plots[j][i] != nil {
				plots[j][i].Draw(canvases[j][i])
			}
		}
	}
	return writePNG(img, path)
}

// Probe checks that the plotting backend can lay out text and draw, which
// needs its fonts to load.
func Probe() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("chart backend unavailable: %v", r)
		}
	}()
	p := New("probe", "x", "y")
	if err := AddSeries(p, "probe", []float64{0, 1}, []float64{0, 1}, Blue, draw.CircleGlyph{}); err != nil {
		return err
	}
	p.Draw(draw.New(vgimg.New(2*vg.Inch, 2*vg.Inch)))
	return nil
}
