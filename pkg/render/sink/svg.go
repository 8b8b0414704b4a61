package sink

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo/float"

	"github.com/simplecharts/simplecharts/pkg/chart"
	"github.com/simplecharts/simplecharts/pkg/data"
	"github.com/simplecharts/simplecharts/pkg/fonts"
	"github.com/simplecharts/simplecharts/pkg/geom"
)

// DefaultPalette is the series colour cycle used when none is given.
var DefaultPalette = []string{"#1f77b4", "#d62728", "#2ca02c", "#ff7f0e", "#9467bd", "#8c564b"}

const (
	axisColor  = "#444"
	gridColor  = "#e5e5e5"
	textColor  = "#222"
	pointSize  = 2.5
	plotClipID = "plot-area"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	series     []*data.Series
	palette    []string
	background string
	points     bool
	grid       bool
	lineWidth  float64
}

func WithSeries(s ...*data.Series) SVGOption { return func(r *svgRenderer) { r.series = s } }
func WithPoints() SVGOption                  { return func(r *svgRenderer) { r.points = true } }
func WithGrid() SVGOption                    { return func(r *svgRenderer) { r.grid = true } }
func WithBackground(c string) SVGOption      { return func(r *svgRenderer) { r.background = c } }
func WithLineWidth(w float64) SVGOption      { return func(r *svgRenderer) { r.lineWidth = w } }

// WithPalette sets the series colours, cycled in order. An empty palette
// keeps the default.
func WithPalette(p []string) SVGOption {
	return func(r *svgRenderer) {
		if len(p) > 0 {
			r.palette = p
		}
	}
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{palette: DefaultPalette, background: "#ffffff", lineWidth: 1.5}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) color(i int) string { return r.palette[i%len(r.palette)] }

// SeriesColor returns the colour series i is drawn with under opts, for
// building a matching legend.
func SeriesColor(i int, opts ...SVGOption) string {
	r := newSVGRenderer(opts...)
	return r.color(i)
}

// RenderSVG draws g as an SVG document.
func RenderSVG(g chart.Geometry, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(g.Width, g.Height, fmt.Sprintf(`viewBox="0 0 %g %g"`, g.Width, g.Height))
	if g.Title != nil {
		canvas.Title(g.Title.Text)
	}
	canvas.Rect(0, 0, g.Width, g.Height, "fill:"+r.background)

	if r.grid {
		renderGrid(canvas, g)
	}
	renderSeries(canvas, &r, g)
	canvas.Rect(g.PlotArea.X, g.PlotArea.Y, g.PlotArea.W, g.PlotArea.H, "fill:none;stroke:"+axisColor)
	for _, a := range g.Axes {
		renderAxis(canvas, g.PlotArea, a)
	}
	if g.Title != nil {
		renderText(canvas, *g.Title)
	}
	if g.Legend != nil {
		renderLegend(canvas, *g.Legend)
	}

	canvas.End()
	return buf.Bytes()
}

func fontAttrs(f fonts.Face) []string {
	attrs := []string{
		fmt.Sprintf(`font-family="%s"`, f.CSSFamily()),
		fmt.Sprintf(`font-size="%g"`, f.Size),
		`fill="` + textColor + `"`,
	}
	if f.Bold {
		attrs = append(attrs, `font-weight="bold"`)
	}
	return attrs
}

func renderGrid(canvas *svg.SVG, g chart.Geometry) {
	in := g.PlotInner
	canvas.Group(`stroke="` + gridColor + `"`)
	for _, a := range g.Axes {
		for _, t := range a.Ticks {
			if a.Horizontal() {
				canvas.Line(t.Coord, in.Y, t.Coord, in.Bottom())
			} else {
				canvas.Line(in.X, t.Coord, in.Right(), t.Coord)
			}
		}
	}
	canvas.Gend()
}

// renderSeries draws each series as a path, clipped to the plot area.
// Non-finite points break the line.
func renderSeries(canvas *svg.SVG, r *svgRenderer, g chart.Geometry) {
	if len(g.Axes) < 2 || len(r.series) == 0 {
		return
	}
	area := g.PlotArea
	canvas.Def()
	canvas.ClipPath(`id="` + plotClipID + `"`)
	canvas.Rect(area.X, area.Y, area.W, area.H)
	canvas.ClipEnd()
	canvas.DefEnd()

	canvas.Group(`clip-path="url(#` + plotClipID + `)"`)
	for i, s := range r.series {
		color := r.color(i)
		var path []byte
		inLine := false
		for _, pt := range s.Points {
			x, y, _ := g.Project(pt)
			if !finite(x) || !finite(y) {
				inLine = false
				continue
			}
			if inLine {
				path = append(path, " L"...)
			} else {
				if len(path) > 0 {
					path = append(path, ' ')
				}
				path = append(path, 'M')
				inLine = true
			}
			path = strconv.AppendFloat(path, x, 'f', 2, 64)
			path = append(path, ' ')
			path = strconv.AppendFloat(path, y, 'f', 2, 64)
			if r.points {
				canvas.Circle(x, y, pointSize, "fill:"+color)
			}
		}
		if len(path) > 0 {
			canvas.Path(string(path), fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", color, r.lineWidth),
				fmt.Sprintf(`data-series="%d"`, i))
		}
	}
	canvas.Gend()
}

func renderAxis(canvas *svg.SVG, area geom.Rect, a chart.AxisGeometry) {
	b := a.Bounds
	mark := a.TickMarkLength
	labelGap := a.TickFace.Size / 2

	canvas.Group(`stroke="` + axisColor + `"`)
	for _, t := range a.Ticks {
		switch a.Position {
		case geom.Bottom:
			canvas.Line(t.Coord, b.Y, t.Coord, b.Y+mark)
		case geom.Top:
			canvas.Line(t.Coord, b.Bottom(), t.Coord, b.Bottom()-mark)
		case geom.Left:
			canvas.Line(b.Right(), t.Coord, b.Right()-mark, t.Coord)
		case geom.Right:
			canvas.Line(b.X, t.Coord, b.X+mark, t.Coord)
		}
	}
	canvas.Gend()

	attrs := fontAttrs(a.TickFace)
	for _, t := range a.Ticks {
		switch a.Position {
		case geom.Bottom:
			canvas.Text(t.Coord, b.Y+mark+labelGap, t.Label, append(attrs, `text-anchor="middle"`, `dy="1em"`)...)
		case geom.Top:
			canvas.Text(t.Coord, b.Bottom()-mark-labelGap, t.Label, append(attrs, `text-anchor="middle"`)...)
		case geom.Left:
			canvas.Text(b.Right()-mark-labelGap, t.Coord, t.Label, append(attrs, `text-anchor="end"`, `dy=".35em"`)...)
		case geom.Right:
			canvas.Text(b.X+mark+labelGap, t.Coord, t.Label, append(attrs, `text-anchor="start"`, `dy=".35em"`)...)
		}
	}

	if a.Label == "" {
		return
	}
	attrs = append(fontAttrs(a.LabelFace), `text-anchor="middle"`)
	switch a.Position {
	case geom.Bottom:
		canvas.Text(b.CenterX(), b.Bottom(), a.Label, attrs...)
	case geom.Top:
		canvas.Text(b.CenterX(), b.Y, a.Label, append(attrs, `dy="1em"`)...)
	case geom.Left:
		x, y := b.X, b.CenterY()
		canvas.Text(x, y, a.Label, append(attrs, `dy="1em"`, rotate(x, y))...)
	case geom.Right:
		x, y := b.Right(), b.CenterY()
		canvas.Text(x, y, a.Label, append(attrs, rotate(x, y))...)
	}
}

func rotate(x, y float64) string {
	return fmt.Sprintf(`transform="rotate(-90 %.2f %.2f)"`, x, y)
}

func renderText(canvas *svg.SVG, t chart.TextGeometry) {
	attrs := append(fontAttrs(t.Face), `text-anchor="middle"`, `dominant-baseline="central"`)
	x, y := t.Bounds.CenterX(), t.Bounds.CenterY()
	if t.Vertical {
		attrs = append(attrs, rotate(x, y))
	}
	canvas.Text(x, y, t.Text, attrs...)
}

func renderLegend(canvas *svg.SVG, l chart.LegendGeometry) {
	attrs := append(fontAttrs(l.Face), `dominant-baseline="central"`)
	for _, it := range l.Items {
		canvas.Rect(it.Swatch.X, it.Swatch.Y, it.Swatch.W, it.Swatch.H, "fill:"+it.Color)
		canvas.Text(it.Text.X, it.Text.CenterY(), it.Name, attrs...)
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
