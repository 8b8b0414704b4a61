package chart

import (
	"encoding/json"
	"io"
	"math"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/simplecharts/simplecharts/pkg/axis"
	"github.com/simplecharts/simplecharts/pkg/data"
	"github.com/simplecharts/simplecharts/pkg/errors"
	"github.com/simplecharts/simplecharts/pkg/fonts"
	"github.com/simplecharts/simplecharts/pkg/geom"
)

// mono measures every rune as 6px wide and every line as 12px tall.
var mono = fonts.MeasurerFunc(func(text string, _ fonts.Face) fonts.Extents {
	return fonts.Extents{Width: 6 * float64(len([]rune(text))), Height: 12, Ascent: 10, Descent: 2}
})

func quiet() *log.Logger { return log.New(io.Discard) }

func newPlot(t *testing.T, opts PlotOptions) *LinePlot {
	t.Helper()
	opts.Logger = quiet()
	p, err := NewLinePlot(mono, opts)
	if err != nil {
		t.Fatalf("NewLinePlot() error: %v", err)
	}
	t.Cleanup(p.Close)
	return p
}

func sample() *data.Collection {
	return &data.Collection{Series: []*data.Series{
		{Name: "a", Points: []data.Point{{X: 0, Y: 10}, {X: 50, Y: 40}, {X: 100, Y: 20}}},
	}}
}

func TestLabelPreferredSize(t *testing.T) {
	top, _ := NewLabel("Title", geom.Top, fonts.DefaultTitleFace, mono)
	if got := top.PreferredSize(geom.Size{W: 200, H: 100}); got != (geom.Size{W: 200, H: 18}) {
		t.Errorf("top PreferredSize() = %+v, want {200 18}", got)
	}

	left, _ := NewLabel("Title", geom.Left, fonts.DefaultTitleFace, mono)
	if got := left.PreferredSize(geom.Size{W: 200, H: 100}); got != (geom.Size{W: 18, H: 36}) {
		t.Errorf("left PreferredSize() = %+v, want {18 36}", got)
	}

	empty, _ := NewLabel("", geom.Top, fonts.DefaultTitleFace, mono)
	if empty.Visible() {
		t.Error("empty label is visible")
	}
}

func TestNewLabelErrors(t *testing.T) {
	if _, err := NewLabel("x", geom.Top, fonts.Face{}, nil); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("nil measurer error = %v, want INVALID_ARGUMENT", err)
	}
	if _, err := NewLabel("x", geom.Center, fonts.Face{}, mono); !errors.Is(err, errors.ErrCodeInvalidPosition) {
		t.Errorf("center error = %v, want INVALID_POSITION", err)
	}
}

func TestLegendPreferredSize(t *testing.T) {
	entries := []LegendEntry{{Name: "abc", Color: "#f00"}, {Name: "abc", Color: "#0f0"}}

	tests := []struct {
		name  string
		pos   geom.Position
		avail geom.Size
		want  geom.Size
	}{
		{"bottom one row", geom.Bottom, geom.Size{W: 106, H: 100}, geom.Size{W: 106, H: 18}},
		{"bottom wrapped", geom.Bottom, geom.Size{W: 66, H: 100}, geom.Size{W: 66, H: 30}},
		{"right stacked", geom.Right, geom.Size{W: 300, H: 300}, geom.Size{W: 35, H: 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLegend(entries, tt.pos, fonts.DefaultTickLabelFace, mono)
			if err != nil {
				t.Fatal(err)
			}
			if got := l.PreferredSize(tt.avail); got != tt.want {
				t.Errorf("PreferredSize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLegendItems(t *testing.T) {
	l, _ := NewLegend([]LegendEntry{{Name: "a"}, {Name: "bb"}}, geom.Right, fonts.DefaultTickLabelFace, mono)
	l.SetBounds(geom.Rect{X: 100, Y: 50, W: 40, H: 30})

	items := l.Items()
	if len(items) != 2 {
		t.Fatalf("len(Items()) = %d, want 2", len(items))
	}
	if got := items[0].Swatch; got != (geom.Rect{X: 103, Y: 55, W: 8, H: 8}) {
		t.Errorf("Swatch = %+v", got)
	}
	if got := items[1].Text; got != (geom.Rect{X: 114, Y: 65, W: 12, H: 12}) {
		t.Errorf("Text = %+v", got)
	}
}

func TestLinePlotTracksAxisChanges(t *testing.T) {
	p := newPlot(t, DefaultPlotOptions())
	p.SetBounds(geom.Rect{W: 400, H: 300})
	p.Layout()
	if p.Dirty() {
		t.Fatal("Dirty() after Layout = true")
	}

	p.SetData(sample())
	if !p.Dirty() {
		t.Error("Dirty() after SetData = false")
	}
	p.Layout()

	before := p.Changes()
	if err := p.Domain().ZoomRange(0.25, 0.75); err != nil {
		t.Fatal(err)
	}
	if !p.Dirty() || p.Changes() == before {
		t.Error("zoom did not mark the plot dirty")
	}

	p.Close()
	p.Layout()
	p.Range().Pan(0.1)
	if p.Dirty() {
		t.Error("closed plot still observes its axes")
	}
}

func TestLinePlotSetDataAutoRanges(t *testing.T) {
	p := newPlot(t, DefaultPlotOptions())
	p.SetData(sample())

	if got := p.Domain().Range(); got.Lower() >= 0 || got.Upper() <= 100 {
		t.Errorf("domain range = %v, want [0,100] plus margins", got)
	}
	if got := p.Range().Range(); got.Lower() >= 10 || got.Upper() <= 40 {
		t.Errorf("range range = %v, want [10,40] plus margins", got)
	}

	// No data leaves the default range alone.
	q := newPlot(t, DefaultPlotOptions())
	q.SetData(&data.Collection{})
	if got := q.Range().Range(); !got.Equal(axis.DefaultRange) {
		t.Errorf("empty data range = %v, want %v", got, axis.DefaultRange)
	}
}

func TestLinePlotTimeDomain(t *testing.T) {
	opts := DefaultPlotOptions()
	opts.Time = true
	p := newPlot(t, opts)
	if got := p.Domain().TickFactory().Kind(); got != "calendar" {
		t.Errorf("domain factory = %q, want calendar", got)
	}
	if got := p.Range().TickFactory().Kind(); got != "number" {
		t.Errorf("range factory = %q, want number", got)
	}
}

func TestNewLinePlotInvalidConfig(t *testing.T) {
	opts := DefaultPlotOptions()
	opts.Axis.LowerMargin = -1
	opts.Logger = quiet()
	if _, err := NewLinePlot(mono, opts); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("NewLinePlot() error = %v, want INVALID_ARGUMENT", err)
	}
	if _, err := NewLinePlot(nil, DefaultPlotOptions()); err == nil {
		t.Error("NewLinePlot(nil measurer) error = nil")
	}
}

func newChart(t *testing.T) *Chart {
	t.Helper()
	opts := DefaultPlotOptions()
	opts.DomainLabel = "time"
	opts.RangeLabel = "load"
	p := newPlot(t, opts)
	p.SetData(sample())

	title, _ := NewLabel("Title", geom.Top, fonts.DefaultTitleFace, mono)
	c, err := NewChart(p, WithTitle(title), WithLogger(quiet()))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestChartLayout(t *testing.T) {
	c := newChart(t)
	g, err := c.Layout(400, 300)
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}

	if !g.Converged || len(g.Warnings) != 0 {
		t.Errorf("Converged = %v, warnings = %v", g.Converged, g.Warnings)
	}
	if g.Title == nil || g.Title.Bounds != (geom.Rect{X: 5, Y: 5, W: 390, H: 18}) {
		t.Errorf("Title = %+v, want bounds {5 5 390 18}", g.Title)
	}
	if g.Plot != (geom.Rect{X: 5, Y: 23, W: 390, H: 272}) {
		t.Errorf("Plot = %+v, want {5 23 390 272}", g.Plot)
	}
	if len(g.Axes) != 2 {
		t.Fatalf("len(Axes) = %d, want 2", len(g.Axes))
	}

	domain, value := g.Axes[0], g.Axes[1]
	if domain.Position != geom.Bottom || value.Position != geom.Left {
		t.Errorf("axis positions = %v, %v", domain.Position, value.Position)
	}
	if domain.Bounds.X != g.PlotInner.X || domain.Bounds.W != g.PlotInner.W {
		t.Errorf("domain bounds %+v not aligned with inner %+v", domain.Bounds, g.PlotInner)
	}
	if value.Bounds.Y != g.PlotInner.Y || value.Bounds.H != g.PlotInner.H {
		t.Errorf("range bounds %+v not aligned with inner %+v", value.Bounds, g.PlotInner)
	}
	if domain.Bounds.Y != g.PlotArea.Bottom() || value.Bounds.Right() != g.PlotArea.X {
		t.Errorf("axes not adjacent to plot area %+v", g.PlotArea)
	}

	for _, a := range g.Axes {
		if len(a.Ticks) == 0 {
			t.Errorf("%v axis has no ticks", a.Position)
		}
		lo, hi := g.PlotInner.X, g.PlotInner.Right()
		if !a.Horizontal() {
			lo, hi = g.PlotInner.Y, g.PlotInner.Bottom()
		}
		for _, tk := range a.Ticks {
			if tk.Coord < lo-1e-9 || tk.Coord > hi+1e-9 {
				t.Errorf("%v tick %v at %v outside [%v, %v]", a.Position, tk.Value, tk.Coord, lo, hi)
			}
		}
	}
}

func TestChartLayoutDeterministic(t *testing.T) {
	a, _ := newChart(t).Layout(640, 480)
	b, _ := newChart(t).Layout(640, 480)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical charts produced different geometry")
	}

	c := newChart(t)
	first, _ := c.Layout(640, 480)
	second, _ := c.Layout(640, 480)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated Layout() produced different geometry")
	}
}

func TestChartLayoutInvalidSize(t *testing.T) {
	if _, err := newChart(t).Layout(0, 100); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Layout(0, 100) error = %v, want INVALID_INPUT", err)
	}
}

func TestGeometryProject(t *testing.T) {
	g, err := newChart(t).Layout(400, 300)
	if err != nil {
		t.Fatal(err)
	}
	lowX := g.Axes[0].Transform.Range.Lower()
	lowY := g.Axes[1].Transform.Range.Lower()

	x, y, ok := g.Project(data.Point{X: lowX, Y: lowY})
	if !ok {
		t.Fatal("Project() ok = false")
	}
	if x != g.PlotInner.X || y != g.PlotInner.Bottom() {
		t.Errorf("Project(lower corner) = (%v, %v), want (%v, %v)", x, y, g.PlotInner.X, g.PlotInner.Bottom())
	}

	if _, _, ok := (Geometry{}).Project(data.Point{}); ok {
		t.Error("Project() on empty geometry ok = true")
	}
}

func TestChartLayoutHugeValues(t *testing.T) {
	p := newPlot(t, DefaultPlotOptions())
	p.SetData(&data.Collection{Series: []*data.Series{
		{Name: "wide", Points: []data.Point{{X: 0, Y: -1e308}, {X: 1, Y: 1e308}}},
	}})
	c, err := NewChart(p, WithLogger(quiet()))
	if err != nil {
		t.Fatal(err)
	}
	g, err := c.Layout(800, 600)
	if err != nil {
		t.Fatal(err)
	}

	if len(g.Axes[1].Ticks) == 0 {
		t.Errorf("range axis has no ticks for %v", g.Axes[1].Transform.Range)
	}
	x, y, _ := g.Project(data.Point{X: 0.5, Y: 0})
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(y, 0) {
		t.Errorf("Project(0.5, 0) = (%v, %v), want finite", x, y)
	}

	b, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("json.Marshal(Geometry) error = %v", err)
	}
	var back Geometry
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("json.Unmarshal(Geometry) error = %v", err)
	}
	if !back.Axes[1].Transform.Range.Equal(g.Axes[1].Transform.Range) {
		t.Errorf("round trip range = %v, want %v", back.Axes[1].Transform.Range, g.Axes[1].Transform.Range)
	}
}

func TestChartWithLegend(t *testing.T) {
	p := newPlot(t, DefaultPlotOptions())
	p.SetData(sample())
	legend, _ := NewLegend([]LegendEntry{{Name: "a", Color: "#000"}}, geom.Right, fonts.DefaultTickLabelFace, mono)

	c, _ := NewChart(p, WithLegend(legend), WithLogger(quiet()), WithContainerInsets(geom.Insets{}))
	g, err := c.Layout(300, 200)
	if err != nil {
		t.Fatal(err)
	}
	if g.Legend == nil || len(g.Legend.Items) != 1 {
		t.Fatalf("Legend = %+v", g.Legend)
	}
	// itemWidth = 8 + 3 + 6, plus 3px padding each side.
	if got := g.Legend.Bounds; got.X != 277 || got.W != 23 {
		t.Errorf("legend bounds = %+v, want X=277 W=23", got)
	}
	if g.Plot.W != 277 {
		t.Errorf("Plot.W = %v, want 277", g.Plot.W)
	}
}
