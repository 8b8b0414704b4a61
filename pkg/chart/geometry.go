package chart

import (
	"github.com/simplecharts/simplecharts/pkg/axis"
	"github.com/simplecharts/simplecharts/pkg/data"
	"github.com/simplecharts/simplecharts/pkg/fonts"
	"github.com/simplecharts/simplecharts/pkg/geom"
)

// Geometry is a settled layout of a chart. It holds values only and stays
// valid when the chart is changed afterwards.
type Geometry struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Plot is the rectangle given to the plot, axes included.
	Plot geom.Rect `json:"plot"`
	// PlotArea is what remains of Plot after the axes.
	PlotArea geom.Rect `json:"plot_area"`
	// PlotInner is PlotArea minus the plot insets; data is drawn here.
	PlotInner geom.Rect `json:"plot_inner"`

	Title  *TextGeometry   `json:"title,omitempty"`
	Legend *LegendGeometry `json:"legend,omitempty"`
	// Axes holds the domain axis followed by the range axis.
	Axes []AxisGeometry `json:"axes"`

	// Iterations is the number of resolver passes, chart and plot
	// combined.
	Iterations int      `json:"iterations"`
	Converged  bool     `json:"converged"`
	Warnings   []string `json:"warnings,omitempty"`
}

// TextGeometry places a single line of text.
type TextGeometry struct {
	Text     string     `json:"text"`
	Face     fonts.Face `json:"face"`
	Bounds   geom.Rect  `json:"bounds"`
	Vertical bool       `json:"vertical,omitempty"`
}

// LegendGeometry places a legend and its entries.
type LegendGeometry struct {
	Bounds geom.Rect    `json:"bounds"`
	Face   fonts.Face   `json:"face"`
	Items  []LegendItem `json:"items"`
}

// LegendItem is one positioned legend entry.
type LegendItem struct {
	Name   string    `json:"name"`
	Color  string    `json:"color"`
	Swatch geom.Rect `json:"swatch"`
	Text   geom.Rect `json:"text"`
}

// AxisGeometry is a laid-out axis with its ticks.
type AxisGeometry struct {
	Position       geom.Position  `json:"position"`
	Label          string         `json:"label,omitempty"`
	LabelFace      fonts.Face     `json:"label_face"`
	TickFace       fonts.Face     `json:"tick_face"`
	Kind           string         `json:"kind"`
	Bounds         geom.Rect      `json:"bounds"`
	Transform      axis.Transform `json:"transform"`
	Inverted       bool           `json:"inverted,omitempty"`
	TickMarkLength float64        `json:"tick_mark_length"`
	Step           float64        `json:"step"`
	Ticks          []TickGeometry `json:"ticks"`
}

// TickGeometry is one tick at an absolute pixel coordinate along its axis.
type TickGeometry struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Coord float64 `json:"coord"`
}

// Horizontal reports whether the axis runs left to right.
func (g AxisGeometry) Horizontal() bool {
	return g.Position.Orientation() == geom.Horizontal
}

// Map returns the absolute pixel coordinate of v along the axis: X for a
// horizontal axis, Y for a vertical one.
func (g AxisGeometry) Map(v float64) float64 {
	if g.Horizontal() {
		return g.Bounds.X + g.Transform.ValueToCoord(v)
	}
	return g.Bounds.Y + g.Transform.ValueToCoord(v)
}

func axisGeometry(p *axis.Participant) AxisGeometry {
	a := p.Axis()
	cfg := a.Config()
	g := AxisGeometry{
		Position:       a.Position(),
		Label:          a.Label(),
		LabelFace:      cfg.AxisLabelFace,
		TickFace:       cfg.TickLabelFace,
		Kind:           a.TickFactory().Kind(),
		Bounds:         p.Bounds(),
		Transform:      a.Transform(),
		Inverted:       a.IsInverted(),
		TickMarkLength: cfg.TickMarkLength,
	}
	if !a.IsVisible() {
		return g
	}
	ticks := p.Ticks(a.Length())
	g.Step = ticks.Step
	g.Ticks = make([]TickGeometry, len(ticks.Ticks))
	for i, t := range ticks.Ticks {
		g.Ticks[i] = TickGeometry{Value: t.Value, Label: t.Label, Coord: g.Map(t.Value)}
	}
	return g
}

// Project maps a data point to absolute pixel coordinates through the
// domain and range axes. ok is false if the geometry has no axes.
func (g Geometry) Project(pt data.Point) (x, y float64, ok bool) {
	if len(g.Axes) < 2 {
		return 0, 0, false
	}
	return g.Axes[0].Map(pt.X), g.Axes[1].Map(pt.Y), true
}
