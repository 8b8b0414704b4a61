package chart

import (
	"github.com/charmbracelet/log"

	"github.com/simplecharts/simplecharts/pkg/errors"
	"github.com/simplecharts/simplecharts/pkg/geom"
	"github.com/simplecharts/simplecharts/pkg/layout"
)

// DefaultContainerInset is the blank border around a chart.
const DefaultContainerInset = 5

// Chart places an optional title and legend around one plot.
type Chart struct {
	plot   *LinePlot
	title  *Label
	legend *Legend
	insets geom.Insets
	cfg    layout.Config
	logger *log.Logger
}

// Option configures a Chart.
type Option func(*Chart)

// WithTitle adds a title component.
func WithTitle(l *Label) Option {
	return func(c *Chart) { c.title = l }
}

// WithLegend adds a legend component.
func WithLegend(l *Legend) Option {
	return func(c *Chart) { c.legend = l }
}

// WithContainerInsets sets the blank border around the chart.
func WithContainerInsets(in geom.Insets) Option {
	return func(c *Chart) { c.insets = in }
}

// WithLayoutConfig sets the chart-level resolver settings.
func WithLayoutConfig(cfg layout.Config) Option {
	return func(c *Chart) { c.cfg = cfg }
}

// WithLogger sets the logger for layout messages.
func WithLogger(l *log.Logger) Option {
	return func(c *Chart) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewChart returns a chart around plot.
func NewChart(plot *LinePlot, opts ...Option) (*Chart, error) {
	if plot == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "plot is required")
	}
	c := &Chart{
		plot:   plot,
		insets: geom.Uniform(DefaultContainerInset),
		cfg:    layout.Config{MaxIterations: layout.DefaultMaxIterations},
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Chart) Plot() *LinePlot { return c.plot }
func (c *Chart) Title() *Label   { return c.title }
func (c *Chart) Legend() *Legend { return c.legend }

// components lists the edge components in registration order, followed by
// the plot.
func (c *Chart) components() []layout.Component {
	var comps []layout.Component
	if c.title != nil {
		comps = append(comps, c.title)
	}
	if c.legend != nil {
		comps = append(comps, c.legend)
	}
	return append(comps, c.plot)
}

// Layout resolves the chart for a width x height canvas and returns the
// settled geometry. Failure to converge is not an error: the last pass is
// used and the geometry carries a warning.
func (c *Chart) Layout(width, height float64) (Geometry, error) {
	if err := errors.ValidateDimensions(width, height); err != nil {
		return Geometry{}, err
	}

	outer := layout.NewResolver(layout.Chart, c.cfg, layout.WithLogger(c.logger))
	res := outer.Resolve(layout.Container{
		Bounds: geom.Rect{W: width, H: height},
		Insets: c.insets,
	}, c.components())
	inner := c.plot.Layout()

	g := Geometry{
		Width:      width,
		Height:     height,
		Plot:       c.plot.Bounds(),
		PlotArea:   inner.Plot,
		PlotInner:  inner.Inner,
		Iterations: res.Iterations + inner.Iterations,
		Converged:  res.Converged && inner.Converged,
	}
	for _, err := range []error{res.Err, inner.Err} {
		if err != nil {
			g.Warnings = append(g.Warnings, errors.UserMessage(err))
		}
	}
	if c.title != nil {
		g.Title = c.title.geometry()
	}
	if c.legend != nil {
		g.Legend = c.legend.geometry()
	}
	for _, p := range c.plot.Participants() {
		g.Axes = append(g.Axes, axisGeometry(p))
	}
	return g, nil
}
