// Package layout resolves the geometry of a container whose edges hold
// components (axes, titles, legends) around a central plot.
//
// Edge components are sized by their content, and their content depends on
// how much room the plot leaves them: an axis shows more tick labels along a
// longer edge, and longer labels make the axis thicker, which shortens the
// other axes. [Resolver] breaks the cycle by iterating:
//
//  1. Start from the container bounds minus its insets.
//  2. Ask every visible edge component for its preferred size given the
//     previous pass's plot size and subtract the thicknesses.
//  3. Stop once the plot stops shrinking, or after Config.MaxIterations
//     passes.
//
// Bounds are handed to components only after the loop ends, so components
// never observe an intermediate layout.
package layout

import (
	"github.com/charmbracelet/log"

	"github.com/simplecharts/simplecharts/pkg/errors"
	"github.com/simplecharts/simplecharts/pkg/geom"
	"github.com/simplecharts/simplecharts/pkg/observability"
)

const eps = 1e-9

// Default resolver settings.
const (
	DefaultMaxIterations = 16
	DefaultPlotInset     = 3
)

// Component is an element attached to one edge of a container.
type Component interface {
	Position() geom.Position
	Visible() bool
	// PreferredSize returns the size the component wants when the plot is
	// avail. Only the dimension across the component's edge is used.
	PreferredSize(avail geom.Size) geom.Size
	SetBounds(r geom.Rect)
}

// Container is a read-only snapshot of the space being laid out.
type Container struct {
	Bounds geom.Rect
	Insets geom.Insets
}

// Flavor selects how edge components are placed once sizes are known.
type Flavor int

const (
	// Chart centers Left/Right components vertically at their preferred
	// height and stretches Top/Bottom components across the plot.
	Chart Flavor = iota
	// Plot stretches every component to the inner plot area, so axes line
	// up with the data region.
	Plot
)

func (f Flavor) String() string {
	if f == Plot {
		return "plot"
	}
	return "chart"
}

// Config controls the resolver.
type Config struct {
	MaxIterations int         `toml:"max_iterations" yaml:"max_iterations"`
	PlotInsets    geom.Insets `toml:"plot_insets" yaml:"plot_insets"`
}

// DefaultConfig returns the settings used for plots.
func DefaultConfig() Config {
	return Config{
		MaxIterations: DefaultMaxIterations,
		PlotInsets:    geom.Uniform(DefaultPlotInset),
	}
}

// Validate checks the settings.
func (c Config) Validate() error {
	if c.MaxIterations < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "max iterations must be at least 1, got %d", c.MaxIterations)
	}
	if !c.PlotInsets.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "plot insets must be finite and non-negative, got %+v", c.PlotInsets)
	}
	return nil
}

// Result is the settled geometry of one resolution.
type Result struct {
	// Plot is the residual rectangle left after edge components.
	Plot geom.Rect
	// Inner is Plot minus the plot insets: the region data is drawn in.
	Inner geom.Rect
	// Bounds holds one rectangle per component, in the order given.
	// Invisible components get the zero rectangle.
	Bounds []geom.Rect

	Iterations int
	Converged  bool
	// Err is set with LAYOUT_NON_CONVERGENCE when the iteration cap was
	// hit. The rest of the result is still usable.
	Err error
}

// Resolver computes fixed-point layouts.
type Resolver struct {
	flavor Flavor
	cfg    Config
	logger *log.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger for iteration and convergence messages.
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver returns a resolver. An invalid MaxIterations is replaced by
// the default.
func NewResolver(flavor Flavor, cfg Config, opts ...Option) *Resolver {
	if cfg.MaxIterations < 1 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	r := &Resolver{flavor: flavor, cfg: cfg, logger: log.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Flavor() Flavor { return r.flavor }
func (r *Resolver) Config() Config { return r.cfg }

// Thickness asks each visible edge component for its size given avail and
// returns the space taken on each side, with the individual sizes.
func Thickness(avail geom.Size, comps []Component) (geom.Insets, []geom.Size) {
	var in geom.Insets
	sizes := make([]geom.Size, len(comps))
	for i, c := range comps {
		if c == nil || !c.Visible() {
			continue
		}
		d := c.PreferredSize(avail)
		sizes[i] = d
		switch c.Position() {
		case geom.Top:
			in.Top += d.H
		case geom.Bottom:
			in.Bottom += d.H
		case geom.Left:
			in.Left += d.W
		case geom.Right:
			in.Right += d.W
		}
	}
	return in, sizes
}

// PreferredSize returns the container size needed to give the plot an
// inner area of plot, with the plot insets and edge components around it.
// Containers use it to report their own size when nested inside another.
func (r *Resolver) PreferredSize(plot geom.Size, comps []Component) geom.Size {
	taken, _ := Thickness(plot, comps)
	in := r.cfg.PlotInsets
	return geom.Size{
		W: plot.W + in.Horizontal() + taken.Horizontal(),
		H: plot.H + in.Vertical() + taken.Vertical(),
	}
}

// Resolve lays out comps around a plot inside c and assigns each
// component its bounds. The result is deterministic for identical inputs.
func (r *Resolver) Resolve(c Container, comps []Component) Result {
	flavor := r.flavor.String()
	hooks := observability.Layout()
	hooks.OnLayoutStart(flavor, len(comps))

	outer := c.Bounds.Inset(c.Insets)
	trial := outer.Inset(r.cfg.PlotInsets).Size()

	var (
		plot      geom.Rect
		sizes     []geom.Size
		iter      int
		converged bool
	)
	for iter = 1; iter <= r.cfg.MaxIterations; iter++ {
		var taken geom.Insets
		taken, sizes = Thickness(trial, comps)
		plot = outer.Inset(taken)
		next := plot.Inset(r.cfg.PlotInsets).Size()

		r.logger.Debug("layout pass", "flavor", flavor, "iteration", iter,
			"plot_width", plot.W, "plot_height", plot.H)
		hooks.OnLayoutIteration(flavor, iter, plot.W, plot.H)

		shrinking := next.W < trial.W-eps || next.H < trial.H-eps
		trial = next
		if !shrinking {
			converged = true
			break
		}
	}

	res := Result{
		Plot:       plot,
		Inner:      plot.Inset(r.cfg.PlotInsets),
		Iterations: min(iter, r.cfg.MaxIterations),
		Converged:  converged,
	}
	if !converged {
		res.Err = errors.New(errors.ErrCodeLayoutNonConvergence,
			"%s layout did not settle after %d iterations", flavor, r.cfg.MaxIterations)
		r.logger.Warn("layout did not converge; using last pass", "flavor", flavor,
			"iterations", r.cfg.MaxIterations, "plot_width", plot.W, "plot_height", plot.H)
	}

	res.Bounds = r.place(res.Plot, res.Inner, comps, sizes)
	for i, comp := range comps {
		if comp != nil {
			comp.SetBounds(res.Bounds[i])
		}
	}

	hooks.OnLayoutComplete(flavor, res.Iterations, res.Converged)
	return res
}

// place stacks components outward from the plot. The first component
// registered on an edge sits next to the plot.
func (r *Resolver) place(plot, inner geom.Rect, comps []Component, sizes []geom.Size) []geom.Rect {
	out := make([]geom.Rect, len(comps))
	left, right := plot.X, plot.Right()
	top, bottom := plot.Y, plot.Bottom()

	// along returns the span of a component along its edge.
	along := func(pos geom.Position, size geom.Size) (start, length float64) {
		horizontal := pos.Orientation() == geom.Horizontal
		switch {
		case r.flavor == Plot && horizontal:
			return inner.X, inner.W
		case r.flavor == Plot:
			return inner.Y, inner.H
		case horizontal:
			return plot.X, plot.W
		default:
			h := min(size.H, plot.H)
			return plot.Y + (plot.H-h)/2, h
		}
	}

	for i, c := range comps {
		if c == nil || !c.Visible() {
			continue
		}
		d := sizes[i]
		start, length := along(c.Position(), d)
		switch c.Position() {
		case geom.Left:
			left -= d.W
			out[i] = geom.Rect{X: left, Y: start, W: d.W, H: length}
		case geom.Right:
			out[i] = geom.Rect{X: right, Y: start, W: d.W, H: length}
			right += d.W
		case geom.Top:
			top -= d.H
			out[i] = geom.Rect{X: start, Y: top, W: length, H: d.H}
		case geom.Bottom:
			out[i] = geom.Rect{X: start, Y: bottom, W: length, H: d.H}
			bottom += d.H
		case geom.Center:
			out[i] = plot
		}
	}
	return out
}
