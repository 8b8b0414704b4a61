package chart

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/simplecharts/simplecharts/pkg/axis"
	"github.com/simplecharts/simplecharts/pkg/data"
	"github.com/simplecharts/simplecharts/pkg/fonts"
	"github.com/simplecharts/simplecharts/pkg/geom"
	"github.com/simplecharts/simplecharts/pkg/layout"
)

var _ layout.Component = (*LinePlot)(nil)

// PlotOptions configures a LinePlot.
type PlotOptions struct {
	DomainLabel string
	RangeLabel  string
	// Time selects calendar ticks for the domain axis. Domain values are
	// then epoch milliseconds.
	Time bool
	// Location is the time zone for calendar labels. Nil means UTC.
	Location *time.Location

	Axis   axis.Config
	Layout layout.Config
	Logger *log.Logger
}

// DefaultPlotOptions returns options with the default axis and layout
// settings.
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Axis: axis.DefaultConfig(), Layout: layout.DefaultConfig()}
}

// LinePlot owns a domain axis along the bottom edge and a range axis along
// the left edge and lays them out around its data area.
type LinePlot struct {
	domain     *axis.ValueAxis
	value      *axis.ValueAxis
	domainPart *axis.Participant
	valuePart  *axis.Participant
	notifier   *axis.Notifier
	resolver   *layout.Resolver
	logger     *log.Logger

	bounds      geom.Rect
	result      layout.Result
	dirty       bool
	changes     int
	unsubscribe func()
}

// NewLinePlot builds a plot whose axes measure text with m.
func NewLinePlot(m fonts.Measurer, opts PlotOptions) (*LinePlot, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	notifier := axis.NewNotifier(logger)

	var factory axis.TickFactory = axis.NewNumberTickFactory()
	if opts.Time {
		cal := axis.NewCalendarTickFactory()
		cal.Location = opts.Location
		factory = cal
	}

	domain, err := axis.NewValueAxis(geom.Bottom, opts.DomainLabel, factory, opts.Axis, axis.WithNotifier(notifier))
	if err != nil {
		return nil, fmt.Errorf("domain axis: %w", err)
	}
	value, err := axis.NewValueAxis(geom.Left, opts.RangeLabel, axis.NewNumberTickFactory(), opts.Axis, axis.WithNotifier(notifier))
	if err != nil {
		return nil, fmt.Errorf("range axis: %w", err)
	}
	domainPart, err := axis.NewParticipant(domain, m)
	if err != nil {
		return nil, err
	}
	valuePart, err := axis.NewParticipant(value, m)
	if err != nil {
		return nil, err
	}

	p := &LinePlot{
		domain:     domain,
		value:      value,
		domainPart: domainPart,
		valuePart:  valuePart,
		notifier:   notifier,
		resolver:   layout.NewResolver(layout.Plot, opts.Layout, layout.WithLogger(logger)),
		logger:     logger,
		dirty:      true,
	}
	p.unsubscribe = notifier.Subscribe(axis.ObserverFuncs{
		OnAxisChanged:        func(*axis.ValueAxis) { p.invalidate() },
		OnRangeChanged:       func(*axis.ValueAxis, axis.Range, axis.Range) { p.invalidate() },
		OnTickFactoryChanged: func(*axis.ValueAxis) { p.invalidate() },
	})
	return p, nil
}

func (p *LinePlot) invalidate() {
	p.dirty = true
	p.changes++
}

// Domain returns the horizontal axis.
func (p *LinePlot) Domain() *axis.ValueAxis { return p.domain }

// Range returns the vertical axis.
func (p *LinePlot) Range() *axis.ValueAxis { return p.value }

// Dirty reports whether an axis changed since the last Layout.
func (p *LinePlot) Dirty() bool { return p.dirty }

// Changes counts axis change notifications received.
func (p *LinePlot) Changes() int { return p.changes }

// Result returns the last plot layout.
func (p *LinePlot) Result() layout.Result { return p.result }

// Participants returns the axis participants in layout order.
func (p *LinePlot) Participants() []*axis.Participant {
	return []*axis.Participant{p.domainPart, p.valuePart}
}

// SetData auto-ranges both axes to the extents of d.
func (p *LinePlot) SetData(d data.Provider) {
	p.domain.AutoAdjustForRange(d.DomainRange())
	p.value.AutoAdjustForRange(d.ValueRange())
}

func (p *LinePlot) Position() geom.Position { return geom.Center }
func (p *LinePlot) Visible() bool           { return true }
func (p *LinePlot) Bounds() geom.Rect       { return p.bounds }

// PreferredSize takes whatever the chart leaves over.
func (p *LinePlot) PreferredSize(avail geom.Size) geom.Size { return avail }

// SetBounds records the plot's rectangle. The axes are not laid out until
// Layout is called.
func (p *LinePlot) SetBounds(r geom.Rect) {
	if r != p.bounds {
		p.bounds = r
		p.dirty = true
	}
}

// Layout resolves the axes inside the current bounds.
func (p *LinePlot) Layout() layout.Result {
	comps := []layout.Component{p.domainPart, p.valuePart}
	p.result = p.resolver.Resolve(layout.Container{Bounds: p.bounds}, comps)
	p.dirty = false
	return p.result
}

// Close stops observing the axes.
func (p *LinePlot) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}
