package axis

import (
	"math"

	"github.com/simplecharts/simplecharts/pkg/errors"
	"github.com/simplecharts/simplecharts/pkg/geom"
)

// ValueAxis is a numeric axis attached to one edge of a plot.
//
// While auto-range is on, AutoAdjustForRange derives the visible range from
// the data range. SetRange, and every operation built on it, switches
// auto-range off; only SetAutoRange(true) or a non-positive resize turns it
// back on.
type ValueAxis struct {
	pos      geom.Position
	label    string
	factory  TickFactory
	cfg      Config
	notifier *Notifier

	rng      Range
	auto     bool
	data     Range
	hasData  bool
	inverted bool
	visible  bool
	length   float64
}

// Option configures a ValueAxis.
type Option func(*ValueAxis)

// WithNotifier shares a notifier between the axis and its owner.
func WithNotifier(n *Notifier) Option {
	return func(a *ValueAxis) {
		if n != nil {
			a.notifier = n
		}
	}
}

// WithInverted starts the axis inverted.
func WithInverted(inverted bool) Option {
	return func(a *ValueAxis) { a.inverted = inverted }
}

// WithRange starts the axis with a fixed range and auto-range off.
func WithRange(r Range) Option {
	return func(a *ValueAxis) {
		a.rng = r
		a.auto = false
	}
}

// NewValueAxis returns an axis at pos using factory for ticks.
func NewValueAxis(pos geom.Position, label string, factory TickFactory, cfg Config, opts ...Option) (*ValueAxis, error) {
	if factory == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "tick factory is required")
	}
	if err := validEdge(pos); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &ValueAxis{
		pos:     pos,
		label:   label,
		factory: factory,
		cfg:     cfg,
		rng:     DefaultRange,
		auto:    true,
		visible: true,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.notifier == nil {
		a.notifier = NewNotifier(nil)
	}
	return a, nil
}

func validEdge(pos geom.Position) error {
	switch pos {
	case geom.Top, geom.Left, geom.Bottom, geom.Right:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidPosition, "axis position must be an edge, got %v", pos)
}

func (a *ValueAxis) Position() geom.Position         { return a.pos }
func (a *ValueAxis) Orientation() geom.Orientation   { return a.pos.Orientation() }
func (a *ValueAxis) IsHorizontal() bool              { return a.pos.Orientation() == geom.Horizontal }
func (a *ValueAxis) Label() string                   { return a.label }
func (a *ValueAxis) TickFactory() TickFactory        { return a.factory }
func (a *ValueAxis) Config() Config                  { return a.cfg }
func (a *ValueAxis) Notifier() *Notifier             { return a.notifier }
func (a *ValueAxis) Range() Range                    { return a.rng }
func (a *ValueAxis) IsAutoRange() bool               { return a.auto }
func (a *ValueAxis) IsInverted() bool                { return a.inverted }
func (a *ValueAxis) IsVisible() bool                 { return a.visible }
func (a *ValueAxis) Length() float64                 { return a.length }
func (a *ValueAxis) LowerMargin() float64            { return a.cfg.LowerMargin }
func (a *ValueAxis) UpperMargin() float64            { return a.cfg.UpperMargin }
func (a *ValueAxis) MinimumTickSize() float64        { return a.cfg.MinimumTickSize }
func (a *ValueAxis) AutoRangeIncludesZero() bool     { return a.cfg.AutoRangeIncludesZero }
func (a *ValueAxis) AutoRangeMinimumExtent() float64 { return a.cfg.AutoRangeMinimumExtent }

// DataRange returns the last range passed to AutoAdjustForRange.
func (a *ValueAxis) DataRange() (Range, bool) { return a.data, a.hasData }

// Subscribe registers o with the axis's notifier.
func (a *ValueAxis) Subscribe(o Observer) (unsubscribe func()) {
	return a.notifier.Subscribe(o)
}

// AutoAdjustForRange records data as the current data range and, if
// auto-range is on, replaces the visible range with one derived from it.
func (a *ValueAxis) AutoAdjustForRange(data Range) {
	a.data = data
	a.hasData = true
	if a.auto {
		a.replaceRange(a.autoRange(data))
	}
}

// autoRange widens data to at least the minimum extent, optionally pulls
// in zero, then adds margins measured on the widened extent. The result is
// never wider than MaxExtent.
func (a *ValueAxis) autoRange(data Range) Range {
	if data.IsNaN() {
		return a.rng
	}
	l, u := data.lower, data.upper
	if a.cfg.AutoRangeIncludesZero {
		l = math.Min(l, 0)
		u = math.Max(u, 0)
	}

	minExt := a.cfg.AutoRangeMinimumExtent
	if ext := u - l; ext < minExt {
		half := (minExt - ext) / 2
		l -= half
		u += half
	}
	if l == u {
		nudge := math.Abs(l) / 10
		if nudge == 0 {
			nudge = minExt / 2
		}
		if nudge == 0 {
			nudge = DefaultRange.Extent() / 2
		}
		l -= nudge
		u += nudge
	}

	return limitExtent(Range{lower: l, upper: u}.AddMargins(a.cfg.LowerMargin, a.cfg.UpperMargin))
}

// reapplyAuto re-derives the range after a setting that feeds auto-range
// changed. It calls autoRange directly rather than going through observers.
func (a *ValueAxis) reapplyAuto() {
	if a.auto && a.hasData {
		a.replaceRange(a.autoRange(a.data))
	}
}

func (a *ValueAxis) replaceRange(r Range) bool {
	if r.Equal(a.rng) {
		return false
	}
	prev := a.rng
	a.rng = r
	a.notifier.NotifyRangeChanged(a, prev, r)
	return true
}

// SetRange fixes the visible range and turns auto-range off.
func (a *ValueAxis) SetRange(r Range) {
	wasAuto := a.auto
	a.auto = false
	if !a.replaceRange(r) && wasAuto {
		a.notifier.NotifyAxisChanged(a)
	}
}

// SetBounds is SetRange for explicit bounds.
func (a *ValueAxis) SetBounds(lower, upper float64) error {
	r, err := NewRange(lower, upper)
	if err != nil {
		return err
	}
	a.SetRange(r)
	return nil
}

// SetRangeWithMargins sets r widened by the axis margins.
func (a *ValueAxis) SetRangeWithMargins(r Range) {
	a.SetRange(r.AddMargins(a.cfg.LowerMargin, a.cfg.UpperMargin))
}

// SetAutoRange switches auto-range on or off. Switching it on re-derives
// the range from the last data range, if any.
func (a *ValueAxis) SetAutoRange(auto bool) {
	if a.auto == auto {
		return
	}
	a.auto = auto
	a.notifier.NotifyAxisChanged(a)
	a.reapplyAuto()
}

// CenterRange shifts the range so that its center is v.
func (a *ValueAxis) CenterRange(v float64) {
	a.SetRange(a.rng.Shift(v-a.rng.Center(), true))
}

// ResizeRange scales the range about its center. See ResizeRangeAround.
func (a *ValueAxis) ResizeRange(pct float64) {
	a.ResizeRangeAround(pct, a.rng.Center())
}

// ResizeRangeAround sets the range to extent*pct centered on anchor. A
// non-positive pct turns auto-range back on instead.
func (a *ValueAxis) ResizeRangeAround(pct, anchor float64) {
	if !(pct > 0) {
		a.SetAutoRange(true)
		return
	}
	half := a.rng.Extent() * pct / 2
	a.SetRange(Range{lower: anchor - half, upper: anchor + half})
}

// ZoomRange narrows the range to the fractions [lowerPct, upperPct] of the
// current one. It fails with INVALID_RANGE if lowerPct > upperPct.
func (a *ValueAxis) ZoomRange(lowerPct, upperPct float64) error {
	start, ext := a.rng.lower, a.rng.Extent()
	r, err := NewRange(start+ext*lowerPct, start+ext*upperPct)
	if err != nil {
		return err
	}
	a.SetRange(r)
	return nil
}

// Pan shifts the range by pct of its extent.
func (a *ValueAxis) Pan(pct float64) {
	a.SetRange(a.rng.Shift(a.rng.Extent()*pct, true))
}

// SetLowerMargin sets the fraction of the extent added below auto ranges.
func (a *ValueAxis) SetLowerMargin(m float64) error {
	return a.setMargin(&a.cfg.LowerMargin, "lower margin", m)
}

// SetUpperMargin sets the fraction of the extent added above auto ranges.
func (a *ValueAxis) SetUpperMargin(m float64) error {
	return a.setMargin(&a.cfg.UpperMargin, "upper margin", m)
}

func (a *ValueAxis) setMargin(field *float64, name string, m float64) error {
	if err := errors.ValidateMargin(name, m); err != nil {
		return err
	}
	if *field == m {
		return nil
	}
	*field = m
	a.notifier.NotifyAxisChanged(a)
	a.reapplyAuto()
	return nil
}

// SetAutoRangeMinimumExtent sets the smallest extent auto-range produces
// before margins.
func (a *ValueAxis) SetAutoRangeMinimumExtent(ext float64) error {
	if !nonNegative(ext) {
		return errors.New(errors.ErrCodeInvalidArgument, "auto-range minimum extent must be non-negative, got %v", ext)
	}
	if a.cfg.AutoRangeMinimumExtent == ext {
		return nil
	}
	a.cfg.AutoRangeMinimumExtent = ext
	a.notifier.NotifyAxisChanged(a)
	a.reapplyAuto()
	return nil
}

// SetAutoRangeIncludesZero controls whether auto ranges always contain 0.
func (a *ValueAxis) SetAutoRangeIncludesZero(include bool) {
	if a.cfg.AutoRangeIncludesZero == include {
		return
	}
	a.cfg.AutoRangeIncludesZero = include
	a.notifier.NotifyAxisChanged(a)
	a.reapplyAuto()
}

// SetMinimumTickSize sets the smallest step tick generation may choose.
func (a *ValueAxis) SetMinimumTickSize(v float64) error {
	if !nonNegative(v) {
		return errors.New(errors.ErrCodeInvalidArgument, "minimum tick size must be non-negative, got %v", v)
	}
	if a.cfg.MinimumTickSize == v {
		return nil
	}
	a.cfg.MinimumTickSize = v
	a.notifier.NotifyAxisChanged(a)
	return nil
}

// SetTickFactory swaps the tick factory.
func (a *ValueAxis) SetTickFactory(f TickFactory) error {
	if f == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "tick factory is required")
	}
	a.factory = f
	a.notifier.NotifyTickFactoryChanged(a)
	return nil
}

func (a *ValueAxis) SetLabel(label string) {
	if a.label == label {
		return
	}
	a.label = label
	a.notifier.NotifyAxisChanged(a)
}

func (a *ValueAxis) SetPosition(pos geom.Position) error {
	if err := validEdge(pos); err != nil {
		return err
	}
	if a.pos == pos {
		return nil
	}
	a.pos = pos
	a.notifier.NotifyAxisChanged(a)
	return nil
}

func (a *ValueAxis) SetInverted(inverted bool) {
	if a.inverted == inverted {
		return
	}
	a.inverted = inverted
	a.notifier.NotifyAxisChanged(a)
}

func (a *ValueAxis) SetVisible(visible bool) {
	if a.visible == visible {
		return
	}
	a.visible = visible
	a.notifier.NotifyAxisChanged(a)
}

// SetLength records the laid-out length used by the coordinate transforms.
// It is set by layout and does not notify.
func (a *ValueAxis) SetLength(length float64) {
	a.length = math.Max(length, 0)
}

// Ticks generates ticks for the current range with maxLabels as the budget.
func (a *ValueAxis) Ticks(maxLabels int) TickSet {
	return a.factory.GenerateLabels(a.rng, maxLabels, a.cfg.MinimumTickSize)
}

// fromOrigin reports whether coordinates grow from the origin of the
// axis's space. Screen Y grows downward, so a normal vertical axis and an
// inverted horizontal axis are measured from the far end.
func (a *ValueAxis) fromOrigin() bool {
	return a.inverted != a.IsHorizontal()
}

// Transform returns a snapshot of the current value/coordinate mapping.
func (a *ValueAxis) Transform() Transform {
	return Transform{Range: a.rng, Length: a.length, FromOrigin: a.fromOrigin()}
}

// ValueToCoord maps v in [lower, upper] to a coordinate in [0, length]
// along the axis. A zero-extent range maps everything to length/2.
func (a *ValueAxis) ValueToCoord(v float64) float64 { return a.Transform().ValueToCoord(v) }

// CoordToValue is the inverse of ValueToCoord. With zero length or zero
// extent it returns the lower bound.
func (a *ValueAxis) CoordToValue(c float64) float64 { return a.Transform().CoordToValue(c) }
