package axis

import (
	"math"

	"github.com/simplecharts/simplecharts/pkg/errors"
	"github.com/simplecharts/simplecharts/pkg/fonts"
	"github.com/simplecharts/simplecharts/pkg/geom"
	"github.com/simplecharts/simplecharts/pkg/layout"
)

var _ layout.Component = (*Participant)(nil)

// Participant sizes a ValueAxis for edge layout. Its thickness depends on
// the labels of the ticks that fit along a given length, which is why
// layout has to iterate.
type Participant struct {
	axis     *ValueAxis
	measurer fonts.Measurer
	bounds   geom.Rect
}

// NewParticipant returns a layout participant for a.
func NewParticipant(a *ValueAxis, m fonts.Measurer) (*Participant, error) {
	if a == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "axis is required")
	}
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "measurer is required")
	}
	return &Participant{axis: a, measurer: m}, nil
}

func (p *Participant) Axis() *ValueAxis        { return p.axis }
func (p *Participant) Position() geom.Position { return p.axis.Position() }
func (p *Participant) Visible() bool           { return p.axis.IsVisible() }
func (p *Participant) Bounds() geom.Rect       { return p.bounds }

// SetBounds records the final rectangle and updates the axis length.
func (p *Participant) SetBounds(r geom.Rect) {
	p.bounds = r
	if p.axis.IsHorizontal() {
		p.axis.SetLength(r.W)
	} else {
		p.axis.SetLength(r.H)
	}
}

// PreferredSize returns the thickness needed across the axis, with the
// available length along it.
func (p *Participant) PreferredSize(avail geom.Size) geom.Size {
	if p.axis.IsHorizontal() {
		return geom.Size{W: avail.W, H: p.PreferredThickness(avail.W)}
	}
	return geom.Size{W: p.PreferredThickness(avail.H), H: avail.H}
}

// labelGap is the space on either side of a tick label.
func (p *Participant) labelGap() float64 {
	cfg := p.axis.Config()
	return fonts.EmWidth(p.measurer, cfg.TickLabelFace) * cfg.LabelMarginEm
}

func (p *Participant) lineHeight() float64 {
	return fonts.LineHeight(p.measurer, p.axis.Config().TickLabelFace)
}

// widestLabel returns the width of the widest label in s.
func (p *Participant) widestLabel(s TickSet) float64 {
	face := p.axis.Config().TickLabelFace
	var w float64
	for _, t := range s.Ticks {
		w = math.Max(w, p.measurer.Measure(t.Label, face).Width)
	}
	return w
}

// MaxTickCount returns the largest label budget whose labels fit along
// length, together with the ticks generated for it.
//
// Vertical axes stack one line of text per tick. Horizontal axes start from
// one em per tick and shrink the budget until the widest label, plus its
// gap, fits for every tick. Only budgets that change the step are measured.
func (p *Participant) MaxTickCount(length float64) (int, TickSet) {
	if !(length > 0) {
		return 0, TickSet{}
	}
	spacing := p.axis.Config().LabelSpacing

	if !p.axis.IsHorizontal() {
		lh := p.lineHeight()
		if !(lh > 0) {
			return 0, TickSet{}
		}
		n := clampCount(length / (lh * spacing))
		return n, p.axis.Ticks(n)
	}

	em := fonts.EmWidth(p.measurer, p.axis.Config().TickLabelFace)
	if !(em > 0) {
		return 0, TickSet{}
	}
	gap := p.labelGap()
	factory, rng, minTick := p.axis.TickFactory(), p.axis.Range(), p.axis.MinimumTickSize()
	// Budgets that share a step produce the same ticks, so each step is
	// generated and measured at most once.
	rejected := math.NaN()
	for n := clampCount(length / (em * spacing)); n >= 2; n-- {
		if factory.CalculateTickSize(rng, n, minTick) == rejected {
			continue
		}
		s := p.axis.Ticks(n)
		if float64(s.Len())*(p.widestLabel(s)+gap) <= length {
			return n, s
		}
		rejected = s.Step
	}
	return 0, TickSet{}
}

func clampCount(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return int(math.Min(math.Floor(v), maxTicks))
}

// Ticks returns the ticks to paint for length.
func (p *Participant) Ticks(length float64) TickSet {
	_, s := p.MaxTickCount(length)
	return s
}

// PreferredThickness returns the size across the axis needed to draw its
// tick marks, labels and title when the axis is length long. The result is
// rounded up to whole pixels; invisible axes need no space.
func (p *Participant) PreferredThickness(length float64) float64 {
	if !p.axis.IsVisible() {
		return 0
	}
	cfg := p.axis.Config()
	gap := p.labelGap()

	var t float64
	if p.axis.IsHorizontal() {
		t = p.lineHeight() + 2*gap + cfg.TickMarkLength + 1
	} else {
		t = p.widestLabel(p.Ticks(length)) + 2*gap + cfg.TickMarkLength + 1
	}
	if label := p.axis.Label(); label != "" {
		t += p.measurer.Measure(label, cfg.AxisLabelFace).Height + gap
	}
	return math.Ceil(t)
}
