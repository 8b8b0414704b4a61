package axis

import (
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/simplecharts/simplecharts/pkg/errors"
	"github.com/simplecharts/simplecharts/pkg/fonts"
	"github.com/simplecharts/simplecharts/pkg/geom"
	"github.com/simplecharts/simplecharts/pkg/layout"
)

// fixedLabels measures every label as 30px wide and "M" as 8px, with 12px
// lines: a 4px label gap at the default margin.
var fixedLabels = fonts.MeasurerFunc(func(text string, _ fonts.Face) fonts.Extents {
	w := 30.0
	if text == "M" {
		w = 8
	}
	return fonts.Extents{Width: w, Height: 12, Ascent: 9, Descent: 3}
})

func newParticipant(t *testing.T, pos geom.Position, label string) *Participant {
	t.Helper()
	a, err := NewValueAxis(pos, label, NewNumberTickFactory(), DefaultConfig(),
		WithNotifier(NewNotifier(log.New(io.Discard))), WithRange(MustRange(0, 100)))
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewParticipant(a, fixedLabels)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNewParticipantErrors(t *testing.T) {
	if _, err := NewParticipant(nil, fonts.Approx{}); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("NewParticipant(nil axis) error = %v", err)
	}
	a := newAxis(t, geom.Left, DefaultConfig())
	if _, err := NewParticipant(a, nil); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("NewParticipant(nil measurer) error = %v", err)
	}
}

func TestMaxTickCountVertical(t *testing.T) {
	p := newParticipant(t, geom.Left, "")
	n, s := p.MaxTickCount(300)
	if n != 25 {
		t.Errorf("MaxTickCount(300) = %d, want 25", n)
	}
	if s.Step != 5 || s.Len() != 20 {
		t.Errorf("step/len = %v/%d, want 5/20", s.Step, s.Len())
	}
	if n, _ := p.MaxTickCount(0); n != 0 {
		t.Errorf("MaxTickCount(0) = %d, want 0", n)
	}
}

func TestMaxTickCountHorizontal(t *testing.T) {
	p := newParticipant(t, geom.Bottom, "")
	n, s := p.MaxTickCount(400)
	if n != 15 {
		t.Errorf("MaxTickCount(400) = %d, want 15", n)
	}
	if want := []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}; !reflect.DeepEqual(s.Values(), want) {
		t.Errorf("values = %v, want %v", s.Values(), want)
	}
	// A single 30px label plus its 4px gap does not fit in 30px.
	if n, s := p.MaxTickCount(30); n != 0 || !s.Empty() {
		t.Errorf("MaxTickCount(30) = %d, %v, want 0 and no ticks", n, s.Ticks)
	}
	if n, s := p.MaxTickCount(50); n != 2 || s.Len() != 1 {
		t.Errorf("MaxTickCount(50) = %d, %d ticks, want 2 and 1 tick", n, s.Len())
	}
}

// linearMaxTickCount tries every budget from the em estimate down.
func linearMaxTickCount(p *Participant, length float64) (int, TickSet) {
	em := fonts.EmWidth(p.measurer, p.axis.Config().TickLabelFace)
	for n := clampCount(length / (em * p.axis.Config().LabelSpacing)); n >= 2; n-- {
		s := p.axis.Ticks(n)
		if float64(s.Len())*(p.widestLabel(s)+p.labelGap()) <= length {
			return n, s
		}
	}
	return 0, TickSet{}
}

func TestMaxTickCountMatchesLinearScan(t *testing.T) {
	p := newParticipant(t, geom.Bottom, "")
	for length := 20.0; length <= 3000; length += 37 {
		gotN, got := p.MaxTickCount(length)
		wantN, want := linearMaxTickCount(p, length)
		if gotN != wantN || !reflect.DeepEqual(got.Values(), want.Values()) {
			t.Errorf("MaxTickCount(%v) = %d %v, want %d %v", length, gotN, got.Values(), wantN, want.Values())
		}
	}
}

func TestMaxTickCountWideAxisMeasuresEachStepOnce(t *testing.T) {
	var calls int
	counting := fonts.MeasurerFunc(func(text string, f fonts.Face) fonts.Extents {
		if text != "M" {
			calls++
		}
		return fixedLabels.Measure(text, f)
	})
	a, err := NewValueAxis(geom.Bottom, "", NewNumberTickFactory(), DefaultConfig(),
		WithNotifier(NewNotifier(log.New(io.Discard))), WithRange(MustRange(0, 100)))
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewParticipant(a, counting)
	if err != nil {
		t.Fatal(err)
	}

	n, s := p.MaxTickCount(20000)
	if n < 2 || s.Empty() {
		t.Fatalf("MaxTickCount(20000) = %d, %d ticks, want a non-empty set", n, s.Len())
	}
	if float64(s.Len())*34 > 20000 {
		t.Errorf("%d ticks of 34px do not fit in 20000px", s.Len())
	}
	// Steps 0.05, 0.1 and 0.2 are measured once each.
	if calls > 10000 {
		t.Errorf("measured %d labels, want at most 10000", calls)
	}
}

func TestPreferredThickness(t *testing.T) {
	tests := []struct {
		name   string
		pos    geom.Position
		label  string
		length float64
		want   float64
	}{
		{"vertical", geom.Left, "", 300, 30 + 2*4 + 6 + 1},
		{"vertical with title", geom.Right, "Value", 300, 45 + 12 + 4},
		{"vertical without ticks", geom.Left, "", 5, 2*4 + 6 + 1},
		{"horizontal", geom.Bottom, "", 400, 12 + 2*4 + 6 + 1},
		{"horizontal with title", geom.Top, "Time", 400, 27 + 12 + 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParticipant(t, tt.pos, tt.label)
			if got := p.PreferredThickness(tt.length); got != tt.want {
				t.Errorf("PreferredThickness(%v) = %v, want %v", tt.length, got, tt.want)
			}
		})
	}
}

func TestPreferredThicknessRoundsUp(t *testing.T) {
	a := newAxis(t, geom.Bottom, DefaultConfig())
	p, _ := NewParticipant(a, fonts.Approx{})
	got := p.PreferredThickness(400)
	// 12.5 line + 2*2.75 gap + 6 + 1 = 25
	if got != 25 {
		t.Errorf("PreferredThickness() = %v, want 25", got)
	}

	a.SetLabel("Seconds")
	// + 15 title line + 2.75 gap = 42.75, rounded up
	if got := p.PreferredThickness(400); got != 43 {
		t.Errorf("PreferredThickness() with label = %v, want 43", got)
	}
}

func TestInvisibleParticipant(t *testing.T) {
	p := newParticipant(t, geom.Left, "Value")
	p.Axis().SetVisible(false)
	if got := p.PreferredThickness(300); got != 0 {
		t.Errorf("PreferredThickness() = %v, want 0", got)
	}
}

func TestParticipantPreferredSize(t *testing.T) {
	left := newParticipant(t, geom.Left, "")
	if got, want := left.PreferredSize(geom.Size{W: 500, H: 300}), (geom.Size{W: 45, H: 300}); got != want {
		t.Errorf("PreferredSize() = %v, want %v", got, want)
	}
	bottom := newParticipant(t, geom.Bottom, "")
	if got, want := bottom.PreferredSize(geom.Size{W: 500, H: 300}), (geom.Size{W: 500, H: 27}); got != want {
		t.Errorf("PreferredSize() = %v, want %v", got, want)
	}
}

func TestResolveLeftAxis400(t *testing.T) {
	run := func() (layout.Result, *Participant) {
		p := newParticipant(t, geom.Left, "")
		r := layout.NewResolver(layout.Plot, layout.Config{
			MaxIterations: layout.DefaultMaxIterations,
			PlotInsets:    geom.Uniform(3),
		}, layout.WithLogger(log.New(io.Discard)))
		res := r.Resolve(layout.Container{Bounds: geom.Rect{W: 400, H: 300}}, []layout.Component{p})
		return res, p
	}

	first, p := run()
	if !first.Converged {
		t.Fatalf("Converged = false")
	}
	thickness := p.Bounds().W
	if thickness != 45 {
		t.Errorf("axis thickness = %v, want 45", thickness)
	}
	if limit := 400 - thickness - 2*3; first.Inner.W > limit {
		t.Errorf("Inner.W = %v, want <= %v", first.Inner.W, limit)
	}
	if first.Inner.W != 349 {
		t.Errorf("Inner.W = %v, want 349", first.Inner.W)
	}
	if p.Axis().Length() != first.Inner.H {
		t.Errorf("axis length = %v, want inner height %v", p.Axis().Length(), first.Inner.H)
	}

	second, _ := run()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second run differs:\n%+v\n%+v", first, second)
	}
}

func TestParticipantTicksFollowLength(t *testing.T) {
	p := newParticipant(t, geom.Left, "")
	short := p.Ticks(60)
	long := p.Ticks(600)
	if short.Len() >= long.Len() {
		t.Errorf("ticks for 60px (%d) >= ticks for 600px (%d)", short.Len(), long.Len())
	}
}
