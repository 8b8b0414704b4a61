package chart

import (
	"math"

	"github.com/simplecharts/simplecharts/pkg/errors"
	"github.com/simplecharts/simplecharts/pkg/fonts"
	"github.com/simplecharts/simplecharts/pkg/geom"
	"github.com/simplecharts/simplecharts/pkg/layout"
)

var _ layout.Component = (*Legend)(nil)

// LegendEntry names one series and its colour.
type LegendEntry struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Legend lists series with a colour swatch each. On the left or right edge
// entries are stacked; on the top or bottom edge they flow in rows that
// wrap at the available width, so the legend grows taller as the plot gets
// narrower.
type Legend struct {
	entries  []LegendEntry
	pos      geom.Position
	face     fonts.Face
	measurer fonts.Measurer
	visible  bool
	bounds   geom.Rect
}

// NewLegend returns a visible legend.
func NewLegend(entries []LegendEntry, pos geom.Position, face fonts.Face, m fonts.Measurer) (*Legend, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "measurer is required")
	}
	if !pos.Valid() || pos == geom.Center {
		return nil, errors.New(errors.ErrCodeInvalidPosition, "legend position must be an edge, got %v", pos)
	}
	return &Legend{entries: entries, pos: pos, face: face, measurer: m, visible: true}, nil
}

func (l *Legend) Entries() []LegendEntry  { return l.entries }
func (l *Legend) Position() geom.Position { return l.pos }
func (l *Legend) Bounds() geom.Rect       { return l.bounds }
func (l *Legend) SetBounds(r geom.Rect)   { l.bounds = r }
func (l *Legend) SetVisible(v bool)       { l.visible = v }
func (l *Legend) Visible() bool           { return l.visible && len(l.entries) > 0 }

// metrics returns the line height, the swatch size and the gap used
// between swatch, text and neighbouring entries.
func (l *Legend) metrics() (line, swatch, gap float64) {
	line = fonts.LineHeight(l.measurer, l.face)
	gap = fonts.EmWidth(l.measurer, l.face) / 2
	return line, math.Round(line * 0.7), gap
}

func (l *Legend) itemWidth(e LegendEntry) float64 {
	_, swatch, gap := l.metrics()
	return swatch + gap + l.measurer.Measure(e.Name, l.face).Width
}

// rows splits the entries into rows that fit in width. Every row holds at
// least one entry.
func (l *Legend) rows(width float64) [][]int {
	_, _, gap := l.metrics()
	var (
		out [][]int
		row []int
		x   float64
	)
	for i, e := range l.entries {
		w := l.itemWidth(e)
		if len(row) > 0 && x+gap*2+w > width {
			out = append(out, row)
			row, x = nil, 0
		}
		if len(row) > 0 {
			x += gap * 2
		}
		row = append(row, i)
		x += w
	}
	if len(row) > 0 {
		out = append(out, row)
	}
	return out
}

// PreferredSize returns the size of the entry block plus padding.
func (l *Legend) PreferredSize(avail geom.Size) geom.Size {
	line, _, gap := l.metrics()
	if l.pos.Orientation() == geom.Horizontal {
		n := len(l.rows(avail.W - 2*gap))
		return geom.Size{W: avail.W, H: math.Ceil(float64(n)*line + 2*gap)}
	}
	var widest float64
	for _, e := range l.entries {
		widest = math.Max(widest, l.itemWidth(e))
	}
	return geom.Size{
		W: math.Ceil(widest + 2*gap),
		H: math.Ceil(float64(len(l.entries))*line + 2*gap),
	}
}

// Items positions each entry inside the legend's bounds.
func (l *Legend) Items() []LegendItem {
	line, swatch, gap := l.metrics()
	b := l.bounds
	var groups [][]int
	if l.pos.Orientation() == geom.Horizontal {
		groups = l.rows(b.W - 2*gap)
	} else {
		for i := range l.entries {
			groups = append(groups, []int{i})
		}
	}

	items := make([]LegendItem, 0, len(l.entries))
	for r, row := range groups {
		var rowW float64
		for k, i := range row {
			if k > 0 {
				rowW += 2 * gap
			}
			rowW += l.itemWidth(l.entries[i])
		}
		x := b.X + gap
		if l.pos.Orientation() == geom.Horizontal {
			x = b.X + math.Max(gap, (b.W-rowW)/2)
		}
		y := b.Y + gap + float64(r)*line
		for _, i := range row {
			e := l.entries[i]
			tw := l.measurer.Measure(e.Name, l.face).Width
			items = append(items, LegendItem{
				Name:   e.Name,
				Color:  e.Color,
				Swatch: geom.Rect{X: x, Y: y + (line-swatch)/2, W: swatch, H: swatch},
				Text:   geom.Rect{X: x + swatch + gap, Y: y, W: tw, H: line},
			})
			x += l.itemWidth(e) + 2*gap
		}
	}
	return items
}

func (l *Legend) geometry() *LegendGeometry {
	if !l.Visible() {
		return nil
	}
	return &LegendGeometry{Bounds: l.bounds, Face: l.face, Items: l.Items()}
}
