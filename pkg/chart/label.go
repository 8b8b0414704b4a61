package chart

import (
	"math"

	"github.com/simplecharts/simplecharts/pkg/errors"
	"github.com/simplecharts/simplecharts/pkg/fonts"
	"github.com/simplecharts/simplecharts/pkg/geom"
	"github.com/simplecharts/simplecharts/pkg/layout"
)

var _ layout.Component = (*Label)(nil)

// Label is a single line of text on one edge of a chart, such as a title.
// Labels on the left or right edge are drawn rotated.
type Label struct {
	text     string
	pos      geom.Position
	face     fonts.Face
	measurer fonts.Measurer
	visible  bool
	bounds   geom.Rect
}

// NewLabel returns a visible label.
func NewLabel(text string, pos geom.Position, face fonts.Face, m fonts.Measurer) (*Label, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "measurer is required")
	}
	if !pos.Valid() || pos == geom.Center {
		return nil, errors.New(errors.ErrCodeInvalidPosition, "label position must be an edge, got %v", pos)
	}
	return &Label{text: text, pos: pos, face: face, measurer: m, visible: true}, nil
}

func (l *Label) Text() string            { return l.text }
func (l *Label) Face() fonts.Face        { return l.face }
func (l *Label) Position() geom.Position { return l.pos }
func (l *Label) Bounds() geom.Rect       { return l.bounds }
func (l *Label) SetBounds(r geom.Rect)   { l.bounds = r }
func (l *Label) SetText(text string)     { l.text = text }
func (l *Label) SetVisible(v bool)       { l.visible = v }

// Visible reports whether the label takes up space. Empty labels do not.
func (l *Label) Visible() bool { return l.visible && l.text != "" }

// padding is half an em of the label face on each side.
func (l *Label) padding() float64 {
	return fonts.EmWidth(l.measurer, l.face) / 2
}

// PreferredSize returns the text extent plus padding.
func (l *Label) PreferredSize(avail geom.Size) geom.Size {
	ext := l.measurer.Measure(l.text, l.face)
	pad := 2 * l.padding()
	across := math.Ceil(ext.Height + pad)
	along := math.Ceil(ext.Width + pad)
	if l.pos.Orientation() == geom.Horizontal {
		return geom.Size{W: math.Max(along, avail.W), H: across}
	}
	return geom.Size{W: across, H: along}
}

func (l *Label) geometry() *TextGeometry {
	if !l.Visible() {
		return nil
	}
	return &TextGeometry{
		Text:     l.text,
		Face:     l.face,
		Bounds:   l.bounds,
		Vertical: l.pos.Orientation() == geom.Vertical,
	}
}
