// Package geom holds the small geometry value types shared by the axis,
// layout and render packages: rectangles in screen space (Y grows down),
// insets, sizes and edge positions.
package geom

import (
	"fmt"
	"math"
	"strings"

	"github.com/simplecharts/simplecharts/pkg/errors"
)

// Rect is an axis-aligned rectangle. X/Y is the top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

func (r Rect) Right() float64   { return r.X + r.W }
func (r Rect) Bottom() float64  { return r.Y + r.H }
func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }
func (r Rect) Size() Size       { return Size{W: r.W, H: r.H} }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Inset shrinks r by in. Width and height never go below zero.
func (r Rect) Inset(in Insets) Rect {
	return Rect{
		X: r.X + in.Left,
		Y: r.Y + in.Top,
		W: max(r.W-in.Horizontal(), 0),
		H: max(r.H-in.Vertical(), 0),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect[%g,%g %gx%g]", r.X, r.Y, r.W, r.H)
}

// Insets are margins on the four sides of a rectangle.
type Insets struct {
	Top    float64 `json:"top" toml:"top" yaml:"top"`
	Left   float64 `json:"left" toml:"left" yaml:"left"`
	Bottom float64 `json:"bottom" toml:"bottom" yaml:"bottom"`
	Right  float64 `json:"right" toml:"right" yaml:"right"`
}

// Uniform returns insets of v on every side.
func Uniform(v float64) Insets { return Insets{Top: v, Left: v, Bottom: v, Right: v} }

// Valid reports whether every side is finite and non-negative.
func (in Insets) Valid() bool {
	for _, v := range [...]float64{in.Top, in.Left, in.Bottom, in.Right} {
		if !(v >= 0) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (in Insets) Horizontal() float64 { return in.Left + in.Right }
func (in Insets) Vertical() float64   { return in.Top + in.Bottom }

// Size is a width/height pair.
type Size struct {
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Orientation is the direction along which an edge component runs.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Position is the edge of a container a component is attached to.
type Position int

const (
	Top Position = iota
	Left
	Bottom
	Right
	Center
)

var positionNames = [...]string{"top", "left", "bottom", "right", "center"}

func (p Position) String() string {
	if p < Top || p > Center {
		return fmt.Sprintf("Position(%d)", int(p))
	}
	return positionNames[p]
}

// Orientation returns Horizontal for Top and Bottom and Vertical otherwise.
func (p Position) Orientation() Orientation {
	if p == Top || p == Bottom {
		return Horizontal
	}
	return Vertical
}

// Valid reports whether p is one of the defined positions.
func (p Position) Valid() bool { return p >= Top && p <= Center }

// ParsePosition parses a position name, case-insensitively.
func ParsePosition(s string) (Position, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range positionNames {
		if n == name {
			return Position(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidPosition, "unknown position %q", s)
}

// MarshalText encodes the position by name.
func (p Position) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidPosition, "invalid position %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a position name.
func (p *Position) UnmarshalText(b []byte) error {
	v, err := ParsePosition(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
