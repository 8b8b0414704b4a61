// Package fonts is the text measurement service used by axis layout.
//
// Layout never draws text; it only asks how large a label would be. A
// [Measurer] answers that for a string in a given [Face]. Three measurers are
// provided:
//
//   - [OpenType] measures with the Go font family (regular, bold, mono) through
//     golang.org/x/image/font/opentype. This is the default for rendering.
//   - [Basic] measures with the fixed 7x13 bitmap face scaled to the requested
//     size. It needs no font parsing and is handy for terminals.
//   - [Approx] is a pure heuristic with no font data at all. Tests use it
//     because its numbers are easy to predict.
//
// Measurers are called synchronously from inside the layout loop and must be
// fast. [OpenType] caches parsed fonts, sized faces and measurements.
package fonts

import (
	"fmt"
	"slices"
	"strings"
)

// Family names understood by the measurers. Unknown families fall back to
// SansSerif.
const (
	SansSerif  = "SansSerif"
	Serif      = "Serif"
	Monospaced = "Monospaced"
)

// Face identifies a font by family, point size and weight.
type Face struct {
	Family string  `json:"family" toml:"family" yaml:"family"`
	Size   float64 `json:"size" toml:"size" yaml:"size"`
	Bold   bool    `json:"bold,omitempty" toml:"bold" yaml:"bold"`
}

var (
	DefaultAxisLabelFace = Face{Family: SansSerif, Size: 12}
	DefaultTickLabelFace = Face{Family: SansSerif, Size: 10}
	DefaultTitleFace     = Face{Family: SansSerif, Size: 18, Bold: true}
)

func (f Face) String() string {
	w := "plain"
	if f.Bold {
		w = "bold"
	}
	return fmt.Sprintf("%s-%s-%g", f.Family, w, f.Size)
}

// IsMono reports whether the face maps to a fixed-width family.
func (f Face) IsMono() bool {
	switch strings.ToLower(f.Family) {
	case "monospaced", "mono", "monospace", "courier":
		return true
	}
	return false
}

// CSSFamily returns a font-family value suitable for SVG output.
func (f Face) CSSFamily() string {
	switch {
	case f.IsMono():
		return "Go Mono, monospace"
	case strings.EqualFold(f.Family, Serif):
		return "serif"
	default:
		return "Go, Helvetica, Arial, sans-serif"
	}
}

// Extents is the rendered size of a string. Height is the line height
// (ascent + descent + leading).
type Extents struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Ascent  float64 `json:"ascent"`
	Descent float64 `json:"descent"`
}

// Measurer reports the rendered extents of text in a face.
type Measurer interface {
	Measure(text string, face Face) Extents
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(text string, face Face) Extents

func (fn MeasurerFunc) Measure(text string, face Face) Extents { return fn(text, face) }

// EmWidth is the width of "M" in face, the unit label gaps are expressed in.
func EmWidth(m Measurer, face Face) float64 {
	return m.Measure("M", face).Width
}

// LineHeight is the height of one line of text in face.
func LineHeight(m Measurer, face Face) float64 {
	return m.Measure("M", face).Height
}

// Names lists the measurers New accepts.
var Names = []string{"opentype", "basic", "approx"}

// ValidName reports whether New accepts name. The empty name selects
// opentype.
func ValidName(name string) bool {
	return name == "" || slices.Contains(Names, strings.ToLower(name))
}

// New returns the measurer registered under name: "opentype", "basic" or
// "approx".
func New(name string) (Measurer, error) {
	switch strings.ToLower(name) {
	case "", "opentype":
		return NewOpenType(), nil
	case "basic":
		return Basic{}, nil
	case "approx":
		return Approx{}, nil
	}
	return nil, fmt.Errorf("unknown measurer %q (want one of %s)", name, strings.Join(Names, ", "))
}
