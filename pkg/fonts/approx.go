package fonts

import (
	"strings"
	"unicode/utf8"
)

const (
	approxCharWidth  = 0.55
	approxLineHeight = 1.25
	approxAscent     = 0.95
)

// Approx estimates extents from rune count alone: every rune is 0.55 em wide
// and a line is 1.25 em tall. Bold adds 10% width.
type Approx struct{}

func (Approx) Measure(text string, face Face) Extents {
	size := face.Size
	if size <= 0 {
		size = DefaultTickLabelFace.Size
	}
	charW := size * approxCharWidth
	if face.Bold {
		charW *= 1.1
	}

	lines := strings.Split(text, "\n")
	n := 0
	for _, line := range lines {
		n = max(n, utf8.RuneCountInString(line))
	}
	lineH := size * approxLineHeight
	return Extents{
		Width:   float64(n) * charW,
		Height:  lineH * float64(len(lines)),
		Ascent:  size * approxAscent,
		Descent: lineH - size*approxAscent,
	}
}
