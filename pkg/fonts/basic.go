package fonts

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Basic measures text with the 7x13 bitmap face, scaled linearly to the
// requested size. Family and weight are ignored.
type Basic struct{}

func (Basic) Measure(text string, face Face) Extents {
	f := basicfont.Face7x13
	scale := 1.0
	if face.Size > 0 {
		scale = face.Size / float64(f.Height)
	}

	m := f.Metrics()
	lines := strings.Split(text, "\n")
	var w float64
	for _, line := range lines {
		w = max(w, toFloat(font.MeasureString(f, line)))
	}
	return Extents{
		Width:   w * scale,
		Height:  toFloat(m.Height) * scale * float64(len(lines)),
		Ascent:  toFloat(m.Ascent) * scale,
		Descent: toFloat(m.Descent) * scale,
	}
}
