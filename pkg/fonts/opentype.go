package fonts

import (
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const dpi = 72

type measureKey struct {
	text string
	face Face
}

// OpenType measures text with the Go fonts. It is safe for concurrent use.
type OpenType struct {
	mu       sync.Mutex
	fonts    map[string]*opentype.Font
	faces    map[Face]font.Face
	measured map[measureKey]Extents
}

// NewOpenType returns an empty OpenType measurer. Fonts are parsed lazily.
func NewOpenType() *OpenType {
	return &OpenType{
		fonts:    make(map[string]*opentype.Font),
		faces:    make(map[Face]font.Face),
		measured: make(map[measureKey]Extents),
	}
}

// Measure implements Measurer. Faces that fail to load are measured with
// the Basic fallback.
func (o *OpenType) Measure(text string, face Face) Extents {
	key := measureKey{text: text, face: face}

	o.mu.Lock()
	defer o.mu.Unlock()

	if e, ok := o.measured[key]; ok {
		return e
	}

	ff, err := o.faceLocked(face)
	if err != nil {
		return Basic{}.Measure(text, face)
	}

	m := ff.Metrics()
	e := Extents{
		Width:   toFloat(widest(ff, text)),
		Height:  toFloat(m.Height),
		Ascent:  toFloat(m.Ascent),
		Descent: toFloat(m.Descent),
	}
	if n := strings.Count(text, "\n"); n > 0 {
		e.Height *= float64(n + 1)
	}
	o.measured[key] = e
	return e
}

// Close releases all sized faces.
func (o *OpenType) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for k, f := range o.faces {
		f.Close()
		delete(o.faces, k)
	}
	clear(o.measured)
	return nil
}

func (o *OpenType) faceLocked(face Face) (font.Face, error) {
	if face.Size <= 0 {
		face.Size = DefaultTickLabelFace.Size
	}
	if f, ok := o.faces[face]; ok {
		return f, nil
	}

	name, data := fontData(face)
	parsed, ok := o.fonts[name]
	if !ok {
		var err error
		parsed, err = opentype.Parse(data)
		if err != nil {
			return nil, err
		}
		o.fonts[name] = parsed
	}

	f, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    face.Size,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	o.faces[face] = f
	return f, nil
}

func fontData(face Face) (string, []byte) {
	switch {
	case face.IsMono() && face.Bold:
		return "gomonobold", gomonobold.TTF
	case face.IsMono():
		return "gomono", gomono.TTF
	case face.Bold:
		return "gobold", gobold.TTF
	default:
		return "goregular", goregular.TTF
	}
}

// widest measures each line of text and returns the longest advance.
func widest(f font.Face, text string) fixed.Int26_6 {
	var w fixed.Int26_6
	for _, line := range strings.Split(text, "\n") {
		w = max(w, font.MeasureString(f, line))
	}
	return w
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
