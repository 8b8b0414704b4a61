package fonts

import (
	"math"
	"sync"
	"testing"
)

func TestApproxMeasure(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		face  Face
		width float64
		lines int
	}{
		{"empty", "", Face{Size: 10}, 0, 1},
		{"ascii", "1,000", Face{Size: 10}, 5 * 5.5, 1},
		{"unicode", "µs", Face{Size: 20}, 2 * 11, 1},
		{"multiline", "ab\nabcd", Face{Size: 10}, 4 * 5.5, 2},
		{"default size", "x", Face{}, 5.5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Approx{}.Measure(tt.text, tt.face)
			if math.Abs(e.Width-tt.width) > 1e-9 {
				t.Errorf("Width = %v, want %v", e.Width, tt.width)
			}
			size := tt.face.Size
			if size == 0 {
				size = DefaultTickLabelFace.Size
			}
			if want := size * 1.25 * float64(tt.lines); math.Abs(e.Height-want) > 1e-9 {
				t.Errorf("Height = %v, want %v", e.Height, want)
			}
		})
	}
}

func TestApproxBoldIsWider(t *testing.T) {
	plain := Approx{}.Measure("label", Face{Size: 12})
	bold := Approx{}.Measure("label", Face{Size: 12, Bold: true})
	if bold.Width <= plain.Width {
		t.Errorf("bold width %v <= plain width %v", bold.Width, plain.Width)
	}
}

func TestBasicMeasure(t *testing.T) {
	// The bitmap face advances 7px per glyph at its native 13px size.
	e := Basic{}.Measure("abc", Face{Size: 13})
	if e.Width != 21 {
		t.Errorf("Width = %v, want 21", e.Width)
	}
	if e.Height != 13 {
		t.Errorf("Height = %v, want 13", e.Height)
	}

	doubled := Basic{}.Measure("abc", Face{Size: 26})
	if doubled.Width != 42 {
		t.Errorf("scaled Width = %v, want 42", doubled.Width)
	}
}

func TestOpenTypeMeasure(t *testing.T) {
	m := NewOpenType()
	defer m.Close()

	short := m.Measure("10", DefaultTickLabelFace)
	long := m.Measure("10,000,000", DefaultTickLabelFace)

	if short.Width <= 0 {
		t.Fatalf("Width = %v, want > 0", short.Width)
	}
	if long.Width <= short.Width {
		t.Errorf("long Width %v <= short Width %v", long.Width, short.Width)
	}
	if short.Height <= 0 || short.Ascent <= 0 {
		t.Errorf("metrics = %+v, want positive height and ascent", short)
	}

	big := m.Measure("10", Face{Family: SansSerif, Size: 20})
	if big.Width <= short.Width {
		t.Errorf("20pt Width %v <= 10pt Width %v", big.Width, short.Width)
	}

	bold := m.Measure("Axis", Face{Family: SansSerif, Size: 12, Bold: true})
	plain := m.Measure("Axis", Face{Family: SansSerif, Size: 12})
	if bold.Width < plain.Width {
		t.Errorf("bold Width %v < plain Width %v", bold.Width, plain.Width)
	}
}

func TestOpenTypeMonoIsFixedWidth(t *testing.T) {
	m := NewOpenType()
	defer m.Close()

	face := Face{Family: Monospaced, Size: 10}
	i := m.Measure("iiii", face)
	w := m.Measure("WWWW", face)
	if math.Abs(i.Width-w.Width) > 1e-9 {
		t.Errorf("mono widths differ: %v vs %v", i.Width, w.Width)
	}
}

func TestOpenTypeCachesConsistently(t *testing.T) {
	m := NewOpenType()
	defer m.Close()

	first := m.Measure("Jan 02", DefaultTickLabelFace)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := m.Measure("Jan 02", DefaultTickLabelFace); got != first {
				t.Errorf("Measure() = %+v, want %+v", got, first)
			}
		}()
	}
	wg.Wait()
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "opentype", "basic", "approx"} {
		if _, err := New(name); err != nil {
			t.Errorf("New(%q) error = %v", name, err)
		}
	}
	if _, err := New("freetype"); err == nil {
		t.Error("New(\"freetype\") error = nil, want error")
	}
	if ValidName("freetype") || !ValidName("Basic") {
		t.Error("ValidName() disagrees with New()")
	}
}

func TestEmWidthAndLineHeight(t *testing.T) {
	face := Face{Size: 10}
	if got := EmWidth(Approx{}, face); got != 5.5 {
		t.Errorf("EmWidth() = %v, want 5.5", got)
	}
	if got := LineHeight(Approx{}, face); got != 12.5 {
		t.Errorf("LineHeight() = %v, want 12.5", got)
	}
}
