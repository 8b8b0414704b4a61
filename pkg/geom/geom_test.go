package geom

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/simplecharts/simplecharts/pkg/errors"
)

func TestRectEdges(t *testing.T) {
	tests := []struct {
		name             string
		rect             Rect
		right, bottom    float64
		centerX, centerY float64
	}{
		{"origin", Rect{W: 100, H: 50}, 100, 50, 50, 25},
		{"offset", Rect{X: 10, Y: 20, W: 40, H: 60}, 50, 80, 30, 50},
		{"zero", Rect{X: 5, Y: 5}, 5, 5, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Right(); got != tt.right {
				t.Errorf("Right() = %v, want %v", got, tt.right)
			}
			if got := tt.rect.Bottom(); got != tt.bottom {
				t.Errorf("Bottom() = %v, want %v", got, tt.bottom)
			}
			if got := tt.rect.CenterX(); got != tt.centerX {
				t.Errorf("CenterX() = %v, want %v", got, tt.centerX)
			}
			if got := tt.rect.CenterY(); got != tt.centerY {
				t.Errorf("CenterY() = %v, want %v", got, tt.centerY)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		in   Insets
		want Rect
	}{
		{
			name: "uniform",
			rect: Rect{W: 100, H: 80},
			in:   Uniform(5),
			want: Rect{X: 5, Y: 5, W: 90, H: 70},
		},
		{
			name: "asymmetric",
			rect: Rect{X: 10, Y: 10, W: 100, H: 100},
			in:   Insets{Top: 1, Left: 2, Bottom: 3, Right: 4},
			want: Rect{X: 12, Y: 11, W: 94, H: 96},
		},
		{
			name: "clamped to zero",
			rect: Rect{W: 4, H: 4},
			in:   Uniform(3),
			want: Rect{X: 3, Y: 3, W: 0, H: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Inset(tt.in); got != tt.want {
				t.Errorf("Inset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInsetsValid(t *testing.T) {
	tests := []struct {
		in   Insets
		want bool
	}{
		{Insets{}, true},
		{Uniform(3), true},
		{Insets{Left: -1}, false},
		{Insets{Top: math.NaN()}, false},
		{Insets{Bottom: math.Inf(1)}, false},
	}
	for _, tt := range tests {
		if got := tt.in.Valid(); got != tt.want {
			t.Errorf("%+v.Valid() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRectEmpty(t *testing.T) {
	if !(Rect{W: 0, H: 10}).Empty() {
		t.Error("Empty() = false for zero width, want true")
	}
	if (Rect{W: 1, H: 1}).Empty() {
		t.Error("Empty() = true for 1x1, want false")
	}
}

func TestPositionOrientation(t *testing.T) {
	tests := []struct {
		pos  Position
		want Orientation
	}{
		{Top, Horizontal},
		{Bottom, Horizontal},
		{Left, Vertical},
		{Right, Vertical},
	}

	for _, tt := range tests {
		t.Run(tt.pos.String(), func(t *testing.T) {
			if got := tt.pos.Orientation(); got != tt.want {
				t.Errorf("Orientation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in      string
		want    Position
		wantErr bool
	}{
		{"top", Top, false},
		{"LEFT", Left, false},
		{" bottom ", Bottom, false},
		{"right", Right, false},
		{"center", Center, false},
		{"middle", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePosition(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePosition(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidPosition) {
					t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPosition)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParsePosition(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPositionJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		P Position `json:"p"`
	}{Right})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"p":"right"}` {
		t.Errorf("Marshal = %s, want %s", b, `{"p":"right"}`)
	}

	var v struct {
		P Position `json:"p"`
	}
	if err := json.Unmarshal([]byte(`{"p":"top"}`), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v.P != Top {
		t.Errorf("Unmarshal = %v, want %v", v.P, Top)
	}
}
