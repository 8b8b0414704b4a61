package axis

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/simplecharts/simplecharts/pkg/errors"
)

// Range is an immutable closed interval [lower, upper] with lower <= upper.
// The zero value is the degenerate range [0, 0].
type Range struct {
	lower, upper float64
}

// DefaultRange is the range an axis starts with before any data arrives.
var DefaultRange = Range{lower: 0, upper: 1}

// NewRange returns [lower, upper]. It fails with INVALID_RANGE if
// lower > upper.
func NewRange(lower, upper float64) (Range, error) {
	if lower > upper {
		return Range{}, errors.New(errors.ErrCodeInvalidRange,
			"range must have lower <= upper, got [%v, %v]", lower, upper)
	}
	return Range{lower: lower, upper: upper}, nil
}

// MustRange is like NewRange but panics on error.
func MustRange(lower, upper float64) Range {
	r, err := NewRange(lower, upper)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Range) Lower() float64  { return r.lower }
func (r Range) Upper() float64  { return r.upper }
func (r Range) Extent() float64 { return r.upper - r.lower }

// Center is computed as lower/2 + upper/2 so that it cannot overflow.
func (r Range) Center() float64 { return r.lower/2 + r.upper/2 }

// IsNaN reports whether either bound is NaN.
func (r Range) IsNaN() bool { return math.IsNaN(r.lower) || math.IsNaN(r.upper) }

// Contains reports whether v lies in the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.lower && v <= r.upper
}

// ExpandToInclude returns the smallest range containing both r and v.
// NaN values are ignored.
func (r Range) ExpandToInclude(v float64) Range {
	switch {
	case v < r.lower:
		return Range{lower: v, upper: r.upper}
	case v > r.upper:
		return Range{lower: r.lower, upper: v}
	default:
		return r
	}
}

// Union returns the smallest range containing both r and o.
func (r Range) Union(o Range) Range {
	return r.ExpandToInclude(o.lower).ExpandToInclude(o.upper)
}

// AddMargins widens the range by extent*lowerPct below and extent*upperPct
// above. Negative margins shrink it; if they cross, both bounds collapse to
// the midpoint. Bounds that would overflow stop at ±math.MaxFloat64.
func (r Range) AddMargins(lowerPct, upperPct float64) Range {
	// Half the extent is finite for any finite bounds.
	half := r.upper/2 - r.lower/2
	l := clampFinite(r.lower - half*lowerPct*2)
	u := clampFinite(r.upper + half*upperPct*2)
	if l > u {
		l = l/2 + u/2
		u = l
	}
	return Range{lower: l, upper: u}
}

func clampFinite(v float64) float64 {
	return math.Max(-math.MaxFloat64, math.Min(math.MaxFloat64, v))
}

// MaxExtent is the widest range auto-ranging produces. Nice-number rounding
// may multiply an extent by up to 2.5, which must stay finite.
const MaxExtent = math.MaxFloat64 / 4

// limitExtent narrows r to MaxExtent around its center when it is wider.
func limitExtent(r Range) Range {
	if !(r.upper/2-r.lower/2 > MaxExtent/2) {
		return r
	}
	c := r.Center()
	if math.IsNaN(c) {
		c = 0
	}
	bound := math.MaxFloat64 - MaxExtent/2
	c = math.Max(-bound, math.Min(bound, c))
	return Range{lower: c - MaxExtent/2, upper: c + MaxExtent/2}
}

// Shift moves both bounds by delta. Unless allowZeroCrossing is set, a bound
// on one side of zero stops at zero instead of crossing it. A bound that is
// exactly zero moves freely.
func (r Range) Shift(delta float64, allowZeroCrossing bool) Range {
	if allowZeroCrossing {
		return Range{lower: r.lower + delta, upper: r.upper + delta}
	}
	return Range{
		lower: shiftNoZeroCrossing(r.lower, delta),
		upper: shiftNoZeroCrossing(r.upper, delta),
	}
}

func shiftNoZeroCrossing(v, delta float64) float64 {
	switch {
	case v > 0:
		return math.Max(v+delta, 0)
	case v < 0:
		return math.Min(v+delta, 0)
	default:
		return v + delta
	}
}

// Scale multiplies both bounds by factor. Negative factors would reverse the
// bounds and fail with INVALID_ARGUMENT.
func (r Range) Scale(factor float64) (Range, error) {
	if factor < 0 {
		return Range{}, errors.New(errors.ErrCodeInvalidArgument, "negative scale factor %v", factor)
	}
	return Range{lower: r.lower * factor, upper: r.upper * factor}, nil
}

// Equal reports whether both bounds are identical.
func (r Range) Equal(o Range) bool {
	return r.lower == o.lower && r.upper == o.upper
}

func (r Range) String() string {
	return "Range[" + formatBound(r.lower) + "," + formatBound(r.upper) + "]"
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

type jsonRange struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonRange{Lower: r.lower, Upper: r.upper})
}

func (r *Range) UnmarshalJSON(b []byte) error {
	var j jsonRange
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	v, err := NewRange(j.Lower, j.Upper)
	if err != nil {
		return err
	}
	*r = v
	return nil
}
