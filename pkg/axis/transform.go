package axis

import (
	"math"

	"github.com/aclements/go-moremath/scale"
)

// Transform maps between data values and coordinates along an axis of a
// given length. It is a plain value, so a laid-out axis can be captured and
// used after the axis itself changes.
type Transform struct {
	Range  Range   `json:"range"`
	Length float64 `json:"length"`
	// FromOrigin is set when coordinates grow with the value, as on a
	// normal horizontal axis. Otherwise the lower bound sits at Length.
	FromOrigin bool `json:"from_origin"`
}

func (t Transform) linear() scale.Linear {
	return scale.Linear{Min: t.Range.lower, Max: t.Range.upper}
}

// ValueToCoord maps v to a coordinate in [0, Length]. A zero-extent range
// maps everything to Length/2.
func (t Transform) ValueToCoord(v float64) float64 {
	if t.Range.Extent() == 0 {
		return t.Length / 2
	}
	n := t.linear().Map(v)
	if math.IsInf(n, 0) && !math.IsInf(v, 0) {
		// v - lower overflowed; halving every term keeps the ratio.
		r := t.Range
		n = (v/2 - r.lower/2) / (r.upper/2 - r.lower/2)
	}
	if !t.FromOrigin {
		n = 1 - n
	}
	return n * t.Length
}

// CoordToValue is the inverse of ValueToCoord. With zero length or zero
// extent it returns the lower bound.
func (t Transform) CoordToValue(c float64) float64 {
	if t.Length <= 0 || t.Range.Extent() == 0 {
		return t.Range.lower
	}
	n := c / t.Length
	if !t.FromOrigin {
		n = 1 - n
	}
	return t.linear().Unmap(n)
}
