package axis

import "math"

// maxTicks bounds a single generation pass. Budgets derived from pixel
// lengths stay far below it; it only trips on pathological minimum tick
// sizes.
const maxTicks = 1 << 16

// Tick is a labelled position on an axis.
type Tick struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// TickSet is the result of one generation pass. MinAnchor and MaxAnchor are
// the step-aligned bounds enclosing the range; Ticks holds only the values
// in [lower, upper).
type TickSet struct {
	Step      float64 `json:"step"`
	MinAnchor float64 `json:"min_anchor"`
	MaxAnchor float64 `json:"max_anchor"`
	Ticks     []Tick  `json:"ticks"`
}

func (s TickSet) Len() int    { return len(s.Ticks) }
func (s TickSet) Empty() bool { return len(s.Ticks) == 0 }

// Labels returns the tick labels in order.
func (s TickSet) Labels() []string {
	out := make([]string, len(s.Ticks))
	for i, t := range s.Ticks {
		out[i] = t.Label
	}
	return out
}

// Values returns the tick values in order.
func (s TickSet) Values() []float64 {
	out := make([]float64, len(s.Ticks))
	for i, t := range s.Ticks {
		out[i] = t.Value
	}
	return out
}

// Formatter renders a tick value as a label.
type Formatter func(v float64) string

// TickFactory generates nicely spaced ticks for a range.
//
// Implementations are pure: identical inputs give identical results and no
// state is kept between calls.
type TickFactory interface {
	// Kind names the factory ("number", "calendar").
	Kind() string

	// CalculateTickSize returns the step GenerateLabels would use, or 0 if
	// maxLabels < 2 or either bound is NaN.
	CalculateTickSize(r Range, maxLabels int, minTickSize float64) float64

	// GenerateLabels returns ticks at multiples of the step lying in
	// [lower, upper). The set is empty when no step can be computed.
	GenerateLabels(r Range, maxLabels int, minTickSize float64) TickSet

	// Label formats a single value the way generated ticks are labelled
	// when no unit-specific format applies.
	Label(v float64) string
}

func noTicks(r Range, maxLabels int) bool {
	return maxLabels < 2 || r.IsNaN()
}

// sanitizeMinTick treats NaN, negative and infinite minimum sizes as "no
// minimum".
func sanitizeMinTick(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// usableExtent reports whether the nice-number math can run on r.
func usableExtent(r Range) bool {
	ext := r.Extent()
	return ext > 0 && !math.IsInf(ext, 0)
}

// anchoredTicks lays out ticks at multiples of step from floor(lower/step)
// to ceil(upper/step), keeping those in [lower, upper). Each value is
// computed from the anchor so that error does not accumulate.
func anchoredTicks(r Range, step float64, label func(float64) string) TickSet {
	set := TickSet{Step: step}
	if !(step > 0) || math.IsInf(step, 0) {
		return set
	}

	set.MinAnchor = math.Floor(r.lower/step) * step
	set.MaxAnchor = math.Ceil(r.upper/step) * step

	n := math.Round((set.MaxAnchor - set.MinAnchor) / step)
	if n > maxTicks || math.IsNaN(n) {
		return set
	}

	for i := 0; i <= int(n); i++ {
		x := set.MinAnchor + float64(i)*step
		if x >= r.lower && x < r.upper {
			set.Ticks = append(set.Ticks, Tick{Label: label(x), Value: x})
		}
	}
	return set
}
