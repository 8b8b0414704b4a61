package axis

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var decimalPrinter = message.NewPrinter(language.English)

// DecimalFormat renders v with thousands grouping and at most nine fraction
// digits: 1234.5 becomes "1,234.5". Negative zero prints as "0".
func DecimalFormat(v float64) string {
	if v == 0 {
		v = 0
	}
	return decimalPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(9)))
}

// NumberTickFactory places ticks at 1, 2 or 5 times a power of ten.
type NumberTickFactory struct {
	// Format overrides DecimalFormat when set.
	Format Formatter
}

// NewNumberTickFactory returns a factory using DecimalFormat.
func NewNumberTickFactory() *NumberTickFactory { return &NumberTickFactory{} }

func (f *NumberTickFactory) Kind() string { return "number" }

func (f *NumberTickFactory) Label(v float64) string {
	if f != nil && f.Format != nil {
		return f.Format(v)
	}
	return DecimalFormat(v)
}

// CalculateTickSize first rounds the whole extent up to a nice number, then
// divides it into maxLabels-1 intervals and rounds that to the nearest nice
// number.
func (f *NumberTickFactory) CalculateTickSize(r Range, maxLabels int, minTickSize float64) float64 {
	if noTicks(r, maxLabels) {
		return 0
	}
	minTick := sanitizeMinTick(minTickSize)
	if !usableExtent(r) {
		return minTick
	}
	coarse := niceNum(r.Extent(), false)
	return math.Max(minTick, niceNum(coarse/float64(maxLabels-1), true))
}

func (f *NumberTickFactory) GenerateLabels(r Range, maxLabels int, minTickSize float64) TickSet {
	if noTicks(r, maxLabels) {
		return TickSet{}
	}
	return anchoredTicks(r, f.CalculateTickSize(r, maxLabels, minTickSize), f.Label)
}

// niceNum returns a number of the form {1,2,5,10}×10^exp near x. With round
// false the result is >= x; with round true it is the nearest such number.
func niceNum(x float64, round bool) float64 {
	if !(x > 0) || math.IsInf(x, 0) {
		return 0
	}
	exp := math.Floor(math.Log10(x))
	pow := math.Pow(10, exp)
	f := x / pow

	var nf float64
	if round {
		switch {
		case f < 1.5:
			nf = 1
		case f < 3:
			nf = 2
		case f < 7:
			nf = 5
		default:
			nf = 10
		}
	} else {
		switch {
		case f <= 1:
			nf = 1
		case f <= 2:
			nf = 2
		case f <= 5:
			nf = 5
		default:
			nf = 10
		}
	}
	return nf * pow
}
