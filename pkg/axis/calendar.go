package axis

import (
	"math"
	"time"
)

// TimeUnit is an approximate calendar unit used to pick date tick steps.
// Months are 30 days and years are 13 such months; ticks are not aligned to
// real calendar boundaries.
type TimeUnit struct {
	Name   string
	Millis float64
	Layout string
}

var (
	Millisecond = TimeUnit{Name: "millisecond", Millis: 1, Layout: "15:04:05.000"}
	Second      = TimeUnit{Name: "second", Millis: 1000, Layout: "15:04:05"}
	Minute      = TimeUnit{Name: "minute", Millis: 60 * 1000, Layout: "15:04:05"}
	Hour        = TimeUnit{Name: "hour", Millis: 60 * 60 * 1000, Layout: "Jan 02 15:04"}
	Day         = TimeUnit{Name: "day", Millis: 24 * 60 * 60 * 1000, Layout: "Jan 02"}
	Month       = TimeUnit{Name: "month", Millis: 30 * 24 * 60 * 60 * 1000, Layout: "Jan 2006"}
	Year        = TimeUnit{Name: "year", Millis: 13 * 30 * 24 * 60 * 60 * 1000, Layout: "2006"}
)

var timeUnits = []TimeUnit{Millisecond, Second, Minute, Hour, Day, Month, Year}

// DefaultCalendarLayout is used by Label when no unit is known.
const DefaultCalendarLayout = "2006-01-02 15:04:05"

// SelectUnit returns the largest unit not exceeding rawSpacing (in
// milliseconds). Spacings below a second select Millisecond.
func SelectUnit(rawSpacing float64) TimeUnit {
	for i := len(timeUnits) - 1; i > 0; i-- {
		if rawSpacing >= timeUnits[i].Millis {
			return timeUnits[i]
		}
	}
	return Millisecond
}

// CalendarTickFactory generates ticks for epoch-millisecond values.
type CalendarTickFactory struct {
	// Location for labels. Nil means UTC.
	Location *time.Location
	// Format overrides the per-unit layouts when set.
	Format Formatter
}

// NewCalendarTickFactory returns a factory labelling in UTC.
func NewCalendarTickFactory() *CalendarTickFactory { return &CalendarTickFactory{} }

func (f *CalendarTickFactory) Kind() string { return "calendar" }

func (f *CalendarTickFactory) Label(v float64) string {
	return f.labelFor(v, DefaultCalendarLayout)
}

// LabelFor formats v with the layout of unit.
func (f *CalendarTickFactory) LabelFor(v float64, unit TimeUnit) string {
	return f.labelFor(v, unit.Layout)
}

func (f *CalendarTickFactory) labelFor(v float64, layout string) string {
	if f != nil && f.Format != nil {
		return f.Format(v)
	}
	// Outside the int64 millisecond range there is no time to format.
	if !(v >= math.MinInt64 && v < math.MaxInt64) {
		return ""
	}
	loc := time.UTC
	if f != nil && f.Location != nil {
		loc = f.Location
	}
	return time.UnixMilli(int64(v)).In(loc).Format(layout)
}

// CalculateTickSize divides the extent into maxLabels raw intervals, picks
// the unit for that spacing and rounds to a nice multiple of the unit.
func (f *CalendarTickFactory) CalculateTickSize(r Range, maxLabels int, minTickSize float64) float64 {
	step, _ := f.tickSize(r, maxLabels, minTickSize)
	return step
}

func (f *CalendarTickFactory) tickSize(r Range, maxLabels int, minTickSize float64) (float64, TimeUnit) {
	if noTicks(r, maxLabels) {
		return 0, Millisecond
	}
	minTick := sanitizeMinTick(minTickSize)
	if !usableExtent(r) {
		return minTick, Millisecond
	}
	raw := r.Extent() / float64(maxLabels)
	unit := SelectUnit(raw)
	return math.Max(minTick, niceTick(raw/unit.Millis, unit)*unit.Millis), unit
}

func (f *CalendarTickFactory) GenerateLabels(r Range, maxLabels int, minTickSize float64) TickSet {
	if noTicks(r, maxLabels) {
		return TickSet{}
	}
	step, unit := f.tickSize(r, maxLabels, minTickSize)
	return anchoredTicks(r, step, func(v float64) string { return f.LabelFor(v, unit) })
}

// niceTick rounds n (a count of unit) to a denomination people read easily
// for that unit: 1/2/5 seconds or minutes, 1/2/6 hours, and so on.
func niceTick(n float64, unit TimeUnit) float64 {
	if !(n > 0) || math.IsInf(n, 0) {
		return 0
	}
	exp := math.Floor(math.Log10(n))
	pow := math.Pow(10, exp)
	f := n / pow

	var nf float64
	switch unit.Millis {
	case Second.Millis, Minute.Millis:
		if exp == 0 {
			switch {
			case f < 1.5:
				nf = 1
			case f < 3:
				nf = 2
			default:
				nf = 5
			}
		} else {
			switch {
			case f < 1.3:
				nf = 1
			case f <= 1.5:
				nf = 1.5
			case f < 5:
				nf = 3
			default:
				nf = 10
			}
		}
	case Hour.Millis:
		if exp == 0 {
			switch {
			case f <= 1.5:
				nf = 1
			case f <= 4:
				nf = 2
			default:
				nf = 6
			}
		} else {
			if f <= 1.5 {
				nf = 1.2
			} else {
				nf = 10
			}
		}
	default:
		switch {
		case f < 1.5:
			nf = 1
		case f < 4:
			nf = 3
		case f < 7:
			nf = 5
		default:
			nf = 10
		}
	}
	return nf * pow
}
