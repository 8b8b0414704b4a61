package data

import (
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/simplecharts/simplecharts/pkg/axis"
	"github.com/simplecharts/simplecharts/pkg/errors"
)

// Point is one observation.
type Point struct {
	X float64
	Y float64
}

// Series is a named sequence of points.
type Series struct {
	Name   string
	Points []Point
}

// Provider supplies the data extents axes auto-range to.
type Provider interface {
	DomainRange() axis.Range
	ValueRange() axis.Range
}

var (
	_ Provider = (*Series)(nil)
	_ Provider = (*Collection)(nil)
)

// Add appends a point.
func (s *Series) Add(x, y float64) {
	s.Points = append(s.Points, Point{X: x, Y: y})
}

// Len returns the number of points.
func (s *Series) Len() int { return len(s.Points) }

// Xs returns the X values.
func (s *Series) Xs() []float64 {
	xs := make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i] = p.X
	}
	return xs
}

// Ys returns the Y values.
func (s *Series) Ys() []float64 {
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		ys[i] = p.Y
	}
	return ys
}

// DomainRange is the extent of the finite X values, or a NaN range if there
// are none.
func (s *Series) DomainRange() axis.Range { return bounds(s.Xs()) }

// ValueRange is the extent of the finite Y values, or a NaN range if there
// are none.
func (s *Series) ValueRange() axis.Range { return bounds(s.Ys()) }

// nanRange marks "no data". Auto-ranging axes leave their range alone when
// given it.
func nanRange() axis.Range {
	r, _ := axis.NewRange(math.NaN(), math.NaN())
	return r
}

func bounds(xs []float64) axis.Range {
	finite := xs[:0:0]
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			finite = append(finite, x)
		}
	}
	if len(finite) == 0 {
		return nanRange()
	}
	lo, hi := stats.Bounds(finite)
	return axis.MustRange(lo, hi)
}

// Collection is the data of one plot.
type Collection struct {
	Series []*Series
	// Time marks X values as epoch milliseconds.
	Time bool
}

// Len returns the total number of points.
func (c *Collection) Len() int {
	n := 0
	for _, s := range c.Series {
		n += s.Len()
	}
	return n
}

// DomainRange is the union of the series' X extents.
func (c *Collection) DomainRange() axis.Range {
	return c.union((*Series).DomainRange)
}

// ValueRange is the union of the series' Y extents.
func (c *Collection) ValueRange() axis.Range {
	return c.union((*Series).ValueRange)
}

func (c *Collection) union(extent func(*Series) axis.Range) axis.Range {
	out := nanRange()
	for _, s := range c.Series {
		r := extent(s)
		switch {
		case r.IsNaN():
		case out.IsNaN():
			out = r
		default:
			out = out.Union(r)
		}
	}
	return out
}

// Ranges returns both extents. It fails with EMPTY_DATA if there is not a
// single finite point.
func (c *Collection) Ranges() (domain, value axis.Range, err error) {
	domain, value = c.DomainRange(), c.ValueRange()
	if domain.IsNaN() || value.IsNaN() {
		return domain, value, errors.New(errors.ErrCodeEmptyData, "no finite data points")
	}
	return domain, value, nil
}

// Names returns the series names in order.
func (c *Collection) Names() []string {
	names := make([]string, len(c.Series))
	for i, s := range c.Series {
		names[i] = s.Name
	}
	return names
}
