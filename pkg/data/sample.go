package data

import (
	"math"

	"github.com/aclements/go-moremath/vec"
)

// Sample evaluates fn at n evenly spaced X values in [lo, hi].
func Sample(name string, lo, hi float64, n int, fn func(x float64) float64) *Series {
	s := &Series{Name: name}
	if n < 1 {
		return s
	}
	for _, x := range vec.Linspace(lo, hi, n) {
		s.Add(x, fn(x))
	}
	return s
}

// DemoPoints is the number of points per demo series.
const DemoPoints = 200

// Demo returns a small two-series collection used by the CLI when no data
// file is given.
func Demo() *Collection { return DemoN(DemoPoints) }

// DemoN returns the demo collection sampled at n points per series.
func DemoN(n int) *Collection {
	return &Collection{Series: []*Series{
		Sample("sin", 0, 4*math.Pi, n, math.Sin),
		Sample("damped", 0, 4*math.Pi, n, func(x float64) float64 {
			return 1.5 * math.Exp(-x/5) * math.Cos(x)
		}),
	}}
}
