package tonecurve

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/tonecurve/spline"
)

var _ = fmt.Print

// Point is a control point: X is the input channel value and Y the output
// value, both in [DomainMin, DomainMax].
type Point = spline.Knot

const (
	DomainMin = 0.0
	DomainMax = 255.0
	// Epsilon is the minimum X distance kept between neighbouring control
	// points.
	Epsilon = 0.01
)

// Pt returns the point (x, y).
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func clamp(x, lo, hi float64) float64 {
	switch {
	case math.IsNaN(x):
		return lo
	case x < lo:
		return lo
	case x > hi:
		return hi
	}
	return x
}

func clamp_domain(x float64) float64 { return clamp(x, DomainMin, DomainMax) }

func identity_points() []Point {
	return []Point{{X: DomainMin, Y: DomainMin}, {X: DomainMax, Y: DomainMax}}
}
