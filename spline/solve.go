// Package spline fits monotone cubic Hermite splines (Fritsch–Carlson) through
// a sequence of knots with strictly increasing X.
//
// The interpolant is continuous in value and first derivative and never
// leaves the range spanned by the two knots of any interval, so it cannot
// introduce extrema that are not present in the knot data.
package spline

import (
	"fmt"
	"math"
)

var _ = fmt.Print

// Knot is an interpolation anchor.
type Knot struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
}

func (k Knot) String() string {
	return fmt.Sprintf("(%g, %g)", k.X, k.Y)
}

const (
	// Interval widths below this are treated as vertical.
	MinIntervalWidth = 1e-9
	// Magnitude of the secant used for vertical intervals.
	SteepSlope = 1e6
	// Fritsch–Carlson limit on α²+β².
	tangentCircle = 9
)

func secant(a, b Knot) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	if math.Abs(dx) < MinIntervalWidth {
		switch {
		case dy > 0:
			return SteepSlope
		case dy < 0:
			return -SteepSlope
		}
		return 0
	}
	return dy / dx
}

// Secants returns the n-1 secant slopes between consecutive knots.
func Secants(knots []Knot) []float64 {
	if len(knots) < 2 {
		return nil
	}
	ans := make([]float64, len(knots)-1)
	for i := range ans {
		ans[i] = secant(knots[i], knots[i+1])
	}
	return ans
}

func same_sign(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}

// Tangents returns the limited tangent at every knot. The result has the same
// length as knots.
func Tangents(knots []Knot) []float64 {
	n := len(knots)
	switch n {
	case 0:
		return nil
	case 1:
		return []float64{0}
	}
	d := Secants(knots)
	m := make([]float64, n)
	m[0] = d[0]
	m[n-1] = d[n-2]
	for i := 1; i < n-1; i++ {
		if same_sign(d[i-1], d[i]) {
			m[i] = (d[i-1] + d[i]) / 2
		}
	}
	for i, delta := range d {
		if delta == 0 {
			m[i], m[i+1] = 0, 0
			continue
		}
		alpha, beta := m[i]/delta, m[i+1]/delta
		if tau := alpha*alpha + beta*beta; tau > tangentCircle {
			t := 3 / math.Sqrt(tau)
			m[i] = t * alpha * delta
			m[i+1] = t * beta * delta
		}
	}
	return m
}

// Segment is one cubic Hermite piece between two knots.
type Segment struct {
	P0, P1 Knot
	M0, M1 float64 // slopes at P0 and P1
}

func (s Segment) String() string {
	return fmt.Sprintf("Segment{%s m=%g -> %s m=%g}", s.P0, s.M0, s.P1, s.M1)
}

// Eval returns the value of the segment at x. x is not clamped to the
// segment's interval.
func (s Segment) Eval(x float64) float64 {
	h := s.P1.X - s.P0.X
	if math.Abs(h) < MinIntervalWidth {
		return s.P0.Y
	}
	t := (x - s.P0.X) / h
	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2
	return h00*s.P0.Y + h10*h*s.M0 + h01*s.P1.Y + h11*h*s.M1
}

// Solve fits the monotone spline through knots and returns its n-1
// segments. knots must be sorted by X; fewer than two knots yield no
// segments.
func Solve(knots []Knot) []Segment {
	if len(knots) < 2 {
		return nil
	}
	m := Tangents(knots)
	ans := make([]Segment, len(knots)-1)
	for i := range ans {
		ans[i] = Segment{P0: knots[i], P1: knots[i+1], M0: m[i], M1: m[i+1]}
	}
	return ans
}
