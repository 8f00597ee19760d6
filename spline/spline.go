package spline

import (
	"fmt"
	"sort"
	"strings"

	"honnef.co/go/curve"
)

var _ = fmt.Print

// Bezier returns the cubic Bézier equivalent to the segment. The inner
// control points sit a third of the interval width away from each end,
// along the end's tangent, so the curve's X is linear in its parameter.
func (s Segment) Bezier() curve.CubicBez {
	third := (s.P1.X - s.P0.X) / 3
	return curve.CubicBez{
		P0: curve.Pt(s.P0.X, s.P0.Y),
		P1: curve.Pt(s.P0.X+third, s.P0.Y+s.M0*third),
		P2: curve.Pt(s.P1.X-third, s.P1.Y-s.M1*third),
		P3: curve.Pt(s.P1.X, s.P1.Y),
	}
}

// Spline is a solved monotone spline. It is immutable once built and safe
// for concurrent use.
type Spline struct {
	segments []Segment
}

// New solves the spline through knots. The knots are copied.
func New(knots []Knot) *Spline {
	return &Spline{segments: Solve(knots)}
}

// Segments returns the solved segments. Callers must not modify the result.
func (s *Spline) Segments() []Segment { return s.segments }

// Domain returns the X range covered by the spline.
func (s *Spline) Domain() (lo, hi float64) {
	if len(s.segments) == 0 {
		return 0, 0
	}
	return s.segments[0].P0.X, s.segments[len(s.segments)-1].P1.X
}

// Transform evaluates the spline at x. Values outside the domain are
// clamped to it.
func (s *Spline) Transform(x float64) float64 {
	n := len(s.segments)
	if n == 0 {
		return x
	}
	if x <= s.segments[0].P0.X {
		return s.segments[0].P0.Y
	}
	if last := s.segments[n-1]; x >= last.P1.X {
		return last.P1.Y
	}
	i := sort.Search(n, func(i int) bool { return s.segments[i].P1.X >= x })
	return s.segments[i].Eval(x)
}

// Path returns the spline as a single Bézier path in curve space.
func (s *Spline) Path() curve.BezPath {
	if len(s.segments) == 0 {
		return nil
	}
	p := make(curve.BezPath, 0, len(s.segments)+1)
	p.MoveTo(curve.Pt(s.segments[0].P0.X, s.segments[0].P0.Y))
	for _, seg := range s.segments {
		b := seg.Bezier()
		p.CubicTo(b.P1, b.P2, b.P3)
	}
	return p
}

func (s *Spline) String() string {
	var b strings.Builder
	b.WriteString("Spline{")
	for i, seg := range s.segments {
		if i == 0 {
			b.WriteString(seg.P0.String())
		}
		b.WriteString(" ")
		b.WriteString(seg.P1.String())
	}
	b.WriteString("}")
	return b.String()
}
