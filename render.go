package tonecurve

import (
	"fmt"
	"math"

	"honnef.co/go/curve"

	"github.com/kovidgoyal/tonecurve/spline"
)

var _ = fmt.Print

// Viewport is the canvas the curve editor draws into. Canvas X grows to the
// right like curve X, canvas Y grows downwards while curve Y grows upwards.
type Viewport struct {
	Width, Height float64
}

// Transform maps curve space onto the canvas.
func (v Viewport) Transform() curve.Affine {
	return curve.Scale(v.Width/DomainMax, -v.Height/DomainMax).ThenTranslate(curve.Vec(0, v.Height))
}

// ToCanvas maps a curve space point onto the canvas.
func (v Viewport) ToCanvas(p Point) curve.Point {
	return curve.Pt(p.X, p.Y).Transform(v.Transform())
}

// FromCanvas maps a canvas position to curve space, clamped to the domain.
// A degenerate viewport maps everything to the origin.
func (v Viewport) FromCanvas(pt curve.Point) Point {
	if v.Width <= 0 || v.Height <= 0 {
		return Point{}
	}
	return Point{
		X: clamp_domain(pt.X / v.Width * DomainMax),
		Y: clamp_domain((v.Height - pt.Y) / v.Height * DomainMax),
	}
}

// CurvePath returns the canvas path of the spline through pts: a MoveTo the
// first knot followed by one CubicTo per segment.
func CurvePath(pts []Point, v Viewport) curve.BezPath {
	p := spline.New(pts).Path()
	p.ApplyTransform(v.Transform())
	return p
}

// adding zero folds -0 into 0 so it is not written as "-0"
func round_svg(x float64) float64 { return math.Round(x*1000)/1000 + 0 }

// PathSVG returns the SVG path data for p with coordinates rounded to three
// decimals.
func PathSVG(p curve.BezPath) string {
	r := make(curve.BezPath, len(p))
	for i, el := range p {
		r[i] = curve.PathElement{
			Kind: el.Kind,
			P0:   curve.Pt(round_svg(el.P0.X), round_svg(el.P0.Y)),
			P1:   curve.Pt(round_svg(el.P1.X), round_svg(el.P1.Y)),
			P2:   curve.Pt(round_svg(el.P2.X), round_svg(el.P2.Y)),
		}
	}
	return r.SVG(curve.SVGOptions{})
}

// HistogramPath returns the closed silhouette of counts drawn across the
// full viewport, scaled so the largest bucket reaches the top edge. It
// returns nil when every count is zero.
func HistogramPath(counts []uint64, v Viewport) curve.BezPath {
	var peak uint64
	for _, c := range counts {
		peak = max(peak, c)
	}
	if peak == 0 {
		return nil
	}
	return silhouette(len(counts), v, func(i int) float64 { return float64(counts[i]) / float64(peak) })
}

// ZeroHistogramPath returns a silhouette with the same structure as
// HistogramPath for n buckets, flat along the baseline. It is the start and
// end state when animating histogram changes.
func ZeroHistogramPath(n int, v Viewport) curve.BezPath {
	if n == 0 {
		return nil
	}
	return silhouette(n, v, func(int) float64 { return 0 })
}

func silhouette(n int, v Viewport, height func(int) float64) curve.BezPath {
	p := make(curve.BezPath, 0, n+3)
	p.MoveTo(curve.Pt(0, v.Height))
	last := float64(max(1, n-1))
	for i := range n {
		p.LineTo(curve.Pt(float64(i)*v.Width/last, v.Height*(1-height(i))))
	}
	p.LineTo(curve.Pt(v.Width, v.Height))
	p.ClosePath()
	return p
}

// LerpPath interpolates between two paths with identical element kinds,
// t = 0 giving a and t = 1 giving b. When the structures differ, b is
// returned unchanged, so animations degrade to a hard cut.
func LerpPath(a, b curve.BezPath, t float64) curve.BezPath {
	switch {
	case len(a) != len(b), t >= 1:
		return b
	case t <= 0, math.IsNaN(t):
		return a
	}
	ans := make(curve.BezPath, len(a))
	for i, ea := range a {
		eb := b[i]
		if ea.Kind != eb.Kind {
			return b
		}
		ans[i] = curve.PathElement{
			Kind: ea.Kind,
			P0:   ea.P0.Lerp(eb.P0, t),
			P1:   ea.P1.Lerp(eb.P1, t),
			P2:   ea.P2.Lerp(eb.P2, t),
		}
	}
	return ans
}
