package tonecurve

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/kovidgoyal/tonecurve/spline"
)

var _ = fmt.Print

var (
	ErrTooFewPoints     = errors.New("a curve needs at least two points")
	ErrUnpinnedEndpoint = errors.New("curve endpoints must sit at the domain boundaries")
	ErrNotIncreasing    = errors.New("curve X values must be strictly increasing")
	ErrOutOfRange       = errors.New("curve values must lie within the domain")
)

// Curve is the ordered list of control points for one channel. The first and
// last points are pinned to X = DomainMin and X = DomainMax and X is strictly
// increasing with a gap of at least Epsilon.
//
// A Curve is not safe for concurrent use; hand other goroutines a copy of
// Points or a Snapshot instead.
type Curve struct {
	points []Point
}

// NewCurve returns the identity curve.
func NewCurve() *Curve {
	return &Curve{points: identity_points()}
}

// ValidatePoints reports why pts cannot be used as a curve, if at all.
func ValidatePoints(pts []Point) error {
	if len(pts) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewPoints, len(pts))
	}
	for i, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || p.X < DomainMin || p.X > DomainMax || p.Y < DomainMin || p.Y > DomainMax {
			return fmt.Errorf("%w: point %d is %s", ErrOutOfRange, i, p)
		}
		// clamped neighbours sit exactly Epsilon apart up to rounding
		if i > 0 && p.X-pts[i-1].X < Epsilon-1e-9 {
			return fmt.Errorf("%w: point %d %s follows %s", ErrNotIncreasing, i, p, pts[i-1])
		}
	}
	if pts[0].X != DomainMin || pts[len(pts)-1].X != DomainMax {
		return fmt.Errorf("%w: first X is %g and last X is %g", ErrUnpinnedEndpoint, pts[0].X, pts[len(pts)-1].X)
	}
	return nil
}

// NewCurveFromPoints returns a curve with a copy of pts, which must satisfy
// ValidatePoints.
func NewCurveFromPoints(pts []Point) (*Curve, error) {
	if err := ValidatePoints(pts); err != nil {
		return nil, err
	}
	return &Curve{points: slices.Clone(pts)}, nil
}

func (c *Curve) Len() int { return len(c.points) }

func (c *Curve) At(i int) Point { return c.points[i] }

// Points returns a copy of the control points.
func (c *Curve) Points() []Point { return slices.Clone(c.points) }

func (c *Curve) Clone() *Curve { return &Curve{points: slices.Clone(c.points)} }

// IsIdentity reports whether the curve maps every value to itself.
func (c *Curve) IsIdentity() bool {
	for _, p := range c.points {
		if p.X != p.Y {
			return false
		}
	}
	return true
}

// Spline solves the monotone spline through the current points.
func (c *Curve) Spline() *spline.Spline { return spline.New(c.points) }

// Insert adds a point, keeping the X order. Coordinates are clamped to the
// domain first. Insertion is refused when x lands within Epsilon of an
// existing point. Returns the index of the new point.
func (c *Curve) Insert(x, y float64) (int, bool) {
	x, y = clamp_domain(x), clamp_domain(y)
	idx, _ := slices.BinarySearchFunc(c.points, x, func(p Point, x float64) int {
		switch {
		case p.X < x:
			return -1
		case p.X > x:
			return 1
		}
		return 0
	})
	// idx is the first point with X >= x; endpoints guarantee 0 < idx < len
	// whenever x is strictly inside the domain
	if idx == 0 || idx == len(c.points) {
		return -1, false
	}
	if x-c.points[idx-1].X < Epsilon || c.points[idx].X-x < Epsilon {
		return -1, false
	}
	c.points = slices.Insert(c.points, idx, Point{X: x, Y: y})
	return idx, true
}

// Move sets the point at index. Endpoints keep their X. Interior points
// are clamped between their neighbours, leaving a gap of Epsilon. Y is
// clamped to the domain. Returns the stored point, or the zero Point and
// false when index is out of range.
func (c *Curve) Move(index int, x, y float64) (Point, bool) {
	if index < 0 || index >= len(c.points) {
		return Point{}, false
	}
	p := &c.points[index]
	p.Y = clamp_domain(y)
	if index > 0 && index < len(c.points)-1 {
		p.X = clamp(x, c.points[index-1].X+Epsilon, c.points[index+1].X-Epsilon)
	}
	return *p, true
}

// Remove deletes the interior point at index. Endpoints cannot be removed.
func (c *Curve) Remove(index int) bool {
	if index <= 0 || index >= len(c.points)-1 {
		return false
	}
	c.points = slices.Delete(c.points, index, index+1)
	return true
}

// Reset restores the identity curve.
func (c *Curve) Reset() {
	c.points = identity_points()
}

func (c *Curve) String() string {
	return fmt.Sprintf("Curve%v", c.points)
}
