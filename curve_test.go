package tonecurve

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func pts(xy ...float64) []Point {
	ans := make([]Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		ans = append(ans, Pt(xy[i], xy[i+1]))
	}
	return ans
}

func must_curve(t *testing.T, xy ...float64) *Curve {
	t.Helper()
	c, err := NewCurveFromPoints(pts(xy...))
	require.NoError(t, err)
	return c
}

func assert_strictly_increasing(t *testing.T, c *Curve) {
	t.Helper()
	p := c.Points()
	require.GreaterOrEqual(t, len(p), 2)
	require.Equal(t, DomainMin, p[0].X)
	require.Equal(t, DomainMax, p[len(p)-1].X)
	for i := 1; i < len(p); i++ {
		require.Greater(t, p[i].X, p[i-1].X, "points: %v", p)
	}
}

func TestValidatePoints(t *testing.T) {
	for _, tc := range []struct {
		name string
		pts  []Point
		err  error
	}{
		{"identity", pts(0, 0, 255, 255), nil},
		{"three", pts(0, 10, 80, 200, 255, 40), nil},
		{"empty", nil, ErrTooFewPoints},
		{"single", pts(0, 0), ErrTooFewPoints},
		{"unpinned start", pts(3, 0, 255, 255), ErrUnpinnedEndpoint},
		{"unpinned end", pts(0, 0, 250, 255), ErrUnpinnedEndpoint},
		{"decreasing", pts(0, 0, 100, 10, 90, 20, 255, 255), ErrNotIncreasing},
		{"duplicate", pts(0, 0, 100, 10, 100, 20, 255, 255), ErrNotIncreasing},
		{"y too big", pts(0, 0, 255, 256), ErrOutOfRange},
		{"nan", pts(0, math.NaN(), 255, 255), ErrOutOfRange},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePoints(tc.pts)
			if tc.err == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestCurveInsert(t *testing.T) {
	c := NewCurve()
	idx, ok := c.Insert(128, 128)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	if diff := cmp.Diff(pts(0, 0, 128, 128, 255, 255), c.Points()); diff != "" {
		t.Fatalf("unexpected points (-want +got):\n%s", diff)
	}
	m := c.Spline().Segments()
	require.Len(t, m, 2)
	for _, seg := range m {
		assert.InDelta(t, 1.0, seg.M0, 1e-12)
		assert.InDelta(t, 1.0, seg.M1, 1e-12)
	}

	for _, x := range []float64{0, 255, 128, 128 + Epsilon/2, -10, 300, Epsilon / 2} {
		before := c.Points()
		_, ok := c.Insert(x, 50)
		assert.False(t, ok, "insert at %g", x)
		assert.Equal(t, before, c.Points())
	}
	idx, ok = c.Insert(64, 500)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, Pt(64, 255), c.At(1))
	idx, ok = c.Insert(200, -3)
	require.True(t, ok)
	assert.Equal(t, 3, idx)
	assert.Equal(t, Pt(200, 0), c.At(3))
	assert_strictly_increasing(t, c)
}

func TestCurveMove(t *testing.T) {
	t.Run("BoundaryPin", func(t *testing.T) {
		c := must_curve(t, 0, 0, 128, 100, 255, 255)
		p, ok := c.Move(0, 77, 30)
		require.True(t, ok)
		assert.Equal(t, Pt(0, 30), p)
		p, _ = c.Move(2, -40, 300)
		assert.Equal(t, Pt(255, 255), p)
		p, _ = c.Move(2, 1000, 12)
		assert.Equal(t, Pt(255, 12), p)
	})
	t.Run("DragClamp", func(t *testing.T) {
		c := must_curve(t, 0, 0, 100, 50, 200, 150, 255, 255)
		p, ok := c.Move(1, 210, 60)
		require.True(t, ok)
		assert.Equal(t, 200-Epsilon, p.X)
		assert.Less(t, p.X, 200.0)
		assert.Equal(t, 60.0, p.Y)
		p, _ = c.Move(1, -5, 60)
		assert.Equal(t, Epsilon, p.X)
		p, _ = c.Move(2, 0, 60)
		assert.Equal(t, Epsilon+Epsilon, p.X)
		assert_strictly_increasing(t, c)
	})
	t.Run("OutOfRangeIndex", func(t *testing.T) {
		c := NewCurve()
		_, ok := c.Move(2, 10, 10)
		assert.False(t, ok)
		_, ok = c.Move(-1, 10, 10)
		assert.False(t, ok)
		assert.True(t, c.IsIdentity())
	})
	t.Run("NaN", func(t *testing.T) {
		c := must_curve(t, 0, 0, 100, 50, 255, 255)
		p, _ := c.Move(1, math.NaN(), math.NaN())
		assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y))
		assert_strictly_increasing(t, c)
	})
}

func TestCurveRemoveAndReset(t *testing.T) {
	c := must_curve(t, 0, 10, 80, 200, 255, 40)
	assert.False(t, c.Remove(0))
	assert.False(t, c.Remove(2))
	assert.True(t, c.Remove(1))
	assert.Equal(t, pts(0, 10, 255, 40), c.Points())
	assert.False(t, c.Remove(1))

	c = must_curve(t, 0, 10, 80, 200, 255, 40)
	c.Reset()
	assert.Equal(t, pts(0, 0, 255, 255), c.Points())
	assert.True(t, c.IsIdentity())
}

func TestCurveOrderingFuzz(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	c := NewCurve()
	for range 5000 {
		x, y := r.Float64()*300-20, r.Float64()*300-20
		switch r.IntN(4) {
		case 0:
			c.Insert(x, y)
		case 1:
			c.Remove(r.IntN(c.Len()))
		default:
			c.Move(r.IntN(c.Len()), x, y)
		}
		assert_strictly_increasing(t, c)
		require.NoError(t, ValidatePoints(c.Points()))
	}
}

func TestPointsIsACopy(t *testing.T) {
	c := NewCurve()
	p := c.Points()
	p[0].Y = 99
	assert.Equal(t, 0.0, c.At(0).Y)
	d := c.Clone()
	d.Move(0, 0, 20)
	assert.Equal(t, 0.0, c.At(0).Y)
}
