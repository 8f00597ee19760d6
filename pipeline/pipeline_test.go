package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovidgoyal/tonecurve"
)

var _ = fmt.Print

func pts(xy ...float64) []tonecurve.Point {
	ans := make([]tonecurve.Point, len(xy)/2)
	for i := range ans {
		ans[i] = tonecurve.Pt(xy[2*i], xy[2*i+1])
	}
	return ans
}

func snapshot(t *testing.T, cfg tonecurve.Config) tonecurve.Snapshot {
	t.Helper()
	s, err := tonecurve.SnapshotFromConfig(cfg)
	require.NoError(t, err)
	return s
}

func ramp(width int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, 3))
	for y := range 3 {
		for x := range width {
			v := uint8(x % 256)
			img.SetNRGBA(x, y, color.NRGBA{v, 255 - v, v / 2, 0xff})
		}
	}
	return img
}

func TestEvaluatorMatchesSpline(t *testing.T) {
	s := snapshot(t, tonecurve.Config{"luma": pts(0, 10, 80, 200, 255, 40)})
	e := NewEvaluator(s)
	require.False(t, e.IsIdentity())
	sp := s.Spline(tonecurve.Luma)
	var got, want []uint8
	for i := range 256 {
		px := []uint8{uint8(i), uint8(i), uint8(i)}
		e.Map8(px)
		got = append(got, px...)
		v := uint8(math.Round(sp.Transform(float64(i))))
		want = append(want, v, v, v)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("8-bit output differs from the drawn spline (-want +got):\n%s", diff)
	}
	// the curve passes through its knots
	px := []uint8{80, 0, 255}
	e.Map8(px)
	assert.Equal(t, []uint8{200, 10, 40}, px)
}

func TestEvaluatorModes(t *testing.T) {
	t.Run("Identity", func(t *testing.T) {
		e := NewEvaluator(tonecurve.IdentitySnapshot())
		assert.True(t, e.IsIdentity())
		img := ramp(4)
		out, err := e.Apply(img)
		require.NoError(t, err)
		assert.Same(t, img, out)
	})
	t.Run("PerChannel", func(t *testing.T) {
		e := NewEvaluator(snapshot(t, tonecurve.Config{"red": pts(0, 255, 255, 0)}))
		r, g, b := e.Map(0, 100, 200)
		assert.InDelta(t, 255, r, 1e-9)
		assert.InDelta(t, 100, g, 1e-9)
		assert.InDelta(t, 200, b, 1e-9)
	})
	t.Run("LumaRescale", func(t *testing.T) {
		// the luma curve doubles luminance below 127.5
		e := NewEvaluator(snapshot(t, tonecurve.Config{
			"luma":  pts(0, 0, 127.5, 255, 255, 255),
			"green": pts(0, 0, 255, 255),
			"blue":  pts(0, 0, 255, 200),
		}))
		r, g, b := e.Map(0, 0, 0)
		assert.Equal(t, [3]float64{0, 0, 0}, [3]float64{r, g, b})
		r, g, b = e.Map(40, 40, 255)
		l := LumaR*40 + LumaG*40 + LumaB*200
		ratio := e.luma.Transform(l) / l
		assert.Greater(t, ratio, 1.0)
		assert.InDelta(t, 40*ratio, r, 1e-9)
		assert.InDelta(t, 40*ratio, g, 1e-9)
		assert.InDelta(t, min(200*ratio, 255), b, 1e-9)
	})
}

func TestApplyFormats(t *testing.T) {
	s := snapshot(t, tonecurve.Config{"luma": pts(0, 255, 255, 0)})
	t.Run("NRGBA", func(t *testing.T) {
		img := ramp(256)
		sub := img.SubImage(image.Rect(10, 1, 20, 2)).(*image.NRGBA)
		out, err := Apply(sub, s)
		require.NoError(t, err)
		assert.Same(t, sub, out)
		assert.Equal(t, color.NRGBA{245, 10, 250, 0xff}, img.NRGBAAt(10, 1))
		assert.Equal(t, color.NRGBA{9, 0xff - 9, 4, 0xff}, img.NRGBAAt(9, 1), "outside the sub image")
	})
	t.Run("RGBA", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 2, 1))
		img.SetRGBA(0, 0, color.RGBA{0, 0, 0, 0xff})
		img.SetRGBA(1, 0, color.RGBA{0, 0, 0, 0})
		_, err := Apply(img, s)
		require.NoError(t, err)
		assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, img.RGBAAt(0, 0))
		assert.Equal(t, color.RGBA{}, img.RGBAAt(1, 0))
	})
	t.Run("NRGBA64", func(t *testing.T) {
		img := image.NewNRGBA64(image.Rect(0, 0, 1, 1))
		img.SetNRGBA64(0, 0, color.NRGBA64{0, 0xffff, 257 * 100, 0x8000})
		_, err := Apply(img, s)
		require.NoError(t, err)
		assert.Equal(t, color.NRGBA64{0xffff, 0, 257 * 155, 0x8000}, img.NRGBA64At(0, 0))
	})
	t.Run("Gray", func(t *testing.T) {
		img := image.NewGray(image.Rect(0, 0, 2, 2))
		img.SetGray(1, 1, color.Gray{Y: 55})
		out, err := Apply(img, s)
		require.NoError(t, err)
		n, ok := out.(*image.NRGBA)
		require.True(t, ok)
		assert.Equal(t, color.NRGBA{200, 200, 200, 0xff}, n.NRGBAAt(1, 1))
		assert.Equal(t, color.NRGBA{255, 255, 255, 0xff}, n.NRGBAAt(0, 0))
	})
	t.Run("Paletted", func(t *testing.T) {
		img := image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.NRGBA{0, 0, 0, 0xff}})
		_, err := Apply(img, s)
		require.NoError(t, err)
		r, g, b, a := img.At(0, 0).RGBA()
		assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff, 0xffff}, []uint32{r, g, b, a})

		shared := color.Palette{color.NRGBA{0, 0, 0, 0xff}, color.NRGBA{10, 20, 30, 0xff}}
		first := image.NewPaletted(image.Rect(0, 0, 1, 1), shared)
		second := image.NewPaletted(image.Rect(0, 0, 1, 1), shared)
		_, err = Apply(first, s)
		require.NoError(t, err)
		assert.Equal(t, color.NRGBA{0, 0, 0, 0xff}, shared[0])
		assert.Equal(t, color.NRGBA{10, 20, 30, 0xff}, second.Palette[1])
		r, _, _, _ = first.At(0, 0).RGBA()
		assert.Equal(t, uint32(0xffff), r)
	})
	t.Run("Fallback", func(t *testing.T) {
		img := image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio444)
		for i := range img.Y {
			img.Y[i], img.Cb[i], img.Cr[i] = 0, 128, 128
		}
		out, err := Apply(img, s)
		require.NoError(t, err)
		n, ok := out.(*image.NRGBA64)
		require.True(t, ok)
		c := n.NRGBA64At(1, 1)
		assert.Equal(t, uint16(0xffff), c.R)
		assert.Equal(t, uint16(0xffff), c.A)
	})
}

func TestPreviewFollowsChannelSet(t *testing.T) {
	set := tonecurve.NewChannelSet(nil)
	p := NewPreview(ramp(8))
	set.Subscribe(p.Update)
	first, err := p.Image()
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{3, 252, 1, 0xff}, first.(*image.NRGBA).NRGBAAt(3, 0))
	again, err := p.Image()
	require.NoError(t, err)
	assert.Same(t, first, again)

	set.Move(0, 0, 255)
	set.Move(1, 255, 0)
	assert.True(t, p.Snapshot().Equal(set.Snapshot()))
	inverted, err := p.Image()
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{252, 3, 254, 0xff}, inverted.(*image.NRGBA).NRGBAAt(3, 0))
	// the source is never modified
	assert.Equal(t, color.NRGBA{3, 252, 1, 0xff}, first.(*image.NRGBA).NRGBAAt(3, 0))
}

func TestEaseIn(t *testing.T) {
	s := snapshot(t, tonecurve.Config{"luma": pts(0, 255, 255, 0)})
	_, err := EaseIn(ramp(4), s, 1, time.Second, time.Second)
	assert.Error(t, err)
	a, err := EaseIn(ramp(4), s, 5, time.Second, 2*time.Second)
	require.NoError(t, err)
	require.Len(t, a.Frames, 5)
	at := func(i int) color.NRGBA { return a.Frames[i].Image.(*image.NRGBA).NRGBAAt(0, 0) }
	assert.Equal(t, color.NRGBA{0, 255, 0, 0xff}, at(0))
	assert.Equal(t, color.NRGBA{255, 0, 255, 0xff}, at(4))
	// halfway along a smoothstep is half strength, which maps everything to mid grey
	assert.Equal(t, color.NRGBA{128, 128, 128, 0xff}, at(2))
	assert.Less(t, at(1).R, uint8(128))
	assert.Equal(t, 250*time.Millisecond, a.Frames[0].Delay)
	assert.Equal(t, 2*time.Second, a.Frames[4].Delay)
}
