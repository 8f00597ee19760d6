// Package pipeline applies tone curve snapshots to images. Evaluation goes
// through the same spline package the curve editor draws with, so what is
// drawn is exactly what is applied.
package pipeline

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/tonecurve"
	"github.com/kovidgoyal/tonecurve/spline"
)

var _ = fmt.Print

// Rec. 709 luminance weights
const (
	LumaR = 0.2126
	LumaG = 0.7152
	LumaB = 0.0722
)

type mode int

const (
	identity_mode mode = iota
	// only the luma curve is set, it maps every channel
	luma_mode
	// the RGB curves map each channel, luma rescales the result
	rgb_mode
)

// Evaluator maps colors through the curves of a Snapshot. It is immutable
// once built and safe for concurrent use.
type Evaluator struct {
	mode     mode
	luma     *spline.Spline
	rgb      [3]*spline.Spline
	rescale  bool
	lut      [3][256]uint8
	rgb_lut8 [3][256]float64
}

func round8(v float64) uint8 {
	return uint8(math.Round(min(max(v, tonecurve.DomainMin), tonecurve.DomainMax)))
}

// NewEvaluator solves the splines of every channel in s and precomputes the
// 8-bit lookup tables.
func NewEvaluator(s tonecurve.Snapshot) *Evaluator {
	e := &Evaluator{luma: s.Spline(tonecurve.Luma)}
	rgb_identity := true
	for i, ch := range []tonecurve.Channel{tonecurve.Red, tonecurve.Green, tonecurve.Blue} {
		e.rgb[i] = s.Spline(ch)
		rgb_identity = rgb_identity && s.IsIdentity(ch)
	}
	switch {
	case !rgb_identity:
		e.mode = rgb_mode
		e.rescale = !s.IsIdentity(tonecurve.Luma)
	case !s.IsIdentity(tonecurve.Luma):
		e.mode = luma_mode
	default:
		e.mode = identity_mode
	}
	for i := range 256 {
		x := float64(i)
		for c := range 3 {
			var v float64
			switch e.mode {
			case luma_mode:
				v = e.luma.Transform(x)
			case rgb_mode:
				v = e.rgb[c].Transform(x)
			default:
				v = x
			}
			e.rgb_lut8[c][i] = v
			e.lut[c][i] = round8(v)
		}
	}
	return e
}

// IsIdentity reports whether the evaluator leaves every color unchanged.
func (e *Evaluator) IsIdentity() bool { return e.mode == identity_mode }

func (e *Evaluator) rescale_by_luma(r, g, b float64) (float64, float64, float64) {
	l := LumaR*r + LumaG*g + LumaB*b
	nl := e.luma.Transform(l)
	if l <= 0 {
		return nl, nl, nl
	}
	f := nl / l
	return r * f, g * f, b * f
}

// Map transforms a color with components in [0, 255]. The result is clamped
// to the same range but not rounded.
func (e *Evaluator) Map(r, g, b float64) (float64, float64, float64) {
	clampf := func(x float64) float64 { return min(max(x, tonecurve.DomainMin), tonecurve.DomainMax) }
	switch e.mode {
	case luma_mode:
		return e.luma.Transform(r), e.luma.Transform(g), e.luma.Transform(b)
	case rgb_mode:
		r, g, b = e.rgb[0].Transform(r), e.rgb[1].Transform(g), e.rgb[2].Transform(b)
		if e.rescale {
			r, g, b = e.rescale_by_luma(r, g, b)
			return clampf(r), clampf(g), clampf(b)
		}
	}
	return r, g, b
}

// Map8 transforms the 8-bit RGB triple in px in place.
func (e *Evaluator) Map8(px []uint8) {
	_ = px[2]
	if e.rescale {
		r, g, b := e.rescale_by_luma(e.rgb_lut8[0][px[0]], e.rgb_lut8[1][px[1]], e.rgb_lut8[2][px[2]])
		px[0], px[1], px[2] = round8(r), round8(g), round8(b)
		return
	}
	px[0], px[1], px[2] = e.lut[0][px[0]], e.lut[1][px[1]], e.lut[2][px[2]]
}

const scale16 = math.MaxUint16 / tonecurve.DomainMax

func round16(v float64) uint16 {
	return uint16(math.Round(min(max(v, tonecurve.DomainMin), tonecurve.DomainMax) * scale16))
}

// Map16 transforms the 16-bit RGB triple in px in place.
func (e *Evaluator) Map16(px []uint16) {
	_ = px[2]
	r, g, b := e.Map(float64(px[0])/scale16, float64(px[1])/scale16, float64(px[2])/scale16)
	px[0], px[1], px[2] = round16(r), round16(g), round16(b)
}
