package tonecurve

import (
	"fmt"

	"honnef.co/go/curve"
)

var _ = fmt.Print

// HistogramBuckets is the number of sample count buckets per channel.
const HistogramBuckets = 256

// Histogram holds per channel sample counts of an image. It is produced
// outside this package and treated as read-only.
type Histogram [NumChannels][HistogramBuckets]uint64

// HistogramSource provides the histogram of the image being edited. A
// source returns the same pointer until the underlying data changes, so
// callers can detect refreshes by comparing pointers.
type HistogramSource interface {
	Histogram() *Histogram
}

// IsEmpty reports whether ch has no samples.
func (h *Histogram) IsEmpty(ch Channel) bool {
	if h == nil {
		return true
	}
	for _, c := range h[ch] {
		if c != 0 {
			return false
		}
	}
	return true
}

// HistogramOverlay tracks the histogram silhouette shown behind the curve of
// the active channel and animates changes as a collapse to the baseline
// followed by an expansion of the new shape.
type HistogramOverlay struct {
	source   HistogramSource
	viewport Viewport

	shown   *Histogram
	channel Channel
	from    curve.BezPath
	to      curve.BezPath
}

// NewHistogramOverlay returns an overlay drawing the histograms from src.
func NewHistogramOverlay(src HistogramSource, v Viewport) *HistogramOverlay {
	return &HistogramOverlay{source: src, viewport: v, channel: -1}
}

func (o *HistogramOverlay) target() curve.BezPath {
	h := o.shown
	if h == nil {
		return nil
	}
	return HistogramPath(h[o.channel][:], o.viewport)
}

// Update refreshes the overlay for channel ch. It reports whether the drawn
// silhouette changed, either because the source published new data or
// because the channel differs from the previous call. Invalid channels are
// ignored.
func (o *HistogramOverlay) Update(ch Channel) bool {
	if !ch.Valid() {
		return false
	}
	var h *Histogram
	if o.source != nil {
		h = o.source.Histogram()
	}
	if h == o.shown && ch == o.channel {
		return false
	}
	o.from = o.Frame(1)
	o.shown, o.channel = h, ch
	o.to = o.target()
	return true
}

// Frame returns the silhouette at animation progress t in [0, 1]. The first
// half collapses the previous silhouette onto the baseline, the second half
// expands the current one. Frame(1) is the settled state, which is nil when
// the current histogram is empty.
func (o *HistogramOverlay) Frame(t float64) curve.BezPath {
	t = clamp(t, 0, 1)
	zero := ZeroHistogramPath(HistogramBuckets, o.viewport)
	if t < 0.5 {
		if o.from == nil {
			return nil
		}
		return LerpPath(o.from, zero, t*2)
	}
	if o.to == nil {
		return nil
	}
	return LerpPath(zero, o.to, (t-0.5)*2)
}
