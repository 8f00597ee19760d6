package pipeline

import (
	"fmt"
	"image"
	"image/draw"
	"slices"
	"sync"

	"github.com/kovidgoyal/tonecurve"
)

var _ = fmt.Print

// Preview keeps a rendition of a source image under the latest snapshot it
// was handed. Update matches tonecurve.Listener so a Preview can be
// subscribed to a ChannelSet directly. Rendering happens lazily in Image,
// so a burst of updates during a drag costs a single render.
type Preview struct {
	mu       sync.Mutex
	src      *image.NRGBA
	snapshot tonecurve.Snapshot
	dirty    bool
	rendered image.Image
}

// NewPreview copies src, so later changes to src are not reflected.
func NewPreview(src image.Image) *Preview {
	b := src.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Rect, src, b.Min, draw.Src)
	return &Preview{src: n, dirty: true}
}

// Update records a new snapshot.
func (p *Preview) Update(_ tonecurve.Channel, s tonecurve.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rendered != nil && s.Equal(p.snapshot) {
		return
	}
	p.snapshot, p.dirty = s, true
}

// Snapshot returns the most recent snapshot passed to Update.
func (p *Preview) Snapshot() tonecurve.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

// Image returns the source rendered with the most recent snapshot. The
// returned image must not be modified.
func (p *Preview) Image() (image.Image, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.dirty {
		return p.rendered, nil
	}
	dest := &image.NRGBA{Pix: slices.Clone(p.src.Pix), Stride: p.src.Stride, Rect: p.src.Rect}
	img, err := Apply(dest, p.snapshot)
	if err != nil {
		return nil, err
	}
	p.rendered, p.dirty = img, false
	return img, nil
}
