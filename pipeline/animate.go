package pipeline

import (
	"fmt"
	"image"
	"time"

	"github.com/kovidgoyal/tonecurve"
)

var _ = fmt.Print

// smoothstep easing, zero slope at both ends
func ease(t float64) float64 { return t * t * (3 - 2*t) }

// EaseIn renders an animation of src with the curves of s faded in from the
// identity over num_frames frames. The last frame shows the full effect and
// is held for hold before the animation loops.
func EaseIn(src image.Image, s tonecurve.Snapshot, num_frames int, duration, hold time.Duration) (*tonecurve.Animation, error) {
	if num_frames < 2 {
		return nil, fmt.Errorf("an animation needs at least two frames, got %d", num_frames)
	}
	p := NewPreview(src)
	ans := &tonecurve.Animation{}
	delay := duration / time.Duration(num_frames-1)
	for i := range num_frames {
		strength := ease(float64(i) / float64(num_frames-1))
		p.Update(tonecurve.Luma, s.Attenuate(strength))
		img, err := p.Image()
		if err != nil {
			return nil, err
		}
		d := delay
		if i == num_frames-1 {
			d = hold
		}
		ans.Append(img, d)
	}
	return ans, nil
}
