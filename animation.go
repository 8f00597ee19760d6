package tonecurve

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"time"

	"github.com/kettek/apng"
)

var _ = fmt.Print

// Frame is one frame of an animated preview. Every frame covers the full
// canvas and replaces the previous one.
type Frame struct {
	Number uint
	Image  image.Image `json:"-"`
	Delay  time.Duration
}

// Animation is a sequence of full canvas frames, used to preview a set of
// curves easing in from the identity.
type Animation struct {
	Frames    []*Frame
	LoopCount uint // 0 means loop forever, 1 means loop once, ...
}

// Append adds a frame shown for delay.
func (self *Animation) Append(img image.Image, delay time.Duration) {
	self.Frames = append(self.Frames, &Frame{Number: uint(len(self.Frames) + 1), Image: img, Delay: delay})
}

// Bounds is the canvas of the animation, the bounds of its first frame.
func (self *Animation) Bounds() image.Rectangle {
	if len(self.Frames) == 0 {
		return image.Rectangle{}
	}
	return self.Frames[0].Image.Bounds()
}

// DecodeAnimation reads an animated PNG. Frames that do not cover the full
// canvas are composited onto the previous frame so that every returned
// frame is a complete picture.
func DecodeAnimation(r io.Reader) (*Animation, error) {
	p, err := apng.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	ans := &Animation{LoopCount: p.LoopCount}
	var canvas *image.NRGBA
	for _, f := range p.Frames {
		if f.IsDefault {
			continue
		}
		b := f.Image.Bounds()
		if canvas == nil {
			canvas = image.NewNRGBA(image.Rect(0, 0, b.Dx()+f.XOffset, b.Dy()+f.YOffset))
		} else {
			prev := canvas
			canvas = image.NewNRGBA(prev.Rect)
			copy(canvas.Pix, prev.Pix)
		}
		op := draw.Over
		if f.BlendOp == apng.BLEND_OP_SOURCE {
			op = draw.Src
		}
		draw.Draw(canvas, image.Rect(f.XOffset, f.YOffset, f.XOffset+b.Dx(), f.YOffset+b.Dy()), f.Image, b.Min, op)
		ans.Append(canvas, time.Duration(float64(time.Second)*f.GetDelay()))
	}
	return ans, nil
}

// converts a time.Duration to a numerator and denominator of type uint16,
// the best rational approximation of the duration in seconds found by
// walking the convergents of its continued fraction.
func as_fraction(d time.Duration) (num, den uint16) {
	if d <= 0 {
		return 0, 1
	}
	val := d.Seconds()
	num, den = 0, 1
	best_error := math.Abs(val)
	// h and k hold the numerators and denominators of the last three
	// convergents
	h := [3]int64{0, 1, 0}
	k := [3]int64{1, 0, 0}
	f := val
	for range 100 {
		a := int64(f)
		h[2] = a*h[1] + h[0]
		k[2] = a*k[1] + k[0]
		if h[2] > math.MaxUint16 || k[2] > math.MaxUint16 {
			break
		}
		if e := math.Abs(val - float64(h[2])/float64(k[2])); e < best_error {
			best_error, num, den = e, uint16(h[2]), uint16(k[2])
		}
		if f == float64(a) {
			break
		}
		f = 1.0 / (f - float64(a))
		h[0], h[1] = h[1], h[2]
		k[0], k[1] = k[1], k[2]
	}
	return
}

func (self *Animation) as_apng() (ans apng.APNG) {
	ans.LoopCount = self.LoopCount
	for _, f := range self.Frames {
		d := apng.Frame{DisposeOp: apng.DISPOSE_OP_NONE, BlendOp: apng.BLEND_OP_SOURCE, Image: f.Image}
		d.DelayNumerator, d.DelayDenominator = as_fraction(f.Delay)
		ans.Frames = append(ans.Frames, d)
	}
	return
}

// EncodeAsPNG writes the animation as an animated PNG, or as a plain PNG
// when there is a single frame.
func (self *Animation) EncodeAsPNG(w io.Writer) error {
	switch len(self.Frames) {
	case 0:
		return fmt.Errorf("cannot encode an animation with no frames")
	case 1:
		return png.Encode(w, self.Frames[0].Image)
	}
	b := self.Bounds()
	for _, f := range self.Frames {
		if f.Image.Bounds() != b {
			return fmt.Errorf("frame %d has bounds %v which differ from the canvas %v", f.Number, f.Image.Bounds(), b)
		}
	}
	return apng.Encode(w, self.as_apng())
}

// Save writes the animation to filename as an animated PNG.
func (self *Animation) Save(filename string) (err error) {
	file, err := fs.Create(filename)
	if err != nil {
		return err
	}
	err = self.EncodeAsPNG(file)
	errc := file.Close()
	if err == nil {
		err = errc
	}
	return err
}
