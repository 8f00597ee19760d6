package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"slices"

	"github.com/kovidgoyal/go-parallel"

	"github.com/kovidgoyal/tonecurve"
)

var _ = fmt.Print

func premultiply8(r, a uint8) uint8 {
	return uint8((uint16(r) * uint16(a)) / uint16(0xff))
}

func unpremultiply8(r, a uint8) uint8 {
	return uint8((uint16(r) * 0xff) / uint16(a))
}

func unpremultiply(r, a uint32) uint16 {
	return uint16((r * 0xffff) / a)
}

func premultiply(r, a uint32) uint16 {
	return uint16((r * a) / 0xffff)
}

func get16(s []uint8) uint16 { return uint16(s[0])<<8 | uint16(s[1]) }

func put16(s []uint8, v uint16) { s[0], s[1] = uint8(v>>8), uint8(v) }

// Apply maps every pixel of img through the curves of s. The result is
// either img unchanged when s is the identity, img modified in place, or a
// new image when img is not in a format that can be modified in place.
func Apply(img image.Image, s tonecurve.Snapshot) (image.Image, error) {
	return NewEvaluator(s).Apply(img)
}

// Apply maps every pixel of image_any, see the package level Apply.
func (e *Evaluator) Apply(image_any image.Image) (ans image.Image, err error) {
	ans = image_any
	if e.IsIdentity() {
		return
	}
	b := image_any.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return
	}
	var f func(start, limit int)
	switch img := image_any.(type) {
	case *image.NRGBA:
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[4*(width-1)]
				for range width {
					e.Map8(row[0:3:3])
					row = row[4:]
				}
			}
		}
	case *image.NRGBA64:
		f = func(start, limit int) {
			var sl [3]uint16
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[8*(width-1)]
				for range width {
					s := row[0:8:8]
					sl[0], sl[1], sl[2] = get16(s[0:]), get16(s[2:]), get16(s[4:])
					e.Map16(sl[:])
					put16(s[0:], sl[0])
					put16(s[2:], sl[1])
					put16(s[4:], sl[2])
					row = row[8:]
				}
			}
		}
	case *image.RGBA:
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[4*(width-1)]
				for range width {
					r := row[0:3:3]
					switch a := row[3]; a {
					case 0:
					case 0xff:
						e.Map8(r)
					default:
						r[0], r[1], r[2] = unpremultiply8(r[0], a), unpremultiply8(r[1], a), unpremultiply8(r[2], a)
						e.Map8(r)
						r[0], r[1], r[2] = premultiply8(r[0], a), premultiply8(r[1], a), premultiply8(r[2], a)
					}
					row = row[4:]
				}
			}
		}
	case *image.RGBA64:
		f = func(start, limit int) {
			var sl [3]uint16
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[8*(width-1)]
				for range width {
					s := row[0:8:8]
					if a := uint32(get16(s[6:])); a != 0 {
						sl[0] = unpremultiply(uint32(get16(s[0:])), a)
						sl[1] = unpremultiply(uint32(get16(s[2:])), a)
						sl[2] = unpremultiply(uint32(get16(s[4:])), a)
						e.Map16(sl[:])
						put16(s[0:], premultiply(uint32(sl[0]), a))
						put16(s[2:], premultiply(uint32(sl[1]), a))
						put16(s[4:], premultiply(uint32(sl[2]), a))
					}
					row = row[8:]
				}
			}
		}
	case *image.Paletted:
		// frames of an animation can share one palette
		img.Palette = slices.Clone(img.Palette)
		var sl [3]uint16
		for i, c := range img.Palette {
			r, g, b, a := c.RGBA()
			if a != 0 {
				sl[0], sl[1], sl[2] = unpremultiply(r, a), unpremultiply(g, a), unpremultiply(b, a)
				e.Map16(sl[:])
				img.Palette[i] = color.NRGBA64{R: sl[0], G: sl[1], B: sl[2], A: uint16(a)}
			}
		}
		return
	case *image.Gray:
		d := image.NewNRGBA(b)
		ans = d
		f = func(start, limit int) {
			var sl [3]uint8
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[width-1]
				drow := d.Pix[d.Stride*y:]
				_ = drow[4*(width-1)]
				for _, gray := range row[:width] {
					sl[0], sl[1], sl[2] = gray, gray, gray
					e.Map8(sl[:])
					drow[0], drow[1], drow[2], drow[3] = sl[0], sl[1], sl[2], 0xff
					drow = drow[4:]
				}
			}
		}
	case *image.Gray16:
		d := image.NewNRGBA64(b)
		ans = d
		f = func(start, limit int) {
			var sl [3]uint16
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[2*(width-1)]
				drow := d.Pix[d.Stride*y:]
				_ = drow[8*(width-1)]
				for range width {
					gray := get16(row)
					sl[0], sl[1], sl[2] = gray, gray, gray
					e.Map16(sl[:])
					s := drow[0:8:8]
					put16(s[0:], sl[0])
					put16(s[2:], sl[1])
					put16(s[4:], sl[2])
					s[6], s[7] = 0xff, 0xff
					row = row[2:]
					drow = drow[8:]
				}
			}
		}
	case draw.Image:
		f = func(start, limit int) {
			var sl [3]uint16
			for y := b.Min.Y + start; y < b.Min.Y+limit; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					r16, g16, b16, a16 := img.At(x, y).RGBA()
					if a16 != 0 {
						sl[0], sl[1], sl[2] = unpremultiply(r16, a16), unpremultiply(g16, a16), unpremultiply(b16, a16)
						e.Map16(sl[:])
						img.Set(x, y, color.NRGBA64{R: sl[0], G: sl[1], B: sl[2], A: uint16(a16)})
					}
				}
			}
		}
	default:
		d := image.NewNRGBA64(b)
		ans = d
		f = func(start, limit int) {
			var sl [3]uint16
			for y := start; y < limit; y++ {
				row := d.Pix[d.Stride*y:]
				for x := range width {
					r16, g16, b16, a16 := img.At(x+b.Min.X, y+b.Min.Y).RGBA()
					if a16 != 0 {
						sl[0], sl[1], sl[2] = unpremultiply(r16, a16), unpremultiply(g16, a16), unpremultiply(b16, a16)
						e.Map16(sl[:])
						s := row[8*x : 8*x+8 : 8*x+8]
						put16(s[0:], sl[0])
						put16(s[2:], sl[1])
						put16(s[4:], sl[2])
						put16(s[6:], uint16(a16))
					}
				}
			}
		}
	}
	err = parallel.Run_in_parallel_over_range(0, f, 0, height)
	return
}
