package decorate

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// stroke is what a frame pattern does with one pixel of the border band.
type stroke uint8

const (
	skip stroke = iota
	ink
	gap
)

// band is the border ring of a square-ish canvas, width pixels thick.
type band struct {
	w, h, width int
}

func (b band) contains(x, y int) bool {
	return x < b.width || x >= b.w-b.width || y < b.width || y >= b.h-b.width
}

func (b band) corner(x, y int) bool {
	return (x < b.width || x >= b.w-b.width) && (y < b.width || y >= b.h-b.width)
}

// edgeDist is the distance of (x,y) to the nearest canvas edge.
func (b band) edgeDist(x, y int) int {
	return min(x, y, b.w-1-x, b.h-1-y)
}

// inRounded reports whether (x,y) lies in the canvas rectangle inset by inset
// pixels on every side with corner radius r.
func (b band) inRounded(x, y, inset, r int) bool {
	left, top := inset, inset
	right, bottom := b.w-1-inset, b.h-1-inset
	if left > right || top > bottom {
		return false
	}
	if x < left || x > right || y < top || y > bottom {
		return false
	}
	if r <= 0 {
		return true
	}
	cx := clamp(x, left+r, right-r)
	cy := clamp(y, top+r, bottom-r)
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}

// pattern returns the per-pixel painter for style.
func (b band) pattern(style FrameStyle, rounded bool) func(x, y int) stroke {
	fw := b.width
	switch style {
	case FrameDashed:
		dash := max(fw*3, 6)
		period := dash + dash/2
		return func(x, y int) stroke {
			if b.corner(x, y) {
				return ink
			}
			pos := x
			if x < fw || x >= b.w-fw {
				pos = y
			}
			if (pos-fw)%period < dash {
				return ink
			}
			return skip
		}

	case FrameDotted:
		// Perforated edge: solid band with round holes punched along the middle.
		spacing := max(fw, 6)
		radius := max(fw/3, 2)
		return func(x, y int) stroke {
			var along, across, mid int
			switch {
			case y < fw:
				along, across, mid = x, y, fw/2
			case y >= b.h-fw:
				along, across, mid = x, y, b.h-fw/2
			case x < fw:
				along, across, mid = y, x, fw/2
			default:
				along, across, mid = y, x, b.w-fw/2
			}
			if along%spacing < radius*2 {
				d1 := along - ((along/spacing)*spacing + radius)
				d2 := across - mid
				if d1*d1+d2*d2 <= radius*radius {
					return gap
				}
			}
			return ink
		}

	case FrameDouble:
		outer, space, inner := doubleWidths(fw, rounded)
		if rounded {
			r := int(math.Round(float64(fw)*0.55)) + fw
			return func(x, y int) stroke {
				switch {
				case !b.inRounded(x, y, outer, r-outer):
					return ink
				case !b.inRounded(x, y, outer+space, r-outer-space):
					return gap
				case !b.inRounded(x, y, outer+space+inner, r-outer-space-inner):
					return ink
				}
				return skip
			}
		}
		return func(x, y int) stroke {
			d := b.edgeDist(x, y)
			switch {
			case d < outer:
				return ink
			case d < outer+space:
				return gap
			case d < outer+space+inner:
				return ink
			}
			return skip
		}

	case FrameDiagonal:
		spacing := max(fw/2, 2)
		thick := clamp(max(fw/5, 2), 1, max(spacing-1, 1))
		return func(x, y int) stroke {
			if (x+y)%spacing < thick {
				return ink
			}
			return skip
		}

	case FrameGrid:
		cell := max(fw/3, 2)
		return func(x, y int) stroke {
			if (x/cell+y/cell)%2 == 0 {
				return ink
			}
			return skip
		}
	}

	return func(int, int) stroke { return ink }
}

// doubleWidths splits a frame width into outer stroke, gap and inner stroke.
func doubleWidths(fw int, rounded bool) (outer, space, inner int) {
	outer = max(2, int(math.Round(float64(fw)*0.4)))
	space = max(1, int(math.Round(float64(fw)*0.2)))
	inner = max(1, fw-outer-space)
	tenth := max(1, int(math.Round(float64(fw)*0.1)))

	if space > tenth {
		space -= tenth
		inner += tenth
	} else if space > 1 {
		inner += space - 1
		space = 1
	}

	if rounded {
		if outer > tenth+1 {
			outer -= tenth
			space += tenth
		}
		return outer, space, inner
	}

	switch {
	case space > tenth:
		space -= tenth
		outer += tenth
	case space > 1:
		outer += space - 1
		space = 1
	case inner > 1:
		outer++
		inner--
	}
	if inner > 2 {
		inner--
		space++
	}
	return outer, space, inner
}

// applyFrame pads img with bg and surrounds it with the frame band. The
// result is larger than img by twice the padding plus twice the band width.
// When shade is true the band colour runs diagonally from fc to a lighter
// tint of it.
func applyFrame(img *image.RGBA, f Frame, bg, fc color.RGBA, shade bool) *image.RGBA {
	src := img.Bounds()
	edge := min(src.Dx(), src.Dy())
	pad := edge * f.Padding / 100
	fw := max(edge*f.Width/100, 1)

	grow := f.framed(edge) - edge
	w := src.Dx() + grow
	h := src.Dy() + grow
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	if bg.A != 0 {
		draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}

	tint := AdjustBrightness(fc, 25)
	colorAt := func(x, y int) color.RGBA {
		if !shade {
			return fc
		}
		t := (float64(x)/float64(w) + 1 - float64(y)/float64(h)) / 2
		return lerp(fc, tint, t)
	}

	b := band{w: w, h: h, width: fw}
	paint := b.pattern(f.Style, f.Rounded)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !b.contains(x, y) {
				continue
			}
			switch paint(x, y) {
			case ink:
				out.SetRGBA(x, y, colorAt(x, y))
			case gap:
				out.SetRGBA(x, y, bg)
			}
		}
	}

	off := pad + fw
	draw.Draw(out, image.Rect(off, off, off+src.Dx(), off+src.Dy()), img, src.Min, draw.Src)

	if f.Rounded {
		roundBand(out, b, bg, f.Style != FrameDouble)
	}
	return out
}

// roundBand clears the outer corners of the band and, when carve is set,
// removes a rounded strip from its inner side.
func roundBand(img *image.RGBA, b band, bg color.RGBA, carve bool) {
	innerR := max(2, int(math.Round(float64(b.width)*0.55)))
	outerR := innerR + b.width
	cut := max(2, int(math.Ceil(float64(b.width)*0.33)))
	inset := max(b.width-cut, 0)

	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			if !b.contains(x, y) {
				continue
			}
			if !b.inRounded(x, y, 0, outerR) {
				img.SetRGBA(x, y, color.RGBA{})
				continue
			}
			if carve && b.inRounded(x, y, inset, innerR+cut) {
				img.SetRGBA(x, y, bg)
			}
		}
	}
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(p, q uint8) uint8 {
		return uint8(math.Round(float64(p) + t*(float64(q)-float64(p))))
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}
