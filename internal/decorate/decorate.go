// Package decorate composites cosmetic layers onto a rendered QR raster:
// gradient background, centre or corner logo and an optional frame.
package decorate

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

const (
	// cornerMargin is the logo offset from the edges in corner positions.
	cornerMargin = 20
	// platePadding is added to the logo radius for the backing plate.
	platePadding = 8
	plateStroke  = 2
	// gradientDarken is how much darker the gradient end stop is, in percent.
	gradientDarken = 20
)

// Decorate draws base onto a fresh canvas with the layers requested by o.
// light is the background colour of the code and dark its module colour.
// base is never modified.
func Decorate(base image.Image, light, dark color.RGBA, o Options) (*image.RGBA, error) {
	o = o.Normalize()
	b := base.Bounds()
	w, h := b.Dx(), b.Dy()

	dc := gg.NewContext(w, h)
	if o.Gradient {
		start := opaque(light)
		grad := gg.NewLinearGradient(0, 0, float64(w), float64(h))
		grad.AddColorStop(0, start)
		grad.AddColorStop(1, AdjustBrightness(start, -gradientDarken))
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, float64(w), float64(h))
		dc.Fill()
	}
	dc.DrawImage(origin(base), 0, 0)

	if o.HasLogo() {
		if err := drawLogo(dc, o, light, dark); err != nil {
			return nil, err
		}
	}

	out := toRGBA(dc.Image())
	if o.Frame.Style != FrameNone {
		fc := o.Frame.Color
		if fc.A == 0 {
			fc = dark
		}
		out = applyFrame(out, o.Frame, light, fc, o.Gradient)
	}
	return out, nil
}

// logoRect returns the logo box for a w x h canvas.
func logoRect(o Options, w, h int) image.Rectangle {
	edge := w
	if h < edge {
		edge = h
	}
	size := int(math.Round(float64(edge) * float64(o.LogoSize) / 100))
	if size < 1 {
		size = 1
	}

	var x, y int
	switch o.LogoPosition {
	case PositionTopLeft:
		x, y = cornerMargin, cornerMargin
	case PositionTopRight:
		x, y = w-cornerMargin-size, cornerMargin
	case PositionBottomLeft:
		x, y = cornerMargin, h-cornerMargin-size
	case PositionBottomRight:
		x, y = w-cornerMargin-size, h-cornerMargin-size
	default:
		x, y = (w-size)/2, (h-size)/2
	}
	return image.Rect(x, y, x+size, y+size)
}

func drawLogo(dc *gg.Context, o Options, light, dark color.RGBA) error {
	r := logoRect(o, dc.Width(), dc.Height())
	size := r.Dx()

	logo, err := logoImage(o, size, dark)
	if err != nil {
		return err
	}
	if logo == nil {
		return nil
	}
	if o.LogoOpacity < 100 {
		lb := logo.Bounds()
		logo = imaging.Overlay(imaging.New(lb.Dx(), lb.Dy(), color.NRGBA{}), logo, image.Pt(0, 0), float64(o.LogoOpacity)/100)
	}

	cx := float64(r.Min.X) + float64(size)/2
	cy := float64(r.Min.Y) + float64(size)/2

	plate := opaque(light)
	dc.DrawCircle(cx, cy, float64(size)/2+platePadding)
	dc.SetColor(plate)
	dc.FillPreserve()
	dc.SetColor(AdjustBrightness(plate, -15))
	dc.SetLineWidth(plateStroke)
	dc.Stroke()

	switch o.LogoShape {
	case ShapeCircle:
		dc.DrawCircle(cx, cy, float64(size)/2)
		dc.Clip()
	case ShapeRounded:
		dc.DrawRoundedRectangle(float64(r.Min.X), float64(r.Min.Y), float64(size), float64(size), float64(size)*0.2)
		dc.Clip()
	}

	lb := logo.Bounds()
	dc.DrawImage(logo, r.Min.X+(size-lb.Dx())/2, r.Min.Y+(size-lb.Dy())/2)
	dc.ResetClip()
	return nil
}

// logoImage prepares the logo at its draw size: uploaded images are fitted
// (original) or centre-cropped (other shapes), stock ids are rasterised.
func logoImage(o Options, size int, dark color.RGBA) (image.Image, error) {
	if o.Logo != LogoCustom {
		return glyph(o.Logo, size, dark)
	}
	if o.LogoImage == nil {
		return nil, nil
	}
	if o.LogoShape == ShapeOriginal {
		sb := o.LogoImage.Bounds()
		fw, fh := fitRect(sb.Dx(), sb.Dy(), size, size)
		return imaging.Resize(o.LogoImage, fw, fh, imaging.Lanczos), nil
	}
	return imaging.Fill(o.LogoImage, size, size, imaging.Center, imaging.Lanczos), nil
}

// fitRect scales w x h to fit inside maxW x maxH keeping the aspect ratio.
func fitRect(w, h, maxW, maxH int) (int, int) {
	if w == 0 || h == 0 {
		return maxW, maxH
	}
	s := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	sw := int(math.Floor(float64(w) * s))
	sh := int(math.Floor(float64(h) * s))
	if sw < 1 {
		sw = 1
	}
	if sh < 1 {
		sh = 1
	}
	return sw, sh
}

// origin returns img translated so its bounds start at (0,0).
func origin(img image.Image) image.Image {
	if img.Bounds().Min == (image.Point{}) {
		return img
	}
	return toRGBA(img)
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
