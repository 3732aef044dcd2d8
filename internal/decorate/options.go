package decorate

import (
	"image"
	"image/color"
	"math"
	"strings"
)

// Position places the logo on the code.
type Position string

const (
	PositionCenter      Position = "center"
	PositionTopLeft     Position = "top-left"
	PositionTopRight    Position = "top-right"
	PositionBottomLeft  Position = "bottom-left"
	PositionBottomRight Position = "bottom-right"
)

// Shape is the clip mask applied to the logo.
type Shape string

const (
	ShapeOriginal Shape = "original"
	ShapeCircle   Shape = "circle"
	ShapeRounded  Shape = "rounded"
	ShapeSquare   Shape = "square"
)

// FrameStyle is the border pattern drawn around the padded code.
type FrameStyle string

const (
	FrameNone     FrameStyle = "none"
	FrameSimple   FrameStyle = "simple"
	FrameDashed   FrameStyle = "dashed"
	FrameDotted   FrameStyle = "dotted"
	FrameDouble   FrameStyle = "double"
	FrameDiagonal FrameStyle = "diagonal"
	FrameGrid     FrameStyle = "grid"
)

// LogoCustom selects the uploaded LogoImage instead of a stock glyph.
const LogoCustom = "custom"

const (
	DefaultLogoSize    = 15
	MinLogoSize        = 5
	MaxLogoSize        = 40
	DefaultLogoOpacity = 100
	MinLogoOpacity     = 10

	DefaultFrameWidth        = 4
	DefaultRoundedFrameWidth = 6
	DefaultFramePadding      = 7
	MaxFramePercent          = 25
)

// Frame describes the optional border. Width and Padding are percentages of
// the code edge; a zero Color means the dark module colour.
type Frame struct {
	Style   FrameStyle
	Rounded bool
	Color   color.RGBA
	Width   int
	Padding int
}

// Options is the closed set of design settings. Zero values mean defaults.
// LogoSize and LogoOpacity are percentages; Normalize clamps them to
// MinLogoSize..MaxLogoSize and MinLogoOpacity..100.
type Options struct {
	Logo         string
	LogoImage    image.Image
	LogoSize     int
	LogoOpacity  int
	LogoPosition Position
	LogoShape    Shape
	Gradient     bool
	Frame        Frame
}

// Normalize returns o with defaults applied and every range clamped.
func (o Options) Normalize() Options {
	o.Logo = strings.ToLower(strings.TrimSpace(o.Logo))
	if o.Logo == "none" {
		o.Logo = ""
	}

	if o.LogoSize == 0 {
		o.LogoSize = DefaultLogoSize
	}
	o.LogoSize = clamp(o.LogoSize, MinLogoSize, MaxLogoSize)

	if o.LogoOpacity == 0 {
		o.LogoOpacity = DefaultLogoOpacity
	}
	o.LogoOpacity = clamp(o.LogoOpacity, MinLogoOpacity, 100)

	switch o.LogoPosition {
	case PositionTopLeft, PositionTopRight, PositionBottomLeft, PositionBottomRight:
	default:
		o.LogoPosition = PositionCenter
	}

	switch o.LogoShape {
	case ShapeCircle, ShapeRounded, ShapeSquare:
	default:
		o.LogoShape = ShapeOriginal
	}

	o.Frame = o.Frame.normalize()
	return o
}

// HasLogo reports whether a logo will be drawn. A custom selection without
// an image draws nothing.
func (o Options) HasLogo() bool {
	switch o.Logo {
	case "", "none":
		return false
	case LogoCustom:
		return o.LogoImage != nil
	default:
		return true
	}
}

// IsZero reports whether o requests no decoration at all.
func (o Options) IsZero() bool {
	n := o.Normalize()
	return !n.HasLogo() && !n.Gradient && n.Frame.Style == FrameNone
}

// BaseEdge returns the edge of a base raster whose decorated output is as
// close as possible to total pixels.
func (o Options) BaseEdge(total int) int {
	f := o.Normalize().Frame
	if f.Style == FrameNone || total <= 0 {
		return total
	}
	guess := int(math.Round(float64(total) / (1 + 2*float64(f.Padding+f.Width)/100)))
	best := max(guess, 1)
	for e := max(guess-2, 1); e <= guess+2; e++ {
		if abs(f.framed(e)-total) < abs(f.framed(best)-total) {
			best = e
		}
	}
	return best
}

// framed is the output edge for a base raster of the given edge.
func (f Frame) framed(edge int) int {
	pad := edge * f.Padding / 100
	fw := max(edge*f.Width/100, 1)
	return edge + 2*(pad+fw)
}

func (f Frame) normalize() Frame {
	switch f.Style {
	case FrameSimple, FrameDashed, FrameDotted, FrameDouble, FrameDiagonal, FrameGrid:
	default:
		return Frame{Style: FrameNone}
	}
	if f.Width == 0 {
		f.Width = DefaultFrameWidth
		if f.Rounded {
			// Rounded frames start thicker; the inner carve takes about a third.
			f.Width = DefaultRoundedFrameWidth
		}
	}
	f.Width = clamp(f.Width, 1, MaxFramePercent)
	if f.Padding == 0 {
		f.Padding = DefaultFramePadding
	}
	f.Padding = clamp(f.Padding, 0, MaxFramePercent)
	return f
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
