package decorate

import (
	"image/color"
	"math"
)

// AdjustBrightness shifts every colour channel by percent of the full range.
// Negative values darken. Channels are clamped to [0,255]; alpha is kept.
func AdjustBrightness(c color.RGBA, percent int) color.RGBA {
	delta := int(math.Round(255 * float64(percent) / 100))
	return color.RGBA{
		R: channel(int(c.R) + delta),
		G: channel(int(c.G) + delta),
		B: channel(int(c.B) + delta),
		A: c.A,
	}
}

func channel(v int) uint8 {
	return uint8(clamp(v, 0, 255))
}

// opaque replaces a fully transparent colour with white.
func opaque(c color.RGBA) color.RGBA {
	if c.A == 0 {
		return color.RGBA{255, 255, 255, 255}
	}
	return c
}
