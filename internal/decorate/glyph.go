package decorate

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/cristianadrielbraun/qrkit/internal/render"
)

// Stock glyph bodies, 24x24 viewBox, stroked with the dark colour.
var stockGlyphs = map[string]string{
	"link":     `<path d="M10 13a5 5 0 0 0 7.54.54l3-3a5 5 0 0 0-7.07-7.07l-1.72 1.71"/><path d="M14 11a5 5 0 0 0-7.54-.54l-3 3a5 5 0 0 0 7.07 7.07l1.71-1.71"/>`,
	"wifi":     `<path d="M5 12.55a11 11 0 0 1 14.08 0"/><path d="M1.42 9a16 16 0 0 1 21.16 0"/><path d="M8.53 16.11a6 6 0 0 1 6.95 0"/><circle cx="12" cy="20" r="1"/>`,
	"mail":     `<path d="M4 4h16c1.1 0 2 .9 2 2v12c0 1.1-.9 2-2 2H4c-1.1 0-2-.9-2-2V6c0-1.1.9-2 2-2z"/><polyline points="22,6 12,13 2,6"/>`,
	"phone":    `<rect x="5" y="2" width="14" height="20" rx="2" ry="2"/><circle cx="12" cy="18" r="1"/>`,
	"message":  `<path d="M21 15a2 2 0 0 1-2 2H7l-4 4V5a2 2 0 0 1 2-2h14a2 2 0 0 1 2 2z"/>`,
	"user":     `<path d="M20 21v-2a4 4 0 0 0-4-4H8a4 4 0 0 0-4 4v2"/><circle cx="12" cy="7" r="4"/>`,
	"calendar": `<rect x="3" y="4" width="18" height="18" rx="2" ry="2"/><line x1="16" y1="2" x2="16" y2="6"/><line x1="8" y1="2" x2="8" y2="6"/><line x1="3" y1="10" x2="21" y2="10"/>`,
	"location": `<path d="M21 10c0 7-9 13-9 13s-9-6-9-13a9 9 0 0 1 18 0z"/><circle cx="12" cy="10" r="3"/>`,
	"heart":    `<path d="M20.84 4.61a5.5 5.5 0 0 0-7.78 0L12 5.67l-1.06-1.06a5.5 5.5 0 0 0-7.78 7.78l1.06 1.06L12 21.23l7.78-7.78 1.06-1.06a5.5 5.5 0 0 0 0-7.78z"/>`,
	"star":     `<polygon points="12 2 15.09 8.26 22 9.27 17 14.14 18.18 21.02 12 17.77 5.82 21.02 7 14.14 2 9.27 8.91 8.26 12 2"/>`,
	"image":    `<rect x="3" y="3" width="18" height="18" rx="2" ry="2"/><circle cx="8.5" cy="8.5" r="1.5"/><polyline points="21 15 16 10 5 21"/>`,
}

// StockLogos returns the ids of the built-in glyphs, sorted.
func StockLogos() []string {
	ids := make([]string, 0, len(stockGlyphs))
	for id := range stockGlyphs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// parsed once; *truetype.Font is read-only after parsing.
var boldFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(gobold.TTF)
})

// glyph renders the stock logo id into a size x size image. Ids without an
// icon fall back to their first letter.
func glyph(id string, size int, ink color.RGBA) (image.Image, error) {
	if body, ok := stockGlyphs[id]; ok {
		return svgGlyph(body, size, ink)
	}
	return letterGlyph(id, size, ink)
}

func svgGlyph(body string, size int, ink color.RGBA) (image.Image, error) {
	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="%s" stroke-width="2" stroke-linecap="round" stroke-linejoin="round">%s</svg>`,
		render.Hex(color.RGBA{ink.R, ink.G, ink.B, 255}), body)
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse glyph: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	pad := float64(size) * 0.12
	icon.SetTarget(pad, pad, float64(size)-2*pad, float64(size)-2*pad)
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)
	return img, nil
}

func letterGlyph(id string, size int, ink color.RGBA) (image.Image, error) {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(id))
	if r == utf8.RuneError {
		r = '?'
	}
	f, err := boldFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	dc := gg.NewContext(size, size)
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: float64(size) * 0.7}))
	dc.SetColor(ink)
	dc.DrawStringAnchored(string(unicode.ToUpper(r)), float64(size)/2, float64(size)/2, 0.5, 0.5)
	return dc.Image(), nil
}
