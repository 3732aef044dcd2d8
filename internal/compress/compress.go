// Package compress shrinks uploaded images into payloads small enough to be
// carried by a QR code.
package compress

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxEdge = 48
	DefaultBudget  = 1000

	dataURIPrefix = "data:image/jpeg;base64,"
)

// DefaultQualities are tried in order until the output fits the budget.
var DefaultQualities = []int{30, 10}

// Result describes one compression attempt.
type Result struct {
	Payload     string
	Width       int
	Height      int
	Bytes       int
	Quality     int
	Placeholder bool
}

// Compressor holds the size limits. It has no mutable state and is safe for
// concurrent use.
type Compressor struct {
	maxEdge   int
	budget    int
	qualities []int
	maxPixels int
	now       func() time.Time
}

type Option func(*Compressor)

// WithMaxEdge caps the longer edge of the downsampled image, in pixels.
func WithMaxEdge(px int) Option {
	return func(c *Compressor) {
		if px > 0 {
			c.maxEdge = px
		}
	}
}

// WithBudget sets the maximum encoded image size in bytes.
func WithBudget(n int) Option {
	return func(c *Compressor) {
		if n > 0 {
			c.budget = n
		}
	}
}

// WithQualities sets the JPEG quality ladder, most generous first.
func WithQualities(q ...int) Option {
	return func(c *Compressor) {
		if len(q) > 0 {
			c.qualities = append([]int(nil), q...)
		}
	}
}

// WithMaxPixels caps width times height of accepted uploads.
func WithMaxPixels(n int) Option {
	return func(c *Compressor) {
		if n > 0 {
			c.maxPixels = n
		}
	}
}

// WithClock overrides the timestamp source of the placeholder.
func WithClock(now func() time.Time) Option {
	return func(c *Compressor) { c.now = now }
}

func New(opts ...Option) *Compressor {
	c := &Compressor{
		maxEdge:   DefaultMaxEdge,
		budget:    DefaultBudget,
		qualities: DefaultQualities,
		maxPixels: DefaultMaxPixels,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compress returns a payload for data. It never fails: undecodable or
// oversized images yield a short text placeholder instead.
func (c *Compressor) Compress(data []byte) string {
	return c.CompressDetailed(data).Payload
}

// CompressDetailed is Compress with the attempt's metadata.
func (c *Compressor) CompressDetailed(data []byte) Result {
	src, err := Decode(data, c.maxPixels)
	if err != nil {
		return c.placeholder(0, 0)
	}

	w, h := fitDimensions(src.Bounds().Dx(), src.Bounds().Dy(), c.maxEdge)
	if w == 0 || h == 0 {
		return c.placeholder(0, 0)
	}
	small := imaging.Resize(src, w, h, imaging.Lanczos)
	// JPEG has no alpha channel.
	flat := imaging.Overlay(imaging.New(w, h, color.White), small, image.Pt(0, 0), 1.0)

	for _, q := range c.qualities {
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(q)); err != nil {
			continue
		}
		encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
		size := len(encoded) * 3 / 4
		if size <= c.budget {
			return Result{
				Payload: dataURIPrefix + encoded,
				Width:   w,
				Height:  h,
				Bytes:   size,
				Quality: q,
			}
		}
	}
	return c.placeholder(w, h)
}

func (c *Compressor) placeholder(w, h int) Result {
	p := fmt.Sprintf("IMAGE:%dx%d:%d", w, h, c.now().UnixMilli())
	return Result{
		Payload:     p,
		Width:       w,
		Height:      h,
		Bytes:       len(p),
		Placeholder: true,
	}
}

// fitDimensions scales w x h so the longer edge is at most maxEdge, keeping
// the aspect ratio and never upscaling.
func fitDimensions(w, h, maxEdge int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if w <= maxEdge && h <= maxEdge {
		return w, h
	}
	if w >= h {
		nh := h * maxEdge / w
		if nh < 1 {
			nh = 1
		}
		return maxEdge, nh
	}
	nw := w * maxEdge / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxEdge
}
