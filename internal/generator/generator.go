// Package generator turns content into a payload, encodes it as a QR code and decorates the result.
package generator

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/cristianadrielbraun/qrkit/internal/compress"
	"github.com/cristianadrielbraun/qrkit/internal/decorate"
	"github.com/cristianadrielbraun/qrkit/internal/payload"
	"github.com/cristianadrielbraun/qrkit/internal/render"
)

// DefaultMaxSize caps the requested edge of the base raster.
const DefaultMaxSize = 2048

// Request is one generation call. A zero Render means the generator's
// defaults; a nil Design means an undecorated code. Content variants may be
// passed by value or by pointer.
type Request struct {
	Content payload.Content
	Render  render.Options
	Design  *decorate.Options
}

// RenderedQR is the encoded output raster.
type RenderedQR struct {
	Data    []byte
	Width   int
	Height  int
	Format  render.Format
	Payload string
}

func (r *RenderedQR) ContentType() string {
	return r.Format.ContentType()
}

// DataURI returns the image as a base64 data URI.
func (r *RenderedQR) DataURI() string {
	return "data:" + r.ContentType() + ";base64," + base64.StdEncoding.EncodeToString(r.Data)
}

// Generator is safe for concurrent use: it holds configuration only and
// every call works on its own canvas.
type Generator struct {
	encoder    *payload.Encoder
	compressor *compress.Compressor
	validate   *validator.Validate
	log        zerolog.Logger
	defaults   render.Options
	maxSize    int

	// matrix is the QR matrix encoder; replaced in tests.
	matrix func(string, render.Options) (*image.RGBA, error)
}

type Option func(*Generator)

func WithEncoder(e *payload.Encoder) Option {
	return func(g *Generator) { g.encoder = e }
}

func WithCompressor(c *compress.Compressor) Option {
	return func(g *Generator) { g.compressor = c }
}

func WithLogger(l zerolog.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// WithDefaults sets the render options used for a zero Request.Render and
// to fill its unset Size, Level and Format.
func WithDefaults(o render.Options) Option {
	return func(g *Generator) { g.defaults = o }
}

// WithMaxSize caps the requested raster edge in pixels.
func WithMaxSize(px int) Option {
	return func(g *Generator) {
		if px > 0 {
			g.maxSize = px
		}
	}
}

func New(opts ...Option) *Generator {
	g := &Generator{
		encoder:    payload.NewEncoder(),
		compressor: compress.New(),
		validate:   validator.New(),
		log:        zerolog.Nop(),
		defaults:   render.DefaultOptions(),
		maxSize:    DefaultMaxSize,
		matrix:     render.Encode,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders req. Failures are *Error values of kind ErrValidation,
// ErrCapacity or ErrRender.
func (g *Generator) Generate(ctx context.Context, req Request) (*RenderedQR, error) {
	if err := ctx.Err(); err != nil {
		return nil, failed(ErrRender, err)
	}
	content := payload.Value(req.Content)
	if content == nil {
		return nil, invalid("content", errors.New("no content selected"))
	}

	kind := content.Kind()
	opts := g.fill(req.Render)
	if opts.Dark.A == 0 {
		return nil, invalid("fg", errors.New("module colour must not be transparent"))
	}

	text := g.encode(content, &opts)
	if text == "" {
		field := payload.Field(kind)
		return nil, invalid(field, fmt.Errorf("please enter a valid %s", field))
	}

	if err := g.validate.Struct(opts); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, invalid(verrs[0].Field(), fmt.Errorf("%s failed %q", verrs[0].Field(), verrs[0].Tag()))
		}
		return nil, failed(ErrRender, err)
	}
	if opts.Size > g.maxSize {
		return nil, invalid("size", fmt.Errorf("size must be at most %dpx", g.maxSize))
	}

	design := req.Design
	if design != nil && design.IsZero() {
		design = nil
	}

	base := opts
	if design != nil && design.Gradient {
		// let the gradient show through the light modules
		base.Light = color.RGBA{}
	}

	g.log.Debug().
		Str("kind", string(kind)).
		Int("payload_len", len(text)).
		Str("level", string(opts.Level)).
		Int("size", opts.Size).
		Bool("decorated", design != nil).
		Msg("encoding QR")

	img, err := g.matrix(text, base)
	switch {
	case errors.Is(err, render.ErrDataTooBig):
		return nil, failed(ErrCapacity, err)
	case errors.Is(err, render.ErrSizeTooSmall):
		return nil, invalid("size", err)
	case err != nil:
		return nil, failed(ErrRender, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, failed(ErrRender, err)
	}

	if design != nil {
		img, err = decorate.Decorate(img, opts.Light, opts.Dark, *design)
		if err != nil {
			return nil, failed(ErrRender, err)
		}
	}

	var buf bytes.Buffer
	if err := render.EncodeImage(&buf, img, opts.Format, opts.Light); err != nil {
		return nil, failed(ErrRender, err)
	}

	b := img.Bounds()
	return &RenderedQR{
		Data:    buf.Bytes(),
		Width:   b.Dx(),
		Height:  b.Dy(),
		Format:  opts.Format,
		Payload: text,
	}, nil
}

// Compress turns raw image bytes into a QR payload. It never fails; see
// compress.Compressor.
func (g *Generator) Compress(data []byte) compress.Result {
	res := g.compressor.CompressDetailed(data)
	if res.Placeholder {
		g.log.Warn().
			Int("input_bytes", len(data)).
			Int("width", res.Width).
			Int("height", res.Height).
			Msg("image did not fit the payload budget, using placeholder")
	}
	return res
}

// encode returns the payload for c. Images go through the compressor and
// raise the error-correction level to at least Q.
func (g *Generator) encode(c payload.Content, opts *render.Options) string {
	img, ok := c.(payload.Image)
	if !ok {
		return g.encoder.Encode(c)
	}
	if len(img.Data) == 0 {
		return ""
	}
	opts.Level = opts.Level.AtLeast(render.LevelQuart)
	return g.Compress(img.Data).Payload
}

// fill completes o from the defaults. A zero Dark is unset and takes the
// default module colour; a zero Light is kept and means a transparent
// background.
func (g *Generator) fill(o render.Options) render.Options {
	if o == (render.Options{}) {
		return g.defaults
	}
	if o.Dark == (color.RGBA{}) {
		o.Dark = g.defaults.Dark
	}
	if o.Size == 0 {
		o.Size = g.defaults.Size
	}
	if o.Level == "" {
		o.Level = g.defaults.Level
	}
	if o.Format == "" {
		o.Format = g.defaults.Format
	}
	return o
}
