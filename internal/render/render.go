// Package render encodes payload strings into QR rasters.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

var (
	// ErrDataTooBig is returned when the payload exceeds the capacity of the
	// requested error-correction level.
	ErrDataTooBig   = errors.New("data too big for error-correction level")
	ErrEmptyPayload = errors.New("empty payload")
	ErrSizeTooSmall = errors.New("image size too small for QR version")
)

// Level is the QR error-correction level.
type Level string

const (
	LevelLow     Level = "L"
	LevelMedium  Level = "M"
	LevelQuart   Level = "Q"
	LevelHighest Level = "H"
)

// ParseLevel accepts L/M/Q/H in any case and the long names low, medium,
// quartile and high.
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "L", "l", "low":
		return LevelLow, true
	case "M", "m", "medium":
		return LevelMedium, true
	case "Q", "q", "quart", "quartile":
		return LevelQuart, true
	case "H", "h", "high", "highest":
		return LevelHighest, true
	}
	return "", false
}

func (l Level) rank() int {
	switch l {
	case LevelLow:
		return 0
	case LevelMedium:
		return 1
	case LevelQuart:
		return 2
	case LevelHighest:
		return 3
	}
	return -1
}

// AtLeast returns the higher of l and min.
func (l Level) AtLeast(min Level) Level {
	if l.rank() < min.rank() {
		return min
	}
	return l
}

func (l Level) option() qrcode.EncodeOption {
	switch l {
	case LevelLow:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow)
	case LevelQuart:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart)
	case LevelHighest:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest)
	default:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium)
	}
}

// Capacity is the byte-mode capacity of a version 40 symbol at level l.
func Capacity(l Level) int {
	switch l {
	case LevelLow:
		return 2953
	case LevelQuart:
		return 1663
	case LevelHighest:
		return 1273
	default:
		return 2331
	}
}

// Format is the container of the final raster.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// Options controls the base raster. Size is the edge of the square output
// in pixels and Margin the quiet zone in modules.
type Options struct {
	Size   int    `validate:"gt=0,lte=4096"`
	Margin int    `validate:"gte=0,lte=16"`
	Level  Level  `validate:"oneof=L M Q H"`
	Format Format `validate:"omitempty,oneof=png jpeg"`
	Shape  Shape  `validate:"omitempty,oneof=rectangle circle liquid chain hstripe vstripe"`
	Dark   color.RGBA
	Light  color.RGBA
	// Gradient, when set, recolours the Dark modules.
	Gradient *Gradient
}

// DefaultOptions returns black on white, 300px, margin 2, level M.
func DefaultOptions() Options {
	return Options{
		Size:   300,
		Margin: 2,
		Level:  LevelMedium,
		Format: FormatPNG,
		Dark:   color.RGBA{0, 0, 0, 255},
		Light:  color.RGBA{255, 255, 255, 255},
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Encode renders payload as a Size x Size raster.
func Encode(payload string, opts Options) (*image.RGBA, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}
	if n, limit := len(payload), Capacity(opts.Level); n > limit {
		return nil, fmt.Errorf("%w: %d bytes, level %s holds %d", ErrDataTooBig, n, opts.Level, limit)
	}

	qrc, err := qrcode.NewWith(payload,
		qrcode.WithEncodingMode(qrcode.EncModeByte),
		opts.Level.option(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	modules := qrc.Dimension() + 2*opts.Margin
	moduleWidth := opts.Size / modules
	if moduleWidth < 1 {
		return nil, fmt.Errorf("%w: %dpx for %d modules", ErrSizeTooSmall, opts.Size, modules)
	}
	if moduleWidth > 255 {
		moduleWidth = 255
	}

	imgOpts := []standard.ImageOption{
		standard.WithQRWidth(uint8(moduleWidth)),
		standard.WithBorderWidth(opts.Margin * moduleWidth),
		standard.WithFgColor(opts.Dark),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	}
	if opt, ok := opts.Shape.option(); ok {
		imgOpts = append(imgOpts, opt)
	}
	if opts.Gradient != nil {
		imgOpts = append(imgOpts, opts.Gradient.option())
	}
	if opts.Light.A == 0 {
		imgOpts = append(imgOpts, standard.WithBgTransparent())
	} else {
		imgOpts = append(imgOpts, standard.WithBgColor(opts.Light))
	}

	var buf bytes.Buffer
	w := standard.NewWithWriter(nopCloser{Writer: &buf}, imgOpts...)
	if err := qrc.Save(w); err != nil {
		return nil, fmt.Errorf("failed to generate QR code image: %w", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode QR image: %w", err)
	}

	// Modules are whole pixels, so the writer output is usually a little
	// smaller than requested. Nearest neighbour keeps module edges sharp.
	if b := img.Bounds(); b.Dx() != opts.Size || b.Dy() != opts.Size {
		img = imaging.Resize(img, opts.Size, opts.Size, imaging.NearestNeighbor)
	}
	return toRGBA(img), nil
}

// EncodeImage writes img in format f. JPEG output is flattened onto bg, or
// white when bg is transparent.
func EncodeImage(w io.Writer, img image.Image, f Format, bg color.RGBA) error {
	if f != FormatJPEG {
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
		return nil
	}

	opaque := color.RGBA{bg.R, bg.G, bg.B, 255}
	if bg.A == 0 {
		opaque = color.RGBA{255, 255, 255, 255}
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, &image.Uniform{C: opaque}, image.Point{}, draw.Src)
	draw.Draw(out, b, img, b.Min, draw.Over)
	if err := imaging.Encode(w, out, imaging.JPEG, imaging.JPEGQuality(92)); err != nil {
		return fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return nil
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
