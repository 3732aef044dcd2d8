package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	gozxingqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scan(t *testing.T, img image.Image) string {
	t.Helper()
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	require.NoError(t, err)
	res, err := gozxingqr.NewQRCodeReader().Decode(bmp, nil)
	require.NoError(t, err)
	return res.GetText()
}

func TestEncodeRoundTrip(t *testing.T) {
	payloads := []string{
		"https://qrcreator.link",
		`WIFI:T:WPA;S:My\;Net;P:p\:ass;;`,
		"BEGIN:VCARD\nVERSION:3.0\nFN:Jane Doe\nEND:VCARD",
	}
	for _, p := range payloads {
		img, err := Encode(p, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, 300, img.Bounds().Dx())
		assert.Equal(t, 300, img.Bounds().Dy())
		assert.Equal(t, p, scan(t, img))
	}
}

func TestEncodeExactSizes(t *testing.T) {
	for _, size := range []int{100, 257, 512} {
		opts := DefaultOptions()
		opts.Size = size
		img, err := Encode("size check", opts)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, size, size), img.Bounds())
	}
}

func TestEncodeColors(t *testing.T) {
	opts := DefaultOptions()
	opts.Dark = color.RGBA{10, 20, 200, 255}
	opts.Light = color.RGBA{250, 240, 200, 255}
	opts.Margin = 4

	img, err := Encode("colors", opts)
	require.NoError(t, err)
	// Version 1 with a 4 module margin: 10px modules, 290px scaled to 300px.
	// The corner sits in the quiet zone and the finder ring starts at ~41px.
	assert.Equal(t, opts.Light, img.RGBAAt(1, 1))
	assert.Equal(t, opts.Dark, img.RGBAAt(46, 46))
}

func TestEncodeTransparentBackground(t *testing.T) {
	opts := DefaultOptions()
	opts.Light = color.RGBA{}
	img, err := Encode("clear", opts)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), img.RGBAAt(0, 0).A)
}

func TestEncodeShapes(t *testing.T) {
	plain, err := Encode("shapes", DefaultOptions())
	require.NoError(t, err)

	for _, shape := range Shapes()[1:] {
		t.Run(string(shape), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Shape = shape
			img, err := Encode("shapes", opts)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 300, 300), img.Bounds())
			assert.NotEqual(t, plain.Pix, img.Pix)
		})
	}

	opts := DefaultOptions()
	opts.Shape = ShapeRectangle
	img, err := Encode("shapes", opts)
	require.NoError(t, err)
	assert.Equal(t, plain.Pix, img.Pix)
}

func TestEncodeGradient(t *testing.T) {
	opts := DefaultOptions()
	g := DefaultGradient()
	opts.Gradient = &g
	img, err := Encode("gradient", opts)
	require.NoError(t, err)

	inks := map[color.RGBA]bool{}
	for y := 0; y < 300; y++ {
		for x := 0; x < 300; x++ {
			if c := img.RGBAAt(x, y); c != opts.Light {
				inks[c] = true
			}
		}
	}
	assert.Greater(t, len(inks), 2, "modules should carry more than one colour")
}

func TestEncodeCapacity(t *testing.T) {
	tests := []struct {
		level Level
		limit int
	}{
		{LevelLow, 2953},
		{LevelMedium, 2331},
		{LevelQuart, 1663},
		{LevelHighest, 1273},
	}
	for _, tc := range tests {
		t.Run(string(tc.level), func(t *testing.T) {
			assert.Equal(t, tc.limit, Capacity(tc.level))

			opts := DefaultOptions()
			opts.Level = tc.level
			_, err := Encode(strings.Repeat("x", tc.limit+1), opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDataTooBig))
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode("", DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyPayload)

	opts := DefaultOptions()
	opts.Size = 10
	_, err = Encode("tiny", opts)
	assert.ErrorIs(t, err, ErrSizeTooSmall)
}

func TestEncodeIsDeterministic(t *testing.T) {
	a, err := Encode("same input", DefaultOptions())
	require.NoError(t, err)
	b, err := Encode("same input", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestLevels(t *testing.T) {
	l, ok := ParseLevel("quartile")
	assert.True(t, ok)
	assert.Equal(t, LevelQuart, l)
	_, ok = ParseLevel("X")
	assert.False(t, ok)

	assert.Equal(t, LevelQuart, LevelLow.AtLeast(LevelQuart))
	assert.Equal(t, LevelHighest, LevelHighest.AtLeast(LevelQuart))
}

func TestEncodeImage(t *testing.T) {
	img, err := Encode("container", DefaultOptions())
	require.NoError(t, err)

	var pngBuf bytes.Buffer
	require.NoError(t, EncodeImage(&pngBuf, img, FormatPNG, color.RGBA{}))
	_, err = png.Decode(&pngBuf)
	require.NoError(t, err)

	var jpgBuf bytes.Buffer
	require.NoError(t, EncodeImage(&jpgBuf, img, FormatJPEG, color.RGBA{}))
	_, err = jpeg.Decode(&jpgBuf)
	require.NoError(t, err)

	assert.Equal(t, "image/jpeg", FormatJPEG.ContentType())
	assert.Equal(t, "image/png", Format("").ContentType())
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#000000", want: color.RGBA{0, 0, 0, 255}},
		{in: "ff8800", want: color.RGBA{255, 136, 0, 255}},
		{in: "#FFF", want: color.RGBA{255, 255, 255, 255}},
		{in: "#ffffff00", want: color.RGBA{}},
		{in: "transparent", want: color.RGBA{}},
		{in: "#12345", wantErr: true},
		{in: "#gggggg", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	def := color.RGBA{1, 2, 3, 255}
	assert.Equal(t, def, ParseColorOr("", def))
	assert.Equal(t, def, ParseColorOr("nope", def))
	assert.Equal(t, "#0a0b0c", Hex(color.RGBA{10, 11, 12, 255}))
}
