package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/makiuchi-d/gozxing"
	gozxingqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/cristianadrielbraun/qrkit/internal/decorate"
	"github.com/cristianadrielbraun/qrkit/internal/payload"
	"github.com/cristianadrielbraun/qrkit/internal/render"
)

// spy wraps the real matrix encoder and records its calls.
type spy struct {
	calls atomic.Int32
	last  atomic.Value
}

func (s *spy) encode(text string, o render.Options) (*image.RGBA, error) {
	s.calls.Add(1)
	s.last.Store(o)
	return render.Encode(text, o)
}

func newSpied(opts ...Option) (*Generator, *spy) {
	g := New(opts...)
	s := &spy{}
	g.matrix = s.encode
	return g, s
}

func scan(qr *RenderedQR) (string, error) {
	img, err := png.Decode(bytes.NewReader(qr.Data))
	if err != nil {
		return "", err
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", err
	}
	res, err := gozxingqr.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", err
	}
	return res.GetText(), nil
}

func decodeQR(t *testing.T, qr *RenderedQR) string {
	t.Helper()
	text, err := scan(qr)
	require.NoError(t, err)
	return text
}

func TestGenerateURL(t *testing.T) {
	g := New()
	qr, err := g.Generate(context.Background(), Request{Content: payload.URL{Address: "example.com/path"}})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/path", qr.Payload)
	assert.Equal(t, 300, qr.Width)
	assert.Equal(t, 300, qr.Height)
	assert.Equal(t, "image/png", qr.ContentType())
	assert.True(t, strings.HasPrefix(qr.DataURI(), "data:image/png;base64,"))
	assert.Equal(t, qr.Payload, decodeQR(t, qr))
}

func TestGenerateEmptyURLSkipsEncoder(t *testing.T) {
	g, s := newSpied()
	_, err := g.Generate(context.Background(), Request{Content: payload.URL{Address: "   "}})
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation", Category(err))
	assert.Equal(t, "url", FieldOf(err))
	assert.Contains(t, err.Error(), "URL")
	assert.Equal(t, int32(0), s.calls.Load())
}

func TestGenerateValidationFields(t *testing.T) {
	tests := []struct {
		name    string
		content payload.Content
		field   string
	}{
		{"nil", nil, "content"},
		{"email", payload.Email{Address: "not-an-address"}, "email address"},
		{"phone", payload.Phone{Number: "call me"}, "phone number"},
		{"sms", payload.SMS{Message: "hi"}, "phone number"},
		{"whatsapp", payload.WhatsApp{Number: "n/a", Message: "hi"}, "phone number"},
		{"wifi", payload.WiFi{Password: "secret"}, "network name (ssid)"},
		{"vcard", payload.VCard{Phone: "123"}, "contact name"},
		{"event", payload.Event{Location: "Home"}, "event title"},
		{"image", payload.Image{}, "image"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, s := newSpied()
			_, err := g.Generate(context.Background(), Request{Content: tc.content})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tc.field, FieldOf(err))
			assert.Zero(t, s.calls.Load())
		})
	}
}

func TestGenerateRenderOptionValidation(t *testing.T) {
	tests := []struct {
		name  string
		opts  func(*render.Options)
		field string
	}{
		{"level", func(o *render.Options) { o.Level = "Z" }, "level"},
		{"format", func(o *render.Options) { o.Format = "gif" }, "format"},
		{"margin", func(o *render.Options) { o.Margin = -1 }, "margin"},
		{"max size", func(o *render.Options) { o.Size = 3000 }, "size"},
		{"too small", func(o *render.Options) { o.Size = 12 }, "size"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := render.DefaultOptions()
			tc.opts(&opts)
			_, err := New().Generate(context.Background(), Request{
				Content: payload.Text{Body: "hello"},
				Render:  opts,
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tc.field, FieldOf(err))
		})
	}
}

func TestGenerateCapacity(t *testing.T) {
	opts := render.DefaultOptions()
	opts.Level = render.LevelHighest
	_, err := New().Generate(context.Background(), Request{
		Content: payload.Text{Body: strings.Repeat("a", render.Capacity(render.LevelHighest)+1)},
		Render:  opts,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCapacity)
	assert.ErrorIs(t, err, render.ErrDataTooBig)
	assert.Equal(t, "capacity", Category(err))
	assert.Empty(t, FieldOf(err))
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Generate(ctx, Request{Content: payload.Text{Body: "late"}})
	assert.ErrorIs(t, err, ErrRender)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateIsIdempotent(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	enc := payload.NewEncoder(
		payload.WithClock(func() time.Time { return fixed }),
		payload.WithUID(func() string { return "fixed@test" }),
	)
	g := New(WithEncoder(enc))

	requests := []Request{
		{Content: payload.WiFi{SSID: "Cafe", Password: "latte", Security: "WPA"}},
		{Content: payload.VCard{Name: "Jane Doe", Email: "jane@example.com"}},
		{Content: payload.Event{Title: "Launch", Start: fixed, End: fixed.Add(time.Hour)}},
		{
			Content: payload.URL{Address: "https://example.com"},
			Design:  &decorate.Options{Logo: "star", Gradient: true, Frame: decorate.Frame{Style: decorate.FrameDotted}},
		},
	}
	for _, req := range requests {
		a, err := g.Generate(context.Background(), req)
		require.NoError(t, err)
		b, err := g.Generate(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, a.Data, b.Data, "kind %s", req.Content.Kind())
	}
}

func TestGenerateDefaultsFill(t *testing.T) {
	g, s := newSpied(WithDefaults(render.Options{
		Size:   200,
		Margin: 3,
		Level:  render.LevelLow,
		Format: render.FormatJPEG,
		Dark:   color.RGBA{0, 0, 0, 255},
		Light:  color.RGBA{255, 255, 255, 255},
	}))

	qr, err := g.Generate(context.Background(), Request{Content: payload.Text{Body: "defaults"}})
	require.NoError(t, err)
	assert.Equal(t, 200, qr.Width)
	assert.Equal(t, "image/jpeg", qr.ContentType())

	// a partially filled Render keeps its own colours and margin
	qr, err = g.Generate(context.Background(), Request{
		Content: payload.Text{Body: "partial"},
		Render:  render.Options{Margin: 1, Dark: color.RGBA{0, 0, 255, 255}, Light: color.RGBA{255, 255, 255, 255}},
	})
	require.NoError(t, err)
	assert.Equal(t, 200, qr.Width)
	last := s.last.Load().(render.Options)
	assert.Equal(t, 1, last.Margin)
	assert.Equal(t, render.LevelLow, last.Level)
}

func TestGeneratePartialRenderKeepsModulesVisible(t *testing.T) {
	g, s := newSpied()
	qr, err := g.Generate(context.Background(), Request{
		Content: payload.Text{Body: "hello"},
		Render:  render.Options{Size: 200, Margin: 4},
	})
	require.NoError(t, err)

	last := s.last.Load().(render.Options)
	assert.Equal(t, render.DefaultOptions().Dark, last.Dark)
	assert.Equal(t, uint8(0), last.Light.A, "an unset background stays transparent")

	img, err := png.Decode(bytes.NewReader(qr.Data))
	require.NoError(t, err)
	opaque := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				opaque++
			}
		}
	}
	assert.Positive(t, opaque)

	// flattened on white it scans like any other code
	flat := image.NewRGBA(b)
	draw.Draw(flat, b, image.White, image.Point{}, draw.Src)
	draw.Draw(flat, b, img, b.Min, draw.Over)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, flat))
	assert.Equal(t, "hello", decodeQR(t, &RenderedQR{Data: buf.Bytes()}))
}

func TestGenerateRejectsTransparentModules(t *testing.T) {
	defaults := render.DefaultOptions()
	defaults.Dark = color.RGBA{}
	g, s := newSpied(WithDefaults(defaults))

	_, err := g.Generate(context.Background(), Request{Content: payload.Text{Body: "hello"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "fg", FieldOf(err))
	assert.Zero(t, s.calls.Load())
}

func TestGenerateAcceptsPointerContent(t *testing.T) {
	qr, err := New().Generate(context.Background(), Request{Content: &payload.URL{Address: "example.com"}})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", qr.Payload)

	var missing *payload.WiFi
	_, err = New().Generate(context.Background(), Request{Content: missing})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "content", FieldOf(err))
}

func TestGenerateImageRaisesLevel(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 120, 80))
	for i := range src.Pix {
		src.Pix[i] = uint8(i % 251)
	}
	var raw bytes.Buffer
	require.NoError(t, png.Encode(&raw, src))

	g, s := newSpied()
	qr, err := g.Generate(context.Background(), Request{Content: payload.Image{Data: raw.Bytes()}})
	require.NoError(t, err)

	assert.True(t,
		strings.HasPrefix(qr.Payload, "data:image/jpeg;base64,") || strings.HasPrefix(qr.Payload, "IMAGE:48x32:"),
		"payload %q", qr.Payload)
	assert.Equal(t, render.LevelQuart, s.last.Load().(render.Options).Level)

	opts := render.DefaultOptions()
	opts.Level = render.LevelHighest
	_, err = g.Generate(context.Background(), Request{Content: payload.Image{Data: raw.Bytes()}, Render: opts})
	require.NoError(t, err)
	assert.Equal(t, render.LevelHighest, s.last.Load().(render.Options).Level)
}

func TestGenerateGradientUsesTransparentBase(t *testing.T) {
	g, s := newSpied()
	qr, err := g.Generate(context.Background(), Request{
		Content: payload.Text{Body: "gradient"},
		Design:  &decorate.Options{Gradient: true},
	})
	require.NoError(t, err)
	assert.Equal(t, uint8(0), s.last.Load().(render.Options).Light.A)
	assert.Equal(t, "gradient", decodeQR(t, qr))

	// an empty design is no design
	_, err = g.Generate(context.Background(), Request{
		Content: payload.Text{Body: "plain"},
		Design:  &decorate.Options{Logo: decorate.LogoCustom},
	})
	require.NoError(t, err)
	assert.Equal(t, uint8(255), s.last.Load().(render.Options).Light.A)
}

func TestGenerateFrameGrowsOutput(t *testing.T) {
	qr, err := New().Generate(context.Background(), Request{
		Content: payload.Phone{Number: "+1 (234) 567-8900"},
		Design:  &decorate.Options{Frame: decorate.Frame{Style: decorate.FrameSimple, Width: 4, Padding: 7}},
	})
	require.NoError(t, err)
	assert.Equal(t, 366, qr.Width)
	assert.Equal(t, "tel:+1234567-8900", qr.Payload)
	assert.Equal(t, qr.Payload, decodeQR(t, qr))
}

func TestGenerateConcurrent(t *testing.T) {
	g := New()
	var eg errgroup.Group
	results := make([]string, 16)
	for i := range results {
		i := i
		eg.Go(func() error {
			opts := render.DefaultOptions()
			opts.Level = render.LevelHighest
			req := Request{Content: payload.Text{Body: fmt.Sprintf("request-%02d", i)}, Render: opts}
			if i%2 == 0 {
				req.Design = &decorate.Options{Logo: "heart"}
			}
			qr, err := g.Generate(context.Background(), req)
			if err != nil {
				return err
			}
			results[i], err = scan(qr)
			return err
		})
	}
	require.NoError(t, eg.Wait())
	for i, got := range results {
		assert.Equal(t, fmt.Sprintf("request-%02d", i), got)
	}
}

func TestCompressLogsPlaceholder(t *testing.T) {
	var logs bytes.Buffer
	g := New(WithLogger(zerolog.New(&logs)))

	res := g.Compress([]byte("definitely not an image"))
	assert.True(t, res.Placeholder)
	assert.True(t, strings.HasPrefix(res.Payload, "IMAGE:0x0:"))
	assert.Contains(t, logs.String(), "placeholder")
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "render", Category(errors.New("boom")))
	assert.Equal(t, "", FieldOf(errors.New("boom")))

	err := fmt.Errorf("wrapped: %w", invalid("Size", errors.New("too big")))
	assert.Equal(t, "validation", Category(err))
	assert.Equal(t, "size", FieldOf(err))
	assert.Equal(t, "invalid content: too big", errors.Unwrap(err).Error())
}
