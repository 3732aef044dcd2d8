package handlers

import (
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/cristianadrielbraun/qrkit/internal/compress"
	"github.com/cristianadrielbraun/qrkit/internal/decorate"
	"github.com/cristianadrielbraun/qrkit/internal/payload"
	"github.com/cristianadrielbraun/qrkit/internal/render"
)

// contentFields carries the inputs of every kind; each kind reads its own.
type contentFields struct {
	URL      string `form:"url" json:"url"`
	Text     string `form:"text" json:"text"`
	Email    string `form:"email" json:"email"`
	Subject  string `form:"subject" json:"subject"`
	Body     string `form:"body" json:"body"`
	Phone    string `form:"phone" json:"phone"`
	Message  string `form:"message" json:"message"`
	SSID     string `form:"ssid" json:"ssid"`
	Password string `form:"password" json:"password"`
	Security string `form:"security" json:"security"`
	Hidden   bool   `form:"hidden" json:"hidden"`
	Name     string `form:"name" json:"name"`
	Org      string `form:"org" json:"org"`
	Title    string `form:"title" json:"title"`
	Location string `form:"location" json:"location"`
	Start    string `form:"start" json:"start"`
	End      string `form:"end" json:"end"`
	// Image is base64 image data, JSON only.
	Image string `form:"-" json:"image"`
}

type designFields struct {
	Logo         string `form:"logo" json:"logo"`
	LogoSize     int    `form:"logoSize" json:"logo_size" binding:"omitempty,min=0,max=100"`
	LogoOpacity  *int   `form:"logoOpacity" json:"logo_opacity" binding:"omitempty,min=0,max=100"`
	LogoPosition string `form:"logoPosition" json:"logo_position"`
	LogoShape    string `form:"logoShape" json:"logo_shape"`
	Gradient     bool   `form:"gradient" json:"gradient"`
	Frame        string `form:"frame" json:"frame"`
	Rounded      bool   `form:"rounded" json:"rounded"`
	FrameColor   string `form:"frameColor" json:"frame_color"`
}

// qrQuery is the GET /api/qr query string. Size also accepts the page's
// "preview" and "download" presets; blank means the configured default.
type qrQuery struct {
	Type string `form:"type"`
	contentFields
	Size        string `form:"size"`
	PreviewSize int    `form:"previewSize" binding:"omitempty,min=0"`
	Margin      *int   `form:"margin" binding:"omitempty,min=0"`
	FG          string `form:"fg"`
	BG          string `form:"bg"`
	Level       string `form:"level"`
	Format      string `form:"format"`
	Shape       string `form:"qrShape"`
	ColorMode   string `form:"colorMode"`
	GradStart   string `form:"gradientStart"`
	GradMiddle  string `form:"gradientMiddle"`
	GradEnd     string `form:"gradientEnd"`
	designFields
	frameAliases
}

// frameAliases are the older frame parameters of the query form.
// cornerStyle=none|square|rounded picks the corners and borderPattern the
// style; frame, rounded and frameColor win when both are given.
type frameAliases struct {
	CornerStyle   string `form:"cornerStyle"`
	BorderPattern string `form:"borderPattern"`
	BorderColor   string `form:"borderColor"`
}

func (a frameAliases) apply(d *designFields) {
	if d.FrameColor == "" {
		d.FrameColor = a.BorderColor
	}
	if d.Frame != "" {
		return
	}
	pattern := a.BorderPattern
	switch strings.ToLower(strings.TrimSpace(a.CornerStyle)) {
	case "":
		d.Frame = pattern
	case "none":
	case "rounded":
		d.Rounded = true
		fallthrough
	default:
		if pattern == "" {
			pattern = string(decorate.FrameSimple)
		}
		d.Frame = pattern
	}
}

// gradient returns the module gradient for colorMode=gradient.
func (q *qrQuery) gradient() *render.Gradient {
	if !strings.EqualFold(strings.TrimSpace(q.ColorMode), "gradient") {
		return nil
	}
	return gradientFields{Start: q.GradStart, Middle: q.GradMiddle, End: q.GradEnd}.gradient()
}

type gradientFields struct {
	Start  string `json:"start"`
	Middle string `json:"middle"`
	End    string `json:"end"`
}

func (g gradientFields) gradient() *render.Gradient {
	def := render.DefaultGradient()
	return &render.Gradient{
		Start:  render.ParseColorOr(g.Start, def.Start),
		Middle: render.ParseColorOr(g.Middle, def.Middle),
		End:    render.ParseColorOr(g.End, def.End),
	}
}

type renderFields struct {
	Size     int             `json:"size" binding:"omitempty,min=0"`
	Margin   *int            `json:"margin" binding:"omitempty,min=0"`
	FG       string          `json:"fg"`
	BG       string          `json:"bg"`
	Level    string          `json:"level"`
	Format   string          `json:"format"`
	Shape    string          `json:"shape"`
	Gradient *gradientFields `json:"gradient"`
}

func (r renderFields) params() renderParams {
	p := renderParams{
		Size:   r.Size,
		Margin: r.Margin,
		FG:     r.FG,
		BG:     r.BG,
		Level:  r.Level,
		Format: r.Format,
		Shape:  r.Shape,
	}
	if r.Gradient != nil {
		p.Gradient = r.Gradient.gradient()
	}
	return p
}

// generateBody is the POST /api/qr JSON body.
type generateBody struct {
	Kind      string        `json:"kind" binding:"required"`
	Content   contentFields `json:"content"`
	Render    renderFields  `json:"render"`
	Design    *designFields `json:"design"`
	LogoImage string        `json:"logo_image"`
}

type generateResponse struct {
	Image   string `json:"image"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Payload string `json:"payload"`
}

const (
	previewSize  = 300
	downloadSize = 1024
)

// fieldError is malformed input detected while building a request.
type fieldError struct {
	field string
	err   error
}

func (e *fieldError) Error() string { return e.err.Error() }

func badField(field string, format string, args ...any) *fieldError {
	return &fieldError{field: field, err: fmt.Errorf(format, args...)}
}

// content builds the payload variant for kind from f.
func (f contentFields) content(kind payload.Kind) (payload.Content, error) {
	switch kind {
	case payload.KindURL:
		return payload.URL{Address: f.URL}, nil
	case payload.KindEmail:
		return payload.Email{Address: f.Email, Subject: f.Subject, Body: f.Body}, nil
	case payload.KindText:
		return payload.Text{Body: f.Text}, nil
	case payload.KindPhone:
		return payload.Phone{Number: f.Phone}, nil
	case payload.KindSMS:
		return payload.SMS{Number: f.Phone, Message: f.Message}, nil
	case payload.KindWhatsApp:
		return payload.WhatsApp{Number: f.Phone, Message: f.Message}, nil
	case payload.KindWiFi:
		return payload.WiFi{SSID: f.SSID, Password: f.Password, Security: f.Security, Hidden: f.Hidden}, nil
	case payload.KindVCard:
		return payload.VCard{Name: f.Name, Phone: f.Phone, Email: f.Email, Organization: f.Org}, nil
	case payload.KindEvent:
		start, err := parseEventTime(f.Start)
		if err != nil {
			return nil, &fieldError{field: "start", err: err}
		}
		end, err := parseEventTime(f.End)
		if err != nil {
			return nil, &fieldError{field: "end", err: err}
		}
		return payload.Event{Title: f.Title, Location: f.Location, Start: start, End: end}, nil
	case payload.KindImage:
		if f.Image == "" {
			return payload.Image{}, nil
		}
		data, err := decodeBase64(f.Image)
		if err != nil {
			return nil, &fieldError{field: "image", err: err}
		}
		return payload.Image{Data: data}, nil
	}
	return nil, badField("kind", "unknown content kind %q", kind)
}

func parseKind(s, def string) (payload.Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		s = def
	}
	k := payload.Kind(s)
	if !k.Valid() {
		return "", badField("kind", "unknown content kind %q", s)
	}
	return k, nil
}

var eventLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseEventTime accepts RFC 3339 and the HTML datetime-local forms, the
// latter read as UTC. Blank means unset.
func parseEventTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range eventLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// renderParams are the render inputs shared by the query and JSON forms.
type renderParams struct {
	Size     int
	Margin   *int
	FG       string
	BG       string
	Level    string
	Format   string
	Shape    string
	Gradient *render.Gradient
}

// options builds render options from loose request values. Unset values
// come from def; unparsable colours fall back silently like the page does.
// A transparent module colour is rejected.
func (p renderParams) options(def render.Options) (render.Options, error) {
	o := render.Options{
		Size:     p.Size,
		Margin:   def.Margin,
		Dark:     render.ParseColorOr(p.FG, def.Dark),
		Light:    render.ParseColorOr(p.BG, def.Light),
		Shape:    render.Shape(strings.ToLower(strings.TrimSpace(p.Shape))),
		Gradient: p.Gradient,
	}
	if o.Dark.A == 0 {
		return o, badField("fg", "module colour %q must not be transparent", p.FG)
	}
	if p.Margin != nil {
		o.Margin = *p.Margin
	}
	if p.Level != "" {
		if l, ok := render.ParseLevel(p.Level); ok {
			o.Level = l
		} else {
			// left for the generator to reject
			o.Level = render.Level(p.Level)
		}
	}
	switch f := strings.ToLower(strings.TrimSpace(p.Format)); f {
	case "":
	case "jpg":
		o.Format = render.FormatJPEG
	default:
		o.Format = render.Format(f)
	}
	return o, nil
}

func parseSize(s string) (int, error) {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case "":
		return 0, nil
	case "preview":
		return previewSize, nil
	case "download":
		return downloadSize, nil
	}
	n, err := strconv.Atoi(strings.TrimSuffix(s, "px"))
	if err != nil {
		return 0, badField("size", "size must be a number of pixels, got %q", s)
	}
	return n, nil
}

// options converts d to decoration options. A nil result means no design.
func (d *designFields) options(logo image.Image) *decorate.Options {
	if d == nil {
		return nil
	}
	o := &decorate.Options{
		Logo:         d.Logo,
		LogoImage:    logo,
		LogoSize:     d.LogoSize,
		LogoOpacity:  opacity(d.LogoOpacity),
		LogoPosition: decorate.Position(strings.ToLower(d.LogoPosition)),
		LogoShape:    decorate.Shape(strings.ToLower(d.LogoShape)),
		Gradient:     d.Gradient,
		Frame: decorate.Frame{
			Style:   decorate.FrameStyle(strings.ToLower(d.Frame)),
			Rounded: d.Rounded,
			Color:   render.ParseColorOr(d.FrameColor, color.RGBA{}),
		},
	}
	if logo != nil && o.Logo == "" {
		o.Logo = decorate.LogoCustom
	}
	if o.IsZero() {
		return nil
	}
	return o
}

// opacity maps the requested percentage to decorate's convention, where 0
// means the default. An explicit 0 is the faintest supported logo.
func opacity(p *int) int {
	if p == nil {
		return 0
	}
	return max(*p, decorate.MinLogoOpacity)
}

// baseEdge is the base raster edge whose decorated output is total pixels
// wide.
func baseEdge(design *decorate.Options, total int) int {
	if design == nil {
		return total
	}
	return design.BaseEdge(total)
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, ";base64,"); strings.HasPrefix(s, "data:") && i >= 0 {
		s = s[i+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	return data, nil
}

func decodeLogo(s string) (image.Image, error) {
	if s == "" {
		return nil, nil
	}
	data, err := decodeBase64(s)
	if err != nil {
		return nil, err
	}
	img, err := compress.Decode(data, compress.DefaultMaxPixels)
	if err != nil {
		return nil, fmt.Errorf("failed to decode logo: %w", err)
	}
	return img, nil
}
