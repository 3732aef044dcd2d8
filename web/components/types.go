package components

import (
	"strings"

	"github.com/cristianadrielbraun/qrkit/internal/decorate"
	"github.com/cristianadrielbraun/qrkit/internal/payload"
)

// KindOption is one entry of the content type picker.
type KindOption struct {
	Value payload.Kind
	Label string
	// Field is the query parameter carrying the required input of the kind.
	Field  string
	Hint   string
	Inputs []Input
}

// Input is one form control of a kind. Type is an HTML input type, or
// "textarea" and "select".
type Input struct {
	Name        string
	Label       string
	Type        string
	Placeholder string
	Options     []string
}

var kindInputs = map[payload.Kind][]Input{
	payload.KindURL: {{Name: "url", Label: "Link", Type: "url", Placeholder: "https://example.com"}},
	payload.KindEmail: {
		{Name: "email", Label: "Email address", Type: "email", Placeholder: "name@example.com"},
		{Name: "subject", Label: "Subject", Type: "text"},
		{Name: "body", Label: "Message", Type: "textarea"},
	},
	payload.KindText:  {{Name: "text", Label: "Text", Type: "textarea", Placeholder: "Any text"}},
	payload.KindPhone: {{Name: "phone", Label: "Phone number", Type: "tel", Placeholder: "+1 234 567 8900"}},
	payload.KindSMS: {
		{Name: "phone", Label: "Phone number", Type: "tel", Placeholder: "+1 234 567 8900"},
		{Name: "message", Label: "Message", Type: "textarea"},
	},
	payload.KindWhatsApp: {
		{Name: "phone", Label: "Phone number", Type: "tel", Placeholder: "+1 234 567 8900"},
		{Name: "message", Label: "Message", Type: "textarea"},
	},
	payload.KindWiFi: {
		{Name: "ssid", Label: "Network name", Type: "text", Placeholder: "Network name"},
		{Name: "password", Label: "Password", Type: "text"},
		{Name: "security", Label: "Security", Type: "select", Options: []string{"WPA", "WEP", "nopass"}},
		{Name: "hidden", Label: "Hidden network", Type: "checkbox"},
	},
	payload.KindVCard: {
		{Name: "name", Label: "Full name", Type: "text", Placeholder: "Jane Doe"},
		{Name: "phone", Label: "Phone", Type: "tel"},
		{Name: "email", Label: "Email", Type: "email"},
		{Name: "org", Label: "Organization", Type: "text"},
	},
	payload.KindEvent: {
		{Name: "title", Label: "Title", Type: "text", Placeholder: "Team meeting"},
		{Name: "location", Label: "Location", Type: "text"},
		{Name: "start", Label: "Starts", Type: "datetime-local"},
		{Name: "end", Label: "Ends", Type: "datetime-local"},
	},
	payload.KindImage: {{Name: "image", Label: "Image", Type: "file"}},
}

var kindMeta = map[payload.Kind]struct{ label, field, hint string }{
	payload.KindURL:      {"Link", "url", "https://example.com"},
	payload.KindEmail:    {"Email", "email", "name@example.com"},
	payload.KindText:     {"Text", "text", "Any text"},
	payload.KindPhone:    {"Phone", "phone", "+1 234 567 8900"},
	payload.KindSMS:      {"SMS", "phone", "+1 234 567 8900"},
	payload.KindWhatsApp: {"WhatsApp", "phone", "+1 234 567 8900"},
	payload.KindWiFi:     {"WiFi", "ssid", "Network name"},
	payload.KindVCard:    {"Contact", "name", "Jane Doe"},
	payload.KindEvent:    {"Event", "title", "Team meeting"},
	payload.KindImage:    {"Image", "image", "Upload a small image"},
}

// KindOptions returns the picker entries in display order.
func KindOptions() []KindOption {
	kinds := payload.Kinds()
	out := make([]KindOption, 0, len(kinds))
	for _, k := range kinds {
		m := kindMeta[k]
		out = append(out, KindOption{Value: k, Label: m.label, Field: m.field, Hint: m.hint, Inputs: kindInputs[k]})
	}
	return out
}

// LogoOption is one entry of the stock logo picker.
type LogoOption struct {
	Value string
	Label string
}

func LogoOptions() []LogoOption {
	ids := decorate.StockLogos()
	out := make([]LogoOption, 0, len(ids)+1)
	out = append(out, LogoOption{Value: "none", Label: "None"})
	for _, id := range ids {
		out = append(out, LogoOption{Value: id, Label: strings.ToUpper(id[:1]) + id[1:]})
	}
	return out
}
