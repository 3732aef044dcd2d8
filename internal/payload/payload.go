// Package payload turns typed content into the strings QR scanners expect.
package payload

import "time"

// Kind identifies which content variant a request carries.
type Kind string

const (
	KindURL      Kind = "url"
	KindEmail    Kind = "email"
	KindText     Kind = "text"
	KindPhone    Kind = "phone"
	KindSMS      Kind = "sms"
	KindWhatsApp Kind = "whatsapp"
	KindWiFi     Kind = "wifi"
	KindVCard    Kind = "vcard"
	KindEvent    Kind = "event"
	KindImage    Kind = "image"
)

// Kinds lists every supported kind in display order.
func Kinds() []Kind {
	return []Kind{KindURL, KindEmail, KindText, KindPhone, KindSMS, KindWhatsApp, KindWiFi, KindVCard, KindEvent, KindImage}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, v := range Kinds() {
		if v == k {
			return true
		}
	}
	return false
}

// Field names the required field category of a kind, for validation messages.
func Field(k Kind) string {
	switch k {
	case KindURL:
		return "URL"
	case KindEmail:
		return "email address"
	case KindText:
		return "text"
	case KindPhone, KindSMS, KindWhatsApp:
		return "phone number"
	case KindWiFi:
		return "network name (SSID)"
	case KindVCard:
		return "contact name"
	case KindEvent:
		return "event title"
	case KindImage:
		return "image"
	default:
		return "content"
	}
}

// Content is one of the variants below. Exactly one is active per request.
type Content interface {
	Kind() Kind
}

// Value returns c with pointer variants dereferenced. A nil pointer, or a
// nil c, gives nil.
func Value(c Content) Content {
	switch v := c.(type) {
	case *URL:
		return deref(v)
	case *Email:
		return deref(v)
	case *Text:
		return deref(v)
	case *Phone:
		return deref(v)
	case *SMS:
		return deref(v)
	case *WhatsApp:
		return deref(v)
	case *WiFi:
		return deref(v)
	case *VCard:
		return deref(v)
	case *Event:
		return deref(v)
	case *Image:
		return deref(v)
	}
	return c
}

func deref[T Content](p *T) Content {
	if p == nil {
		return nil
	}
	return *p
}

type URL struct {
	Address string
}

type Email struct {
	Address string
	Subject string
	Body    string
}

type Text struct {
	Body string
}

type Phone struct {
	Number string
}

type SMS struct {
	Number  string
	Message string
}

type WhatsApp struct {
	Number  string
	Message string
}

// WiFi describes a network join payload. Security defaults to WPA.
type WiFi struct {
	SSID     string
	Password string
	Security string
	Hidden   bool
}

type VCard struct {
	Name         string
	Phone        string
	Email        string
	Organization string
}

// Event is a calendar entry. Zero Start or End times are left out.
type Event struct {
	Title    string
	Location string
	Start    time.Time
	End      time.Time
}

// Image carries raw uploaded bytes; its payload comes from the compressor.
type Image struct {
	Data []byte
}

func (URL) Kind() Kind      { return KindURL }
func (Email) Kind() Kind    { return KindEmail }
func (Text) Kind() Kind     { return KindText }
func (Phone) Kind() Kind    { return KindPhone }
func (SMS) Kind() Kind      { return KindSMS }
func (WhatsApp) Kind() Kind { return KindWhatsApp }
func (WiFi) Kind() Kind     { return KindWiFi }
func (VCard) Kind() Kind    { return KindVCard }
func (Event) Kind() Kind    { return KindEvent }
func (Image) Kind() Kind    { return KindImage }
