package payload

import (
	"time"

	"github.com/google/uuid"
)

// Encoder dispatches content to its formatter. The clock and UID source only
// matter for events.
type Encoder struct {
	now func() time.Time
	uid func() string
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithClock overrides the time source used for DTSTAMP.
func WithClock(now func() time.Time) Option {
	return func(e *Encoder) { e.now = now }
}

// WithUID overrides the event UID source.
func WithUID(uid func() string) Option {
	return func(e *Encoder) { e.uid = uid }
}

func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{
		now: time.Now,
		uid: func() string { return uuid.NewString() + "@qrcreator.link" },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode returns the scanner payload for c, or "" when required fields are
// missing. Images are compressed elsewhere and always yield "" here.
// Pointer variants are accepted; a nil pointer yields "".
func (e *Encoder) Encode(c Content) string {
	switch v := Value(c).(type) {
	case URL:
		return FormatURL(v.Address)
	case Email:
		return FormatEmail(v.Address, v.Subject, v.Body)
	case Text:
		return FormatText(v.Body)
	case Phone:
		return FormatPhone(v.Number)
	case SMS:
		return FormatSMS(v.Number, v.Message)
	case WhatsApp:
		return FormatWhatsApp(v.Number, v.Message)
	case WiFi:
		return formatWiFi(v)
	case VCard:
		return FormatVCard(v)
	case Event:
		return FormatEvent(v, e.now(), e.uid())
	default:
		return ""
	}
}
