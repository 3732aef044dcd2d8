package payload

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

var (
	schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*:`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	wifiEscaper  = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`, `:`, `\:`, `"`, `\"`)
	vcardEscaper = strings.NewReplacer(`\`, `\\`, `,`, `\,`, `;`, `\;`, "\r\n", `\n`, "\n", `\n`)
)

// CalendarTimeFormat is the iCalendar UTC basic format.
const CalendarTimeFormat = "20060102T150405Z"

// FormatURL trims raw and defaults it to https when it carries no scheme.
func FormatURL(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	if !schemePattern.MatchString(v) {
		v = "https://" + v
	}
	return v
}

// FormatEmail builds a mailto URI. Subject and body are added only when not blank.
func FormatEmail(address, subject, body string) string {
	address = strings.TrimSpace(address)
	if !emailPattern.MatchString(address) {
		return ""
	}
	var params []string
	if strings.TrimSpace(subject) != "" {
		params = append(params, "subject="+encodeComponent(subject))
	}
	if strings.TrimSpace(body) != "" {
		params = append(params, "body="+encodeComponent(body))
	}
	out := "mailto:" + address
	if len(params) > 0 {
		out += "?" + strings.Join(params, "&")
	}
	return out
}

// FormatPhone builds a tel URI from a number with formatting noise removed.
func FormatPhone(number string) string {
	cleaned := cleanPhone(number)
	if cleaned == "" {
		return ""
	}
	return "tel:" + cleaned
}

// FormatText returns s unchanged.
func FormatText(s string) string { return s }

// FormatSMS builds an smsto URI. The message separator is always present.
func FormatSMS(number, message string) string {
	cleaned := cleanPhone(number)
	if cleaned == "" {
		return ""
	}
	return "smsto:" + cleaned + ":" + message
}

// FormatWhatsApp builds a wa.me click-to-chat link.
func FormatWhatsApp(number, message string) string {
	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '+' {
			return r
		}
		return -1
	}, number)
	digits = strings.TrimPrefix(digits, "+")
	if digits == "" {
		return ""
	}
	out := "https://wa.me/" + digits
	if strings.TrimSpace(message) != "" {
		out += "?text=" + encodeComponent(message)
	}
	return out
}

// FormatWiFi builds a network configuration string.
func FormatWiFi(ssid, password, security string) string {
	return formatWiFi(WiFi{SSID: ssid, Password: password, Security: security})
}

func formatWiFi(w WiFi) string {
	if strings.TrimSpace(w.SSID) == "" {
		return ""
	}
	security := strings.TrimSpace(w.Security)
	if security == "" {
		security = "WPA"
	}
	var b strings.Builder
	b.WriteString("WIFI:T:" + security + ";S:" + wifiEscaper.Replace(w.SSID) + ";")
	if !strings.EqualFold(security, "nopass") {
		b.WriteString("P:" + wifiEscaper.Replace(w.Password) + ";")
	}
	if w.Hidden {
		b.WriteString("H:true;")
	}
	b.WriteString(";")
	return b.String()
}

// FormatVCard builds a vCard 3.0 block, one property per line.
func FormatVCard(c VCard) string {
	if strings.TrimSpace(c.Name) == "" {
		return ""
	}
	lines := []string{"BEGIN:VCARD", "VERSION:3.0", "FN:" + vcardEscaper.Replace(strings.TrimSpace(c.Name))}
	if v := strings.TrimSpace(c.Phone); v != "" {
		lines = append(lines, "TEL:"+v)
	}
	if v := strings.TrimSpace(c.Email); v != "" {
		lines = append(lines, "EMAIL:"+v)
	}
	if v := strings.TrimSpace(c.Organization); v != "" {
		lines = append(lines, "ORG:"+vcardEscaper.Replace(v))
	}
	lines = append(lines, "END:VCARD")
	return strings.Join(lines, "\n")
}

// FormatEvent builds an iCalendar block. now stamps DTSTAMP and uid must be
// unique per call.
func FormatEvent(e Event, now time.Time, uid string) string {
	if strings.TrimSpace(e.Title) == "" {
		return ""
	}
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:VEVENT",
		"SUMMARY:" + vcardEscaper.Replace(strings.TrimSpace(e.Title)),
	}
	if v := strings.TrimSpace(e.Location); v != "" {
		lines = append(lines, "LOCATION:"+vcardEscaper.Replace(v))
	}
	if !e.Start.IsZero() {
		lines = append(lines, "DTSTART:"+e.Start.UTC().Format(CalendarTimeFormat))
	}
	if !e.End.IsZero() {
		lines = append(lines, "DTEND:"+e.End.UTC().Format(CalendarTimeFormat))
	}
	lines = append(lines,
		"UID:"+uid,
		"DTSTAMP:"+now.UTC().Format(CalendarTimeFormat),
		"END:VEVENT",
		"END:VCALENDAR",
	)
	return strings.Join(lines, "\n")
}

// cleanPhone keeps digits, '+' and '-'.
func cleanPhone(number string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '+' || r == '-' {
			return r
		}
		return -1
	}, number)
}

// componentUnescaper undoes the escapes QueryEscape applies to characters
// that browsers leave alone in a URI component.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent percent-encodes s for a URI query value the way
// encodeURIComponent does: spaces as %20 and !'()* kept literal.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
