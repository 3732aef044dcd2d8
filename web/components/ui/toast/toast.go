// Package toast renders the notification fragment swapped in by HTMX.
package toast

import (
	"context"
	"fmt"
	"io"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

type Position string

const (
	PositionTopRight     Position = "top-right"
	PositionTopLeft      Position = "top-left"
	PositionTopCenter    Position = "top-center"
	PositionBottomRight  Position = "bottom-right"
	PositionBottomLeft   Position = "bottom-left"
	PositionBottomCenter Position = "bottom-center"
)

type Props struct {
	ID            string
	Class         string
	Title         string
	Description   string
	Variant       Variant
	Position      Position
	Duration      int // milliseconds, 0 keeps the toast open
	Dismissible   bool
	ShowIndicator bool
	Icon          bool
}

// ParseVariant maps the form values used by the page to a Variant.
func ParseVariant(s string) Variant {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "destructive":
		return VariantError
	case "warning":
		return VariantWarning
	case "info":
		return VariantInfo
	case "default":
		return VariantDefault
	default:
		return VariantSuccess
	}
}

var variantClasses = map[Variant]string{
	VariantDefault: "border-border bg-background text-foreground",
	VariantSuccess: "border-green-500/40 bg-green-50 text-green-900",
	VariantError:   "border-red-500/40 bg-red-50 text-red-900",
	VariantWarning: "border-amber-500/40 bg-amber-50 text-amber-900",
	VariantInfo:    "border-blue-500/40 bg-blue-50 text-blue-900",
}

var positionClasses = map[Position]string{
	PositionTopRight:     "top-4 right-4",
	PositionTopLeft:      "top-4 left-4",
	PositionTopCenter:    "top-4 left-1/2 -translate-x-1/2",
	PositionBottomRight:  "bottom-4 right-4",
	PositionBottomLeft:   "bottom-4 left-4",
	PositionBottomCenter: "bottom-4 left-1/2 -translate-x-1/2",
}

var icons = map[Variant]string{
	VariantSuccess: "✓",
	VariantError:   "✕",
	VariantWarning: "!",
	VariantInfo:    "i",
}

// Classes returns the merged class list of the toast container.
func Classes(p Props) string {
	v := p.Variant
	if _, ok := variantClasses[v]; !ok {
		v = VariantDefault
	}
	pos, ok := positionClasses[p.Position]
	if !ok {
		pos = positionClasses[PositionBottomRight]
	}
	return twmerge.Merge(
		"fixed z-50 flex w-full max-w-sm items-start gap-3 rounded-lg border p-4 shadow-lg",
		pos,
		variantClasses[v],
		p.Class,
	)
}

func Toast(p Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div`)
		if p.ID != "" {
			fmt.Fprintf(&b, ` id="%s"`, templ.EscapeString(p.ID))
		}
		fmt.Fprintf(&b, ` class="%s" role="status" data-toast data-variant="%s" data-duration="%d">`,
			templ.EscapeString(Classes(p)), templ.EscapeString(string(p.Variant)), p.Duration)

		if icon, ok := icons[p.Variant]; ok && p.Icon {
			fmt.Fprintf(&b, `<span class="shrink-0 font-bold" aria-hidden="true">%s</span>`, icon)
		}
		b.WriteString(`<div class="flex-1">`)
		if p.Title != "" {
			fmt.Fprintf(&b, `<p class="text-sm font-semibold">%s</p>`, templ.EscapeString(p.Title))
		}
		if p.Description != "" {
			fmt.Fprintf(&b, `<p class="text-sm opacity-90">%s</p>`, templ.EscapeString(p.Description))
		}
		b.WriteString(`</div>`)
		if p.Dismissible {
			b.WriteString(`<button type="button" class="opacity-70 hover:opacity-100" aria-label="Close" data-toast-dismiss>&times;</button>`)
		}
		if p.ShowIndicator && p.Duration > 0 {
			fmt.Fprintf(&b, `<div class="absolute bottom-0 left-0 h-1 w-full bg-current opacity-20" style="animation: toast-progress %dms linear forwards"></div>`, p.Duration)
		}
		b.WriteString(`</div>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}
