package pages

import (
	"context"
	"fmt"
	"io"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"

	"github.com/cristianadrielbraun/qrkit/internal/payload"
	"github.com/cristianadrielbraun/qrkit/web/components"
)

const (
	fieldClass  = "w-full rounded-md border border-gray-300 px-3 py-2 text-sm"
	buttonClass = "rounded-md bg-black px-4 py-2 text-sm font-medium text-white"
)

// HomePage is the landing page: a minimal form that previews GET /api/qr.
func HomePage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>QR code generator</title>`)
		b.WriteString(`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
		b.WriteString(`</head><body class="mx-auto max-w-xl p-6 font-sans">`)
		b.WriteString(`<h1 class="mb-4 text-2xl font-bold">QR code generator</h1>`)

		var kinds []components.KindOption
		for _, k := range components.KindOptions() {
			// uploads go through POST /api/compress first
			if k.Value != payload.KindImage {
				kinds = append(kinds, k)
			}
		}

		b.WriteString(`<form action="/api/qr" method="get" target="preview" class="space-y-3">`)
		b.WriteString(`<label class="block text-sm font-medium" for="type">Content</label>`)
		fmt.Fprintf(&b, `<select id="type" name="type" class="%s">`, twmerge.Merge(fieldClass, "bg-white"))
		for _, k := range kinds {
			fmt.Fprintf(&b, `<option value="%s" data-field="%s" data-hint="%s">%s</option>`,
				templ.EscapeString(string(k.Value)), templ.EscapeString(k.Field),
				templ.EscapeString(k.Hint), templ.EscapeString(k.Label))
		}
		b.WriteString(`</select>`)

		// One fieldset per kind; only the selected one is enabled, so
		// shared names like phone are submitted once.
		for i, k := range kinds {
			state := ""
			if i > 0 {
				state = " disabled hidden"
			}
			fmt.Fprintf(&b, `<fieldset data-kind="%s" class="space-y-2"%s>`, templ.EscapeString(string(k.Value)), state)
			for _, in := range k.Inputs {
				writeInput(&b, in)
			}
			b.WriteString(`</fieldset>`)
		}

		fmt.Fprintf(&b, `<select name="logo" class="%s">`, twmerge.Merge(fieldClass, "bg-white"))
		for _, l := range components.LogoOptions() {
			fmt.Fprintf(&b, `<option value="%s">%s</option>`, templ.EscapeString(l.Value), templ.EscapeString(l.Label))
		}
		b.WriteString(`</select>`)

		b.WriteString(`<label class="flex items-center gap-2 text-sm"><input type="checkbox" name="gradient" value="true"> Gradient background</label>`)
		fmt.Fprintf(&b, `<button type="submit" class="%s">Generate</button>`, buttonClass)
		b.WriteString(`</form>`)

		b.WriteString(`<iframe name="preview" title="Preview" class="mt-6 h-80 w-80 border-0"></iframe>`)
		b.WriteString(`<div id="toasts"></div>`)
		b.WriteString(kindSwitcher)
		b.WriteString(`</body></html>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

const kindSwitcher = `<script>
document.getElementById("type").addEventListener("change", function (e) {
  document.querySelectorAll("fieldset[data-kind]").forEach(function (fs) {
    var on = fs.dataset.kind === e.target.value;
    fs.disabled = !on;
    fs.hidden = !on;
  });
});
</script>`

func writeInput(b *strings.Builder, in components.Input) {
	name := templ.EscapeString(in.Name)
	label := templ.EscapeString(in.Label)
	if in.Type == "checkbox" {
		fmt.Fprintf(b, `<label class="flex items-center gap-2 text-sm"><input type="checkbox" name="%s" value="true"> %s</label>`, name, label)
		return
	}

	fmt.Fprintf(b, `<label class="block text-sm font-medium">%s`, label)
	switch in.Type {
	case "textarea":
		fmt.Fprintf(b, `<textarea name="%s" rows="3" placeholder="%s" class="%s"></textarea>`,
			name, templ.EscapeString(in.Placeholder), fieldClass)
	case "select":
		fmt.Fprintf(b, `<select name="%s" class="%s">`, name, twmerge.Merge(fieldClass, "bg-white"))
		for _, o := range in.Options {
			fmt.Fprintf(b, `<option value="%s">%s</option>`, templ.EscapeString(o), templ.EscapeString(o))
		}
		b.WriteString(`</select>`)
	default:
		fmt.Fprintf(b, `<input type="%s" name="%s" placeholder="%s" class="%s">`,
			templ.EscapeString(in.Type), name, templ.EscapeString(in.Placeholder), fieldClass)
	}
	b.WriteString(`</label>`)
}
