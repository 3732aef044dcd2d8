package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	toast "github.com/cristianadrielbraun/qrkit/web/components/ui/toast"
)

// GenericToast returns a Toast component rendered as HTML for HTMX swaps.
func (h *Handler) GenericToast(c *gin.Context) {
	h.renderToast(c, http.StatusOK, toast.Props{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Variant:     toast.ParseVariant(c.PostForm("variant")),
		Position:    toast.PositionBottomRight,
		Duration:    2000,
		Dismissible: c.PostForm("dismissible") == "on",
		Icon:        true,
	})
}

var toastTitles = map[string]string{
	"validation": "Check your input",
	"capacity":   "Too much content",
	"render":     "Something went wrong",
}

var toastHints = map[string]string{
	"capacity": "Shorten the content or lower the error-correction level.",
	"render":   "Please try again.",
}

// errorToast answers a failed HTMX request. HTMX only swaps 2xx responses,
// so the status stays 200 and the kind travels in a header.
func (h *Handler) errorToast(c *gin.Context, kind string, err error) {
	desc := err.Error()
	if hint, ok := toastHints[kind]; ok {
		desc = hint
	}
	c.Header("X-QR-Error", kind)
	h.renderToast(c, http.StatusOK, toast.Props{
		Title:       toastTitles[kind],
		Description: desc,
		Variant:     toast.VariantError,
		Position:    toast.PositionBottomRight,
		Duration:    4000,
		Dismissible: true,
		Icon:        true,
	})
	c.Abort()
}

func (h *Handler) renderToast(c *gin.Context, status int, p toast.Props) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := toast.Toast(p).Render(c.Request.Context(), c.Writer); err != nil {
		h.log.Error().Err(err).Msg("failed to render toast")
	}
}
