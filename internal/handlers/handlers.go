package handlers

import (
	"encoding/xml"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cristianadrielbraun/qrkit/internal/generator"
	"github.com/cristianadrielbraun/qrkit/internal/render"
)

// Settings are the request-independent knobs of the HTTP layer.
type Settings struct {
	// Defaults fill render options the request leaves out.
	Defaults render.Options
	// UploadMaxBytes caps multipart uploads.
	UploadMaxBytes int64
}

// Handler holds the dependencies of the HTTP handlers. It keeps no
// per-request state.
type Handler struct {
	gen *generator.Generator
	log zerolog.Logger
	cfg Settings
}

// New returns a Handler. Zero settings fall back to the render defaults and
// a 5 MiB upload cap.
func New(gen *generator.Generator, log zerolog.Logger, cfg Settings) *Handler {
	if cfg.Defaults == (render.Options{}) {
		cfg.Defaults = render.DefaultOptions()
	}
	if cfg.UploadMaxBytes <= 0 {
		cfg.UploadMaxBytes = 5 << 20
	}
	return &Handler{gen: gen, log: log, cfg: cfg}
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	NS      string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SitemapXML serves a sitemap of the public pages.
func (h *Handler) SitemapXML(c *gin.Context) {
	scheme := "https"
	if xf := c.GetHeader("X-Forwarded-Proto"); xf != "" {
		scheme = xf
	} else if c.Request.TLS == nil {
		scheme = "http"
	}
	base := scheme + "://" + c.Request.Host

	c.XML(http.StatusOK, sitemap{
		NS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: base + "/", ChangeFreq: "weekly", Priority: "1.0"},
		},
	})
}

// statusFor maps a generation error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, generator.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, generator.ErrCapacity):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as JSON, or as an error toast for HTMX requests.
func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	kind := generator.Category(err)
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("QR generation failed")
	}
	_ = c.Error(err)

	if c.GetHeader("HX-Request") == "true" {
		h.errorToast(c, kind, err)
		return
	}

	msg := err.Error()
	if kind == "render" {
		// internal causes stay in the log
		msg = generator.ErrRender.Error()
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error": msg,
		"kind":  kind,
		"field": generator.FieldOf(err),
	})
}

// badRequest reports malformed input before generation is attempted.
func (h *Handler) badRequest(c *gin.Context, field string, err error) {
	h.fail(c, &generator.Error{Kind: generator.ErrValidation, Field: field, Err: err})
}

// tooLarge rejects an upload that exceeds the configured byte or pixel caps.
func (h *Handler) tooLarge(c *gin.Context, field, msg string) {
	h.log.Warn().Str("path", c.Request.URL.Path).Str("field", field).Msg(msg)
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
		"error": msg,
		"kind":  "validation",
		"field": field,
	})
}
