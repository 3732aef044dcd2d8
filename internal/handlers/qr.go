package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrkit/internal/compress"
	"github.com/cristianadrielbraun/qrkit/internal/generator"
	"github.com/cristianadrielbraun/qrkit/internal/render"
)

// QRCodeHandler renders a QR code from query parameters and streams the
// image bytes. type defaults to url.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	var q qrQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, "query", err)
		return
	}

	kind, err := parseKind(q.Type, "url")
	if err != nil {
		h.reject(c, err)
		return
	}
	content, err := q.contentFields.content(kind)
	if err != nil {
		h.reject(c, err)
		return
	}
	size, err := parseSize(q.Size)
	if err != nil {
		h.reject(c, err)
		return
	}

	q.frameAliases.apply(&q.designFields)
	design := q.designFields.options(nil)
	// previewSize is the edge of the finished image, frame included.
	if q.PreviewSize > 0 && (q.Size == "" || q.Size == "preview") {
		size = baseEdge(design, q.PreviewSize)
	}

	opts, err := renderParams{
		Size:     size,
		Margin:   q.Margin,
		FG:       q.FG,
		BG:       q.BG,
		Level:    q.Level,
		Format:   q.Format,
		Shape:    q.Shape,
		Gradient: q.gradient(),
	}.options(h.cfg.Defaults)
	if err != nil {
		h.reject(c, err)
		return
	}

	qr, err := h.gen.Generate(c.Request.Context(), generator.Request{
		Content: content,
		Render:  opts,
		Design:  design,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	shape := opts.Shape
	if shape == "" {
		shape = render.ShapeRectangle
	}
	c.Header("X-QR-Debug", fmt.Sprintf("kind=%s;size=%d;format=%s;shape=%s", kind, qr.Width, qr.Format, shape))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, qr.ContentType(), qr.Data)
}

// GenerateJSON renders a QR code from a JSON body and answers with the image
// as a data URI.
func (h *Handler) GenerateJSON(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.UploadMaxBytes)

	var body generateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.tooLarge(c, "body", "request body too large")
			return
		}
		h.badRequest(c, "body", err)
		return
	}

	kind, err := parseKind(body.Kind, "")
	if err != nil {
		h.reject(c, err)
		return
	}
	content, err := body.Content.content(kind)
	if err != nil {
		h.reject(c, err)
		return
	}
	logo, err := decodeLogo(body.LogoImage)
	if errors.Is(err, compress.ErrImageTooLarge) {
		h.tooLarge(c, "logo_image", "logo image too large")
		return
	}
	if err != nil {
		h.badRequest(c, "logo_image", err)
		return
	}
	design := body.Design
	if design == nil && logo != nil {
		design = &designFields{}
	}

	opts, err := body.Render.params().options(h.cfg.Defaults)
	if err != nil {
		h.reject(c, err)
		return
	}
	qr, err := h.gen.Generate(c.Request.Context(), generator.Request{
		Content: content,
		Render:  opts,
		Design:  design.options(logo),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, generateResponse{
		Image:   qr.DataURI(),
		Width:   qr.Width,
		Height:  qr.Height,
		Payload: qr.Payload,
	})
}

// reject reports a request-building error.
func (h *Handler) reject(c *gin.Context, err error) {
	var fe *fieldError
	if errors.As(err, &fe) {
		h.badRequest(c, fe.field, fe.err)
		return
	}
	h.fail(c, err)
}
