package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrkit/web/pages"
)

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)
		api.POST("/qr", h.GenerateJSON)
		api.POST("/compress", h.CompressHandler)
		api.POST("/htmx/toast", h.GenericToast)
	}

	r.GET("/", h.Home)
	r.GET("/healthz", h.Healthz)
	r.GET("/sitemap.xml", h.SitemapXML)
}

func (h *Handler) Home(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := pages.HomePage().Render(c.Request.Context(), c.Writer); err != nil {
		h.log.Error().Err(err).Msg("failed to render home page")
	}
}
