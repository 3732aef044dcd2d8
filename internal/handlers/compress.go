package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type compressResponse struct {
	Payload     string `json:"payload"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Bytes       int    `json:"bytes"`
	Quality     int    `json:"quality,omitempty"`
	Placeholder bool   `json:"placeholder"`
}

// CompressHandler turns an uploaded image into a QR payload. Undecodable
// images still succeed with a placeholder payload.
func (h *Handler) CompressHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.UploadMaxBytes)

	fh, err := c.FormFile("image")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.tooLarge(c, "image", "upload too large")
			return
		}
		h.badRequest(c, "image", err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.cfg.UploadMaxBytes))
	if err != nil {
		h.fail(c, err)
		return
	}

	res := h.gen.Compress(data)
	c.JSON(http.StatusOK, compressResponse{
		Payload:     res.Payload,
		Width:       res.Width,
		Height:      res.Height,
		Bytes:       res.Bytes,
		Quality:     res.Quality,
		Placeholder: res.Placeholder,
	})
}
