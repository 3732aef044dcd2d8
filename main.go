package main

import (
	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrkit/internal/compress"
	"github.com/cristianadrielbraun/qrkit/internal/config"
	"github.com/cristianadrielbraun/qrkit/internal/generator"
	"github.com/cristianadrielbraun/qrkit/internal/handlers"
	"github.com/cristianadrielbraun/qrkit/internal/logging"
	"github.com/cristianadrielbraun/qrkit/internal/render"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.AppEnv)

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(logging.Middleware(log))
	r.Use(gin.Recovery())

	defaults := render.DefaultOptions()
	defaults.Size = cfg.DefaultSize
	defaults.Margin = cfg.DefaultMargin

	gen := generator.New(
		generator.WithLogger(log),
		generator.WithDefaults(defaults),
		generator.WithMaxSize(cfg.MaxSize),
		generator.WithCompressor(compress.New(
			compress.WithMaxEdge(cfg.ImageMaxEdge),
			compress.WithBudget(cfg.ImageBudget),
		)),
	)

	h := handlers.New(gen, log, handlers.Settings{
		Defaults:       defaults,
		UploadMaxBytes: cfg.UploadMaxBytes,
	})
	h.Register(r)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.AppEnv).Msg("qrkit listening")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
