package http

import (
	stdhttp "net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sketchwire/server/internal/config"
	"github.com/sketchwire/server/internal/game"
)

// NewServer builds the HTTP server: health and config endpoints plus the
// websocket upgrade route.
func NewServer(dispatcher *game.Dispatcher, reg *game.Registry, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(stdhttp.StatusOK, gin.H{
			"ok":    true,
			"rooms": reg.Count(),
		})
	})
	router.GET("/config", func(c *gin.Context) {
		c.JSON(stdhttp.StatusOK, gin.H{
			"modes":             []string{string(game.ModeRandom), string(game.ModeChoice)},
			"max_message_bytes": cfg.MaxMessageBytes,
			"draw_per_second":   cfg.DrawPerSecond,
			"guess_per_second":  cfg.GuessPerSecond,
		})
	})
	router.GET("/ws", gin.WrapH(NewWSHandler(dispatcher, cfg.MaxMessageBytes, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	return c
}
