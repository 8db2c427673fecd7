package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sketchwire/server/internal/config"
	"github.com/sketchwire/server/internal/game"
	transporthttp "github.com/sketchwire/server/internal/transport/http"
	"github.com/sketchwire/server/internal/words"
)

// App wires together the game core and the transport layer.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	vocab := words.Default()
	if cfg.WordsFile != "" {
		loaded, err := words.FromFile(cfg.WordsFile)
		if err != nil {
			return nil, fmt.Errorf("load vocabulary: %w", err)
		}
		vocab = loaded
		logger.Info().Str("path", cfg.WordsFile).Int("words", vocab.Len()).Msg("vocabulary loaded")
	}

	registry := game.NewRegistry(vocab, cfg.WordOptions)
	dispatcher := game.NewDispatcher(registry, game.Limits{
		MaxMessageBytes: cfg.MaxMessageBytes,
		DrawPerSecond:   cfg.DrawPerSecond,
		GuessPerSecond:  cfg.GuessPerSecond,
	}, logger)

	server := transporthttp.NewServer(dispatcher, registry, *cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		log:             logger,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}
