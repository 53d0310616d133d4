// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/lookacat/RoadsurferCodingChallenge/internal/config"
	"github.com/lookacat/RoadsurferCodingChallenge/internal/scheduler"
	"github.com/lookacat/RoadsurferCodingChallenge/internal/stations"
)

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config.yaml"
}

func main() {
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	client := stations.NewClient(stations.ClientConfig{
		BaseURL:      cfg.Upstream.BaseURL,
		StationsPath: cfg.Upstream.StationsPath,
		BookingPath:  cfg.Upstream.BookingPath,
		Timeout:      cfg.Upstream.Timeout(),
	}, nil)
	store := stations.NewStore(client)

	if err := scheduler.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize scheduler")
	}
	if cfg.Refresh.Interval != "" {
		if err := scheduler.RegisterRefreshJob(store, cfg.Refresh.Interval); err != nil {
			log.Fatal().Err(err).Msg("Failed to register refresh job")
		}
	}
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	// Warm the snapshot so search and calendar views work immediately. The
	// proxy still functions if this fails; the first list request retries.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), cfg.Upstream.Timeout())
	if _, err := store.Refresh(warmCtx); err != nil {
		log.Warn().Err(err).Msg("Initial station snapshot fetch failed")
	}
	warmCancel()

	server := newServer(cfg, store, client)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Run server
	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownTimeout := time.Duration(cfg.App.ShutdownTimeoutSeconds) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := scheduler.Stop(); err != nil {
			log.Error().Err(err).Msg("Failed to stop scheduler")
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
