// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/lookacat/RoadsurferCodingChallenge/internal/api"
	calendarapi "github.com/lookacat/RoadsurferCodingChallenge/internal/api/calendar"
	stationsapi "github.com/lookacat/RoadsurferCodingChallenge/internal/api/stations"
	"github.com/lookacat/RoadsurferCodingChallenge/internal/config"
	"github.com/lookacat/RoadsurferCodingChallenge/internal/ratelimit"
	"github.com/lookacat/RoadsurferCodingChallenge/internal/stations"
)

func newServer(cfg *config.Config, store *stations.Store, client *stations.Client) *http.Server {
	router := http.NewServeMux()

	var limiter *ratelimit.Limiter
	if cfg.Limits.MaxRequests > 0 {
		limiter = ratelimit.New(&ratelimit.Config{
			MaxRequests: cfg.Limits.MaxRequests,
			Window:      time.Duration(cfg.Limits.WindowSeconds) * time.Second,
		})
	}

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithRateLimit(limiter),
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)

	// Register routes
	stationsapi.InitHandlers(store, client)
	calendarapi.InitHandlers(store, nil)
	registerRoutes(router)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Station proxy: exact path and the catch-all beneath it
	mux.HandleFunc("/api/stations", stationsapi.HandleStations)
	mux.HandleFunc("/api/stations/", stationsapi.HandleStations)

	// Calendar view model
	mux.HandleFunc("/api/calendar", calendarapi.HandleCalendarView)
}
