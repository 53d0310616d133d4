// internal/api/stations/handlers.go
package stations

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lookacat/RoadsurferCodingChallenge/internal/api/apiutil"
	stationsvc "github.com/lookacat/RoadsurferCodingChallenge/internal/stations"
)

var (
	store    *stationsvc.Store
	client   *stationsvc.Client
	initOnce sync.Once
)

const proxyTimeout = 15 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s *stationsvc.Store, c *stationsvc.Client) {
	if s == nil || c == nil {
		return
	}
	initOnce.Do(func() {
		store = s
		client = c
	})
}

// HandleStations serves /api/stations and every path beneath it. The trailing
// segments decide between the station list, a single booking lookup and a
// plain 404.
func HandleStations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiutil.WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	if store == nil || client == nil {
		log.Ctx(r.Context()).Error().Msg("Station handlers not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	route := stationsvc.ParseRoute(routeSegments(r.URL.Path))
	switch {
	case route.IsStationsList:
		handleStationsList(w, r)
	case route.IsBookingRequest:
		handleBookingLookup(w, r, route)
	default:
		apiutil.WriteError(w, http.StatusNotFound, "Not Found")
	}
}

func handleStationsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), proxyTimeout)
	defer cancel()

	stationsList, err := store.Refresh(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch stations from upstream")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch stations")
		return
	}

	if term := r.URL.Query().Get("search"); term != "" {
		stationsList = store.Filter(term)
	}
	if stationsList == nil {
		stationsList = []stationsvc.Station{}
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"stations": stationsList}); err != nil {
		logger.Error().Err(err).Msg("Failed to write stations response")
	}
}

func handleBookingLookup(w http.ResponseWriter, r *http.Request, route stationsvc.RouteInfo) {
	logger := log.Ctx(r.Context()).With().
		Str("station_id", route.StationID).
		Str("booking_id", route.BookingID).
		Logger()

	ctx, cancel := context.WithTimeout(r.Context(), proxyTimeout)
	defer cancel()

	booking, err := client.FetchBooking(ctx, route.StationID, route.BookingID)
	switch {
	case err == nil:
		if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"booking": booking}); err != nil {
			logger.Error().Err(err).Msg("Failed to write booking response")
		}
	case errors.Is(err, stationsvc.ErrBookingNotFound):
		logger.Warn().Msg("Booking not found")
		if err := apiutil.WriteJSON(w, http.StatusNotFound, map[string]any{"booking": nil}); err != nil {
			logger.Error().Err(err).Msg("Failed to write booking response")
		}
	default:
		logger.Error().Err(err).Msg("Booking lookup failed")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// routeSegments extracts the path segments after /api/stations.
func routeSegments(path string) []string {
	trimmed := strings.TrimPrefix(path, "/api/stations")
	trimmed = strings.Trim(trimmed, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
