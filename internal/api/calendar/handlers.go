// internal/api/calendar/handlers.go
package calendar

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lookacat/RoadsurferCodingChallenge/internal/api/apiutil"
	calendarmodel "github.com/lookacat/RoadsurferCodingChallenge/internal/calendar"
	stationsvc "github.com/lookacat/RoadsurferCodingChallenge/internal/stations"
)

var (
	store    *stationsvc.Store
	clock    calendarmodel.Clock = calendarmodel.RealClock{}
	initOnce sync.Once
)

const calendarTimeout = 15 * time.Second

// InitHandlers must be called during server startup before handling requests.
// A nil clock uses the system time.
func InitHandlers(s *stationsvc.Store, c calendarmodel.Clock) {
	if s == nil {
		return
	}
	initOnce.Do(func() {
		store = s
		if c != nil {
			clock = c
		}
	})
}

// weekView is the JSON shape of one calendar cell, a day bucket plus its
// chip visibility for the requested device class.
type weekView struct {
	calendarmodel.DayData
	Today      bool                    `json:"today"`
	Visibility calendarmodel.Visibility `json:"visibility"`
}

type navigationView struct {
	CurrentYear    int                        `json:"currentYear"`
	AvailableYears []int                      `json:"availableYears"`
	WeekOptions    []calendarmodel.WeekOption `json:"weekOptions"`
	SelectedWeek   string                     `json:"selectedWeek"`
	WeekRangeText  string                     `json:"weekRangeText"`
}

type stationHeader struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Location      string `json:"location"`
	BookingsCount int    `json:"bookingsCount"`
}

// HandleCalendarView serves GET /api/calendar: the week view model for one
// station, built from the current station snapshot. Query parameters:
// station_id (required), year, week (a week option value), mobile.
func HandleCalendarView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiutil.WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	if store == nil {
		log.Ctx(r.Context()).Error().Msg("Calendar handlers not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	logger := log.Ctx(r.Context())

	stationID, err := apiutil.RequireQuery(r, "station_id")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), calendarTimeout)
	defer cancel()

	station, err := store.Station(ctx, stationID)
	switch {
	case err == nil:
	case errors.Is(err, stationsvc.ErrStationNotFound):
		apiutil.WriteError(w, http.StatusNotFound, "Station not found")
		return
	default:
		logger.Error().Err(err).Str("station_id", stationID).Msg("Failed to load station for calendar")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch stations")
		return
	}

	nav := calendarmodel.NewNavigation(station.Bookings, clock)
	if yearValue := r.URL.Query().Get("year"); yearValue != "" {
		year, err := strconv.Atoi(yearValue)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "invalid year")
			return
		}
		nav.SetYear(year, station.Bookings)
	}
	if week := r.URL.Query().Get("week"); week != "" {
		if !nav.SelectWeek(week) {
			apiutil.WriteError(w, http.StatusNotFound, "Week not found")
			return
		}
	}

	selected, ok := nav.Selected()
	if !ok {
		apiutil.WriteError(w, http.StatusNotFound, "Week not found")
		return
	}

	isMobile := apiutil.ParseBool(r.URL.Query().Get("mobile"), false)

	days := calendarmodel.BuildDays(calendarmodel.WeekDays(selected.WeekStartDate), station.Bookings)
	views := make([]weekView, 0, len(days))
	for _, day := range days {
		views = append(views, weekView{
			DayData:    day,
			Today:      calendarmodel.IsToday(day.Date, clock),
			Visibility: calendarmodel.ComputeVisibility(day.Bookings, isMobile),
		})
	}

	response := map[string]any{
		"station": stationHeader{
			ID:            station.ID,
			Name:          station.Name,
			Location:      station.Location,
			BookingsCount: station.BookingsCount,
		},
		"navigation": navigationView{
			CurrentYear:    nav.CurrentYear,
			AvailableYears: nav.AvailableYears,
			WeekOptions:    nav.WeekOptions,
			SelectedWeek:   selected.Value,
			WeekRangeText:  nav.WeekRangeText(),
		},
		"days": views,
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("Failed to write calendar response")
	}
}
