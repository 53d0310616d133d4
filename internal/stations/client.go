// internal/stations/client.go
package stations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	stationIDPlaceholder = "%station-id%"
	bookingIDPlaceholder = "%booking-id%"

	// Station "7" is a known-bad upstream record and is filtered out of every
	// station list this client returns.
	badStationID = "7"

	defaultFetchTimeout = 10 * time.Second
)

// ClientConfig holds the upstream API endpoints. BookingPath must contain the
// %station-id% and %booking-id% placeholder tokens.
type ClientConfig struct {
	BaseURL      string
	StationsPath string
	BookingPath  string
	Timeout      time.Duration
}

// Client fetches stations and bookings from the upstream read-only API.
type Client struct {
	baseURL      string
	stationsPath string
	bookingPath  string
	timeout      time.Duration
	httpClient   *http.Client
}

// NewClient creates an upstream API client. A nil httpClient uses a default
// client; the per-fetch timeout is enforced via context on every request.
func NewClient(cfg ClientConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Client{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		stationsPath: cfg.StationsPath,
		bookingPath:  cfg.BookingPath,
		timeout:      timeout,
		httpClient:   httpClient,
	}
}

// FetchStations fetches the full station list, drops the known-bad station
// and maps the upstream shape onto the internal one.
func (c *Client) FetchStations(ctx context.Context) ([]Station, error) {
	var external []ExternalStation
	if err := c.getJSON(ctx, c.baseURL+c.stationsPath, "stations", &external); err != nil {
		return nil, err
	}

	stations := make([]Station, 0, len(external))
	for _, ext := range external {
		if ext.ID == badStationID {
			continue
		}
		stations = append(stations, newStation(ext))
	}
	return stations, nil
}

// FetchBooking fetches a single booking directly from the upstream. If the
// direct fetch fails for any reason other than a clean 404, it falls back to
// fetching the full station list and searching the matching station's
// bookings. A direct 404 and a fallback miss both surface as
// ErrBookingNotFound.
func (c *Client) FetchBooking(ctx context.Context, stationID, bookingID string) (*Booking, error) {
	booking, err := c.fetchBookingDirect(ctx, stationID, bookingID)
	if err == nil {
		return booking, nil
	}
	if errors.Is(err, ErrBookingNotFound) {
		// Clean upstream 404: the booking does not exist, no point searching
		// the station list for it.
		return nil, ErrBookingNotFound
	}

	log.Warn().
		Err(err).
		Str("station_id", stationID).
		Str("booking_id", bookingID).
		Msg("Direct booking fetch failed, trying station list fallback")

	booking, fallbackErr := c.fetchBookingFromList(ctx, stationID, bookingID)
	if fallbackErr != nil {
		log.Error().
			Err(fallbackErr).
			Str("station_id", stationID).
			Str("booking_id", bookingID).
			Msg("Booking fallback failed")
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (c *Client) fetchBookingDirect(ctx context.Context, stationID, bookingID string) (*Booking, error) {
	url := c.bookingURL(stationID, bookingID)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Resource: "booking", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Resource: "booking", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrBookingNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{Resource: "booking", Status: resp.StatusCode}
	}

	var booking Booking
	if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
		return nil, &FetchError{Resource: "booking", Err: fmt.Errorf("decode response: %w", err)}
	}
	return &booking, nil
}

func (c *Client) fetchBookingFromList(ctx context.Context, stationID, bookingID string) (*Booking, error) {
	stationsList, err := c.FetchStations(ctx)
	if err != nil {
		return nil, err
	}

	for _, station := range stationsList {
		if station.ID != stationID {
			continue
		}
		for _, booking := range station.Bookings {
			if booking.ID == bookingID {
				return &booking, nil
			}
		}
		return nil, ErrBookingNotFound
	}
	return nil, ErrStationNotFound
}

func (c *Client) bookingURL(stationID, bookingID string) string {
	path := strings.Replace(c.bookingPath, stationIDPlaceholder, stationID, 1)
	path = strings.Replace(path, bookingIDPlaceholder, bookingID, 1)
	return c.baseURL + path
}

func (c *Client) getJSON(ctx context.Context, url, resource string, dst any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &FetchError{Resource: resource, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &FetchError{Resource: resource, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &FetchError{Resource: resource, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
