package stations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lookacat/RoadsurferCodingChallenge/internal/testutil"
)

const testStationsJSON = `[
	{"id": "1", "name": "Berlin", "bookings": [
		{"id": "b1", "pickupReturnStationId": "1", "customerName": "Kera", "startDate": "2024-03-25T09:00:00.000Z", "endDate": "2024-03-28T09:00:00.000Z"},
		{"id": "b2", "pickupReturnStationId": "1", "customerName": "Elias", "startDate": "2024-03-26T10:00:00.000Z", "endDate": "2024-04-02T10:00:00.000Z"}
	]},
	{"id": "7", "name": "Nonsense", "bookings": []},
	{"id": "2", "name": "Munich", "bookings": []}
]`

func newTestClient(u *testutil.Upstream) *Client {
	return NewClient(ClientConfig{
		BaseURL:      u.URL(),
		StationsPath: "/stations",
		BookingPath:  "/stations/%station-id%/bookings/%booking-id%",
		Timeout:      5 * time.Second,
	}, nil)
}

func TestFetchStations(t *testing.T) {
	upstream := testutil.NewUpstream(t, testStationsJSON)
	client := newTestClient(upstream)

	stationsList, err := client.FetchStations(context.Background())
	if err != nil {
		t.Fatalf("FetchStations: %v", err)
	}

	if len(stationsList) != 2 {
		t.Fatalf("expected 2 stations, got %d", len(stationsList))
	}
	for _, station := range stationsList {
		if station.ID == "7" {
			t.Error("known-bad station 7 should be filtered out")
		}
		if station.Location != station.Name {
			t.Errorf("station %s location = %q, want name %q", station.ID, station.Location, station.Name)
		}
		if station.BookingsCount != len(station.Bookings) {
			t.Errorf("station %s bookingsCount = %d, want %d", station.ID, station.BookingsCount, len(station.Bookings))
		}
	}
	if stationsList[0].BookingsCount != 2 {
		t.Errorf("Berlin bookingsCount = %d, want 2", stationsList[0].BookingsCount)
	}
}

func TestFetchStations_UpstreamError(t *testing.T) {
	upstream := testutil.NewUpstream(t, testStationsJSON)
	upstream.StationsStatus = 502
	client := newTestClient(upstream)

	_, err := client.FetchStations(context.Background())
	if err == nil {
		t.Fatal("expected an error for upstream 502")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %T: %v", err, err)
	}
	if fetchErr.Resource != "stations" || fetchErr.Status != 502 {
		t.Errorf("unexpected fetch error: %+v", fetchErr)
	}
}

func TestFetchBooking_DirectSuccess(t *testing.T) {
	upstream := testutil.NewUpstream(t, testStationsJSON)
	upstream.Bookings["1/b1"] = `{"id": "b1", "pickupReturnStationId": "1", "customerName": "Kera", "startDate": "2024-03-25T09:00:00.000Z", "endDate": "2024-03-28T09:00:00.000Z"}`
	client := newTestClient(upstream)

	booking, err := client.FetchBooking(context.Background(), "1", "b1")
	if err != nil {
		t.Fatalf("FetchBooking: %v", err)
	}
	if booking == nil || booking.ID != "b1" || booking.CustomerName != "Kera" {
		t.Fatalf("unexpected booking: %+v", booking)
	}

	if upstream.StationsCalls() != 0 {
		t.Errorf("direct success must not trigger the station list fallback, got %d list calls", upstream.StationsCalls())
	}
}

func TestFetchBooking_Direct404SkipsFallback(t *testing.T) {
	upstream := testutil.NewUpstream(t, testStationsJSON)
	client := newTestClient(upstream)

	_, err := client.FetchBooking(context.Background(), "1", "missing")
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}

	if upstream.StationsCalls() != 0 {
		t.Errorf("a clean 404 must not trigger the fallback, got %d list calls", upstream.StationsCalls())
	}
}

func TestFetchBooking_FallbackFindsBooking(t *testing.T) {
	upstream := testutil.NewUpstream(t, testStationsJSON)
	upstream.BookingStatus = 500
	client := newTestClient(upstream)

	booking, err := client.FetchBooking(context.Background(), "1", "b2")
	if err != nil {
		t.Fatalf("FetchBooking via fallback: %v", err)
	}
	if booking == nil || booking.ID != "b2" || booking.CustomerName != "Elias" {
		t.Fatalf("unexpected booking from fallback: %+v", booking)
	}

	if upstream.BookingCalls() != 1 {
		t.Errorf("expected exactly one direct attempt, got %d", upstream.BookingCalls())
	}
	if upstream.StationsCalls() != 1 {
		t.Errorf("expected exactly one fallback list fetch, got %d", upstream.StationsCalls())
	}
}

func TestFetchBooking_FallbackMiss(t *testing.T) {
	upstream := testutil.NewUpstream(t, testStationsJSON)
	upstream.BookingStatus = 500
	client := newTestClient(upstream)

	_, err := client.FetchBooking(context.Background(), "1", "nope")
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound after fallback miss, got %v", err)
	}
}

func TestFetchBooking_UnknownStation(t *testing.T) {
	upstream := testutil.NewUpstream(t, testStationsJSON)
	upstream.BookingStatus = 500
	client := newTestClient(upstream)

	_, err := client.FetchBooking(context.Background(), "99", "b1")
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound for unknown station, got %v", err)
	}
}

func TestFetchBooking_TransportFailure(t *testing.T) {
	upstream := testutil.NewUpstream(t, testStationsJSON)
	client := newTestClient(upstream)
	upstream.Server.Close()

	_, err := client.FetchBooking(context.Background(), "1", "b1")
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound when upstream is unreachable, got %v", err)
	}
}
