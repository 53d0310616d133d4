package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// Upstream is a stub of the third-party station API for tests. It serves a
// fixed JSON station list on /stations and individual bookings on
// /stations/{sid}/bookings/{bid}, and counts requests per path shape so tests
// can assert whether the fallback path was taken.
type Upstream struct {
	Server *httptest.Server

	// StationsJSON is the raw body served on /stations.
	StationsJSON string
	// StationsStatus overrides the /stations status code when non-zero.
	StationsStatus int
	// Bookings maps "stationID/bookingID" to a raw JSON body.
	Bookings map[string]string
	// BookingStatus overrides the booking status code when non-zero.
	BookingStatus int

	stationsCalls atomic.Int64
	bookingCalls  atomic.Int64
}

// NewUpstream starts a stub upstream server. It is shut down automatically
// when the test finishes.
func NewUpstream(t *testing.T, stationsJSON string) *Upstream {
	t.Helper()

	u := &Upstream{
		StationsJSON: stationsJSON,
		Bookings:     map[string]string{},
	}
	u.Server = httptest.NewServer(http.HandlerFunc(u.handle))
	t.Cleanup(u.Server.Close)
	return u
}

// URL returns the stub's base URL.
func (u *Upstream) URL() string {
	return u.Server.URL
}

// StationsCalls reports how many times /stations was fetched.
func (u *Upstream) StationsCalls() int {
	return int(u.stationsCalls.Load())
}

// BookingCalls reports how many times a direct booking fetch was made.
func (u *Upstream) BookingCalls() int {
	return int(u.bookingCalls.Load())
}

func (u *Upstream) handle(w http.ResponseWriter, r *http.Request) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case len(segments) == 1 && segments[0] == "stations":
		u.stationsCalls.Add(1)
		if u.StationsStatus != 0 {
			w.WriteHeader(u.StationsStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(u.StationsJSON))
	case len(segments) == 4 && segments[0] == "stations" && segments[2] == "bookings":
		u.bookingCalls.Add(1)
		if u.BookingStatus != 0 {
			w.WriteHeader(u.BookingStatus)
			return
		}
		body, ok := u.Bookings[segments[1]+"/"+segments[3]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// MustJSON marshals a value for use in stub bodies.
func MustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return string(data)
}
