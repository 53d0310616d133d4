// internal/stations/route.go
package stations

// RouteInfo classifies a path under the stations namespace.
type RouteInfo struct {
	IsStationsList   bool
	IsBookingRequest bool
	StationID        string
	BookingID        string
}

// ParseRoute classifies a list of path segments into either a stations-list
// request (no segments) or a single-booking request
// ({stationId}/bookings/{bookingId}). Any other shape matches neither and
// must be treated as not found by the caller.
func ParseRoute(segments []string) RouteInfo {
	if len(segments) == 0 {
		return RouteInfo{IsStationsList: true}
	}

	if len(segments) == 3 && segments[1] == "bookings" {
		return RouteInfo{
			IsBookingRequest: true,
			StationID:        segments[0],
			BookingID:        segments[2],
		}
	}

	return RouteInfo{}
}
