// internal/stations/types.go
package stations

import "time"

// Booking is a reservation tied to a station. Bookings are immutable once
// fetched from the upstream API.
type Booking struct {
	ID                    string    `json:"id"`
	PickupReturnStationID string    `json:"pickupReturnStationId"`
	CustomerName          string    `json:"customerName"`
	StartDate             time.Time `json:"startDate"`
	EndDate               time.Time `json:"endDate"`
}

// ExternalStation is the station shape returned by the upstream API. It has
// no location field of its own.
type ExternalStation struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Bookings []Booking `json:"bookings"`
}

// Station is the internal station shape served to clients.
type Station struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	Bookings      []Booking `json:"bookings"`
	BookingsCount int       `json:"bookingsCount"`
}

// StationName is the slim projection used by pickers and search results.
type StationName struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// newStation maps an upstream station onto the internal shape. The upstream
// has no location field, so location defaults to the station name, and
// bookingsCount is derived from the booking list so the two never drift.
func newStation(ext ExternalStation) Station {
	return Station{
		ID:            ext.ID,
		Name:          ext.Name,
		Location:      ext.Name,
		Bookings:      ext.Bookings,
		BookingsCount: len(ext.Bookings),
	}
}
