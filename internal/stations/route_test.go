package stations

import "testing"

func TestParseRoute(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     RouteInfo
	}{
		{
			name:     "no segments is the stations list",
			segments: nil,
			want:     RouteInfo{IsStationsList: true},
		},
		{
			name:     "empty slice is the stations list",
			segments: []string{},
			want:     RouteInfo{IsStationsList: true},
		},
		{
			name:     "station booking path",
			segments: []string{"s1", "bookings", "b1"},
			want:     RouteInfo{IsBookingRequest: true, StationID: "s1", BookingID: "b1"},
		},
		{
			name:     "two segments match nothing",
			segments: []string{"x", "y"},
			want:     RouteInfo{},
		},
		{
			name:     "three segments without bookings keyword match nothing",
			segments: []string{"s1", "reservations", "b1"},
			want:     RouteInfo{},
		},
		{
			name:     "four segments match nothing",
			segments: []string{"s1", "bookings", "b1", "extra"},
			want:     RouteInfo{},
		},
		{
			name:     "single segment matches nothing",
			segments: []string{"s1"},
			want:     RouteInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRoute(tt.segments)
			if got != tt.want {
				t.Errorf("ParseRoute(%v) = %+v, want %+v", tt.segments, got, tt.want)
			}
		})
	}
}
