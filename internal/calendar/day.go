// internal/calendar/day.go
package calendar

import (
	"time"

	"github.com/lookacat/RoadsurferCodingChallenge/internal/stations"
)

// EventType marks whether a booking touches a day as its start or its end.
type EventType string

const (
	EventStart EventType = "start"
	EventEnd   EventType = "end"
)

// DayBooking is a booking projected onto a single calendar day. A booking
// produces one entry on its start day and one on its end day; when both fall
// on the same day it produces two entries, one per event type.
type DayBooking struct {
	ID           string    `json:"id"`
	EventType    EventType `json:"eventType"`
	DisplayText  string    `json:"displayText"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	CustomerName string    `json:"customerName"`
}

// DayData is one calendar cell: a date plus the booking events on it.
type DayData struct {
	Date      time.Time    `json:"date"`
	DayName   string       `json:"dayName"`
	DayNumber int          `json:"dayNumber"`
	Bookings  []DayBooking `json:"bookings"`
}

// WeekDays returns the seven consecutive days starting at weekStart.
func WeekDays(weekStart time.Time) []time.Time {
	start := midnight(weekStart)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// BuildDays buckets the booking list into per-day view models over the given
// contiguous day range. Matching uses calendar-date equality, so the
// time-of-day stored in the booking timestamps never matters. Entries within
// a day keep the original booking-list order; a booking that starts and ends
// on the same day contributes two entries, the start event first. Inputs are
// never mutated.
func BuildDays(days []time.Time, bookings []stations.Booking) []DayData {
	result := make([]DayData, 0, len(days))
	for _, day := range days {
		var dayBookings []DayBooking
		for _, booking := range bookings {
			if SameDay(booking.StartDate, day) {
				dayBookings = append(dayBookings, newDayBooking(booking, EventStart))
			}
			if SameDay(booking.EndDate, day) {
				dayBookings = append(dayBookings, newDayBooking(booking, EventEnd))
			}
		}

		result = append(result, DayData{
			Date:      day,
			DayName:   day.Format("Mon"),
			DayNumber: day.Day(),
			Bookings:  dayBookings,
		})
	}
	return result
}

func newDayBooking(booking stations.Booking, eventType EventType) DayBooking {
	verb := "started"
	if eventType == EventEnd {
		verb = "ended"
	}
	return DayBooking{
		ID:           booking.ID,
		EventType:    eventType,
		DisplayText:  booking.CustomerName + " " + verb,
		StartDate:    booking.StartDate,
		EndDate:      booking.EndDate,
		CustomerName: booking.CustomerName,
	}
}
