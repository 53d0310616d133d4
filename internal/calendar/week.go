// internal/calendar/week.go
package calendar

import (
	"fmt"
	"time"

	"github.com/lookacat/RoadsurferCodingChallenge/internal/stations"
)

// yearSpread is how many years before and after the present year the year
// picker offers.
const yearSpread = 2

// WeekOption is one selectable week in the calendar navigation.
type WeekOption struct {
	Label         string    `json:"label"`
	Value         string    `json:"value"`
	WeekStartDate time.Time `json:"weekStartDate"`
	EventCount    int       `json:"eventCount"`
}

// WeekStart returns the Monday at the start of the week containing t,
// truncated to midnight.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return midnight(t).AddDate(0, 0, -offset)
}

// WeekOptionsForYear builds one option per Monday-started week overlapping
// the given year, each annotated with the number of booking start/end events
// inside that week.
func WeekOptionsForYear(year int, bookings []stations.Booking) []WeekOption {
	lastDay := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	var options []WeekOption
	for start := WeekStart(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)); !start.After(lastDay); start = start.AddDate(0, 0, 7) {
		count := countWeekEvents(start, bookings)
		value := weekRangeLabel(start)
		options = append(options, WeekOption{
			Label:         fmt.Sprintf("%s (%d events)", value, count),
			Value:         value,
			WeekStartDate: start,
			EventCount:    count,
		})
	}
	return options
}

// countWeekEvents counts booking start and end dates that fall inside the
// week beginning at weekStart. A booking starting and ending in the same week
// counts twice, matching the day buckets it would occupy.
func countWeekEvents(weekStart time.Time, bookings []stations.Booking) int {
	weekEnd := weekStart.AddDate(0, 0, 7)
	count := 0
	for _, booking := range bookings {
		if inWeek(booking.StartDate, weekStart, weekEnd) {
			count++
		}
		if inWeek(booking.EndDate, weekStart, weekEnd) {
			count++
		}
	}
	return count
}

// inWeek compares calendar dates only, so time-of-day and zone offsets in
// booking timestamps never shift a booking across a week boundary.
func inWeek(t, weekStart, weekEnd time.Time) bool {
	day := dateOnly(t)
	return !day.Before(dateOnly(weekStart)) && day.Before(dateOnly(weekEnd))
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// weekRangeLabel renders a week span like "Mar 25 - 31, 2024",
// "Mar 30 - Apr 5, 2025" or "Dec 30, 2024 - Jan 5, 2025".
func weekRangeLabel(weekStart time.Time) string {
	weekEnd := weekStart.AddDate(0, 0, 6)
	switch {
	case weekStart.Year() != weekEnd.Year():
		return fmt.Sprintf("%s - %s", weekStart.Format("Jan 2, 2006"), weekEnd.Format("Jan 2, 2006"))
	case weekStart.Month() != weekEnd.Month():
		return fmt.Sprintf("%s - %s, %d", weekStart.Format("Jan 2"), weekEnd.Format("Jan 2"), weekStart.Year())
	default:
		return fmt.Sprintf("%s - %d, %d", weekStart.Format("Jan 2"), weekEnd.Day(), weekStart.Year())
	}
}

// Navigation is the week/year navigation model. It is synchronous and pure
// with respect to the booking set it was last built against; year changes
// take the (possibly different) booking set as an argument and rebuild the
// week options.
type Navigation struct {
	CurrentYear    int
	AvailableYears []int
	WeekOptions    []WeekOption

	selected int
}

// NewNavigation builds the navigation model for the present year, with the
// week containing today preselected. The available-years range is anchored to
// the present at construction time.
func NewNavigation(bookings []stations.Booking, clock Clock) *Navigation {
	if clock == nil {
		clock = RealClock{}
	}
	now := clock.Now()

	years := make([]int, 0, 2*yearSpread+1)
	for year := now.Year() - yearSpread; year <= now.Year()+yearSpread; year++ {
		years = append(years, year)
	}

	nav := &Navigation{
		CurrentYear:    now.Year(),
		AvailableYears: years,
		WeekOptions:    WeekOptionsForYear(now.Year(), bookings),
	}
	nav.SelectWeekContaining(now)
	return nav
}

// Selected returns the currently selected week option.
func (n *Navigation) Selected() (WeekOption, bool) {
	if len(n.WeekOptions) == 0 {
		return WeekOption{}, false
	}
	return n.WeekOptions[n.selected], true
}

// WeekRangeText is the human label of the active week's span, without the
// event count.
func (n *Navigation) WeekRangeText() string {
	selected, ok := n.Selected()
	if !ok {
		return ""
	}
	return selected.Value
}

// SelectWeek selects the option with the given value. Unknown values leave
// the selection unchanged.
func (n *Navigation) SelectWeek(value string) bool {
	for i, option := range n.WeekOptions {
		if option.Value == value {
			n.selected = i
			return true
		}
	}
	return false
}

// SelectWeekContaining selects the week option whose span contains the given
// date, falling back to the first option when the date is outside the year.
func (n *Navigation) SelectWeekContaining(date time.Time) bool {
	target := WeekStart(date)
	for i, option := range n.WeekOptions {
		if SameDay(option.WeekStartDate, target) {
			n.selected = i
			return true
		}
	}
	n.selected = 0
	return false
}

// PreviousWeek moves the selection one week back, clamped at the first week
// of the year. Wrapping into the previous year is deliberately not done; use
// PreviousYear instead.
func (n *Navigation) PreviousWeek() {
	if n.selected > 0 {
		n.selected--
	}
}

// NextWeek moves the selection one week forward, clamped at the last week of
// the year.
func (n *Navigation) NextWeek() {
	if n.selected < len(n.WeekOptions)-1 {
		n.selected++
	}
}

// PreviousYear shifts to the prior year and rebuilds the week options against
// the given booking set.
func (n *Navigation) PreviousYear(bookings []stations.Booking) {
	n.SetYear(n.CurrentYear-1, bookings)
}

// NextYear shifts to the following year and rebuilds the week options
// against the given booking set.
func (n *Navigation) NextYear(bookings []stations.Booking) {
	n.SetYear(n.CurrentYear+1, bookings)
}

// SetYear switches the model to the given year, keeping the selection at the
// same position in the new year's week list where possible.
func (n *Navigation) SetYear(year int, bookings []stations.Booking) {
	n.CurrentYear = year
	n.WeekOptions = WeekOptionsForYear(year, bookings)
	if n.selected >= len(n.WeekOptions) {
		n.selected = len(n.WeekOptions) - 1
	}
	if n.selected < 0 {
		n.selected = 0
	}
}
