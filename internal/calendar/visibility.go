// internal/calendar/visibility.go
package calendar

const (
	maxVisibleMobile  = 3
	maxVisibleDesktop = 2
)

// Visibility describes how many booking chips a day cell shows inline and
// how many are folded into a "+N more" summary.
type Visibility struct {
	MaxVisible int          `json:"maxVisible"`
	Visible    []DayBooking `json:"visible"`
	HasMore    bool         `json:"hasMore"`
	Remaining  int          `json:"remaining"`
}

// ComputeVisibility decides which prefix of a day's bookings is shown inline
// for the given device class. Mobile cells stack vertically and fit three
// chips; desktop cells fit two. The input slice is not copied or mutated and
// identical inputs always produce identical results.
func ComputeVisibility(bookings []DayBooking, isMobile bool) Visibility {
	maxVisible := maxVisibleDesktop
	if isMobile {
		maxVisible = maxVisibleMobile
	}

	visible := bookings
	if len(bookings) > maxVisible {
		visible = bookings[:maxVisible]
	}

	remaining := 0
	if len(bookings) > maxVisible {
		remaining = len(bookings) - maxVisible
	}

	return Visibility{
		MaxVisible: maxVisible,
		Visible:    visible,
		HasMore:    remaining > 0,
		Remaining:  remaining,
	}
}
