package calendar

import (
	"fmt"
	"reflect"
	"testing"
)

func makeDayBookings(n int) []DayBooking {
	bookings := make([]DayBooking, n)
	for i := range bookings {
		bookings[i] = DayBooking{ID: fmt.Sprintf("b%d", i+1), EventType: EventStart}
	}
	return bookings
}

func TestComputeVisibility(t *testing.T) {
	tests := []struct {
		total         int
		isMobile      bool
		wantVisible   int
		wantHasMore   bool
		wantRemaining int
	}{
		{0, false, 0, false, 0},
		{1, false, 1, false, 0},
		{2, false, 2, false, 0},
		{3, false, 2, true, 1},
		{5, false, 2, true, 3},
		{2, true, 2, false, 0},
		{3, true, 3, false, 0},
		{4, true, 3, true, 1},
		{10, true, 3, true, 7},
	}

	for _, tt := range tests {
		name := fmt.Sprintf("%d bookings mobile=%v", tt.total, tt.isMobile)
		t.Run(name, func(t *testing.T) {
			bookings := makeDayBookings(tt.total)
			result := ComputeVisibility(bookings, tt.isMobile)

			wantMax := 2
			if tt.isMobile {
				wantMax = 3
			}
			if result.MaxVisible != wantMax {
				t.Errorf("MaxVisible = %d, want %d", result.MaxVisible, wantMax)
			}
			if len(result.Visible) != tt.wantVisible {
				t.Errorf("len(Visible) = %d, want %d", len(result.Visible), tt.wantVisible)
			}
			if result.HasMore != tt.wantHasMore {
				t.Errorf("HasMore = %v, want %v", result.HasMore, tt.wantHasMore)
			}
			if result.Remaining != tt.wantRemaining {
				t.Errorf("Remaining = %d, want %d", result.Remaining, tt.wantRemaining)
			}

			// Visible is always the prefix of the input.
			for i, entry := range result.Visible {
				if entry.ID != bookings[i].ID {
					t.Errorf("Visible[%d] = %s, want %s", i, entry.ID, bookings[i].ID)
				}
			}
		})
	}
}

func TestComputeVisibility_Stable(t *testing.T) {
	bookings := makeDayBookings(5)
	first := ComputeVisibility(bookings, false)
	second := ComputeVisibility(bookings, false)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must produce identical results")
	}
	if len(bookings) != 5 {
		t.Error("input was mutated")
	}
}
