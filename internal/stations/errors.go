// internal/stations/errors.go
package stations

import (
	"errors"
	"fmt"
)

var (
	// ErrBookingNotFound is returned when a booking cannot be located, either
	// because the upstream answered 404 or because the station-list fallback
	// came up empty. Callers cannot and should not distinguish the two.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrStationNotFound is returned when a station id is not present in the
	// current station list.
	ErrStationNotFound = errors.New("station not found")
)

// FetchError wraps an upstream failure (transport error or unexpected HTTP
// status) with the resource that was being fetched.
type FetchError struct {
	Resource string
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to fetch %s: unexpected status %d", e.Resource, e.Status)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
