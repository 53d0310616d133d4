// internal/stations/store.go
package stations

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Snapshot is an immutable view of the station list at a point in time.
// Snapshots are replaced wholesale on refresh, never patched in place.
type Snapshot struct {
	Stations  []Station
	FetchedAt time.Time
}

// Store holds the in-memory station snapshot for the running process. Reads
// vastly outnumber writes; the only write is the wholesale replacement in
// Refresh.
type Store struct {
	client *Client

	mu   sync.RWMutex
	snap Snapshot
}

func NewStore(client *Client) *Store {
	return &Store{client: client}
}

// Refresh fetches the station list from the upstream and replaces the current
// snapshot. On failure the previous snapshot is kept untouched.
func (s *Store) Refresh(ctx context.Context) ([]Station, error) {
	stationsList, err := s.client.FetchStations(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.snap = Snapshot{Stations: stationsList, FetchedAt: time.Now()}
	s.mu.Unlock()

	log.Debug().Int("stations", len(stationsList)).Msg("Station snapshot refreshed")
	return stationsList, nil
}

// Snapshot returns the current snapshot. The zero snapshot (no stations,
// zero FetchedAt) means no refresh has succeeded yet.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Station looks up a station by id in the current snapshot, refreshing first
// if no snapshot has been taken yet.
func (s *Store) Station(ctx context.Context, id string) (Station, error) {
	snap := s.Snapshot()
	if snap.FetchedAt.IsZero() {
		if _, err := s.Refresh(ctx); err != nil {
			return Station{}, err
		}
		snap = s.Snapshot()
	}

	for _, station := range snap.Stations {
		if station.ID == id {
			return station, nil
		}
	}
	return Station{}, ErrStationNotFound
}

// StationNames returns the slim id/name/location projection of the current
// snapshot, in snapshot order.
func (s *Store) StationNames() []StationName {
	snap := s.Snapshot()
	names := make([]StationName, 0, len(snap.Stations))
	for _, station := range snap.Stations {
		names = append(names, StationName{
			ID:       station.ID,
			Name:     station.Name,
			Location: station.Location,
		})
	}
	return names
}

// Filter returns the stations whose name or location contains the search
// term, case-insensitively. An empty term returns the full snapshot.
func (s *Store) Filter(term string) []Station {
	snap := s.Snapshot()
	if term == "" {
		return snap.Stations
	}

	lower := strings.ToLower(term)
	var matched []Station
	for _, station := range snap.Stations {
		if strings.Contains(strings.ToLower(station.Name), lower) ||
			strings.Contains(strings.ToLower(station.Location), lower) {
			matched = append(matched, station)
		}
	}
	return matched
}
