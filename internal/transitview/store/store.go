package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/citytransit-view/internal/transitview/seed"
	"github.com/citytransit-view/pkg/transit/models"
)

// Mode is the active display mode of the view
type Mode string

const (
	ModeMap  Mode = "map"
	ModeList Mode = "list"
)

var (
	ErrUnknownMode       = errors.New("unknown view mode")
	ErrUnknownStop       = errors.New("unknown stop")
	ErrVehicleSetChanged = errors.New("vehicle set changed")
)

// ParseMode accepts "map" or "list" in any case
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeMap:
		return ModeMap, nil
	case ModeList:
		return ModeList, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Snapshot is a consistent copy of the store's state
type Snapshot struct {
	Vehicles       []models.Vehicle
	Query          string
	Mode           Mode
	SelectedStopID string // empty when nothing is selected
	LastUpdated    time.Time
	Tick           uint64
}

// Store holds the view state. The vehicle collection is only ever replaced
// as a whole batch, so readers never observe a partially updated set.
type Store struct {
	mu          sync.RWMutex
	vehicles    []models.Vehicle
	stops       []models.Stop
	stopIndex   map[string]int
	query       string
	mode        Mode
	selected    string
	lastUpdated time.Time
	tick        uint64
}

// New seeds a store from doc. The document is copied; later changes to it
// do not leak into the store.
func New(doc seed.Document, now time.Time) *Store {
	s := &Store{
		vehicles:    models.CloneVehicles(doc.Vehicles),
		stops:       models.CloneStops(doc.Stops),
		stopIndex:   make(map[string]int, len(doc.Stops)),
		mode:        ModeMap,
		lastUpdated: now,
	}
	if s.vehicles == nil {
		s.vehicles = []models.Vehicle{}
	}
	for i, stop := range s.stops {
		s.stopIndex[stop.ID] = i
	}
	return s
}

func (s *Store) Vehicles() []models.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneVehicles(s.vehicles)
}

func (s *Store) Vehicle(id string) (models.Vehicle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return models.Vehicle{}, false
}

func (s *Store) Stops() []models.Stop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneStops(s.stops)
}

func (s *Store) Stop(id string) (models.Stop, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stopLocked(id)
}

func (s *Store) stopLocked(id string) (models.Stop, bool) {
	i, ok := s.stopIndex[id]
	if !ok {
		return models.Stop{}, false
	}
	return models.CloneStops(s.stops[i : i+1])[0], true
}

// Apply replaces the vehicle collection with next(current) in one step and
// returns the previous batch, the new batch and the new tick number. The
// result must describe the same vehicles in the same order.
func (s *Store) Apply(next func(current []models.Vehicle) []models.Vehicle, at time.Time) (prev, cur []models.Vehicle, tick uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev = s.vehicles
	cur = next(models.CloneVehicles(prev))
	if err := sameVehicleSet(prev, cur); err != nil {
		return nil, nil, s.tick, err
	}

	s.vehicles = cur
	s.lastUpdated = at
	s.tick++
	return models.CloneVehicles(prev), models.CloneVehicles(cur), s.tick, nil
}

func sameVehicleSet(prev, cur []models.Vehicle) error {
	if len(prev) != len(cur) {
		return fmt.Errorf("%w: %d vehicles became %d", ErrVehicleSetChanged, len(prev), len(cur))
	}
	for i := range prev {
		if prev[i].ID != cur[i].ID {
			return fmt.Errorf("%w: position %d holds %q, want %q", ErrVehicleSetChanged, i, cur[i].ID, prev[i].ID)
		}
	}
	return nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Vehicles:       models.CloneVehicles(s.vehicles),
		Query:          s.query,
		Mode:           s.mode,
		SelectedStopID: s.selected,
		LastUpdated:    s.lastUpdated,
		Tick:           s.tick,
	}
}

func (s *Store) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
}

func (s *Store) SetMode(mode Mode) error {
	if mode != ModeMap && mode != ModeList {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	return nil
}

// SelectStop selects a seeded stop by id
func (s *Store) SelectStop(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stopIndex[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStop, id)
	}
	s.selected = id
	return nil
}

func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
}

// SelectedStop returns the selected stop, if any
func (s *Store) SelectedStop() (models.Stop, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == "" {
		return models.Stop{}, false
	}
	return s.stopLocked(s.selected)
}

// BoardStop is the stop whose arrivals are on display: the selection, or
// the first seeded stop when nothing is selected.
func (s *Store) BoardStop() (models.Stop, bool) {
	if stop, ok := s.SelectedStop(); ok {
		return stop, true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.stops) == 0 {
		return models.Stop{}, false
	}
	return s.stopLocked(s.stops[0].ID)
}
