// Package transitview wires the state store, simulated feed and
// derivations into the single TransitView component.
package transitview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/citytransit-view/internal/common/logger"
	"github.com/citytransit-view/internal/transitview/derive"
	"github.com/citytransit-view/internal/transitview/feed"
	"github.com/citytransit-view/internal/transitview/seed"
	"github.com/citytransit-view/internal/transitview/store"
	"github.com/citytransit-view/pkg/transit/models"
)

// State is what the presentation layer renders
type State struct {
	Mode         store.Mode
	Query        string
	SelectedStop *models.Stop
	Vehicles     []models.Vehicle // visible under Query
	Total        int
	Counts       derive.StatusCounts
	LastUpdated  time.Time
	Tick         uint64
}

// Status summarises the whole fleet regardless of the search query
type Status struct {
	Counts      derive.StatusCounts
	Occupancy   derive.OccupancyCounts
	Vehicles    int
	LastUpdated time.Time
	Tick        uint64
}

// View owns the store and the feed scheduler for one session
type View struct {
	store     *store.Store
	scheduler *feed.Scheduler
	logger    logger.Logger

	mu        sync.RWMutex
	isRunning bool
}

// New validates doc and builds a view around it. The feed is not started.
func New(doc seed.Document, cfg feed.Config, log logger.Logger, opts ...feed.Option) (*View, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	st := store.New(doc, time.Now())
	return &View{
		store:     st,
		scheduler: feed.NewScheduler(st, cfg, log.With("component", "feed"), opts...),
		logger:    log,
	}, nil
}

func (v *View) Start(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.isRunning {
		return fmt.Errorf("transit view is already running")
	}

	if err := v.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("failed to start feed: %w", err)
	}

	v.isRunning = true
	v.logger.Info("Transit view started", "vehicles", len(v.store.Vehicles()), "stops", len(v.store.Stops()))

	return nil
}

// Stop tears down the feed. No vehicle state changes after it returns.
func (v *View) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.isRunning {
		v.scheduler.Stop()
		return
	}

	v.logger.Info("Stopping transit view")
	v.scheduler.Stop()
	v.isRunning = false
	v.logger.Info("Transit view stopped")
}

func (v *View) IsRunning() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.isRunning
}

// Step applies one feed update outside the periodic loop. It fails with
// feed.ErrStopped after Stop.
func (v *View) Step(ctx context.Context) (feed.Tick, error) {
	return v.scheduler.Step(ctx)
}

func (v *View) State() State {
	snap := v.store.Snapshot()
	state := State{
		Mode:        snap.Mode,
		Query:       snap.Query,
		Vehicles:    derive.VisibleVehicles(snap.Vehicles, snap.Query),
		Total:       len(snap.Vehicles),
		Counts:      derive.CountStatuses(snap.Vehicles),
		LastUpdated: snap.LastUpdated,
		Tick:        snap.Tick,
	}
	if snap.SelectedStopID != "" {
		if stop, ok := v.store.Stop(snap.SelectedStopID); ok {
			state.SelectedStop = &stop
		}
	}
	return state
}

func (v *View) Status() Status {
	snap := v.store.Snapshot()
	return Status{
		Counts:      derive.CountStatuses(snap.Vehicles),
		Occupancy:   derive.CountOccupancy(snap.Vehicles),
		Vehicles:    len(snap.Vehicles),
		LastUpdated: snap.LastUpdated,
		Tick:        snap.Tick,
	}
}

// Vehicles returns the vehicles matching query without touching the
// stored search query
func (v *View) Vehicles(query string) []models.Vehicle {
	return derive.VisibleVehicles(v.store.Vehicles(), query)
}

func (v *View) Vehicle(id string) (models.Vehicle, bool) {
	return v.store.Vehicle(id)
}

func (v *View) Stops() []models.Stop {
	return v.store.Stops()
}

func (v *View) Stop(id string) (models.Stop, bool) {
	return v.store.Stop(id)
}

func (v *View) StopArrivals(id string) ([]models.ArrivalPrediction, error) {
	stop, ok := v.store.Stop(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownStop, id)
	}
	return derive.StopArrivals(stop, v.store.Vehicles()), nil
}

// Board returns the arrival board for the selected stop, or for the first
// stop when nothing is selected
func (v *View) Board() (models.Stop, []models.ArrivalPrediction, bool) {
	stop, ok := v.store.BoardStop()
	if !ok {
		return models.Stop{}, nil, false
	}
	return stop, derive.StopArrivals(stop, v.store.Vehicles()), true
}

func (v *View) SetQuery(query string) {
	v.store.SetQuery(query)
}

func (v *View) SetMode(mode string) error {
	m, err := store.ParseMode(mode)
	if err != nil {
		return err
	}
	return v.store.SetMode(m)
}

func (v *View) SelectStop(id string) error {
	return v.store.SelectStop(id)
}

func (v *View) ClearSelection() {
	v.store.ClearSelection()
}
