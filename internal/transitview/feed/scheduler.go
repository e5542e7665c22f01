package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/citytransit-view/internal/common/logger"
	"github.com/citytransit-view/internal/transitview/derive"
	"github.com/citytransit-view/internal/transitview/store"
	"github.com/citytransit-view/pkg/transit/models"
)

var (
	ErrAlreadyStarted = errors.New("feed scheduler already started")
	ErrStopped        = errors.New("feed scheduler stopped")
)

// Tick describes one applied update
type Tick struct {
	Seq      uint64
	At       time.Time
	Previous []models.Vehicle
	Current  []models.Vehicle
	Counts   derive.StatusCounts
}

// TickHook observes applied ticks. Hooks run on the scheduler goroutine in
// registration order and must not block for long.
type TickHook func(ctx context.Context, tick Tick)

type Config struct {
	Interval time.Duration
	Policy   Policy
}

type Option func(*Scheduler)

func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

func WithRandomSource(r RandomSource) Option {
	return func(s *Scheduler) { s.rng = r }
}

func WithHook(h TickHook) Option {
	return func(s *Scheduler) { s.hooks = append(s.hooks, h) }
}

// Scheduler owns the periodic update task. It can be started once and
// stopped once; Stop returns only after the loop has exited.
type Scheduler struct {
	store  *store.Store
	config Config
	clock  Clock
	rng    RandomSource
	hooks  []TickHook
	logger logger.Logger

	stepMu sync.Mutex
	halted atomic.Bool

	mu       sync.Mutex
	started  bool
	stopped  bool
	cancelFn context.CancelFunc
	done     chan struct{}
}

func NewScheduler(st *store.Store, cfg Config, log logger.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:  st,
		config: cfg,
		clock:  RealClock(),
		logger: log,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRandomSource(0)
	}
	return s
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrStopped
	}
	if s.started {
		return ErrAlreadyStarted
	}
	if s.config.Interval <= 0 {
		return fmt.Errorf("update interval must be positive, got %v", s.config.Interval)
	}

	ctx, cancel := context.WithCancel(ctx)
	ticker := s.clock.NewTicker(s.config.Interval)
	s.cancelFn = cancel
	s.done = make(chan struct{})
	s.started = true

	s.logger.Info("Starting simulated feed", "interval", s.config.Interval)

	go s.loop(ctx, ticker)

	return nil
}

// Stop cancels the loop and waits for it to exit. Calling it more than
// once, or before Start, is harmless.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	s.halted.Store(true)

	if s.started {
		s.logger.Info("Stopping simulated feed")
		s.cancelFn()
		<-s.done
		s.logger.Info("Simulated feed stopped")
	}

	// wait out a manual Step that was already applying
	s.stepMu.Lock()
	s.stepMu.Unlock()
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started && !s.stopped
}

func (s *Scheduler) loop(ctx context.Context, ticker Ticker) {
	defer close(s.done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if ctx.Err() != nil {
				return
			}
			if _, err := s.Step(ctx); err != nil {
				if errors.Is(err, ErrStopped) {
					return
				}
				s.logger.Error("Feed update failed", "error", err)
			}
		}
	}
}

// Step applies one update immediately and runs the tick hooks. It returns
// ErrStopped once Stop has been called.
func (s *Scheduler) Step(ctx context.Context) (Tick, error) {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()

	if s.halted.Load() {
		return Tick{}, ErrStopped
	}

	at := s.clock.Now()
	prev, cur, seq, err := s.store.Apply(func(current []models.Vehicle) []models.Vehicle {
		return Advance(current, s.rng, s.config.Policy)
	}, at)
	if err != nil {
		return Tick{}, fmt.Errorf("applying tick: %w", err)
	}

	tick := Tick{
		Seq:      seq,
		At:       at,
		Previous: prev,
		Current:  cur,
		Counts:   derive.CountStatuses(cur),
	}

	s.logger.Debug("Feed tick applied",
		"tick", seq,
		"online", tick.Counts.Online,
		"delayed", tick.Counts.Delayed,
		"offline", tick.Counts.Offline)

	for _, h := range s.hooks {
		h(ctx, tick)
	}

	return tick, nil
}
