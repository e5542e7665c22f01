package maintenance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/citytransit-view/internal/common/logger"
)

// CleanupScheduler handles periodic snapshot retention
type CleanupScheduler struct {
	maintenance *Maintenance
	logger      logger.Logger
	config      SchedulerConfig
	isRunning   bool
	mu          sync.RWMutex
	cancelFn    context.CancelFunc
	done        chan struct{}
}

// SchedulerConfig contains configuration for the cleanup scheduler
type SchedulerConfig struct {
	CleanupInterval time.Duration // How often to prune snapshots
	Retention       time.Duration // How long to keep snapshots
	InitialDelay    time.Duration // Wait before the first cleanup
}

// DefaultSchedulerConfig returns hourly cleanup with a one day retention
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		CleanupInterval: time.Hour,
		Retention:       24 * time.Hour,
		InitialDelay:    time.Minute,
	}
}

// NewCleanupScheduler creates a new cleanup scheduler
func NewCleanupScheduler(pruner SnapshotPruner, logger logger.Logger, config SchedulerConfig) *CleanupScheduler {
	return &CleanupScheduler{
		maintenance: New(pruner, logger),
		logger:      logger,
		config:      config,
	}
}

// Start begins the cleanup scheduling
func (s *CleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cleanup scheduler is already running")
	}
	if s.config.CleanupInterval <= 0 || s.config.Retention <= 0 {
		return fmt.Errorf("cleanup interval and retention must be positive")
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancelFn = cancel
	s.done = make(chan struct{})
	s.isRunning = true

	s.logger.Info("Starting cleanup scheduler",
		"interval", s.config.CleanupInterval,
		"retention", s.config.Retention)

	go s.cleanupLoop(ctx)

	return nil
}

// Stop stops the cleanup scheduler and waits for the loop to exit
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	s.logger.Info("Stopping cleanup scheduler")

	s.cancelFn()
	<-s.done

	s.isRunning = false
	s.logger.Info("Cleanup scheduler stopped")
}

// IsRunning returns whether the scheduler is active
func (s *CleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *CleanupScheduler) cleanupLoop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.config.CleanupInterval)
	defer ticker.Stop()

	initialDelay := time.NewTimer(s.config.InitialDelay)
	defer initialDelay.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Snapshot cleanup loop stopping")
			return

		case <-initialDelay.C:
			s.performCleanup(ctx)

		case <-ticker.C:
			s.performCleanup(ctx)
		}
	}
}

func (s *CleanupScheduler) performCleanup(ctx context.Context) {
	if _, err := s.maintenance.CleanupOldSnapshots(ctx, s.config.Retention); err != nil {
		s.logger.Error("Snapshot cleanup failed", "error", err)
	}
}
