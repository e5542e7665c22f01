package maintenance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/citytransit-view/internal/common/logger"
)

type fakePruner struct {
	mu      sync.Mutex
	cutoffs []time.Time
	deleted int64
	err     error
}

func (f *fakePruner) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.deleted, f.err
}

func (f *fakePruner) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cutoffs)
}

func TestCleanupOldSnapshots(t *testing.T) {
	pruner := &fakePruner{deleted: 100}
	m := New(pruner, logger.Nop())
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	result, err := m.CleanupOldSnapshots(context.Background(), 24*time.Hour)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.RecordsDeleted != 100 {
		t.Errorf("Expected 100 records deleted, got %d", result.RecordsDeleted)
	}

	want := now.Add(-24 * time.Hour)
	if !result.Cutoff.Equal(want) || !pruner.cutoffs[0].Equal(want) {
		t.Errorf("Expected cutoff %v, got %v", want, result.Cutoff)
	}
}

func TestCleanupOldSnapshotsErrors(t *testing.T) {
	m := New(&fakePruner{err: errors.New("connection reset")}, logger.Nop())

	if _, err := m.CleanupOldSnapshots(context.Background(), time.Hour); err == nil {
		t.Error("Expected pruner error to be returned")
	}

	if _, err := m.CleanupOldSnapshots(context.Background(), 0); err == nil {
		t.Error("Expected error for zero retention")
	}
}

func TestCleanupSchedulerLifecycle(t *testing.T) {
	pruner := &fakePruner{}
	s := NewCleanupScheduler(pruner, logger.Nop(), SchedulerConfig{
		CleanupInterval: time.Hour,
		Retention:       time.Hour,
		InitialDelay:    time.Millisecond,
	})

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Unexpected start error: %v", err)
	}
	if err := s.Start(context.Background()); err == nil {
		t.Error("Expected error starting twice")
	}

	deadline := time.Now().Add(2 * time.Second)
	for pruner.calls() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if pruner.calls() != 1 {
		t.Errorf("Expected initial cleanup to run once, got %d", pruner.calls())
	}

	s.Stop()
	if s.IsRunning() {
		t.Error("Expected scheduler to be stopped")
	}
	s.Stop()
}

func TestCleanupSchedulerRejectsBadConfig(t *testing.T) {
	cfg := DefaultSchedulerConfig()
	cfg.Retention = 0
	s := NewCleanupScheduler(&fakePruner{}, logger.Nop(), cfg)

	if err := s.Start(context.Background()); err == nil {
		t.Error("Expected error for zero retention")
	}
	if s.IsRunning() {
		t.Error("Expected scheduler not to be running")
	}
}
