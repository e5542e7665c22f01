package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/citytransit-view/internal/common/logger"
)

// SnapshotPruner deletes recorded snapshots older than a cutoff
type SnapshotPruner interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// CleanupResult represents the result of a cleanup operation
type CleanupResult struct {
	Cutoff         time.Time
	RecordsDeleted int64
	Duration       time.Duration
}

// Maintenance handles snapshot retention
type Maintenance struct {
	pruner SnapshotPruner
	logger logger.Logger
	now    func() time.Time
}

// New creates a new Maintenance instance
func New(pruner SnapshotPruner, logger logger.Logger) *Maintenance {
	return &Maintenance{
		pruner: pruner,
		logger: logger,
		now:    time.Now,
	}
}

// CleanupOldSnapshots removes snapshots recorded more than retention ago
func (m *Maintenance) CleanupOldSnapshots(ctx context.Context, retention time.Duration) (CleanupResult, error) {
	if retention <= 0 {
		return CleanupResult{}, fmt.Errorf("retention must be positive, got %v", retention)
	}

	start := m.now()
	cutoff := start.Add(-retention)

	m.logger.Debug("Starting snapshot cleanup", "cutoff", cutoff)

	deleted, err := m.pruner.DeleteBefore(ctx, cutoff)
	if err != nil {
		return CleanupResult{Cutoff: cutoff}, fmt.Errorf("pruning snapshots: %w", err)
	}

	result := CleanupResult{
		Cutoff:         cutoff,
		RecordsDeleted: deleted,
		Duration:       m.now().Sub(start),
	}

	m.logger.Info("Snapshot cleanup completed",
		"records_deleted", result.RecordsDeleted,
		"cutoff", result.Cutoff,
		"duration", result.Duration)

	return result, nil
}
