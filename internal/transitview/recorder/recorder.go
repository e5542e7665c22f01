package recorder

import (
	"context"
	"time"

	"github.com/citytransit-view/internal/common/db"
	"github.com/citytransit-view/internal/common/logger"
	"github.com/citytransit-view/internal/transitview/feed"
)

const insertTimeout = 5 * time.Second

type Inserter interface {
	Insert(ctx context.Context, row db.SnapshotRow) error
}

// Recorder writes every applied tick to the snapshot table
type Recorder struct {
	inserter Inserter
	logger   logger.Logger
}

func New(inserter Inserter, log logger.Logger) *Recorder {
	return &Recorder{
		inserter: inserter,
		logger:   log,
	}
}

func (r *Recorder) Hook() feed.TickHook {
	return r.Record
}

// Record stores tick. Failures are logged and never stop the feed.
func (r *Recorder) Record(ctx context.Context, tick feed.Tick) {
	ctx, cancel := context.WithTimeout(ctx, insertTimeout)
	defer cancel()

	err := r.inserter.Insert(ctx, db.SnapshotRow{
		Tick:         tick.Seq,
		RecordedAt:   tick.At,
		OnlineCount:  tick.Counts.Online,
		DelayedCount: tick.Counts.Delayed,
		OfflineCount: tick.Counts.Offline,
		Vehicles:     tick.Current,
	})
	if err != nil {
		r.logger.Error("Failed to record tick snapshot", "tick", tick.Seq, "error", err)
	}
}
