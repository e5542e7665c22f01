package recorder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/citytransit-view/internal/common/db"
	"github.com/citytransit-view/internal/common/logger"
	"github.com/citytransit-view/internal/transitview/derive"
	"github.com/citytransit-view/internal/transitview/feed"
	"github.com/citytransit-view/internal/transitview/seed"
	"github.com/citytransit-view/pkg/transit/models"
	"github.com/matryer/is"
)

type fakeInserter struct {
	rows []db.SnapshotRow
	err  error
}

func (f *fakeInserter) Insert(ctx context.Context, row db.SnapshotRow) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("expected a deadline")
	}
	f.rows = append(f.rows, row)
	return f.err
}

func TestRecordMapsTick(t *testing.T) {
	is := is.New(t)
	ins := &fakeInserter{}
	vehicles := seed.Sample().Vehicles
	at := time.Date(2026, 10, 16, 8, 0, 30, 0, time.UTC)

	New(ins, logger.Nop()).Hook()(context.Background(), feed.Tick{
		Seq:     4,
		At:      at,
		Current: vehicles,
		Counts:  derive.CountStatuses(vehicles),
	})

	is.Equal(len(ins.rows), 1)
	row := ins.rows[0]
	is.Equal(row.Tick, uint64(4))
	is.Equal(row.RecordedAt, at)
	is.Equal(row.OnlineCount, 2)
	is.Equal(row.DelayedCount, 1)
	is.Equal(row.OfflineCount, 0)
	is.Equal(len(row.Vehicles.([]models.Vehicle)), 3)
}

func TestRecordSwallowsErrors(t *testing.T) {
	ins := &fakeInserter{err: errors.New("db down")}
	New(ins, logger.Nop()).Record(context.Background(), feed.Tick{Seq: 1})
	if len(ins.rows) != 1 {
		t.Errorf("Expected one insert attempt, got %d", len(ins.rows))
	}
}
