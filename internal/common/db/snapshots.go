package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const snapshotSchema = `
CREATE SCHEMA IF NOT EXISTS transitview;
CREATE TABLE IF NOT EXISTS transitview.tick_snapshots (
	snapshot_id   BIGSERIAL PRIMARY KEY,
	tick          BIGINT      NOT NULL,
	recorded_at   TIMESTAMPTZ NOT NULL,
	online_count  INTEGER     NOT NULL,
	delayed_count INTEGER     NOT NULL,
	offline_count INTEGER     NOT NULL,
	vehicles      JSONB       NOT NULL
);
CREATE INDEX IF NOT EXISTS tick_snapshots_recorded_at_idx
	ON transitview.tick_snapshots (recorded_at);
`

// SnapshotRow is one recorded tick
type SnapshotRow struct {
	Tick         uint64
	RecordedAt   time.Time
	OnlineCount  int
	DelayedCount int
	OfflineCount int
	Vehicles     interface{} // marshalled to JSON
}

// SnapshotStore writes tick snapshots. The table is an audit trail; nothing
// is read back into the live view.
type SnapshotStore struct {
	db *DB
}

func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// EnsureSchema creates the schema, table and index in one transaction
func (s *SnapshotStore) EnsureSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("beginning schema transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, snapshotSchema); err != nil {
		return fmt.Errorf("creating snapshot schema: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot schema: %w", err)
	}

	s.db.logger.Info("Snapshot schema ready")
	return nil
}

func (s *SnapshotStore) Insert(ctx context.Context, row SnapshotRow) error {
	vehicles, err := json.Marshal(row.Vehicles)
	if err != nil {
		return fmt.Errorf("marshalling vehicles: %w", err)
	}

	query := `
		INSERT INTO transitview.tick_snapshots
			(tick, recorded_at, online_count, delayed_count, offline_count, vehicles)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.conn.ExecContext(ctx, query,
		int64(row.Tick),
		row.RecordedAt,
		row.OnlineCount,
		row.DelayedCount,
		row.OfflineCount,
		vehicles,
	)
	if err != nil {
		return fmt.Errorf("inserting tick snapshot: %w", err)
	}

	s.db.logger.Debug("Tick snapshot recorded", "tick", row.Tick)
	return nil
}

// DeleteBefore removes snapshots recorded before cutoff and returns how many
// rows were deleted
func (s *SnapshotStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.conn.ExecContext(ctx,
		`DELETE FROM transitview.tick_snapshots WHERE recorded_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting old snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted snapshots: %w", err)
	}
	return n, nil
}
