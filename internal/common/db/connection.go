package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/citytransit-view/internal/common/logger"
	_ "github.com/lib/pq"
)

type DB struct {
	conn   *sql.DB
	logger logger.Logger
}

func New(ctx context.Context, connStr string, logger logger.Logger) (*DB, error) {
	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	conn.SetMaxOpenConns(4)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logger.Info("Database connection established")

	return &DB{
		conn:   conn,
		logger: logger,
	}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.conn.BeginTx(ctx, nil)
}
