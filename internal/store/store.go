// Package store is the Postgres persistence layer: events, schedules with
// their availability windows, and stored calendar credentials.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested record does not exist or is not
// visible to the requesting owner.
var ErrNotFound = errors.New("not found")

type Store struct {
	pool *pgxpool.Pool
}

// Open connects a pool to databaseURL and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id uuid PRIMARY KEY,
		owner_id text NOT NULL,
		name text NOT NULL,
		description text NOT NULL DEFAULT '',
		duration_minutes integer NOT NULL,
		is_active boolean NOT NULL DEFAULT true,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS events_owner_idx ON events (owner_id)`,
	`CREATE TABLE IF NOT EXISTS schedules (
		id uuid PRIMARY KEY,
		owner_id text NOT NULL UNIQUE,
		timezone text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS schedule_windows (
		id uuid PRIMARY KEY,
		schedule_id uuid NOT NULL REFERENCES schedules (id) ON DELETE CASCADE,
		day_of_week text NOT NULL,
		start_time text NOT NULL,
		end_time text NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS schedule_windows_schedule_idx ON schedule_windows (schedule_id)`,
	`CREATE TABLE IF NOT EXISTS calendar_credentials (
		owner_id text PRIMARY KEY,
		access_token text NOT NULL,
		refresh_token text NOT NULL DEFAULT '',
		token_type text NOT NULL DEFAULT 'Bearer',
		expiry timestamptz,
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
}

// Migrate applies the schema. Statements are idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
