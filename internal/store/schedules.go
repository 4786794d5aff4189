package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"meetsched/internal/interval"
	"meetsched/internal/schedule"
)

// LoadSchedule fetches an owner's schedule with its availability windows.
// ErrNotFound means the owner has never saved a schedule — callers treat
// that as "no availability", not as an empty window set with a timezone.
func (s *Store) LoadSchedule(ctx context.Context, ownerID string) (*schedule.Schedule, error) {
	var sched schedule.Schedule
	err := s.pool.QueryRow(ctx,
		`SELECT id, owner_id, timezone FROM schedules WHERE owner_id=$1`, ownerID).
		Scan(&sched.ID, &sched.OwnerID, &sched.Timezone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, day_of_week, start_time, end_time
		 FROM schedule_windows WHERE schedule_id=$1
		 ORDER BY day_of_week, start_time`, sched.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var w schedule.Window
		var day string
		if err := rows.Scan(&w.ID, &day, &w.StartTime, &w.EndTime); err != nil {
			return nil, err
		}
		w.Day = schedule.Day(day)
		sched.Windows = append(sched.Windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &sched, nil
}

// ReplaceSchedule saves an owner's schedule wholesale: the timezone is
// upserted and the entire window set is replaced in one transaction. There
// is no partial patching of windows.
func (s *Store) ReplaceSchedule(ctx context.Context, ownerID, timezone string, windows []schedule.Window) (*schedule.Schedule, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	var scheduleID string
	err = tx.QueryRow(ctx,
		`INSERT INTO schedules (id, owner_id, timezone, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$4)
		 ON CONFLICT (owner_id) DO UPDATE SET timezone=excluded.timezone, updated_at=excluded.updated_at
		 RETURNING id`,
		uuid.NewString(), ownerID, timezone, now).Scan(&scheduleID)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM schedule_windows WHERE schedule_id=$1`, scheduleID); err != nil {
		return nil, err
	}

	saved := &schedule.Schedule{ID: scheduleID, OwnerID: ownerID, Timezone: timezone}
	for _, w := range windows {
		w.ID = uuid.NewString()
		w.StartTime = interval.Normalize(w.StartTime)
		w.EndTime = interval.Normalize(w.EndTime)
		if _, err := tx.Exec(ctx,
			`INSERT INTO schedule_windows (id, schedule_id, day_of_week, start_time, end_time)
			 VALUES ($1,$2,$3,$4,$5)`,
			w.ID, scheduleID, string(w.Day), w.StartTime, w.EndTime); err != nil {
			return nil, err
		}
		saved.Windows = append(saved.Windows, w)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return saved, nil
}
