package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Event is a bookable meeting type owned by one user. Inactive events are
// kept for history but excluded from booking paths.
type Event struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

func (s *Store) CreateEvent(ctx context.Context, e *Event) error {
	now := time.Now().UTC()
	e.ID = uuid.NewString()
	e.CreatedAt = now
	e.UpdatedAt = now

	q := `INSERT INTO events (id, owner_id, name, description, duration_minutes, is_active, created_at, updated_at)
	      VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := s.pool.Exec(ctx, q,
		e.ID, e.OwnerID, e.Name, e.Description, e.DurationMinutes, e.IsActive, e.CreatedAt, e.UpdatedAt)
	return err
}

// UpdateEvent rewrites an event's editable fields. ErrNotFound if the event
// does not exist or belongs to a different owner.
func (s *Store) UpdateEvent(ctx context.Context, e *Event) error {
	now := time.Now().UTC()
	q := `UPDATE events
	      SET name=$1, description=$2, duration_minutes=$3, is_active=$4, updated_at=$5
	      WHERE id=$6 AND owner_id=$7`
	tag, err := s.pool.Exec(ctx, q,
		e.Name, e.Description, e.DurationMinutes, e.IsActive, now, e.ID, e.OwnerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	e.UpdatedAt = now
	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, ownerID, eventID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM events WHERE id=$1 AND owner_id=$2`, eventID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// LoadEvent fetches one event scoped to its owner.
func (s *Store) LoadEvent(ctx context.Context, ownerID, eventID string) (*Event, error) {
	q := `SELECT id, owner_id, name, description, duration_minutes, is_active, created_at, updated_at
	      FROM events WHERE id=$1 AND owner_id=$2`
	var e Event
	err := s.pool.QueryRow(ctx, q, eventID, ownerID).Scan(
		&e.ID, &e.OwnerID, &e.Name, &e.Description, &e.DurationMinutes, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListEvents returns an owner's events ordered case-insensitively by name.
// With activeOnly set it is the public listing.
func (s *Store) ListEvents(ctx context.Context, ownerID string, activeOnly bool) ([]Event, error) {
	q := `SELECT id, owner_id, name, description, duration_minutes, is_active, created_at, updated_at
	      FROM events WHERE owner_id=$1 ORDER BY lower(name)`
	if activeOnly {
		q = `SELECT id, owner_id, name, description, duration_minutes, is_active, created_at, updated_at
		     FROM events WHERE owner_id=$1 AND is_active ORDER BY lower(name)`
	}
	rows, err := s.pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Name, &e.Description,
			&e.DurationMinutes, &e.IsActive, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
