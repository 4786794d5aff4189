// Package app wires the HTTP surface: event and schedule management for
// owners, valid-time listing and booking for guests, and the OAuth connect
// flow for calendar access.
package app

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"meetsched/internal/booking"
	"meetsched/internal/calendar"
	"meetsched/internal/schedule"
	"meetsched/internal/store"
)

// Storage is the persistence surface the handlers consume.
type Storage interface {
	CreateEvent(ctx context.Context, e *store.Event) error
	UpdateEvent(ctx context.Context, e *store.Event) error
	DeleteEvent(ctx context.Context, ownerID, eventID string) error
	LoadEvent(ctx context.Context, ownerID, eventID string) (*store.Event, error)
	ListEvents(ctx context.Context, ownerID string, activeOnly bool) ([]store.Event, error)
	LoadSchedule(ctx context.Context, ownerID string) (*schedule.Schedule, error)
	ReplaceSchedule(ctx context.Context, ownerID, timezone string, windows []schedule.Window) (*schedule.Schedule, error)
	SaveCredential(ctx context.Context, ownerID string, tok *oauth2.Token) error
}

// TimesValidator filters candidate instants to the bookable subset.
type TimesValidator interface {
	FilterValidTimes(ctx context.Context, candidates []time.Time, event *store.Event) ([]time.Time, error)
}

// Booker finalizes a single booking attempt.
type Booker interface {
	Book(ctx context.Context, req booking.Request) (*booking.Record, error)
}

type App struct {
	Store     Storage
	Validator TimesValidator
	Booker    Booker
	OAuth     *calendar.Config // nil when Google OAuth is not configured

	// HorizonDays caps how far ahead valid times are advertised.
	HorizonDays int
}
