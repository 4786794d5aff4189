package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meetsched/internal/calendar"
	"meetsched/internal/store"
)

// ErrSlotUnavailable means the requested time was valid when advertised
// but is no longer: a concurrent booking or calendar change won the race,
// or the client held stale state. The caller should prompt re-selection.
var ErrSlotUnavailable = errors.New("requested time is no longer available")

// CalendarSink creates the booking on the owner's external calendar.
type CalendarSink interface {
	CreateBooking(ctx context.Context, req calendar.BookingRequest) (*calendar.CreatedEvent, error)
}

// Request is one guest's attempt to book an event at a specific instant.
type Request struct {
	OwnerID    string
	EventID    string
	Start      time.Time
	GuestName  string
	GuestEmail string
	GuestNotes string
	OwnerName  string
	OwnerEmail string
}

// Record confirms a completed booking for downstream display.
type Record struct {
	OwnerID         string    `json:"owner_id"`
	EventID         string    `json:"event_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	CalendarEventID string    `json:"calendar_event_id,omitempty"`
	CalendarLink    string    `json:"calendar_link,omitempty"`
}

// Orchestrator revalidates a proposed time and commits the booking to the
// external calendar.
//
// There is no lock between revalidation and the calendar insert: two
// simultaneous bookers of the same slot can both pass validation and both
// land on the calendar. Protection against that race is delegated to the
// calendar's own consistency, mirroring the revalidate-then-commit shape
// this flow has always had.
type Orchestrator struct {
	store     Store
	validator *Validator
	sink      CalendarSink

	// now is swappable for tests.
	now func() time.Time
}

func NewOrchestrator(st Store, v *Validator, sink CalendarSink) *Orchestrator {
	return &Orchestrator{store: st, validator: v, sink: sink, now: time.Now}
}

// Book validates that req.Start is still bookable for the event and, if
// so, creates the calendar event. The event must exist, belong to the
// owner, and be active.
func (o *Orchestrator) Book(ctx context.Context, req Request) (*Record, error) {
	event, err := o.store.LoadEvent(ctx, req.OwnerID, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("load event: %w", err)
	}
	if !event.IsActive {
		return nil, fmt.Errorf("event %s is inactive: %w", req.EventID, store.ErrNotFound)
	}
	if req.Start.Before(o.now()) {
		return nil, fmt.Errorf("start time is in the past: %w", ErrSlotUnavailable)
	}

	valid, err := o.validator.FilterValidTimes(ctx, []time.Time{req.Start}, event)
	if err != nil {
		return nil, err
	}
	if len(valid) == 0 {
		return nil, ErrSlotUnavailable
	}

	created, err := o.sink.CreateBooking(ctx, calendar.BookingRequest{
		OwnerID:         req.OwnerID,
		OwnerName:       req.OwnerName,
		OwnerEmail:      req.OwnerEmail,
		EventName:       event.Name,
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		GuestNotes:      req.GuestNotes,
		Start:           req.Start,
		DurationMinutes: event.DurationMinutes,
	})
	if err != nil {
		return nil, err
	}

	return &Record{
		OwnerID:         req.OwnerID,
		EventID:         req.EventID,
		StartTime:       created.Start,
		EndTime:         created.End,
		CalendarEventID: created.ID,
		CalendarLink:    created.Link,
	}, nil
}
