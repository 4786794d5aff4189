// Package booking decides whether candidate meeting times are legally
// bookable and, for a single chosen time, drives the booking through to the
// owner's external calendar.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meetsched/internal/interval"
	"meetsched/internal/schedule"
	"meetsched/internal/store"
)

// Store is the slice of persistence the booking path consumes.
type Store interface {
	LoadSchedule(ctx context.Context, ownerID string) (*schedule.Schedule, error)
	LoadEvent(ctx context.Context, ownerID, eventID string) (*store.Event, error)
}

// BusySource reports already-booked intervals on the owner's external
// calendar within a window.
type BusySource interface {
	ListBusyIntervals(ctx context.Context, ownerID string, window interval.Span) ([]interval.Span, error)
}

// Validator filters candidate instants against the owner's declared weekly
// availability and their live external calendar.
type Validator struct {
	store Store
	busy  BusySource
}

func NewValidator(st Store, busy BusySource) *Validator {
	return &Validator{store: st, busy: busy}
}

// FilterValidTimes returns the candidates where the whole proposed meeting
// [t, t+duration) fits inside one availability window and touches no busy
// interval. Output preserves input order; it is a filter, never a re-sort.
//
// The schedule load and the busy-interval fetch are independent reads over
// the same span and run concurrently. The busy fetch is one batched query
// covering every proposed interval, not one query per candidate.
func (v *Validator) FilterValidTimes(ctx context.Context, candidates []time.Time, event *store.Event) ([]time.Time, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	duration := time.Duration(event.DurationMinutes) * time.Minute
	// Extend by the duration so the last candidate's full proposed
	// interval is covered by the fetched busy set.
	overall := interval.Span{
		Start: candidates[0],
		End:   candidates[len(candidates)-1].Add(duration),
	}

	type schedResult struct {
		sched *schedule.Schedule
		err   error
	}
	type busyResult struct {
		busy []interval.Span
		err  error
	}
	schedCh := make(chan schedResult, 1)
	busyCh := make(chan busyResult, 1)

	go func() {
		sched, err := v.store.LoadSchedule(ctx, event.OwnerID)
		schedCh <- schedResult{sched: sched, err: err}
	}()
	go func() {
		busy, err := v.busy.ListBusyIntervals(ctx, event.OwnerID, overall)
		busyCh <- busyResult{busy: busy, err: err}
	}()

	sr := <-schedCh
	br := <-busyCh

	if errors.Is(sr.err, store.ErrNotFound) {
		// An owner with no declared availability is never bookable.
		return nil, nil
	}
	if sr.err != nil {
		return nil, fmt.Errorf("load schedule: %w", sr.err)
	}
	if br.err != nil {
		return nil, fmt.Errorf("fetch busy intervals: %w", br.err)
	}

	ix, err := schedule.NewIndex(sr.sched)
	if err != nil {
		return nil, err
	}

	valid := make([]time.Time, 0, len(candidates))
	for _, t := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		proposed := interval.Span{Start: t, End: t.Add(duration)}
		if overlapsAny(proposed, br.busy) {
			continue
		}
		for _, w := range ix.WindowsForDate(t) {
			if w.Contains(proposed.Start) && w.Contains(proposed.End) {
				valid = append(valid, t)
				break
			}
		}
	}
	return valid, nil
}

func overlapsAny(proposed interval.Span, busy []interval.Span) bool {
	for _, b := range busy {
		if proposed.Overlaps(b) {
			return true
		}
	}
	return false
}

// CandidateGrid enumerates instants on a step-aligned grid from the first
// grid point at or after from, through to inclusive. This is how the
// booking page builds the candidate set it hands to FilterValidTimes.
func CandidateGrid(from, to time.Time, step time.Duration) []time.Time {
	if step <= 0 || to.Before(from) {
		return nil
	}
	start := from.Truncate(step)
	if start.Before(from) {
		start = start.Add(step)
	}
	var out []time.Time
	for t := start; !t.After(to); t = t.Add(step) {
		out = append(out, t)
	}
	return out
}
