package calendar

import (
	"testing"
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

func TestBusySpans(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}

	items := []*gcal.Event{
		{
			Start: &gcal.EventDateTime{DateTime: "2026-03-02T10:00:00-05:00"},
			End:   &gcal.EventDateTime{DateTime: "2026-03-02T10:30:00-05:00"},
		},
		{
			// All-day event.
			Start: &gcal.EventDateTime{Date: "2026-03-03"},
			End:   &gcal.EventDateTime{Date: "2026-03-03"},
		},
		{
			// Missing end: skipped.
			Start: &gcal.EventDateTime{DateTime: "2026-03-02T11:00:00-05:00"},
		},
		{
			// Unparseable: skipped.
			Start: &gcal.EventDateTime{DateTime: "yesterday"},
			End:   &gcal.EventDateTime{DateTime: "tomorrow"},
		},
	}

	spans := busySpans(items, ny)
	if len(spans) != 2 {
		t.Fatalf("want 2 spans, got %d: %v", len(spans), spans)
	}

	wantStart := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	if !spans[0].Start.Equal(wantStart) {
		t.Errorf("timed start = %v, want %v", spans[0].Start, wantStart)
	}

	allDayStart := time.Date(2026, 3, 3, 0, 0, 0, 0, ny)
	allDayEnd := time.Date(2026, 3, 3, 23, 59, 59, int(999*time.Millisecond), ny)
	if !spans[1].Start.Equal(allDayStart) {
		t.Errorf("all-day start = %v, want %v", spans[1].Start, allDayStart)
	}
	if !spans[1].End.Equal(allDayEnd) {
		t.Errorf("all-day end = %v, want %v", spans[1].End, allDayEnd)
	}
}
