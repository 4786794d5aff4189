package schedule

import (
	"testing"
	"time"
)

func TestDayOf(t *testing.T) {
	// 2026-03-02 is a Monday.
	monday := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	if d := DayOf(monday, time.UTC); d != Monday {
		t.Fatalf("DayOf = %v, want monday", d)
	}

	// 01:00 UTC Monday is still Sunday evening in New York.
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	earlyMonday := time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC)
	if d := DayOf(earlyMonday, ny); d != Sunday {
		t.Fatalf("DayOf in New York = %v, want sunday", d)
	}
}

func TestWindowsForDate(t *testing.T) {
	t.Run("no windows for day yields empty", func(t *testing.T) {
		ix, err := NewIndex(&Schedule{
			Timezone: "UTC",
			Windows:  []Window{{Day: Monday, StartTime: "09:00", EndTime: "17:00"}},
		})
		if err != nil {
			t.Fatal(err)
		}
		tuesday := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
		if spans := ix.WindowsForDate(tuesday); len(spans) != 0 {
			t.Fatalf("want no windows on tuesday, got %v", spans)
		}
	})

	t.Run("projects wall-clock window onto the candidate date", func(t *testing.T) {
		ix, err := NewIndex(&Schedule{
			Timezone: "UTC",
			Windows:  []Window{{Day: Monday, StartTime: "09:00", EndTime: "17:00"}},
		})
		if err != nil {
			t.Fatal(err)
		}
		monday := time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)
		spans := ix.WindowsForDate(monday)
		if len(spans) != 1 {
			t.Fatalf("want 1 window, got %d", len(spans))
		}
		wantStart := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		wantEnd := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
		if !spans[0].Start.Equal(wantStart) || !spans[0].End.Equal(wantEnd) {
			t.Fatalf("got %v..%v, want %v..%v", spans[0].Start, spans[0].End, wantStart, wantEnd)
		}
	})

	t.Run("multiple disjoint windows all returned", func(t *testing.T) {
		ix, err := NewIndex(&Schedule{
			Timezone: "UTC",
			Windows: []Window{
				{Day: Monday, StartTime: "09:00", EndTime: "12:00"},
				{Day: Monday, StartTime: "13:30", EndTime: "17:00"},
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		if spans := ix.WindowsForDate(monday); len(spans) != 2 {
			t.Fatalf("want 2 windows, got %d", len(spans))
		}
	})

	t.Run("timezone conversion yields absolute instants", func(t *testing.T) {
		ix, err := NewIndex(&Schedule{
			Timezone: "America/New_York",
			Windows:  []Window{{Day: Monday, StartTime: "09:00", EndTime: "17:00"}},
		})
		if err != nil {
			t.Fatal(err)
		}
		// Noon UTC on Monday 2026-03-02; New York is UTC-5 (EST).
		monday := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
		spans := ix.WindowsForDate(monday)
		if len(spans) != 1 {
			t.Fatalf("want 1 window, got %d", len(spans))
		}
		wantStart := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
		if !spans[0].Start.Equal(wantStart) {
			t.Fatalf("start = %v, want %v (09:00 EST)", spans[0].Start, wantStart)
		}
	})

	t.Run("candidate near local midnight buckets by local date", func(t *testing.T) {
		ix, err := NewIndex(&Schedule{
			Timezone: "America/New_York",
			Windows:  []Window{{Day: Sunday, StartTime: "20:00", EndTime: "23:00"}},
		})
		if err != nil {
			t.Fatal(err)
		}
		// 02:00 UTC Monday is 21:00 Sunday in New York.
		instant := time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC)
		spans := ix.WindowsForDate(instant)
		if len(spans) != 1 {
			t.Fatalf("want sunday window, got %d spans", len(spans))
		}
		if !spans[0].Contains(instant) {
			t.Fatalf("instant %v should fall inside %v..%v", instant, spans[0].Start, spans[0].End)
		}
	})

	t.Run("bad timezone is rejected at build time", func(t *testing.T) {
		_, err := NewIndex(&Schedule{Timezone: "Mars/Olympus_Mons"})
		if err == nil {
			t.Fatal("want error for unknown timezone")
		}
	})
}
