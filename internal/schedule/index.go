package schedule

import (
	"time"

	"meetsched/internal/interval"
)

type bucketedWindow struct {
	startHour, startMin int
	endHour, endMin     int
}

// Index is a schedule's windows bucketed by day of week, with clock strings
// pre-parsed. Built once per schedule load, queried once per candidate date.
type Index struct {
	loc   *time.Location
	byDay map[Day][]bucketedWindow
}

// NewIndex buckets ws by day of week and resolves the timezone. Window
// times are parsed up front so malformed stored data surfaces here rather
// than deep in the candidate loop.
func NewIndex(s *Schedule) (*Index, error) {
	loc, err := s.Location()
	if err != nil {
		return nil, err
	}
	byDay := make(map[Day][]bucketedWindow, len(DaysInOrder))
	for _, w := range s.Windows {
		sh, sm, err := interval.ParseClock(w.StartTime)
		if err != nil {
			return nil, err
		}
		eh, em, err := interval.ParseClock(w.EndTime)
		if err != nil {
			return nil, err
		}
		byDay[w.Day] = append(byDay[w.Day], bucketedWindow{
			startHour: sh, startMin: sm,
			endHour: eh, endMin: em,
		})
	}
	return &Index{loc: loc, byDay: byDay}, nil
}

// Location returns the schedule timezone the index projects into.
func (ix *Index) Location() *time.Location { return ix.loc }

// WindowsForDate projects the windows for t's day of week onto t's calendar
// date in the schedule timezone, yielding absolute intervals. An empty
// result means the date is fully unavailable.
func (ix *Index) WindowsForDate(t time.Time) []interval.Span {
	local := t.In(ix.loc)
	windows := ix.byDay[weekdayToDay[local.Weekday()]]
	if len(windows) == 0 {
		return nil
	}
	year, month, day := local.Date()
	spans := make([]interval.Span, 0, len(windows))
	for _, w := range windows {
		spans = append(spans, interval.Span{
			Start: time.Date(year, month, day, w.startHour, w.startMin, 0, 0, ix.loc),
			End:   time.Date(year, month, day, w.endHour, w.endMin, 0, 0, ix.loc),
		})
	}
	return spans
}
