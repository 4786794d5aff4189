// Package schedule models an owner's recurring weekly availability and
// resolves it against concrete dates.
package schedule

import (
	"fmt"
	"time"
)

// Day enumerates the days of the week, Monday first. Values match the
// wire/storage representation.
type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// DaysInOrder lists all days Monday through Sunday.
var DaysInOrder = [7]Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayToDay = map[time.Weekday]Day{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// DayOf maps an instant to its day of week as observed in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	return weekdayToDay[t.In(loc).Weekday()]
}

// ParseDay validates a wire-format day name.
func ParseDay(s string) (Day, error) {
	for _, d := range DaysInOrder {
		if Day(s) == d {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid day of week: %q", s)
}

// Window is one recurring availability range: wall-clock times in the
// owning schedule's timezone, no date component.
type Window struct {
	ID        string `json:"id,omitempty"`
	Day       Day    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Schedule is an owner's availability definition. Exactly one per owner;
// saving replaces the timezone and the whole window set.
type Schedule struct {
	ID       string   `json:"id"`
	OwnerID  string   `json:"owner_id"`
	Timezone string   `json:"timezone"`
	Windows  []Window `json:"availabilities"`
}

// Location resolves the schedule's IANA timezone name.
func (s *Schedule) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("schedule timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}
