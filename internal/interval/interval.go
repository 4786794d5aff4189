// Package interval holds the time arithmetic the availability engine is
// built on: wall-clock "HH:MM" parsing and absolute interval tests.
package interval

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrFormat reports a time-of-day string that is not valid 24h "HH:MM".
var ErrFormat = errors.New("invalid HH:MM time")

// Hours 0-23 (single or double digit), minutes 00-59.
var hhmmRe = regexp.MustCompile(`^([0-9]|0[0-9]|1[0-9]|2[0-3]):([0-5][0-9])$`)

// Span is an absolute time interval.
type Span struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TimeToFraction converts a wall-clock time string to hours plus a minute
// fraction, e.g. "9:30" -> 9.5. Window bounds are compared in this form so
// that "10:00" vs "9:30" does not fall into string ordering traps.
func TimeToFraction(hhmm string) (float64, error) {
	m := hhmmRe.FindStringSubmatch(hhmm)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrFormat, hhmm)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return float64(hours) + float64(minutes)/60, nil
}

// ParseClock splits a validated "HH:MM" string into hour and minute
// components for constructing a concrete local datetime.
func ParseClock(hhmm string) (hour, minute int, err error) {
	m := hhmmRe.FindStringSubmatch(hhmm)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrFormat, hhmm)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	return hour, minute, nil
}

// Overlaps reports whether a and b share an interior point. Half-open
// semantics: a meeting ending exactly when another starts does not conflict.
func (a Span) Overlaps(b Span) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Contains reports whether t lies inside the span, inclusive of both
// endpoints. The inclusive end is deliberate: a booking is allowed to end
// exactly where an availability window ends.
func (a Span) Contains(t time.Time) bool {
	return !t.Before(a.Start) && !t.After(a.End)
}

// Normalize trims whitespace and zero-pads single-digit hours so stored
// values compare consistently ("9:00" -> "09:00").
func Normalize(hhmm string) string {
	s := strings.TrimSpace(hhmm)
	if i := strings.IndexByte(s, ':'); i == 1 {
		return "0" + s
	}
	return s
}
