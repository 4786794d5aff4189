package schedule

import (
	"fmt"
	"strings"

	"meetsched/internal/interval"
)

// Violation codes.
const (
	CodeFormat  = "format"
	CodeOverlap = "overlap"
	CodeOrder   = "order"
)

// Violation flags one invalid window in a submitted set. Index refers to
// the window's position in the submission and Field to the offending input,
// so a form can highlight the exact row.
type Violation struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Violations is the full set of problems found in a submission. The whole
// submission is rejected; nothing is partially saved.
type Violations []Violation

func (v Violations) Error() string {
	msgs := make([]string, len(v))
	for i, viol := range v {
		msgs[i] = fmt.Sprintf("window %d: %s", viol.Index, viol.Message)
	}
	return "invalid availability: " + strings.Join(msgs, "; ")
}

// CheckWindows validates a candidate window set before persistence: every
// window must have well-formed times with start before end, and no two
// windows on the same day may overlap. Adjacent windows (end of one equal
// to start of the next) are allowed. All violations are collected, not just
// the first.
func CheckWindows(ws []Window) error {
	type parsed struct {
		start, end float64
		ok         bool
	}
	fractions := make([]parsed, len(ws))

	var violations Violations
	for i, w := range ws {
		start, errStart := interval.TimeToFraction(w.StartTime)
		if errStart != nil {
			violations = append(violations, Violation{
				Index: i, Field: "start_time", Code: CodeFormat,
				Message: fmt.Sprintf("start time %q is not HH:MM", w.StartTime),
			})
		}
		end, errEnd := interval.TimeToFraction(w.EndTime)
		if errEnd != nil {
			violations = append(violations, Violation{
				Index: i, Field: "end_time", Code: CodeFormat,
				Message: fmt.Sprintf("end time %q is not HH:MM", w.EndTime),
			})
		}
		if errStart == nil && errEnd == nil {
			fractions[i] = parsed{start: start, end: end, ok: true}
		}
	}

	for i, w := range ws {
		if !fractions[i].ok {
			continue
		}
		if fractions[i].start >= fractions[i].end {
			violations = append(violations, Violation{
				Index: i, Field: "end_time", Code: CodeOrder,
				Message: "end time must be after start time",
			})
		}
		// Only look back at earlier windows so an overlapping pair is
		// reported once, against the later row.
		for j := 0; j < i; j++ {
			if ws[j].Day != w.Day || !fractions[j].ok {
				continue
			}
			// Strict half-open comparison on fractional hours.
			if fractions[j].start < fractions[i].end && fractions[j].end > fractions[i].start {
				violations = append(violations, Violation{
					Index: i, Field: "start_time", Code: CodeOverlap,
					Message: fmt.Sprintf("overlaps another window on %s", w.Day),
				})
				break
			}
		}
	}

	if len(violations) > 0 {
		return violations
	}
	return nil
}
