// file: internals/helpers/dbtime/dbtime.go
package dbtime

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseYMD parses "YYYY-MM-DD" into a calendar date (midnight UTC).
func ParseYMD(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return datatypes.Date(t), nil
}

func FormatYMD(d datatypes.Date) string {
	t := time.Time(d)
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// DateOf keeps only the calendar day of t as seen in t's own location.
func DateOf(t time.Time) datatypes.Date {
	return datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}

// DateKey orders calendar days independently of their location (20240131).
func DateKey(d datatypes.Date) int {
	t := time.Time(d)
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// CompareDates returns -1, 0 or 1.
func CompareDates(a, b datatypes.Date) int {
	ka, kb := DateKey(a), DateKey(b)
	switch {
	case ka < kb:
		return -1
	case ka > kb:
		return 1
	}
	return 0
}

// ParseClock parses "HH:MM" or "HH:MM:SS". Empty input yields nil.
func ParseClock(s string) (*datatypes.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	layout := ClockLayout
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	v := datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0)
	return &v, nil
}

// FormatClock renders "HH:MM"; nil renders "".
func FormatClock(t *datatypes.Time) string {
	if t == nil {
		return ""
	}
	d := time.Duration(*t)
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
}

// ClockOf returns the time-of-day part of t.
func ClockOf(t time.Time) datatypes.Time {
	return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0)
}

var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDeadline accepts RFC3339 or a local "YYYY-MM-DDTHH:MM" (HTML datetime-local).
// A bare date means the end of that day. Values without offset are read in loc.
func ParseDeadline(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	for _, layout := range deadlineLayouts[1:] {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t, nil
		}
	}
	if d, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		end := d.Add(24*time.Hour - time.Second)
		return &end, nil
	}
	return nil, fmt.Errorf("invalid deadline %q", s)
}
