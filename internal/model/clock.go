package model

import (
	"fmt"
	"time"
)

const (
	DayKeyLayout  = "2006-01-02"
	ClockLayout   = "15:04"
	DisplayLayout = "3:04 PM"

	// AllDay is the display time of events without a start time.
	AllDay = "All day"
)

// DayKey formats t as YYYY-MM-DD in t's location.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ClockTime formats t as a zero-padded HH:MM wall-clock string.
func ClockTime(t time.Time) string {
	return t.Format(ClockLayout)
}

// DisplayTime formats t the way event times are stored, e.g. "3:00 PM".
func DisplayTime(t time.Time) string {
	return t.Format(DisplayLayout)
}

// NormalizeClock validates a user supplied HH:MM (or H:MM) string and returns it zero-padded.
func NormalizeClock(raw string) (string, error) {
	t, err := time.Parse(ClockLayout, raw)
	if err != nil {
		return "", NewValidationError("time", fmt.Sprintf("%q is not a valid HH:MM time", raw))
	}
	return t.Format(ClockLayout), nil
}

// To12Hour converts an HH:MM clock string to the event display format.
func To12Hour(clock string) (string, error) {
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return "", NewValidationError("time", fmt.Sprintf("%q is not a valid HH:MM time", clock))
	}
	return t.Format(DisplayLayout), nil
}

// ParseDayKey parses a YYYY-MM-DD string in loc.
func ParseDayKey(raw string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DayKeyLayout, raw, loc)
	if err != nil {
		return time.Time{}, NewValidationError("date", fmt.Sprintf("%q is not a valid YYYY-MM-DD date", raw))
	}
	return t, nil
}
