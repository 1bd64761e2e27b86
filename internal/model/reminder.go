package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FrequencyKind tells how a reminder re-arms after firing.
type FrequencyKind int

const (
	FrequencyInvalid FrequencyKind = iota
	FrequencyOnce
	FrequencyDaily
	FrequencyInterval
)

const intervalPrefix = "interval-"

// Frequency is the cadence of a reminder. Once and Daily carry a wall-clock
// time, Interval carries a whole number of hours.
type Frequency struct {
	Kind  FrequencyKind
	At    string
	Hours int
}

func Once(at string) Frequency       { return Frequency{Kind: FrequencyOnce, At: at} }
func Daily(at string) Frequency      { return Frequency{Kind: FrequencyDaily, At: at} }
func Every(hours int) Frequency      { return Frequency{Kind: FrequencyInterval, Hours: hours} }
func (f Frequency) IsTimed() bool    { return f.Kind == FrequencyOnce || f.Kind == FrequencyDaily }
func (f Frequency) IsValid() bool    { return f.Validate() == nil }
func (f Frequency) IsInterval() bool { return f.Kind == FrequencyInterval }

// Validate checks the variant invariants.
func (f Frequency) Validate() error {
	switch f.Kind {
	case FrequencyOnce, FrequencyDaily:
		if _, err := NormalizeClock(f.At); err != nil {
			return err
		}
		return nil
	case FrequencyInterval:
		if f.Hours <= 0 {
			return NewValidationError("frequency", "interval hours must be positive")
		}
		return nil
	default:
		return NewValidationError("frequency", "unknown frequency")
	}
}

// Code returns the stored frequency code: once, daily or interval-N.
func (f Frequency) Code() string {
	switch f.Kind {
	case FrequencyOnce:
		return "once"
	case FrequencyDaily:
		return "daily"
	case FrequencyInterval:
		return intervalPrefix + strconv.Itoa(f.Hours)
	default:
		return ""
	}
}

func (f Frequency) String() string {
	switch f.Kind {
	case FrequencyOnce, FrequencyDaily:
		display, err := To12Hour(f.At)
		if err != nil {
			display = f.At
		}
		if f.Kind == FrequencyOnce {
			return "Once at " + display
		}
		return "Daily at " + display
	case FrequencyInterval:
		if f.Hours == 1 {
			return "Every 1 hour"
		}
		return fmt.Sprintf("Every %d hours", f.Hours)
	default:
		return "Invalid schedule"
	}
}

// ParseFrequency decodes the stored (frequency, time) pair. Anything it cannot
// decode comes back as FrequencyInvalid, which never fires.
func ParseFrequency(code string, at *string) Frequency {
	switch {
	case code == "once" || code == "daily":
		if at == nil {
			return Frequency{}
		}
		clock, err := NormalizeClock(*at)
		if err != nil {
			return Frequency{}
		}
		if code == "once" {
			return Once(clock)
		}
		return Daily(clock)
	case strings.HasPrefix(code, intervalPrefix):
		hours, err := strconv.Atoi(strings.TrimPrefix(code, intervalPrefix))
		if err != nil || hours <= 0 {
			return Frequency{}
		}
		return Every(hours)
	default:
		return Frequency{}
	}
}

// Reminder is a user defined nudge evaluated on every scheduler tick.
// LastShown holds a day-key for daily reminders and an RFC 3339 timestamp
// for once and interval reminders.
type Reminder struct {
	ID        int
	Text      string
	Frequency Frequency
	Enabled   bool
	LastShown *string
}

type reminderJSON struct {
	ID        int     `json:"id"`
	Text      string  `json:"text"`
	Time      *string `json:"time"`
	Frequency string  `json:"frequency"`
	Enabled   bool    `json:"enabled"`
	LastShown *string `json:"lastShown"`
}

func (r Reminder) MarshalJSON() ([]byte, error) {
	out := reminderJSON{
		ID:        r.ID,
		Text:      r.Text,
		Frequency: r.Frequency.Code(),
		Enabled:   r.Enabled,
		LastShown: r.LastShown,
	}
	if r.Frequency.IsTimed() {
		at := r.Frequency.At
		out.Time = &at
	}
	return json.Marshal(out)
}

func (r *Reminder) UnmarshalJSON(data []byte) error {
	var in reminderJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = Reminder{
		ID:        in.ID,
		Text:      in.Text,
		Frequency: ParseFrequency(in.Frequency, in.Time),
		Enabled:   in.Enabled,
		LastShown: in.LastShown,
	}
	return nil
}

// ClockString returns the reminder time or an empty string for interval reminders.
func (r Reminder) ClockString() string {
	if r.Frequency.IsTimed() {
		return r.Frequency.At
	}
	return ""
}
