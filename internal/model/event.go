package model

import (
	"fmt"
	"sort"
	"time"
)

type EventSource string

const (
	SourceLocal  EventSource = "local"
	SourceGoogle EventSource = "google"
)

const (
	DefaultEventColor = "#4F46E5"
	GoogleEventColor  = "#4285F4"
)

// Event is a dated calendar entry. Time is either a display time such as
// "3:00 PM" or AllDay.
type Event struct {
	ID            int         `json:"id"`
	Date          string      `json:"date"`
	Time          string      `json:"time"`
	Title         string      `json:"title"`
	Color         string      `json:"color"`
	Source        EventSource `json:"source,omitempty"`
	GoogleEventID string      `json:"googleEventId,omitempty"`
}

func (e Event) IsAllDay() bool {
	return e.Time == AllDay
}

// ReadOnly reports whether the event was mirrored from an external calendar.
func (e Event) ReadOnly() bool {
	return e.Source == SourceGoogle
}

// minuteOfDay returns -1 for all-day or unparsable times so they sort first.
func (e Event) minuteOfDay() int {
	t, err := time.Parse(DisplayLayout, e.Time)
	if err != nil {
		return -1
	}
	return t.Hour()*60 + t.Minute()
}

// SortEvents orders events by date, then start time, all-day entries first.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].minuteOfDay() < events[j].minuteOfDay()
	})
}

// AlertKey identifies the upcoming-event warning of one event on one day.
type AlertKey struct {
	EventID int
	DayKey  string
}

func (k AlertKey) String() string {
	return fmt.Sprintf("event-alert-%d-%s", k.EventID, k.DayKey)
}
