package calendar

import (
	"time"
	"unicode/utf16"

	gcal "google.golang.org/api/calendar/v3"

	"focusboard/internal/model"
)

const untitled = "Untitled Event"

// ConvertEvent maps a Google event to a read-only dashboard event in loc.
// Events without a usable start are skipped.
func ConvertEvent(e *gcal.Event, loc *time.Location) (model.Event, bool) {
	if e == nil || e.Start == nil {
		return model.Event{}, false
	}

	out := model.Event{
		ID:            StableID(e.Id),
		Title:         e.Summary,
		Color:         model.GoogleEventColor,
		Source:        model.SourceGoogle,
		GoogleEventID: e.Id,
	}
	if out.Title == "" {
		out.Title = untitled
	}

	switch {
	case e.Start.DateTime != "":
		start, err := time.Parse(time.RFC3339, e.Start.DateTime)
		if err != nil {
			return model.Event{}, false
		}
		start = start.In(loc)
		out.Date = model.DayKey(start)
		out.Time = model.DisplayTime(start)
	case e.Start.Date != "":
		if _, err := time.Parse(model.DayKeyLayout, e.Start.Date); err != nil {
			return model.Event{}, false
		}
		out.Date = e.Start.Date
		out.Time = model.AllDay
	default:
		return model.Event{}, false
	}
	return out, true
}

// StableID hashes a Google event id into a non-negative int so the same
// event keeps its id across syncs.
func StableID(googleID string) int {
	var hash int32
	for _, unit := range utf16.Encode([]rune(googleID)) {
		hash = (hash << 5) - hash + int32(unit)
	}
	id := int64(hash)
	if id < 0 {
		id = -id
	}
	return int(id)
}
