package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"focusboard/internal/model"
)

// ExportFile is a rendered export ready to be sent as a document.
type ExportFile struct {
	Name string
	Data []byte
}

// ExportJSON renders the full session as indented JSON.
func ExportJSON(state model.SessionState, contacts []model.Contact, now time.Time) (ExportFile, error) {
	doc := struct {
		model.SessionState
		Contacts []model.Contact `json:"contacts,omitempty"`
	}{SessionState: state, Contacts: contacts}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return ExportFile{}, fmt.Errorf("encode export: %w", err)
	}
	return ExportFile{Name: exportName(now, "json"), Data: data}, nil
}

// ExportCSV renders the session as one CSV document with a titled section
// per collection, separated by blank lines.
func ExportCSV(state model.SessionState, now time.Time) (ExportFile, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	b := func(v bool) string { return strconv.FormatBool(v) }

	section := func(title string, header []string, rows [][]string) {
		_ = w.Write([]string{title})
		_ = w.Write(header)
		_ = w.WriteAll(rows)
		_ = w.Write(nil)
	}

	cal := state.GoogleCalendar
	if cal == nil {
		cal = &model.CalendarData{}
	}

	section("DASHBOARD OVERVIEW",
		[]string{"Last Updated", "Last Reset Date", "Dark Mode", "Sound Enabled", "Sound Volume", "Google Calendar Connected", "Google Calendar User"},
		[][]string{{state.LastUpdated, state.LastResetDate, b(state.IsDarkMode), b(state.Sound()),
			strconv.FormatFloat(state.Volume(), 'f', -1, 64), b(cal.Auth.IsConnected), cal.Auth.UserEmail}})

	rows := make([][]string, 0, len(state.DailyRoutine))
	for _, item := range state.DailyRoutine {
		rows = append(rows, []string{strconv.Itoa(item.ID), item.Text, b(item.Completed)})
	}
	section("DAILY ROUTINE", []string{"ID", "Task", "Completed"}, rows)

	rows = rows[:0:0]
	for _, t := range state.Todos {
		rows = append(rows, []string{strconv.Itoa(t.ID), t.Text, string(t.Priority), b(t.Completed)})
	}
	section("TODO LIST", []string{"ID", "Task", "Priority", "Completed"}, rows)

	rows = rows[:0:0]
	for _, e := range state.Events {
		rows = append(rows, []string{strconv.Itoa(e.ID), e.Date, e.Time, e.Title, e.Color, sourceOr(e.Source, model.SourceLocal)})
	}
	section("LOCAL EVENTS", []string{"ID", "Date", "Time", "Title", "Color", "Source"}, rows)

	if len(cal.Events) > 0 {
		rows = rows[:0:0]
		for _, e := range cal.Events {
			rows = append(rows, []string{strconv.Itoa(e.ID), e.Date, e.Time, e.Title, e.Color, sourceOr(e.Source, model.SourceGoogle), e.GoogleEventID})
		}
		section("GOOGLE CALENDAR EVENTS", []string{"ID", "Date", "Time", "Title", "Color", "Source", "Google Event ID"}, rows)
	}

	rows = rows[:0:0]
	for _, r := range state.Reminders {
		last := ""
		if r.LastShown != nil {
			last = *r.LastShown
		}
		rows = append(rows, []string{strconv.Itoa(r.ID), r.Text, r.ClockString(), r.Frequency.Code(), b(r.Enabled), last})
	}
	section("REMINDERS", []string{"ID", "Text", "Time", "Frequency", "Enabled", "Last Shown"}, rows)

	if len(state.Moods) > 0 {
		rows = rows[:0:0]
		for _, m := range state.Moods {
			rows = append(rows, []string{m.Date, strconv.Itoa(int(m.Rating)), m.Rating.Label(), m.Timestamp})
		}
		section("MOOD TRACKING", []string{"Date", "Rating", "Mood", "Timestamp"}, rows)
	}

	if len(state.DailyRoutineHistory) > 0 {
		rows = rows[:0:0]
		for _, h := range state.DailyRoutineHistory {
			for _, task := range h.Tasks {
				rows = append(rows, []string{h.Date, strconv.Itoa(task.ID), task.Text, b(task.Completed),
					strconv.FormatFloat(h.CompletionRate, 'f', 3, 64), strconv.Itoa(h.CompletedCount), strconv.Itoa(h.TotalCount)})
			}
		}
		section("DAILY ROUTINE HISTORY", []string{"Date", "Task ID", "Task", "Completed", "Completion Rate", "Completed Count", "Total Count"}, rows)
	}

	if len(state.TodoCompletions) > 0 {
		rows = rows[:0:0]
		for _, c := range state.TodoCompletions {
			rows = append(rows, []string{strconv.Itoa(c.ID), c.Text, string(c.Priority), c.CompletedAt, c.CompletedDate})
		}
		section("TODO COMPLETIONS", []string{"ID", "Task", "Priority", "Completed At", "Completed Date"}, rows)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return ExportFile{}, fmt.Errorf("write csv export: %w", err)
	}
	return ExportFile{Name: exportName(now, "csv"), Data: buf.Bytes()}, nil
}

func exportName(now time.Time, ext string) string {
	return fmt.Sprintf("focusboard_data_%s.%s", model.DayKey(now), ext)
}

func sourceOr(s, fallback model.EventSource) string {
	if s == "" {
		return string(fallback)
	}
	return string(s)
}
