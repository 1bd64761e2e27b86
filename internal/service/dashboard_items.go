package service

import (
	"fmt"
	"strings"
	"time"

	"focusboard/internal/model"
)

func nextID[T any](items []T, id func(T) int) int {
	highest := 0
	for _, item := range items {
		if v := id(item); v > highest {
			highest = v
		}
	}
	return highest + 1
}

func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", model.NewValidationError(field, "must not be empty")
	}
	return value, nil
}

func notFound(kind string, id int) error {
	return fmt.Errorf("%s %d: %w", kind, id, model.ErrNotFound)
}

// Routine returns the daily checklist in display order.
func (d *Dashboard) Routine() []model.RoutineItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]model.RoutineItem(nil), d.state.DailyRoutine...)
}

func (d *Dashboard) AddRoutineItem(text string) (model.RoutineItem, error) {
	text, err := requireText("text", text)
	if err != nil {
		return model.RoutineItem{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	item := model.RoutineItem{
		ID:   nextID(d.state.DailyRoutine, func(i model.RoutineItem) int { return i.ID }),
		Text: text,
	}
	d.state.DailyRoutine = append(d.state.DailyRoutine, item)
	d.touch()
	return item, nil
}

func (d *Dashboard) ToggleRoutineItem(id int) (model.RoutineItem, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.state.DailyRoutine {
		if d.state.DailyRoutine[i].ID == id {
			d.state.DailyRoutine[i].Completed = !d.state.DailyRoutine[i].Completed
			d.touch()
			return d.state.DailyRoutine[i], nil
		}
	}
	return model.RoutineItem{}, notFound("routine item", id)
}

func (d *Dashboard) RemoveRoutineItem(id int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, item := range d.state.DailyRoutine {
		if item.ID == id {
			d.state.DailyRoutine = append(d.state.DailyRoutine[:i:i], d.state.DailyRoutine[i+1:]...)
			d.touch()
			return nil
		}
	}
	return notFound("routine item", id)
}

// MoveRoutineItem shifts an item by delta positions, clamped to the list bounds.
func (d *Dashboard) MoveRoutineItem(id, delta int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	items := d.state.DailyRoutine
	from := -1
	for i, item := range items {
		if item.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return notFound("routine item", id)
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(items)-1 {
		to = len(items) - 1
	}
	if to == from {
		return nil
	}
	moved := items[from]
	reordered := make([]model.RoutineItem, 0, len(items))
	reordered = append(reordered, items[:from]...)
	reordered = append(reordered, items[from+1:]...)
	reordered = append(reordered[:to], append([]model.RoutineItem{moved}, reordered[to:]...)...)
	d.state.DailyRoutine = reordered
	d.touch()
	return nil
}

// Todos returns the todo list in display order.
func (d *Dashboard) Todos() []model.Todo {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]model.Todo(nil), d.state.Todos...)
}

func (d *Dashboard) AddTodo(text string, priority model.Priority) (model.Todo, error) {
	text, err := requireText("text", text)
	if err != nil {
		return model.Todo{}, err
	}
	if priority == "" {
		priority = model.PriorityMedium
	}
	if _, ok := model.ParsePriority(string(priority)); !ok {
		return model.Todo{}, model.NewValidationError("priority", "must be low, medium or high")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	todo := model.Todo{
		ID:       nextID(d.state.Todos, func(t model.Todo) int { return t.ID }),
		Text:     text,
		Priority: priority,
	}
	d.state.Todos = append(d.state.Todos, todo)
	d.touch()
	return todo, nil
}

// ToggleTodo flips completion; checking a todo off records a completion entry.
func (d *Dashboard) ToggleTodo(id int) (model.Todo, error) {
	now := d.Now()
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.state.Todos {
		todo := &d.state.Todos[i]
		if todo.ID != id {
			continue
		}
		todo.Completed = !todo.Completed
		if todo.Completed {
			d.state.TodoCompletions = append(d.state.TodoCompletions, model.TodoCompletion{
				ID:            todo.ID,
				Text:          todo.Text,
				Priority:      todo.Priority,
				CompletedAt:   now.UTC().Format(time.RFC3339Nano),
				CompletedDate: model.DayKey(now),
			})
		}
		d.touch()
		return *todo, nil
	}
	return model.Todo{}, notFound("todo", id)
}

func (d *Dashboard) RemoveTodo(id int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, todo := range d.state.Todos {
		if todo.ID == id {
			d.state.Todos = append(d.state.Todos[:i:i], d.state.Todos[i+1:]...)
			d.touch()
			return nil
		}
	}
	return notFound("todo", id)
}

// AddEvent creates a local event. clock is HH:MM, or empty for an all-day event.
func (d *Dashboard) AddEvent(date, clock, title, color string) (model.Event, error) {
	title, err := requireText("title", title)
	if err != nil {
		return model.Event{}, err
	}
	day, err := model.ParseDayKey(date, d.loc)
	if err != nil {
		return model.Event{}, err
	}
	display := model.AllDay
	if clock != "" {
		if display, err = model.To12Hour(clock); err != nil {
			return model.Event{}, err
		}
	}
	if color == "" {
		color = model.DefaultEventColor
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	event := model.Event{
		ID:     nextID(d.state.Events, func(e model.Event) int { return e.ID }),
		Date:   model.DayKey(day),
		Time:   display,
		Title:  title,
		Color:  color,
		Source: model.SourceLocal,
	}
	d.state.Events = append(d.state.Events, event)
	d.touch()
	return event, nil
}

// RemoveEvent deletes a local event. Mirrored events are read-only.
func (d *Dashboard) RemoveEvent(id int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, e := range d.state.Events {
		if e.ID == id {
			d.state.Events = append(d.state.Events[:i:i], d.state.Events[i+1:]...)
			d.touch()
			return nil
		}
	}
	for _, e := range d.state.GoogleCalendar.Events {
		if e.ID == id {
			return fmt.Errorf("event %d: %w", id, model.ErrReadOnly)
		}
	}
	return notFound("event", id)
}

// UpcomingEvents lists local and mirrored events from the given day on.
func (d *Dashboard) UpcomingEvents(fromDay string, limit int) []model.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []model.Event
	for _, e := range d.state.Events {
		if e.Date >= fromDay {
			out = append(out, e)
		}
	}
	for _, e := range d.state.GoogleCalendar.Events {
		if e.Date >= fromDay {
			out = append(out, e)
		}
	}
	model.SortEvents(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Reminders returns the reminder list.
func (d *Dashboard) Reminders() []model.Reminder {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]model.Reminder(nil), d.state.Reminders...)
}

func normalizeFrequency(f model.Frequency) (model.Frequency, error) {
	if err := f.Validate(); err != nil {
		return model.Frequency{}, err
	}
	if f.IsTimed() {
		at, _ := model.NormalizeClock(f.At)
		f.At = at
	}
	return f, nil
}

// AddReminder creates an enabled reminder with id max+1.
func (d *Dashboard) AddReminder(text string, freq model.Frequency) (model.Reminder, error) {
	text, err := requireText("text", text)
	if err != nil {
		return model.Reminder{}, err
	}
	if freq, err = normalizeFrequency(freq); err != nil {
		return model.Reminder{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	reminder := model.Reminder{
		ID:        nextID(d.state.Reminders, func(r model.Reminder) int { return r.ID }),
		Text:      text,
		Frequency: freq,
		Enabled:   true,
	}
	d.state.Reminders = append(d.state.Reminders, reminder)
	d.touch()
	return reminder, nil
}

// UpdateReminder replaces text and schedule and re-arms the reminder.
func (d *Dashboard) UpdateReminder(id int, text string, freq model.Frequency) (model.Reminder, error) {
	text, err := requireText("text", text)
	if err != nil {
		return model.Reminder{}, err
	}
	if freq, err = normalizeFrequency(freq); err != nil {
		return model.Reminder{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.state.Reminders {
		r := &d.state.Reminders[i]
		if r.ID != id {
			continue
		}
		r.Text = text
		r.Frequency = freq
		r.LastShown = nil
		d.touch()
		return *r, nil
	}
	return model.Reminder{}, notFound("reminder", id)
}

func (d *Dashboard) ToggleReminder(id int) (model.Reminder, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.state.Reminders {
		if d.state.Reminders[i].ID == id {
			d.state.Reminders[i].Enabled = !d.state.Reminders[i].Enabled
			d.touch()
			return d.state.Reminders[i], nil
		}
	}
	return model.Reminder{}, notFound("reminder", id)
}

func (d *Dashboard) RemoveReminder(id int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, r := range d.state.Reminders {
		if r.ID == id {
			d.state.Reminders = append(d.state.Reminders[:i:i], d.state.Reminders[i+1:]...)
			d.touch()
			return nil
		}
	}
	return notFound("reminder", id)
}

// SetMood logs today's mood, replacing an earlier entry for the same day.
func (d *Dashboard) SetMood(rating model.MoodRating) (model.MoodEntry, error) {
	if !rating.Valid() {
		return model.MoodEntry{}, model.NewValidationError("rating", "must be between 1 and 5")
	}
	now := d.Now()
	entry := model.MoodEntry{
		Date:      model.DayKey(now),
		Rating:    rating,
		Timestamp: now.UTC().Format(time.RFC3339Nano),
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, m := range d.state.Moods {
		if m.Date == entry.Date {
			d.state.Moods[i] = entry
			d.touch()
			return entry, nil
		}
	}
	d.state.Moods = append(d.state.Moods, entry)
	d.touch()
	return entry, nil
}

// ClearMood removes today's entry and reports whether there was one.
func (d *Dashboard) ClearMood() bool {
	today := model.DayKey(d.Now())
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, m := range d.state.Moods {
		if m.Date == today {
			d.state.Moods = append(d.state.Moods[:i:i], d.state.Moods[i+1:]...)
			d.touch()
			return true
		}
	}
	return false
}

// TodayMood returns today's entry if one was logged.
func (d *Dashboard) TodayMood() (model.MoodEntry, bool) {
	today := model.DayKey(d.Now())
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, m := range d.state.Moods {
		if m.Date == today {
			return m, true
		}
	}
	return model.MoodEntry{}, false
}

func (d *Dashboard) Moods() []model.MoodEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]model.MoodEntry(nil), d.state.Moods...)
}

func (d *Dashboard) AddContact(name string) (model.Contact, error) {
	name, err := requireText("name", name)
	if err != nil {
		return model.Contact{}, err
	}
	now := d.clock()
	d.mu.Lock()
	defer d.mu.Unlock()
	c := model.Contact{
		ID:              nextID(d.contacts, func(c model.Contact) int { return c.ID }),
		Name:            name,
		LastContactDate: now.UTC(),
	}
	d.contacts = append(d.contacts, c)
	d.touch()
	return c, nil
}

// MarkContacted sets the last contact date to now.
func (d *Dashboard) MarkContacted(id int) (model.Contact, error) {
	now := d.clock()
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.contacts {
		if d.contacts[i].ID == id {
			d.contacts[i].LastContactDate = now.UTC()
			d.touch()
			return d.contacts[i], nil
		}
	}
	return model.Contact{}, notFound("contact", id)
}

func (d *Dashboard) RemoveContact(id int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, c := range d.contacts {
		if c.ID == id {
			d.contacts = append(d.contacts[:i:i], d.contacts[i+1:]...)
			d.touch()
			return nil
		}
	}
	return notFound("contact", id)
}
