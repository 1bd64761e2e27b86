package service

import (
	"sync"
	"time"

	"focusboard/internal/model"
)

const maxActiveNotifications = 50

// Dashboard owns the session state. The bot and the scheduler goroutines
// mutate it only through its methods; every mutation bumps Version so the
// persister knows when to save.
type Dashboard struct {
	mu       sync.Mutex
	state    model.SessionState
	contacts []model.Contact
	active   []model.Notification
	lastID   int64
	version  uint64

	loc   *time.Location
	clock func() time.Time
}

// NewDashboard wraps an already loaded state. A nil clock means time.Now.
func NewDashboard(state model.SessionState, contacts []model.Contact, loc *time.Location, clock func() time.Time) *Dashboard {
	if loc == nil {
		loc = time.Local
	}
	if clock == nil {
		clock = time.Now
	}
	state.ApplyDefaults()
	return &Dashboard{
		state:    state,
		contacts: contacts,
		loc:      loc,
		clock:    clock,
	}
}

// Now returns the current time in the dashboard's time zone.
func (d *Dashboard) Now() time.Time {
	return d.clock().In(d.loc)
}

func (d *Dashboard) Location() *time.Location {
	return d.loc
}

func (d *Dashboard) Version() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version
}

func (d *Dashboard) touch() {
	d.version++
}

// Snapshot returns a copy of the session state safe to read without the lock.
func (d *Dashboard) Snapshot() model.SessionState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return copyState(d.state)
}

// Contacts returns a copy of the relationship list.
func (d *Dashboard) Contacts() []model.Contact {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]model.Contact(nil), d.contacts...)
}

func copyState(s model.SessionState) model.SessionState {
	out := s
	out.DailyRoutine = append([]model.RoutineItem(nil), s.DailyRoutine...)
	out.Todos = append([]model.Todo(nil), s.Todos...)
	out.Events = append([]model.Event(nil), s.Events...)
	out.Reminders = append([]model.Reminder(nil), s.Reminders...)
	out.Moods = append([]model.MoodEntry(nil), s.Moods...)
	out.DailyRoutineHistory = append([]model.RoutineHistory(nil), s.DailyRoutineHistory...)
	out.TodoCompletions = append([]model.TodoCompletion(nil), s.TodoCompletions...)
	if s.GoogleCalendar != nil {
		cal := *s.GoogleCalendar
		cal.Events = append([]model.Event(nil), s.GoogleCalendar.Events...)
		out.GoogleCalendar = &cal
	}
	return out
}

// ResetIfNewDay runs the daily routine reset against today's day-key.
func (d *Dashboard) ResetIfNewDay() bool {
	today := model.DayKey(d.Now())

	d.mu.Lock()
	defer d.mu.Unlock()
	if !ResetDailyRoutine(&d.state, today) {
		return false
	}
	d.touch()
	return true
}

// TodaysEvents merges local and mirrored events dated dayKey, sorted by time.
func (d *Dashboard) TodaysEvents(dayKey string) []model.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return eventsOn(d.state, dayKey)
}

func eventsOn(s model.SessionState, dayKey string) []model.Event {
	var out []model.Event
	for _, e := range s.Events {
		if e.Date == dayKey {
			out = append(out, e)
		}
	}
	if s.GoogleCalendar != nil {
		for _, e := range s.GoogleCalendar.Events {
			if e.Date == dayKey {
				out = append(out, e)
			}
		}
	}
	model.SortEvents(out)
	return out
}

// Apply stores the outcome of an evaluation tick: new LastShown values and
// the fired notifications, which receive their IDs here. It returns the
// notifications as added to the active list. result must have been
// evaluated against the current reminders; the scheduler uses RunTick,
// which holds the lock across both steps.
func (d *Dashboard) Apply(result TickResult) []model.Notification {
	if result.Empty() {
		return nil
	}
	now := d.clock()

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.applyLocked(result, now)
}

// RunTick evaluates reminders and today's events at now and applies the
// result under one lock; a reminder edited after the tick keeps the
// LastShown its edit set. The returned notifications carry their IDs.
func (d *Dashboard) RunTick(now time.Time, alerted map[string]struct{}) TickResult {
	stamp := d.clock()

	d.mu.Lock()
	defer d.mu.Unlock()
	result := Evaluate(now, d.state.Reminders, eventsOn(d.state, model.DayKey(now)), alerted)
	if result.Empty() {
		return result
	}
	result.Notifications = d.applyLocked(result, stamp)
	return result
}

func (d *Dashboard) applyLocked(result TickResult, now time.Time) []model.Notification {
	if len(result.ReminderUpdates) > 0 {
		updates := make(map[int]string, len(result.ReminderUpdates))
		for _, u := range result.ReminderUpdates {
			updates[u.ID] = u.LastShown
		}
		reminders := make([]model.Reminder, len(d.state.Reminders))
		for i, r := range d.state.Reminders {
			if shown, ok := updates[r.ID]; ok {
				r.LastShown = &shown
			}
			reminders[i] = r
		}
		d.state.Reminders = reminders
	}

	added := make([]model.Notification, 0, len(result.Notifications))
	for _, n := range result.Notifications {
		added = append(added, d.pushLocked(n, now))
	}
	d.touch()
	return added
}

// Push adds a notification raised outside the tick, e.g. by the focus timer.
func (d *Dashboard) Push(n model.Notification) model.Notification {
	now := d.clock()
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pushLocked(n, now)
}

func (d *Dashboard) pushLocked(n model.Notification, now time.Time) model.Notification {
	id := now.UnixMilli()
	if id <= d.lastID {
		id = d.lastID + 1
	}
	d.lastID = id
	n.ID = id
	d.active = append(d.active, n)
	if len(d.active) > maxActiveNotifications {
		d.active = d.active[len(d.active)-maxActiveNotifications:]
	}
	return n
}

// ActiveNotifications lists notifications not yet dismissed, oldest first.
func (d *Dashboard) ActiveNotifications() []model.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]model.Notification(nil), d.active...)
}

// Dismiss removes a notification from the active list.
func (d *Dashboard) Dismiss(id int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, n := range d.active {
		if n.ID == id {
			d.active = append(d.active[:i:i], d.active[i+1:]...)
			return true
		}
	}
	return false
}

// Snooze removes the notification exactly like Dismiss. Nothing re-delivers
// it later.
func (d *Dashboard) Snooze(id int64) bool {
	return d.Dismiss(id)
}

// ToggleSound flips sound cues and returns the new setting.
func (d *Dashboard) ToggleSound() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	on := !d.state.Sound()
	d.state.SoundEnabled = &on
	d.touch()
	return on
}

func (d *Dashboard) SoundEnabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.Sound()
}

// SetVolume stores a volume between 0 and 1.
func (d *Dashboard) SetVolume(v float64) error {
	if v < 0 || v > 1 {
		return model.NewValidationError("volume", "must be between 0 and 1")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.SoundVolume = &v
	d.touch()
	return nil
}

// ToggleTheme flips dark mode and returns the new setting.
func (d *Dashboard) ToggleTheme() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.IsDarkMode = !d.state.IsDarkMode
	d.touch()
	return d.state.IsDarkMode
}

// CalendarData returns a copy of the Google Calendar section.
func (d *Dashboard) CalendarData() model.CalendarData {
	d.mu.Lock()
	defer d.mu.Unlock()
	cal := *d.state.GoogleCalendar
	cal.Events = append([]model.Event(nil), cal.Events...)
	return cal
}

// SetCalendarAuth replaces the stored connection, e.g. after connect or a token refresh.
func (d *Dashboard) SetCalendarAuth(auth model.CalendarAuth) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.GoogleCalendar.Auth = auth
	d.touch()
}

// ReplaceGoogleEvents swaps in a fresh mirror after a successful sync and
// clears the last error.
func (d *Dashboard) ReplaceGoogleEvents(events []model.Event, auth model.CalendarAuth, fetchedAt time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cal := d.state.GoogleCalendar
	cal.Events = append([]model.Event(nil), events...)
	auth.LastSync = &fetchedAt
	cal.Auth = auth
	cal.LastFetch = &fetchedAt
	cal.Error = ""
	d.touch()
}

// SetCalendarError records a sync failure and leaves mirrored events untouched.
func (d *Dashboard) SetCalendarError(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.GoogleCalendar.Error = msg
	d.touch()
}

// ClearCalendar forgets the connection and every mirrored event.
func (d *Dashboard) ClearCalendar() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.GoogleCalendar = &model.CalendarData{}
	d.touch()
}
