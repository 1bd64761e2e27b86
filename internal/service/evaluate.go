package service

import (
	"time"

	"focusboard/internal/model"
)

// EventLeadTime is how long before an event starts its warning fires.
const EventLeadTime = 15 * time.Minute

// ReminderUpdate is the new LastShown value for a reminder that fired.
type ReminderUpdate struct {
	ID        int
	LastShown string
}

// TickResult is everything one evaluation decided.
type TickResult struct {
	Notifications   []model.Notification
	ReminderUpdates []ReminderUpdate
	NewAlertedKeys  []model.AlertKey
}

func (r TickResult) Empty() bool {
	return len(r.Notifications) == 0 && len(r.ReminderUpdates) == 0 && len(r.NewAlertedKeys) == 0
}

// Evaluate decides which reminders and upcoming-event warnings fire at now.
// Wall-clock values (current minute, day-key, event display time) are taken
// in now's location. todaysEvents must already be filtered to today's
// date; alerted holds the alert keys recorded earlier today. Notification
// IDs are left zero for the owner to assign.
func Evaluate(now time.Time, reminders []model.Reminder, todaysEvents []model.Event, alerted map[string]struct{}) TickResult {
	var result TickResult

	currentTime := model.ClockTime(now)
	todayKey := model.DayKey(now)

	for _, reminder := range reminders {
		if !reminder.Enabled {
			continue
		}
		lastShown, fire := shouldFire(reminder, now, currentTime, todayKey)
		if !fire {
			continue
		}
		result.Notifications = append(result.Notifications, model.Notification{
			Title:   model.ReminderTitle,
			Message: reminder.Text,
			Sound:   model.SoundReminderGentle,
		})
		result.ReminderUpdates = append(result.ReminderUpdates, ReminderUpdate{ID: reminder.ID, LastShown: lastShown})
	}

	upcoming := model.DisplayTime(now.Add(EventLeadTime))
	seen := make(map[string]struct{})
	for _, event := range todaysEvents {
		if event.IsAllDay() || event.Time != upcoming {
			continue
		}
		key := model.AlertKey{EventID: event.ID, DayKey: todayKey}
		if _, ok := alerted[key.String()]; ok {
			continue
		}
		if _, ok := seen[key.String()]; ok {
			continue
		}
		seen[key.String()] = struct{}{}
		result.Notifications = append(result.Notifications, model.Notification{
			Title:   model.EventTitle,
			Message: event.Title + " in 15 minutes!",
			Sound:   model.SoundEventWarning,
		})
		result.NewAlertedKeys = append(result.NewAlertedKeys, key)
	}

	return result
}

// shouldFire applies the per-frequency rules and returns the LastShown value
// to store when the reminder fires.
func shouldFire(r model.Reminder, now time.Time, currentTime, todayKey string) (string, bool) {
	switch r.Frequency.Kind {
	case model.FrequencyOnce:
		if r.Frequency.At != currentTime || r.LastShown != nil {
			return "", false
		}
		return now.Format(time.RFC3339Nano), true
	case model.FrequencyDaily:
		if r.Frequency.At != currentTime {
			return "", false
		}
		if r.LastShown != nil && *r.LastShown == todayKey {
			return "", false
		}
		return todayKey, true
	case model.FrequencyInterval:
		if r.Frequency.Hours <= 0 {
			return "", false
		}
		if r.LastShown != nil {
			last, err := time.Parse(time.RFC3339Nano, *r.LastShown)
			if err != nil {
				return "", false
			}
			elapsed := now.Sub(last).Milliseconds()
			if float64(elapsed)/float64(time.Hour.Milliseconds()) < float64(r.Frequency.Hours) {
				return "", false
			}
		}
		return now.Format(time.RFC3339Nano), true
	default:
		return "", false
	}
}
