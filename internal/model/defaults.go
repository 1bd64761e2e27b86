package model

import "time"

func DefaultDailyRoutine() []RoutineItem {
	return []RoutineItem{
		{ID: 1, Text: "Brush teeth"},
		{ID: 2, Text: "Take morning medication"},
		{ID: 3, Text: "Feed pets"},
		{ID: 4, Text: "Drink water"},
		{ID: 5, Text: "Morning stretch"},
	}
}

func DefaultTodos() []Todo {
	return []Todo{
		{ID: 1, Text: "Review project proposal", Priority: PriorityHigh},
		{ID: 2, Text: "Email team update", Priority: PriorityMedium},
		{ID: 3, Text: "Grocery shopping", Priority: PriorityLow},
	}
}

func DefaultEvents(today time.Time) []Event {
	day := DayKey(today)
	return []Event{
		{ID: 1, Date: day, Time: "10:00 AM", Title: "Team meeting", Color: DefaultEventColor, Source: SourceLocal},
		{ID: 2, Date: day, Time: "2:00 PM", Title: "Doctor appointment", Color: "#10B981", Source: SourceLocal},
	}
}

func DefaultReminders() []Reminder {
	return []Reminder{
		{ID: 1, Text: "Take afternoon meds 💊", Frequency: Daily("14:00"), Enabled: true},
		{ID: 2, Text: "Did you eat lunch yet? 🍽️", Frequency: Daily("12:30"), Enabled: true},
		{ID: 3, Text: "Take a stretch break! 🤸", Frequency: Every(2), Enabled: true},
		{ID: 4, Text: "Walk the dog before it gets dark! 🐕", Frequency: Daily("16:00"), Enabled: true},
	}
}

// DefaultSession is the state of a first-time user.
func DefaultSession(now time.Time) SessionState {
	s := SessionState{
		DailyRoutine:  DefaultDailyRoutine(),
		Todos:         DefaultTodos(),
		Events:        DefaultEvents(now),
		Reminders:     DefaultReminders(),
		LastResetDate: DayKey(now),
	}
	s.ApplyDefaults()
	return s
}
