package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"focusboard/internal/model"
	"focusboard/internal/service"
)

func TestDailySummary(t *testing.T) {
	state := model.SessionState{
		DailyRoutine: []model.RoutineItem{{ID: 1, Text: "Stretch", Completed: true}, {ID: 2, Text: "Water"}},
		Todos: []model.Todo{
			{ID: 1, Text: "Ship <release>", Priority: model.PriorityHigh},
			{ID: 2, Text: "Done already", Priority: model.PriorityLow, Completed: true},
		},
		Events: []model.Event{
			{ID: 1, Date: "2024-01-15", Time: "3:00 PM", Title: "Dentist"},
			{ID: 2, Date: "2024-01-16", Time: "9:00 AM", Title: "Tomorrow"},
		},
		Reminders: []model.Reminder{
			{ID: 1, Text: "Meds", Frequency: model.Daily("14:00"), Enabled: true},
			{ID: 2, Text: "Muted", Frequency: model.Every(2), Enabled: false},
		},
	}
	dash, _ := newDashboard(t, state)

	summary := service.NewDigestService(dash).DailySummary()

	assert.Contains(t, summary, "Monday, January 15, 2024")
	assert.Contains(t, summary, "<b>Routine</b> 1/2")
	assert.Contains(t, summary, "🔴 Ship &lt;release&gt;")
	assert.NotContains(t, summary, "Done already")
	assert.Contains(t, summary, "<b>3:00 PM</b> Dentist")
	assert.NotContains(t, summary, "Tomorrow")
	assert.Contains(t, summary, "Meds <i>(Daily at 2:00 PM)</i>")
	assert.NotContains(t, summary, "Muted")
}
