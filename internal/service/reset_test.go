package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusboard/internal/model"
	"focusboard/internal/service"
)

func TestResetDailyRoutine(t *testing.T) {
	state := model.SessionState{
		DailyRoutine: []model.RoutineItem{
			{ID: 1, Text: "Brush teeth", Completed: true},
			{ID: 2, Text: "Drink water", Completed: false},
			{ID: 4, Text: "Stretch", Completed: true},
		},
		Todos:         []model.Todo{{ID: 1, Text: "Ship", Completed: true}},
		Reminders:     model.DefaultReminders(),
		LastResetDate: "2024-01-14",
	}

	require.True(t, service.ResetDailyRoutine(&state, "2024-01-15"))

	assert.Equal(t, "2024-01-15", state.LastResetDate)
	assert.Equal(t, []model.RoutineItem{
		{ID: 1, Text: "Brush teeth"},
		{ID: 2, Text: "Drink water"},
		{ID: 4, Text: "Stretch"},
	}, state.DailyRoutine)
	assert.True(t, state.Todos[0].Completed, "todos are untouched")
	assert.Equal(t, model.DefaultReminders(), state.Reminders)

	require.Len(t, state.DailyRoutineHistory, 1)
	history := state.DailyRoutineHistory[0]
	assert.Equal(t, "2024-01-14", history.Date)
	assert.Equal(t, 2, history.CompletedCount)
	assert.Equal(t, 3, history.TotalCount)
	assert.InDelta(t, 2.0/3.0, history.CompletionRate, 1e-9)
	assert.True(t, history.Tasks[0].Completed)
}

func TestResetDailyRoutineSameDay(t *testing.T) {
	state := model.SessionState{
		DailyRoutine:  []model.RoutineItem{{ID: 1, Text: "Brush teeth", Completed: true}},
		LastResetDate: "2024-01-15",
	}
	assert.False(t, service.ResetDailyRoutine(&state, "2024-01-15"))
	assert.True(t, state.DailyRoutine[0].Completed)
	assert.Empty(t, state.DailyRoutineHistory)
}

func TestResetDailyRoutineFirstRunKeepsNoHistory(t *testing.T) {
	state := model.SessionState{DailyRoutine: []model.RoutineItem{{ID: 1, Text: "a", Completed: true}}}
	assert.True(t, service.ResetDailyRoutine(&state, "2024-01-15"))
	assert.False(t, state.DailyRoutine[0].Completed)
	assert.Empty(t, state.DailyRoutineHistory)
}
