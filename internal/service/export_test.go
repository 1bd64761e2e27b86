package service_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusboard/internal/model"
	"focusboard/internal/service"
)

func exportState() model.SessionState {
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	state := model.DefaultSession(now)
	state.Todos = append(state.Todos, model.Todo{ID: 4, Text: `Buy "fancy" tea, maybe`, Priority: model.PriorityLow})
	state.Moods = []model.MoodEntry{{Date: "2024-01-15", Rating: model.MoodGood, Timestamp: "2024-01-15T09:00:00Z"}}
	return state
}

func TestExportJSON(t *testing.T) {
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	contacts := []model.Contact{{ID: 1, Name: "Sam", LastContactDate: now}}

	file, err := service.ExportJSON(exportState(), contacts, now)
	require.NoError(t, err)
	assert.Equal(t, "focusboard_data_2024-01-15.json", file.Name)

	var decoded struct {
		model.SessionState
		Contacts []model.Contact `json:"contacts"`
	}
	require.NoError(t, json.Unmarshal(file.Data, &decoded))
	assert.Equal(t, model.DefaultReminders(), decoded.Reminders)
	assert.Len(t, decoded.Todos, 4)
	assert.Equal(t, "Sam", decoded.Contacts[0].Name)
	assert.Contains(t, string(file.Data), `"frequency": "interval-2"`)
}

func TestExportCSV(t *testing.T) {
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	file, err := service.ExportCSV(exportState(), now)
	require.NoError(t, err)
	assert.Equal(t, "focusboard_data_2024-01-15.csv", file.Name)

	out := string(file.Data)
	for _, section := range []string{"DASHBOARD OVERVIEW", "DAILY ROUTINE", "TODO LIST", "LOCAL EVENTS", "REMINDERS", "MOOD TRACKING"} {
		assert.Contains(t, out, section+"\n")
	}
	assert.NotContains(t, out, "GOOGLE CALENDAR EVENTS", "empty optional sections are skipped")
	assert.Contains(t, out, `4,"Buy ""fancy"" tea, maybe",low,false`)
	assert.Contains(t, out, "3,Take a stretch break! 🤸,,interval-2,true,")
	assert.Contains(t, out, "1,Take afternoon meds 💊,14:00,daily,true,")
	assert.True(t, strings.Contains(out, "\n\nDAILY ROUTINE\n"), "sections are separated by a blank line")
}
