package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusboard/internal/model"
)

func strPtr(s string) *string { return &s }

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		name string
		code string
		at   *string
		want model.Frequency
	}{
		{name: "once", code: "once", at: strPtr("14:00"), want: model.Once("14:00")},
		{name: "daily pads hour", code: "daily", at: strPtr("9:30"), want: model.Daily("09:30")},
		{name: "interval", code: "interval-3", want: model.Every(3)},
		{name: "interval ignores time", code: "interval-1", at: strPtr("10:00"), want: model.Every(1)},
		{name: "daily without time", code: "daily", want: model.Frequency{}},
		{name: "daily with bad time", code: "daily", at: strPtr("25:99"), want: model.Frequency{}},
		{name: "zero interval", code: "interval-0", want: model.Frequency{}},
		{name: "non numeric interval", code: "interval-x", want: model.Frequency{}},
		{name: "unknown", code: "weekly", at: strPtr("10:00"), want: model.Frequency{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.ParseFrequency(tt.code, tt.at)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.IsValid(), got.Kind != model.FrequencyInvalid)
		})
	}
}

func TestFrequencyString(t *testing.T) {
	assert.Equal(t, "Once at 2:00 PM", model.Once("14:00").String())
	assert.Equal(t, "Daily at 9:05 AM", model.Daily("09:05").String())
	assert.Equal(t, "Every 1 hour", model.Every(1).String())
	assert.Equal(t, "Every 4 hours", model.Every(4).String())
	assert.Equal(t, "interval-4", model.Every(4).Code())
}

func TestReminderLegacyJSON(t *testing.T) {
	raw := `[
		{"id":1,"text":"Meds","time":"14:00","frequency":"daily","enabled":true,"lastShown":"2024-01-15"},
		{"id":2,"text":"Stretch","time":null,"frequency":"interval-2","enabled":true,"lastShown":null},
		{"id":3,"text":"Broken","time":null,"frequency":"daily","enabled":true,"lastShown":null}
	]`

	var reminders []model.Reminder
	require.NoError(t, json.Unmarshal([]byte(raw), &reminders))
	require.Len(t, reminders, 3)
	assert.Equal(t, model.Daily("14:00"), reminders[0].Frequency)
	assert.Equal(t, "2024-01-15", *reminders[0].LastShown)
	assert.Equal(t, model.Every(2), reminders[1].Frequency)
	assert.Nil(t, reminders[1].LastShown)
	assert.Equal(t, model.FrequencyInvalid, reminders[2].Frequency.Kind)

	out, err := json.Marshal(reminders[:2])
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"id":1,"text":"Meds","time":"14:00","frequency":"daily","enabled":true,"lastShown":"2024-01-15"},
		{"id":2,"text":"Stretch","time":null,"frequency":"interval-2","enabled":true,"lastShown":null}
	]`, string(out))
}
