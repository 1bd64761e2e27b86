package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"

	"focusboard/internal/calendar"
	"focusboard/internal/model"
)

func TestStableID(t *testing.T) {
	assert.Equal(t, 0, calendar.StableID(""))
	assert.Equal(t, 97, calendar.StableID("a"))
	assert.Equal(t, 3105, calendar.StableID("ab"))
	assert.Equal(t, calendar.StableID("abc123xyz"), calendar.StableID("abc123xyz"))

	long := "7kukuqrfedlm2f9t6gp3k9ki1c_20240115T150000Z"
	assert.GreaterOrEqual(t, calendar.StableID(long), 0)
}

func TestConvertEvent(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)

	tests := []struct {
		name   string
		in     *gcal.Event
		want   model.Event
		wantOK bool
	}{
		{
			name: "timed event in local zone",
			in:   &gcal.Event{Id: "a", Summary: "Review", Start: &gcal.EventDateTime{DateTime: "2024-01-15T20:00:00Z"}},
			want: model.Event{ID: 97, Date: "2024-01-15", Time: "3:00 PM", Title: "Review",
				Color: model.GoogleEventColor, Source: model.SourceGoogle, GoogleEventID: "a"},
			wantOK: true,
		},
		{
			name: "crosses midnight into previous day",
			in:   &gcal.Event{Id: "a", Summary: "Late", Start: &gcal.EventDateTime{DateTime: "2024-01-16T02:30:00Z"}},
			want: model.Event{ID: 97, Date: "2024-01-15", Time: "9:30 PM", Title: "Late",
				Color: model.GoogleEventColor, Source: model.SourceGoogle, GoogleEventID: "a"},
			wantOK: true,
		},
		{
			name: "all day untitled",
			in:   &gcal.Event{Id: "ab", Start: &gcal.EventDateTime{Date: "2024-01-20"}},
			want: model.Event{ID: 3105, Date: "2024-01-20", Time: model.AllDay, Title: "Untitled Event",
				Color: model.GoogleEventColor, Source: model.SourceGoogle, GoogleEventID: "ab"},
			wantOK: true,
		},
		{name: "no start", in: &gcal.Event{Id: "x"}, wantOK: false},
		{name: "bad date", in: &gcal.Event{Id: "x", Start: &gcal.EventDateTime{Date: "tomorrow"}}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := calendar.ConvertEvent(tt.in, loc)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
