package service

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "08:00", want: "0 0 8 * * *"},
		{in: "23:59", want: "0 59 23 * * *"},
		{in: "7:05", want: "0 5 7 * * *"},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := buildDailySpec(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAuthInput(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantCode  string
		wantState string
	}{
		{name: "bare code", in: "  4/0AbCd  ", wantCode: "4/0AbCd"},
		{name: "redirect url", in: "http://localhost:8080/?state=s1&code=4%2F0AbCd&scope=x", wantCode: "4/0AbCd", wantState: "s1"},
		{name: "empty", in: "", wantCode: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, state := parseAuthInput(tt.in)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantState, state)
		})
	}
}

func TestScheduleEveryRejectsSubSecond(t *testing.T) {
	s := NewSchedulerService(time.UTC, zerolog.Nop())
	_, err := s.ScheduleEvery(500*time.Millisecond, func() {})
	assert.Error(t, err)
	_, err = s.ScheduleEvery(0, func() {})
	assert.Error(t, err)
}

func TestScheduleEveryRunsJob(t *testing.T) {
	s := NewSchedulerService(time.UTC, zerolog.Nop())
	var runs atomic.Int32
	_, err := s.ScheduleEvery(time.Second, func() { runs.Add(1) })
	require.NoError(t, err)

	s.Start()
	defer s.Stop()
	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
}
