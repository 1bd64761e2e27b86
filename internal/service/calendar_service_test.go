package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusboard/internal/calendar"
	"focusboard/internal/model"
	"focusboard/internal/service"
)

type fakeCalendar struct {
	events       []model.Event
	fetchErr     error
	connectCode  string
	disconnected bool
}

func (f *fakeCalendar) AuthURL(state string) string {
	return "https://accounts.example.test/auth?state=" + url.QueryEscape(state)
}

func (f *fakeCalendar) Connect(_ context.Context, code string) (model.CalendarAuth, error) {
	f.connectCode = code
	return model.CalendarAuth{IsConnected: true, AccessToken: "token", UserEmail: "owner@example.test"}, nil
}

func (f *fakeCalendar) Disconnect(context.Context, model.CalendarAuth) error {
	f.disconnected = true
	return nil
}

func (f *fakeCalendar) FetchEvents(_ context.Context, auth model.CalendarAuth) ([]model.Event, model.CalendarAuth, error) {
	if f.fetchErr != nil {
		return nil, auth, f.fetchErr
	}
	auth.AccessToken = "refreshed"
	return f.events, auth, nil
}

func stateFromURL(t *testing.T, raw string) string {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Query().Get("state")
}

func TestCalendarServiceConnectAndSync(t *testing.T) {
	dash, _ := newDashboard(t, model.SessionState{})
	source := &fakeCalendar{events: []model.Event{{ID: 10, Date: "2024-01-15", Time: "3:00 PM", Title: "Review", Source: model.SourceGoogle}}}
	svc := service.NewCalendarService(dash, source, &countingFlusher{}, zerolog.Nop())

	state := stateFromURL(t, svc.BeginConnect())
	require.NotEmpty(t, state)

	redirect := fmt.Sprintf("http://localhost/callback?code=abc&state=%s", state)
	require.NoError(t, svc.CompleteConnect(context.Background(), redirect))
	assert.Equal(t, "abc", source.connectCode)

	cal := dash.CalendarData()
	assert.True(t, cal.Auth.IsConnected)
	assert.Equal(t, "refreshed", cal.Auth.AccessToken)
	assert.Equal(t, "owner@example.test", cal.Auth.UserEmail)
	require.NotNil(t, cal.LastFetch)
	assert.Len(t, cal.Events, 1)
	assert.Len(t, dash.TodaysEvents("2024-01-15"), 1)
}

func TestCalendarServiceRejectsStateMismatch(t *testing.T) {
	dash, _ := newDashboard(t, model.SessionState{})
	svc := service.NewCalendarService(dash, &fakeCalendar{}, &countingFlusher{}, zerolog.Nop())

	assert.ErrorIs(t, svc.CompleteConnect(context.Background(), "abc"), service.ErrNoPendingConnect)

	svc.BeginConnect()
	err := svc.CompleteConnect(context.Background(), "http://localhost/callback?code=abc&state=forged")
	assert.True(t, model.IsValidationError(err))
	assert.False(t, dash.CalendarData().Auth.IsConnected)
}

func TestCalendarServiceSyncFailureKeepsEvents(t *testing.T) {
	dash, _ := newDashboard(t, model.SessionState{})
	source := &fakeCalendar{events: []model.Event{{ID: 10, Date: "2024-01-15", Time: "3:00 PM", Title: "Review", Source: model.SourceGoogle}}}
	svc := service.NewCalendarService(dash, source, &countingFlusher{}, zerolog.Nop())
	svc.BeginConnect()
	require.NoError(t, svc.CompleteConnect(context.Background(), "abc"))

	source.fetchErr = errors.New("503 backend error")
	err := svc.Sync(context.Background())
	require.Error(t, err)
	cal := dash.CalendarData()
	assert.Contains(t, cal.Error, "503 backend error")
	assert.Len(t, cal.Events, 1)
	assert.True(t, cal.Auth.IsConnected)

	source.fetchErr = fmt.Errorf("refresh: %w", calendar.ErrReconnectRequired)
	err = svc.Sync(context.Background())
	assert.ErrorIs(t, err, calendar.ErrReconnectRequired)
	assert.False(t, dash.CalendarData().Auth.IsConnected)
	assert.Len(t, dash.CalendarData().Events, 1)

	assert.ErrorIs(t, svc.Sync(context.Background()), calendar.ErrNotConnected)
}

func TestCalendarServiceDisconnect(t *testing.T) {
	dash, _ := newDashboard(t, model.SessionState{})
	source := &fakeCalendar{events: []model.Event{{ID: 10, Source: model.SourceGoogle}}}
	svc := service.NewCalendarService(dash, source, &countingFlusher{}, zerolog.Nop())
	svc.BeginConnect()
	require.NoError(t, svc.CompleteConnect(context.Background(), "abc"))

	require.NoError(t, svc.Disconnect(context.Background()))
	assert.True(t, source.disconnected)
	cal := dash.CalendarData()
	assert.False(t, cal.Auth.IsConnected)
	assert.Empty(t, cal.Events)
}
