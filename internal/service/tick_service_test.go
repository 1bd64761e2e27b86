package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusboard/internal/model"
	"focusboard/internal/service"
)

type fakeAlertStore struct {
	mu        sync.Mutex
	keys      map[string]string
	loadErr   error
	recordErr error
}

func newFakeAlertStore() *fakeAlertStore {
	return &fakeAlertStore{keys: make(map[string]string)}
}

func (s *fakeAlertStore) KeysForDay(_ context.Context, dayKey string) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make(map[string]struct{})
	for k, day := range s.keys {
		if day == dayKey {
			out[k] = struct{}{}
		}
	}
	return out, nil
}

func (s *fakeAlertStore) Record(_ context.Context, keys []model.AlertKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recordErr != nil {
		return s.recordErr
	}
	for _, k := range keys {
		s.keys[k.String()] = k.DayKey
	}
	return nil
}

func (s *fakeAlertStore) PruneBefore(_ context.Context, dayKey string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for k, day := range s.keys {
		if day < dayKey {
			delete(s.keys, k)
			n++
		}
	}
	return n, nil
}

type delivery struct {
	n       model.Notification
	soundOn bool
}

type fakeDeliverer struct {
	mu        sync.Mutex
	delivered []delivery
}

func (d *fakeDeliverer) Deliver(_ context.Context, n model.Notification, soundOn bool) model.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delivered = append(d.delivered, delivery{n: n, soundOn: soundOn})
	return n
}

func (d *fakeDeliverer) all() []delivery {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]delivery(nil), d.delivered...)
}

type countingFlusher struct {
	mu    sync.Mutex
	calls int
}

func (f *countingFlusher) Flush(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return nil
}

func TestTickServiceFiresAndPersists(t *testing.T) {
	state := model.SessionState{
		Reminders: []model.Reminder{{ID: 1, Text: "Lunch?", Frequency: model.Daily("14:45"), Enabled: true}},
		Events:    []model.Event{{ID: 2, Date: "2024-01-15", Time: "3:00 PM", Title: "Dentist"}},
	}
	dash, _ := newDashboard(t, state)
	dash.ToggleSound()
	alerts := newFakeAlertStore()
	deliver := &fakeDeliverer{}
	flusher := &countingFlusher{}
	tick := service.NewTickService(dash, alerts, deliver, flusher, zerolog.Nop())

	result := tick.Tick(context.Background())
	require.Len(t, result.Notifications, 2)
	assert.NotZero(t, result.Notifications[0].ID)

	delivered := deliver.all()
	require.Len(t, delivered, 2)
	assert.False(t, delivered[0].soundOn)
	assert.Len(t, dash.ActiveNotifications(), 2)
	assert.Equal(t, 1, flusher.calls)

	require.NotNil(t, dash.Reminders()[0].LastShown)
	assert.Equal(t, "2024-01-15", *dash.Reminders()[0].LastShown)
	assert.Contains(t, alerts.keys, "event-alert-2-2024-01-15")

	again := tick.Tick(context.Background())
	assert.True(t, again.Empty())
	assert.Len(t, deliver.all(), 2)
	assert.Equal(t, 1, flusher.calls, "nothing to persist")
}

func TestTickServiceRemembersAlertsWhenStoreFails(t *testing.T) {
	state := model.SessionState{
		Events: []model.Event{{ID: 2, Date: "2024-01-15", Time: "3:00 PM", Title: "Dentist"}},
	}
	dash, _ := newDashboard(t, state)
	alerts := newFakeAlertStore()
	alerts.loadErr = errors.New("disk gone")
	alerts.recordErr = errors.New("disk gone")
	deliver := &fakeDeliverer{}
	tick := service.NewTickService(dash, alerts, deliver, &countingFlusher{}, zerolog.Nop())

	require.Len(t, tick.Tick(context.Background()).Notifications, 1)
	assert.True(t, tick.Tick(context.Background()).Empty())
	assert.Len(t, deliver.all(), 1)
}

func TestTickServiceGoogleEventsAlert(t *testing.T) {
	dash, _ := newDashboard(t, model.SessionState{})
	dash.ReplaceGoogleEvents([]model.Event{
		{ID: 77, Date: "2024-01-15", Time: "3:00 PM", Title: "Review", Source: model.SourceGoogle},
	}, model.CalendarAuth{IsConnected: true}, time.Now())
	deliver := &fakeDeliverer{}
	tick := service.NewTickService(dash, newFakeAlertStore(), deliver, &countingFlusher{}, zerolog.Nop())

	result := tick.Tick(context.Background())
	require.Len(t, result.Notifications, 1)
	assert.Equal(t, "Review in 15 minutes!", result.Notifications[0].Message)
}

func TestTickServicePrune(t *testing.T) {
	dash, _ := newDashboard(t, model.SessionState{})
	alerts := newFakeAlertStore()
	alerts.keys["event-alert-1-2024-01-14"] = "2024-01-14"
	alerts.keys["event-alert-1-2024-01-15"] = "2024-01-15"
	tick := service.NewTickService(dash, alerts, &fakeDeliverer{}, &countingFlusher{}, zerolog.Nop())

	tick.Prune(context.Background())
	assert.Equal(t, map[string]string{"event-alert-1-2024-01-15": "2024-01-15"}, alerts.keys)
}

func TestTickServiceEditedOnceReminderFiresAgain(t *testing.T) {
	state := model.SessionState{
		Reminders: []model.Reminder{{ID: 1, Text: "Call back", Frequency: model.Once("14:45"), Enabled: true}},
	}
	dash, _ := newDashboard(t, state)
	deliver := &fakeDeliverer{}
	tick := service.NewTickService(dash, newFakeAlertStore(), deliver, &countingFlusher{}, zerolog.Nop())

	require.Len(t, tick.Tick(context.Background()).Notifications, 1)
	assert.True(t, tick.Tick(context.Background()).Empty(), "once reminders fire a single time")

	_, err := dash.UpdateReminder(1, "Call back, really", model.Once("14:45"))
	require.NoError(t, err)

	result := tick.Tick(context.Background())
	require.Len(t, result.Notifications, 1)
	assert.Equal(t, "Call back, really", result.Notifications[0].Message)
	assert.Len(t, deliver.all(), 2)
}
