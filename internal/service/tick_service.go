package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"focusboard/internal/model"
)

// AlertStore persists the day-scoped set of upcoming-event alert keys.
type AlertStore interface {
	KeysForDay(ctx context.Context, dayKey string) (map[string]struct{}, error)
	Record(ctx context.Context, keys []model.AlertKey) error
	PruneBefore(ctx context.Context, dayKey string) (int64, error)
}

// Deliverer surfaces a notification outside the in-app list.
type Deliverer interface {
	Deliver(ctx context.Context, n model.Notification, soundOn bool) model.Notification
}

// Flusher persists pending dashboard changes.
type Flusher interface {
	Flush(ctx context.Context) error
}

// TickService runs one scheduler evaluation against the dashboard.
type TickService struct {
	dash    *Dashboard
	alerts  AlertStore
	deliver Deliverer
	persist Flusher
	log     zerolog.Logger

	// Keys alerted in this process today; covers alert store failures.
	mu      sync.Mutex
	day     string
	alerted map[string]struct{}
}

func NewTickService(dash *Dashboard, alerts AlertStore, deliver Deliverer, persist Flusher, log zerolog.Logger) *TickService {
	return &TickService{
		dash:    dash,
		alerts:  alerts,
		deliver: deliver,
		persist: persist,
		log:     log,
		alerted: make(map[string]struct{}),
	}
}

// Tick evaluates reminders and today's events once and applies the result.
func (s *TickService) Tick(ctx context.Context) TickResult {
	now := s.dash.Now()
	dayKey := model.DayKey(now)

	alerted := s.alertedKeys(ctx, dayKey)
	result := s.dash.RunTick(now, alerted)
	if result.Empty() {
		return result
	}

	s.remember(dayKey, result.NewAlertedKeys)
	if err := s.alerts.Record(ctx, result.NewAlertedKeys); err != nil {
		s.log.Error().Err(err).Msg("record event alerts")
	}

	soundOn := s.dash.SoundEnabled()
	for _, n := range result.Notifications {
		s.log.Info().Int64("notification_id", n.ID).Str("title", n.Title).Str("message", n.Message).Msg("notification fired")
		s.deliver.Deliver(ctx, n, soundOn)
	}

	if err := s.persist.Flush(ctx); err != nil {
		s.log.Error().Err(err).Msg("persist after tick")
	}
	return result
}

// Prune drops alert keys of earlier days.
func (s *TickService) Prune(ctx context.Context) {
	dayKey := model.DayKey(s.dash.Now())
	n, err := s.alerts.PruneBefore(ctx, dayKey)
	if err != nil {
		s.log.Error().Err(err).Msg("prune event alerts")
		return
	}
	if n > 0 {
		s.log.Debug().Int64("deleted", n).Msg("pruned event alerts")
	}
}

func (s *TickService) alertedKeys(ctx context.Context, dayKey string) map[string]struct{} {
	keys, err := s.alerts.KeysForDay(ctx, dayKey)
	if err != nil {
		s.log.Error().Err(err).Msg("load event alerts")
		keys = make(map[string]struct{})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.day != dayKey {
		s.day = dayKey
		s.alerted = make(map[string]struct{})
	}
	for k := range s.alerted {
		keys[k] = struct{}{}
	}
	return keys
}

func (s *TickService) remember(dayKey string, keys []model.AlertKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.day != dayKey {
		s.day = dayKey
		s.alerted = make(map[string]struct{})
	}
	for _, k := range keys {
		s.alerted[k.String()] = struct{}{}
	}
}
