package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"focusboard/internal/calendar"
	"focusboard/internal/model"
)

var ErrNoPendingConnect = errors.New("no calendar connection in progress, run /calendar connect first")

// CalendarSource is the external calendar collaborator.
type CalendarSource interface {
	AuthURL(state string) string
	Connect(ctx context.Context, code string) (model.CalendarAuth, error)
	Disconnect(ctx context.Context, auth model.CalendarAuth) error
	FetchEvents(ctx context.Context, auth model.CalendarAuth) ([]model.Event, model.CalendarAuth, error)
}

// CalendarService keeps the mirrored Google events of the dashboard fresh.
type CalendarService struct {
	dash    *Dashboard
	source  CalendarSource
	persist Flusher
	log     zerolog.Logger

	mu    sync.Mutex
	state string
}

func NewCalendarService(dash *Dashboard, source CalendarSource, persist Flusher, log zerolog.Logger) *CalendarService {
	return &CalendarService{dash: dash, source: source, persist: persist, log: log}
}

// BeginConnect returns the consent URL and remembers its state token.
func (s *CalendarService) BeginConnect() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = uuid.NewString()
	return s.source.AuthURL(s.state)
}

// CompleteConnect accepts either the bare authorization code or the full
// redirect URL. When a state parameter is present it must match the one
// issued by BeginConnect. A successful connect syncs right away.
func (s *CalendarService) CompleteConnect(ctx context.Context, input string) error {
	code, state := parseAuthInput(input)
	if code == "" {
		return model.NewValidationError("code", "authorization code is empty")
	}

	s.mu.Lock()
	pending := s.state
	if pending == "" {
		s.mu.Unlock()
		return ErrNoPendingConnect
	}
	if state != "" && state != pending {
		s.mu.Unlock()
		return model.NewValidationError("state", "does not match the pending connection")
	}
	s.state = ""
	s.mu.Unlock()

	auth, err := s.source.Connect(ctx, code)
	if err != nil {
		s.dash.SetCalendarError(err.Error())
		s.flush(ctx)
		return fmt.Errorf("connect calendar: %w", err)
	}
	s.dash.SetCalendarAuth(auth)
	s.log.Info().Str("user", auth.UserEmail).Msg("google calendar connected")
	return s.Sync(ctx)
}

// Sync replaces mirrored events on success. On failure the error string is
// stored and previously mirrored events stay in place.
func (s *CalendarService) Sync(ctx context.Context) error {
	cal := s.dash.CalendarData()
	if !cal.Auth.IsConnected {
		return calendar.ErrNotConnected
	}

	events, auth, err := s.source.FetchEvents(ctx, cal.Auth)
	if err != nil {
		if errors.Is(err, calendar.ErrReconnectRequired) {
			auth.IsConnected = false
			s.dash.SetCalendarAuth(auth)
		}
		s.dash.SetCalendarError(err.Error())
		s.flush(ctx)
		s.log.Warn().Err(err).Msg("google calendar sync failed")
		return fmt.Errorf("sync calendar: %w", err)
	}

	s.dash.ReplaceGoogleEvents(events, auth, s.dash.Now())
	s.flush(ctx)
	s.log.Info().Int("events", len(events)).Msg("google calendar synced")
	return nil
}

// SyncIfConnected is the periodic job body.
func (s *CalendarService) SyncIfConnected(ctx context.Context) {
	if !s.dash.CalendarData().Auth.IsConnected {
		return
	}
	_ = s.Sync(ctx)
}

// Disconnect revokes the token and forgets the connection and its events.
func (s *CalendarService) Disconnect(ctx context.Context) error {
	cal := s.dash.CalendarData()
	if err := s.source.Disconnect(ctx, cal.Auth); err != nil {
		s.log.Warn().Err(err).Msg("revoke google token")
	}
	s.dash.ClearCalendar()
	s.flush(ctx)
	s.log.Info().Msg("google calendar disconnected")
	return nil
}

func (s *CalendarService) flush(ctx context.Context) {
	if err := s.persist.Flush(ctx); err != nil {
		s.log.Error().Err(err).Msg("persist calendar state")
	}
}

func parseAuthInput(input string) (code, state string) {
	input = strings.TrimSpace(input)
	if u, err := url.Parse(input); err == nil && u.Scheme != "" {
		q := u.Query()
		return q.Get("code"), q.Get("state")
	}
	return input, ""
}
