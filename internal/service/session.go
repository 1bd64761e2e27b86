package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"focusboard/internal/model"
)

// StateStore is the persistence boundary of the dashboard.
type StateStore interface {
	LoadSession(ctx context.Context) (*model.SessionState, error)
	SaveSession(ctx context.Context, state model.SessionState) error
	LoadContacts(ctx context.Context) ([]model.Contact, error)
	SaveContacts(ctx context.Context, contacts []model.Contact) error
}

// OpenDashboard loads the stored session, falling back to defaults when
// nothing is stored or the blob cannot be read, then runs the daily reset.
func OpenDashboard(ctx context.Context, store StateStore, loc *time.Location, clock func() time.Time, log zerolog.Logger) *Dashboard {
	probe := NewDashboard(model.SessionState{}, nil, loc, clock)
	now := probe.Now()

	state, err := store.LoadSession(ctx)
	if err != nil {
		log.Error().Err(err).Msg("load session, starting from defaults")
	}
	if state == nil {
		fresh := model.DefaultSession(now)
		state = &fresh
		log.Info().Msg("no stored session, seeded defaults")
	}

	contacts, err := store.LoadContacts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("load contacts")
	}

	dash := NewDashboard(*state, contacts, probe.loc, probe.clock)
	// Unsaved defaults must reach storage on the first flush.
	dash.touch()
	if dash.ResetIfNewDay() {
		log.Info().Str("day", model.DayKey(now)).Msg("daily routine reset")
	}
	return dash
}

// Persister saves the dashboard whenever its version moved since the last save.
type Persister struct {
	dash  *Dashboard
	store StateStore
	log   zerolog.Logger

	mu    sync.Mutex
	saved uint64
}

func NewPersister(dash *Dashboard, store StateStore, log zerolog.Logger) *Persister {
	return &Persister{dash: dash, store: store, log: log}
}

// Flush writes the session and contacts if anything changed. Write failures
// are logged and returned; the in-memory state stays authoritative.
func (p *Persister) Flush(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	version := p.dash.Version()
	if version == p.saved {
		return nil
	}
	if err := p.store.SaveSession(ctx, p.dash.Snapshot()); err != nil {
		p.log.Error().Err(err).Msg("save session")
		return err
	}
	if err := p.store.SaveContacts(ctx, p.dash.Contacts()); err != nil {
		p.log.Error().Err(err).Msg("save contacts")
		return err
	}
	p.saved = version
	p.log.Debug().Uint64("version", version).Msg("session saved")
	return nil
}
