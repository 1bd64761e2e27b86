package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"focusboard/internal/model"
)

const DefaultFocusDuration = 25 * time.Minute

var (
	ErrTimerRunning    = errors.New("focus timer is already running")
	ErrTimerNotRunning = errors.New("focus timer is not running")
)

// TimerService is a single focus countdown that pushes a notification when
// it runs out.
type TimerService struct {
	dash    *Dashboard
	deliver Deliverer
	log     zerolog.Logger

	mu        sync.Mutex
	duration  time.Duration
	remaining time.Duration
	startedAt time.Time
	timer     *time.Timer
	gen       uint64
	after     func(time.Duration, func()) *time.Timer
}

func NewTimerService(dash *Dashboard, deliver Deliverer, log zerolog.Logger) *TimerService {
	return &TimerService{
		dash:      dash,
		deliver:   deliver,
		log:       log,
		duration:  DefaultFocusDuration,
		remaining: DefaultFocusDuration,
		after:     time.AfterFunc,
	}
}

// Start runs the countdown. A positive d selects a new duration and
// restarts from it; zero resumes a paused countdown.
func (s *TimerService) Start(d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		return ErrTimerRunning
	}
	if d > 0 {
		s.duration = d
		s.remaining = d
	}
	if s.remaining <= 0 {
		s.remaining = s.duration
	}
	s.startedAt = time.Now()
	s.gen++
	gen := s.gen
	s.timer = s.after(s.remaining, func() { s.finish(gen) })
	return nil
}

// Pause stops the countdown keeping the remaining time.
func (s *TimerService) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer == nil {
		return ErrTimerNotRunning
	}
	s.timer.Stop()
	s.timer = nil
	s.gen++
	s.remaining -= time.Since(s.startedAt)
	if s.remaining < 0 {
		s.remaining = 0
	}
	return nil
}

// Reset stops the countdown and rewinds to the selected duration.
func (s *TimerService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	s.remaining = s.duration
}

// Remaining reports the time left and whether the countdown is running.
func (s *TimerService) Remaining() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer == nil {
		return s.remaining, false
	}
	left := s.remaining - time.Since(s.startedAt)
	if left < 0 {
		left = 0
	}
	return left, true
}

// finish runs on the timer goroutine; gen tells a countdown that was paused
// or reset after it fired apart from the current one.
func (s *TimerService) finish(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.remaining = s.duration
	s.mu.Unlock()

	n := s.dash.Push(model.Notification{
		Title:   model.TimerTitle,
		Message: "Timer finished!",
		Sound:   model.SoundTimerDone,
	})
	s.log.Info().Int64("notification_id", n.ID).Msg("focus timer finished")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.deliver.Deliver(ctx, n, s.dash.SoundEnabled())
}
