package service

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"focusboard/internal/model"
)

// SchedulerService runs the periodic jobs of the dashboard: the reminder
// tick, the daily digest and the calendar sync. A job never overlaps its
// own previous run, and a panicking job is logged instead of killing the
// process.
type SchedulerService struct {
	cron *cron.Cron
	log  zerolog.Logger
}

func NewSchedulerService(loc *time.Location, log zerolog.Logger) *SchedulerService {
	logger := cronLogger{log: log}
	return &SchedulerService{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithSeconds(),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		log: log,
	}
}

// ScheduleDaily runs job once a day at the HH:MM wall-clock time in the
// scheduler's location.
func (s *SchedulerService) ScheduleDaily(clock string, job func()) (cron.EntryID, error) {
	spec, err := buildDailySpec(clock)
	if err != nil {
		return 0, err
	}
	id, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return 0, fmt.Errorf("schedule daily job at %s: %w", clock, err)
	}
	s.log.Debug().Str("at", clock).Int("entry", int(id)).Msg("daily job scheduled")
	return id, nil
}

// ScheduleEvery runs job at a fixed period measured from Start. Periods
// are rounded down to whole seconds; the reminder tick relies on one run
// per minute and tolerates the resulting slip.
func (s *SchedulerService) ScheduleEvery(period time.Duration, job func()) (cron.EntryID, error) {
	if period < time.Second {
		return 0, fmt.Errorf("period must be at least 1s, got %s", period)
	}
	id := s.cron.Schedule(cron.Every(period), cron.FuncJob(job))
	s.log.Debug().Dur("every", period).Int("entry", int(id)).Msg("periodic job scheduled")
	return id, nil
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop cancels future runs and waits for running jobs to return.
func (s *SchedulerService) Stop() {
	<-s.cron.Stop().Done()
}

// buildDailySpec turns HH:MM into a six-field cron spec (seconds first).
func buildDailySpec(clock string) (string, error) {
	t, err := time.Parse(model.ClockLayout, clock)
	if err != nil {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", clock)
	}
	return fmt.Sprintf("0 %d %d * * *", t.Minute(), t.Hour()), nil
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
