package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"focusboard/internal/bot"
	"focusboard/internal/calendar"
	"focusboard/internal/config"
	"focusboard/internal/logging"
	"focusboard/internal/notify"
	"focusboard/internal/repository"
	"focusboard/internal/service"
)

const jobTimeout = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configPath := os.Getenv("FOCUSBOARD_CONFIG")
	if configPath == "" {
		configPath = "focusboard.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("config")
	}
	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal().Err(err).Msg("timezone")
	}

	db, err := repository.NewDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("db")
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	stateRepo := repository.NewStateRepository(db)
	alertRepo := repository.NewAlertRepository(db)

	dash := service.OpenDashboard(ctx, stateRepo, loc, nil, logging.Component(logger, "session"))
	persister := service.NewPersister(dash, stateRepo, logging.Component(logger, "session"))
	if err := persister.Flush(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial save")
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logger.Fatal().Err(err).Msg("create bot api")
	}
	logger.Info().Str("account", api.Self.UserName).Msg("bot authorized")

	notifier := notify.New(
		notify.NewTelegramSender(api, cfg.Telegram.OwnerChatID),
		notify.Config{Push: cfg.Notify.Push, RatePerSec: cfg.Notify.RatePerSec},
		logging.Component(logger, "notify"),
	)

	var calendarSvc *service.CalendarService
	if cfg.Google.Enabled() {
		client := calendar.NewClient(calendar.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			Location:     loc,
		}, logging.Component(logger, "calendar"))
		calendarSvc = service.NewCalendarService(dash, client, persister, logging.Component(logger, "calendar"))
	}

	tick := service.NewTickService(dash, alertRepo, notifier, persister, logging.Component(logger, "tick"))
	timer := service.NewTimerService(dash, notifier, logging.Component(logger, "timer"))
	digest := service.NewDigestService(dash)

	telegramBot := bot.New(api, cfg.Telegram.OwnerChatID, bot.Services{
		Dashboard: dash,
		Persist:   persister,
		Timer:     timer,
		Digest:    digest,
		Calendar:  calendarSvc,
	}, logging.Component(logger, "bot"))

	scheduler := service.NewSchedulerService(loc, logging.Component(logger, "scheduler"))
	runJob := func(job func(context.Context)) func() {
		return func() {
			jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
			defer cancel()
			job(jobCtx)
		}
	}

	tick.Prune(ctx)
	if _, err := scheduler.ScheduleEvery(cfg.Tick.Interval, runJob(func(ctx context.Context) { tick.Tick(ctx) })); err != nil {
		logger.Fatal().Err(err).Msg("schedule tick")
	}
	if cfg.Digest.Time != "" {
		if _, err := scheduler.ScheduleDaily(cfg.Digest.Time, runJob(func(ctx context.Context) {
			if err := telegramBot.SendDailySummary(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("daily summary")
			}
		})); err != nil {
			logger.Fatal().Err(err).Msg("schedule digest")
		}
	}
	if calendarSvc != nil && cfg.Google.SyncInterval > 0 {
		if _, err := scheduler.ScheduleEvery(cfg.Google.SyncInterval, runJob(calendarSvc.SyncIfConnected)); err != nil {
			logger.Fatal().Err(err).Msg("schedule calendar sync")
		}
		go runJob(calendarSvc.SyncIfConnected)()
	}

	runJob(func(ctx context.Context) { tick.Tick(ctx) })()
	scheduler.Start()

	logger.Info().Msg("focusboard started")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("bot stopped with error")
	}

	scheduler.Stop()
	timer.Reset()
	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := persister.Flush(flushCtx); err != nil {
		logger.Error().Err(err).Msg("final save")
	}
	logger.Info().Msg("shutdown complete")
}
