package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"focusboard/internal/calendar"
	"focusboard/internal/model"
	"focusboard/internal/notify"
	"focusboard/internal/service"
)

const (
	cbTodoPrefix     = "todo:"
	cbRoutinePrefix  = "routine:"
	cbReminderPrefix = "rem:"
	cbContactPrefix  = "contact:"
	cbTimerPrefix    = "timer:"
)

const (
	actionToggle = "toggle"
	actionDelete = "del"
	actionUp     = "up"
	actionDown   = "down"
	actionDone   = "done"
)

// API is the part of *tgbotapi.BotAPI the bot talks to.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Services bundles what the bot drives. Calendar is nil when Google
// Calendar is not configured.
type Services struct {
	Dashboard *service.Dashboard
	Persist   service.Flusher
	Timer     *service.TimerService
	Digest    *service.DigestService
	Calendar  *service.CalendarService
}

// Bot aggregates Telegram API with services. It answers the owner chat only.
type Bot struct {
	api      API
	ownerID  int64
	dash     *service.Dashboard
	persist  service.Flusher
	timer    *service.TimerService
	digest   *service.DigestService
	calendar *service.CalendarService
	log      zerolog.Logger
}

func New(api API, ownerChatID int64, svc Services, log zerolog.Logger) *Bot {
	return &Bot{
		api:      api,
		ownerID:  ownerChatID,
		dash:     svc.Dashboard,
		persist:  svc.Persist,
		timer:    svc.Timer,
		digest:   svc.Digest,
		calendar: svc.Calendar,
		log:      log,
	}
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Info().Msg("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		b.HandleUpdate(ctx, update)
	}

	return ctx.Err()
}

// HandleUpdate dispatches a single update.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
			b.log.Error().Err(err).Msg("handle callback")
		}
	case update.Message != nil:
		if update.Message.Chat == nil || !b.isOwner(update.Message.Chat.ID) {
			return
		}
		if err := b.handleMessage(ctx, update.Message); err != nil {
			b.log.Error().Err(err).Msg("handle message")
		}
	}
}

func (b *Bot) isOwner(chatID int64) bool {
	return chatID == b.ownerID
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if !msg.IsCommand() {
		if handled, err := b.handleMenuAlias(ctx, msg); handled {
			return err
		}
		return b.sendText(msg.Chat.ID, "I did not get that. Try /help for the list of commands.")
	}

	b.log.Info().Str("command", msg.Command()).Str("args", msg.CommandArguments()).Msg("command received")
	return b.handleCommand(ctx, msg)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start":
		return b.handleStart(msg)
	case "help":
		return b.handleHelp(chatID)
	case "today":
		return b.handleToday(chatID)
	case "routine":
		return b.handleRoutine(ctx, chatID, args)
	case "todos":
		return b.sendTodos(chatID)
	case "todo":
		return b.handleTodo(ctx, chatID, args)
	case "events":
		return b.sendEvents(chatID)
	case "event":
		return b.handleEvent(ctx, chatID, args)
	case "reminders":
		return b.sendReminders(chatID)
	case "remind":
		return b.handleRemind(ctx, chatID, args)
	case "mood":
		return b.handleMood(ctx, chatID, args)
	case "contacts":
		return b.handleContacts(ctx, chatID, args)
	case "timer":
		return b.handleTimer(chatID, args)
	case "sound":
		return b.handleSound(ctx, chatID)
	case "volume":
		return b.handleVolume(ctx, chatID, args)
	case "theme":
		return b.handleTheme(ctx, chatID)
	case "calendar":
		return b.handleCalendar(ctx, chatID, args)
	case "export":
		return b.handleExport(chatID, args)
	case "notifications":
		return b.sendNotifications(chatID)
	default:
		return b.sendText(chatID, "Unknown command. Take a look at /help.")
	}
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	chatID := msg.Chat.ID
	switch strings.ToLower(strings.TrimSpace(msg.Text)) {
	case strings.ToLower(menuLabelToday):
		return true, b.handleToday(chatID)
	case strings.ToLower(menuLabelRoutine):
		return true, b.sendRoutine(chatID)
	case strings.ToLower(menuLabelTodos):
		return true, b.sendTodos(chatID)
	case strings.ToLower(menuLabelEvents):
		return true, b.sendEvents(chatID)
	case strings.ToLower(menuLabelReminders):
		return true, b.sendReminders(chatID)
	case strings.ToLower(menuLabelTimer):
		return true, b.handleTimer(chatID, "")
	case strings.ToLower(menuLabelHelp):
		return true, b.handleHelp(chatID)
	default:
		return false, nil
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.Message == nil || cb.Message.Chat == nil || !b.isOwner(cb.Message.Chat.ID) {
		return nil
	}
	chatID := cb.Message.Chat.ID
	data := cb.Data
	b.log.Info().Str("data", data).Msg("callback received")

	var (
		answer string
		err    error
	)
	switch {
	case strings.HasPrefix(data, notify.CallbackDismiss), strings.HasPrefix(data, notify.CallbackSnooze):
		answer, err = b.notificationCallback(cb)
	case strings.HasPrefix(data, cbTodoPrefix):
		answer, err = b.todoCallback(ctx, chatID, data)
	case strings.HasPrefix(data, cbRoutinePrefix):
		answer, err = b.routineCallback(ctx, chatID, data)
	case strings.HasPrefix(data, cbReminderPrefix):
		answer, err = b.reminderCallback(ctx, chatID, data)
	case strings.HasPrefix(data, cbContactPrefix):
		answer, err = b.contactCallback(ctx, chatID, data)
	case strings.HasPrefix(data, cbTimerPrefix):
		answer, err = b.timerCallback(chatID, data)
	}
	if err != nil {
		answer = userMessage(err)
		if !isUserError(err) {
			b.log.Error().Err(err).Str("data", data).Msg("callback failed")
		}
	}

	if _, ackErr := b.api.Request(tgbotapi.NewCallback(cb.ID, answer)); ackErr != nil {
		b.log.Warn().Err(ackErr).Msg("callback ack")
	}
	return nil
}

func (b *Bot) notificationCallback(cb *tgbotapi.CallbackQuery) (string, error) {
	snooze := strings.HasPrefix(cb.Data, notify.CallbackSnooze)
	prefix := notify.CallbackDismiss
	if snooze {
		prefix = notify.CallbackSnooze
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(cb.Data, prefix), 10, 64)
	if err != nil {
		return "", nil
	}

	var ok bool
	if snooze {
		ok = b.dash.Snooze(id)
	} else {
		ok = b.dash.Dismiss(id)
	}

	// Drop the buttons so the pushed message reads as handled.
	edit := tgbotapi.NewEditMessageReplyMarkup(cb.Message.Chat.ID, cb.Message.MessageID, tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}})
	if _, err := b.api.Request(edit); err != nil {
		b.log.Debug().Err(err).Msg("clear notification buttons")
	}

	switch {
	case !ok:
		return "Already dismissed", nil
	case snooze:
		return "Snoozed 💤", nil
	default:
		return "Dismissed", nil
	}
}

// SendDailySummary pushes the digest to the owner chat.
func (b *Bot) SendDailySummary(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.sendText(b.ownerID, b.digest.DailySummary())
}

// flush persists pending changes. A failed save is logged by the persister
// and does not fail the command.
func (b *Bot) flush(ctx context.Context) {
	_ = b.persist.Flush(ctx)
}

// reply answers a command outcome: err is turned into a short user message,
// otherwise ok is sent.
func (b *Bot) reply(chatID int64, ok string, err error) error {
	if err != nil {
		if !isUserError(err) {
			b.log.Error().Err(err).Msg("command failed")
		}
		return b.sendText(chatID, escape(userMessage(err)))
	}
	return b.sendText(chatID, ok)
}

func isUserError(err error) bool {
	return model.IsValidationError(err) ||
		errors.Is(err, model.ErrNotFound) ||
		errors.Is(err, model.ErrReadOnly) ||
		errors.Is(err, service.ErrTimerRunning) ||
		errors.Is(err, service.ErrTimerNotRunning) ||
		errors.Is(err, service.ErrNoPendingConnect) ||
		errors.Is(err, calendar.ErrNotConnected)
}

func userMessage(err error) string {
	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return fmt.Sprintf("⚠️ %s: %s", validationErr.Field, validationErr.Message)
	case errors.Is(err, model.ErrNotFound):
		return "Nothing with that id."
	case errors.Is(err, model.ErrReadOnly):
		return "That event comes from Google Calendar and is read-only."
	case errors.Is(err, calendar.ErrReconnectRequired):
		return "Google Calendar access expired, run /calendar connect again."
	case isUserError(err):
		return err.Error()
	default:
		return "Something went wrong: " + err.Error()
	}
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

// sendList sends text with an inline keyboard, or the main menu when there are no buttons.
func (b *Bot) sendList(chatID int64, text string, rows [][]tgbotapi.InlineKeyboardButton) error {
	if len(rows) == 0 {
		return b.sendText(chatID, text)
	}
	return b.sendWithReplyMarkup(chatID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// parseCallback splits "<prefix><action>:<id>".
func parseCallback(data, prefix string) (string, int, error) {
	rest := strings.TrimPrefix(data, prefix)
	action, raw, found := strings.Cut(rest, ":")
	if !found {
		return "", 0, fmt.Errorf("malformed callback %q", data)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return "", 0, fmt.Errorf("malformed callback %q: %w", data, err)
	}
	return action, id, nil
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, model.NewValidationError("id", fmt.Sprintf("%q is not a valid id", raw))
	}
	return id, nil
}
