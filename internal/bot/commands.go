package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"focusboard/internal/model"
	"focusboard/internal/service"
)

var timerPresets = []int{5, 15, 25, 45}

func (b *Bot) handleStart(msg *tgbotapi.Message) error {
	name := ""
	if msg.From != nil {
		name = strings.TrimSpace(msg.From.FirstName)
	}
	if name == "" {
		name = "friend"
	}

	text := fmt.Sprintf(
		"👋 Hi, %s!\n<b>I am your focus board: routine, todos, events, reminders and a focus timer in one place.</b>\n\n"+
			"• /today — daily overview\n"+
			"• /routine — daily checklist\n"+
			"• /todos — todo list\n"+
			"• /events — upcoming events\n"+
			"• /reminders — gentle reminders\n"+
			"• /timer — focus timer\n"+
			"• /help — everything else",
		escape(name),
	)
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleHelp(chatID int64) error {
	text := "ℹ️ <b>Commands</b>\n" +
		"• /today — routine progress, open todos, events and reminders\n" +
		"• /routine [add &lt;text&gt; | done|del|up|down &lt;id&gt;]\n" +
		"• /todos — list todos with buttons\n" +
		"• /todo add [low|medium|high] &lt;text&gt; · /todo done|del &lt;id&gt;\n" +
		"• /events — upcoming events\n" +
		"• /event add &lt;YYYY-MM-DD&gt; &lt;HH:MM|allday&gt; &lt;title&gt; · /event del &lt;id&gt;\n" +
		"• /reminders — list reminders\n" +
		"• /remind once|daily &lt;HH:MM&gt; &lt;text&gt; · /remind every &lt;hours&gt; &lt;text&gt;\n" +
		"• /remind edit &lt;id&gt; &lt;schedule&gt; &lt;text&gt; · /remind toggle|del &lt;id&gt;\n" +
		"• /mood [1-5|clear]\n" +
		"• /contacts [add &lt;name&gt;]\n" +
		"• /timer [minutes|start|pause|reset]\n" +
		"• /sound · /volume [0-100] · /theme\n" +
		"• /calendar [connect | code &lt;code&gt; | sync | disconnect]\n" +
		"• /export [json|csv]\n" +
		"• /notifications — active notifications"
	return b.sendText(chatID, text)
}

func (b *Bot) handleToday(chatID int64) error {
	return b.sendText(chatID, b.digest.DailySummary())
}

// Routine

func (b *Bot) handleRoutine(ctx context.Context, chatID int64, args string) error {
	if args == "" {
		return b.sendRoutine(chatID)
	}
	sub, rest := splitFirst(args)
	if sub == "add" {
		item, err := b.dash.AddRoutineItem(rest)
		if err == nil {
			b.flush(ctx)
		}
		return b.reply(chatID, fmt.Sprintf("➕ Added to routine: %s", escape(item.Text)), err)
	}

	id, err := parseID(rest)
	if err != nil {
		return b.reply(chatID, "", err)
	}
	var ok string
	switch sub {
	case actionDone:
		var item model.RoutineItem
		item, err = b.dash.ToggleRoutineItem(id)
		ok = formatRoutineItem(item)
	case actionDelete:
		err = b.dash.RemoveRoutineItem(id)
		ok = "🗑 Removed from routine."
	case actionUp:
		err = b.dash.MoveRoutineItem(id, -1)
		ok = "⬆️ Moved up."
	case actionDown:
		err = b.dash.MoveRoutineItem(id, 1)
		ok = "⬇️ Moved down."
	default:
		return b.sendText(chatID, "Usage: /routine add &lt;text&gt; or /routine done|del|up|down &lt;id&gt;")
	}
	if err == nil {
		b.flush(ctx)
	}
	return b.reply(chatID, ok, err)
}

func (b *Bot) sendRoutine(chatID int64) error {
	items := b.dash.Routine()
	if len(items) == 0 {
		return b.sendText(chatID, "☀️ The routine is empty. Add one with /routine add &lt;text&gt;.")
	}
	done := 0
	var sb strings.Builder
	for _, item := range items {
		if item.Completed {
			done++
		}
		sb.WriteString(formatRoutineItem(item))
		sb.WriteByte('\n')
	}
	text := fmt.Sprintf("☀️ <b>Daily routine</b> %d/%d\n%s", done, len(items), sb.String())
	return b.sendList(chatID, text, routineKeyboard(items))
}

func (b *Bot) routineCallback(ctx context.Context, chatID int64, data string) (string, error) {
	action, id, err := parseCallback(data, cbRoutinePrefix)
	if err != nil {
		return "", err
	}
	switch action {
	case actionToggle:
		item, err := b.dash.ToggleRoutineItem(id)
		if err != nil {
			return "", err
		}
		b.flush(ctx)
		if item.Completed {
			return "Nice! ✅", b.sendRoutine(chatID)
		}
		return "Unchecked", b.sendRoutine(chatID)
	case actionUp, actionDown:
		delta := -1
		if action == actionDown {
			delta = 1
		}
		if err := b.dash.MoveRoutineItem(id, delta); err != nil {
			return "", err
		}
		b.flush(ctx)
		return "", b.sendRoutine(chatID)
	default:
		return "", nil
	}
}

// Todos

func (b *Bot) handleTodo(ctx context.Context, chatID int64, args string) error {
	sub, rest := splitFirst(args)
	switch sub {
	case "add":
		priority := model.PriorityMedium
		first, text := splitFirst(rest)
		if p, ok := model.ParsePriority(first); ok {
			priority = p
		} else {
			text = rest
		}
		todo, err := b.dash.AddTodo(text, priority)
		if err == nil {
			b.flush(ctx)
		}
		return b.reply(chatID, "➕ Added: "+formatTodo(todo), err)
	case actionDone, actionDelete:
		id, err := parseID(rest)
		if err != nil {
			return b.reply(chatID, "", err)
		}
		if sub == actionDelete {
			err = b.dash.RemoveTodo(id)
			if err == nil {
				b.flush(ctx)
			}
			return b.reply(chatID, "🗑 Todo removed.", err)
		}
		todo, err := b.dash.ToggleTodo(id)
		if err == nil {
			b.flush(ctx)
		}
		return b.reply(chatID, formatTodo(todo), err)
	default:
		return b.sendText(chatID, "Usage: /todo add [low|medium|high] &lt;text&gt; or /todo done|del &lt;id&gt;")
	}
}

func (b *Bot) sendTodos(chatID int64) error {
	todos := b.dash.Todos()
	if len(todos) == 0 {
		return b.sendText(chatID, "🎉 No todos. Add one with /todo add &lt;text&gt;.")
	}
	var sb strings.Builder
	sb.WriteString("✅ <b>Todos</b>\n")
	for _, todo := range todos {
		sb.WriteString(fmt.Sprintf("<code>%d</code> %s\n", todo.ID, formatTodo(todo)))
	}
	return b.sendList(chatID, sb.String(), todoKeyboard(todos))
}

func (b *Bot) todoCallback(ctx context.Context, chatID int64, data string) (string, error) {
	action, id, err := parseCallback(data, cbTodoPrefix)
	if err != nil {
		return "", err
	}
	switch action {
	case actionToggle:
		todo, err := b.dash.ToggleTodo(id)
		if err != nil {
			return "", err
		}
		b.flush(ctx)
		answer := "Reopened"
		if todo.Completed {
			answer = "Done! 🎉"
		}
		return answer, b.sendTodos(chatID)
	case actionDelete:
		if err := b.dash.RemoveTodo(id); err != nil {
			return "", err
		}
		b.flush(ctx)
		return "Removed", b.sendTodos(chatID)
	default:
		return "", nil
	}
}

// Events

const upcomingEventsLimit = 15

func (b *Bot) handleEvent(ctx context.Context, chatID int64, args string) error {
	sub, rest := splitFirst(args)
	switch sub {
	case "add":
		fields := strings.Fields(rest)
		if len(fields) < 3 {
			return b.sendText(chatID, "Usage: /event add &lt;YYYY-MM-DD&gt; &lt;HH:MM|allday&gt; &lt;title&gt;")
		}
		clock := fields[1]
		if strings.EqualFold(clock, "allday") {
			clock = ""
		}
		event, err := b.dash.AddEvent(fields[0], clock, strings.Join(fields[2:], " "), "")
		if err == nil {
			b.flush(ctx)
		}
		return b.reply(chatID, "📅 Added: "+formatEvent(event), err)
	case actionDelete:
		id, err := parseID(rest)
		if err == nil {
			err = b.dash.RemoveEvent(id)
		}
		if err == nil {
			b.flush(ctx)
		}
		return b.reply(chatID, "🗑 Event removed.", err)
	default:
		return b.sendText(chatID, "Usage: /event add &lt;YYYY-MM-DD&gt; &lt;HH:MM|allday&gt; &lt;title&gt; or /event del &lt;id&gt;")
	}
}

func (b *Bot) sendEvents(chatID int64) error {
	today := model.DayKey(b.dash.Now())
	events := b.dash.UpcomingEvents(today, upcomingEventsLimit)
	if len(events) == 0 {
		return b.sendText(chatID, "📅 Nothing scheduled. Add an event with /event add.")
	}
	var sb strings.Builder
	sb.WriteString("📅 <b>Upcoming events</b>\n")
	day := ""
	for _, e := range events {
		if e.Date != day {
			day = e.Date
			sb.WriteString(fmt.Sprintf("\n<b>%s</b>\n", escape(formatDay(day, today))))
		}
		sb.WriteString(fmt.Sprintf("<code>%d</code> %s\n", e.ID, formatEvent(e)))
	}
	if cal := b.dash.CalendarData(); cal.Error != "" {
		sb.WriteString("\n⚠️ Google Calendar: " + escape(cal.Error))
	}
	return b.sendText(chatID, sb.String())
}

// Reminders

func (b *Bot) handleRemind(ctx context.Context, chatID int64, args string) error {
	sub, rest := splitFirst(args)
	switch sub {
	case "edit":
		rawID, spec := splitFirst(rest)
		id, err := parseID(rawID)
		if err != nil {
			return b.reply(chatID, "", err)
		}
		freq, text, err := parseSchedule(spec)
		if err != nil {
			return b.reply(chatID, "", err)
		}
		r, err := b.dash.UpdateReminder(id, text, freq)
		if err == nil {
			b.flush(ctx)
		}
		return b.reply(chatID, "✏️ Updated: "+formatReminder(r), err)
	case actionToggle, actionDelete:
		id, err := parseID(rest)
		if err != nil {
			return b.reply(chatID, "", err)
		}
		if sub == actionDelete {
			err = b.dash.RemoveReminder(id)
			if err == nil {
				b.flush(ctx)
			}
			return b.reply(chatID, "🗑 Reminder removed.", err)
		}
		r, err := b.dash.ToggleReminder(id)
		if err == nil {
			b.flush(ctx)
		}
		return b.reply(chatID, formatReminder(r), err)
	}

	freq, text, err := parseSchedule(args)
	if err != nil {
		return b.reply(chatID, "", err)
	}
	r, err := b.dash.AddReminder(text, freq)
	if err == nil {
		b.flush(ctx)
	}
	return b.reply(chatID, "⏰ Reminder set: "+formatReminder(r), err)
}

// parseSchedule reads "once HH:MM text", "daily HH:MM text" or "every N text".
func parseSchedule(args string) (model.Frequency, string, error) {
	kind, rest := splitFirst(args)
	value, text := splitFirst(rest)
	switch strings.ToLower(kind) {
	case "once", "daily":
		at, err := model.NormalizeClock(value)
		if err != nil {
			return model.Frequency{}, "", err
		}
		if strings.ToLower(kind) == "once" {
			return model.Once(at), text, nil
		}
		return model.Daily(at), text, nil
	case "every":
		hours, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(value), "h"))
		if err != nil || hours <= 0 {
			return model.Frequency{}, "", model.NewValidationError("hours", "must be a positive whole number")
		}
		return model.Every(hours), text, nil
	default:
		return model.Frequency{}, "", model.NewValidationError("schedule", "use once HH:MM, daily HH:MM or every N")
	}
}

func (b *Bot) sendReminders(chatID int64) error {
	reminders := b.dash.Reminders()
	if len(reminders) == 0 {
		return b.sendText(chatID, "⏰ No reminders. Add one with /remind daily 09:00 Stretch.")
	}
	var sb strings.Builder
	sb.WriteString("⏰ <b>Reminders</b>\n")
	for _, r := range reminders {
		sb.WriteString(fmt.Sprintf("<code>%d</code> %s\n", r.ID, formatReminder(r)))
	}
	return b.sendList(chatID, sb.String(), reminderKeyboard(reminders))
}

func (b *Bot) reminderCallback(ctx context.Context, chatID int64, data string) (string, error) {
	action, id, err := parseCallback(data, cbReminderPrefix)
	if err != nil {
		return "", err
	}
	switch action {
	case actionToggle:
		r, err := b.dash.ToggleReminder(id)
		if err != nil {
			return "", err
		}
		b.flush(ctx)
		answer := "Paused"
		if r.Enabled {
			answer = "Enabled"
		}
		return answer, b.sendReminders(chatID)
	case actionDelete:
		if err := b.dash.RemoveReminder(id); err != nil {
			return "", err
		}
		b.flush(ctx)
		return "Removed", b.sendReminders(chatID)
	default:
		return "", nil
	}
}

// Mood

func (b *Bot) handleMood(ctx context.Context, chatID int64, args string) error {
	switch {
	case args == "":
		return b.sendMood(chatID)
	case strings.EqualFold(args, "clear"):
		if !b.dash.ClearMood() {
			return b.sendText(chatID, "No mood logged today.")
		}
		b.flush(ctx)
		return b.sendText(chatID, "🧹 Today's mood cleared.")
	}

	rating, err := strconv.Atoi(args)
	if err != nil {
		return b.reply(chatID, "", model.NewValidationError("rating", "must be between 1 and 5"))
	}
	entry, err := b.dash.SetMood(model.MoodRating(rating))
	if err == nil {
		b.flush(ctx)
	}
	return b.reply(chatID, fmt.Sprintf("%s Mood logged: %s", entry.Rating.Emoji(), entry.Rating.Label()), err)
}

func (b *Bot) sendMood(chatID int64) error {
	var sb strings.Builder
	sb.WriteString("🌈 <b>Mood</b>\n")
	if entry, ok := b.dash.TodayMood(); ok {
		sb.WriteString(fmt.Sprintf("Today: %s %s\n", entry.Rating.Emoji(), entry.Rating.Label()))
	} else {
		sb.WriteString("Today: not logged yet, use /mood 1-5\n")
	}
	moods := b.dash.Moods()
	if avg, ok := model.AverageMood(moods); ok {
		sb.WriteString(fmt.Sprintf("Average over %d days: %s %s\n", len(moods), avg.Emoji(), avg.Label()))
	}
	return b.sendText(chatID, sb.String())
}

// Contacts

func (b *Bot) handleContacts(ctx context.Context, chatID int64, args string) error {
	sub, rest := splitFirst(args)
	switch sub {
	case "":
		return b.sendContacts(chatID)
	case "add":
		c, err := b.dash.AddContact(rest)
		if err == nil {
			b.flush(ctx)
		}
		return b.reply(chatID, "👥 Tracking "+escape(c.Name), err)
	case actionDone, actionDelete:
		id, err := parseID(rest)
		if err != nil {
			return b.reply(chatID, "", err)
		}
		if sub == actionDelete {
			err = b.dash.RemoveContact(id)
			if err == nil {
				b.flush(ctx)
			}
			return b.reply(chatID, "🗑 Contact removed.", err)
		}
		c, err := b.dash.MarkContacted(id)
		if err == nil {
			b.flush(ctx)
		}
		return b.reply(chatID, "💬 Caught up with "+escape(c.Name), err)
	default:
		return b.sendText(chatID, "Usage: /contacts add &lt;name&gt; or /contacts done|del &lt;id&gt;")
	}
}

func (b *Bot) sendContacts(chatID int64) error {
	contacts := b.dash.Contacts()
	if len(contacts) == 0 {
		return b.sendText(chatID, "👥 No contacts yet. Add one with /contacts add &lt;name&gt;.")
	}
	now := b.dash.Now()
	var sb strings.Builder
	sb.WriteString("👥 <b>Stay in touch</b>\n")
	for _, c := range contacts {
		sb.WriteString(formatContact(c, now))
		sb.WriteByte('\n')
	}
	return b.sendList(chatID, sb.String(), contactKeyboard(contacts))
}

func (b *Bot) contactCallback(ctx context.Context, chatID int64, data string) (string, error) {
	action, id, err := parseCallback(data, cbContactPrefix)
	if err != nil {
		return "", err
	}
	switch action {
	case actionDone:
		if _, err := b.dash.MarkContacted(id); err != nil {
			return "", err
		}
		b.flush(ctx)
		return "Marked as contacted today", b.sendContacts(chatID)
	case actionDelete:
		if err := b.dash.RemoveContact(id); err != nil {
			return "", err
		}
		b.flush(ctx)
		return "Removed", b.sendContacts(chatID)
	default:
		return "", nil
	}
}

// Focus timer

func (b *Bot) handleTimer(chatID int64, args string) error {
	switch strings.ToLower(args) {
	case "":
		return b.sendTimer(chatID)
	case "start":
		err := b.timer.Start(0)
		return b.reply(chatID, b.timerStatus(), err)
	case "pause":
		err := b.timer.Pause()
		return b.reply(chatID, b.timerStatus(), err)
	case "reset":
		b.timer.Reset()
		return b.sendText(chatID, b.timerStatus())
	}

	minutes, err := strconv.Atoi(args)
	if err != nil || minutes <= 0 || minutes > 24*60 {
		return b.reply(chatID, "", model.NewValidationError("minutes", "must be between 1 and 1440"))
	}
	b.timer.Reset()
	err = b.timer.Start(time.Duration(minutes) * time.Minute)
	return b.reply(chatID, b.timerStatus(), err)
}

func (b *Bot) sendTimer(chatID int64) error {
	return b.sendList(chatID, b.timerStatus(), timerKeyboard(timerPresets))
}

func (b *Bot) timerStatus() string {
	left, running := b.timer.Remaining()
	if running {
		return fmt.Sprintf("⏱ Focus timer running: <b>%s</b> left", formatCountdown(left))
	}
	return fmt.Sprintf("⏸ Focus timer stopped at <b>%s</b>", formatCountdown(left))
}

func (b *Bot) timerCallback(chatID int64, data string) (string, error) {
	minutes, err := strconv.Atoi(strings.TrimPrefix(data, cbTimerPrefix))
	if err != nil {
		return "", nil
	}
	b.timer.Reset()
	if err := b.timer.Start(time.Duration(minutes) * time.Minute); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d minutes, go!", minutes), b.sendText(chatID, b.timerStatus())
}

// Settings

func (b *Bot) handleSound(ctx context.Context, chatID int64) error {
	on := b.dash.ToggleSound()
	b.flush(ctx)
	if on {
		return b.sendText(chatID, "🔔 Sound on: notifications will ring.")
	}
	return b.sendText(chatID, "🔕 Sound off: notifications arrive silently.")
}

func (b *Bot) handleVolume(ctx context.Context, chatID int64, args string) error {
	if args == "" {
		state := b.dash.Snapshot()
		return b.sendText(chatID, fmt.Sprintf("🔊 Volume %d%%", int(state.Volume()*100+0.5)))
	}
	percent, err := strconv.Atoi(strings.TrimSuffix(args, "%"))
	if err != nil {
		return b.reply(chatID, "", model.NewValidationError("volume", "must be a number between 0 and 100"))
	}
	err = b.dash.SetVolume(float64(percent) / 100)
	if err == nil {
		b.flush(ctx)
	}
	return b.reply(chatID, fmt.Sprintf("🔊 Volume set to %d%%", percent), err)
}

func (b *Bot) handleTheme(ctx context.Context, chatID int64) error {
	dark := b.dash.ToggleTheme()
	b.flush(ctx)
	if dark {
		return b.sendText(chatID, "🌙 Dark mode on.")
	}
	return b.sendText(chatID, "☀️ Light mode on.")
}

// Google Calendar

func (b *Bot) handleCalendar(ctx context.Context, chatID int64, args string) error {
	if b.calendar == nil {
		return b.sendText(chatID, "Google Calendar is not configured on this bot.")
	}
	sub, rest := splitFirst(args)
	switch sub {
	case "":
		return b.sendText(chatID, formatCalendarStatus(b.dash.CalendarData()))
	case "connect":
		url := b.calendar.BeginConnect()
		text := "🔗 Open the link, allow read-only access and send the code back with\n<code>/calendar code &lt;code&gt;</code>\n\n" + escape(url)
		return b.sendText(chatID, text)
	case "code":
		err := b.calendar.CompleteConnect(ctx, rest)
		return b.reply(chatID, "✅ Google Calendar connected.\n"+formatCalendarStatus(b.dash.CalendarData()), err)
	case "sync":
		err := b.calendar.Sync(ctx)
		return b.reply(chatID, "🔄 Synced.\n"+formatCalendarStatus(b.dash.CalendarData()), err)
	case "disconnect":
		err := b.calendar.Disconnect(ctx)
		return b.reply(chatID, "🔌 Google Calendar disconnected.", err)
	default:
		return b.sendText(chatID, "Usage: /calendar [connect | code &lt;code&gt; | sync | disconnect]")
	}
}

// Export

func (b *Bot) handleExport(chatID int64, args string) error {
	now := b.dash.Now()
	var (
		file service.ExportFile
		err  error
	)
	switch strings.ToLower(args) {
	case "", "json":
		file, err = service.ExportJSON(b.dash.Snapshot(), b.dash.Contacts(), now)
	case "csv":
		file, err = service.ExportCSV(b.dash.Snapshot(), now)
	default:
		return b.sendText(chatID, "Usage: /export [json|csv]")
	}
	if err != nil {
		return b.reply(chatID, "", err)
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: file.Name, Bytes: file.Data})
	doc.Caption = "📦 " + file.Name
	_, err = b.api.Send(doc)
	return err
}

// Notifications

func (b *Bot) sendNotifications(chatID int64) error {
	active := b.dash.ActiveNotifications()
	if len(active) == 0 {
		return b.sendText(chatID, "🔔 No active notifications.")
	}
	var sb strings.Builder
	sb.WriteString("🔔 <b>Active notifications</b>\n")
	for _, n := range active {
		sb.WriteString(fmt.Sprintf("• <b>%s</b> %s\n", escape(n.Title), escape(n.Message)))
	}
	return b.sendList(chatID, sb.String(), notificationKeyboard(active))
}

func splitFirst(s string) (string, string) {
	s = strings.TrimSpace(s)
	head, tail, _ := strings.Cut(s, " ")
	return strings.ToLower(head), strings.TrimSpace(tail)
}
