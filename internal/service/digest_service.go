package service

import (
	"fmt"
	"html"
	"strings"

	"focusboard/internal/model"
)

// DigestService builds the human-readable daily summary.
type DigestService struct {
	dash *Dashboard
}

func NewDigestService(dash *Dashboard) *DigestService {
	return &DigestService{dash: dash}
}

// DailySummary renders today's routine progress, open todos, events and
// active reminders as Telegram HTML.
func (s *DigestService) DailySummary() string {
	now := s.dash.Now()
	state := s.dash.Snapshot()
	today := model.DayKey(now)

	var builder strings.Builder
	builder.WriteString("📋 <b>Daily overview</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("Monday, January 2, 2006")))

	done := 0
	for _, item := range state.DailyRoutine {
		if item.Completed {
			done++
		}
	}
	builder.WriteString(fmt.Sprintf("☀️ <b>Routine</b> %d/%d\n", done, len(state.DailyRoutine)))
	for _, item := range state.DailyRoutine {
		builder.WriteString(formatRoutineItem(item))
	}

	builder.WriteString("\n🔥 <b>Open todos</b>\n")
	open := 0
	for _, todo := range state.Todos {
		if todo.Completed {
			continue
		}
		open++
		builder.WriteString(formatTodo(todo))
	}
	if open == 0 {
		builder.WriteString("— nothing open\n")
	}

	builder.WriteString("\n📅 <b>Today's events</b>\n")
	events := eventsOn(state, today)
	if len(events) == 0 {
		builder.WriteString("— no events today\n")
	}
	for _, e := range events {
		builder.WriteString(formatEvent(e))
	}

	builder.WriteString("\n⏰ <b>Reminders</b>\n")
	active := 0
	for _, r := range state.Reminders {
		if !r.Enabled {
			continue
		}
		active++
		builder.WriteString(fmt.Sprintf("• %s <i>(%s)</i>\n", html.EscapeString(r.Text), r.Frequency.String()))
	}
	if active == 0 {
		builder.WriteString("— all reminders are off\n")
	}

	return strings.TrimSpace(builder.String())
}

func formatRoutineItem(item model.RoutineItem) string {
	icon := "⬜"
	if item.Completed {
		icon = "✅"
	}
	return fmt.Sprintf("%s %s\n", icon, html.EscapeString(item.Text))
}

func formatTodo(todo model.Todo) string {
	icon := "🟢"
	switch todo.Priority {
	case model.PriorityHigh:
		icon = "🔴"
	case model.PriorityMedium:
		icon = "🟡"
	}
	return fmt.Sprintf("%s %s\n", icon, html.EscapeString(strings.TrimSpace(todo.Text)))
}

func formatEvent(e model.Event) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("• <b>%s</b> %s", html.EscapeString(e.Time), html.EscapeString(e.Title)))
	if e.ReadOnly() {
		sb.WriteString(" <i>(Google)</i>")
	}
	sb.WriteByte('\n')
	return sb.String()
}
