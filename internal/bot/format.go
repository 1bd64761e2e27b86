package bot

import (
	"fmt"
	"html"
	"strings"
	"time"

	"focusboard/internal/model"
)

func escape(s string) string {
	return html.EscapeString(s)
}

func shortTitle(title string, maxLen int) string {
	clean := strings.TrimSpace(strings.ReplaceAll(title, "\n", " "))
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func formatRoutineItem(item model.RoutineItem) string {
	icon := "⬜"
	if item.Completed {
		icon = "✅"
	}
	return fmt.Sprintf("%s <code>%d</code> %s", icon, item.ID, escape(item.Text))
}

func priorityIcon(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "🔴"
	case model.PriorityMedium:
		return "🟡"
	default:
		return "🟢"
	}
}

func formatTodo(todo model.Todo) string {
	text := escape(todo.Text)
	if todo.Completed {
		text = "<s>" + text + "</s>"
	}
	return priorityIcon(todo.Priority) + " " + text
}

func formatEvent(e model.Event) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>%s</b> %s", escape(e.Time), escape(e.Title)))
	if e.ReadOnly() {
		sb.WriteString(" <i>(Google)</i>")
	}
	return sb.String()
}

// formatDay labels a day-key relative to today.
func formatDay(day, today string) string {
	if day == today {
		return "Today"
	}
	t, err := time.Parse(model.DayKeyLayout, day)
	if err != nil {
		return day
	}
	if base, err := time.Parse(model.DayKeyLayout, today); err == nil && t.Sub(base) == 24*time.Hour {
		return "Tomorrow"
	}
	return t.Format("Mon, Jan 2")
}

func formatReminder(r model.Reminder) string {
	icon := "🔔"
	if !r.Enabled {
		icon = "🔕"
	}
	return fmt.Sprintf("%s %s <i>(%s)</i>", icon, escape(r.Text), r.Frequency.String())
}

var urgencyLabels = map[model.Urgency]string{
	model.UrgencyToday:     "🟢 today",
	model.UrgencyWeek:      "🟢 this week",
	model.UrgencyFortnight: "🟡 %d days ago",
	model.UrgencyMonth:     "🟠 %d days ago",
	model.UrgencyOverdue:   "🔴 %d days ago",
}

func formatContact(c model.Contact, now time.Time) string {
	days := c.DaysSince(now)
	label := urgencyLabels[model.UrgencyFor(days)]
	if strings.Contains(label, "%d") {
		label = fmt.Sprintf(label, days)
	}
	return fmt.Sprintf("<code>%d</code> %s · %s", c.ID, escape(c.Name), label)
}

func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func formatCalendarStatus(cal model.CalendarData) string {
	if !cal.Auth.IsConnected {
		msg := "📆 Google Calendar is not connected. Use /calendar connect."
		if cal.Error != "" {
			msg += "\n⚠️ " + escape(cal.Error)
		}
		return msg
	}
	var sb strings.Builder
	sb.WriteString("📆 Google Calendar connected")
	if cal.Auth.UserEmail != "" {
		sb.WriteString(" as " + escape(cal.Auth.UserEmail))
	}
	sb.WriteString(fmt.Sprintf("\nMirrored events: %d", len(cal.Events)))
	if cal.LastFetch != nil {
		sb.WriteString("\nLast sync: " + cal.LastFetch.Format("Jan 2 15:04"))
	}
	if cal.Error != "" {
		sb.WriteString("\n⚠️ " + escape(cal.Error))
	}
	return sb.String()
}
