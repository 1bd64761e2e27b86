package bot

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"focusboard/internal/model"
	"focusboard/internal/notify"
)

const (
	menuLabelToday     = "📋 Today"
	menuLabelRoutine   = "☀️ Routine"
	menuLabelTodos     = "✅ Todos"
	menuLabelEvents    = "📅 Events"
	menuLabelReminders = "⏰ Reminders"
	menuLabelTimer     = "⏱ Timer"
	menuLabelHelp      = "ℹ️ Help"
)

const buttonTitleLen = 24

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelToday),
			tgbotapi.NewKeyboardButton(menuLabelRoutine),
			tgbotapi.NewKeyboardButton(menuLabelTodos),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelEvents),
			tgbotapi.NewKeyboardButton(menuLabelReminders),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelTimer),
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

func callbackData(prefix, action string, id int) string {
	return prefix + action + ":" + strconv.Itoa(id)
}

func routineKeyboard(items []model.RoutineItem) [][]tgbotapi.InlineKeyboardButton {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(items))
	for _, item := range items {
		icon := "⬜"
		if item.Completed {
			icon = "✅"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(icon+" "+shortTitle(item.Text, buttonTitleLen), callbackData(cbRoutinePrefix, actionToggle, item.ID)),
			tgbotapi.NewInlineKeyboardButtonData("⬆️", callbackData(cbRoutinePrefix, actionUp, item.ID)),
			tgbotapi.NewInlineKeyboardButtonData("⬇️", callbackData(cbRoutinePrefix, actionDown, item.ID)),
		))
	}
	return rows
}

func todoKeyboard(todos []model.Todo) [][]tgbotapi.InlineKeyboardButton {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(todos))
	for _, todo := range todos {
		label := "✅ " + shortTitle(todo.Text, buttonTitleLen)
		if todo.Completed {
			label = "↩️ " + shortTitle(todo.Text, buttonTitleLen)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackData(cbTodoPrefix, actionToggle, todo.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑", callbackData(cbTodoPrefix, actionDelete, todo.ID)),
		))
	}
	return rows
}

func reminderKeyboard(reminders []model.Reminder) [][]tgbotapi.InlineKeyboardButton {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(reminders))
	for _, r := range reminders {
		label := "⏸ " + shortTitle(r.Text, buttonTitleLen)
		if !r.Enabled {
			label = "▶️ " + shortTitle(r.Text, buttonTitleLen)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackData(cbReminderPrefix, actionToggle, r.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑", callbackData(cbReminderPrefix, actionDelete, r.ID)),
		))
	}
	return rows
}

func contactKeyboard(contacts []model.Contact) [][]tgbotapi.InlineKeyboardButton {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💬 "+shortTitle(c.Name, buttonTitleLen), callbackData(cbContactPrefix, actionDone, c.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑", callbackData(cbContactPrefix, actionDelete, c.ID)),
		))
	}
	return rows
}

func timerKeyboard(presets []int) [][]tgbotapi.InlineKeyboardButton {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(presets))
	for _, m := range presets {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d min", m), cbTimerPrefix+strconv.Itoa(m)))
	}
	return [][]tgbotapi.InlineKeyboardButton{row}
}

func notificationKeyboard(active []model.Notification) [][]tgbotapi.InlineKeyboardButton {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(active))
	for _, n := range active {
		id := strconv.FormatInt(n.ID, 10)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ "+shortTitle(n.Message, buttonTitleLen), notify.CallbackDismiss+id),
			tgbotapi.NewInlineKeyboardButtonData("💤", notify.CallbackSnooze+id),
		))
	}
	return rows
}
