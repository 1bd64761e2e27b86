package notify

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"focusboard/internal/model"
)

// MessageSender is the part of *tgbotapi.BotAPI used for pushes.
type MessageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSender pushes notifications to the owner chat with dismiss and
// snooze buttons.
type TelegramSender struct {
	api    MessageSender
	chatID int64
}

func NewTelegramSender(api MessageSender, chatID int64) *TelegramSender {
	return &TelegramSender{api: api, chatID: chatID}
}

func (s *TelegramSender) SendNotification(_ context.Context, n model.Notification, text string, silent bool) error {
	id := strconv.FormatInt(n.ID, 10)
	msg := tgbotapi.NewMessage(s.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableNotification = silent
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Dismiss", CallbackDismiss+id),
			tgbotapi.NewInlineKeyboardButtonData("💤 Snooze", CallbackSnooze+id),
		),
	)
	_, err := s.api.Send(msg)
	return err
}
