package notify_test

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusboard/internal/model"
	"focusboard/internal/notify"
)

type sent struct {
	n      model.Notification
	text   string
	silent bool
}

type fakeSender struct {
	sent []sent
	err  error
}

func (f *fakeSender) SendNotification(_ context.Context, n model.Notification, text string, silent bool) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{n: n, text: text, silent: silent})
	return nil
}

func TestNotifierDeliver(t *testing.T) {
	sender := &fakeSender{}
	n := notify.New(sender, notify.Config{Push: true, RatePerSec: 100}, zerolog.Nop())
	noti := model.Notification{ID: 1, Title: model.ReminderTitle, Message: "Eat <lunch>", Sound: model.SoundReminderGentle}

	got := n.Deliver(context.Background(), noti, false)
	assert.Equal(t, noti, got)
	require.Len(t, sender.sent, 1)
	assert.True(t, sender.sent[0].silent)
	assert.Equal(t, "<b>Gentle reminder 💜</b>\nEat &lt;lunch&gt;", sender.sent[0].text)

	n.Deliver(context.Background(), noti, true)
	assert.False(t, sender.sent[1].silent)
}

func TestNotifierPushDisabled(t *testing.T) {
	sender := &fakeSender{}
	n := notify.New(sender, notify.Config{Push: false}, zerolog.Nop())
	noti := model.Notification{ID: 2, Title: "t"}

	assert.Equal(t, noti, n.Deliver(context.Background(), noti, true))
	assert.Empty(t, sender.sent)
}

func TestNotifierSendFailureStillReturnsRecord(t *testing.T) {
	sender := &fakeSender{err: errors.New("telegram down")}
	n := notify.New(sender, notify.Config{Push: true, RatePerSec: 1}, zerolog.Nop())
	noti := model.Notification{ID: 3, Title: "t"}
	assert.Equal(t, noti, n.Deliver(context.Background(), noti, true))
}

type recordingAPI struct {
	msgs []tgbotapi.Chattable
}

func (r *recordingAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	r.msgs = append(r.msgs, c)
	return tgbotapi.Message{}, nil
}

func TestTelegramSender(t *testing.T) {
	api := &recordingAPI{}
	sender := notify.NewTelegramSender(api, 99)

	err := sender.SendNotification(context.Background(), model.Notification{ID: 1705329900000}, "hello", true)
	require.NoError(t, err)
	require.Len(t, api.msgs, 1)

	msg, ok := api.msgs[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(99), msg.ChatID)
	assert.True(t, msg.DisableNotification)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)

	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard[0], 2)
	assert.Equal(t, "dismiss:1705329900000", *markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "snooze:1705329900000", *markup.InlineKeyboard[0][1].CallbackData)
}
