// Package notify delivers dashboard notifications outside the process.
package notify

import (
	"context"
	"fmt"
	"html"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"focusboard/internal/model"
)

// Callback data prefixes attached to pushed notifications.
const (
	CallbackDismiss = "dismiss:"
	CallbackSnooze  = "snooze:"
)

// Sender pushes a rendered notification to the owner's device.
type Sender interface {
	SendNotification(ctx context.Context, n model.Notification, text string, silent bool) error
}

type Config struct {
	Push       bool
	RatePerSec int
}

// Notifier is the delivery collaborator of the scheduler. Deliver always
// hands back the in-app record; the push is best effort.
type Notifier struct {
	sender  Sender
	push    bool
	limiter *rate.Limiter
	log     zerolog.Logger
}

func New(sender Sender, cfg Config, log zerolog.Logger) *Notifier {
	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = 1
	}
	return &Notifier{
		sender:  sender,
		push:    cfg.Push && sender != nil,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		log:     log,
	}
}

// Deliver pushes n unless pushing is disabled. soundOn=false sends silently.
func (n *Notifier) Deliver(ctx context.Context, noti model.Notification, soundOn bool) model.Notification {
	if !n.push {
		return noti
	}
	if err := n.limiter.Wait(ctx); err != nil {
		n.log.Warn().Err(err).Int64("notification_id", noti.ID).Msg("notification push skipped")
		return noti
	}
	if err := n.sender.SendNotification(ctx, noti, Render(noti), !soundOn); err != nil {
		n.log.Warn().Err(err).Int64("notification_id", noti.ID).Str("title", noti.Title).Msg("notification push failed")
		return noti
	}
	n.log.Debug().Int64("notification_id", noti.ID).Str("sound", string(noti.Sound)).Msg("notification pushed")
	return noti
}

// Render formats a notification as Telegram HTML.
func Render(n model.Notification) string {
	return fmt.Sprintf("<b>%s</b>\n%s", html.EscapeString(n.Title), html.EscapeString(n.Message))
}
