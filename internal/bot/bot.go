// Package bot wraps the Telegram transport used for outbound notifications
// and inbound command polling.
package bot

import (
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	maxMessageRunes    = 4000
	truncationMarker   = "\n\n... (message truncated)"
	pollTimeoutSeconds = 10
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

// Bot sends notifications to and polls commands from a single Telegram chat.
type Bot struct {
	api    telegramAPI
	chatID int64
	log    *slog.Logger
}

// New creates a Bot for the given token and recipient chat.
func New(token string, chatID int64, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	return &Bot{api: api, chatID: chatID, log: log}, nil
}

// Notify sends text to the configured chat with HTML markup. Oversized
// messages are truncated with a marker; on send failure it retries once with
// markup stripped. Failures are logged and swallowed, never returned.
func (b *Bot) Notify(text string) {
	if r := []rune(text); len(r) > maxMessageRunes {
		text = string(r[:maxMessageRunes]) + truncationMarker
	}

	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := b.api.Send(msg)
	if err == nil {
		return
	}
	b.log.Error("send message", "error", err)

	plain := tgbotapi.NewMessage(b.chatID, stripMarkup(text))
	plain.DisableWebPagePreview = true
	if _, err := b.api.Send(plain); err != nil {
		b.log.Error("send fallback message", "error", err)
	}
}

// Poll fetches updates after cursor, long-polling up to 10 seconds.
func (b *Bot) Poll(cursor int) ([]tgbotapi.Update, error) {
	u := tgbotapi.NewUpdate(cursor + 1)
	u.Timeout = pollTimeoutSeconds

	updates, err := b.api.GetUpdates(u)
	if err != nil {
		return nil, fmt.Errorf("get updates: %w", err)
	}
	return updates, nil
}

// Probe sends a short validation message to verify the token and chat ID.
func (b *Bot) Probe() error {
	msg := tgbotapi.NewMessage(b.chatID, "Webpage monitor connectivity check")
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("validation message: %w", err)
	}
	return nil
}

// stripMarkup removes the simple HTML tags used in notification texts, for
// the plain-text fallback send.
func stripMarkup(s string) string {
	r := strings.NewReplacer("<b>", "", "</b>", "", "<code>", "", "</code>", "")
	return r.Replace(s)
}
