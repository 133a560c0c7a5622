package notifier

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fkoehler/stadtticker/internal/event"
)

// TelegramNotifier sends one Telegram message per event.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a Telegram notifier for the given bot token
// and chat. Creating the client validates the token against the API.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	if token == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("chat ID is required")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram client: %w", err)
	}

	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

// Notify sends the formatted message with link previews disabled.
func (n *TelegramNotifier) Notify(ev event.Event) error {
	msg := tgbotapi.NewMessage(n.chatID, FormatMessage(ev))
	msg.DisableWebPagePreview = true

	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("sending notification for %s: %w", ev.UID, err)
	}
	return nil
}
