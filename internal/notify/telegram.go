// Package notify delivers alert digests to operators. Telegram is the only
// channel for now; Notifier keeps the digest job decoupled from it.
package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aimhealth/growthos/backend/internal/models"
)

// Notifier delivers a digest of critical alerts
type Notifier interface {
	SendCriticalAlerts(alerts []models.Alert) error
}

// TelegramNotifier sends alert digests to a Telegram chat
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a notifier for the given bot token and chat
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// SendCriticalAlerts formats the alerts into one message and sends it.
// No-op when there is nothing critical to report.
func (n *TelegramNotifier) SendCriticalAlerts(alerts []models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🚨 Growth OS: %d critical alert(s)\n\n", len(alerts))
	for _, a := range alerts {
		fmt.Fprintf(&b, "• %s\n  %s\n", a.Message, a.Recommendation)
	}

	msg := tgbotapi.NewMessage(n.chatID, b.String())
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

// NopNotifier discards digests; used when no channel is configured
type NopNotifier struct{}

func (NopNotifier) SendCriticalAlerts(alerts []models.Alert) error { return nil }
