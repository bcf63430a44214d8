package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender delivers one rendered message to one Telegram chat.
type Sender interface {
	Send(ctx context.Context, chatID int64, html string) error
}

// TelegramSender posts through the bot API.
type TelegramSender struct {
	api *tgbotapi.BotAPI
}

func NewTelegramSender(api *tgbotapi.BotAPI) *TelegramSender {
	return &TelegramSender{api: api}
}

func (s *TelegramSender) Send(ctx context.Context, chatID int64, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, html)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := s.api.Send(msg); err != nil {
		return fmt.Errorf("sending to chat %d: %w", chatID, err)
	}
	return nil
}

// DryRunSender prints what would be delivered without posting.
type DryRunSender struct{}

func NewDryRunSender() *DryRunSender {
	return &DryRunSender{}
}

func (s *DryRunSender) Send(_ context.Context, chatID int64, html string) error {
	fmt.Printf("--- Message to %d ---\n%s\n\n", chatID, html)
	return nil
}
