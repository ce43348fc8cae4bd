package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"
)

// Notifier implements ports.Notifier over the Telegram Bot API. Sends are
// throttled with a shared limiter to stay under the Bot API flood limits.
type Notifier struct {
	api     *tgbotapi.BotAPI
	limiter *rate.Limiter
	logger  hclog.Logger
}

// NewNotifier creates a Notifier backed by the given bot client.
func NewNotifier(api *tgbotapi.BotAPI, logger hclog.Logger) *Notifier {
	return &Notifier{
		api: api,
		// Telegram allows roughly 30 messages per second bot-wide.
		limiter: rate.NewLimiter(rate.Every(time.Second/20), 5),
		logger:  logger,
	}
}

// SendText delivers a text message to the chat.
func (n *Notifier) SendText(ctx context.Context, chatID int64, text string) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}
	if _, err := n.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}

// SendDocument delivers a local file to the chat as a document.
func (n *Notifier) SendDocument(ctx context.Context, chatID int64, path string) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}
	if _, err := n.api.Send(tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))); err != nil {
		return fmt.Errorf("sending document %s: %w", path, err)
	}
	n.logger.Debug("document sent", "chat", chatID, "path", path)
	return nil
}
