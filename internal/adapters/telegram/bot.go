package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hashicorp/go-hclog"
)

// MessageHandler processes the text of one inbound chat message.
type MessageHandler interface {
	Process(ctx context.Context, chatID int64, messageText string)
}

// Bot long-polls Telegram for updates and hands every text message to the
// handler. Each message runs in its own goroutine, so two messages may be
// in flight at once; work within one message stays sequential.
type Bot struct {
	api     *tgbotapi.BotAPI
	handler MessageHandler
	logger  hclog.Logger
}

// NewBot creates a Bot.
func NewBot(api *tgbotapi.BotAPI, handler MessageHandler, logger hclog.Logger) *Bot {
	return &Bot{api: api, handler: handler, logger: logger}
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 60
	updates := b.api.GetUpdatesChan(cfg)

	b.logger.Info("listening for messages", "bot", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("update loop stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			chatID := update.Message.Chat.ID
			text := update.Message.Text
			go b.handler.Process(ctx, chatID, text)
		}
	}
}
