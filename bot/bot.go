// Package bot is the Telegram transport: it turns inbound updates into
// engine calls and renders the resulting actions back through the API.
package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/arkadios/glossabot/database"
	"github.com/arkadios/glossabot/game"
)

// Bot drives the long-polling loop.
type Bot struct {
	api      *tgbotapi.BotAPI
	orch     *game.Orchestrator
	renderer *Renderer
	logger   *slog.Logger
}

// New creates a bot over an orchestrator. The session store is needed so the
// renderer can record delivered question message ids.
func New(token string, debug bool, orch *game.Orchestrator, store database.SessionStore, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "create bot API")
	}
	api.Debug = debug

	return &Bot{
		api:      api,
		orch:     orch,
		renderer: NewRenderer(api, store, logger),
		logger:   logger,
	}, nil
}

// Start polls for updates until the context is cancelled. Every update
// receives its fixed acknowledgement regardless of internal outcome; errors
// never propagate back to Telegram.
func (b *Bot) Start(ctx context.Context) {
	b.logger.Info("starting bot polling", "username", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	gu, ok := toGameUpdate(update)
	if !ok {
		return
	}

	b.logger.Debug("handling update",
		"owner_id", gu.OwnerID,
		"callback", gu.IsCallback(),
	)

	actions := b.orch.HandleUpdate(ctx, gu)
	b.renderer.Render(ctx, actions)
}

// toGameUpdate maps the transport payload onto the engine's update shape.
func toGameUpdate(update tgbotapi.Update) (game.Update, bool) {
	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		gu := game.Update{
			OwnerID:    cb.From.ID,
			CallbackID: cb.ID,
			Data:       cb.Data,
		}
		if cb.Message != nil {
			gu.ChatID = cb.Message.Chat.ID
			gu.MessageID = cb.Message.MessageID
		}
		return gu, true
	case update.Message != nil:
		msg := update.Message
		return game.Update{
			OwnerID: msg.From.ID,
			ChatID:  msg.Chat.ID,
			Text:    msg.Text,
		}, true
	default:
		return game.Update{}, false
	}
}
