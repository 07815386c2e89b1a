package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/arkadios/glossabot/database"
	"github.com/arkadios/glossabot/game"
)

// Renderer executes render actions against the Telegram API in order.
// Delivery failures are logged and never surfaced upward.
type Renderer struct {
	api    *tgbotapi.BotAPI
	store  database.SessionStore
	logger *slog.Logger
	clock  func() time.Time
}

// NewRenderer creates a renderer.
func NewRenderer(api *tgbotapi.BotAPI, store database.SessionStore, logger *slog.Logger) *Renderer {
	return &Renderer{api: api, store: store, logger: logger, clock: time.Now}
}

// Render executes each action. The action union is closed; an unknown type
// here means the engine grew a kind the renderer does not handle yet.
func (r *Renderer) Render(ctx context.Context, actions []game.Action) {
	for _, action := range actions {
		switch action := action.(type) {
		case game.SendMessage:
			r.sendMessage(ctx, action)
		case game.EditMessage:
			r.editMessage(action)
		case game.SetKeyboard:
			r.setKeyboard(action)
		case game.AnswerCallback:
			r.answerCallback(action)
		default:
			r.logger.Error("unknown render action", "type", fmt.Sprintf("%T", action))
		}
	}
}

func (r *Renderer) sendMessage(ctx context.Context, action game.SendMessage) {
	msg := tgbotapi.NewMessage(action.ChatID, action.Text)
	if len(action.Keyboard) > 0 {
		msg.ReplyMarkup = toInlineKeyboard(action.Keyboard)
	}

	sent, err := r.api.Send(msg)
	if err != nil {
		r.logger.Error("send message", "chat_id", action.ChatID, "error", err)
		return
	}

	if action.TrackSessionID != "" {
		r.trackPending(ctx, action.TrackSessionID, sent.MessageID)
	}
}

// trackPending records the delivered question message on its session so the
// engine can detect stale re-taps.
func (r *Renderer) trackPending(ctx context.Context, sessionID string, messageID int) {
	sess, err := r.store.GetByID(ctx, sessionID)
	if err != nil || sess.Current == nil {
		return
	}
	sess.Current.PendingMessageID = messageID
	sess.UpdatedAt = r.clock().Unix()
	if err := r.store.Put(ctx, sess); err != nil {
		r.logger.Error("track pending message", "session_id", sessionID, "error", err)
	}
}

func (r *Renderer) editMessage(action game.EditMessage) {
	edit := tgbotapi.NewEditMessageText(action.ChatID, action.MessageID, action.Text)
	if _, err := r.api.Send(edit); err != nil {
		r.logger.Error("edit message", "chat_id", action.ChatID, "message_id", action.MessageID, "error", err)
	}
}

func (r *Renderer) setKeyboard(action game.SetKeyboard) {
	markup := toInlineKeyboard(action.Keyboard)
	edit := tgbotapi.NewEditMessageReplyMarkup(action.ChatID, action.MessageID, markup)
	if _, err := r.api.Send(edit); err != nil {
		r.logger.Error("set keyboard", "chat_id", action.ChatID, "message_id", action.MessageID, "error", err)
	}
}

func (r *Renderer) answerCallback(action game.AnswerCallback) {
	callback := tgbotapi.NewCallback(action.CallbackID, action.Text)
	if _, err := r.api.Request(callback); err != nil {
		r.logger.Error("answer callback", "callback_id", action.CallbackID, "error", err)
	}
}

func toInlineKeyboard(rows [][]game.Button) tgbotapi.InlineKeyboardMarkup {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, button := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(button.Label, button.Data))
		}
		keyboard = append(keyboard, buttons)
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: keyboard}
}
