// Package game implements the quiz engine: the session state machine, the
// question-sampling algorithm and the render-action pipeline that keeps game
// decisions separate from message delivery.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arkadios/glossabot/database"
	"github.com/arkadios/glossabot/metrics"
	"github.com/arkadios/glossabot/models"
	"github.com/arkadios/glossabot/pool"
)

const helpText = `This bot quizzes you on Greek vocabulary and facts about Greece.

Modes:
• Greek → English and English → Greek — multiple choice
• Spelling — type the Greek word yourself
• Guess the topic — read a short text, pick its subject
• Facts about Greece — AI-generated quiz questions

Commands:
/start — restart and choose a mode
/help — this message`

const noticeUnsupported = "Unsupported command. Send /start to begin a quiz, or /help for instructions."

// Options carries the orchestrator tunables. Zero values select production
// defaults; tests inject deterministic replacements.
type Options struct {
	FactQuestions int
	SessionTTL    time.Duration
	Rand          Rand
	Clock         func() time.Time
	NewID         func() string
}

// Orchestrator is the top-level dispatcher: one inbound update in, an
// ordered action list out. Each invocation is stateless; all progress lives
// in the session store.
type Orchestrator struct {
	core     *core
	variants []Variant
	byMode   map[models.Mode]Variant
}

// New wires an orchestrator with its four play variants.
func New(store database.SessionStore, pools pool.Provider, facts FactGenerator, sink metrics.Sink, logger *slog.Logger, opts Options) *Orchestrator {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.FactQuestions <= 0 {
		opts.FactQuestions = 10
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.Rand == nil {
		opts.Rand = NewRand()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	c := &core{
		store:         store,
		pools:         pools,
		facts:         facts,
		sink:          sink,
		logger:        logger,
		rand:          opts.Rand,
		clock:         opts.Clock,
		newID:         opts.NewID,
		factQuestions: opts.FactQuestions,
		sessionTTL:    opts.SessionTTL,
	}

	variants := []Variant{
		&choiceVariant{core: c},
		&spellVariant{core: c},
		&topicVariant{core: c},
		&factsVariant{core: c},
	}
	byMode := make(map[models.Mode]Variant)
	for _, v := range variants {
		for _, m := range v.Modes() {
			byMode[m] = v
		}
	}

	return &Orchestrator{core: c, variants: variants, byMode: byMode}
}

// HandleUpdate processes one inbound update. It never panics past this
// boundary: internal failures are logged, recorded as an error observation
// and reduced to a bare acknowledgement.
func (o *Orchestrator) HandleUpdate(ctx context.Context, u Update) (actions []Action) {
	defer func() {
		if r := recover(); r != nil {
			o.core.logger.Error("panic handling update", "owner_id", u.OwnerID, "panic", r)
			o.core.sink.Observe(metrics.EventError, "op", "handle_update", "panic", fmt.Sprint(r))
			actions = nil
			if u.IsCallback() {
				actions = []Action{AnswerCallback{CallbackID: u.CallbackID}}
			}
		}
	}()

	if u.IsCallback() {
		return o.routeCallback(ctx, u)
	}
	return o.routeMessage(ctx, u)
}

func (o *Orchestrator) routeMessage(ctx context.Context, u Update) []Action {
	text := strings.TrimSpace(u.Text)
	switch {
	case text == "":
		return nil
	case strings.HasPrefix(text, "/start"):
		return o.restart(ctx, u)
	case strings.HasPrefix(text, "/help"):
		return []Action{SendMessage{ChatID: u.ChatID, Text: helpText}}
	}

	for _, v := range o.variants {
		in, ok := v.BuildInput(u)
		if !ok {
			continue
		}
		if actions := v.Invoke(ctx, in); actions != nil {
			return actions
		}
	}
	return []Action{SendMessage{ChatID: u.ChatID, Text: noticeUnsupported}}
}

func (o *Orchestrator) routeCallback(ctx context.Context, u Update) []Action {
	if intent, ok := ParseMenuCallback(u.Data); ok {
		ack := AnswerCallback{CallbackID: u.CallbackID}
		switch intent := intent.(type) {
		case ModeIntent:
			return []Action{ack, o.modeSelected(u, intent.Mode)}
		case CategoryIntent:
			return []Action{ack, o.levelMenu(u.ChatID, intent.Mode, intent.Category)}
		case LevelIntent:
			variant := o.byMode[intent.Mode]
			return append([]Action{ack}, variant.Begin(ctx, u, intent.Mode, intent.Level, intent.Category)...)
		}
	}

	if _, ok := ParseAnswerCallback(u.Data); ok {
		for _, v := range o.variants {
			in, ok := v.BuildInput(u)
			if !ok {
				continue
			}
			if actions := v.Invoke(ctx, in); actions != nil {
				return actions
			}
		}
	}

	// Unrecognized callback: acknowledge and change nothing.
	return []Action{AnswerCallback{CallbackID: u.CallbackID}}
}

// restart supersedes the owner's session and re-opens the mode menu.
func (o *Orchestrator) restart(ctx context.Context, u Update) []Action {
	o.core.supersede(ctx, u.OwnerID)
	return []Action{o.core.modeMenu(u.ChatID)}
}

// modeSelected advances the menu flow: category step first for modes that
// declare one, otherwise straight to the level step.
func (o *Orchestrator) modeSelected(u Update, mode models.Mode) Action {
	info, ok := models.ModeFor(mode)
	if !ok {
		info, _ = models.ModeFor(models.DefaultMode)
	}
	if info.HasCategory {
		return o.categoryMenu(u.ChatID, info.Mode)
	}
	return o.levelMenu(u.ChatID, info.Mode, "")
}

func (o *Orchestrator) categoryMenu(chatID int64, mode models.Mode) Action {
	var rows [][]Button
	for _, category := range models.Categories() {
		rows = append(rows, []Button{{
			Label: titleCase(category),
			Data:  CategoryCallback(category, mode),
		}})
	}
	return SendMessage{ChatID: chatID, Text: "Choose a category:", Keyboard: rows}
}

func (o *Orchestrator) levelMenu(chatID int64, mode models.Mode, category string) Action {
	var rows [][]Button
	for _, level := range models.Levels() {
		rows = append(rows, []Button{{
			Label: strings.ToUpper(level),
			Data:  LevelCallback(level, mode, category),
		}})
	}
	return SendMessage{ChatID: chatID, Text: "Choose a level:", Keyboard: rows}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
