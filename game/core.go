package game

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/arkadios/glossabot/database"
	"github.com/arkadios/glossabot/metrics"
	"github.com/arkadios/glossabot/models"
	"github.com/arkadios/glossabot/pool"
)

// core carries the collaborators and tunables shared by the orchestrator and
// every variant.
type core struct {
	store  database.SessionStore
	pools  pool.Provider
	facts  FactGenerator
	sink   metrics.Sink
	logger *slog.Logger

	rand  Rand
	clock func() time.Time
	newID func() string

	factQuestions int
	sessionTTL    time.Duration
}

const (
	noticeNotFound     = "Session not found. Send /start to begin a new quiz."
	noticeStale        = "That question is no longer active."
	noticeInsufficient = "Not enough material for this selection. Try another level or category."
	noticePoolFailure  = "Could not load the questions. Please try again later."
	noticeBuildFailure = "Could not build a question. Send /start to try again."
	noticeInternal     = "Something went wrong. Send /start to try again."
)

// newSession builds a fresh session covering total pool indices.
func (c *core) newSession(ownerID int64, mode models.Mode, level, category string, total int) *models.Session {
	remaining := make([]int, total)
	for i := range remaining {
		remaining[i] = i
	}
	now := c.clock()
	return &models.Session{
		ID:           c.newID(),
		OwnerID:      ownerID,
		Level:        level,
		Mode:         mode,
		Category:     category,
		RemainingIDs: remaining,
		TotalCount:   total,
		ExpiresAt:    now.Add(c.sessionTTL).Unix(),
		UpdatedAt:    now.Unix(),
	}
}

// supersede deletes the owner's active session, if any.
func (c *core) supersede(ctx context.Context, ownerID int64) {
	prev, err := c.store.GetLatestByOwner(ctx, ownerID)
	if err != nil {
		return
	}
	if err := c.store.Delete(ctx, prev.ID); err != nil {
		c.logger.Warn("delete superseded session", "session_id", prev.ID, "error", err)
	}
}

// resolveAnswer loads the session an answer callback refers to, applying the
// not-found and stale-message guards. When a guard fires, the returned
// actions carry the user notice and the session is nil.
func (c *core) resolveAnswer(ctx context.Context, in AnswerInput) (*models.Session, []Action) {
	sess, err := c.store.GetByID(ctx, in.SessionID)
	if err != nil || sess.Current == nil {
		return nil, []Action{AnswerCallback{CallbackID: in.Update.CallbackID, Text: noticeNotFound}}
	}
	if in.Update.MessageID != sess.Current.PendingMessageID {
		// Stale re-tap on a superseded question message: strip its dead
		// buttons and leave the session untouched.
		return nil, []Action{
			AnswerCallback{CallbackID: in.Update.CallbackID, Text: noticeStale},
			SetKeyboard{ChatID: in.Update.ChatID, MessageID: in.Update.MessageID},
		}
	}
	return sess, nil
}

// score records one answered question on the session and emits the
// answered/correct/wrong observations.
func (c *core) score(sess *models.Session, correct bool) {
	sess.TotalAsked++
	if correct {
		sess.CorrectCount++
	}
	sess.UpdatedAt = c.clock().Unix()

	c.sink.Observe(metrics.EventAnswered, "mode", string(sess.Mode), "session_id", sess.ID)
	if correct {
		c.sink.Observe(metrics.EventCorrect, "mode", string(sess.Mode), "session_id", sess.ID)
	} else {
		c.sink.Observe(metrics.EventWrong, "mode", string(sess.Mode), "session_id", sess.ID)
	}
}

// persist writes the session, converting a store failure into a user notice.
func (c *core) persist(ctx context.Context, chatID int64, sess *models.Session) (ok bool, failure []Action) {
	if err := c.store.Put(ctx, sess); err != nil {
		c.logger.Error("persist session", "session_id", sess.ID, "error", err)
		c.sink.Observe(metrics.EventError, "op", "put", "session_id", sess.ID)
		return false, []Action{SendMessage{ChatID: chatID, Text: noticeInternal}}
	}
	return true, nil
}

// beginPool runs the shared level-confirmed transition for pool-indexed
// variants: fetch the pool, check its size, supersede the prior session,
// sample the first question and persist. render turns the fresh session and
// its pool into the first-question actions.
func (c *core) beginPool(ctx context.Context, u Update, mode models.Mode, level, category string, render func(*models.Session, models.Pool) []Action) []Action {
	info, ok := models.ModeFor(mode)
	if !ok {
		return []Action{SendMessage{ChatID: u.ChatID, Text: noticeInternal}}
	}

	p, err := c.pools.Load(ctx, level, category, mode)
	if err != nil {
		c.logger.Error("load pool", "mode", string(mode), "level", level, "error", err)
		c.sink.Observe(metrics.EventError, "op", "pool_load", "mode", string(mode))
		return []Action{SendMessage{ChatID: u.ChatID, Text: noticePoolFailure}}
	}
	if p.Size() < info.MinPoolSize {
		return []Action{SendMessage{ChatID: u.ChatID, Text: noticeInsufficient}}
	}

	c.supersede(ctx, u.OwnerID)
	sess := c.newSession(u.OwnerID, mode, level, category, p.Size())

	sampled := Sample(c.rand, p.Size(), sess.RemainingIDs)
	if sampled == nil {
		return []Action{SendMessage{ChatID: u.ChatID, Text: noticeBuildFailure}}
	}
	sess.Current = &models.SessionQuestion{
		AnswerKeyID:  sampled.AnswerKeyID,
		Options:      sampled.Options,
		CorrectIndex: sampled.CorrectIndex,
	}
	sess.RemainingIDs = sampled.Remaining

	if ok, failure := c.persist(ctx, u.ChatID, sess); !ok {
		return failure
	}
	c.sink.Observe(metrics.EventStarted, "mode", string(mode), "session_id", sess.ID)

	actions := []Action{levelConfirmation(u.ChatID, sess)}
	return append(actions, render(sess, p)...)
}

// advancePool swaps in the next sampled question or completes the session,
// persisting either way. render turns the advanced session into its
// question actions.
func (c *core) advancePool(ctx context.Context, chatID int64, sess *models.Session, poolSize int, render func(*models.Session) []Action) []Action {
	sampled := Sample(c.rand, poolSize, sess.RemainingIDs)
	if sampled == nil {
		sess.Current = nil
		if ok, failure := c.persist(ctx, chatID, sess); !ok {
			return failure
		}
		return c.completionActions(chatID, sess)
	}

	sess.Current = &models.SessionQuestion{
		AnswerKeyID:  sampled.AnswerKeyID,
		Options:      sampled.Options,
		CorrectIndex: sampled.CorrectIndex,
	}
	sess.RemainingIDs = sampled.Remaining
	if ok, failure := c.persist(ctx, chatID, sess); !ok {
		return failure
	}
	return render(sess)
}

// completionActions emits the end-of-quiz summary followed by a fresh mode
// menu.
func (c *core) completionActions(chatID int64, sess *models.Session) []Action {
	c.sink.Observe(metrics.EventCompleted,
		"mode", string(sess.Mode),
		"session_id", sess.ID,
		"correct", sess.CorrectCount,
		"total", sess.TotalAsked,
	)

	percent := 0.0
	if sess.TotalAsked > 0 {
		percent = float64(sess.CorrectCount) / float64(sess.TotalAsked) * 100
	}
	summary := fmt.Sprintf("🏁 Quiz complete!\nScore: %d/%d (%.0f%%)",
		sess.CorrectCount, sess.TotalAsked, percent)

	return []Action{
		SendMessage{ChatID: chatID, Text: summary},
		c.modeMenu(chatID),
	}
}

// modeMenu builds the mode-selection keyboard.
func (c *core) modeMenu(chatID int64) Action {
	var rows [][]Button
	for _, info := range models.Modes() {
		rows = append(rows, []Button{{Label: info.Title, Data: ModeCallback(info.Mode)}})
	}
	return SendMessage{ChatID: chatID, Text: "Choose a quiz mode:", Keyboard: rows}
}

// levelConfirmation announces the confirmed selection before the first
// question.
func levelConfirmation(chatID int64, sess *models.Session) Action {
	return SendMessage{
		ChatID: chatID,
		Text: fmt.Sprintf("Level %s — %d questions. Good luck!",
			strings.ToUpper(sess.Level), sess.TotalCount),
	}
}

// questionMessage renders one question with its answer keyboard. The sent
// message is tracked as the session's pending question.
func questionMessage(chatID int64, sess *models.Session, prompt string, options []string, prefix string) SendMessage {
	text := fmt.Sprintf("Question %d/%d\n%s", sess.TotalAsked+1, sess.TotalCount, prompt)
	var rows [][]Button
	for i, label := range options {
		rows = append(rows, []Button{{Label: label, Data: AnswerData(prefix, sess.ID, i)}})
	}
	return SendMessage{ChatID: chatID, Text: text, Keyboard: rows, TrackSessionID: sess.ID}
}

// verdictText rewrites the answered question message with the outcome.
func verdictText(ordinal, total int, prompt, submitted, correctAnswer string, correct bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question %d/%d\n%s\n\n", ordinal, total, prompt)
	if correct {
		fmt.Fprintf(&b, "Your answer: %s ✅", submitted)
	} else {
		fmt.Fprintf(&b, "Your answer: %s ❌\nCorrect answer: %s", submitted, correctAnswer)
	}
	return b.String()
}
