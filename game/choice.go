package game

import (
	"context"
	"fmt"

	"github.com/arkadios/glossabot/models"
)

// choiceVariant plays the pool-indexed multiple-choice modes. The prompt
// direction (Greek → English or the reverse) follows the session's mode.
type choiceVariant struct {
	core *core
}

func (v *choiceVariant) Modes() []models.Mode {
	return []models.Mode{models.ModeGreekToEnglish, models.ModeEnglishToGreek}
}

func (v *choiceVariant) BuildInput(u Update) (Input, bool) {
	if !u.IsCallback() {
		return nil, false
	}
	intent, ok := ParseAnswerCallback(u.Data)
	if !ok || intent.Prefix != "s" {
		return nil, false
	}
	return AnswerInput{Update: u, SessionID: intent.SessionID, Index: intent.Index}, true
}

func (v *choiceVariant) Begin(ctx context.Context, u Update, mode models.Mode, level, category string) []Action {
	return v.core.beginPool(ctx, u, mode, level, category, func(sess *models.Session, p models.Pool) []Action {
		return v.questionActions(u.ChatID, sess, p)
	})
}

func (v *choiceVariant) Invoke(ctx context.Context, in Input) []Action {
	answer, ok := in.(AnswerInput)
	if !ok {
		return nil
	}

	sess, guard := v.core.resolveAnswer(ctx, answer)
	if guard != nil {
		return guard
	}

	p, err := v.core.pools.Load(ctx, sess.Level, sess.Category, sess.Mode)
	if err != nil {
		v.core.logger.Error("load pool", "session_id", sess.ID, "error", err)
		return []Action{
			AnswerCallback{CallbackID: answer.Update.CallbackID},
			SendMessage{ChatID: answer.Update.ChatID, Text: noticePoolFailure},
		}
	}

	q := sess.Current
	ordinal := sess.TotalAsked + 1
	correct := answer.Index == q.CorrectIndex

	prompt, labels := choicePrompt(sess.Mode, p, q)
	submitted := "—"
	if answer.Index >= 0 && answer.Index < len(labels) {
		submitted = labels[answer.Index]
	}

	v.core.score(sess, correct)

	actions := []Action{
		AnswerCallback{CallbackID: answer.Update.CallbackID},
		EditMessage{
			ChatID:    answer.Update.ChatID,
			MessageID: q.PendingMessageID,
			Text:      verdictText(ordinal, sess.TotalCount, prompt, submitted, labels[q.CorrectIndex], correct),
		},
	}
	next := v.core.advancePool(ctx, answer.Update.ChatID, sess, p.Size(), func(s *models.Session) []Action {
		return v.questionActions(answer.Update.ChatID, s, p)
	})
	return append(actions, next...)
}

func (v *choiceVariant) questionActions(chatID int64, sess *models.Session, p models.Pool) []Action {
	prompt, labels := choicePrompt(sess.Mode, p, sess.Current)
	return []Action{questionMessage(chatID, sess, prompt, labels, "s")}
}

// choicePrompt builds the prompt line and option labels for the session's
// direction.
func choicePrompt(mode models.Mode, p models.Pool, q *models.SessionQuestion) (string, []string) {
	key := wordAt(p, q.AnswerKeyID)
	labels := make([]string, len(q.Options))
	for i, id := range q.Options {
		w := wordAt(p, id)
		if mode == models.ModeEnglishToGreek {
			labels[i] = w.Greek
		} else {
			labels[i] = w.English
		}
	}
	if mode == models.ModeEnglishToGreek {
		return fmt.Sprintf("Translate: %s", key.English), labels
	}
	return fmt.Sprintf("Translate: %s", key.Greek), labels
}

// wordAt is a bounds-checked pool lookup; indices can outlive a pool refresh.
func wordAt(p models.Pool, id int) models.WordEntry {
	if id < 0 || id >= len(p.Words) {
		return models.WordEntry{}
	}
	return p.Words[id]
}
