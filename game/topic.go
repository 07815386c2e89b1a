package game

import (
	"context"
	"fmt"

	"github.com/arkadios/glossabot/models"
)

// topicVariant plays the topic-from-text mode: the prompt is a short Greek
// passage and the options are topic labels.
type topicVariant struct {
	core *core
}

func (v *topicVariant) Modes() []models.Mode {
	return []models.Mode{models.ModeTopic}
}

func (v *topicVariant) BuildInput(u Update) (Input, bool) {
	if !u.IsCallback() {
		return nil, false
	}
	intent, ok := ParseAnswerCallback(u.Data)
	if !ok || intent.Prefix != "t" {
		return nil, false
	}
	return AnswerInput{Update: u, SessionID: intent.SessionID, Index: intent.Index}, true
}

func (v *topicVariant) Begin(ctx context.Context, u Update, mode models.Mode, level, category string) []Action {
	return v.core.beginPool(ctx, u, mode, level, category, func(sess *models.Session, p models.Pool) []Action {
		return v.questionActions(u.ChatID, sess, p)
	})
}

func (v *topicVariant) Invoke(ctx context.Context, in Input) []Action {
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

	prompt, labels := topicPrompt(p, q)
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

func (v *topicVariant) questionActions(chatID int64, sess *models.Session, p models.Pool) []Action {
	prompt, labels := topicPrompt(p, sess.Current)
	return []Action{questionMessage(chatID, sess, prompt, labels, "t")}
}

func topicPrompt(p models.Pool, q *models.SessionQuestion) (string, []string) {
	passage := textAt(p, q.AnswerKeyID)
	labels := make([]string, len(q.Options))
	for i, id := range q.Options {
		labels[i] = textAt(p, id).Topic
	}
	return fmt.Sprintf("What is this text about?\n\n%s", passage.Text), labels
}

func textAt(p models.Pool, id int) models.TextEntry {
	if id < 0 || id >= len(p.Texts) {
		return models.TextEntry{}
	}
	return p.Texts[id]
}
