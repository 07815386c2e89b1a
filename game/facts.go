package game

import (
	"context"
	"fmt"

	"github.com/arkadios/glossabot/ai"
	"github.com/arkadios/glossabot/metrics"
	"github.com/arkadios/glossabot/models"
)

// factsVariant plays the AI-fact quiz. There is no fixed question pool: each
// step generates a fact and question from a randomly chosen topic template,
// so remaining ids count question slots rather than pool indices. A
// generation failure ends the play-through at that step; it is never
// retried.
type factsVariant struct {
	core *core
}

func (v *factsVariant) Modes() []models.Mode {
	return []models.Mode{models.ModeFacts}
}

func (v *factsVariant) BuildInput(u Update) (Input, bool) {
	if !u.IsCallback() {
		return nil, false
	}
	intent, ok := ParseAnswerCallback(u.Data)
	if !ok || intent.Prefix != "f" {
		return nil, false
	}
	return AnswerInput{Update: u, SessionID: intent.SessionID, Index: intent.Index}, true
}

func (v *factsVariant) Begin(ctx context.Context, u Update, mode models.Mode, level, category string) []Action {
	info, _ := models.ModeFor(models.ModeFacts)

	p, err := v.core.pools.Load(ctx, level, "", models.ModeFacts)
	if err != nil {
		v.core.logger.Error("load topics", "level", level, "error", err)
		v.core.sink.Observe(metrics.EventError, "op", "pool_load", "mode", string(models.ModeFacts))
		return []Action{SendMessage{ChatID: u.ChatID, Text: noticePoolFailure}}
	}
	if p.Size() < info.MinPoolSize {
		return []Action{SendMessage{ChatID: u.ChatID, Text: noticeInsufficient}}
	}

	sess := v.core.newSession(u.OwnerID, models.ModeFacts, level, "", v.core.factQuestions)

	// Generate before superseding so a failed start leaves any prior
	// session playable.
	question, err := v.generate(ctx, sess, p)
	if err != nil {
		return []Action{SendMessage{ChatID: u.ChatID, Text: noticeBuildFailure}}
	}
	sess.Current = question
	sess.RemainingIDs = sess.RemainingIDs[1:]

	v.core.supersede(ctx, u.OwnerID)
	if ok, failure := v.core.persist(ctx, u.ChatID, sess); !ok {
		return failure
	}
	v.core.sink.Observe(metrics.EventStarted, "mode", string(models.ModeFacts), "session_id", sess.ID)

	actions := []Action{levelConfirmation(u.ChatID, sess)}
	return append(actions, v.questionActions(u.ChatID, sess)...)
}

func (v *factsVariant) Invoke(ctx context.Context, in Input) []Action {
	answer, ok := in.(AnswerInput)
	if !ok {
		return nil
	}

	sess, guard := v.core.resolveAnswer(ctx, answer)
	if guard != nil {
		return guard
	}

	q := sess.Current
	ordinal := sess.TotalAsked + 1
	correct := answer.Index == q.CorrectIndex

	submitted := "—"
	if answer.Index >= 0 && answer.Index < len(q.OptionTexts) {
		submitted = q.OptionTexts[answer.Index]
	}
	correctLabel := ""
	if q.CorrectIndex >= 0 && q.CorrectIndex < len(q.OptionTexts) {
		correctLabel = q.OptionTexts[q.CorrectIndex]
	}

	v.core.score(sess, correct)

	actions := []Action{
		AnswerCallback{CallbackID: answer.Update.CallbackID},
		EditMessage{
			ChatID:    answer.Update.ChatID,
			MessageID: q.PendingMessageID,
			Text:      verdictText(ordinal, sess.TotalCount, factPrompt(q), submitted, correctLabel, correct),
		},
	}
	return append(actions, v.advance(ctx, answer.Update.ChatID, sess)...)
}

// advance generates the next question or completes the session. On
// generation failure the session ends early at this step.
func (v *factsVariant) advance(ctx context.Context, chatID int64, sess *models.Session) []Action {
	if len(sess.RemainingIDs) == 0 {
		sess.Current = nil
		if ok, failure := v.core.persist(ctx, chatID, sess); !ok {
			return failure
		}
		return v.core.completionActions(chatID, sess)
	}

	p, err := v.core.pools.Load(ctx, sess.Level, "", models.ModeFacts)
	if err != nil {
		v.core.logger.Error("load topics", "session_id", sess.ID, "error", err)
		return v.endEarly(ctx, chatID, sess)
	}

	question, err := v.generate(ctx, sess, p)
	if err != nil {
		return v.endEarly(ctx, chatID, sess)
	}
	sess.Current = question
	sess.RemainingIDs = sess.RemainingIDs[1:]
	if ok, failure := v.core.persist(ctx, chatID, sess); !ok {
		return failure
	}
	return v.questionActions(chatID, sess)
}

// endEarly closes the play-through after a failed generation step.
func (v *factsVariant) endEarly(ctx context.Context, chatID int64, sess *models.Session) []Action {
	sess.Current = nil
	sess.RemainingIDs = nil
	if ok, failure := v.core.persist(ctx, chatID, sess); !ok {
		return failure
	}
	actions := []Action{SendMessage{ChatID: chatID, Text: noticeBuildFailure}}
	return append(actions, v.core.completionActions(chatID, sess)...)
}

// generate calls the AI provider for one validated question and records the
// fact on the session's recent list.
func (v *factsVariant) generate(ctx context.Context, sess *models.Session, p models.Pool) (*models.SessionQuestion, error) {
	topic := p.Topics[v.core.rand.Intn(len(p.Topics))]

	generated, err := v.core.facts.Generate(ctx, ai.Request{
		Level:       sess.Level,
		Topic:       topic,
		RecentFacts: sess.RecentFacts,
	})
	if err != nil {
		v.core.logger.Warn("fact generation failed", "session_id", sess.ID, "topic", topic.Title, "error", err)
		v.core.sink.Observe(metrics.EventBuildFailure, "mode", string(models.ModeFacts), "session_id", sess.ID)
		return nil, err
	}

	sess.AppendRecentFact(generated.Fact)
	return &models.SessionQuestion{
		CorrectIndex: generated.CorrectIndex,
		PromptText:   generated.Fact,
		QuestionText: generated.Question,
		OptionTexts:  generated.Options,
	}, nil
}

func (v *factsVariant) questionActions(chatID int64, sess *models.Session) []Action {
	return []Action{questionMessage(chatID, sess, factPrompt(sess.Current), sess.Current.OptionTexts, "f")}
}

func factPrompt(q *models.SessionQuestion) string {
	return fmt.Sprintf("%s\n\n%s", q.PromptText, q.QuestionText)
}
