package game

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/arkadios/glossabot/models"
)

// spellVariant plays the free-text mode: the prompt shows the English term
// and the user types the Greek form.
type spellVariant struct {
	core *core
}

func (v *spellVariant) Modes() []models.Mode {
	return []models.Mode{models.ModeSpelling}
}

func (v *spellVariant) BuildInput(u Update) (Input, bool) {
	if u.IsCallback() {
		return nil, false
	}
	text := strings.TrimSpace(u.Text)
	if text == "" || strings.HasPrefix(text, "/") {
		return nil, false
	}
	return TextInput{Update: u, Text: text}, true
}

func (v *spellVariant) Begin(ctx context.Context, u Update, mode models.Mode, level, category string) []Action {
	return v.core.beginPool(ctx, u, mode, level, category, func(sess *models.Session, p models.Pool) []Action {
		return v.questionActions(u.ChatID, sess, p)
	})
}

func (v *spellVariant) Invoke(ctx context.Context, in Input) []Action {
	input, ok := in.(TextInput)
	if !ok {
		return nil
	}

	sess, err := v.core.store.GetLatestByOwner(ctx, input.Update.OwnerID)
	if err != nil || sess.Mode != models.ModeSpelling {
		// Not an answer to anything; let the dispatcher fall through.
		return nil
	}
	if sess.Current == nil {
		return []Action{SendMessage{ChatID: input.Update.ChatID, Text: noticeNotFound}}
	}

	p, err := v.core.pools.Load(ctx, sess.Level, sess.Category, sess.Mode)
	if err != nil {
		v.core.logger.Error("load pool", "session_id", sess.ID, "error", err)
		return []Action{SendMessage{ChatID: input.Update.ChatID, Text: noticePoolFailure}}
	}

	q := sess.Current
	ordinal := sess.TotalAsked + 1
	target := wordAt(p, q.AnswerKeyID)
	correct := MatchesAnswer(input.Text, target.Greek)

	v.core.score(sess, correct)

	actions := []Action{EditMessage{
		ChatID:    input.Update.ChatID,
		MessageID: q.PendingMessageID,
		Text:      verdictText(ordinal, sess.TotalCount, spellPrompt(target), input.Text, target.Greek, correct),
	}}
	next := v.core.advancePool(ctx, input.Update.ChatID, sess, p.Size(), func(s *models.Session) []Action {
		return v.questionActions(input.Update.ChatID, s, p)
	})
	return append(actions, next...)
}

func (v *spellVariant) questionActions(chatID int64, sess *models.Session, p models.Pool) []Action {
	target := wordAt(p, sess.Current.AnswerKeyID)
	text := fmt.Sprintf("Question %d/%d\n%s", sess.TotalAsked+1, sess.TotalCount, spellPrompt(target))
	return []Action{SendMessage{ChatID: chatID, Text: text, TrackSessionID: sess.ID}}
}

func spellPrompt(target models.WordEntry) string {
	return fmt.Sprintf("Type the Greek word for: %s", target.English)
}

// MatchesAnswer compares a typed answer against the Greek target form.
//
// The accent rule is asymmetric: a submission without any diacritic marks is
// compared accent-insensitively, while a submission carrying diacritics must
// match exactly. Typing accents is rewarded; keyboards that cannot produce
// them are tolerated.
func MatchesAnswer(submitted, target string) bool {
	submitted = strings.ToLower(strings.TrimSpace(submitted))
	target = strings.ToLower(strings.TrimSpace(target))
	if submitted == target {
		return true
	}
	if hasDiacritics(submitted) {
		return false
	}
	return submitted == foldDiacritics(target)
}

// foldDiacritics strips combining marks: NFD decomposition, mark removal,
// NFC recomposition.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

func hasDiacritics(s string) bool {
	return foldDiacritics(s) != s
}
