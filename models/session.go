package models

// MaxRecentFacts bounds the recent-fact list carried by a session.
const MaxRecentFacts = 20

// SessionQuestion is the outstanding question of a session: dispatched to the
// user, not yet resolved.
type SessionQuestion struct {
	// AnswerKeyID is the pool index of the correct item.
	AnswerKeyID int

	// Options holds 4 pool indices, one of which is AnswerKeyID, in the
	// order the answer buttons were shown.
	Options []int

	// CorrectIndex is the position of AnswerKeyID within Options.
	CorrectIndex int

	// PendingMessageID is the chat message the question was delivered as.
	// Zero until the renderer records the delivered message.
	PendingMessageID int

	// Generated content, populated only for questions that are not
	// pool-indexed (the AI-fact mode).
	PromptText   string
	QuestionText string
	OptionTexts  []string
}

// Session is the durable per-owner record of progress through one
// play-through.
type Session struct {
	ID       string
	OwnerID  int64
	Level    string
	Mode     Mode
	Category string

	// RemainingIDs holds the pool indices not yet asked. Treated as a set;
	// order carries no meaning.
	RemainingIDs []int

	TotalAsked   int
	CorrectCount int
	TotalCount   int

	// Current is non-nil iff a question is outstanding.
	Current *SessionQuestion

	// RecentFacts holds the last generated fact texts, oldest first,
	// bounded by MaxRecentFacts.
	RecentFacts []string

	ExpiresAt int64
	UpdatedAt int64
}

// AppendRecentFact appends a fact text, dropping the oldest entries beyond
// MaxRecentFacts.
func (s *Session) AppendRecentFact(fact string) {
	s.RecentFacts = append(s.RecentFacts, fact)
	if len(s.RecentFacts) > MaxRecentFacts {
		s.RecentFacts = s.RecentFacts[len(s.RecentFacts)-MaxRecentFacts:]
	}
}

// completed reports whether the play-through has run out of questions.
func (s *Session) completed() bool {
	return len(s.RemainingIDs) == 0 && s.Current == nil
}
