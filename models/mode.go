package models

// Mode identifies one play style.
type Mode string

const (
	ModeGreekToEnglish Mode = "elen"
	ModeEnglishToGreek Mode = "enel"
	ModeSpelling       Mode = "spell"
	ModeTopic          Mode = "topic"
	ModeFacts          Mode = "facts"
)

// DefaultMode is used when a callback carries an unknown mode value.
const DefaultMode = ModeGreekToEnglish

// ModeInfo describes the menu and routing properties of one mode.
type ModeInfo struct {
	Mode  Mode
	Title string

	// HasCategory inserts a word-category step into the menu flow.
	HasCategory bool

	// AnswerPrefix selects the answer-callback pattern ("s", "f" or "t").
	// Empty for modes answered with free text.
	AnswerPrefix string

	// MinPoolSize is the smallest pool the mode can start a session with.
	MinPoolSize int
}

var modeInfos = []ModeInfo{
	{Mode: ModeGreekToEnglish, Title: "Greek → English", HasCategory: true, AnswerPrefix: "s", MinPoolSize: 4},
	{Mode: ModeEnglishToGreek, Title: "English → Greek", HasCategory: true, AnswerPrefix: "s", MinPoolSize: 4},
	{Mode: ModeSpelling, Title: "Spelling (type the Greek word)", HasCategory: true, AnswerPrefix: "", MinPoolSize: 4},
	{Mode: ModeTopic, Title: "Guess the topic", HasCategory: false, AnswerPrefix: "t", MinPoolSize: 4},
	{Mode: ModeFacts, Title: "Facts about Greece", HasCategory: false, AnswerPrefix: "f", MinPoolSize: 1},
}

// Modes lists every playable mode in menu order.
func Modes() []ModeInfo {
	out := make([]ModeInfo, len(modeInfos))
	copy(out, modeInfos)
	return out
}

// ModeFor returns the descriptor for a mode.
func ModeFor(m Mode) (ModeInfo, bool) {
	for _, info := range modeInfos {
		if info.Mode == m {
			return info, true
		}
	}
	return ModeInfo{}, false
}

// ParseMode maps a wire value to a known mode, falling back to DefaultMode.
func ParseMode(s string) Mode {
	if _, ok := ModeFor(Mode(s)); ok {
		return Mode(s)
	}
	return DefaultMode
}

// Levels lists the difficulty buckets in menu order.
func Levels() []string {
	return []string{"a1", "a2", "b1", "b2"}
}

// Categories lists the word-class facets in menu order.
func Categories() []string {
	return []string{"nouns", "verbs", "adjectives", "adverbs", "phrases"}
}
