package models

// WordEntry is one vocabulary row: a Greek term, its English translation and
// a word-class category.
type WordEntry struct {
	Greek    string
	English  string
	Category string
}

// TextEntry is one short passage row for the topic mode.
type TextEntry struct {
	Text  string
	Topic string
}

// FactTopic is one prompt row for the AI-fact mode. Template may contain
// {a|b|c} alternative groups that are expanded per generation call.
type FactTopic struct {
	Title    string
	Template string
}

// Pool is the index-addressable set of candidate items for one
// level(+category). Exactly one of the slices is populated, depending on the
// mode the pool was loaded for.
type Pool struct {
	Words  []WordEntry
	Texts  []TextEntry
	Topics []FactTopic
}

// Size reports the number of index-addressable items.
func (p Pool) Size() int {
	switch {
	case len(p.Words) > 0:
		return len(p.Words)
	case len(p.Texts) > 0:
		return len(p.Texts)
	default:
		return len(p.Topics)
	}
}
