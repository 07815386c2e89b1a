package game

// Sampled is one drawn question plus the shrunken remaining set.
type Sampled struct {
	AnswerKeyID  int
	Options      []int
	CorrectIndex int
	Remaining    []int
}

// Sample draws the next question from remaining without replacement.
//
// The answer key is drawn uniformly from remaining and removed; three
// distinct distractors are drawn uniformly from [0, poolSize) excluding the
// answer key; the four-element option list is shuffled and CorrectIndex set
// to the answer key's post-shuffle position.
//
// Returns nil when remaining is empty or when fewer than four distinct ids
// exist in [0, poolSize), which both signal play-through completion. The
// pool-size case matters mid-session: the pool is reloaded on every answer
// and a refreshed sheet may have shrunk below the size the session started
// with, leaving the distractor draw unsatisfiable.
func Sample(rnd Rand, poolSize int, remaining []int) *Sampled {
	if len(remaining) == 0 || poolSize < 4 {
		return nil
	}

	keyPos := rnd.Intn(len(remaining))
	answerKey := remaining[keyPos]

	rest := make([]int, 0, len(remaining)-1)
	rest = append(rest, remaining[:keyPos]...)
	rest = append(rest, remaining[keyPos+1:]...)

	options := []int{answerKey}
	seen := map[int]bool{answerKey: true}
	for len(options) < 4 {
		candidate := rnd.Intn(poolSize)
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		options = append(options, candidate)
	}

	rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correctIndex := 0
	for i, id := range options {
		if id == answerKey {
			correctIndex = i
			break
		}
	}

	return &Sampled{
		AnswerKeyID:  answerKey,
		Options:      options,
		CorrectIndex: correctIndex,
		Remaining:    rest,
	}
}
