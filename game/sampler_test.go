package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

func TestSampleProperties(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		rnd := testRand(seed)
		poolSize := 10
		remaining := []int{0, 2, 4, 6, 8}

		sampled := Sample(rnd, poolSize, remaining)
		require.NotNil(t, sampled)

		require.Len(t, sampled.Options, 4)

		occurrences := 0
		seen := map[int]bool{}
		for _, id := range sampled.Options {
			assert.GreaterOrEqual(t, id, 0)
			assert.Less(t, id, poolSize)
			assert.False(t, seen[id], "options must be distinct")
			seen[id] = true
			if id == sampled.AnswerKeyID {
				occurrences++
			}
		}
		assert.Equal(t, 1, occurrences, "answer key appears exactly once")
		assert.Equal(t, sampled.AnswerKeyID, sampled.Options[sampled.CorrectIndex])

		assert.Contains(t, remaining, sampled.AnswerKeyID)
		assert.Len(t, sampled.Remaining, len(remaining)-1)
		assert.NotContains(t, sampled.Remaining, sampled.AnswerKeyID)
	}
}

func TestSampleExhaustion(t *testing.T) {
	rnd := testRand(7)
	poolSize := 8
	remaining := []int{0, 1, 2, 3, 4, 5, 6, 7}

	drawn := map[int]bool{}
	calls := 0
	for {
		sampled := Sample(rnd, poolSize, remaining)
		if sampled == nil {
			break
		}
		calls++
		require.False(t, drawn[sampled.AnswerKeyID], "id %d drawn twice", sampled.AnswerKeyID)
		drawn[sampled.AnswerKeyID] = true
		remaining = sampled.Remaining
	}

	assert.Equal(t, poolSize, calls, "exhaustion after exactly k draws")
	assert.Len(t, drawn, poolSize)
}

func TestSampleMinimalPool(t *testing.T) {
	// With poolSize == 4 the options must cover the whole pool.
	rnd := testRand(3)
	sampled := Sample(rnd, 4, []int{0, 1, 2, 3})
	require.NotNil(t, sampled)
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, sampled.Options)
}

func TestSampleEmptyRemaining(t *testing.T) {
	assert.Nil(t, Sample(testRand(1), 10, nil))
	assert.Nil(t, Sample(testRand(1), 10, []int{}))
}

func TestSampleUndersizedPool(t *testing.T) {
	// A pool that shrank below four distinct ids cannot satisfy the
	// distractor draw; the call must report completion instead of spinning.
	for _, poolSize := range []int{0, 1, 2, 3} {
		assert.Nil(t, Sample(testRand(1), poolSize, []int{0, 1}), "poolSize %d", poolSize)
	}
	assert.NotNil(t, Sample(testRand(1), 4, []int{0, 1}))
}
