package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() *Session {
	return &Session{
		ID:           "0b7f3c2e-9d41-4b28-8c55-1a2b3c4d5e6f",
		OwnerID:      987654321,
		Level:        "b1",
		Mode:         ModeSpelling,
		Category:     "verbs",
		RemainingIDs: []int{4, 9, 11},
		TotalAsked:   2,
		CorrectCount: 1,
		TotalCount:   6,
		Current: &SessionQuestion{
			AnswerKeyID:      7,
			Options:          []int{7, 2, 13, 5},
			CorrectIndex:     0,
			PendingMessageID: 4210,
			PromptText:       "Η Σαντορίνη είναι ηφαιστειογενές νησί.",
			QuestionText:     "Τι είδους νησί είναι η Σαντορίνη;",
			OptionTexts:      []string{"Ηφαιστειογενές", "Κοραλλιογενές", "Τεχνητό", "Παγωμένο"},
		},
		RecentFacts: []string{"fact one", "fact two"},
		ExpiresAt:   1_756_600_000,
		UpdatedAt:   1_756_513_600,
	}
}

func TestRecordRoundTrip(t *testing.T) {
	original := sampleSession()

	restored, err := SessionFromRecord(original.ToRecord())
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestRecordRoundTripThroughJSON(t *testing.T) {
	// The store serializes the record; numbers come back as float64.
	original := sampleSession()

	raw, err := json.Marshal(original.ToRecord())
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(raw, &rec))

	restored, err := SessionFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestRecordOmitsEmptyOptionals(t *testing.T) {
	s := &Session{
		ID:           "abc",
		OwnerID:      1,
		Level:        "a1",
		Mode:         ModeGreekToEnglish,
		RemainingIDs: []int{0, 1},
		TotalCount:   2,
	}

	rec := s.ToRecord()
	assert.NotContains(t, rec, "category")
	assert.NotContains(t, rec, "recentFacts")
	assert.NotContains(t, rec, "current")

	restored, err := SessionFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, s, restored)
}

func TestSessionFromRecordCoercesStringNumbers(t *testing.T) {
	rec := map[string]any{
		"id":           "sess-1",
		"ownerId":      "42",
		"level":        "a2",
		"mode":         "elen",
		"remainingIds": []any{"3", float64(1), 2},
		"totalAsked":   "5",
		"correctCount": float64(4),
		"totalCount":   "8",
		"expiresAt":    "1756600000",
		"updatedAt":    json.Number("1756513600"),
		"current": map[string]any{
			"answerKeyId":      "6",
			"options":          []any{"6", "0", "1", "2"},
			"correctIndex":     float64(0),
			"pendingMessageId": "99",
		},
	}

	s, err := SessionFromRecord(rec)
	require.NoError(t, err)

	assert.Equal(t, int64(42), s.OwnerID)
	assert.Equal(t, []int{3, 1, 2}, s.RemainingIDs)
	assert.Equal(t, 5, s.TotalAsked)
	assert.Equal(t, 4, s.CorrectCount)
	assert.Equal(t, 8, s.TotalCount)
	assert.Equal(t, int64(1_756_600_000), s.ExpiresAt)
	assert.Equal(t, int64(1_756_513_600), s.UpdatedAt)
	require.NotNil(t, s.Current)
	assert.Equal(t, 6, s.Current.AnswerKeyID)
	assert.Equal(t, []int{6, 0, 1, 2}, s.Current.Options)
	assert.Equal(t, 99, s.Current.PendingMessageID)
}

func TestSessionFromRecordRejectsBadValues(t *testing.T) {
	base := func() map[string]any {
		return map[string]any{
			"id":           "sess-1",
			"ownerId":      1,
			"level":        "a1",
			"mode":         "elen",
			"remainingIds": []any{0},
			"totalAsked":   0,
			"correctCount": 0,
			"totalCount":   1,
			"expiresAt":    0,
			"updatedAt":    0,
		}
	}

	tests := []struct {
		name    string
		mutate  func(map[string]any)
		errPart string
	}{
		{"non-numeric owner", func(r map[string]any) { r["ownerId"] = "forty-two" }, "ownerId"},
		{"bool id", func(r map[string]any) { r["id"] = true }, "id"},
		{"scalar remaining", func(r map[string]any) { r["remainingIds"] = "0,1,2" }, "remainingIds"},
		{"bad element", func(r map[string]any) { r["remainingIds"] = []any{0, "x"} }, "element 1"},
		{"non-object current", func(r map[string]any) { r["current"] = "{}" }, "current"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := base()
			tc.mutate(rec)
			_, err := SessionFromRecord(rec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errPart)
		})
	}
}

func TestAppendRecentFactBounded(t *testing.T) {
	s := &Session{}
	for i := 0; i < MaxRecentFacts+5; i++ {
		s.AppendRecentFact(string(rune('a' + i%26)))
	}
	assert.Len(t, s.RecentFacts, MaxRecentFacts)
	// Oldest entries are dropped first.
	assert.Equal(t, string(rune('a'+5%26)), s.RecentFacts[0])
}

func TestCompleted(t *testing.T) {
	s := &Session{RemainingIDs: []int{1}, Current: &SessionQuestion{}}
	assert.False(t, s.completed())

	s.RemainingIDs = nil
	assert.False(t, s.completed())

	s.Current = nil
	assert.True(t, s.completed())
}
