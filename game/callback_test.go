package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkadios/glossabot/models"
)

func TestParseMenuCallback(t *testing.T) {
	tests := []struct {
		name string
		data string
		want any
	}{
		{
			name: "mode",
			data: "mode:facts",
			want: ModeIntent{Mode: models.ModeFacts},
		},
		{
			name: "unknown mode falls back to default",
			data: "mode:bogus",
			want: ModeIntent{Mode: models.DefaultMode},
		},
		{
			name: "category",
			data: "category:verbs|mode:elen",
			want: CategoryIntent{Category: "verbs", Mode: models.ModeGreekToEnglish},
		},
		{
			name: "level without category",
			data: "level:b1|mode:topic",
			want: LevelIntent{Level: "b1", Mode: models.ModeTopic},
		},
		{
			name: "level with category",
			data: "level:a1|mode:spell|category:nouns",
			want: LevelIntent{Level: "a1", Mode: models.ModeSpelling, Category: "nouns"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMenuCallback(tt.data)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)

			// Parsing is idempotent: the same string yields a structurally
			// equal intent every time.
			again, ok := ParseMenuCallback(tt.data)
			require.True(t, ok)
			assert.Equal(t, got, again)
		})
	}
}

func TestParseMenuCallbackRejects(t *testing.T) {
	for _, data := range []string{
		"",
		"garbage",
		"mode:",
		"category:verbs",
		"level:a1",
		"s=abc&a=1",
		"level:a1|category:nouns",
	} {
		_, ok := ParseMenuCallback(data)
		assert.False(t, ok, "data %q", data)
	}
}

func TestParseAnswerCallback(t *testing.T) {
	intent, ok := ParseAnswerCallback("s=abc-123&a=2")
	require.True(t, ok)
	assert.Equal(t, AnswerIntent{Prefix: "s", SessionID: "abc-123", Index: 2}, intent)

	again, ok := ParseAnswerCallback("s=abc-123&a=2")
	require.True(t, ok)
	assert.Equal(t, intent, again)

	for _, data := range []string{
		"x=abc&a=1",
		"s=abc",
		"s=abc&a=",
		"s=abc&a=two",
		"s=&a=1",
		"mode:elen",
	} {
		_, ok := ParseAnswerCallback(data)
		assert.False(t, ok, "data %q", data)
	}
}

func TestCallbackBuildersRoundTrip(t *testing.T) {
	intent, ok := ParseMenuCallback(LevelCallback("a2", models.ModeEnglishToGreek, "verbs"))
	require.True(t, ok)
	assert.Equal(t, LevelIntent{Level: "a2", Mode: models.ModeEnglishToGreek, Category: "verbs"}, intent)

	answer, ok := ParseAnswerCallback(AnswerData("f", "sess-9", 3))
	require.True(t, ok)
	assert.Equal(t, AnswerIntent{Prefix: "f", SessionID: "sess-9", Index: 3}, answer)
}
