package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("SHEET_BASE_URL", "https://docs.google.com/spreadsheets/d/abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./data/glossabot.db", cfg.DatabasePath)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.Equal(t, 10*time.Minute, cfg.PoolCacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.FactQuestions)
	assert.False(t, cfg.Debug)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("SHEET_BASE_URL", "https://example.com/sheet")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("FACT_QUESTIONS", "5")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5, cfg.FactQuestions)
	assert.True(t, cfg.Debug)
}

func TestLoadMissingToken(t *testing.T) {
	// t.Setenv registers the restore; the variable must be absent, not
	// merely empty, for the required check to fire.
	t.Setenv("BOT_TOKEN", "x")
	os.Unsetenv("BOT_TOKEN")
	t.Setenv("SHEET_BASE_URL", "https://example.com/sheet")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsZeroFactQuestions(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("SHEET_BASE_URL", "https://example.com/sheet")
	t.Setenv("FACT_QUESTIONS", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FACT_QUESTIONS")
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("SHEET_BASE_URL", "https://example.com/sheet")
	t.Setenv("AI_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
}
