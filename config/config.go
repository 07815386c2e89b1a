package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Config holds all the configuration for the application, loaded from
// environment variables.
type Config struct {
	BotToken string `env:"BOT_TOKEN,required"`

	// Spreadsheet holding the word, text and topic pools.
	SheetBaseURL string `env:"SHEET_BASE_URL,required"`

	DatabasePath string `env:"DB_PATH" envDefault:"./data/glossabot.db"`

	OpenAIKey     string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIModel   string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	AITimeout     time.Duration `env:"AI_TIMEOUT" envDefault:"30s"`

	PoolCacheTTL  time.Duration `env:"POOL_CACHE_TTL" envDefault:"10m"`
	PoolTimeout   time.Duration `env:"POOL_TIMEOUT" envDefault:"15s"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	FactQuestions int           `env:"FACT_QUESTIONS" envDefault:"10"`

	Debug bool `env:"DEBUG"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	if cfg.FactQuestions < 1 {
		return nil, errors.New("FACT_QUESTIONS must be at least 1")
	}
	return cfg, nil
}
