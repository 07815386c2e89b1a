// Package ai generates fact-quiz questions with an OpenAI-compatible chat
// model.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"

	"github.com/arkadios/glossabot/models"
)

const maxFactWords = 80

// Config holds the generator configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Request describes one question to generate.
type Request struct {
	Level string
	Topic models.FactTopic

	// RecentFacts lists facts already shown this play-through so the model
	// avoids repeating them.
	RecentFacts []string
}

// FactQuestion is a validated generation result.
type FactQuestion struct {
	Fact         string   `json:"fact"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// Generator calls the chat model and validates its output. Any transport
// error, timeout or schema violation is a generation failure; callers never
// retry.
type Generator struct {
	client *openai.Client
	cfg    Config
	pick   func(n int) int
}

// New creates a generator.
func New(cfg Config) *Generator {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Generator{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
		pick:   rnd.Intn,
	}
}

// Generate produces one validated fact question.
func (g *Generator) Generate(ctx context.Context, req Request) (*FactQuestion, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req, g.pick)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "chat completion")
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("empty chat response")
	}

	return parseFactQuestion(resp.Choices[0].Message.Content)
}

const systemPrompt = `You write short quiz questions about Greece for language learners. ` +
	`Respond with a single JSON object: {"fact": string, "question": string, "options": [4 strings], "correctIndex": 0-3}. ` +
	`The fact must be at most 80 words. No markdown, no extra keys.`

func buildPrompt(req Request, pick func(n int) int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Learner level: %s.\n", req.Level)
	fmt.Fprintf(&b, "Topic: %s.\n", req.Topic.Title)
	fmt.Fprintf(&b, "%s\n", ExpandTemplate(req.Topic.Template, pick))
	if len(req.RecentFacts) > 0 {
		b.WriteString("Do not repeat any of these facts already shown:\n")
		for _, fact := range req.RecentFacts {
			fmt.Fprintf(&b, "- %s\n", fact)
		}
	}
	return b.String()
}

// parseFactQuestion enforces the strict response schema.
func parseFactQuestion(content string) (*FactQuestion, error) {
	var q FactQuestion
	decoder := json.NewDecoder(strings.NewReader(content))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&q); err != nil {
		return nil, errors.Wrap(err, "decode generation result")
	}

	if strings.TrimSpace(q.Fact) == "" {
		return nil, errors.New("generation result: empty fact")
	}
	if len(strings.Fields(q.Fact)) > maxFactWords {
		return nil, errors.Errorf("generation result: fact exceeds %d words", maxFactWords)
	}
	if strings.TrimSpace(q.Question) == "" {
		return nil, errors.New("generation result: empty question")
	}
	if len(q.Options) != 4 {
		return nil, errors.Errorf("generation result: expected 4 options, got %d", len(q.Options))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return nil, errors.Errorf("generation result: empty option %d", i)
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex > 3 {
		return nil, errors.Errorf("generation result: correctIndex %d out of range", q.CorrectIndex)
	}

	return &q, nil
}
