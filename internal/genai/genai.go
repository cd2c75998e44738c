// Package genai wraps the OpenAI API for generating short persona
// remarks. The engine only depends on the Generator interface, so
// tests substitute fakes and the whole feature is optional at runtime.
package genai

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Default request parameters for supplement-sized completions.
const (
	DefaultMaxTokens   = 160
	DefaultTemperature = 0.7
)

// Generator defines the minimal generative-text contract: one system
// prompt, one user prompt, one short completion or an error.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Opts holds configuration options for the GenAI client.
type Opts struct {
	APIKey      string
	Model       string
	MaxTokens   int64
	Temperature float64
}

// Option defines a configuration option for the GenAI client.
type Option func(*Opts)

// WithAPIKey sets the OpenAI API key (overrides $OPENAI_API_KEY).
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithModel overrides the completion model.
func WithModel(model string) Option {
	return func(o *Opts) { o.Model = model }
}

// WithMaxTokens overrides the completion token cap.
func WithMaxTokens(n int64) Option {
	return func(o *Opts) { o.MaxTokens = n }
}

// Client implements Generator against the OpenAI chat completions API.
type Client struct {
	client      openai.Client
	model       string
	maxTokens   int64
	temperature float64
}

// NewClient creates a GenAI client. The API key comes from options or
// the OPENAI_API_KEY environment variable.
func NewClient(opts ...Option) (*Client, error) {
	cfg := Opts{
		Model:       openai.ChatModelGPT4oMini,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not set")
	}
	slog.Debug("GenAI client configured", "model", cfg.Model, "max_tokens", cfg.MaxTokens)

	return &Client{
		client:      openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

// Generate requests one chat completion. Any non-text outcome (error,
// no choices, empty content) is returned as an error; callers decide
// how to degrade.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		MaxTokens:   openai.Int(c.maxTokens),
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		slog.Error("GenAI completion request failed", "error", err)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("chat completion returned empty content")
	}
	slog.Debug("GenAI completion succeeded", "length", len(content))
	return content, nil
}
