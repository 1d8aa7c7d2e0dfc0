// Package llm wraps the chat-style language model providers used for
// summarization and translation.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultOpenAIModel = "gpt-4"
	DefaultGeminiModel = "gemini-1.5-flash"

	DefaultTimeout = 30 * time.Second
)

var ErrEmptyResponse = errors.New("llm: empty response")

// Request is a single chat completion: one system instruction followed by one
// or more user messages.
type Request struct {
	System      string
	User        []string
	MaxTokens   int
	Temperature float32
}

// Client generates one piece of text for a request.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	Name() string
}

// Config selects and configures a provider.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string // OpenAI only; empty means the public endpoint
	Timeout  time.Duration
}

// New builds the client for cfg.Provider.
func New(ctx context.Context, cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderOpenAI:
		return NewOpenAI(cfg), nil
	case ProviderGemini:
		return NewGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q (valid: openai, gemini)", cfg.Provider)
	}
}

// WarmUp sends a throwaway request so the first real call does not pay for
// connection setup.
func WarmUp(ctx context.Context, c Client) error {
	_, err := c.Complete(ctx, Request{
		System:    "Warm-up request",
		MaxTokens: 5,
	})
	if err != nil && !errors.Is(err, ErrEmptyResponse) {
		return fmt.Errorf("warm up %s: %w", c.Name(), err)
	}
	return nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultTimeout
	}
	return context.WithTimeout(ctx, d)
}

// Unavailable is used when a provider client could not be built. Every call
// fails with Err so callers fall back to their degraded output.
type Unavailable struct {
	Provider string
	Err      error
}

func (u Unavailable) Name() string { return u.Provider }

func (u Unavailable) Complete(context.Context, Request) (string, error) {
	return "", u.Err
}
