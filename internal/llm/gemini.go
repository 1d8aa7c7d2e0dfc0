package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini talks to Google's generative language API.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &Gemini{client: client, model: model, timeout: cfg.Timeout}, nil
}

func (g *Gemini) Name() string { return ProviderGemini }

func (g *Gemini) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

func (g *Gemini) Complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	model := g.client.GenerativeModel(g.model)
	if req.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.Temperature > 0 {
		model.SetTemperature(req.Temperature)
	}

	parts := make([]genai.Part, 0, len(req.User))
	for _, u := range req.User {
		parts = append(parts, genai.Text(u))
	}
	if len(parts) == 0 {
		// Gemini rejects a request without user content.
		parts = append(parts, genai.Text(req.System))
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
