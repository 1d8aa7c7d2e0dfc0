// Package summary produces short LLM summaries of news articles.
package summary

import (
	"context"
	"fmt"

	"github.com/deusflow/newshub/internal/llm"
	"github.com/deusflow/newshub/internal/logger"
	"github.com/deusflow/newshub/internal/metrics"
	"github.com/deusflow/newshub/internal/translate"
)

const (
	// MaxInputChars bounds how much article text is sent to the model.
	MaxInputChars = 1000

	maxTokens   = 150
	temperature = 0.5

	// Fallback is returned whenever a summary cannot be produced.
	Fallback = "Unable to generate summary due to an error. " +
		"Please refer to the original article for information."

	systemPrompt = "You are an expert news analyst and summarizer. Provide concise, insightful summaries that capture " +
		"the core of news articles, including key events, figures, and implications."

	userPrompt = "Summarize this news article in 2-3 sentences. Highlight the main event, key figures, and any " +
		"significant impacts or outcomes. Ensure the summary is informative and contextual. " +
		"Article: %s"
)

// Translator is the subset of translate.Translator the summarizer needs.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) string
}

type Summarizer struct {
	client     llm.Client
	translator Translator
}

func New(client llm.Client, translator Translator) *Summarizer {
	return &Summarizer{client: client, translator: translator}
}

// Summarize condenses articleText into a 2-3 sentence summary in language.
// It never fails: errors yield Fallback.
func (s *Summarizer) Summarize(ctx context.Context, articleText, language string) string {
	text, err := s.summarize(ctx, articleText)
	if err != nil {
		metrics.Global.IncrementFailedSummaries()
		logger.Error("Error summarizing article", "provider", s.client.Name(), "error", err)
		return Fallback
	}
	metrics.Global.IncrementSummariesGenerated()

	if !translate.IsEnglish(language) && s.translator != nil {
		text = s.translator.Translate(ctx, text, language)
	}
	return text
}

func (s *Summarizer) summarize(ctx context.Context, articleText string) (string, error) {
	return s.client.Complete(ctx, llm.Request{
		System:      systemPrompt,
		User:        []string{fmt.Sprintf(userPrompt, Truncate(articleText, MaxInputChars))},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
}

// Truncate returns the first n characters of s, counted in runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
