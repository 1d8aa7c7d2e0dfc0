// Package translate turns text into a target language through the LLM,
// degrading to the original text whenever anything goes wrong.
package translate

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/deusflow/newshub/internal/llm"
	"github.com/deusflow/newshub/internal/logger"
	"github.com/deusflow/newshub/internal/metrics"
)

const (
	English = "English"

	maxTokens   = 250
	temperature = 0.3
)

// IsEnglish reports whether language names English. Callers use it to skip
// translation entirely.
func IsEnglish(language string) bool {
	return strings.EqualFold(strings.TrimSpace(language), English)
}

// Translator translates text with an LLM client.
type Translator struct {
	client llm.Client
}

func New(client llm.Client) *Translator {
	return &Translator{client: client}
}

// Translate returns text translated into targetLanguage. Any failure returns
// text unchanged.
func (t *Translator) Translate(ctx context.Context, text, targetLanguage string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	result, err := t.client.Complete(ctx, llm.Request{
		System:      fmt.Sprintf("You are a professional translator. Translate the following text to %s.", targetLanguage),
		User:        []string{text},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		metrics.Global.IncrementFailedTranslations()
		logger.Error("Error translating text", "language", targetLanguage, "provider", t.client.Name(), "error", err)
		return text
	}

	result = SanitizeAIText(result)
	if result == "" {
		metrics.Global.IncrementFailedTranslations()
		logger.Warn("Translation empty after cleanup, using original", "language", targetLanguage)
		return text
	}

	metrics.Global.IncrementSuccessfulTranslations()
	return result
}

var (
	parenNoteRe   = regexp.MustCompile(`(?is)\(\s*note\s*:[^)]*\)`)
	bracketNoteRe = regexp.MustCompile(`(?is)\[\s*note\s*:[^\]]*\]`)
	lineNoteRe    = regexp.MustCompile(`(?im)^\s*note\s*:.*$`)
	blankLinesRe  = regexp.MustCompile(`\n{3,}`)
)

// SanitizeAIText strips the "Note: this is a machine translation" style
// disclaimers models like to append, then trims whitespace.
func SanitizeAIText(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = parenNoteRe.ReplaceAllString(s, "")
	s = bracketNoteRe.ReplaceAllString(s, "")
	s = lineNoteRe.ReplaceAllString(s, "")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	s = strings.Join(lines, "\n")
	s = blankLinesRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
