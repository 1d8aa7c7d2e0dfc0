package article

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/deusflow/newshub/internal/logger"
	"github.com/deusflow/newshub/internal/metrics"
	"github.com/deusflow/newshub/internal/translate"
)

type Summarizer interface {
	Summarize(ctx context.Context, articleText, language string) string
}

type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) string
}

// SummaryCache is satisfied by *cache.Cache[string].
type SummaryCache interface {
	Get(key string, create func() (string, error)) (string, error)
}

// Processor turns one fetched record into a rendered card.
type Processor struct {
	cache      SummaryCache
	summarizer Summarizer
	translator Translator
}

func NewProcessor(c SummaryCache, s Summarizer, t Translator) *Processor {
	return &Processor{cache: c, summarizer: s, translator: t}
}

// Process renders rec for language. It never fails: any error or panic while
// handling the article yields an error card instead.
func (p *Processor) Process(ctx context.Context, rec Record, language string) (card string) {
	defer func() {
		if r := recover(); r != nil {
			metrics.Global.IncrementArticleErrors()
			logger.Error("Panic processing article", "panic", r, "stack", string(debug.Stack()))
			card = ErrorCard(ProcessingError(fmt.Errorf("%v", r)))
		}
	}()
	metrics.Global.IncrementArticlesProcessed()

	card, err := p.process(ctx, rec, language)
	if err != nil {
		metrics.Global.IncrementArticleErrors()
		logger.Error("Error processing article", "error", err)
		return ErrorCard(ProcessingError(err))
	}
	return card
}

func (p *Processor) process(ctx context.Context, rec Record, language string) (string, error) {
	a := Normalize(rec)

	if !Sufficient(a) {
		metrics.Global.IncrementInsufficientContent()
		logger.Warn("Skipping article due to insufficient content", "title", a.Title)
		return Card{
			Title:   a.Title,
			URL:     a.URL,
			Source:  a.Source,
			Summary: ContentUnavailable,
		}.Render()
	}

	key := SummaryKey(a.Description, language)
	// A cached summary outlives this request, so it must not be cut short
	// when the caller goes away. The LLM timeout still bounds each call.
	sumCtx := context.WithoutCancel(ctx)
	text, err := p.cache.Get(key, func() (string, error) {
		return p.summarizer.Summarize(sumCtx, a.Description, language), nil
	})
	if err != nil {
		return "", fmt.Errorf("summary for %q: %w", a.Title, err)
	}
	text = AcceptSummary(text, a.URL)

	title := a.Title
	if !translate.IsEnglish(language) {
		title = p.translator.Translate(ctx, title, language)
	}

	return Card{
		Title:    title,
		URL:      a.URL,
		Source:   a.Source,
		Summary:  text,
		ImageURL: a.ImageURL,
	}.Render()
}
