// Package app builds the process-wide pipeline from configuration: one LLM
// client, one summary cache and one aggregator shared by every request.
package app

import (
	"context"

	"github.com/deusflow/newshub/internal/article"
	"github.com/deusflow/newshub/internal/cache"
	"github.com/deusflow/newshub/internal/config"
	"github.com/deusflow/newshub/internal/llm"
	"github.com/deusflow/newshub/internal/logger"
	"github.com/deusflow/newshub/internal/news"
	"github.com/deusflow/newshub/internal/newsapi"
	"github.com/deusflow/newshub/internal/retry"
	"github.com/deusflow/newshub/internal/rss"
	"github.com/deusflow/newshub/internal/summary"
	"github.com/deusflow/newshub/internal/translate"
	"github.com/deusflow/newshub/internal/web"
)

type App struct {
	Config     *config.Config
	Cache      *cache.Cache[string]
	Aggregator *news.Aggregator

	client llm.Client
}

// New wires the pipeline. Missing credentials or feed files do not stop it:
// the affected calls fail at request time and users see the fallback messages.
func New(ctx context.Context, cfg *config.Config) *App {
	client, err := llm.New(ctx, llm.Config{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey(),
		Model:    cfg.LLMModel,
		Timeout:  cfg.LLMTimeout,
	})
	if err != nil {
		logger.Error("LLM client unavailable, summaries will use fallbacks", "provider", cfg.LLMProvider, "error", err)
		client = llm.Unavailable{Provider: cfg.LLMProvider, Err: err}
	}

	source := newSource(cfg)

	summaries := cache.New[string](cfg.CacheMaxSize)
	translator := translate.New(client)
	summarizer := summary.New(client, translator)
	processor := article.NewProcessor(summaries, summarizer, translator)

	logger.Info("Pipeline ready",
		"news_source", cfg.NewsSource,
		"llm_provider", client.Name(),
		"cache_max_size", cfg.CacheMaxSize,
		"page_size", cfg.PageSize)

	return &App{
		Config:     cfg,
		Cache:      summaries,
		Aggregator: news.NewAggregator(source, processor, client, cfg.PageSize),
		client:     client,
	}
}

func newSource(cfg *config.Config) news.Source {
	switch cfg.NewsSource {
	case config.SourceRSS:
		feeds, err := rss.LoadFeeds(cfg.FeedsConfigPath)
		if err != nil {
			// An empty source answers every category with "no articles".
			logger.Error("RSS feeds unavailable", "path", cfg.FeedsConfigPath, "error", err)
		}
		return rss.NewSource(feeds, cfg.NewsTimeout)
	default:
		return newsapi.New(newsapi.Config{
			APIKey:  cfg.NewsAPIKey,
			BaseURL: cfg.NewsAPIBaseURL,
			Timeout: cfg.NewsTimeout,
			Retry: retry.RetryConfig{
				MaxAttempts: cfg.RetryAttempts,
				Delay:       cfg.RetryDelay,
				Backoff:     true,
			},
		})
	}
}

// Serve runs the web UI until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	return web.NewServer(a.Aggregator, a.Cache).ListenAndServe(ctx, a.Config.HTTPAddr)
}

// Fetch runs a single aggregation, as the web form would.
func (a *App) Fetch(ctx context.Context, category, language string) string {
	return a.Aggregator.AggregateForUI(ctx, category, language)
}

func (a *App) Close() {
	if c, ok := a.client.(interface{ Close() }); ok {
		c.Close()
	}
}
