package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/deusflow/newshub/internal/config"
	"github.com/deusflow/newshub/internal/llm"
	"github.com/deusflow/newshub/internal/news"
)

func baseConfig() *config.Config {
	return &config.Config{
		NewsSource:   config.SourceNewsAPI,
		LLMProvider:  "openai",
		PageSize:     15,
		CacheMaxSize: 7,
		NewsTimeout:  time.Second,
		LLMTimeout:   time.Second,
		HTTPAddr:     ":0",
	}
}

func TestNewWithoutCredentialsStillStarts(t *testing.T) {
	a := New(context.Background(), baseConfig())
	defer a.Close()

	if a.Cache.Stats().MaxSize != 7 {
		t.Errorf("cache must use configured size, got %d", a.Cache.Stats().MaxSize)
	}
	if got := a.Fetch(context.Background(), "", "English"); got != news.MsgSelectInput {
		t.Errorf("unexpected output %q", got)
	}
}

func TestNewUnknownProviderDegrades(t *testing.T) {
	cfg := baseConfig()
	cfg.LLMProvider = "llama"

	a := New(context.Background(), cfg)
	if _, ok := a.client.(llm.Unavailable); !ok {
		t.Errorf("expected unavailable client, got %T", a.client)
	}
}

func TestNewRSSSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	if err := os.WriteFile(path, []byte("feeds:\n  technology:\n    - https://example.com/rss\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := baseConfig()
	cfg.NewsSource = config.SourceRSS
	cfg.FeedsConfigPath = path
	if a := New(context.Background(), cfg); a.Aggregator == nil {
		t.Fatal("expected aggregator")
	}
}

func TestNewMissingFeedsFileStillStarts(t *testing.T) {
	cfg := baseConfig()
	cfg.NewsSource = config.SourceRSS
	cfg.FeedsConfigPath = filepath.Join(t.TempDir(), "missing.yaml")
	// An unknown provider keeps the warm-up call off the network.
	cfg.LLMProvider = "llama"

	a := New(context.Background(), cfg)
	if got := a.Fetch(context.Background(), "technology", "English"); got != news.MsgNoArticles {
		t.Errorf("expected no-articles message, got %q", got)
	}
}
