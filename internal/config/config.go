package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	SourceNewsAPI = "newsapi"
	SourceRSS     = "rss"
)

type Config struct {
	// News source settings
	NewsSource      string // "newsapi" or "rss"
	NewsAPIKey      string
	NewsAPIBaseURL  string
	FeedsConfigPath string
	PageSize        int
	NewsTimeout     time.Duration

	// LLM settings
	LLMProvider  string // "openai" or "gemini"
	LLMModel     string // empty = provider default
	OpenAIAPIKey string
	GeminiAPIKey string
	LLMTimeout   time.Duration

	// Cache settings
	CacheMaxSize int

	// App settings
	HTTPAddr      string
	Debug         bool
	RetryAttempts int
	RetryDelay    time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		NewsSource:      strings.ToLower(getEnvOrDefault("NEWS_SOURCE", SourceNewsAPI)),
		NewsAPIKey:      os.Getenv("NEWSAPI_KEY"),
		NewsAPIBaseURL:  getEnvOrDefault("NEWSAPI_BASE_URL", "https://newsapi.org"),
		FeedsConfigPath: getEnvOrDefault("FEEDS_CONFIG_PATH", "configs/feeds.yaml"),
		PageSize:        getEnvIntOrDefault("PAGE_SIZE", 15),
		NewsTimeout:     getEnvDurationOrDefault("NEWS_TIMEOUT", 15*time.Second),

		LLMProvider:  strings.ToLower(getEnvOrDefault("LLM_PROVIDER", "openai")),
		LLMModel:     os.Getenv("LLM_MODEL"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		LLMTimeout:   getEnvDurationOrDefault("LLM_TIMEOUT", 30*time.Second),

		CacheMaxSize: getEnvIntOrDefault("CACHE_MAX_SIZE", 100),

		HTTPAddr:      getEnvOrDefault("HTTP_ADDR", ":7860"),
		RetryAttempts: getEnvIntOrDefault("RETRY_ATTEMPTS", 2),
		RetryDelay:    getEnvDurationOrDefault("RETRY_DELAY", time.Second),
	}

	if debug := os.Getenv("DEBUG"); debug == "true" || debug == "1" {
		cfg.Debug = true
	}

	// Nonsense values fall back to defaults instead of breaking startup.
	if cfg.PageSize <= 0 {
		cfg.PageSize = 15
	}
	if cfg.CacheMaxSize <= 0 {
		cfg.CacheMaxSize = 100
	}
	if cfg.RetryAttempts < 1 {
		cfg.RetryAttempts = 1
	}

	return cfg, cfg.Validate()
}

// LLMAPIKey returns the key for the configured provider.
func (c *Config) LLMAPIKey() string {
	if c.LLMProvider == "gemini" {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDurationOrDefault accepts Go durations ("30s") or plain seconds ("30").
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// Validate reports the first missing or invalid setting. Callers log it and
// keep running: requests then degrade to fallback messages.
func (c *Config) Validate() error {
	switch c.NewsSource {
	case SourceNewsAPI:
		if c.NewsAPIKey == "" {
			return fmt.Errorf("NEWSAPI_KEY is required")
		}
	case SourceRSS:
		if c.FeedsConfigPath == "" {
			return fmt.Errorf("FEEDS_CONFIG_PATH is required when NEWS_SOURCE=rss")
		}
	default:
		return fmt.Errorf("NEWS_SOURCE must be 'newsapi' or 'rss'")
	}

	switch c.LLMProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required")
		}
	default:
		return fmt.Errorf("LLM_PROVIDER must be 'openai' or 'gemini'")
	}
	return nil
}
