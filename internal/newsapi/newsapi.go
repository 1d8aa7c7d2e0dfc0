// Package newsapi fetches top headlines from newsapi.org.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/deusflow/newshub/internal/article"
	"github.com/deusflow/newshub/internal/logger"
	"github.com/deusflow/newshub/internal/retry"
	"github.com/deusflow/newshub/internal/scraper"
)

const (
	DefaultBaseURL  = "https://newsapi.org"
	DefaultPageSize = 15
	DefaultTimeout  = 15 * time.Second

	// Language is fixed: headlines are fetched in English and translated later.
	Language = "en"
)

var ErrNoAPIKey = errors.New("newsapi: API key not set")

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("newsapi %d %s: %s", e.StatusCode, e.Code, e.Message)
}

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Retry   retry.RetryConfig
}

type Client struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	retry      retry.RetryConfig
	httpClient *http.Client
}

func New(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	rc := cfg.Retry
	if rc.MaxAttempts < 1 {
		rc.MaxAttempts = 1
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		timeout:    timeout,
		retry:      rc,
		httpClient: &http.Client{},
	}
}

// wire types

type response struct {
	Status       string        `json:"status"`
	Code         string        `json:"code"`
	Message      string        `json:"message"`
	TotalResults int           `json:"totalResults"`
	Articles     []wireArticle `json:"articles"`
}

type wireArticle struct {
	Source struct {
		ID   *string `json:"id"`
		Name *string `json:"name"`
	} `json:"source"`
	Author      *string `json:"author"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	URLToImage  *string `json:"urlToImage"`
	PublishedAt *string `json:"publishedAt"`
	Content     *string `json:"content"`
}

// TopHeadlines returns up to pageSize English headlines for category.
func (c *Client) TopHeadlines(ctx context.Context, category string, pageSize int) ([]article.Record, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	params := url.Values{}
	params.Set("category", category)
	params.Set("language", Language)
	params.Set("pageSize", strconv.Itoa(pageSize))
	endpoint := c.baseURL + "/v2/top-headlines?" + params.Encode()

	var resp response
	err := retry.WithRetry(ctx, c.retry, func(ctx context.Context) error {
		r, err := c.get(ctx, endpoint)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch top headlines for %s: %w", category, err)
	}

	records := make([]article.Record, 0, len(resp.Articles))
	for _, wa := range resp.Articles {
		records = append(records, toRecord(wa))
	}

	logger.Info("Response received from NewsAPI", "category", category, "articles", len(records), "total_results", resp.TotalResults)
	return records, nil
}

func (c *Client) get(ctx context.Context, endpoint string) (response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return response{}, retry.Permanent(err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("HTTP error: %w", err)
	}
	defer func() {
		if closeErr := httpResp.Body.Close(); closeErr != nil {
			logger.Warn("Failed to close response body", "error", closeErr)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, 4<<20))
	if err != nil {
		return response{}, fmt.Errorf("error reading response: %w", err)
	}

	var out response
	if err := json.Unmarshal(body, &out); err != nil {
		if httpResp.StatusCode != http.StatusOK {
			return response{}, classify(&APIError{StatusCode: httpResp.StatusCode, Message: http.StatusText(httpResp.StatusCode)})
		}
		return response{}, retry.Permanent(fmt.Errorf("error parsing response: %w", err))
	}

	if httpResp.StatusCode != http.StatusOK || out.Status == "error" {
		return response{}, classify(&APIError{StatusCode: httpResp.StatusCode, Code: out.Code, Message: out.Message})
	}
	return out, nil
}

// classify lets 429 and 5xx through for another attempt; everything else is final.
func classify(e *APIError) error {
	if e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500 {
		return e
	}
	return retry.Permanent(e)
}

var truncationMarkerRe = regexp.MustCompile(`\s*…?\s*\[\+\d+ chars\]\s*$`)

func toRecord(wa wireArticle) article.Record {
	return article.Record{
		SourceName:  wa.Source.Name,
		Title:       clean(wa.Title),
		Description: clean(wa.Description),
		Content:     cleanContent(wa.Content),
		URL:         wa.URL,
		ImageURL:    wa.URLToImage,
	}
}

func clean(s *string) *string {
	if s == nil {
		return nil
	}
	return article.String(scraper.PlainText(*s))
}

// cleanContent also drops the "… [+1234 chars]" suffix the free tier appends.
func cleanContent(s *string) *string {
	if s == nil {
		return nil
	}
	return article.String(truncationMarkerRe.ReplaceAllString(scraper.PlainText(*s), ""))
}
