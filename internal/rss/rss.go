// Package rss is an alternative headline source backed by RSS/Atom feeds
// grouped per category in a YAML file.
package rss

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/deusflow/newshub/internal/article"
	"github.com/deusflow/newshub/internal/logger"
	"github.com/deusflow/newshub/internal/scraper"
)

// FeedsConfig is the YAML layout:
//
//	feeds:
//	  technology:
//	    - https://...
type FeedsConfig struct {
	Feeds map[string][]string `yaml:"feeds"`
}

// LoadFeeds reads the category → feed URLs mapping from a YAML file.
func LoadFeeds(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode feeds config %s: %w", path, err)
	}

	feeds := make(map[string][]string, len(cfg.Feeds))
	for category, urls := range cfg.Feeds {
		feeds[strings.ToLower(strings.TrimSpace(category))] = urls
	}
	return feeds, nil
}

// Source serves headlines for a category by reading its feeds in order.
type Source struct {
	feeds   map[string][]string
	timeout time.Duration
}

func NewSource(feeds map[string][]string, timeout time.Duration) *Source {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Source{feeds: feeds, timeout: timeout}
}

// TopHeadlines collects up to pageSize items from the category's feeds. A
// failing feed is logged and skipped; an error is returned only when every
// feed failed.
func (s *Source) TopHeadlines(ctx context.Context, category string, pageSize int) ([]article.Record, error) {
	urls, ok := s.feeds[strings.ToLower(category)]
	if !ok || len(urls) == 0 {
		return nil, fmt.Errorf("no feeds configured for category %q", category)
	}

	var records []article.Record
	var lastErr error
	successCount := 0

	for _, url := range urls {
		if pageSize > 0 && len(records) >= pageSize {
			break
		}

		feed, err := s.parse(ctx, url)
		if err != nil {
			logger.Error("Error parsing RSS", "url", url, "error", err)
			lastErr = err
			continue
		}
		successCount++

		for _, item := range feed.Items {
			if pageSize > 0 && len(records) >= pageSize {
				break
			}
			records = append(records, toRecord(feed, item))
		}
		logger.Info("Loaded news from feed", "url", url, "items", len(feed.Items))
	}

	if successCount == 0 && lastErr != nil {
		return nil, fmt.Errorf("all feeds failed for %s: %w", category, lastErr)
	}
	logger.Info("Processed RSS feeds", "category", category, "ok", successCount, "total", len(urls))
	return records, nil
}

func (s *Source) parse(ctx context.Context, url string) (*gofeed.Feed, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// gofeed parsers keep per-parse state; concurrent requests get their own.
	fp := gofeed.NewParser()
	fp.UserAgent = "newshub/1.0"
	return fp.ParseURLWithContext(url, ctx)
}

func toRecord(feed *gofeed.Feed, item *gofeed.Item) article.Record {
	rec := article.Record{
		Title: article.String(scraper.PlainText(item.Title)),
		URL:   article.String(item.Link),
	}
	if feed.Title != "" {
		rec.SourceName = article.String(feed.Title)
	}
	if item.Description != "" {
		rec.Description = article.String(scraper.PlainText(item.Description))
	}
	if item.Content != "" {
		rec.Content = article.String(scraper.PlainText(item.Content))
	}
	if img := imageOf(item); img != "" {
		rec.ImageURL = article.String(img)
	}
	return rec
}

func imageOf(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	if img := scraper.FirstImage(item.Description); img != "" {
		return img
	}
	return scraper.FirstImage(item.Content)
}
