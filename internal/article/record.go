// Package article normalizes fetched news records, decides whether they carry
// enough text to summarize, and renders them as HTML cards.
package article

import "strings"

// Record is a news item as delivered by a source. Nil fields were absent.
type Record struct {
	SourceName  *string
	Title       *string
	Description *string
	Content     *string
	URL         *string
	ImageURL    *string
}

// Article is a Record after the fallback rules have been applied.
type Article struct {
	Source      string
	Title       string
	Description string
	URL         string
	ImageURL    string
}

// Normalize applies the per-field fallback rules:
//   - missing or blank source becomes SourcePlaceholder
//   - missing title becomes TitlePlaceholder; an empty title is kept as is
//   - description falls back to content, then to the title
//   - missing or blank url becomes "#"
func Normalize(r Record) Article {
	a := Article{
		Source:   firstNonEmpty(deref(r.SourceName), SourcePlaceholder),
		URL:      firstNonEmpty(strings.TrimSpace(deref(r.URL)), DefaultURL),
		ImageURL: strings.TrimSpace(deref(r.ImageURL)),
	}

	if r.Title == nil {
		a.Title = TitlePlaceholder
	} else {
		a.Title = strings.TrimSpace(*r.Title)
	}

	a.Description = firstNonEmpty(
		strings.TrimSpace(deref(r.Description)),
		strings.TrimSpace(deref(r.Content)),
		a.Title,
	)
	return a
}

// String returns a pointer to s, for building records.
func String(s string) *string { return &s }

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
