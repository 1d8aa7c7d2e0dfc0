package article

import (
	"fmt"
	"unicode/utf8"

	"github.com/deusflow/newshub/internal/summary"
)

const (
	SourcePlaceholder = "[Source Unavailable]"
	TitlePlaceholder  = "[Title Unavailable]"
	DefaultURL        = "#"

	ContentUnavailable = "Content unavailable for this article."

	// MinDescriptionChars is the shortest description worth summarizing.
	MinDescriptionChars = 50
	// MinSummaryChars is the shortest model output accepted as a summary.
	MinSummaryChars = 50
)

// Sufficient reports whether a has enough text to be summarized.
func Sufficient(a Article) bool {
	return a.Title != "" && a.Description != "" &&
		utf8.RuneCountInString(a.Description) >= MinDescriptionChars
}

// SummaryKey identifies a summary by the leading article text and language.
// Articles sharing their first summary.MaxInputChars characters share a summary.
func SummaryKey(description, language string) string {
	return summary.Truncate(description, summary.MaxInputChars) + "_" + language
}

// AcceptSummary replaces suspiciously short model output with a pointer to
// the original article.
func AcceptSummary(s, url string) string {
	if utf8.RuneCountInString(s) < MinSummaryChars {
		return SummaryUnavailable(url)
	}
	return s
}

func SummaryUnavailable(url string) string {
	return fmt.Sprintf("Summary unavailable. Please read the full article at: %s", url)
}

func ProcessingError(err error) string {
	return fmt.Sprintf("Error processing article: %v", err)
}
