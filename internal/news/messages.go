package news

import "strings"

const (
	MsgSelectInput    = "Please select a news category and language."
	MsgNoArticles     = "No news articles found for this category. Please try another category."
	MsgProcessingFail = "Error processing news articles. Please try again later."
	MsgTechnicalIssue = "We are experiencing technical difficulties. Please try again later or choose a different category."
)

// Categories accepted by the news source.
var Categories = []string{
	"business", "entertainment", "general", "health", "science", "sports", "technology",
}

// Languages offered for summaries. English means no translation.
var Languages = []string{
	"English", "Spanish", "French", "German", "Chinese", "Hindi", "Arabic",
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func ValidLanguage(language string) bool {
	for _, l := range Languages {
		if strings.EqualFold(l, language) {
			return true
		}
	}
	return false
}
