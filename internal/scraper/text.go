// Package scraper turns the HTML fragments news sources embed in titles and
// descriptions into plain text.
package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText strips markup from an HTML fragment and collapses whitespace.
// Block-level elements are separated by a single space. Input without any
// markup is only whitespace-normalized.
func PlainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return cleanContent(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return cleanContent(fragment)
	}

	doc.Find("script, style, noscript, iframe").Remove()
	doc.Find("br, p, div, li, h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})

	return cleanContent(doc.Text())
}

// FirstImage returns the src of the first <img> in an HTML fragment, or "".
func FirstImage(fragment string) string {
	if !strings.Contains(fragment, "<img") {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	src, _ := doc.Find("img[src]").First().Attr("src")
	return strings.TrimSpace(src)
}

// cleanContent collapses runs of whitespace into single spaces.
func cleanContent(content string) string {
	return strings.Join(strings.Fields(content), " ")
}
