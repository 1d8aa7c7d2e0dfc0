package article

import (
	"html/template"
	"strings"
)

// Card is the presentational unit for one processed article.
type Card struct {
	Title    string
	URL      string
	Source   string
	Summary  string
	ImageURL string
}

var cardTmpl = template.Must(template.New("card").Parse(`
    <div class='article-card'>
        <h3><a href='{{.URL}}' target='_blank'>{{.Title}}</a></h3>
        <p><strong>Media:</strong> {{.Source}}</p>
        <p><strong>Overview:</strong> {{.Summary}}</p>
        {{if .ImageURL}}<img src='{{.ImageURL}}' alt='Article image' class='article-image'>{{end}}
    </div>
    `))

var errorTmpl = template.Must(template.New("error").Parse(
	`<div class='article-card article-error'>{{.}}</div>`))

// Render returns the card's HTML. Every field is escaped.
func (c Card) Render() (string, error) {
	var b strings.Builder
	if err := cardTmpl.Execute(&b, c); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ErrorCard renders msg as a visible placeholder card.
func ErrorCard(msg string) string {
	var b strings.Builder
	if err := errorTmpl.Execute(&b, msg); err != nil {
		return "<div class='article-card article-error'>" + template.HTMLEscapeString(msg) + "</div>"
	}
	return b.String()
}
