package types

import (
	"time"
	"unicode/utf8"
)

// Sentinel field values written when no selector tier matches.
// They are real strings on purpose: downstream consumers must treat them
// as a failure signal, never as valid content.
const (
	TitleNotFound   = "Title not found"
	ContentNotFound = "Content not found"
	AuthorNotFound  = "Author not found"
)

// ArticleRecord is the normalized output unit for one scraped article.
// Records are created once by the extractor and never mutated afterwards.
type ArticleRecord struct {
	Source        string `json:"source"`
	Category      string `json:"category"`
	Region        string `json:"region"`
	Country       string `json:"country,omitempty"`
	URL           string `json:"url"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	Content       string `json:"content"`
	Date          string `json:"date"`
	ContentLength int    `json:"content_length"`
	Language      string `json:"language"`
	ScrapedAt     string `json:"scraped_at"`
}

// NewArticleRecord builds a record and fixes the content_length invariant:
// content_length is always the character count of content.
func NewArticleRecord(source, category, region, country, url string) *ArticleRecord {
	return &ArticleRecord{
		Source:    source,
		Category:  category,
		Region:    region,
		Country:   country,
		URL:       url,
		ScrapedAt: time.Now().Format(time.RFC3339),
	}
}

// SetContent stores the body text and recomputes content_length.
func (a *ArticleRecord) SetContent(content string) {
	a.Content = content
	a.ContentLength = utf8.RuneCountInString(content)
}

// Complete reports whether both title and content carry real values.
// A record failing this check is retried by the orchestrator.
func (a *ArticleRecord) Complete() bool {
	return a.Title != TitleNotFound && a.Title != "" &&
		a.Content != ContentNotFound && a.Content != ""
}

// MissingFields lists the fields that fell through to sentinel values.
func (a *ArticleRecord) MissingFields() []string {
	var missing []string
	if a.Title == TitleNotFound || a.Title == "" {
		missing = append(missing, "title")
	}
	if a.Content == ContentNotFound || a.Content == "" {
		missing = append(missing, "content")
	}
	if a.Author == AuthorNotFound {
		missing = append(missing, "author")
	}
	return missing
}
