// Package cluster groups previously scraped articles into themes via an
// LLM call and renders the result as JSON and HTML reports. It consumes a
// persisted collection; it never talks to the scraper directly.
package cluster

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressworks/newshound/internal/types"
)

// snippetLimit bounds the per-article content snippet sent to the LLM.
const snippetLimit = 300

const clusterSystemPrompt = "You are a helpful assistant that analyzes news articles and identifies themes and topics."

// Theme is one topic with the full records assigned to it.
type Theme struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Articles    []*types.ArticleRecord `json:"articles"`
}

// Metadata describes the clustering run.
type Metadata struct {
	TotalArticles int    `json:"total_articles"`
	ClusteredAt   string `json:"clustering_timestamp"`
}

// Clustered is the complete clustering output.
type Clustered struct {
	Themes   []Theme  `json:"themes"`
	Metadata Metadata `json:"metadata"`
}

// payloadEntry is the bounded per-article view handed to the LLM.
type payloadEntry struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	ContentSnippet string `json:"content_snippet"`
}

// llmResponse is the JSON shape the model is asked to return.
type llmResponse struct {
	Themes []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		ArticleIDs  []int  `json:"article_ids"`
	} `json:"themes"`
}

// Clusterer runs the theme-clustering stage.
type Clusterer struct {
	llm    *LLMClient
	logger *slog.Logger
}

// NewClusterer creates a Clusterer using the given LLM client.
func NewClusterer(llm *LLMClient, logger *slog.Logger) *Clusterer {
	return &Clusterer{
		llm:    llm,
		logger: logger.With("component", "clusterer"),
	}
}

// Cluster asks the LLM to group the articles into 3-7 themes and maps the
// returned IDs back to full records. A malformed response (non-JSON, or
// JSON without a themes key) is total failure; there is no partial output.
func (c *Clusterer) Cluster(ctx context.Context, articles []*types.ArticleRecord) (*Clustered, error) {
	if len(articles) == 0 {
		return nil, &types.ClusterError{Stage: "input", Err: fmt.Errorf("no articles to cluster")}
	}

	payload := make([]payloadEntry, len(articles))
	for i, a := range articles {
		payload[i] = payloadEntry{
			ID:             i,
			Title:          a.Title,
			Description:    a.Description,
			ContentSnippet: snippet(a.Content, snippetLimit),
		}
	}

	prompt, err := buildPrompt(payload)
	if err != nil {
		return nil, &types.ClusterError{Stage: "prompt", Err: err}
	}

	raw, err := c.llm.Generate(ctx, clusterSystemPrompt, prompt)
	if err != nil {
		return nil, &types.ClusterError{Stage: "llm", Err: err}
	}

	var parsed llmResponse
	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
		c.logger.Error("llm returned non-JSON clustering response", "error", err)
		return nil, &types.ClusterError{Stage: "parse", Err: err}
	}
	if len(parsed.Themes) == 0 {
		return nil, &types.ClusterError{Stage: "parse", Err: types.ErrNoThemes}
	}

	out := &Clustered{
		Metadata: Metadata{
			TotalArticles: len(articles),
			ClusteredAt:   time.Now().Format(time.RFC3339),
		},
	}

	for _, t := range parsed.Themes {
		theme := Theme{Name: t.Name, Description: t.Description}
		if theme.Name == "" {
			theme.Name = "Unnamed Theme"
		}
		for _, id := range t.ArticleIDs {
			if id < 0 || id >= len(articles) {
				continue
			}
			theme.Articles = append(theme.Articles, articles[id])
		}
		// Themes the model invented but assigned nothing to are dropped.
		if len(theme.Articles) > 0 {
			out.Themes = append(out.Themes, theme)
		}
	}

	c.logger.Info("articles clustered", "themes", len(out.Themes), "articles", len(articles))
	return out, nil
}

// buildPrompt renders the clustering instruction with the article payload
// embedded as indented JSON.
func buildPrompt(payload []payloadEntry) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I have %d news articles that I need to cluster by themes or topics.\n", len(payload))
	b.WriteString("Here are the articles (shown with ID, title, and a snippet):\n\n")
	b.Write(data)
	b.WriteString("\n\nPlease analyze these articles and:\n")
	b.WriteString("1. Identify 3-7 main themes or topics that these articles cover\n")
	b.WriteString("2. Assign each article to one or more of these themes\n")
	b.WriteString("3. Return your analysis in the following JSON format:\n\n")
	b.WriteString(`{"themes": [{"name": "Theme Name", "description": "Brief description of this theme", "article_ids": [0, 1]}]}`)
	b.WriteString("\n\nOnly return the JSON, no other explanations.\n")
	return b.String(), nil
}

// stripFences removes a markdown code fence wrapper from a model response.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if after, ok := strings.CutPrefix(s, "```json"); ok {
		s = after
	} else if after, ok := strings.CutPrefix(s, "```"); ok {
		s = after
	}
	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// snippet returns the first limit characters of s, with an ellipsis when
// truncated.
func snippet(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// WriteJSON serializes the clustering output to path.
func WriteJSON(c *Clustered, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode clustering output: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadArticles reads articles either from a collection file (JSON array)
// or from a directory of per-article JSON files (an articles/ subdirectory
// is used when present). Unreadable individual files are logged and
// skipped.
func LoadArticles(path string, logger *slog.Logger) ([]*types.ArticleRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read collection: %w", err)
		}
		var articles []*types.ArticleRecord
		if err := json.Unmarshal(data, &articles); err != nil {
			return nil, fmt.Errorf("decode collection: %w", err)
		}
		return articles, nil
	}

	dir := path
	if sub := filepath.Join(path, "articles"); dirExists(sub) {
		dir = sub
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	var articles []*types.ArticleRecord
	for _, m := range matches {
		data, err := os.ReadFile(m)
		if err != nil {
			logger.Warn("skipping unreadable article file", "path", m, "error", err)
			continue
		}
		var rec types.ArticleRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			logger.Warn("skipping malformed article file", "path", m, "error", err)
			continue
		}
		articles = append(articles, &rec)
	}
	return articles, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
