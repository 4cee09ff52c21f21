package cluster

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pressworks/newshound/internal/storage"
	"github.com/pressworks/newshound/internal/types"
)

// summaryContentLimit bounds how much article content is sent for
// summarization, a rough guard against blowing the model's context.
const summaryContentLimit = 4000

const summarySystemPrompt = "You are a helpful assistant that summarizes news articles concisely."

// Summary is the persisted output of one article summarization.
type Summary struct {
	ArticleTitle  string `json:"article_title"`
	ArticleSource string `json:"article_source"`
	ArticleURL    string `json:"article_url"`
	ArticleDate   string `json:"article_date"`
	Summary       string `json:"summary"`
	GeneratedAt   string `json:"summary_generated_at"`
}

// Summarizer produces per-article LLM summaries during a scrape run.
// Failures are logged and skipped; summarization never blocks scraping.
type Summarizer struct {
	llm    *LLMClient
	outDir string
	logger *slog.Logger
}

// NewSummarizer creates a Summarizer writing into outDir/summaries.
func NewSummarizer(llm *LLMClient, outDir string, logger *slog.Logger) (*Summarizer, error) {
	dir := filepath.Join(outDir, "summaries")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create summaries dir: %w", err)
	}
	return &Summarizer{
		llm:    llm,
		outDir: dir,
		logger: logger.With("component", "summarizer"),
	}, nil
}

// Process summarizes one article and writes the summary JSON to disk.
func (s *Summarizer) Process(ctx context.Context, rec *types.ArticleRecord) {
	prompt := fmt.Sprintf("Please provide a concise summary of this article titled '%s':\n\n%s",
		rec.Title, snippet(rec.Content, summaryContentLimit))

	text, err := s.llm.Generate(ctx, summarySystemPrompt, prompt)
	if err != nil {
		s.logger.Warn("summarization failed", "url", rec.URL, "error", err)
		return
	}

	sum := Summary{
		ArticleTitle:  rec.Title,
		ArticleSource: rec.Source,
		ArticleURL:    rec.URL,
		ArticleDate:   rec.Date,
		Summary:       text,
		GeneratedAt:   time.Now().Format(time.RFC3339),
	}

	path := filepath.Join(s.outDir, storage.SafeFilename(rec.Title)+"_summary.json")
	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		s.logger.Warn("summary encode failed", "url", rec.URL, "error", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Warn("summary write failed", "path", path, "error", err)
		return
	}
	s.logger.Info("summary written", "path", path)
}
