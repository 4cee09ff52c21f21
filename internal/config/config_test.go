package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestDefaultBackoffSchedules(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scraper.RetryAttempts != 3 {
		t.Errorf("retry attempts: %d", cfg.Scraper.RetryAttempts)
	}
	if cfg.Scraper.SourceRetryBase != 3*time.Second || cfg.Scraper.SourceRetryStep != 2*time.Second {
		t.Errorf("source backoff: base %s step %s", cfg.Scraper.SourceRetryBase, cfg.Scraper.SourceRetryStep)
	}
	if cfg.Scraper.ArticleRetryBase != 2*time.Second || cfg.Scraper.ArticleRetryStep != time.Second {
		t.Errorf("article backoff: base %s step %s", cfg.Scraper.ArticleRetryBase, cfg.Scraper.ArticleRetryStep)
	}
	if cfg.Scraper.MinArticleDelay != 1500*time.Millisecond || cfg.Scraper.ArticleDelaySpan != 2*time.Second {
		t.Errorf("article delay: min %s span %s", cfg.Scraper.MinArticleDelay, cfg.Scraper.ArticleDelaySpan)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero retries", func(c *Config) { c.Scraper.RetryAttempts = 0 }},
		{"negative max sources", func(c *Config) { c.Scraper.MaxSources = -1 }},
		{"zero timeout", func(c *Config) { c.Fetcher.RequestTimeout = 0 }},
		{"no user agents", func(c *Config) { c.Fetcher.UserAgents = nil }},
		{"bad storage format", func(c *Config) { c.Storage.Format = "parquet" }},
		{"empty output path", func(c *Config) { c.Storage.OutputPath = "" }},
		{"bad provider", func(c *Config) { c.Cluster.Provider = "bard" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestSummarizationEnabledByAPIKey(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.SummarizationEnabled() {
		t.Error("summaries must be off without a key or explicit request")
	}

	cfg.Cluster.APIKey = "sk-test"
	if !cfg.SummarizationEnabled() {
		t.Error("a configured API key alone must enable summaries")
	}

	cfg.Cluster.APIKey = ""
	cfg.Scraper.SummarizeArticles = true
	if !cfg.SummarizationEnabled() {
		t.Error("the explicit flag must enable summaries")
	}
}

func TestValidateAllowsUnknownFilterValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scraper.Region = "atlantis"
	cfg.Scraper.Category = "astrology"
	if err := Validate(cfg); err != nil {
		t.Errorf("filter values are not validated, got %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scraper.RetryAttempts != 3 {
		t.Errorf("expected defaults, got retry_attempts=%d", cfg.Scraper.RetryAttempts)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	if _, err := Load("/nonexistent/newshound.yaml"); err == nil {
		t.Error("an explicitly named missing config file must fail")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "newshound.yaml")
	yaml := `
scraper:
  retry_attempts: 5
  max_articles: 7
storage:
  format: files
  output_path: /tmp/out
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scraper.RetryAttempts != 5 {
		t.Errorf("retry_attempts: %d", cfg.Scraper.RetryAttempts)
	}
	if cfg.Scraper.MaxArticles != 7 {
		t.Errorf("max_articles: %d", cfg.Scraper.MaxArticles)
	}
	if cfg.Storage.Format != "files" || cfg.Storage.OutputPath != "/tmp/out" {
		t.Errorf("storage: %+v", cfg.Storage)
	}
	// Unset keys keep their defaults.
	if cfg.Fetcher.RequestTimeout != 15*time.Second {
		t.Errorf("request_timeout default lost: %s", cfg.Fetcher.RequestTimeout)
	}
}
