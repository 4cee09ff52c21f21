package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for invalid values. Filter values
// (region, category, country) are deliberately NOT validated here: an
// unknown filter matches no sources and produces an empty run.
func Validate(cfg *Config) error {
	if cfg.Scraper.RetryAttempts < 1 {
		return fmt.Errorf("scraper.retry_attempts must be >= 1, got %d", cfg.Scraper.RetryAttempts)
	}
	if cfg.Scraper.MaxSources < 0 {
		return fmt.Errorf("scraper.max_sources must be >= 0, got %d", cfg.Scraper.MaxSources)
	}
	if cfg.Scraper.MaxArticles < 0 {
		return fmt.Errorf("scraper.max_articles must be >= 0, got %d", cfg.Scraper.MaxArticles)
	}
	if cfg.Scraper.SourceRetryBase < 0 || cfg.Scraper.ArticleRetryBase < 0 {
		return fmt.Errorf("retry backoff base must be >= 0")
	}
	if cfg.Scraper.MinArticleDelay < 0 || cfg.Scraper.ArticleDelaySpan < 0 {
		return fmt.Errorf("article delay must be >= 0")
	}

	if cfg.Fetcher.RequestTimeout <= 0 {
		return fmt.Errorf("fetcher.request_timeout must be > 0")
	}
	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}
	if cfg.Fetcher.MaxRedirects < 0 {
		return fmt.Errorf("fetcher.max_redirects must be >= 0")
	}
	if len(cfg.Fetcher.UserAgents) == 0 {
		return fmt.Errorf("fetcher.user_agents must not be empty")
	}

	if cfg.Storage.Format != "collection" && cfg.Storage.Format != "files" {
		return fmt.Errorf("storage.format must be 'collection' or 'files', got %q", cfg.Storage.Format)
	}
	if cfg.Storage.OutputPath == "" {
		return fmt.Errorf("storage.output_path must not be empty")
	}
	if cfg.Storage.MongoURI != "" {
		if _, err := url.Parse(cfg.Storage.MongoURI); err != nil {
			return fmt.Errorf("invalid storage.mongo_uri: %w", err)
		}
	}

	switch cfg.Cluster.Provider {
	case "openai", "ollama", "custom":
	default:
		return fmt.Errorf("cluster.provider must be openai/ollama/custom, got %q", cfg.Cluster.Provider)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}
