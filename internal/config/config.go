package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for newshound.
type Config struct {
	Scraper Scraper `mapstructure:"scraper" yaml:"scraper"`
	Fetcher Fetcher `mapstructure:"fetcher" yaml:"fetcher"`
	Storage Storage `mapstructure:"storage" yaml:"storage"`
	Cluster Cluster `mapstructure:"cluster" yaml:"cluster"`
	Logging Logging `mapstructure:"logging" yaml:"logging"`
}

// Scraper controls the scraping run: which sources, how many articles,
// and the retry/backoff policy.
type Scraper struct {
	Region            string        `mapstructure:"region"              yaml:"region"`
	Category          string        `mapstructure:"category"            yaml:"category"`
	Country           string        `mapstructure:"country"             yaml:"country"`
	MaxSources        int           `mapstructure:"max_sources"         yaml:"max_sources"`
	MaxArticles       int           `mapstructure:"max_articles"        yaml:"max_articles"`
	RetryAttempts     int           `mapstructure:"retry_attempts"      yaml:"retry_attempts"`
	SourceRetryBase   time.Duration `mapstructure:"source_retry_base"   yaml:"source_retry_base"`
	SourceRetryStep   time.Duration `mapstructure:"source_retry_step"   yaml:"source_retry_step"`
	ArticleRetryBase  time.Duration `mapstructure:"article_retry_base"  yaml:"article_retry_base"`
	ArticleRetryStep  time.Duration `mapstructure:"article_retry_step"  yaml:"article_retry_step"`
	MinArticleDelay   time.Duration `mapstructure:"min_article_delay"   yaml:"min_article_delay"`
	ArticleDelaySpan  time.Duration `mapstructure:"article_delay_span"  yaml:"article_delay_span"`
	SummarizeArticles bool          `mapstructure:"summarize_articles"  yaml:"summarize_articles"`
}

// Fetcher controls the HTTP client.
type Fetcher struct {
	RequestTimeout  time.Duration `mapstructure:"request_timeout"   yaml:"request_timeout"`
	FollowRedirects bool          `mapstructure:"follow_redirects"  yaml:"follow_redirects"`
	MaxRedirects    int           `mapstructure:"max_redirects"     yaml:"max_redirects"`
	MaxBodySize     int64         `mapstructure:"max_body_size"     yaml:"max_body_size"`
	IdleConnTimeout time.Duration `mapstructure:"idle_conn_timeout" yaml:"idle_conn_timeout"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    yaml:"max_idle_conns"`
	UserAgents      []string      `mapstructure:"user_agents"       yaml:"user_agents"`
}

// Storage controls where scraped articles are persisted.
type Storage struct {
	Format     string `mapstructure:"format"      yaml:"format"` // collection or files
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
	MongoURI   string `mapstructure:"mongo_uri"   yaml:"mongo_uri"`
	MongoDB    string `mapstructure:"mongo_db"    yaml:"mongo_db"`
	MongoColl  string `mapstructure:"mongo_coll"  yaml:"mongo_coll"`
}

// Cluster controls the LLM theme-clustering stage.
type Cluster struct {
	Provider    string  `mapstructure:"provider"    yaml:"provider"` // openai, ollama, custom
	Model       string  `mapstructure:"model"       yaml:"model"`
	Endpoint    string  `mapstructure:"endpoint"    yaml:"endpoint"`
	APIKey      string  `mapstructure:"api_key"     yaml:"api_key"`
	MaxTokens   int     `mapstructure:"max_tokens"  yaml:"max_tokens"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
}

// SummarizationEnabled reports whether per-article summaries run during a
// scrape. A configured LLM API key is enough on its own; the explicit
// scraper flag can force the stage on without one (every call will then
// fail and be logged).
func (c *Config) SummarizationEnabled() bool {
	return c.Scraper.SummarizeArticles || c.Cluster.APIKey != ""
}

// Logging controls log output.
type Logging struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults. The retry and
// delay values mirror the scraper's long-standing production settings:
// source discovery backs off 3s, 5s, 7s; article fetches 2s, 3s, 4s; and
// article fetches within a source are spaced 1.5-3.5s apart.
func DefaultConfig() *Config {
	return &Config{
		Scraper: Scraper{
			RetryAttempts:    3,
			SourceRetryBase:  3 * time.Second,
			SourceRetryStep:  2 * time.Second,
			ArticleRetryBase: 2 * time.Second,
			ArticleRetryStep: 1 * time.Second,
			MinArticleDelay:  1500 * time.Millisecond,
			ArticleDelaySpan: 2 * time.Second,
		},
		Fetcher: Fetcher{
			RequestTimeout:  15 * time.Second,
			FollowRedirects: true,
			MaxRedirects:    10,
			MaxBodySize:     10 * 1024 * 1024, // 10MB
			IdleConnTimeout: 90 * time.Second,
			MaxIdleConns:    100,
			UserAgents: []string{
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Safari/605.1.15",
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:89.0) Gecko/20100101 Firefox/89.0",
				"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/90.0.4430.212 Safari/537.36",
				"Mozilla/5.0 (iPhone; CPU iPhone OS 14_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Mobile/15E148 Safari/604.1",
			},
		},
		Storage: Storage{
			Format:     "collection",
			OutputPath: "./scraped_data/articles.json",
			MongoDB:    "newshound",
			MongoColl:  "articles",
		},
		Cluster: Cluster{
			Provider:    "openai",
			Model:       "gpt-3.5-turbo-16k",
			MaxTokens:   2048,
			Temperature: 0.3,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}
