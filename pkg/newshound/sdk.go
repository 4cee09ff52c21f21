// Package newshound provides a public API for embedding the scraper as a
// library.
//
// Example usage:
//
//	hound := newshound.New(
//	    newshound.WithRegion("asia"),
//	    newshound.WithMaxArticles(5),
//	    newshound.WithOutput("./data/articles.json"),
//	)
//
//	hound.OnArticle(func(ctx context.Context, rec *types.ArticleRecord) {
//	    fmt.Println(rec.Title)
//	})
//
//	articles, err := hound.Run(context.Background())
package newshound

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pressworks/newshound/internal/cluster"
	"github.com/pressworks/newshound/internal/config"
	"github.com/pressworks/newshound/internal/fetcher"
	"github.com/pressworks/newshound/internal/report"
	"github.com/pressworks/newshound/internal/scraper"
	"github.com/pressworks/newshound/internal/sources"
	"github.com/pressworks/newshound/internal/storage"
	"github.com/pressworks/newshound/internal/types"
)

// Hound is the high-level API for running scrapes programmatically.
type Hound struct {
	cfg    *config.Config
	logger *slog.Logger
	hook   scraper.ArticleHook
	stats  scraper.Stats
}

// Option configures a Hound.
type Option func(*config.Config)

// WithRegion restricts the run to sources from one region.
func WithRegion(region string) Option {
	return func(c *config.Config) { c.Scraper.Region = region }
}

// WithCategory restricts the run to sources with one category.
func WithCategory(category string) Option {
	return func(c *config.Config) { c.Scraper.Category = category }
}

// WithCountry restricts the run to sources from one country.
func WithCountry(country string) Option {
	return func(c *config.Config) { c.Scraper.Country = country }
}

// WithMaxSources caps how many sources are scraped.
func WithMaxSources(n int) Option {
	return func(c *config.Config) { c.Scraper.MaxSources = n }
}

// WithMaxArticles caps how many articles are scraped per source.
func WithMaxArticles(n int) Option {
	return func(c *config.Config) { c.Scraper.MaxArticles = n }
}

// WithRetryAttempts sets the retry budget per source and article.
func WithRetryAttempts(n int) Option {
	return func(c *config.Config) { c.Scraper.RetryAttempts = n }
}

// WithOutput sets the collection file path.
func WithOutput(path string) Option {
	return func(c *config.Config) {
		c.Storage.Format = "collection"
		c.Storage.OutputPath = path
	}
}

// WithFileOutput writes per-article files under dir instead of a single
// collection file.
func WithFileOutput(dir string) Option {
	return func(c *config.Config) {
		c.Storage.Format = "files"
		c.Storage.OutputPath = dir
	}
}

// WithMongo additionally persists articles to MongoDB.
func WithMongo(uri, database, collection string) Option {
	return func(c *config.Config) {
		c.Storage.MongoURI = uri
		c.Storage.MongoDB = database
		c.Storage.MongoColl = collection
	}
}

// WithAPIKey sets the LLM API key used by clustering and per-article
// summaries.
func WithAPIKey(key string) Option {
	return func(c *config.Config) { c.Cluster.APIKey = key }
}

// WithLLM selects the LLM provider (openai, ollama, custom) and model.
func WithLLM(provider, model string) Option {
	return func(c *config.Config) {
		c.Cluster.Provider = provider
		c.Cluster.Model = model
	}
}

// WithEndpoint overrides the LLM API base URL.
func WithEndpoint(endpoint string) Option {
	return func(c *config.Config) { c.Cluster.Endpoint = endpoint }
}

// WithVerbose enables debug-level logging.
func WithVerbose() Option {
	return func(c *config.Config) { c.Logging.Level = "debug" }
}

// New creates a Hound with the given options on top of the defaults.
func New(opts ...Option) *Hound {
	cfg := config.DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	level := slog.LevelInfo
	if cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return &Hound{cfg: cfg, logger: logger}
}

// OnArticle registers a callback invoked for each complete article as it
// is scraped.
func (h *Hound) OnArticle(hook func(ctx context.Context, rec *types.ArticleRecord)) {
	h.hook = hook
}

// Run scrapes the selected sources and returns the accumulated records.
// The collection and its aggregate report are written to the configured
// output path.
func (h *Hound) Run(ctx context.Context) ([]*types.ArticleRecord, error) {
	if err := config.Validate(h.cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	filter := sources.Filter{
		Region:     h.cfg.Scraper.Region,
		Category:   h.cfg.Scraper.Category,
		Country:    h.cfg.Scraper.Country,
		MaxSources: h.cfg.Scraper.MaxSources,
	}
	srcs := filter.Apply(sources.Builtin())

	f, err := fetcher.NewHTTPFetcher(&h.cfg.Fetcher, h.logger)
	if err != nil {
		return nil, fmt.Errorf("create fetcher: %w", err)
	}
	defer f.Close()

	var store storage.Store
	var collectionPath string
	if h.cfg.Storage.Format == "files" {
		store, err = storage.NewFilesStore(h.cfg.Storage.OutputPath, h.logger)
	} else {
		cs, cerr := storage.NewCollectionStore(h.cfg.Storage.OutputPath, h.logger)
		if cerr == nil {
			collectionPath = cs.Path()
		}
		store, err = cs, cerr
	}
	if err != nil {
		return nil, fmt.Errorf("create storage: %w", err)
	}
	defer func() { store.Close() }()

	if h.cfg.Storage.MongoURI != "" {
		ms, merr := storage.NewMongoStore(h.cfg.Storage.MongoURI, h.cfg.Storage.MongoDB, h.cfg.Storage.MongoColl, h.logger)
		if merr != nil {
			h.logger.Error("mongodb unavailable, continuing without it", "error", merr)
		} else {
			store = storage.NewMultiStore(h.logger, store, ms)
		}
	}

	sc := scraper.New(&h.cfg.Scraper, srcs, f, store, h.logger)
	if h.hook != nil {
		sc.OnArticle(h.hook)
	}

	articles, runErr := sc.Run(ctx)
	h.stats = sc.Stats()

	if collectionPath != "" {
		if _, werr := report.Write(report.Compute(articles), collectionPath); werr != nil {
			h.logger.Error("report write failed", "error", werr)
		}
	}

	return articles, runErr
}

// Stats returns the counters from the last Run.
func (h *Hound) Stats() scraper.Stats { return h.stats }

// ClusterResult summarizes one clustering run.
type ClusterResult struct {
	Themes        []string
	TotalArticles int
	JSONPath      string
	HTMLPath      string
}

// ClusterThemes groups a previously scraped collection (a JSON array
// file, or a directory of per-article JSON files) into themes via the
// configured LLM and writes JSON and HTML reports under outDir.
func (h *Hound) ClusterThemes(ctx context.Context, input, outDir string) (*ClusterResult, error) {
	articles, err := cluster.LoadArticles(input, h.logger)
	if err != nil {
		return nil, fmt.Errorf("load articles: %w", err)
	}

	llm := cluster.NewLLMClient(h.cfg.Cluster, h.logger)
	clustered, err := cluster.NewClusterer(llm, h.logger).Cluster(ctx, articles)
	if err != nil {
		return nil, err
	}

	result := &ClusterResult{
		TotalArticles: clustered.Metadata.TotalArticles,
		JSONPath:      filepath.Join(outDir, "clustered_articles.json"),
		HTMLPath:      filepath.Join(outDir, "clustered_articles.html"),
	}
	for _, theme := range clustered.Themes {
		result.Themes = append(result.Themes, theme.Name)
	}

	if err := cluster.WriteJSON(clustered, result.JSONPath); err != nil {
		return nil, err
	}
	if err := cluster.WriteHTML(clustered, result.HTMLPath); err != nil {
		return nil, err
	}
	return result, nil
}
