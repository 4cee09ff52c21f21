package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pressworks/newshound/internal/cluster"
	"github.com/pressworks/newshound/internal/config"
	"github.com/pressworks/newshound/internal/fetcher"
	"github.com/pressworks/newshound/internal/report"
	"github.com/pressworks/newshound/internal/scraper"
	"github.com/pressworks/newshound/internal/sources"
	"github.com/pressworks/newshound/internal/storage"
	"github.com/pressworks/newshound/internal/types"
)

var (
	scrapeOutput    string
	scrapeFormat    string
	scrapeRetries   int
	scrapeSources   int
	scrapeArticles  int
	scrapeRegion    string
	scrapeCategory  string
	scrapeCountry   string
	scrapeAPIKey    string
	scrapeMongoURI  string
	scrapeSummarize bool
	scrapeDelay     string
	scrapeTimeout   string
)

// scrapeCmd creates the "scrape" subcommand.
func scrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape the configured news sources",
		Long: `Scrape article links and content from the built-in news sources,
persisting the collection incrementally after every source. An aggregate
report is written next to the collection when the run finishes.`,
		RunE: runScrape,
	}

	cmd.Flags().StringVarP(&scrapeOutput, "output", "o", "", "output path (collection file or directory)")
	cmd.Flags().StringVarP(&scrapeFormat, "format", "f", "", "storage format: collection or files")
	cmd.Flags().IntVar(&scrapeRetries, "retry", -1, "retry attempts per source/article (-1 = config default)")
	cmd.Flags().IntVarP(&scrapeSources, "sources", "s", 0, "limit the number of sources (0 = all)")
	cmd.Flags().IntVarP(&scrapeArticles, "articles", "a", 0, "max articles per source (0 = no extra cap below the fixed 15-link scan)")
	cmd.Flags().StringVar(&scrapeRegion, "region", "", "only sources from this region")
	cmd.Flags().StringVar(&scrapeCategory, "category", "", "only sources with this category")
	cmd.Flags().StringVar(&scrapeCountry, "country", "", "only sources from this country")
	cmd.Flags().StringVar(&scrapeAPIKey, "openai-key", "", "LLM API key (enables per-article summaries)")
	cmd.Flags().StringVar(&scrapeMongoURI, "mongo-uri", "", "also persist articles to this MongoDB URI")
	cmd.Flags().BoolVar(&scrapeSummarize, "summarize", false, "summarize each article with the LLM as it is scraped")
	cmd.Flags().StringVar(&scrapeDelay, "delay", "", "minimum delay between article fetches (e.g. 1.5s)")
	cmd.Flags().StringVar(&scrapeTimeout, "timeout", "", "per-request socket timeout (e.g. 15s)")

	return cmd
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyScrapeOverrides(cfg)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := setupLogger(&cfg.Logging)

	filter := sources.Filter{
		Region:     cfg.Scraper.Region,
		Category:   cfg.Scraper.Category,
		Country:    cfg.Scraper.Country,
		MaxSources: cfg.Scraper.MaxSources,
	}
	srcs := filter.Apply(sources.Builtin())
	logger.Info("sources selected", "count", len(srcs),
		"region", cfg.Scraper.Region, "category", cfg.Scraper.Category, "country", cfg.Scraper.Country)

	httpFetcher, err := fetcher.NewHTTPFetcher(&cfg.Fetcher, logger)
	if err != nil {
		return fmt.Errorf("create fetcher: %w", err)
	}
	defer httpFetcher.Close()

	store, collectionPath, err := buildStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}
	defer store.Close()

	sc := scraper.New(&cfg.Scraper, srcs, httpFetcher, store, logger)

	if cfg.SummarizationEnabled() {
		llm := cluster.NewLLMClient(cfg.Cluster, logger)
		summarizer, err := cluster.NewSummarizer(llm, outputDir(cfg), logger)
		if err != nil {
			return fmt.Errorf("create summarizer: %w", err)
		}
		sc.OnArticle(summarizer.Process)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, finishing current article...", "signal", sig)
		cancel()
	}()

	start := time.Now()
	articles, err := sc.Run(ctx)
	if err != nil && !errors.Is(err, types.ErrRunCancelled) {
		return fmt.Errorf("scrape run: %w", err)
	}
	elapsed := time.Since(start)
	stats := sc.Stats()

	// Every run ends with an aggregate report: beside the collection file,
	// or at a fixed name under the output directory for the files format.
	r := report.Compute(articles)
	var reportPath string
	var werr error
	if collectionPath != "" {
		reportPath, werr = report.Write(r, collectionPath)
	} else {
		reportPath = filepath.Join(outputDir(cfg), "scraping_report.json")
		werr = report.WriteFile(r, reportPath)
	}
	if werr != nil {
		logger.Error("report write failed", "error", werr)
	} else {
		logger.Info("report written", "path", reportPath)
	}

	fmt.Printf("\nScrape complete in %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("   Sources:   %d processed, %d empty\n", stats.SourcesProcessed, stats.SourcesEmpty)
	fmt.Printf("   Articles:  %d scraped, %d degraded, %d failed\n",
		stats.ArticlesScraped, stats.ArticlesDegraded, stats.ArticlesFailed)
	fmt.Printf("   Output:    %s\n", cfg.Storage.OutputPath)
	if errors.Is(err, types.ErrRunCancelled) {
		fmt.Println("   (run was cancelled; the collection holds every completed source)")
	}
	return nil
}

// buildStore assembles the storage backend(s) per the config. The returned
// path is the collection file when that format is active, used afterwards
// for the aggregate report.
func buildStore(cfg *config.Config, logger *slog.Logger) (storage.Store, string, error) {
	var primary storage.Store
	var collectionPath string

	switch cfg.Storage.Format {
	case "files":
		fs, err := storage.NewFilesStore(outputDir(cfg), logger)
		if err != nil {
			return nil, "", err
		}
		primary = fs
	default:
		cs, err := storage.NewCollectionStore(cfg.Storage.OutputPath, logger)
		if err != nil {
			return nil, "", err
		}
		primary = cs
		collectionPath = cs.Path()
	}

	if cfg.Storage.MongoURI == "" {
		return primary, collectionPath, nil
	}

	ms, err := storage.NewMongoStore(cfg.Storage.MongoURI, cfg.Storage.MongoDB, cfg.Storage.MongoColl, logger)
	if err != nil {
		// Mongo is a secondary sink; keep scraping on the primary.
		logger.Error("mongodb unavailable, continuing without it", "error", err)
		return primary, collectionPath, nil
	}
	return storage.NewMultiStore(logger, primary, ms), collectionPath, nil
}

// outputDir resolves the directory that per-article files and summaries
// live under.
func outputDir(cfg *config.Config) string {
	if cfg.Storage.Format == "files" {
		return cfg.Storage.OutputPath
	}
	return filepath.Dir(cfg.Storage.OutputPath)
}

// applyScrapeOverrides folds the scrape flags into the loaded config.
func applyScrapeOverrides(cfg *config.Config) {
	if scrapeOutput != "" {
		cfg.Storage.OutputPath = scrapeOutput
	}
	if scrapeFormat != "" {
		cfg.Storage.Format = scrapeFormat
	}
	if scrapeRetries >= 0 {
		cfg.Scraper.RetryAttempts = scrapeRetries
	}
	if scrapeSources > 0 {
		cfg.Scraper.MaxSources = scrapeSources
	}
	if scrapeArticles > 0 {
		cfg.Scraper.MaxArticles = scrapeArticles
	}
	if scrapeRegion != "" {
		cfg.Scraper.Region = scrapeRegion
	}
	if scrapeCategory != "" {
		cfg.Scraper.Category = scrapeCategory
	}
	if scrapeCountry != "" {
		cfg.Scraper.Country = scrapeCountry
	}
	if scrapeAPIKey != "" {
		cfg.Cluster.APIKey = scrapeAPIKey
	}
	if scrapeMongoURI != "" {
		cfg.Storage.MongoURI = scrapeMongoURI
	}
	if scrapeSummarize {
		cfg.Scraper.SummarizeArticles = true
	}
	if scrapeDelay != "" {
		if d, err := time.ParseDuration(scrapeDelay); err == nil {
			cfg.Scraper.MinArticleDelay = d
		}
	}
	if scrapeTimeout != "" {
		if d, err := time.ParseDuration(scrapeTimeout); err == nil {
			cfg.Fetcher.RequestTimeout = d
		}
	}
}
