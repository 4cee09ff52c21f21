package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pressworks/newshound/internal/config"
	"github.com/pressworks/newshound/internal/sources"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	// Best effort; a missing .env is not an error.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "newshound",
		Short: "newshound — multi-region news scraper and theme analyzer",
		Long: `newshound scrapes configured news sources across North America, Europe,
and Asia, persists the articles incrementally, and can cluster them into
themes with an LLM.

Commands:
  scrape    Scrape the configured sources and write articles + report
  cluster   Group a scraped collection into themes via an LLM
  report    Recompute the aggregate report for a collection
  sources   List the built-in news sources`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(scrapeCmd())
	rootCmd.AddCommand(clusterCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(sourcesCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// sourcesCmd creates the "sources" subcommand.
func sourcesCmd() *cobra.Command {
	var region, category, country string

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List the built-in news sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := sources.Filter{Region: region, Category: category, Country: country}
			matched := filter.Apply(sources.Builtin())
			if len(matched) == 0 {
				fmt.Println("no sources match the given filters")
				return nil
			}
			for _, s := range matched {
				fmt.Printf("%-20s %-14s %-10s %-12s %s\n", s.Name, s.Region, s.Category, s.Country, s.URL)
			}
			fmt.Printf("\n%d sources\n", len(matched))
			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "filter by region (north_america, europe, asia)")
	cmd.Flags().StringVar(&category, "category", "", "filter by category (technology, business, investing)")
	cmd.Flags().StringVar(&country, "country", "", "filter by country")
	return cmd
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Scraper:\n")
			fmt.Printf("  Retry Attempts:     %d\n", cfg.Scraper.RetryAttempts)
			fmt.Printf("  Source Backoff:     base %s, step %s\n", cfg.Scraper.SourceRetryBase, cfg.Scraper.SourceRetryStep)
			fmt.Printf("  Article Backoff:    base %s, step %s\n", cfg.Scraper.ArticleRetryBase, cfg.Scraper.ArticleRetryStep)
			fmt.Printf("  Article Delay:      %s + up to %s\n", cfg.Scraper.MinArticleDelay, cfg.Scraper.ArticleDelaySpan)
			fmt.Printf("  Max Articles:       %d per source\n", cfg.Scraper.MaxArticles)
			fmt.Printf("\nFetcher:\n")
			fmt.Printf("  Request Timeout:    %s\n", cfg.Fetcher.RequestTimeout)
			fmt.Printf("  Max Body Size:      %d bytes\n", cfg.Fetcher.MaxBodySize)
			fmt.Printf("  User Agents:        %d configured\n", len(cfg.Fetcher.UserAgents))
			fmt.Printf("\nStorage:\n")
			fmt.Printf("  Format:             %s\n", cfg.Storage.Format)
			fmt.Printf("  Output Path:        %s\n", cfg.Storage.OutputPath)
			fmt.Printf("  MongoDB:            %v\n", cfg.Storage.MongoURI != "")
			fmt.Printf("\nCluster:\n")
			fmt.Printf("  Provider:           %s\n", cfg.Cluster.Provider)
			fmt.Printf("  Model:              %s\n", cfg.Cluster.Model)
			fmt.Printf("  API Key:            %v\n", cfg.Cluster.APIKey != "")
			return nil
		},
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("newshound %s\n", config.Version)
		},
	}
}

// setupLogger creates the structured logger per the logging config.
func setupLogger(cfg *config.Logging) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
