package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pressworks/newshound/internal/cluster"
	"github.com/pressworks/newshound/internal/config"
)

var (
	clusterInput    string
	clusterOutput   string
	clusterAPIKey   string
	clusterModel    string
	clusterProvider string
	clusterEndpoint string
)

// clusterCmd creates the "cluster" subcommand.
func clusterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Group a scraped collection into themes via an LLM",
		Long: `Read a previously scraped collection (a JSON array file, or a directory
of per-article JSON files) and ask an LLM to group the articles into
3-7 themes. The result is written as JSON alongside a static HTML report.`,
		RunE: runCluster,
	}

	cmd.Flags().StringVarP(&clusterInput, "input", "i", "./scraped_data/articles.json", "collection file or directory of article JSON files")
	cmd.Flags().StringVarP(&clusterOutput, "output", "o", "", "output JSON path (default: clustered_articles.json beside the input)")
	cmd.Flags().StringVar(&clusterAPIKey, "openai-key", "", "LLM API key (overrides config and NEWSHOUND_CLUSTER_API_KEY)")
	cmd.Flags().StringVar(&clusterModel, "model", "", "model name")
	cmd.Flags().StringVar(&clusterProvider, "llm", "", "LLM provider: openai, ollama, custom")
	cmd.Flags().StringVar(&clusterEndpoint, "endpoint", "", "API endpoint base URL")

	return cmd
}

func runCluster(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if clusterAPIKey != "" {
		cfg.Cluster.APIKey = clusterAPIKey
	}
	if clusterModel != "" {
		cfg.Cluster.Model = clusterModel
	}
	if clusterProvider != "" {
		cfg.Cluster.Provider = clusterProvider
	}
	if clusterEndpoint != "" {
		cfg.Cluster.Endpoint = clusterEndpoint
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := setupLogger(&cfg.Logging)

	articles, err := cluster.LoadArticles(clusterInput, logger)
	if err != nil {
		return fmt.Errorf("load articles: %w", err)
	}
	if len(articles) == 0 {
		return fmt.Errorf("no articles found in %s", clusterInput)
	}
	logger.Info("articles loaded", "count", len(articles), "input", clusterInput)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	llm := cluster.NewLLMClient(cfg.Cluster, logger)
	clusterer := cluster.NewClusterer(llm, logger)

	clustered, err := clusterer.Cluster(ctx, articles)
	if err != nil {
		return fmt.Errorf("cluster articles: %w", err)
	}

	jsonPath := clusterOutput
	if jsonPath == "" {
		jsonPath = deriveThemesPath(clusterInput)
	}
	if err := cluster.WriteJSON(clustered, jsonPath); err != nil {
		return err
	}

	htmlPath := strings.TrimSuffix(jsonPath, filepath.Ext(jsonPath)) + ".html"
	if err := cluster.WriteHTML(clustered, htmlPath); err != nil {
		return err
	}

	fmt.Printf("Clustered %d articles into %d themes\n", clustered.Metadata.TotalArticles, len(clustered.Themes))
	fmt.Printf("   JSON:  %s\n", jsonPath)
	fmt.Printf("   HTML:  %s\n", htmlPath)
	return nil
}

// deriveThemesPath places the clustering output next to its input: a
// sibling clustered_articles.json for a collection file, or inside the
// directory when the input is one.
func deriveThemesPath(input string) string {
	if info, err := os.Stat(input); err == nil && info.IsDir() {
		return filepath.Join(input, "clustered_articles.json")
	}
	return filepath.Join(filepath.Dir(input), "clustered_articles.json")
}
