package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pressworks/newshound/internal/report"
)

var reportInput string

// reportCmd creates the "report" subcommand.
func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Recompute the aggregate report for a scraped collection",
		Long: `Recompute the aggregate report for a scraped collection: either a JSON
array file or a per-article-files output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			articles, err := report.Load(reportInput)
			if err != nil {
				return fmt.Errorf("load collection: %w", err)
			}

			r := report.Compute(articles)

			var path string
			if info, serr := os.Stat(reportInput); serr == nil && info.IsDir() {
				path = filepath.Join(reportInput, "scraping_report.json")
				err = report.WriteFile(r, path)
			} else {
				path, err = report.Write(r, reportInput)
			}
			if err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			fmt.Printf("Report written to %s\n", path)
			fmt.Printf("   Articles:        %d\n", r.TotalArticles)
			fmt.Printf("   Sources:         %d\n", len(r.BySource))
			fmt.Printf("   Avg content len: %.1f\n", r.AverageContentLength)
			return nil
		},
	}

	cmd.Flags().StringVarP(&reportInput, "input", "i", "./scraped_data/articles.json", "collection file to report on")
	return cmd
}
