// Package report derives aggregate statistics from a persisted article
// collection. Reports are recomputed from scratch on demand; running the
// computation twice over the same input yields identical output except
// for the generated_at timestamp.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressworks/newshound/internal/sources"
	"github.com/pressworks/newshound/internal/types"
)

// Report is the aggregate view over one article collection.
type Report struct {
	TotalArticles        int            `json:"total_articles"`
	BySource             map[string]int `json:"by_source"`
	ByRegion             map[string]int `json:"by_region"`
	ByCountry            map[string]int `json:"by_country"`
	ByCategory           map[string]int `json:"by_category"`
	ByLanguage           map[string]int `json:"by_language"`
	AverageContentLength float64        `json:"average_content_length"`
	GeneratedAt          string         `json:"generated_at"`
}

// Compute builds a report from the given collection. Category and language
// counts are restricted to their fixed known sets; regions likewise.
// An empty collection yields zero counts and a zero mean, never a
// division by zero.
func Compute(articles []*types.ArticleRecord) *Report {
	r := &Report{
		TotalArticles: len(articles),
		BySource:      make(map[string]int),
		ByRegion: map[string]int{
			sources.RegionNorthAmerica: 0,
			sources.RegionEurope:       0,
			sources.RegionAsia:         0,
		},
		ByCountry:   make(map[string]int),
		ByCategory:  make(map[string]int, len(sources.Categories)),
		ByLanguage:  make(map[string]int, len(sources.Languages)),
		GeneratedAt: time.Now().Format(time.RFC3339),
	}
	for _, c := range sources.Categories {
		r.ByCategory[c] = 0
	}
	for _, l := range sources.Languages {
		r.ByLanguage[l] = 0
	}

	var totalContentLength int
	for _, a := range articles {
		r.BySource[a.Source]++

		if _, known := r.ByRegion[a.Region]; known {
			r.ByRegion[a.Region]++
		}
		if a.Country != "" {
			r.ByCountry[a.Country]++
		}
		if _, known := r.ByCategory[a.Category]; known {
			r.ByCategory[a.Category]++
		}
		if _, known := r.ByLanguage[a.Language]; known {
			r.ByLanguage[a.Language]++
		}

		totalContentLength += a.ContentLength
	}

	if len(articles) > 0 {
		r.AverageContentLength = float64(totalContentLength) / float64(len(articles))
	}

	return r
}

// DerivePath maps a collection path to its sibling report path:
// articles.json becomes articles_report.json.
func DerivePath(collectionPath string) string {
	ext := filepath.Ext(collectionPath)
	if ext == ".json" {
		return strings.TrimSuffix(collectionPath, ext) + "_report" + ext
	}
	return collectionPath + "_report.json"
}

// Write serializes the report next to the collection it was derived from
// and returns the report path.
func Write(r *Report, collectionPath string) (string, error) {
	path := DerivePath(collectionPath)
	if err := WriteFile(r, path); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFile serializes the report to an explicit path. Used by the
// per-article-files format, whose report lives at a fixed name under the
// output directory rather than beside a collection file.
func WriteFile(r *Report, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &types.StorageError{Backend: "report", Err: err}
	}
	return nil
}

// Load reads a persisted article collection: a JSON array file, or a
// directory of per-article JSON files (an articles/ subdirectory is used
// when present). Malformed per-article files are skipped.
func Load(collectionPath string) ([]*types.ArticleRecord, error) {
	info, err := os.Stat(collectionPath)
	if err != nil {
		return nil, fmt.Errorf("stat collection: %w", err)
	}
	if info.IsDir() {
		return loadDir(collectionPath)
	}

	data, err := os.ReadFile(collectionPath)
	if err != nil {
		return nil, fmt.Errorf("read collection: %w", err)
	}
	var articles []*types.ArticleRecord
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	return articles, nil
}

func loadDir(path string) ([]*types.ArticleRecord, error) {
	dir := path
	if sub := filepath.Join(path, "articles"); isDir(sub) {
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
			continue
		}
		var rec types.ArticleRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		articles = append(articles, &rec)
	}
	return articles, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
