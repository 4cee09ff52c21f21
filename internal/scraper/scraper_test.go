package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/pressworks/newshound/internal/config"
	"github.com/pressworks/newshound/internal/fetcher"
	"github.com/pressworks/newshound/internal/sources"
	"github.com/pressworks/newshound/internal/storage"
	"github.com/pressworks/newshound/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeFetcher serves canned HTML keyed by URL; missing URLs fail.
type fakeFetcher struct {
	pages map[string]string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string, opts fetcher.Options) (*types.Response, error) {
	body, ok := f.pages[url]
	if !ok {
		return nil, &types.FetchError{URL: url, StatusCode: 404}
	}
	return &types.Response{URL: url, FinalURL: url, StatusCode: 200, Body: []byte(body)}, nil
}

func (f *fakeFetcher) Close() error { return nil }

// recordingStore captures every checkpoint's accumulator length.
type recordingStore struct {
	checkpoints [][]*types.ArticleRecord
}

func (s *recordingStore) Name() string { return "recording" }
func (s *recordingStore) Checkpoint(articles []*types.ArticleRecord) error {
	snapshot := make([]*types.ArticleRecord, len(articles))
	copy(snapshot, articles)
	s.checkpoints = append(s.checkpoints, snapshot)
	return nil
}
func (s *recordingStore) Close() error { return nil }

var _ storage.Store = (*recordingStore)(nil)

func testConfig() *config.Scraper {
	return &config.Scraper{
		RetryAttempts:    3,
		SourceRetryBase:  time.Millisecond,
		SourceRetryStep:  time.Millisecond,
		ArticleRetryBase: time.Millisecond,
		ArticleRetryStep: time.Millisecond,
		MinArticleDelay:  time.Millisecond,
		ArticleDelaySpan: time.Millisecond,
	}
}

func testSource(name, homepage string) sources.Descriptor {
	return sources.Descriptor{
		Name:            name,
		URL:             homepage,
		ArticleSelector: "article",
		TitleSelector:   "h1",
		ContentSelector: ".body",
		DateSelector:    "time",
		Category:        sources.CategoryTechnology,
		Region:          sources.RegionNorthAmerica,
		Country:         "usa",
	}
}

func homepage(links ...string) string {
	var s string
	for _, l := range links {
		s += fmt.Sprintf(`<article><a href="%s">x</a></article>`, l)
	}
	return "<html><body>" + s + "</body></html>"
}

func articlePage(title, body string) string {
	return fmt.Sprintf(`<html><body><h1>%s</h1><div class="body"><p>%s</p></div></body></html>`, title, body)
}

// newTestScraper wires a scraper with instant sleeps.
func newTestScraper(cfg *config.Scraper, srcs []sources.Descriptor, f fetcher.Fetcher, store storage.Store) *Scraper {
	s := New(cfg, srcs, f, store, testLogger)
	s.sleep = func(time.Duration) {}
	s.jitter = func() float64 { return 0 }
	return s
}

func TestRunScrapesAndCheckpointsPerSource(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://a.example":   homepage("/1", "/2"),
		"https://a.example/1": articlePage("A1", "alpha one."),
		"https://a.example/2": articlePage("A2", "alpha two."),
		"https://b.example":   homepage("/1"),
		"https://b.example/1": articlePage("B1", "beta one."),
	}}
	store := &recordingStore{}
	srcs := []sources.Descriptor{
		testSource("A", "https://a.example"),
		testSource("B", "https://b.example"),
	}

	s := newTestScraper(testConfig(), srcs, f, store)
	articles, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(articles) != 3 {
		t.Errorf("expected 3 articles, got %d", len(articles))
	}
	// One checkpoint per source plus the final one.
	if len(store.checkpoints) != 3 {
		t.Fatalf("expected 3 checkpoints, got %d", len(store.checkpoints))
	}
	if len(store.checkpoints[0]) != 2 || len(store.checkpoints[1]) != 3 {
		t.Errorf("checkpoint sizes: %d, %d", len(store.checkpoints[0]), len(store.checkpoints[1]))
	}

	stats := s.Stats()
	if stats.SourcesProcessed != 2 || stats.ArticlesScraped != 3 {
		t.Errorf("stats: %+v", stats)
	}
}

func TestRunEmptySourceListPersistsEmptyCollection(t *testing.T) {
	store := &recordingStore{}
	s := newTestScraper(testConfig(), nil, &fakeFetcher{}, store)

	articles, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("expected no articles, got %d", len(articles))
	}
	if len(store.checkpoints) != 1 || len(store.checkpoints[0]) != 0 {
		t.Errorf("expected one empty checkpoint, got %v", store.checkpoints)
	}
}

func TestRunKeepsDegradedRecords(t *testing.T) {
	// The article page has no matching title or content container, so
	// every retry yields sentinels; the record is kept regardless.
	f := &fakeFetcher{pages: map[string]string{
		"https://a.example":   homepage("/1"),
		"https://a.example/1": `<html><body><div id="nothing"></div></body></html>`,
	}}
	store := &recordingStore{}
	s := newTestScraper(testConfig(), []sources.Descriptor{testSource("A", "https://a.example")}, f, store)

	articles, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected the degraded record to be kept, got %d records", len(articles))
	}
	if articles[0].Title != types.TitleNotFound {
		t.Errorf("expected title sentinel, got %q", articles[0].Title)
	}

	stats := s.Stats()
	if stats.ArticlesDegraded != 1 || stats.ArticlesScraped != 0 {
		t.Errorf("stats: %+v", stats)
	}
}

func TestRunCountsFailedArticles(t *testing.T) {
	// The homepage lists a link whose page never fetches.
	f := &fakeFetcher{pages: map[string]string{
		"https://a.example": homepage("/gone"),
	}}
	store := &recordingStore{}
	s := newTestScraper(testConfig(), []sources.Descriptor{testSource("A", "https://a.example")}, f, store)

	articles, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("expected no records, got %d", len(articles))
	}
	if s.Stats().ArticlesFailed != 1 {
		t.Errorf("stats: %+v", s.Stats())
	}
}

func TestRunEmptySourceCountsAsEmpty(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://a.example": "<html><body>no articles here</body></html>",
	}}
	store := &recordingStore{}
	s := newTestScraper(testConfig(), []sources.Descriptor{testSource("A", "https://a.example")}, f, store)

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if s.Stats().SourcesEmpty != 1 {
		t.Errorf("stats: %+v", s.Stats())
	}
}

func TestRunCancellation(t *testing.T) {
	store := &recordingStore{}
	srcs := []sources.Descriptor{testSource("A", "https://a.example")}
	s := newTestScraper(testConfig(), srcs, &fakeFetcher{}, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx)
	if !errors.Is(err, types.ErrRunCancelled) {
		t.Errorf("expected ErrRunCancelled, got %v", err)
	}
	if s.Stats().SourcesProcessed != 0 {
		t.Errorf("no source should have completed: %+v", s.Stats())
	}
}

func TestOnArticleHookOnlyForCompleteRecords(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://a.example":      homepage("/good", "/bad"),
		"https://a.example/good": articlePage("Good", "text."),
		"https://a.example/bad":  `<html><body><div id="nothing"></div></body></html>`,
	}}
	store := &recordingStore{}
	s := newTestScraper(testConfig(), []sources.Descriptor{testSource("A", "https://a.example")}, f, store)

	var hooked []string
	s.OnArticle(func(ctx context.Context, rec *types.ArticleRecord) {
		hooked = append(hooked, rec.Title)
	})

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(hooked) != 1 || hooked[0] != "Good" {
		t.Errorf("hook calls: %v", hooked)
	}
}
