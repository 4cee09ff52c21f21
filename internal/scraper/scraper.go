// Package scraper runs the sequential scraping loop: for every configured
// source, discover article links, extract each article, and checkpoint the
// accumulator to storage. One source at a time, one article at a time;
// the only pacing is deliberate sleep between requests.
package scraper

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pressworks/newshound/internal/config"
	"github.com/pressworks/newshound/internal/extract"
	"github.com/pressworks/newshound/internal/fetcher"
	"github.com/pressworks/newshound/internal/retry"
	"github.com/pressworks/newshound/internal/sources"
	"github.com/pressworks/newshound/internal/storage"
	"github.com/pressworks/newshound/internal/types"
)

// ArticleHook is called once per successfully scraped article, after it
// has been appended to the accumulator. Used for optional per-article
// post-processing such as LLM summarization.
type ArticleHook func(ctx context.Context, rec *types.ArticleRecord)

// Stats counts what happened during one run.
type Stats struct {
	SourcesProcessed int
	SourcesEmpty     int
	ArticlesScraped  int
	ArticlesDegraded int
	ArticlesFailed   int
}

// Scraper owns one run: its source list, its accumulator, and the
// collaborators that do the actual work.
type Scraper struct {
	cfg        *config.Scraper
	sources    []sources.Descriptor
	discoverer *extract.LinkDiscoverer
	extractor  *extract.ArticleExtractor
	store      storage.Store
	retrier    *retry.Controller
	logger     *slog.Logger

	onArticle ArticleHook

	// sleep and jitter are replaceable in tests.
	sleep  func(time.Duration)
	jitter func() float64

	stats Stats
}

// New assembles a Scraper over the given source list and storage backend.
func New(cfg *config.Scraper, srcs []sources.Descriptor, f fetcher.Fetcher, store storage.Store, logger *slog.Logger) *Scraper {
	return &Scraper{
		cfg:        cfg,
		sources:    srcs,
		discoverer: extract.NewLinkDiscoverer(f, logger),
		extractor:  extract.NewArticleExtractor(f, logger),
		store:      store,
		retrier:    retry.New(cfg.RetryAttempts, logger),
		logger:     logger.With("component", "scraper"),
		sleep:      time.Sleep,
		jitter:     rand.Float64,
	}
}

// OnArticle registers the per-article hook.
func (s *Scraper) OnArticle(hook ArticleHook) {
	s.onArticle = hook
}

// Stats returns the counters for the completed (or cancelled) run.
func (s *Scraper) Stats() Stats { return s.stats }

// Run processes every source in order and returns the accumulator.
// The accumulator is checkpointed after each source, so cancellation or a
// crash loses at most the in-flight source. Persistence failures are
// logged and never abort the run.
func (s *Scraper) Run(ctx context.Context) ([]*types.ArticleRecord, error) {
	accumulator := make([]*types.ArticleRecord, 0)

	sourceBackoff := retry.Backoff{Base: s.cfg.SourceRetryBase, Step: s.cfg.SourceRetryStep}
	articleBackoff := retry.Backoff{Base: s.cfg.ArticleRetryBase, Step: s.cfg.ArticleRetryStep}

	for _, src := range s.sources {
		if ctx.Err() != nil {
			s.logger.Warn("run cancelled", "completed_sources", s.stats.SourcesProcessed)
			return accumulator, types.ErrRunCancelled
		}

		s.logger.Info("processing source", "source", src.Name, "region", src.Region)

		var links []string
		found := s.retrier.Do(ctx, "discover "+src.Name, sourceBackoff, func(ctx context.Context) (bool, error) {
			ls, err := s.discoverer.Discover(ctx, src, s.cfg.MaxArticles)
			if err != nil {
				return false, err
			}
			if len(ls) == 0 {
				return false, nil
			}
			links = ls
			return true, nil
		})
		if !found {
			s.stats.SourcesEmpty++
		}

		for _, link := range links {
			if ctx.Err() != nil {
				break
			}

			// Politeness delay between article fetches, unrelated to
			// retry backoff.
			s.sleep(s.articleDelay())

			var rec *types.ArticleRecord
			complete := s.retrier.Do(ctx, "extract "+link, articleBackoff, func(ctx context.Context) (bool, error) {
				r, err := s.extractor.Extract(ctx, link, src)
				if err != nil {
					return false, err
				}
				rec = r
				return r.Complete(), nil
			})

			if rec == nil {
				// Every attempt failed before producing a record.
				s.stats.ArticlesFailed++
				continue
			}

			// Degraded records are kept: the sentinel fields mark them
			// for downstream consumers, and a partial record beats
			// silently losing the URL.
			if !complete {
				s.stats.ArticlesDegraded++
				s.logger.Warn("keeping degraded article",
					"url", link, "missing", rec.MissingFields())
			} else {
				s.stats.ArticlesScraped++
			}
			accumulator = append(accumulator, rec)

			if complete && s.onArticle != nil {
				s.onArticle(ctx, rec)
			}
		}

		s.stats.SourcesProcessed++
		s.logger.Info("source complete", "source", src.Name, "total_articles", len(accumulator))

		if err := s.store.Checkpoint(accumulator); err != nil {
			s.logger.Error("checkpoint failed", "source", src.Name, "error", err)
		}
	}

	// Final checkpoint covers the empty-source-list case, where the loop
	// never ran: an empty collection is still persisted.
	if err := s.store.Checkpoint(accumulator); err != nil {
		s.logger.Error("final checkpoint failed", "error", err)
	}

	s.logger.Info("run complete",
		"sources", s.stats.SourcesProcessed,
		"articles", len(accumulator),
		"degraded", s.stats.ArticlesDegraded,
		"failed", s.stats.ArticlesFailed,
	)
	return accumulator, nil
}

// articleDelay returns the randomized politeness delay between article
// fetches within a source (1.5-3.5s at default settings).
func (s *Scraper) articleDelay() time.Duration {
	return s.cfg.MinArticleDelay + time.Duration(s.jitter()*float64(s.cfg.ArticleDelaySpan))
}
