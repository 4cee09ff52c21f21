package extract

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pressworks/newshound/internal/fetcher"
	"github.com/pressworks/newshound/internal/sources"
	"github.com/pressworks/newshound/internal/types"
)

// Generic fallback tiers, tuned for common article markup. The
// source-specific selector is always tried first; these only run when it
// misses.
var (
	genericTitle   = CSS("h1, .headline, .article-title, .title")
	genericContent = CSS(".article-body, .content, .entry-content, article, [itemprop=\"articleBody\"]")
	genericDate    = CSS("time, .date, .timestamp, [itemprop=\"datePublished\"]")
	genericAuthor  = CSS(".author, [rel=\"author\"], [itemprop=\"author\"], .byline")
	metaDesc       = CSSAttr("meta[name=\"description\"]", "content")
)

// ArticleExtractor fetches one article page and normalizes its fields into
// an ArticleRecord.
type ArticleExtractor struct {
	fetcher fetcher.Fetcher
	logger  *slog.Logger
}

// NewArticleExtractor creates an ArticleExtractor on top of the given
// fetcher.
func NewArticleExtractor(f fetcher.Fetcher, logger *slog.Logger) *ArticleExtractor {
	return &ArticleExtractor{
		fetcher: f,
		logger:  logger.With("component", "article_extractor"),
	}
}

// Extract fetches url and builds a normalized record. Fields that no
// selector tier can locate carry sentinel values rather than being absent;
// callers decide whether a sentinel-bearing record is worth retrying.
// A fetch or parse failure returns no record at all.
func (e *ArticleExtractor) Extract(ctx context.Context, url string, src sources.Descriptor) (*types.ArticleRecord, error) {
	resp, err := e.fetcher.Fetch(ctx, url, fetcher.Options{
		Country: src.Country,
		Referer: src.URL,
	})
	if err != nil {
		e.logger.Error("article fetch failed", "url", url, "error", err)
		return nil, err
	}

	doc, err := resp.Document()
	if err != nil {
		e.logger.Error("article parse failed", "url", url, "error", err)
		return nil, &types.ParseError{URL: url, Err: err}
	}

	rec := types.NewArticleRecord(src.Name, src.Category, src.Region, src.Country, url)
	rec.Language = sources.LanguageTag(src.Country)

	rec.Title = firstOr(Chain{CSS(src.TitleSelector), genericTitle}.Text(doc), types.TitleNotFound)
	rec.SetContent(extractContent(doc, src))
	rec.Date = firstOr(Chain{CSS(src.DateSelector), genericDate}.Text(doc), time.Now().Format("2006-01-02"))
	rec.Author = firstOr(Chain{genericAuthor}.Text(doc), types.AuthorNotFound)
	rec.Description = metaDesc.Text(doc)

	e.logger.Info("article scraped", "url", url, "title", rec.Title, "content_length", rec.ContentLength)
	return rec, nil
}

// extractContent locates the content container and assembles the body
// text: paragraph texts joined with single spaces, falling back to the
// container's raw text when it has no paragraphs, and to the sentinel when
// no container matches at all.
func extractContent(doc *goquery.Document, src sources.Descriptor) string {
	container := Chain{CSS(src.ContentSelector), genericContent}.Container(doc)
	if container == nil {
		return types.ContentNotFound
	}

	var parts []string
	container.Find("p").Each(func(_ int, p *goquery.Selection) {
		if t := strings.TrimSpace(p.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}

	if t := strings.TrimSpace(container.Text()); t != "" {
		return t
	}
	return types.ContentNotFound
}

func firstOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
