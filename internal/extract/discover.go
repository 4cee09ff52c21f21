package extract

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pressworks/newshound/internal/fetcher"
	"github.com/pressworks/newshound/internal/sources"
	"github.com/pressworks/newshound/internal/types"
)

// maxContainersPerSource bounds how many article containers are considered
// on one homepage.
const maxContainersPerSource = 15

// headlineSelector is the secondary tier of the link fallback chain: a
// headline anchor inside the article container.
const headlineSelector = "h2 a, h3 a, .headline a, .title a"

// homepageReferer is sent with homepage fetches.
const homepageReferer = "https://www.google.com/"

// LinkDiscoverer finds candidate article URLs on a source's homepage.
type LinkDiscoverer struct {
	fetcher fetcher.Fetcher
	logger  *slog.Logger
}

// NewLinkDiscoverer creates a LinkDiscoverer on top of the given fetcher.
func NewLinkDiscoverer(f fetcher.Fetcher, logger *slog.Logger) *LinkDiscoverer {
	return &LinkDiscoverer{
		fetcher: f,
		logger:  logger.With("component", "link_discovery"),
	}
}

// Discover fetches the source homepage and returns a deduplicated,
// order-preserving list of absolute article URLs. maxLinks caps the result
// when > 0; the container scan is always bounded at 15 per source.
// Any fetch or parse failure yields an empty list; retrying is the
// caller's responsibility.
func (d *LinkDiscoverer) Discover(ctx context.Context, src sources.Descriptor, maxLinks int) ([]string, error) {
	resp, err := d.fetcher.Fetch(ctx, src.URL, fetcher.Options{
		Country: src.Country,
		Referer: homepageReferer,
	})
	if err != nil {
		d.logger.Error("homepage fetch failed", "source", src.Name, "error", err)
		return nil, err
	}

	doc, err := resp.Document()
	if err != nil {
		d.logger.Error("homepage parse failed", "source", src.Name, "error", err)
		return nil, &types.ParseError{URL: src.URL, Selector: src.ArticleSelector, Err: err}
	}

	base, err := url.Parse(src.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid homepage URL %q: %w", src.URL, err)
	}

	seen := make(map[string]struct{})
	var links []string

	containers := doc.Find(src.ArticleSelector)
	containers.EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= maxContainersPerSource {
			return false
		}

		href := resolveLink(sel)
		if href == "" {
			return true
		}

		abs := absolutize(href, base)
		if strings.HasSuffix(abs, "#") {
			return true
		}
		if _, dup := seen[abs]; dup {
			return true
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
		return true
	})

	if maxLinks > 0 && len(links) > maxLinks {
		links = links[:maxLinks]
	}

	d.logger.Info("article links found", "source", src.Name, "count", len(links))
	return links, nil
}

// resolveLink applies the ordered link fallback chain to one container:
// first anchor inside it, then a headline anchor, then the container
// itself if it is an anchor. First non-empty href wins.
func resolveLink(sel *goquery.Selection) string {
	if href, ok := sel.Find("a[href]").First().Attr("href"); ok && href != "" {
		return href
	}
	if href, ok := sel.Find(headlineSelector).First().Attr("href"); ok && href != "" {
		return href
	}
	if goquery.NodeName(sel) == "a" {
		if href, ok := sel.Attr("href"); ok && href != "" {
			return href
		}
	}
	return ""
}

// absolutize turns a discovered href into an absolute URL against the
// homepage's scheme and host. Already-absolute URLs pass through.
func absolutize(href string, base *url.URL) string {
	href = strings.TrimSpace(href)
	root := base.Scheme + "://" + base.Host
	switch {
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "/"):
		return root + href
	default:
		return root + "/" + strings.TrimLeft(href, "/")
	}
}
