package fetcher

import (
	"context"

	"github.com/pressworks/newshound/internal/types"
)

// Options carries the per-request inputs for header construction.
type Options struct {
	// Country selects the Accept-Language header via the locale table.
	Country string

	// Referer is sent as the Referer header. Homepage fetches use a search
	// engine referer; article fetches use the source homepage.
	Referer string
}

// Fetcher retrieves one page. Implementations never retry internally;
// retry policy belongs to the caller.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts Options) (*types.Response, error)
	Close() error
}
