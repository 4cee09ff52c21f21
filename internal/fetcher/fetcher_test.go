package fetcher

import (
	"compress/gzip"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/pressworks/newshound/internal/config"
	"github.com/pressworks/newshound/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func testFetcher(t *testing.T) *HTTPFetcher {
	t.Helper()
	cfg := config.DefaultConfig()
	f, err := NewHTTPFetcher(&cfg.Fetcher, testLogger)
	if err != nil {
		t.Fatalf("create fetcher: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	f := testFetcher(t)
	resp, err := f.Fetch(context.Background(), srv.URL, Options{})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if resp.StatusCode != 200 || !resp.IsSuccess() {
		t.Errorf("status: %d", resp.StatusCode)
	}
	if string(resp.Body) != "<html><body>hello</body></html>" {
		t.Errorf("body: %q", resp.Body)
	}
}

func TestFetchSendsLocaleAndRefererHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := testFetcher(t)
	_, err := f.Fetch(context.Background(), srv.URL, Options{Country: "japan", Referer: "https://ref.example/"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if got.Get("Accept-Language") != "ja-JP,ja;q=0.9,en;q=0.8" {
		t.Errorf("Accept-Language: %q", got.Get("Accept-Language"))
	}
	if got.Get("Referer") != "https://ref.example/" {
		t.Errorf("Referer: %q", got.Get("Referer"))
	}
	if got.Get("User-Agent") == "" {
		t.Error("User-Agent missing")
	}
	if got.Get("DNT") != "1" || got.Get("Upgrade-Insecure-Requests") != "1" {
		t.Error("browser-mimicking headers missing")
	}
}

func TestFetchGzipDecompression(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte("<html>compressed</html>"))
		gz.Close()
	}))
	defer srv.Close()

	f := testFetcher(t)
	resp, err := f.Fetch(context.Background(), srv.URL, Options{})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(resp.Body) != "<html>compressed</html>" {
		t.Errorf("body not decompressed: %q", resp.Body)
	}
}

func TestFetch404NotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f := testFetcher(t)
	_, err := f.Fetch(context.Background(), srv.URL, Options{})

	var ferr *types.FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if ferr.StatusCode != 404 || ferr.Retryable {
		t.Errorf("404 must not be retryable: %+v", ferr)
	}
}

func TestFetch500Retryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := testFetcher(t)
	_, err := f.Fetch(context.Background(), srv.URL, Options{})

	var ferr *types.FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if !ferr.Retryable {
		t.Error("500 must be retryable")
	}
}

func TestFetch429CarriesRetryAfter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := testFetcher(t)
	_, err := f.Fetch(context.Background(), srv.URL, Options{})

	var ferr *types.FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if !ferr.Retryable || ferr.RetryAfter != 7*time.Second {
		t.Errorf("429: %+v", ferr)
	}
}

func TestFetchEmptyBodyRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := testFetcher(t)
	_, err := f.Fetch(context.Background(), srv.URL, Options{})

	var ferr *types.FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if !errors.Is(err, types.ErrEmptyBody) || !ferr.Retryable {
		t.Errorf("empty body: %+v", ferr)
	}
}

func TestFetchCancelledContextNotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	f := testFetcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, srv.URL, Options{})
	var ferr *types.FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if ferr.Retryable {
		t.Error("cancellation must not be retryable")
	}
}

func TestParseRetryAfter(t *testing.T) {
	cases := map[string]time.Duration{
		"":    5 * time.Second,
		"10":  10 * time.Second,
		"999": 120 * time.Second,
		"bad": 5 * time.Second,
	}
	for in, want := range cases {
		if got := parseRetryAfter(in); got != want {
			t.Errorf("parseRetryAfter(%q): expected %s, got %s", in, want, got)
		}
	}
}

func TestRandomUserAgentFromPool(t *testing.T) {
	f := testFetcher(t)
	pool := make(map[string]bool)
	for _, ua := range f.userAgents {
		pool[ua] = true
	}
	for i := 0; i < 20; i++ {
		if !pool[f.randomUserAgent()] {
			t.Fatal("user agent outside the configured pool")
		}
	}
}
