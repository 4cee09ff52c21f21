package types

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for common failure modes.
var (
	ErrNoLinks      = errors.New("no article links found")
	ErrMaxRetries   = errors.New("max retries exceeded")
	ErrEmptyBody    = errors.New("empty response body")
	ErrInvalidURL   = errors.New("invalid URL")
	ErrNoAPIKey     = errors.New("no API key configured")
	ErrNoThemes     = errors.New("clustering response has no themes")
	ErrRunCancelled = errors.New("run cancelled")
)

// FetchError wraps errors that occur while fetching a page.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
	Retryable  bool
	RetryAfter time.Duration // populated from Retry-After header on HTTP 429
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) IsRetryable() bool { return e.Retryable }

// ParseError wraps errors that occur while parsing a page.
type ParseError struct {
	URL      string
	Selector string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error for %s (selector=%q): %v", e.URL, e.Selector, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StorageError wraps errors from persistence backends.
type StorageError struct {
	Backend string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s): %v", e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ClusterError wraps failures of the LLM clustering stage. Malformed model
// output is total failure for the stage, never partial success.
type ClusterError struct {
	Stage string
	Err   error
}

func (e *ClusterError) Error() string {
	return fmt.Sprintf("clustering error at stage %q: %v", e.Stage, e.Err)
}

func (e *ClusterError) Unwrap() error { return e.Err }
