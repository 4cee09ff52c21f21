package storage

import (
	"github.com/pressworks/newshound/internal/types"
)

// Store persists the run's article accumulator. Checkpoint receives the
// FULL accumulator after each source finishes; implementations decide
// whether that means overwrite (collection snapshot) or append-only
// (per-article files, database inserts).
type Store interface {
	// Checkpoint persists the current state of the accumulator.
	Checkpoint(articles []*types.ArticleRecord) error

	// Close flushes pending writes and releases resources.
	Close() error

	// Name returns the backend identifier.
	Name() string
}
