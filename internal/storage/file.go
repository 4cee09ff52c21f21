package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pressworks/newshound/internal/types"
)

// --- Collection store ---

// CollectionStore persists the accumulator as one pretty-printed JSON
// array, rewritten in full at every checkpoint. Writes go to a temp file
// and are renamed into place so a crash mid-write never corrupts the
// previous snapshot.
type CollectionStore struct {
	path   string
	logger *slog.Logger
}

// NewCollectionStore creates a collection store writing to outputPath.
func NewCollectionStore(outputPath string, logger *slog.Logger) (*CollectionStore, error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &CollectionStore{
		path:   outputPath,
		logger: logger.With("component", "collection_store"),
	}, nil
}

func (s *CollectionStore) Name() string { return "collection" }

// Path returns the collection file path.
func (s *CollectionStore) Path() string { return s.path }

func (s *CollectionStore) Checkpoint(articles []*types.ArticleRecord) error {
	tmp := s.path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("create snapshot file: %w", err)}
	}

	// Marshal an empty accumulator as [], not null.
	if articles == nil {
		articles = []*types.ArticleRecord{}
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(articles); err != nil {
		f.Close()
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("encode snapshot: %w", err)}
	}
	if err := f.Close(); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: err}
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("rename snapshot: %w", err)}
	}

	s.logger.Info("snapshot written", "path", s.path, "articles", len(articles))
	return nil
}

func (s *CollectionStore) Close() error { return nil }

// --- Per-article files store ---

// FilesStore writes each article to its own JSON file under an articles/
// subdirectory. Checkpoints only write records not yet on disk, so a
// checkpoint is cheap no matter how large the accumulator grows.
type FilesStore struct {
	dir     string
	written int
	logger  *slog.Logger
}

// NewFilesStore creates a per-article-file store rooted at outputDir.
func NewFilesStore(outputDir string, logger *slog.Logger) (*FilesStore, error) {
	dir := filepath.Join(outputDir, "articles")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create articles dir: %w", err)
	}
	return &FilesStore{
		dir:    dir,
		logger: logger.With("component", "files_store"),
	}, nil
}

func (s *FilesStore) Name() string { return "files" }

// Dir returns the directory articles are written to.
func (s *FilesStore) Dir() string { return s.dir }

func (s *FilesStore) Checkpoint(articles []*types.ArticleRecord) error {
	for ; s.written < len(articles); s.written++ {
		rec := articles[s.written]
		path := filepath.Join(s.dir, SafeFilename(rec.Title)+".json")

		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return &types.StorageError{Backend: s.Name(), Err: err}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("write article file: %w", err)}
		}
		s.logger.Debug("article written", "path", path)
	}
	return nil
}

func (s *FilesStore) Close() error {
	s.logger.Info("files store closed", "articles", s.written, "dir", s.dir)
	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^\w\s-]`)
var filenameSeparators = regexp.MustCompile(`[-\s]+`)

// SafeFilename derives a filesystem-safe slug from an article title,
// capped at 50 characters, with a timestamp suffix to avoid collisions.
func SafeFilename(title string) string {
	slug := unsafeFilenameChars.ReplaceAllString(title, "")
	slug = strings.ToLower(strings.TrimSpace(slug))
	slug = filenameSeparators.ReplaceAllString(slug, "-")
	if len(slug) > 50 {
		slug = slug[:50]
	}
	if slug == "" {
		slug = "article"
	}
	return slug + "-" + time.Now().Format("20060102150405")
}

// --- Fan-out ---

// MultiStore checkpoints to several backends. A failing backend is logged
// and skipped; persistence is best-effort and never aborts the run.
type MultiStore struct {
	backends []Store
	logger   *slog.Logger
}

// NewMultiStore creates a store that fans out to the given backends.
func NewMultiStore(logger *slog.Logger, backends ...Store) *MultiStore {
	return &MultiStore{
		backends: backends,
		logger:   logger.With("component", "multi_store"),
	}
}

func (s *MultiStore) Name() string { return "multi" }

func (s *MultiStore) Checkpoint(articles []*types.ArticleRecord) error {
	for _, b := range s.backends {
		if err := b.Checkpoint(articles); err != nil {
			s.logger.Error("checkpoint failed", "backend", b.Name(), "error", err)
		}
	}
	return nil
}

func (s *MultiStore) Close() error {
	var firstErr error
	for _, b := range s.backends {
		if err := b.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
