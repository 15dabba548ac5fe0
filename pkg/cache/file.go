package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/observability"
)

const tempSuffix = ".tmp"

// Store is a file-per-entry cache in a single directory. It is safe for
// concurrent use by multiple goroutines and multiple processes.
type Store struct {
	dir    string
	logger *log.Logger
	now    func() time.Time
}

// Open returns a Store rooted at dir, creating it if needed. An empty dir
// selects [DefaultDir].
func Open(dir string, logger *log.Logger) (*Store, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "locate cache directory")
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "create cache directory %s", dir)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{dir: dir, logger: logger, now: time.Now}, nil
}

// Dir returns the cache directory.
func (s *Store) Dir() string { return s.dir }

// Get implements [Cache].
func (s *Store) Get(ctx context.Context, kind Kind, key string, v any) (bool, error) {
	data, err := os.ReadFile(s.path(kind, key))
	if os.IsNotExist(err) {
		observability.Cache().OnCacheMiss(ctx, kind.Name)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return load(ctx, s.logger, kind, key, data, v, s.now()), nil
}

// Put implements [Cache]. The entry is written to a temporary file in the
// same directory, synced and renamed over the destination.
func (s *Store) Put(ctx context.Context, kind Kind, key string, v any) error {
	data, err := encodeEntry(kind, key, v, s.now())
	if err != nil {
		return err
	}

	path := s.path(kind, key)
	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".*"+tempSuffix)
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}

	observability.Cache().OnCacheSet(ctx, kind.Name, len(data))
	return nil
}

// Invalidate implements [Cache].
func (s *Store) Invalidate(_ context.Context, kind Kind, key string) error {
	err := os.Remove(s.path(kind, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes every entry and every leftover temporary file.
func (s *Store) Clear(_ context.Context) (int, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, f := range files {
		if f.IsDir() || !isCacheFile(f.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, f.Name())); err != nil && !os.IsNotExist(err) {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// Close does nothing for the file store.
func (s *Store) Close() error { return nil }

func (s *Store) path(kind Kind, key string) string {
	return filepath.Join(s.dir, fileName(kind, key))
}

func isCacheFile(name string) bool {
	if strings.HasSuffix(name, tempSuffix) {
		return true
	}
	for _, k := range Kinds {
		if strings.HasSuffix(name, k.Suffix) {
			return true
		}
	}
	return false
}

var _ Cache = (*Store)(nil)
