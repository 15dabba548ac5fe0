// Package cache provides the durable lookup cache shared by all generator
// runs: wiki pages, expanded short links, project descriptors, resolved
// artifacts and repository listings.
//
// Every entry is stored in a versioned JSON envelope together with its kind,
// key and the time it was written. Freshness is evaluated on read from the
// kind's TTL; expired entries are reported as misses but are never deleted,
// so a later Put simply replaces them. Entries that cannot be decoded are
// treated as misses as well and reported through [observability.CacheHooks].
//
// Three implementations exist:
//   - [Store]: one file per entry in a directory, written atomically
//   - [Redis]: a shared Redis server, same envelope
//   - [Null]: stores nothing, used when caching is disabled
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Kind describes one family of cache entries.
type Kind struct {
	Name   string
	Suffix string
	TTL    time.Duration // zero means entries never expire
}

// Entry kinds.
var (
	KindPage     = Kind{Name: "page", Suffix: ".page", TTL: 24 * time.Hour}
	KindLink     = Kind{Name: "link", Suffix: ".link"}
	KindPOM      = Kind{Name: "pom", Suffix: ".pom"}
	KindArtifact = Kind{Name: "artifact", Suffix: ".artifact"}
	KindVersions = Kind{Name: "versions", Suffix: ".versions", TTL: time.Hour}
)

// Kinds lists every known kind.
var Kinds = []Kind{KindPage, KindLink, KindPOM, KindArtifact, KindVersions}

// Expired reports whether an entry written at storedAt is stale at now.
func (k Kind) Expired(storedAt, now time.Time) bool {
	return k.TTL > 0 && now.Sub(storedAt) > k.TTL
}

// Cache is a typed key-value cache keyed by kind and key.
type Cache interface {
	// Get decodes a fresh entry into v. It returns false, nil on a miss,
	// an expired entry or a corrupt entry.
	Get(ctx context.Context, kind Kind, key string, v any) (bool, error)

	// Put stores v. Concurrent readers see either the old or the new entry.
	Put(ctx context.Context, kind Kind, key string, v any) error

	// Invalidate removes an entry. Removing a missing entry is not an error.
	Invalidate(ctx context.Context, kind Kind, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop all their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// DefaultDir returns $XDG_CACHE_HOME/updatecenter, or ~/.cache/updatecenter.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "updatecenter"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "updatecenter"), nil
}
