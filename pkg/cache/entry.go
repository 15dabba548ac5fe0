package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/observability"
)

const (
	entryFormat  = "updatecenter-cache"
	entryVersion = 1
)

// entry is the on-disk and on-wire envelope.
type entry struct {
	Format   string          `json:"format"`
	Version  int             `json:"version"`
	Kind     string          `json:"kind"`
	Key      string          `json:"key"`
	StoredAt time.Time       `json:"stored_at"`
	Payload  json.RawMessage `json:"payload"`
}

func encodeEntry(kind Kind, key string, v any, now time.Time) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s entry %q", kind.Name, key)
	}
	return json.Marshal(entry{
		Format:   entryFormat,
		Version:  entryVersion,
		Kind:     kind.Name,
		Key:      key,
		StoredAt: now.UTC(),
		Payload:  payload,
	})
}

func decodeEntry(data []byte, kind Kind, key string) (*entry, error) {
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCacheCorruption, err, "unparseable entry")
	}
	switch {
	case e.Format != entryFormat:
		return nil, errors.New(errors.ErrCodeCacheCorruption, "unknown format %q", e.Format)
	case e.Version != entryVersion:
		return nil, errors.New(errors.ErrCodeCacheCorruption, "unsupported version %d", e.Version)
	case e.Kind != kind.Name:
		return nil, errors.New(errors.ErrCodeCacheCorruption, "kind %q, want %q", e.Kind, kind.Name)
	case e.Key != key:
		return nil, errors.New(errors.ErrCodeCacheCorruption, "key %q, want %q", e.Key, key)
	case len(e.Payload) == 0:
		return nil, errors.New(errors.ErrCodeCacheCorruption, "empty payload")
	}
	return &e, nil
}

// load turns raw entry bytes into a hit or a miss, reporting every outcome
// to the cache hooks. Corruption is logged and never returned.
func load(ctx context.Context, logger *log.Logger, kind Kind, key string, data []byte, v any, now time.Time) bool {
	hooks := observability.Cache()

	e, err := decodeEntry(data, kind, key)
	if err == nil {
		if kind.Expired(e.StoredAt, now) {
			logger.Debug("cache entry expired", "kind", kind.Name, "key", key, "stored", e.StoredAt)
			hooks.OnCacheMiss(ctx, kind.Name)
			return false
		}
		if uerr := json.Unmarshal(e.Payload, v); uerr != nil {
			err = errors.Wrap(errors.ErrCodeCacheCorruption, uerr, "decode payload")
		}
	}
	if err != nil {
		logger.Warn("ignoring corrupt cache entry", "kind", kind.Name, "key", key, "err", err)
		hooks.OnCacheCorrupt(ctx, kind.Name, key)
		return false
	}

	hooks.OnCacheHit(ctx, kind.Name)
	return true
}
