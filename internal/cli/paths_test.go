package cli

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/updatecenter/internal/config"
)

func TestCacheDirDefault(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir(config.Default())
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(customCache, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirConfigured(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Dir = "/srv/updatecenter/cache"

	dir, err := cacheDir(cfg)
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != cfg.Cache.Dir {
		t.Errorf("cacheDir() = %q, want %q", dir, cfg.Cache.Dir)
	}
}
