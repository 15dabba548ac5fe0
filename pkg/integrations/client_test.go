package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/updatecenter/pkg/cache"
	"github.com/matzehuels/updatecenter/pkg/httputil"
)

func newTestClient(t *testing.T, opts Options) *Client {
	t.Helper()
	c, err := cache.Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("cache.Open() error: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	if opts.RetryDelay == 0 {
		opts.RetryDelay = time.Millisecond
	}
	return NewClient(c, opts)
}

func TestClientGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got == "" {
			t.Error("User-Agent header missing")
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := newTestClient(t, Options{})

	var resp map[string]string
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status = %q, want ok", resp["status"])
	}
}

func TestClientGetWithHeadersOverridesDefaults(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Get("X-Override")
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client := newTestClient(t, Options{Headers: map[string]string{"X-Override": "default"}})

	var resp map[string]string
	if err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{"X-Override": "overridden"}, &resp); err != nil {
		t.Fatalf("GetWithHeaders() error: %v", err)
	}
	if received != "overridden" {
		t.Errorf("header = %q, want overridden", received)
	}
}

func TestClientGetBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Last-Modified", "Mon, 02 Jan 2006 15:04:05 GMT")
		w.Write([]byte("payload"))
	}))
	defer server.Close()

	client := newTestClient(t, Options{})
	data, header, err := client.GetBytes(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetBytes() error: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("body = %q", data)
	}
	if header.Get("Last-Modified") == "" {
		t.Error("Last-Modified header missing")
	}
}

func TestClientStatusErrors(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		want      error
		retryable bool
	}{
		{"not found", http.StatusNotFound, ErrNotFound, false},
		{"server error", http.StatusInternalServerError, ErrNetwork, true},
		{"rate limited", http.StatusTooManyRequests, ErrNetwork, true},
		{"forbidden", http.StatusForbidden, ErrNetwork, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
			}))
			defer server.Close()

			client := newTestClient(t, Options{})
			var resp map[string]string
			err := client.Get(context.Background(), server.URL, &resp)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Get() error = %v, want %v", err, tt.want)
			}
			if got := httputil.IsRetryable(err); got != tt.retryable {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestNoRedirectClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/target", http.StatusFound)
	}))
	defer server.Close()

	client := newTestClient(t, Options{})
	resp, err := client.Do(context.Background(), NewNoRedirectClient(time.Second), server.URL, nil)
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusFound)
	}
	if got := resp.Header.Get("Location"); got != "/target" {
		t.Errorf("Location = %q, want /target", got)
	}
}

type payload struct {
	Value string `json:"value"`
}

func TestClientCached(t *testing.T) {
	client := newTestClient(t, Options{})
	ctx := context.Background()

	var calls int
	fetch := func(v *payload) func() error {
		return func() error {
			calls++
			v.Value = "fetched"
			return nil
		}
	}

	var first payload
	if err := client.Cached(ctx, cache.KindPOM, "key", false, &first, fetch(&first)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	var second payload
	if err := client.Cached(ctx, cache.KindPOM, "key", false, &second, fetch(&second)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("fetch calls = %d, want 1", calls)
	}
	if second.Value != "fetched" {
		t.Errorf("cached value = %q, want fetched", second.Value)
	}

	var third payload
	if err := client.Cached(ctx, cache.KindPOM, "key", true, &third, fetch(&third)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if calls != 2 {
		t.Errorf("refresh should bypass the cache, calls = %d", calls)
	}
}

func TestClientCachedRetries(t *testing.T) {
	client := newTestClient(t, Options{Attempts: 3})

	var calls atomic.Int32
	var v payload
	err := client.Cached(context.Background(), cache.KindPOM, "retry", false, &v, func() error {
		if calls.Add(1) < 3 {
			return httputil.Retryable(ErrNetwork)
		}
		v.Value = "ok"
		return nil
	})
	if err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestClientCachedFetchError(t *testing.T) {
	client := newTestClient(t, Options{Attempts: 3})

	var calls int
	var v payload
	err := client.Cached(context.Background(), cache.KindPOM, "missing", false, &v, func() error {
		calls++
		return ErrNotFound
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Cached() error = %v, want ErrNotFound", err)
	}
	if calls != 1 {
		t.Errorf("non-retryable errors should not retry, calls = %d", calls)
	}

	ok, _ := client.Cache().Get(context.Background(), cache.KindPOM, "missing", &v)
	if ok {
		t.Error("failed fetch should not be cached")
	}
}

func TestJoinURL(t *testing.T) {
	tests := []struct{ base, path, want string }{
		{"https://repo.example/releases/", "a/b", "https://repo.example/releases/a/b"},
		{"https://repo.example/releases", "/a/b", "https://repo.example/releases/a/b"},
	}
	for _, tt := range tests {
		if got := JoinURL(tt.base, tt.path); got != tt.want {
			t.Errorf("JoinURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}
