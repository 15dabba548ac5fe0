package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"time"

	"github.com/matzehuels/updatecenter/pkg/cache"
	"github.com/matzehuels/updatecenter/pkg/httputil"
	"github.com/matzehuels/updatecenter/pkg/observability"
)

// Options configures a [Client].
type Options struct {
	Timeout    time.Duration     // per request, default [DefaultTimeout]
	Attempts   int               // 1 disables retries
	RetryDelay time.Duration     // initial backoff, doubled per retry
	Headers    map[string]string // merged over [DefaultHeaders]
}

// Client provides shared HTTP functionality for the remote clients.
// It handles caching, retry logic, and common request headers.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	headers map[string]string

	attempts int
	delay    time.Duration
}

// NewClient creates a Client. A nil cache disables caching.
func NewClient(c cache.Cache, opts Options) *Client {
	if c == nil {
		c = cache.NewNull()
	}
	headers := DefaultHeaders()
	maps.Copy(headers, opts.Headers)
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = httputil.DefaultDelay
	}
	return &Client{
		http:     NewHTTPClient(opts.Timeout),
		cache:    c,
		headers:  headers,
		attempts: max(opts.Attempts, 1),
		delay:    opts.RetryDelay,
	}
}

// Cache returns the client's cache.
func (c *Client) Cache() cache.Cache { return c.cache }

// Cached retrieves a value from cache or executes fetch and caches the result.
// If refresh is true, the cache is bypassed and fetch is always called.
// The fetch function should populate v; on success, v is stored in the cache.
func (c *Client) Cached(ctx context.Context, kind cache.Kind, key string, refresh bool, v any, fetch func() error) error {
	if !refresh {
		if ok, _ := c.cache.Get(ctx, kind, key, v); ok {
			return nil
		}
	}
	if err := httputil.Retry(ctx, c.attempts, c.delay, fetch); err != nil {
		return err
	}
	_ = c.cache.Put(ctx, kind, key, v)
	return nil
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	resp, err := c.Do(ctx, c.http, url, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// GetBytes performs an HTTP GET request and returns the body and headers.
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, http.Header, error) {
	resp, err := c.Do(ctx, c.http, url, nil)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, httputil.Retryable(fmt.Errorf("%w: read %s: %v", ErrNetwork, url, err))
	}
	return data, resp.Header, nil
}

// Do sends a GET through hc and checks the status. Redirect responses are
// passed through when hc does not follow them. The caller closes the body.
func (c *Client) Do(ctx context.Context, hc *http.Client, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := hc.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, httputil.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	return resp, nil
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 400:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500 || code == http.StatusTooManyRequests:
		return httputil.Retryable(fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
