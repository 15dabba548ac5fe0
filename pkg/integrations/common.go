package integrations

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/updatecenter/pkg/buildinfo"
)

// DefaultTimeout is the per-request timeout when none is configured.
const DefaultTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when a remote resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with the given timeout.
// A non-positive timeout selects [DefaultTimeout].
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// NewNoRedirectClient is like [NewHTTPClient] but returns redirect responses
// to the caller instead of following them.
func NewNoRedirectClient(timeout time.Duration) *http.Client {
	c := NewHTTPClient(timeout)
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return c
}

// DefaultHeaders returns the headers sent with every request.
func DefaultHeaders() map[string]string {
	return map[string]string{"User-Agent": buildinfo.UserAgent()}
}

// JoinURL joins a base URL ending in '/' with a relative path.
func JoinURL(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
