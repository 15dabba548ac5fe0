package wiki

import (
	"context"
	"time"
)

// PageRef identifies a page by its canonical identifier: a numeric page id
// or a page title.
type PageRef struct {
	ID  string
	URL string
}

// Page is a fetched wiki page together with its raw labels.
type Page struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Content   string    `json:"content"`
	Labels    []string  `json:"labels"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Summary describes a child page listed under the parent page.
type Summary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Service is the remote wiki. Implementations must be safe for concurrent use.
type Service interface {
	// FetchPage fetches a page by numeric id or by title.
	FetchPage(ctx context.Context, idOrTitle string) (*Page, error)
	// FetchLabels lists the raw label names of a page.
	FetchLabels(ctx context.Context, pageID string) ([]string, error)
	// FetchChildren lists all direct children of the page with the given title.
	FetchChildren(ctx context.Context, parentTitle string) ([]Summary, error)
	// Login establishes a session and returns its token. Empty credentials
	// request an anonymous session.
	Login(ctx context.Context, user, password string) (string, error)
	// ResolveRedirect returns the target of a single redirect hop.
	ResolveRedirect(ctx context.Context, token, shortURL string) (string, error)
}
