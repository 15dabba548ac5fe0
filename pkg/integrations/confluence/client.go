package confluence

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/updatecenter/pkg/cache"
	"github.com/matzehuels/updatecenter/pkg/integrations"
	"github.com/matzehuels/updatecenter/pkg/wiki"
)

// DefaultPageSize is the number of children requested per page.
const DefaultPageSize = 200

// Config configures a [Client].
type Config struct {
	BaseURL  string // wiki root ending in '/', default [wiki.DefaultBaseURL]
	Space    string // default [wiki.DefaultSpace]
	User     string // empty for anonymous access
	Password string
	Timeout  time.Duration
	PageSize int
}

// Client talks to the Confluence REST API. It implements [wiki.Service].
// Requests are never retried; the wiki catalog degrades instead.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	cfg      Config
	redirect *http.Client
}

// NewClient creates a Confluence client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = wiki.DefaultBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.Space == "" {
		cfg.Space = wiki.DefaultSpace
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	return &Client{
		Client:   integrations.NewClient(cache.NewNull(), integrations.Options{Timeout: cfg.Timeout, Attempts: 1}),
		cfg:      cfg,
		redirect: integrations.NewNoRedirectClient(cfg.Timeout),
	}
}

// FetchPage implements [wiki.Service]. Numeric keys are page ids; anything
// else is looked up as a title in the configured space.
func (c *Client) FetchPage(ctx context.Context, idOrTitle string) (*wiki.Page, error) {
	if isPageID(idOrTitle) {
		var data content
		if err := c.get(ctx, "rest/api/content/"+idOrTitle, url.Values{"expand": {"body.storage"}}, &data); err != nil {
			return nil, err
		}
		return c.page(data), nil
	}
	data, err := c.byTitle(ctx, idOrTitle, "body.storage")
	if err != nil {
		return nil, err
	}
	return c.page(data), nil
}

// FetchLabels implements [wiki.Service].
func (c *Client) FetchLabels(ctx context.Context, pageID string) ([]string, error) {
	var labels []string
	err := c.paginate(ctx, "rest/api/content/"+pageID+"/label", func(r results) {
		for _, l := range r.Results {
			labels = append(labels, l.Name)
		}
	})
	return labels, err
}

// FetchChildren implements [wiki.Service].
func (c *Client) FetchChildren(ctx context.Context, parentTitle string) ([]wiki.Summary, error) {
	parent, err := c.byTitle(ctx, parentTitle, "")
	if err != nil {
		return nil, err
	}
	var out []wiki.Summary
	err = c.paginate(ctx, "rest/api/content/"+parent.ID+"/child/page", func(r results) {
		for _, p := range r.Results {
			out = append(out, wiki.Summary{ID: p.ID, Title: p.Title, URL: c.pageURL(p)})
		}
	})
	return out, err
}

// Login implements [wiki.Service]. It requests the wiki root and returns the
// first session cookie as "name=value". Empty credentials log in anonymously.
func (c *Client) Login(ctx context.Context, user, password string) (string, error) {
	var headers map[string]string
	if user != "" {
		headers = map[string]string{"Authorization": basicAuth(user, password)}
	}
	resp, err := c.Do(ctx, c.redirect, c.cfg.BaseURL, headers)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if cookies := resp.Cookies(); len(cookies) > 0 {
		return cookies[0].Name + "=" + cookies[0].Value, nil
	}
	return "", nil
}

// ResolveRedirect implements [wiki.Service]. The redirect is not followed.
func (c *Client) ResolveRedirect(ctx context.Context, token, shortURL string) (string, error) {
	var headers map[string]string
	if token != "" {
		headers = map[string]string{"Cookie": token}
	}
	resp, err := c.Do(ctx, c.redirect, shortURL, headers)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	loc := resp.Header.Get("Location")
	if loc == "" {
		return "", fmt.Errorf("%s: status %d without Location", shortURL, resp.StatusCode)
	}
	if u, err := resp.Request.URL.Parse(loc); err == nil {
		loc = u.String()
	}
	return loc, nil
}

func (c *Client) byTitle(ctx context.Context, title, expand string) (content, error) {
	q := url.Values{"spaceKey": {c.cfg.Space}, "title": {title}}
	if expand != "" {
		q.Set("expand", expand)
	}
	var r results
	if err := c.get(ctx, "rest/api/content", q, &r); err != nil {
		return content{}, err
	}
	if len(r.Results) == 0 {
		return content{}, fmt.Errorf("%w: page %q in space %s", integrations.ErrNotFound, title, c.cfg.Space)
	}
	return r.Results[0], nil
}

// paginate walks a list endpoint until a short page is returned.
func (c *Client) paginate(ctx context.Context, path string, each func(results)) error {
	for start := 0; ; start += c.cfg.PageSize {
		q := url.Values{"limit": {strconv.Itoa(c.cfg.PageSize)}, "start": {strconv.Itoa(start)}}
		var r results
		if err := c.get(ctx, path, q, &r); err != nil {
			return err
		}
		each(r)
		if len(r.Results) < c.cfg.PageSize {
			return nil
		}
	}
}

func (c *Client) get(ctx context.Context, path string, q url.Values, v any) error {
	u := integrations.JoinURL(c.cfg.BaseURL, path)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	var headers map[string]string
	if c.cfg.User != "" {
		headers = map[string]string{"Authorization": basicAuth(c.cfg.User, c.cfg.Password)}
	}
	err := c.GetWithHeaders(ctx, u, headers, v)
	if stderrors.Is(err, integrations.ErrNotFound) {
		return fmt.Errorf("%w: %s", integrations.ErrNotFound, path)
	}
	return err
}

func (c *Client) page(data content) *wiki.Page {
	return &wiki.Page{
		ID:      data.ID,
		Title:   data.Title,
		URL:     c.pageURL(data),
		Content: excerptMarkup(data.Body.Storage.Value),
	}
}

func (c *Client) pageURL(data content) string {
	if data.Links.WebUI == "" {
		return integrations.JoinURL(c.cfg.BaseURL, "pages/viewpage.action?pageId="+data.ID)
	}
	base := data.Links.Base
	if base == "" {
		base = c.cfg.BaseURL
	}
	return integrations.JoinURL(base, data.Links.WebUI)
}

func isPageID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func basicAuth(user, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+password))
}

type content struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Name  string `json:"name"` // labels
	Body  struct {
		Storage struct {
			Value string `json:"value"`
		} `json:"storage"`
	} `json:"body"`
	Links links `json:"_links"`
}

type links struct {
	WebUI string `json:"webui"`
	Base  string `json:"base"`
}

type results struct {
	Results []content `json:"results"`
	Size    int       `json:"size"`
}

var _ wiki.Service = (*Client)(nil)
