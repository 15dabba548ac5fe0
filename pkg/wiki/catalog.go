package wiki

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/updatecenter/pkg/cache"
	"github.com/matzehuels/updatecenter/pkg/errors"
)

// Catalog is everything the resolver needs from the wiki.
type Catalog interface {
	// Initialize prepares the catalog, e.g. builds the title index.
	Initialize(ctx context.Context) error
	// Page returns the page for ref.
	Page(ctx context.Context, ref PageRef) (*Page, error)
	// Labels returns the raw labels of the page for ref.
	Labels(ctx context.Context, ref PageRef) ([]string, error)
	// Nearest finds the page whose title best matches artifactID.
	Nearest(ctx context.Context, artifactID string) (PageRef, bool, error)
	// ExpandLink resolves a short-link identifier to a full URL.
	ExpandLink(ctx context.Context, id string) (string, error)
}

// LiveConfig configures a [Live] catalog.
type LiveConfig struct {
	BaseURL  string
	Parent   string // title of the page whose children are the plugin pages
	User     string
	Password string
}

// Live is a [Catalog] backed by a remote [Service] and a cache.
//
// Pages are cached for the page TTL, expanded short links forever. A remote
// failure while fetching a page invalidates its cache entry. All methods are
// safe for concurrent use.
type Live struct {
	svc    Service
	cache  cache.Cache
	cfg    LiveConfig
	logger *log.Logger
	now    func() time.Time

	mu       sync.Mutex
	token    string
	hasToken bool

	index *TitleIndex
}

// NewLive returns a live catalog. A nil cache disables caching.
func NewLive(svc Service, c cache.Cache, cfg LiveConfig, logger *log.Logger) *Live {
	if c == nil {
		c = cache.NewNull()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Live{svc: svc, cache: c, cfg: cfg, logger: logger, now: time.Now}
}

// Initialize builds the title index from the children of the parent page.
// Without a parent the index is empty and the nearest-title tier never matches.
func (l *Live) Initialize(ctx context.Context) error {
	var children []Summary
	if l.cfg.Parent != "" {
		var err error
		children, err = l.svc.FetchChildren(ctx, l.cfg.Parent)
		if err != nil {
			return errors.Wrap(errors.ErrCodeRemoteService, err, "list children of %q", l.cfg.Parent)
		}
	}
	l.index = NewTitleIndex(children)
	l.logger.Debug("wiki title index built", "parent", l.cfg.Parent, "titles", l.index.Len())
	return nil
}

// Titles returns the number of pages in the title index.
func (l *Live) Titles() int {
	if l.index == nil {
		return 0
	}
	return l.index.Len()
}

// Page implements [Catalog].
func (l *Live) Page(ctx context.Context, ref PageRef) (*Page, error) {
	key := ref.ID
	if key == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "page reference without identifier (url %q)", ref.URL)
	}

	var cached Page
	ok, err := l.cache.Get(ctx, cache.KindPage, key, &cached)
	if err != nil {
		l.logger.Warn("page cache read failed", "key", key, "err", err)
	}
	if ok {
		return &cached, nil
	}

	l.logger.Debug("fetching wiki page", "key", key)
	page, err := l.svc.FetchPage(ctx, key)
	if err == nil && page == nil {
		err = errors.New(errors.ErrCodeNotFound, "no page %q", key)
	}
	if err == nil {
		var labels []string
		labels, err = l.svc.FetchLabels(ctx, page.ID)
		page.Labels = labels
	}
	if err != nil {
		if ierr := l.cache.Invalidate(ctx, cache.KindPage, key); ierr != nil {
			l.logger.Warn("page cache invalidation failed", "key", key, "err", ierr)
		}
		return nil, errors.Wrap(errors.ErrCodeRemoteService, err, "fetch page %q", key)
	}

	if page.URL == "" {
		page.URL = ref.URL
	}
	page.FetchedAt = l.now().UTC()
	if err := l.cache.Put(ctx, cache.KindPage, key, page); err != nil {
		l.logger.Warn("page cache write failed", "key", key, "err", err)
	}
	return page, nil
}

// Labels implements [Catalog]. Labels travel with the cached page.
func (l *Live) Labels(ctx context.Context, ref PageRef) ([]string, error) {
	p, err := l.Page(ctx, ref)
	if err != nil {
		return nil, err
	}
	return p.Labels, nil
}

// Nearest implements [Catalog].
func (l *Live) Nearest(_ context.Context, artifactID string) (PageRef, bool, error) {
	if l.index == nil {
		return PageRef{}, false, errors.New(errors.ErrCodeInternal, "wiki catalog is not initialized")
	}
	s, ok := l.index.Nearest(artifactID)
	if !ok {
		return PageRef{}, false, nil
	}
	return PageRef{ID: s.ID, URL: s.URL}, true, nil
}

// ExpandLink implements [Catalog].
func (l *Live) ExpandLink(ctx context.Context, id string) (string, error) {
	var target string
	ok, err := l.cache.Get(ctx, cache.KindLink, id, &target)
	if err != nil {
		l.logger.Warn("link cache read failed", "key", id, "err", err)
	}
	if ok {
		return target, nil
	}

	token, err := l.session(ctx)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeRemoteService, err, "establish wiki session")
	}
	target, err = l.svc.ResolveRedirect(ctx, token, l.cfg.BaseURL+"pages/tinyurl.action?urlIdentifier="+id)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeRemoteService, err, "expand short link %q", id)
	}
	if target == "" {
		return "", errors.New(errors.ErrCodeRemoteService, "short link %q has no redirect target", id)
	}

	if err := l.cache.Put(ctx, cache.KindLink, id, target); err != nil {
		l.logger.Warn("link cache write failed", "key", id, "err", err)
	}
	return target, nil
}

// session returns the run-wide session token, logging in on first use.
// A failed login is retried by the next caller.
func (l *Live) session(ctx context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.hasToken {
		return l.token, nil
	}
	token, err := l.svc.Login(ctx, l.cfg.User, l.cfg.Password)
	if err != nil {
		return "", err
	}
	l.token, l.hasToken = token, true
	return token, nil
}

var _ Catalog = (*Live)(nil)
