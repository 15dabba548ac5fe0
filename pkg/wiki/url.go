package wiki

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultBaseURL is the canonical wiki location.
const DefaultBaseURL = "https://wiki.jenkins-ci.org/"

// DefaultSpace is the wiki space holding plugin pages.
const DefaultSpace = "JENKINS"

// legacyPrefixes are historical locations of the plugin pages.
var legacyPrefixes = []string{
	"https://wiki.jenkins-ci.org/display/JENKINS/",
	"http://wiki.jenkins-ci.org/display/JENKINS/",
	"http://wiki.hudson-ci.org/display/HUDSON/",
	"http://hudson.gotdns.com/wiki/display/HUDSON/",
}

var (
	shortLinkPattern = regexp.MustCompile(`^.*/x/(\w+)$`)
	hudsonSpace      = regexp.MustCompile(`(?i)/HUDSON/`)
	displayPrefix    = regexp.MustCompile(`(?i)^.*?/display/[^/]+/`)
)

// LinkExpander turns a short-link identifier into the full page URL.
type LinkExpander interface {
	ExpandLink(ctx context.Context, id string) (string, error)
}

// Normalizer maps any URL a plugin may declare to the canonical page URL.
type Normalizer struct {
	BaseURL string // must end with '/'
	Space   string
	Links   LinkExpander
	Logger  *log.Logger
}

// NewNormalizer returns a normalizer for the given base and space; empty
// values select [DefaultBaseURL] and [DefaultSpace].
func NewNormalizer(baseURL, space string, links LinkExpander, logger *log.Logger) *Normalizer {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if space == "" {
		space = DefaultSpace
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Normalizer{BaseURL: baseURL, Space: space, Links: links, Logger: logger}
}

// Normalize returns the canonical URL for raw. It reports false if raw is
// empty or does not point into the wiki. Only a failed short-link expansion
// is an error.
func (n *Normalizer) Normalize(ctx context.Context, raw string) (string, bool, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		n.Logger.Debug("wiki url is missing")
		return "", false, nil
	}

	if m := shortLinkPattern.FindStringSubmatch(u); m != nil && n.Links != nil {
		expanded, err := n.Links.ExpandLink(ctx, m[1])
		if err != nil {
			return "", false, err
		}
		u = expanded
	}

	for _, p := range legacyPrefixes {
		if strings.HasPrefix(u, p) {
			u = n.BaseURL + "display/" + n.Space + "/" + strings.TrimPrefix(u, p)
			u = hudsonSpace.ReplaceAllString(u, "/"+n.Space+"/")
			break
		}
	}

	if !strings.HasPrefix(u, n.BaseURL) {
		n.Logger.Info("wiki url is outside the wiki", "url", raw, "base", n.BaseURL)
		return "", false, nil
	}

	return strings.TrimSuffix(u, "/"), true, nil
}

// Ref normalizes raw and derives its page reference.
func (n *Normalizer) Ref(ctx context.Context, raw string) (PageRef, bool, error) {
	u, ok, err := n.Normalize(ctx, raw)
	if err != nil || !ok {
		return PageRef{}, false, err
	}
	return PageRef{ID: Identifier(u), URL: u}, true, nil
}

// Identifier extracts the fetch identifier from a canonical page URL:
// the pageId of a viewpage.action URL, otherwise the page title.
func Identifier(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	if strings.HasSuffix(u.Path, "/pages/viewpage.action") {
		return u.Query().Get("pageId")
	}

	title := displayPrefix.ReplaceAllString(u.EscapedPath(), "")
	title = strings.ReplaceAll(title, "+", " ")
	if decoded, err := url.PathUnescape(title); err == nil {
		title = decoded
	}
	return title
}
