package maven

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/updatecenter/pkg/artifact"
	"github.com/matzehuels/updatecenter/pkg/cache"
	"github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/httputil"
	"github.com/matzehuels/updatecenter/pkg/integrations"
	"github.com/matzehuels/updatecenter/pkg/pom"
)

// DefaultRepository is the Jenkins plugin release repository.
const DefaultRepository = "https://repo.jenkins-ci.org/releases/"

// Packaging is the file extension of plugin archives.
const Packaging = "hpi"

// Client reads plugin releases from a Maven repository laid out in the
// standard groupId/artifactId/version directory structure.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
	logger  *log.Logger
}

// NewClient creates a repository client. An empty repository selects
// [DefaultRepository]; zero opts.Attempts selects [httputil.DefaultAttempts].
func NewClient(c cache.Cache, repository string, opts integrations.Options, logger *log.Logger) *Client {
	if repository == "" {
		repository = DefaultRepository
	}
	if opts.Attempts == 0 {
		opts.Attempts = httputil.DefaultAttempts
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		Client:  integrations.NewClient(c, opts),
		baseURL: strings.TrimSuffix(repository, "/") + "/",
		logger:  logger,
	}
}

// Versions implements [artifact.Source]. The listing comes from
// maven-metadata.xml; each version is resolved lazily on first use.
func (c *Client) Versions(ctx context.Context, groupID, artifactID string) (map[string]artifact.Resolvable, error) {
	key := groupID + ":" + artifactID

	var versions []string
	err := c.Cached(ctx, cache.KindVersions, key, false, &versions, func() error {
		v, err := c.fetchVersions(ctx, groupID, artifactID)
		versions = v
		return err
	})
	if err != nil {
		return nil, classify(err, "list versions of %s", key)
	}

	out := make(map[string]artifact.Resolvable, len(versions))
	for _, v := range versions {
		out[v] = artifact.ResolveFunc(func(ctx context.Context) (*artifact.Version, error) {
			return c.resolve(ctx, groupID, artifactID, v)
		})
	}
	return out, nil
}

// Descriptor implements [pom.Resolver].
func (c *Client) Descriptor(ctx context.Context, coord pom.Coordinate) (*pom.Descriptor, error) {
	data, err := c.descriptor(ctx, coord)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "no descriptor for %s", coord)
	}
	return pom.Parse(data)
}

func (c *Client) fetchVersions(ctx context.Context, groupID, artifactID string) ([]string, error) {
	data, _, err := c.GetBytes(ctx, c.dirURL(groupID, artifactID)+"maven-metadata.xml")
	if err != nil {
		return nil, err
	}
	return parseMetadata(data)
}

// parseMetadata returns the versions listed in a maven-metadata.xml document.
func parseMetadata(data []byte) ([]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "maven-metadata.xml is not well-formed")
	}
	root := doc.SelectElement("metadata")
	if root == nil {
		return nil, errors.New(errors.ErrCodeParse, "maven-metadata.xml has no <metadata> root")
	}
	var versions []string
	for _, el := range root.FindElements("./versioning/versions/version") {
		if v := strings.TrimSpace(el.Text()); v != "" {
			versions = append(versions, v)
		}
	}
	return versions, nil
}

// release is the cached part of a resolved version.
type release struct {
	Released time.Time         `json:"released"`
	Manifest artifact.Manifest `json:"manifest"`
}

func (c *Client) resolve(ctx context.Context, groupID, artifactID, version string) (*artifact.Version, error) {
	v := &artifact.Version{
		GroupID:    groupID,
		ArtifactID: artifactID,
		Version:    version,
		PreRelease: artifact.IsPreRelease(version),
	}

	var rel release
	err := c.Cached(ctx, cache.KindArtifact, v.GAV(), false, &rel, func() error {
		r, err := c.fetchRelease(ctx, groupID, artifactID, version)
		rel = r
		return err
	})
	if err != nil {
		return nil, classify(err, "resolve %s", v.GAV())
	}
	v.Released = rel.Released
	v.Manifest = rel.Manifest
	return v, nil
}

func (c *Client) fetchRelease(ctx context.Context, groupID, artifactID, version string) (release, error) {
	url := c.fileURL(groupID, artifactID, version, Packaging)
	data, header, err := c.GetBytes(ctx, url)
	if err != nil {
		return release{}, err
	}
	m, err := artifact.ReadManifest(data)
	if err != nil {
		return release{}, err
	}
	rel := release{Manifest: m}
	if lm := header.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			rel.Released = t.UTC()
		} else {
			c.logger.Debug("unparseable Last-Modified", "url", url, "value", lm)
		}
	}
	return rel, nil
}

// descriptor returns the raw pom for coord, or nil if the repository has none.
func (c *Client) descriptor(ctx context.Context, coord pom.Coordinate) ([]byte, error) {
	var data []byte
	err := c.Cached(ctx, cache.KindPOM, coord.String(), false, &data, func() error {
		b, _, err := c.GetBytes(ctx, c.fileURL(coord.GroupID, coord.ArtifactID, coord.Version, "pom"))
		data = b
		return err
	})
	if stderrors.Is(err, integrations.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err, "fetch descriptor %s", coord)
	}
	return data, nil
}

func (c *Client) dirURL(groupID, artifactID string) string {
	return c.baseURL + strings.ReplaceAll(groupID, ".", "/") + "/" + artifactID + "/"
}

func (c *Client) fileURL(groupID, artifactID, version, ext string) string {
	return fmt.Sprintf("%s%s/%s-%s.%s", c.dirURL(groupID, artifactID), version, artifactID, version, ext)
}

// classify maps transport errors onto error codes. Coded errors pass through.
func classify(err error, format string, args ...any) error {
	switch {
	case errors.GetCode(err) != "":
		return err
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return err
	case stderrors.Is(err, integrations.ErrNotFound):
		return errors.Wrap(errors.ErrCodeNotFound, err, format, args...)
	default:
		return errors.Wrap(errors.ErrCodeRemoteService, err, format, args...)
	}
}
