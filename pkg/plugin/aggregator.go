package plugin

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/updatecenter/pkg/artifact"
	"github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/pom"
	"github.com/matzehuels/updatecenter/pkg/wiki"
)

// PageResolver finds the wiki page of a plugin; [wiki.Resolver] implements it.
type PageResolver interface {
	Resolve(ctx context.Context, artifactID, declaredURL string) *wiki.Page
}

// Aggregator builds plugin records.
type Aggregator struct {
	pages       PageResolver
	poms        pom.Resolver
	labelPrefix string
	logger      *log.Logger
}

// Option configures an [Aggregator].
type Option func(*Aggregator)

// WithLabelPrefix sets the prefix of plugin labels (default "plugin-").
func WithLabelPrefix(prefix string) Option {
	return func(a *Aggregator) {
		if prefix != "" {
			a.labelPrefix = prefix
		}
	}
}

// WithDescriptors sets where project descriptors are read from when a
// version does not carry one. Only the latest version's descriptor and its
// parent are ever requested.
func WithDescriptors(r pom.Resolver) Option {
	return func(a *Aggregator) { a.poms = r }
}

// NewAggregator returns an aggregator. pages may be nil, in which case no
// plugin has a wiki page.
func NewAggregator(pages PageResolver, logger *log.Logger, opts ...Option) *Aggregator {
	if logger == nil {
		logger = log.Default()
	}
	a := &Aggregator{pages: pages, labelPrefix: DefaultLabelPrefix, logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build assembles the record for set.
func (a *Aggregator) Build(ctx context.Context, set *artifact.VersionSet) *Record {
	id := set.ArtifactID
	latest := set.Latest()
	logger := a.logger.With("plugin", id)

	set.CheckHistory(logger)

	desc := a.descriptor(ctx, logger, latest)
	declared := ""
	if desc != nil {
		declared = desc.URL()
	}

	var page *wiki.Page
	if a.pages != nil {
		page = a.pages.Resolve(ctx, id, declared)
	}

	r := &Record{ArtifactID: id, Versions: set, Page: page}
	r.Title = title(page, desc, id)

	if page != nil {
		preRelease := latest.PreRelease || artifact.IsPreRelease(latest.Version)
		if ex, ok := Excerpt(page.Content, preRelease); ok {
			r.Excerpt = ex
		}
		r.Labels, r.Deprecated = FilterLabels(page.Labels, a.labelPrefix)
	}
	if r.Excerpt == "" && desc != nil {
		r.Excerpt = DescriptionHTML(desc.Description())
	}

	r.SCMHost = a.scmHost(ctx, logger, desc)
	return r
}

func (a *Aggregator) descriptor(ctx context.Context, logger *log.Logger, v *artifact.Version) *pom.Descriptor {
	if len(v.Descriptor) > 0 {
		desc, err := pom.Parse(v.Descriptor)
		if err != nil {
			logger.Warn("can't parse project descriptor", "version", v.Version, "err", err)
			return nil
		}
		return desc
	}
	if a.poms == nil {
		logger.Debug("no project descriptor", "version", v.Version)
		return nil
	}
	desc, err := a.poms.Descriptor(ctx, pom.Coordinate{GroupID: v.GroupID, ArtifactID: v.ArtifactID, Version: v.Version})
	switch {
	case errors.Is(err, errors.ErrCodeNotFound):
		logger.Debug("no project descriptor", "version", v.Version)
		return nil
	case err != nil:
		logger.Warn("can't read project descriptor", "version", v.Version, "err", err)
		return nil
	}
	return desc
}

func (a *Aggregator) scmHost(ctx context.Context, logger *log.Logger, desc *pom.Descriptor) string {
	if desc == nil {
		return ""
	}

	conn := desc.SCMConnection()
	if conn == "" {
		if parent, ok := desc.Parent(); ok && a.poms != nil {
			pd, err := a.poms.Descriptor(ctx, parent)
			if err != nil {
				logger.Warn("failed to read parent descriptor", "parent", parent.String(), "err", err)
			} else {
				conn = pd.SCMConnection()
			}
		}
	}
	if conn == "" {
		logger.Info("no scm connection found in descriptor")
		return ""
	}

	host, ok := SCMHost(conn)
	if !ok {
		logger.Warn("unable to parse scm connection", "connection", conn)
	}
	return host
}

func title(page *wiki.Page, desc *pom.Descriptor, artifactID string) string {
	if page != nil && page.Title != "" {
		return page.Title
	}
	if desc != nil {
		if name := desc.Name(); name != "" {
			return name
		}
	}
	return artifactID
}
