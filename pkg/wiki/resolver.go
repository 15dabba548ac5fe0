package wiki

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/updatecenter/pkg/observability"
)

// Resolver finds the page of a plugin by trying strategies in order.
type Resolver struct {
	catalog    Catalog
	strategies []Strategy
	logger     *log.Logger
}

// NewResolver returns a resolver over catalog. Nil strategies means none.
func NewResolver(catalog Catalog, strategies []Strategy, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{catalog: catalog, strategies: strategies, logger: logger}
}

// Resolve returns the plugin's page, or nil if no tier produced one.
func (r *Resolver) Resolve(ctx context.Context, artifactID, declaredURL string) *Page {
	page, _ := r.ResolveTier(ctx, artifactID, declaredURL)
	return page
}

// ResolveTier is [Resolver.Resolve] that also reports the winning tier.
func (r *Resolver) ResolveTier(ctx context.Context, artifactID, declaredURL string) (*Page, string) {
	hooks := observability.Resolver()
	for _, s := range r.strategies {
		if ctx.Err() != nil {
			return nil, ""
		}
		tier := s.Name()

		ref, ok, err := s.Resolve(ctx, artifactID, declaredURL)
		if err != nil {
			r.logger.Warn("wiki tier failed", "plugin", artifactID, "tier", tier, "err", err)
			hooks.OnTier(ctx, tier, artifactID, false, err)
			continue
		}
		if !ok {
			hooks.OnTier(ctx, tier, artifactID, false, nil)
			continue
		}

		page, err := r.catalog.Page(ctx, ref)
		if err != nil {
			r.logger.Warn("wiki page fetch failed", "plugin", artifactID, "tier", tier, "page", ref.ID, "err", err)
			hooks.OnTier(ctx, tier, artifactID, false, err)
			continue
		}
		if page == nil {
			hooks.OnTier(ctx, tier, artifactID, false, nil)
			continue
		}

		r.logger.Debug("wiki page resolved", "plugin", artifactID, "tier", tier, "page", page.Title)
		hooks.OnTier(ctx, tier, artifactID, true, nil)
		return page, tier
	}
	return nil, ""
}
