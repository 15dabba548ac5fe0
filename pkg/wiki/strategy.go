package wiki

import "context"

// Tier names.
const (
	TierOverride     = "override"
	TierDeclaredURL  = "declared-url"
	TierNearestTitle = "nearest-title"
)

// Strategy is one resolution tier. Resolve reports false when the tier has
// no candidate for the plugin.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, artifactID, declaredURL string) (PageRef, bool, error)
}

// OverrideStrategy looks the plugin up in a curated table.
type OverrideStrategy struct {
	Overrides  Overrides
	Normalizer *Normalizer
}

func (s *OverrideStrategy) Name() string { return TierOverride }

func (s *OverrideStrategy) Resolve(ctx context.Context, artifactID, _ string) (PageRef, bool, error) {
	u, ok := s.Overrides.Lookup(artifactID)
	if !ok {
		return PageRef{}, false, nil
	}
	return s.Normalizer.Ref(ctx, u)
}

// DeclaredURLStrategy uses the url declared by the plugin itself.
type DeclaredURLStrategy struct {
	Normalizer *Normalizer
}

func (s *DeclaredURLStrategy) Name() string { return TierDeclaredURL }

func (s *DeclaredURLStrategy) Resolve(ctx context.Context, _, declaredURL string) (PageRef, bool, error) {
	return s.Normalizer.Ref(ctx, declaredURL)
}

// NearestTitleStrategy guesses the page from the catalog's title index.
type NearestTitleStrategy struct {
	Catalog Catalog
}

func (s *NearestTitleStrategy) Name() string { return TierNearestTitle }

func (s *NearestTitleStrategy) Resolve(ctx context.Context, artifactID, _ string) (PageRef, bool, error) {
	return s.Catalog.Nearest(ctx, artifactID)
}

// DefaultStrategies returns override, declared-url and nearest-title, in
// that order.
func DefaultStrategies(overrides Overrides, norm *Normalizer, catalog Catalog) []Strategy {
	return []Strategy{
		&OverrideStrategy{Overrides: overrides, Normalizer: norm},
		&DeclaredURLStrategy{Normalizer: norm},
		&NearestTitleStrategy{Catalog: catalog},
	}
}
