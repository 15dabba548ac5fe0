package wiki

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/updatecenter/pkg/observability"
)

const (
	gitURL     = "https://wiki.jenkins-ci.org/display/JENKINS/Git+Plugin"
	gitAltURL  = "https://wiki.jenkins-ci.org/display/JENKINS/Git+Client+Plugin"
	mailerURL  = "https://wiki.jenkins-ci.org/display/JENKINS/Mailer"
	githubRepo = "https://github.com/jenkinsci/git-plugin"
)

// countingStrategy records whether it was consulted.
type countingStrategy struct {
	Strategy
	calls int
}

func (s *countingStrategy) Resolve(ctx context.Context, artifactID, declaredURL string) (PageRef, bool, error) {
	s.calls++
	return s.Strategy.Resolve(ctx, artifactID, declaredURL)
}

func newResolver(t *testing.T, svc *fakeService, overrides Overrides) (*Resolver, []*countingStrategy) {
	t.Helper()
	l, _ := newLive(t, svc)
	logger := log.New(&bytes.Buffer{})
	norm := NewNormalizer("", "", l, logger)

	var counted []*countingStrategy
	var strategies []Strategy
	for _, s := range DefaultStrategies(overrides, norm, l) {
		c := &countingStrategy{Strategy: s}
		counted = append(counted, c)
		strategies = append(strategies, c)
	}
	return NewResolver(l, strategies, logger), counted
}

func TestResolveOverrideBypassesOtherTiers(t *testing.T) {
	svc := newFakeService()
	svc.addPage("1", "Git Plugin", gitURL)
	svc.addPage("2", "Git Client Plugin", gitAltURL)
	r, tiers := newResolver(t, svc, Overrides{"git": gitAltURL})

	page, tier := r.ResolveTier(context.Background(), "git", gitURL)
	require.NotNil(t, page)
	assert.Equal(t, "2", page.ID)
	assert.Equal(t, TierOverride, tier)
	assert.Equal(t, 1, tiers[0].calls)
	assert.Zero(t, tiers[1].calls, "declared-url must not be consulted")
	assert.Zero(t, tiers[2].calls, "nearest-title must not be consulted")
}

func TestResolveDeclaredURL(t *testing.T) {
	svc := newFakeService()
	svc.addPage("1", "Git Plugin", gitURL)
	r, _ := newResolver(t, svc, nil)

	page, tier := r.ResolveTier(context.Background(), "git", "http://wiki.hudson-ci.org/display/HUDSON/Git+Plugin")
	require.NotNil(t, page)
	assert.Equal(t, "1", page.ID)
	assert.Equal(t, TierDeclaredURL, tier)
}

func TestResolveFallsBackToNearestTitle(t *testing.T) {
	svc := newFakeService()
	svc.addPage("3", "Mailer", mailerURL)
	r, _ := newResolver(t, svc, nil)

	// Declared URL points outside the wiki.
	page, tier := r.ResolveTier(context.Background(), "mailer", githubRepo)
	require.NotNil(t, page)
	assert.Equal(t, "3", page.ID)
	assert.Equal(t, TierNearestTitle, tier)
}

func TestResolveTierFailureFallsThrough(t *testing.T) {
	svc := newFakeService()
	svc.addPage("3", "Mailer", mailerURL)
	counters := observability.NewCounters()
	observability.SetResolverHooks(counters)
	t.Cleanup(observability.Reset)

	// The override points at a page that does not exist.
	r, _ := newResolver(t, svc, Overrides{"mailer": "https://wiki.jenkins-ci.org/display/JENKINS/Gone"})

	page := r.Resolve(context.Background(), "mailer", "")
	require.NotNil(t, page)
	assert.Equal(t, "3", page.ID)
	assert.Equal(t, 1, counters.Get("tier.override.error"))
	assert.Equal(t, 1, counters.Get("tier.declared-url.absent"))
	assert.Equal(t, 1, counters.Get("tier.nearest-title.found"))
}

func TestResolveNothing(t *testing.T) {
	svc := newFakeService()
	r, _ := newResolver(t, svc, nil)

	assert.Nil(t, r.Resolve(context.Background(), "kubernetes", githubRepo))
}

func TestResolveSecondTimeMakesNoRemoteCalls(t *testing.T) {
	svc := newFakeService()
	svc.addPage("1", "Git Plugin", gitURL)
	r, _ := newResolver(t, svc, nil)
	ctx := context.Background()

	require.NotNil(t, r.Resolve(ctx, "git", gitURL))
	before := svc.calls()

	require.NotNil(t, r.Resolve(ctx, "git", gitURL))
	assert.Equal(t, before, svc.calls())
}

func TestResolveStopsOnCancelledContext(t *testing.T) {
	svc := newFakeService()
	svc.addPage("1", "Git Plugin", gitURL)
	r, _ := newResolver(t, svc, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Nil(t, r.Resolve(ctx, "git", gitURL))
	assert.Zero(t, svc.calls())
}

func TestResolveWithDisabledCatalog(t *testing.T) {
	logger := log.New(&bytes.Buffer{})
	norm := NewNormalizer("", "", Disabled{}, logger)
	r := NewResolver(Disabled{}, DefaultStrategies(Overrides{"git": gitURL}, norm, Disabled{}), logger)

	assert.Nil(t, r.Resolve(context.Background(), "git", "https://wiki.jenkins-ci.org/x/abc"))
}
