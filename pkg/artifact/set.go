package artifact

import (
	"context"
	"slices"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/updatecenter/pkg/errors"
)

// VersionSet is the resolved release history of one plugin, newest first.
type VersionSet struct {
	ArtifactID string
	versions   []*Version
}

// NewVersionSet resolves every candidate and orders the survivors by [Compare].
//
// Candidates whose manifest cannot be resolved are dropped with a warning.
// Only an empty result is an error, and it concerns this plugin alone.
func NewVersionSet(ctx context.Context, artifactID string, candidates map[string]Resolvable, logger *log.Logger) (*VersionSet, error) {
	if logger == nil {
		logger = log.Default()
	}

	keys := make([]string, 0, len(candidates))
	for k := range candidates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var versions []*Version
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := candidates[k].Resolve(ctx)
		if err != nil || v == nil {
			logger.Warn("dropping version", "plugin", artifactID, "version", k, "err", err)
			continue
		}
		if v.Version == "" {
			v.Version = k
		}
		versions = append(versions, v)
	}
	return FromVersions(artifactID, versions...)
}

// FromVersions builds a set from already resolved versions.
func FromVersions(artifactID string, versions ...*Version) (*VersionSet, error) {
	if len(versions) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no resolvable versions for %s", artifactID)
	}
	sorted := slices.Clone(versions)
	slices.SortStableFunc(sorted, func(a, b *Version) int {
		return Compare(b.Version, a.Version)
	})
	return &VersionSet{ArtifactID: artifactID, versions: sorted}, nil
}

// Latest returns the highest version.
func (s *VersionSet) Latest() *Version { return s.versions[0] }

// Previous returns the second highest version, or nil.
func (s *VersionSet) Previous() *Version {
	if len(s.versions) < 2 {
		return nil
	}
	return s.versions[1]
}

// Versions returns all versions, newest first.
func (s *VersionSet) Versions() []*Version { return slices.Clone(s.versions) }

// Len returns the number of resolved versions.
func (s *VersionSet) Len() int { return len(s.versions) }

// LatestByDate returns the version with the newest release timestamp.
// Ties go to the higher version.
func (s *VersionSet) LatestByDate() *Version {
	latest := s.versions[0]
	for _, v := range s.versions[1:] {
		if v.Released.After(latest.Released) {
			latest = v
		}
	}
	return latest
}

// CheckHistory reports whether latest-by-version is also latest-by-date.
// A mismatch is logged; it never changes [VersionSet.Latest].
func (s *VersionSet) CheckHistory(logger *log.Logger) bool {
	byVersion, byDate := s.Latest(), s.LatestByDate()
	if byVersion == byDate {
		return true
	}
	if logger == nil {
		logger = log.Default()
	}
	logger.Warn("latest-by-version doesn't match latest-by-date",
		"plugin", s.ArtifactID,
		"byVersion", byVersion.Version,
		"byVersionReleased", byVersion.Released.UTC(),
		"byDate", byDate.Version,
		"byDateReleased", byDate.Released.UTC())
	return false
}
