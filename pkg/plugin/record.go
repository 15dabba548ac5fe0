package plugin

import (
	"time"

	"github.com/matzehuels/updatecenter/pkg/artifact"
	"github.com/matzehuels/updatecenter/pkg/wiki"
)

// Record is the aggregated metadata of one plugin.
type Record struct {
	ArtifactID string
	Versions   *artifact.VersionSet
	Page       *wiki.Page // nil if no page was found

	Title      string
	Excerpt    string
	SCMHost    string
	Labels     []string
	Deprecated bool
}

// TimestampFormat is the layout of release timestamps in the catalog. The
// fractional digits are always "00"; times are truncated to whole seconds.
const TimestampFormat = "2006-01-02T15:04:05.00Z"

// Entry is the catalog representation of a plugin.
type Entry struct {
	Name                   string                `json:"name" yaml:"name"`
	Version                string                `json:"version" yaml:"version"`
	ReleaseTimestamp       string                `json:"releaseTimestamp" yaml:"releaseTimestamp"`
	PreviousVersion        string                `json:"previousVersion,omitempty" yaml:"previousVersion,omitempty"`
	PreviousTimestamp      string                `json:"previousTimestamp,omitempty" yaml:"previousTimestamp,omitempty"`
	Title                  string                `json:"title" yaml:"title"`
	Wiki                   string                `json:"wiki,omitempty" yaml:"wiki,omitempty"`
	Excerpt                string                `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	Labels                 []string              `json:"labels,omitempty" yaml:"labels,omitempty"`
	SCM                    string                `json:"scm,omitempty" yaml:"scm,omitempty"`
	RequiredCore           string                `json:"requiredCore" yaml:"requiredCore"`
	CompatibleSinceVersion string                `json:"compatibleSinceVersion,omitempty" yaml:"compatibleSinceVersion,omitempty"`
	SandboxStatus          string                `json:"sandboxStatus,omitempty" yaml:"sandboxStatus,omitempty"`
	Dependencies           []artifact.Dependency `json:"dependencies" yaml:"dependencies"`
	Developers             []artifact.Developer  `json:"developers" yaml:"developers"`
	GAV                    string                `json:"gav" yaml:"gav"`
}

// Entry renders the record for the catalog.
func (r *Record) Entry() Entry {
	latest := r.Versions.Latest()
	m := latest.Manifest

	e := Entry{
		Name:                   r.ArtifactID,
		Version:                latest.Version,
		ReleaseTimestamp:       formatTimestamp(latest.Released),
		Title:                  r.Title,
		Excerpt:                r.Excerpt,
		Labels:                 r.Labels,
		SCM:                    r.SCMHost,
		RequiredCore:           m.RequiredCore,
		CompatibleSinceVersion: m.CompatibleSince,
		SandboxStatus:          m.SandboxStatus,
		Dependencies:           m.Dependencies,
		Developers:             m.Developers,
		GAV:                    latest.GAV(),
	}
	if prev := r.Versions.Previous(); prev != nil {
		e.PreviousVersion = prev.Version
		e.PreviousTimestamp = formatTimestamp(prev.Released)
	}
	if r.Page != nil {
		e.Wiki = r.Page.URL
	}
	if len(e.Developers) == 0 && m.BuiltBy != "" {
		e.Developers = []artifact.Developer{{DeveloperID: m.BuiltBy}}
	}
	if e.Dependencies == nil {
		e.Dependencies = []artifact.Dependency{}
	}
	if e.Developers == nil {
		e.Developers = []artifact.Developer{}
	}
	return e
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(TimestampFormat)
}
