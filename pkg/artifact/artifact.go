package artifact

import (
	"context"
	"time"
)

// Version is one resolved release of a plugin. It is immutable once resolved.
type Version struct {
	GroupID    string    `json:"groupId"`
	ArtifactID string    `json:"artifactId"`
	Version    string    `json:"version"`
	Released   time.Time `json:"released"`
	Manifest   Manifest  `json:"manifest"`
	PreRelease bool      `json:"preRelease"`

	// Descriptor is the raw project descriptor (pom.xml). Sources that serve
	// descriptors separately through a pom.Resolver leave it nil.
	Descriptor []byte `json:"descriptor,omitempty"`
}

// GAV returns the "groupId:artifactId:version" coordinate.
func (v *Version) GAV() string {
	return v.GroupID + ":" + v.ArtifactID + ":" + v.Version
}

// Manifest holds the plugin attributes read from the archive manifest.
type Manifest struct {
	RequiredCore    string       `json:"requiredCore,omitempty"`
	CompatibleSince string       `json:"compatibleSinceVersion,omitempty"`
	SandboxStatus   string       `json:"sandboxStatus,omitempty"`
	BuiltBy         string       `json:"builtBy,omitempty"`
	Dependencies    []Dependency `json:"dependencies,omitempty"`
	Developers      []Developer  `json:"developers,omitempty"`
}

// Dependency is a plugin dependency declared in the manifest.
type Dependency struct {
	Name     string `json:"name" yaml:"name"`
	Version  string `json:"version" yaml:"version"`
	Optional bool   `json:"optional" yaml:"optional"`
}

// Developer is a plugin maintainer declared in the manifest.
type Developer struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	DeveloperID string `json:"developerId,omitempty" yaml:"developerId,omitempty"`
	Email       string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Resolvable is an artifact whose manifest may still need to be fetched.
type Resolvable interface {
	Resolve(ctx context.Context) (*Version, error)
}

// ResolveFunc adapts a function to [Resolvable].
type ResolveFunc func(ctx context.Context) (*Version, error)

// Resolve calls f.
func (f ResolveFunc) Resolve(ctx context.Context) (*Version, error) { return f(ctx) }

// Resolved wraps an already resolved version.
func Resolved(v *Version) Resolvable {
	return ResolveFunc(func(context.Context) (*Version, error) { return v, nil })
}

// Source lists the released versions of a plugin, keyed by version string.
type Source interface {
	Versions(ctx context.Context, groupID, artifactID string) (map[string]Resolvable, error)
}
