// Package pom reads the few fields of a Maven project descriptor that the
// catalog needs: name, url, description, scm connection and parent.
//
// Descriptors are read with [etree] by element path; the default POM
// namespace and unknown elements are ignored.
package pom

import (
	"context"
	"strings"

	"github.com/beevik/etree"

	"github.com/matzehuels/updatecenter/pkg/errors"
)

// Coordinate identifies a descriptor in a repository.
type Coordinate struct {
	GroupID    string
	ArtifactID string
	Version    string
}

// String returns "groupId:artifactId:version".
func (c Coordinate) String() string {
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

// Resolver fetches the descriptor for a coordinate, typically a parent pom.
type Resolver interface {
	Descriptor(ctx context.Context, c Coordinate) (*Descriptor, error)
}

// Descriptor is a parsed pom.xml.
type Descriptor struct {
	root *etree.Element
}

// Parse reads a descriptor. It fails only if data is not well-formed XML or
// has no <project> root.
func Parse(data []byte) (*Descriptor, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "pom is not well-formed")
	}
	root := doc.Root()
	if root == nil || root.Tag != "project" {
		return nil, errors.New(errors.ErrCodeParse, "pom has no <project> root")
	}
	return &Descriptor{root: root}, nil
}

// Name returns <name>.
func (d *Descriptor) Name() string { return d.text("name") }

// URL returns <url>.
func (d *Descriptor) URL() string { return d.text("url") }

// Description returns <description>.
func (d *Descriptor) Description() string { return d.text("description") }

// SCMConnection returns <scm><connection>.
func (d *Descriptor) SCMConnection() string { return d.text("scm", "connection") }

// Coordinate returns the descriptor's own coordinate, inheriting groupId and
// version from <parent> when they are omitted.
func (d *Descriptor) Coordinate() Coordinate {
	c := Coordinate{
		GroupID:    d.text("groupId"),
		ArtifactID: d.text("artifactId"),
		Version:    d.text("version"),
	}
	if p, ok := d.Parent(); ok {
		if c.GroupID == "" {
			c.GroupID = p.GroupID
		}
		if c.Version == "" {
			c.Version = p.Version
		}
	}
	return c
}

// Parent returns the <parent> coordinate if all three parts are present.
func (d *Descriptor) Parent() (Coordinate, bool) {
	c := Coordinate{
		GroupID:    d.text("parent", "groupId"),
		ArtifactID: d.text("parent", "artifactId"),
		Version:    d.text("parent", "version"),
	}
	if c.GroupID == "" || c.ArtifactID == "" || c.Version == "" {
		return Coordinate{}, false
	}
	return c, true
}

func (d *Descriptor) text(path ...string) string {
	e := d.root
	for _, tag := range path {
		if e = e.SelectElement(tag); e == nil {
			return ""
		}
	}
	return strings.TrimSpace(e.Text())
}
