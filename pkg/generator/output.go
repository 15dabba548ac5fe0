package generator

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/plugin"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Catalog is the document written by a run.
type Catalog struct {
	Plugins map[string]plugin.Entry `json:"plugins" yaml:"plugins"`
}

// NewCatalog renders records into a catalog keyed by artifactId.
func NewCatalog(records []*plugin.Record) *Catalog {
	c := &Catalog{Plugins: make(map[string]plugin.Entry, len(records))}
	for _, r := range records {
		c.Plugins[r.ArtifactID] = r.Entry()
	}
	return c
}

// Write encodes the catalog as indented JSON or YAML.
func (c *Catalog) Write(w io.Writer, format string) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(c)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unsupported output format %q", format)
	}
}
