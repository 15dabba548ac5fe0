package artifact

import (
	"archive/zip"
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/matzehuels/updatecenter/pkg/errors"
)

const manifestPath = "META-INF/MANIFEST.MF"

// ReadManifest extracts the plugin manifest from a plugin archive.
func ReadManifest(archive []byte) (Manifest, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return Manifest{}, errors.Wrap(errors.ErrCodeParse, err, "open plugin archive")
	}
	f, err := zr.Open(manifestPath)
	if err != nil {
		return Manifest{}, errors.Wrap(errors.ErrCodeParse, err, "read %s", manifestPath)
	}
	defer f.Close()

	attrs, err := ParseManifest(f)
	if err != nil {
		return Manifest{}, err
	}
	return ManifestFromAttributes(attrs), nil
}

// ParseManifest reads the main section of a JAR manifest.
// Continuation lines start with a single space.
func ParseManifest(r io.Reader) (map[string]string, error) {
	attrs := make(map[string]string)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var last string
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			if len(attrs) > 0 {
				break
			}
			continue
		}
		if strings.HasPrefix(line, " ") {
			if last == "" {
				return nil, errors.New(errors.ErrCodeParse, "manifest continuation without attribute")
			}
			attrs[last] += line[1:]
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok || name == "" {
			return nil, errors.New(errors.ErrCodeParse, "malformed manifest line %q", line)
		}
		last = name
		attrs[name] = strings.TrimPrefix(value, " ")
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "scan manifest")
	}
	return attrs, nil
}

// ManifestFromAttributes maps raw manifest attributes to a [Manifest].
func ManifestFromAttributes(attrs map[string]string) Manifest {
	core := attrs["Jenkins-Version"]
	if core == "" {
		core = attrs["Hudson-Version"]
	}
	return Manifest{
		RequiredCore:    core,
		CompatibleSince: attrs["Compatible-Since-Version"],
		SandboxStatus:   attrs["Sandbox-Status"],
		BuiltBy:         attrs["Built-By"],
		Dependencies:    parseDependencies(attrs["Plugin-Dependencies"]),
		Developers:      parseDevelopers(attrs["Plugin-Developers"]),
	}
}

// parseDependencies reads "name:version[;resolution:=optional],...".
func parseDependencies(s string) []Dependency {
	var deps []Dependency
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		spec, params, _ := strings.Cut(item, ";")
		name, version, _ := strings.Cut(spec, ":")
		deps = append(deps, Dependency{
			Name:     name,
			Version:  version,
			Optional: strings.Contains(params, "resolution:=optional"),
		})
	}
	return deps
}

// parseDevelopers reads "name:id:email,...".
func parseDevelopers(s string) []Developer {
	var devs []Developer
	for _, item := range strings.Split(s, ",") {
		parts := strings.SplitN(item, ":", 3)
		for len(parts) < 3 {
			parts = append(parts, "")
		}
		d := Developer{
			Name:        strings.TrimSpace(parts[0]),
			DeveloperID: strings.TrimSpace(parts[1]),
			Email:       strings.TrimSpace(parts[2]),
		}
		if d == (Developer{}) {
			continue
		}
		devs = append(devs, d)
	}
	return devs
}
