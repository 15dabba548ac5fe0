package wiki

import (
	"bufio"
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/updatecenter/pkg/errors"
)

//go:embed wiki-overrides.properties
var bundledOverrides string

// Overrides maps an artifactId to the wiki URL of its page.
type Overrides map[string]string

// Lookup returns the override URL for artifactID.
func (o Overrides) Lookup(artifactID string) (string, bool) {
	u, ok := o[artifactID]
	return u, ok
}

// LoadOverrides reads an override table from path, or the bundled table if
// path is empty.
func LoadOverrides(path string) (Overrides, error) {
	if path == "" {
		return ParseOverrides(strings.NewReader(bundledOverrides))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "open override table")
	}
	defer f.Close()
	return ParseOverrides(f)
}

// ParseOverrides reads "artifactId=url" lines. Blank lines and lines starting
// with '#' or '!' are skipped; '\=', '\:' and '\\' escape literal characters.
func ParseOverrides(r io.Reader) (Overrides, error) {
	o := make(Overrides)
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' || line[0] == '!' {
			continue
		}
		key, value, ok := splitProperty(line)
		if !ok {
			return nil, errors.New(errors.ErrCodeConfiguration, "override table line %d: missing '='", n)
		}
		if key == "" {
			return nil, errors.New(errors.ErrCodeConfiguration, "override table line %d: empty artifactId", n)
		}
		o[key] = value
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "read override table")
	}
	return o, nil
}

// splitProperty splits at the first unescaped '=' and unescapes both sides.
func splitProperty(line string) (key, value string, ok bool) {
	var b strings.Builder
	escaped := false
	for i, r := range line {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '=':
			return strings.TrimSpace(b.String()), unescape(strings.TrimSpace(line[i+1:])), true
		default:
			b.WriteRune(r)
		}
	}
	return "", "", false
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}
