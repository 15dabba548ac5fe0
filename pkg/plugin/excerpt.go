package plugin

import (
	"regexp"
	"strings"
)

// ExperimentalDisclaimer is prepended to the excerpt of pre-release versions.
const ExperimentalDisclaimer = "<b>(This version is experimental and may change in backward-incompatible ways)</b><br><br>"

var (
	excerptPattern   = regexp.MustCompile(`(?s)\{excerpt(?::hidden(?:=true)?)?\}\s*(.+?)\{excerpt\}`)
	newlinePattern   = regexp.MustCompile(`\r?\n`)
	hyperlinkPattern = regexp.MustCompile(`\[([^|\]]+)\|([^|\]]+)(?:\|[^\]]*)?\]`)
)

// Excerpt extracts the {excerpt} section of wiki markup as one line of HTML.
// It reports false if there is no excerpt or the excerpt is itself unrendered
// markup (starts with '{').
func Excerpt(content string, preRelease bool) (string, bool) {
	m := excerptPattern.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	excerpt := newlinePattern.ReplaceAllString(m[1], " ")
	excerpt = hyperlinkPattern.ReplaceAllString(excerpt, "<a href='$2'>$1</a>")
	if strings.HasPrefix(excerpt, "{") {
		return "", false
	}
	if preRelease {
		excerpt = ExperimentalDisclaimer + excerpt
	}
	return excerpt, true
}

// DescriptionHTML turns a plain-text descriptor description into HTML by
// escaping '&' and '<'.
func DescriptionHTML(description string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;").Replace(description)
}
