package plugin

import "strings"

// DefaultLabelPrefix marks wiki labels that describe plugins.
const DefaultLabelPrefix = "plugin-"

// deprecatedLabel flags a plugin as deprecated.
const deprecatedLabel = "deprecated"

// FilterLabels keeps labels carrying prefix, with the prefix removed, and
// reports whether one of them is "deprecated".
func FilterLabels(raw []string, prefix string) (labels []string, deprecated bool) {
	for _, l := range raw {
		name, ok := strings.CutPrefix(l, prefix)
		if !ok || name == "" {
			continue
		}
		labels = append(labels, name)
		if name == deprecatedLabel {
			deprecated = true
		}
	}
	return labels, deprecated
}
