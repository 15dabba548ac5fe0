package wiki

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// TitleIndex maps normalized child titles to their pages. It is read-only
// after construction.
type TitleIndex struct {
	pages  map[string]Summary
	titles []string
}

// NewTitleIndex indexes pages by [NormalizeTitle]. On duplicate normalized
// titles the first page wins.
func NewTitleIndex(pages []Summary) *TitleIndex {
	ix := &TitleIndex{pages: make(map[string]Summary, len(pages))}
	for _, p := range pages {
		t := NormalizeTitle(p.Title)
		if _, dup := ix.pages[t]; dup {
			continue
		}
		ix.pages[t] = p
		ix.titles = append(ix.titles, t)
	}
	sort.Strings(ix.titles)
	return ix
}

// Len returns the number of indexed titles.
func (ix *TitleIndex) Len() int { return len(ix.titles) }

// NormalizeTitle brings a page title as close to an artifactId as possible:
// "Git Plugin" becomes "git".
func NormalizeTitle(title string) string {
	t := strings.TrimSpace(strings.ToLower(title))
	t = strings.TrimSpace(strings.TrimSuffix(t, "plugin"))
	return strings.ReplaceAll(t, " ", "-")
}

// Nearest returns the page whose normalized title is closest to artifactID.
// An exact match always wins; otherwise the closest title is accepted only
// if its edit distance is at most a third of the longer string.
func (ix *TitleIndex) Nearest(artifactID string) (Summary, bool) {
	want := strings.ToLower(strings.TrimSpace(artifactID))
	if p, ok := ix.pages[want]; ok {
		return p, true
	}

	best, bestDist := "", -1
	for _, t := range ix.titles {
		d := levenshtein.ComputeDistance(want, t)
		if bestDist < 0 || d < bestDist {
			best, bestDist = t, d
		}
	}
	if bestDist < 0 {
		return Summary{}, false
	}
	longest := max(utf8.RuneCountInString(want), utf8.RuneCountInString(best))
	if bestDist*3 > longest {
		return Summary{}, false
	}
	return ix.pages[best], true
}
