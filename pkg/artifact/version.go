package artifact

import (
	"strings"
	"unicode"
)

// Qualifier ranks. A missing qualifier is a release.
var qualifierRank = map[string]int{
	"alpha":     1,
	"a":         1,
	"beta":      2,
	"b":         2,
	"milestone": 3,
	"m":         3,
	"rc":        4,
	"cr":        4,
	"snapshot":  5,
	"":          6,
	"ga":        6,
	"final":     6,
	"release":   6,
	"sp":        7,
}

const unknownQualifierRank = 8

type token struct {
	text    string
	numeric bool
}

// Compare orders two version strings. It returns -1, 0 or +1.
//
// Versions are split into tokens on '.', '-', '_', '+' and on every switch
// between digits and letters. Numeric tokens compare numerically and rank
// above qualifiers; qualifiers rank alpha < beta < milestone < rc <
// snapshot < release < sp < anything else. Missing tokens count as 0 or
// release. Versions that are equal by these rules fall back to plain string
// comparison, so the order is total.
func Compare(a, b string) int {
	ta, tb := tokenize(a), tokenize(b)
	for i := 0; i < max(len(ta), len(tb)); i++ {
		var x, y token
		if i < len(ta) {
			x = ta[i]
		} else {
			x = padding(tb[i])
		}
		if i < len(tb) {
			y = tb[i]
		} else {
			y = padding(ta[i])
		}
		if c := compareTokens(x, y); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

// IsPreRelease reports whether the version is an alpha or beta.
func IsPreRelease(version string) bool {
	v := strings.ToLower(version)
	return strings.Contains(v, "alpha") || strings.Contains(v, "beta")
}

// padding returns the token that stands in for a missing position opposite t.
func padding(t token) token {
	if t.numeric {
		return token{text: "0", numeric: true}
	}
	return token{}
}

func compareTokens(x, y token) int {
	switch {
	case x.numeric && y.numeric:
		return compareNumeric(x.text, y.text)
	case x.numeric:
		return 1
	case y.numeric:
		return -1
	}
	rx, ry := rank(x.text), rank(y.text)
	if rx != ry {
		if rx < ry {
			return -1
		}
		return 1
	}
	if rx == unknownQualifierRank {
		return strings.Compare(x.text, y.text)
	}
	return 0
}

func rank(q string) int {
	if r, ok := qualifierRank[q]; ok {
		return r
	}
	return unknownQualifierRank
}

// compareNumeric compares digit strings of arbitrary length.
func compareNumeric(x, y string) int {
	x = strings.TrimLeft(x, "0")
	y = strings.TrimLeft(y, "0")
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	return strings.Compare(x, y)
}

func tokenize(v string) []token {
	var (
		tokens []token
		cur    strings.Builder
		digits bool
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, token{text: cur.String(), numeric: digits})
			cur.Reset()
		}
	}
	for _, r := range strings.ToLower(strings.TrimSpace(v)) {
		switch {
		case r == '.' || r == '-' || r == '_' || r == '+':
			flush()
		case unicode.IsDigit(r):
			if cur.Len() > 0 && !digits {
				flush()
			}
			digits = true
			cur.WriteRune(r)
		default:
			if cur.Len() > 0 && digits {
				flush()
			}
			digits = false
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}
