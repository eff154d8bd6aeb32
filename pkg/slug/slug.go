// Package slug derives filesystem-safe names from free-form marker names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// disallowed matches anything that is not a letter, digit, underscore,
	// hyphen or whitespace.
	disallowed = regexp.MustCompile(`[^\p{L}\p{N}_\s\v\p{Z}-]`)
	// separators matches runs of whitespace and hyphens.
	separators = regexp.MustCompile(`[\s\v\p{Z}-]+`)
)

// Sanitize turns a marker name into a filename component. Everything from the
// first hyphen onwards is treated as a free-form note and dropped, then the
// remainder is slugified to ASCII.
//
//	Sanitize("SceneA - take two") == "scenea"
func Sanitize(name string) string {
	if i := strings.IndexByte(name, '-'); i >= 0 {
		name = name[:i]
	}
	return Slugify(name, false)
}

// Slugify lowercases value, drops characters that are not alphanumerics,
// underscores, hyphens or whitespace, collapses whitespace and hyphen runs
// into a single hyphen and trims leading and trailing hyphens and underscores.
// Unless allowUnicode is set, the result is reduced to ASCII.
func Slugify(value string, allowUnicode bool) string {
	if allowUnicode {
		value = norm.NFKC.String(value)
	} else {
		value = toASCII(norm.NFKD.String(value))
	}
	value = disallowed.ReplaceAllString(strings.ToLower(value), "")
	value = separators.ReplaceAllString(value, "-")
	return strings.Trim(value, "-_")
}

// toASCII drops every non-ASCII rune. Applied after NFKD this strips accents
// from their base letters.
func toASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
}
