package domain

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a display name into a URL slug: lowercase, diacritics
// stripped, runs of anything else collapsed into single hyphens.
func Slugify(name string) string {
	lower := strings.ToLower(name)

	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		lower,
	)
	if err != nil {
		stripped = lower
	}

	slug := slugSeparators.ReplaceAllString(stripped, "-")
	return strings.Trim(slug, "-")
}
