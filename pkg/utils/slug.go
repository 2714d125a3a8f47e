package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugStrip   = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugHyphens = regexp.MustCompile(`-+`)
	deaccenter  = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify derives the URL form of a name: accents stripped, lowered,
// non-alphanumerics removed, whitespace collapsed to single hyphens.
// The result is deterministic for a given input.
func Slugify(text string) string {
	if deaccented, _, err := transform.String(deaccenter, text); err == nil {
		text = deaccented
	}

	text = strings.ToLower(strings.TrimSpace(text))
	text = slugStrip.ReplaceAllString(text, "")
	text = slugSpaces.ReplaceAllString(text, "-")
	text = slugHyphens.ReplaceAllString(text, "-")

	return strings.Trim(text, "-")
}
