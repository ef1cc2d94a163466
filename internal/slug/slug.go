package slug

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// Anything that is not a letter, digit, underscore, whitespace or dash
	// is dropped outright.
	invalid = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)

	// Runs of whitespace and dashes collapse to a single dash.
	separators = regexp.MustCompile(`[\s-]+`)
)

// Make converts s into a lowercase token containing only word characters
// and single dashes. Leading and trailing dashes and underscores are
// stripped. Unicode input is NFKC-normalized, so non-Latin scripts are
// preserved rather than transliterated.
func Make(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	s = invalid.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-_")
}
