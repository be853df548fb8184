package app

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeTitle reduces a title to its alphabetic skeleton for comparison:
// accents removed (NFD -> strip Mn -> NFC), lowercased, every non-letter
// replaced with a space. Runs of spaces are deliberately not collapsed, so
// "Naruto: Shippuden" and "Naruto Shippuden" normalize differently; the
// resolver's cascading filters rely on that to fall through to containment
// and first-candidate defaults the way provider catalogs require.
func NormalizeTitle(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	if s == "" {
		return ""
	}

	tr := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(tr, s); err == nil {
		s = out
	}

	b := strings.Builder{}
	b.Grow(len(s))
	for _, ch := range s {
		if unicode.IsLetter(ch) {
			b.WriteRune(ch)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.TrimSpace(b.String())
}

// Titles AniList romanizes differently from the streaming catalogs.
// Keyed and valued in normalized (alphabetic, lowercase) form.
var knownMisspellings = map[string]string{
	"naruto shippuuden":                "naruto shippuden",
	"ao no exorcist":                   "blue exorcist",
	"kimetsu no yaiba":                 "demon slayer kimetsu no yaiba",
	"yakusoku no neverland":            "the promised neverland",
	"shingeki no kyojin the final season": "attack on titan final season",
}

// CorrectTitle swaps a title known to be misspelled (relative to the
// provider catalogs) for its corrected form. Unknown titles pass through.
func CorrectTitle(title string) string {
	if fixed, ok := knownMisspellings[NormalizeTitle(title)]; ok {
		return fixed
	}
	return title
}
