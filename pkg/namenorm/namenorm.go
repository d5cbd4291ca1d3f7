// Package namenorm canonicalizes person names for deduplication and matching.
//
// Normalize produces the canonical lowercase, accent-stripped,
// whitespace-collapsed form used as the identity key. NormalizeLoose
// additionally drops punctuation so "O'Brien" matches "OBrien".
package namenorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters that are distinct characters rather than accented ones, so NFD
// leaves them alone and they need explicit ASCII substitutes.
var specialLetters = map[rune]rune{
	// Polish
	'Ł': 'L', 'ł': 'l',
	// Nordic
	'Ø': 'O', 'ø': 'o',
	'Æ': 'A', 'æ': 'a',
	'Å': 'A', 'å': 'a',
	// German
	'ß': 's',
	// Icelandic
	'Ð': 'D', 'ð': 'd',
	'Þ': 'T', 'þ': 't',
	// Croatian/Serbian
	'Đ': 'D', 'đ': 'd',
	// Turkish
	'İ': 'I', 'ı': 'i',
	'Ğ': 'G', 'ğ': 'g',
	'Ş': 'S', 'ş': 's',
}

// Combining diacritical mark ranges removed after NFD decomposition.
var combiningMarks = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0300, Hi: 0x036F, Stride: 1}, // Combining Diacritical Marks
		{Lo: 0x1AB0, Hi: 0x1AFF, Stride: 1}, // Extended
		{Lo: 0x1DC0, Hi: 0x1DFF, Stride: 1}, // Supplement
		{Lo: 0x20D0, Hi: 0x20FF, Stride: 1}, // For Symbols
		{Lo: 0xFE20, Hi: 0xFE2F, Stride: 1}, // Half Marks
	},
}

// Normalize returns the canonical form of a name: special letters replaced,
// NFD-decomposed, combining marks stripped, lowercased, whitespace collapsed.
// It is pure, total, and idempotent.
func Normalize(name string) string {
	replaced := strings.Map(func(r rune) rune {
		if sub, ok := specialLetters[r]; ok {
			return sub
		}
		return r
	}, name)

	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(combiningMarks)))
	stripped, _, err := transform.String(stripper, replaced)
	if err != nil {
		// transform.String only fails on malformed input; fall back to
		// the substituted text so Normalize stays total.
		stripped = replaced
	}

	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

// NormalizeLoose normalizes and additionally removes all non-alphanumeric,
// non-space characters (hyphens, apostrophes, periods).
func NormalizeLoose(name string) string {
	filtered := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, Normalize(name))

	return strings.Join(strings.Fields(filtered), " ")
}

// Initials returns the uppercase first letter of each word in the name.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	return b.String()
}

// Similarity scores two names in [0, 1]. Exact normalized match scores 1.0,
// loose match 0.95, anything else the Jaccard index of the normalized word
// sets. Callers needing a hard dedup threshold should compare Normalize
// results directly rather than thresholding this score.
func Similarity(a, b string) float64 {
	normA, normB := Normalize(a), Normalize(b)
	if normA == normB {
		return 1.0
	}

	if NormalizeLoose(a) == NormalizeLoose(b) {
		return 0.95
	}

	wordsA := tokenSet(normA)
	wordsB := tokenSet(normB)

	intersection := 0
	for w := range wordsA {
		if wordsB[w] {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

// Family-name particles absorbed into the family span by Split.
var familyParticles = map[string]bool{
	"van": true, "von": true, "de": true, "del": true, "della": true,
	"di": true, "da": true, "la": true, "le": true, "du": true,
	"des": true, "ten": true, "ter": true, "vander": true,
}

// Split decomposes a full name into given and family parts. The family name
// is the last token extended leftward over a trailing run of recognized
// lowercase particles ("Ludwig van Beethoven" -> "Ludwig", "van Beethoven").
// An empty return value means that part is absent. Best-effort heuristic, not
// a linguistic guarantee.
func Split(full string) (given, family string) {
	parts := strings.Fields(full)

	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return "", parts[0]
	}

	familyStart := len(parts) - 1
	for i := len(parts) - 2; i >= 0; i-- {
		if !familyParticles[strings.ToLower(parts[i])] {
			break
		}
		familyStart = i
	}

	if familyStart > 0 {
		given = strings.Join(parts[:familyStart], " ")
	}
	family = strings.Join(parts[familyStart:], " ")
	return given, family
}

// Variants returns candidate canonical forms to probe against the registry:
// the normalized full name, the loose form when it differs, the normalized
// family name alone, and initials-plus-family ("a einstein"). Duplicates are
// omitted, first-seen order preserved.
func Variants(full string) []string {
	var variants []string
	add := func(v string) {
		if v == "" {
			return
		}
		for _, existing := range variants {
			if existing == v {
				return
			}
		}
		variants = append(variants, v)
	}

	normalized := Normalize(full)
	add(normalized)

	if loose := NormalizeLoose(full); loose != normalized {
		add(loose)
	}

	given, family := Split(full)
	if family != "" {
		add(Normalize(family))
	}
	if given != "" && family != "" {
		add(strings.ToLower(Initials(given)) + " " + Normalize(family))
	}

	return variants
}
