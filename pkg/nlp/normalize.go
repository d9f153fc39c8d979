// Package nlp holds the question-understanding side of the pipeline: text
// normalization, the reference corpus, similarity-based intent classification
// and rule-based filter extraction.
package nlp

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Decompose, drop combining marks, recompose. Turns "açúcar" into "acucar".
	diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	disallowedChars = regexp.MustCompile(`[^a-z0-9 /]`)
	repeatedSpaces  = regexp.MustCompile(`\s+`)
)

// Normalize lower-cases, strips diacritics, removes every character outside
// [a-z0-9 /], collapses whitespace and trims. The slash survives so date
// literals like 01/02/2024 remain recognizable. Pure and total: empty input
// yields empty output, and the function is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = StripDiacritics(text)
	text = disallowedChars.ReplaceAllString(text, "")
	text = repeatedSpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// StripDiacritics removes combining marks without touching anything else.
// The query executor also uses it for the accent-insensitive retry.
func StripDiacritics(text string) string {
	stripped, _, err := transform.String(diacriticStripper, text)
	if err != nil {
		// The transform chain cannot fail on valid UTF-8; on malformed
		// input fall back to the original text rather than erroring.
		return text
	}
	return stripped
}
