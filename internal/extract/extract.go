// Package extract turns free Spanish text into candidate words for dictionary lookup.
package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// spanishLetters are kept verbatim in tokens alongside [a-z0-9_].
const spanishLetters = "áéíóúñüç"

// Words returns the deduplicated candidate words of text in first-occurrence order.
//
// Tokens keep their accents because the dictionary is accent-sensitive; only
// the stop-word check compares accent-folded forms.
func Words(text string) []string {
	text = strings.ToLower(norm.NFC.String(text))
	tokens := strings.FieldsFunc(text, func(r rune) bool { return !isWordRune(r) })

	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !keep(tok) {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// IsStopWord reports whether w is a stop word, ignoring case and accents.
func IsStopWord(w string) bool {
	_, ok := stopWords[Fold(strings.ToLower(w))]
	return ok
}

// Fold strips combining diacritical marks from s ("rápido" -> "rapido").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func keep(tok string) bool {
	if utf8.RuneCountInString(tok) <= 2 {
		return false
	}
	if isNumeric(tok) {
		return false
	}
	return !IsStopWord(tok)
}

func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
		return true
	}
	return strings.ContainsRune(spanishLetters, r)
}

func isNumeric(tok string) bool {
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
