package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// NormalizeIdent normalizes an identifier for loose matching.
// The normalization pipeline:
// 1. Tokenize CamelCase and split on separators (_, -, spaces).
// 2. Join the tokens.
// 3. Unicode case-fold the result.
//
// "ReadWrite", "read_write" and "READ-WRITE" all normalize to "readwrite".
func NormalizeIdent(s string) string {
	return folder.String(strings.Join(tokenizeCamelCase(s), ""))
}

// TokenizeIdent splits an identifier into case-folded tokens.
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = folder.String(t)
	}

	return tokens
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "ReadWrite" -> ["Read", "Write"]
//   - "in_stock" -> ["in", "stock"]
//   - "HTTPStatus" -> ["HTTP", "Status"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()

			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

// startsToken reports whether a new token begins at position i: on a
// lower-to-upper transition, or at the last capital of an acronym.
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
