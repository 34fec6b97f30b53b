// Package normalize turns raw query text into the canonical lower-case,
// space-separated form every later stage works on.
package normalize

import (
	"strings"
	"unicode"
)

// codeLetterRun is the longest letter run kept glued to digits. Short runs
// are code prefixes and suffixes (ae12345, 12345abc); longer runs are words
// typed without a space (contract123).
const codeLetterRun = 3

// Normalize lower-cases s, splits camelCase and glued word/number runs,
// replaces symbols with spaces and collapses whitespace. It is pure and
// idempotent: Normalize(Normalize(s)) == Normalize(s).
//
// Apostrophes are dropped rather than spaced so contractions stay one word
// ("what's" -> "whats"). A '-' or '/' between two digits is kept as a date
// separator, and a '-' between a short letter run and digits is kept as
// part of a code (abc-1234).
func Normalize(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	runes := lowerWithCamelBreaks(s)
	runes = dropApostrophes(runes)
	runes = replaceSymbols(runes)
	runes = splitWordNumberRuns(runes)
	return strings.Join(strings.Fields(string(runes)), " ")
}

func lowerWithCamelBreaks(s string) []rune {
	in := []rune(s)
	out := make([]rune, 0, len(in)+4)
	for i, r := range in {
		if i > 0 && unicode.IsLower(in[i-1]) && unicode.IsUpper(r) {
			out = append(out, ' ')
		}
		out = append(out, unicode.ToLower(r))
	}
	return out
}

func dropApostrophes(in []rune) []rune {
	out := in[:0]
	for _, r := range in {
		switch r {
		case '\'', '’', '‘', '`':
			continue
		}
		out = append(out, r)
	}
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func replaceSymbols(in []rune) []rune {
	out := make([]rune, len(in))
	for i, r := range in {
		switch {
		case isWordRune(r):
			out[i] = r
		case (r == '-' || r == '/') && digitAt(in, i-1) && digitAt(in, i+1):
			out[i] = r
		case r == '-' && digitAt(in, i+1) && codePrefixEndsAt(in, i-1):
			out[i] = r
		default:
			out[i] = ' '
		}
	}
	return out
}

func digitAt(in []rune, i int) bool {
	return i >= 0 && i < len(in) && unicode.IsDigit(in[i])
}

// codePrefixEndsAt reports whether a run of 2..codeLetterRun+1 letters ends
// at index i and is not itself glued to a preceding digit
func codePrefixEndsAt(in []rune, i int) bool {
	n := 0
	for j := i; j >= 0 && unicode.IsLetter(in[j]); j-- {
		n++
	}
	start := i - n
	if start >= 0 && unicode.IsDigit(in[start]) {
		return false
	}
	return n >= 2 && n <= codeLetterRun+1
}

// splitWordNumberRuns inserts a space at each letter/digit boundary whose
// letter run is longer than codeLetterRun
func splitWordNumberRuns(in []rune) []rune {
	out := make([]rune, 0, len(in)+4)
	for i, r := range in {
		if i > 0 && boundary(in[i-1], r) && letterRunAround(in, i) > codeLetterRun {
			out = append(out, ' ')
		}
		out = append(out, r)
	}
	return out
}

func boundary(prev, cur rune) bool {
	return (unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
		(unicode.IsDigit(prev) && unicode.IsLetter(cur))
}

// letterRunAround measures the letter run touching the boundary before i
func letterRunAround(in []rune, i int) int {
	n := 0
	if unicode.IsLetter(in[i-1]) {
		for j := i - 1; j >= 0 && unicode.IsLetter(in[j]); j-- {
			n++
		}
		return n
	}
	for j := i; j < len(in) && unicode.IsLetter(in[j]); j++ {
		n++
	}
	return n
}
