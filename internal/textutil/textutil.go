// Package textutil provides text cleanup helpers for corpus and input lines.
package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	newlineRe    = regexp.MustCompile(`[\n\r]`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// NormalizeWhitespaces replaces newlines and multiple whitespace with a single space.
func NormalizeWhitespaces(text string) string {
	text = newlineRe.ReplaceAllString(text, " ")
	return multiSpaceRe.ReplaceAllString(text, " ")
}

// NormalizeWidth folds compatibility characters with NFKC: full-width Latin
// and digits become ASCII, half-width katakana becomes full-width.
func NormalizeWidth(text string) string {
	return norm.NFKC.String(text)
}

// Normalize applies NFKC, collapses whitespace runs into single spaces and
// trims the result.
func Normalize(text string) string {
	return strings.TrimSpace(NormalizeWhitespaces(NormalizeWidth(text)))
}

// RemoveSpaces drops the ASCII spaces separating the words of a
// gold-segmented sentence, turning it back into raw text. Other whitespace,
// such as U+3000, is part of the text.
func RemoveSpaces(text string) string {
	return strings.ReplaceAll(text, " ", "")
}

// Words splits a gold-segmented sentence on single ASCII spaces and drops
// empty words, the way training reads corpus lines.
func Words(text string) []string {
	words := []string{}
	for _, w := range strings.Split(text, " ") {
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}
