// Package text provides utilities for text processing and analysis shared by
// the enrichment pipeline.
package text

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML removes markup from a feed-provided summary and returns the
// trimmed plain text. Input that fails to parse is returned unchanged so a
// malformed description still reaches the enricher.
func StripHTML(input string) string {
	if input == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return strings.TrimSpace(input)
	}

	return strings.TrimSpace(doc.Text())
}

// CountRunes counts the number of Unicode characters (runes) in the given text.
// It correctly handles multi-byte characters and emoji by counting runes
// instead of bytes.
func CountRunes(text string) int {
	return len([]rune(text))
}
