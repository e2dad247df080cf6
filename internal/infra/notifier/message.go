// Package notifier formats and delivers chat notifications for feed entries.
// It includes a webhook implementation for Google Chat style endpoints and a
// dry-run implementation that logs instead of posting.
package notifier

import (
	"fmt"
	"strings"

	"blog-notify/internal/domain/entity"
)

// techinessGlyphs maps a techiness score to its keycap glyph.
// Scores outside the map render no prefix at all.
var techinessGlyphs = map[int]string{
	1: "1️⃣",
	2: "2️⃣",
	3: "3️⃣",
	4: "4️⃣",
	5: "5️⃣",
}

// gkeLabel is the display label substituted for any source label that
// mentions Google Kubernetes Engine.
const gkeLabel = "GKE feature log"

// BuildMessage renders the chat message for a post.
//
// The message is assembled from four parts in order:
//   - an optional "<glyph> / 5️⃣: " techiness prefix
//   - an optional "<label>: " source prefix
//   - the mandatory "<url|title>" link token
//   - an optional blank line followed by the trimmed summary
func BuildMessage(post *entity.Post) string {
	var b strings.Builder

	if post.Techiness != nil {
		if glyph, ok := techinessGlyphs[*post.Techiness]; ok {
			b.WriteString(glyph)
			b.WriteString(" / ")
			b.WriteString(techinessGlyphs[5])
			b.WriteString(": ")
		}
	}

	if label := renderSourceLabel(post.SourceLabel); label != "" {
		b.WriteString(label)
		b.WriteString(": ")
	}

	b.WriteString(fmt.Sprintf("<%s|%s>", post.URL, post.Title))

	if summary := strings.TrimSpace(post.Summary); summary != "" {
		b.WriteString("\n\n")
		b.WriteString(summary)
	}

	return b.String()
}

// renderSourceLabel maps a feed label to the label shown in the message.
// Labels mentioning Google Kubernetes Engine are shortened for readability.
func renderSourceLabel(label string) string {
	if strings.Contains(label, "Google Kubernetes Engine") {
		return gkeLabel
	}
	return label
}
