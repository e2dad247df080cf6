// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Post and Feed metadata, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// Post represents one feed entry that survived the recency filter.
// It lives for a single run: constructed during fetch, enriched in place,
// consumed once by the notifier, then discarded.
type Post struct {
	SourceLabel string
	URL         string
	Title       string
	RawSummary  string
	Summary     string
	Techiness   *int
	PublishedAt time.Time
}

// Validate checks that the post carries the fields required for notification.
// PublishedAt is expected to be an aware UTC timestamp set by the recency filter.
func (p *Post) Validate() error {
	if p.URL == "" {
		return &ValidationError{Field: "URL", Message: "must not be empty"}
	}
	if p.Title == "" {
		return &ValidationError{Field: "Title", Message: "must not be empty"}
	}
	if p.PublishedAt.IsZero() {
		return &ValidationError{Field: "PublishedAt", Message: "must be set"}
	}
	return nil
}
