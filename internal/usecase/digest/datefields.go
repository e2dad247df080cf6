package digest

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"

	"blog-notify/internal/domain/entity"
)

// dateExtractor names one date field of a feed entry and reads its raw value.
type dateExtractor struct {
	field string
	value func(FeedItem) string
}

// dateExtractors is the ordered fallback chain for resolving an entry's
// publish date. A field that is present but unparseable falls through to
// the next one.
var dateExtractors = []dateExtractor{
	{field: "published", value: func(it FeedItem) string { return it.Published }},
	{field: "updated", value: func(it FeedItem) string { return it.Updated }},
	{field: "created", value: func(it FeedItem) string { return it.Created }},
}

// ResolvePublishedAt determines the publish date of a feed entry,
// normalized to UTC. If every date field is missing the error is
// entity.ErrNoPublishDate; if at least one was present but none parsed,
// the error names the first offending field.
func ResolvePublishedAt(item FeedItem) (time.Time, error) {
	var firstErr error

	for _, ex := range dateExtractors {
		raw := ex.value(item)
		if raw == "" {
			continue
		}
		ts, err := dateparse.ParseAny(raw)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("parse %s date %q: %w", ex.field, raw, err)
			}
			continue
		}
		return ts.UTC(), nil
	}

	if firstErr != nil {
		return time.Time{}, firstErr
	}
	return time.Time{}, entity.ErrNoPublishDate
}
