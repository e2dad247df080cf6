// Package digest implements the notification run: poll every configured
// feed, keep the entries published inside the recency window, enrich them,
// and deliver one chat message per new post.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"blog-notify/internal/config"
	"blog-notify/internal/domain/entity"
	"blog-notify/internal/observability/metrics"
	"blog-notify/internal/observability/tracing"
	"blog-notify/internal/utils/text"
)

// FeedItem represents a single entry from an RSS/Atom feed.
// The date fields carry the raw strings from the document so the date
// fallback chain can be applied uniformly regardless of feed dialect.
type FeedItem struct {
	Title     string
	URL       string
	Content   string
	Published string
	Updated   string
	Created   string
}

// FeedFetcher fetches and parses one feed document.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]FeedItem, error)
}

// Enricher produces the optional message parts for an entry body.
// Both operations are best-effort: any error leaves the part absent.
type Enricher interface {
	Summarize(ctx context.Context, body string) (string, error)
	ScoreTechiness(ctx context.Context, body string) (int, error)
}

// Notifier delivers one rendered post to the chat space.
type Notifier interface {
	NotifyPost(ctx context.Context, post *entity.Post) error
}

// Service orchestrates one notification run. Feeds are processed
// sequentially in table order, and entries within a feed in document order.
type Service struct {
	cfg      *config.Config
	fetcher  FeedFetcher
	enricher Enricher
	notifier Notifier

	// now is the clock used for the recency cutoff, overridable in tests.
	now func() time.Time
}

// NewService creates a digest Service with the provided collaborators.
func NewService(cfg *config.Config, fetcher FeedFetcher, enricher Enricher, notifier Notifier) *Service {
	return &Service{
		cfg:      cfg,
		fetcher:  fetcher,
		enricher: enricher,
		notifier: notifier,
		now:      time.Now,
	}
}

// RunStats contains statistics about one notification run.
type RunStats struct {
	Feeds        int
	FeedErrors   int
	Entries      int
	Stale        int
	Undated      int
	Invalid      int
	Duplicates   int
	Notified     int
	NotifyErrors int
	Duration     time.Duration
}

// Run executes one notification run over the configured feed table.
//
// An entry is notified when its resolved publish date is not older than
// the recency window and its canonical URL has not already been notified
// in this run. The URL is recorded as seen only after the webhook accepts
// the message, so a failed delivery leaves later duplicates eligible.
//
// A feed that fails to fetch is logged and skipped; the run continues with
// the remaining feeds and still reports success.
func (s *Service) Run(ctx context.Context) (*RunStats, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "digest.Run",
		trace.WithAttributes(attribute.Int("feeds", len(s.cfg.Feeds))))
	defer span.End()

	start := s.now()
	cutoff := start.UTC().Add(-s.cfg.MaxPostAge)
	stats := &RunStats{Feeds: len(s.cfg.Feeds)}
	seen := make(map[string]struct{})

	slog.InfoContext(ctx, "starting notification run",
		slog.Int("feeds", len(s.cfg.Feeds)),
		slog.Duration("max_post_age", s.cfg.MaxPostAge),
		slog.Time("cutoff", cutoff))

	for _, feed := range s.cfg.Feeds {
		if err := ctx.Err(); err != nil {
			metrics.RecordRun("failure", time.Since(start))
			return stats, fmt.Errorf("run canceled: %w", err)
		}
		s.processFeed(ctx, feed, cutoff, seen, stats)
	}

	stats.Notified = len(seen)
	stats.Duration = time.Since(start)

	if stats.Notified > 0 {
		suffix := "s"
		if stats.Notified == 1 {
			suffix = ""
		}
		slog.InfoContext(ctx, fmt.Sprintf("Found and notified [%d] new post%s", stats.Notified, suffix))
	} else {
		slog.InfoContext(ctx, "No new posts")
	}

	metrics.RecordRun("success", stats.Duration)
	metrics.RecordLastSuccess()
	return stats, nil
}

// processFeed fetches one feed and notifies its eligible entries.
func (s *Service) processFeed(ctx context.Context, feed config.Feed, cutoff time.Time, seen map[string]struct{}, stats *RunStats) {
	ctx, span := tracing.GetTracer().Start(ctx, "digest.processFeed",
		trace.WithAttributes(attribute.String("feed", feed.Label)))
	defer span.End()

	items, err := s.fetcher.Fetch(ctx, feed.URL)
	if err != nil {
		stats.FeedErrors++
		slog.ErrorContext(ctx, "feed fetch failed",
			slog.String("feed", feed.Label),
			slog.String("url", feed.URL),
			slog.String("error", err.Error()))
		return
	}
	stats.Entries += len(items)

	for _, item := range items {
		publishedAt, err := ResolvePublishedAt(item)
		if err != nil {
			stats.Undated++
			metrics.RecordEntryDropped(feed.Label, metrics.DropReasonNoDate)
			slog.WarnContext(ctx, "entry has no usable publish date, skipping",
				slog.String("feed", feed.Label),
				slog.String("url", item.URL),
				slog.String("error", err.Error()))
			continue
		}

		// Entries exactly at the cutoff are still inside the window.
		if publishedAt.Before(cutoff) {
			stats.Stale++
			metrics.RecordEntryDropped(feed.Label, metrics.DropReasonStale)
			continue
		}

		if _, ok := seen[item.URL]; ok {
			stats.Duplicates++
			continue
		}

		post := &entity.Post{
			SourceLabel: feed.Label,
			URL:         item.URL,
			Title:       item.Title,
			RawSummary:  item.Content,
			PublishedAt: publishedAt,
		}
		if err := post.Validate(); err != nil {
			stats.Invalid++
			metrics.RecordEntryDropped(feed.Label, metrics.DropReasonInvalid)
			slog.WarnContext(ctx, "entry is not notifiable, skipping",
				slog.String("feed", feed.Label),
				slog.String("url", item.URL),
				slog.String("error", err.Error()))
			continue
		}

		s.enrich(ctx, post)

		if err := s.notifier.NotifyPost(ctx, post); err != nil {
			stats.NotifyErrors++
			continue
		}
		seen[item.URL] = struct{}{}
	}
}

// enrich asks the enricher for the optional summary and techiness score.
// Any failure leaves the corresponding part absent; the providers log the
// cause themselves.
func (s *Service) enrich(ctx context.Context, post *entity.Post) {
	body := text.StripHTML(post.RawSummary)
	if body == "" {
		return
	}

	if summary, err := s.enricher.Summarize(ctx, body); err == nil {
		post.Summary = summary
	}
	if score, err := s.enricher.ScoreTechiness(ctx, body); err == nil {
		post.Techiness = &score
	}
}
