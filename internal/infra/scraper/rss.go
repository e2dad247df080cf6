// Package scraper fetches and parses RSS/Atom feed documents.
// It uses the gofeed library and guards each upstream with a circuit breaker.
package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"blog-notify/internal/observability/metrics"
	"blog-notify/internal/resilience/circuitbreaker"
	"blog-notify/internal/usecase/digest"
)

// RSSFetcher implements digest.FeedFetcher using the gofeed library.
// Each fetch is attempted exactly once; the circuit breaker only rejects
// requests while an upstream is known to be failing, it never re-issues them.
type RSSFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewRSSFetcher creates a new RSSFetcher with the given HTTP client.
func NewRSSFetcher(client *http.Client) *RSSFetcher {
	return &RSSFetcher{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
	}
}

// Fetch retrieves and parses an RSS/Atom feed from the given URL.
// Returns the parsed entries in document order.
func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) ([]digest.FeedItem, error) {
	start := time.Now()

	cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
		return f.doFetch(ctx, feedURL)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("feed fetch circuit breaker open, request rejected",
				slog.String("service", "feed-fetch"),
				slog.String("url", feedURL),
				slog.String("state", f.circuitBreaker.State().String()))
			metrics.RecordFeedFetchError(feedURL, "circuit_open")
			return nil, err
		}
		metrics.RecordFeedFetchError(feedURL, "fetch")
		return nil, err
	}

	items := cbResult.([]digest.FeedItem)
	metrics.RecordFeedFetched(feedURL, time.Since(start), len(items))
	return items, nil
}

// doFetch performs the actual feed fetch and parse.
func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string) ([]digest.FeedItem, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = "blog-notify"
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]digest.FeedItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		content := it.Content
		if content == "" {
			content = it.Description
		}

		items = append(items, digest.FeedItem{
			Title:     it.Title,
			URL:       it.Link,
			Content:   content,
			Published: it.Published,
			Updated:   it.Updated,
			Created:   it.Custom["created"],
		})
	}

	return items, nil
}
