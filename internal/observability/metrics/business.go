package metrics

import (
	"time"
)

// Drop reasons recorded by RecordEntryDropped.
const (
	DropReasonStale   = "stale"
	DropReasonNoDate  = "no_date"
	DropReasonInvalid = "invalid"
)

// RecordFeedFetched records a successful feed fetch: its duration and the
// number of entries the feed returned.
func RecordFeedFetched(feed string, duration time.Duration, entries int) {
	FeedFetchDuration.WithLabelValues(feed).Observe(duration.Seconds())
	FeedEntriesFetchedTotal.WithLabelValues(feed).Add(float64(entries))
}

// RecordFeedFetchError records a feed fetch/parse failure.
// The error type should be a short stable token (e.g. "fetch_failed").
func RecordFeedFetchError(feed, errorType string) {
	FeedFetchErrors.WithLabelValues(feed, errorType).Inc()
}

// RecordEntryDropped records an entry excluded before notification.
// Reason should be one of the DropReason constants.
func RecordEntryDropped(feed, reason string) {
	FeedEntriesDroppedTotal.WithLabelValues(feed, reason).Inc()
}

// RecordEnrichment records the outcome and duration of one enrichment call.
// Operation is "summarize" or "score".
func RecordEnrichment(operation string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	EnrichmentTotal.WithLabelValues(operation, status).Inc()
	EnrichmentDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordNotification records one webhook delivery attempt.
func RecordNotification(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	NotificationsTotal.WithLabelValues(status).Inc()
}

// RecordRun records a completed run and its duration.
// Status should be "success" or "failure".
func RecordRun(status string, duration time.Duration) {
	RunsTotal.WithLabelValues(status).Inc()
	RunDuration.Observe(duration.Seconds())
}

// RecordLastSuccess updates the last-successful-run timestamp gauge.
func RecordLastSuccess() {
	LastRunSuccessTimestamp.SetToCurrentTime()
}
