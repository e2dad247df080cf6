// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Feed metrics track feed fetching outcomes and performance
var (
	// FeedEntriesFetchedTotal counts entries returned by each feed
	FeedEntriesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_entries_fetched_total",
			Help: "Total number of feed entries returned per feed",
		},
		[]string{"feed"},
	)

	// FeedFetchDuration measures feed fetch+parse duration in seconds
	FeedFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_fetch_duration_seconds",
			Help:    "Feed fetch and parse duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"feed"},
	)

	// FeedFetchErrors counts feed fetch/parse failures by feed and error type
	FeedFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fetch_errors_total",
			Help: "Total number of feed fetch errors",
		},
		[]string{"feed", "error_type"},
	)

	// FeedEntriesDroppedTotal counts entries dropped before notification
	FeedEntriesDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_entries_dropped_total",
			Help: "Total number of feed entries dropped before notification",
		},
		[]string{"feed", "reason"},
	)
)

// Enrichment metrics track the generative summarize/score calls
var (
	// EnrichmentTotal counts enrichment operations by operation and status
	EnrichmentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_operations_total",
			Help: "Total number of enrichment operations",
		},
		[]string{"operation", "status"},
	)

	// EnrichmentDuration measures enrichment call duration in seconds
	EnrichmentDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enrichment_duration_seconds",
			Help:    "Enrichment call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"operation"},
	)
)

// Notification metrics track webhook deliveries
var (
	// NotificationsTotal counts webhook delivery attempts by status
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Total number of webhook notification attempts",
		},
		[]string{"status"},
	)
)

// Run metrics track whole-run outcomes
var (
	// RunsTotal counts runs by outcome
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runs_total",
			Help: "Total number of notifier runs",
		},
		[]string{"status"},
	)

	// RunDuration measures whole-run duration in seconds
	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "run_duration_seconds",
			Help:    "Whole-run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	// LastRunSuccessTimestamp records the unix time of the last successful run
	LastRunSuccessTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "last_run_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful run",
		},
	)
)
