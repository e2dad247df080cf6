package digest_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blog-notify/internal/config"
	"blog-notify/internal/infra/enricher"
	"blog-notify/internal/infra/notifier"
	"blog-notify/internal/infra/scraper"
	"blog-notify/internal/usecase/digest"
)

func feedDocument(now time.Time) string {
	recent := now.Add(-1 * time.Hour).Format(time.RFC1123Z)
	stale := now.Add(-72 * time.Hour).Format(time.RFC1123Z)
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Cloud Blog</title>
    <item>
      <title>Fresh post</title>
      <link>https://example.com/posts/fresh</link>
      <description>Fresh body</description>
      <pubDate>%s</pubDate>
    </item>
    <item>
      <title>Stale post</title>
      <link>https://example.com/posts/stale</link>
      <description>Stale body</description>
      <pubDate>%s</pubDate>
    </item>
  </channel>
</rss>`, recent, stale)
}

func TestEndToEndRun(t *testing.T) {
	now := time.Now()

	feedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, feedDocument(now))
	}))
	defer feedSrv.Close()

	var messages []string
	webhookSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("webhook body is not JSON: %v", err)
		}
		messages = append(messages, payload.Text)
		w.WriteHeader(http.StatusOK)
	}))
	defer webhookSrv.Close()

	cfg := &config.Config{
		WebhookURL: webhookSrv.URL,
		Provider:   config.ProviderNone,
		MaxPostAge: 24 * time.Hour,
		Feeds:      []config.Feed{{Label: "K8s", URL: feedSrv.URL}},
	}

	svc := digest.NewService(cfg,
		scraper.NewRSSFetcher(&http.Client{Timeout: 5 * time.Second}),
		enricher.NewNoOp(),
		notifier.NewChatNotifier(notifier.ChatConfig{WebhookURL: webhookSrv.URL}))

	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Notified != 1 {
		t.Fatalf("Notified = %d, want 1", stats.Notified)
	}
	if stats.Stale != 1 {
		t.Errorf("Stale = %d, want 1", stats.Stale)
	}
	if len(messages) != 1 {
		t.Fatalf("webhook received %d messages, want 1", len(messages))
	}
	want := "K8s: <https://example.com/posts/fresh|Fresh post>"
	if messages[0] != want {
		t.Errorf("message = %q, want %q", messages[0], want)
	}
}

func TestEndToEndWebhookRejection(t *testing.T) {
	now := time.Now()

	feedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedDocument(now))
	}))
	defer feedSrv.Close()

	webhookSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer webhookSrv.Close()

	cfg := &config.Config{
		WebhookURL: webhookSrv.URL,
		Provider:   config.ProviderNone,
		MaxPostAge: 24 * time.Hour,
		Feeds:      []config.Feed{{Label: "K8s", URL: feedSrv.URL}},
	}

	svc := digest.NewService(cfg,
		scraper.NewRSSFetcher(&http.Client{Timeout: 5 * time.Second}),
		enricher.NewNoOp(),
		notifier.NewChatNotifier(notifier.ChatConfig{WebhookURL: webhookSrv.URL}))

	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Notified != 0 {
		t.Errorf("Notified = %d, want 0", stats.Notified)
	}
	if stats.NotifyErrors != 1 {
		t.Errorf("NotifyErrors = %d, want 1", stats.NotifyErrors)
	}
}

func TestEndToEndUnreachableFeed(t *testing.T) {
	webhookSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer webhookSrv.Close()

	cfg := &config.Config{
		WebhookURL: webhookSrv.URL,
		Provider:   config.ProviderNone,
		MaxPostAge: 24 * time.Hour,
		Feeds:      []config.Feed{{Label: "K8s", URL: "http://127.0.0.1:1/rss"}},
	}

	svc := digest.NewService(cfg,
		scraper.NewRSSFetcher(&http.Client{Timeout: time.Second}),
		enricher.NewNoOp(),
		notifier.NewChatNotifier(notifier.ChatConfig{WebhookURL: webhookSrv.URL}))

	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.FeedErrors != 1 {
		t.Errorf("FeedErrors = %d, want 1", stats.FeedErrors)
	}
	if stats.Notified != 0 {
		t.Errorf("Notified = %d, want 0", stats.Notified)
	}
}
