package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Cloud Blog</title>
    <link>https://example.com/</link>
    <item>
      <title>First post</title>
      <link>https://example.com/posts/1</link>
      <description>Short description one</description>
      <pubDate>Mon, 24 Aug 2026 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Second post</title>
      <link>https://example.com/posts/2</link>
      <description>Short description two</description>
      <pubDate>Tue, 25 Aug 2026 10:30:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

const sampleAtom = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Release notes</title>
  <entry>
    <title>New feature</title>
    <link href="https://example.com/notes/1"/>
    <updated>2026-08-25T08:00:00Z</updated>
    <content type="html">&lt;p&gt;Feature body&lt;/p&gt;</content>
  </entry>
</feed>`

func newTestClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Second}
}

func TestRSSFetcherFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	f := NewRSSFetcher(newTestClient())
	items, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Title != "First post" {
		t.Errorf("items[0].Title = %q, want %q", items[0].Title, "First post")
	}
	if items[0].URL != "https://example.com/posts/1" {
		t.Errorf("items[0].URL = %q", items[0].URL)
	}
	if items[0].Content != "Short description one" {
		t.Errorf("items[0].Content = %q", items[0].Content)
	}
	if items[0].Published == "" {
		t.Error("items[0].Published is empty, want raw pubDate string")
	}
}

func TestRSSFetcherFetchAtom(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(sampleAtom))
	}))
	defer srv.Close()

	f := NewRSSFetcher(newTestClient())
	items, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Updated == "" {
		t.Error("items[0].Updated is empty, want raw updated string")
	}
	if items[0].Content == "" {
		t.Error("items[0].Content is empty, want entry content")
	}
}

func TestRSSFetcherFetchContentFallsBackToDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	f := NewRSSFetcher(newTestClient())
	items, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	for i, it := range items {
		if it.Content == "" {
			t.Errorf("items[%d].Content is empty, want description fallback", i)
		}
	}
}

func TestRSSFetcherFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewRSSFetcher(newTestClient())
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Error("Fetch() from failing server succeeded, want error")
	}
}

func TestRSSFetcherFetchInvalidXML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not a feed"))
	}))
	defer srv.Close()

	f := NewRSSFetcher(newTestClient())
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Error("Fetch() of non-feed body succeeded, want error")
	}
}

func TestRSSFetcherFetchContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	f := NewRSSFetcher(newTestClient())
	if _, err := f.Fetch(ctx, srv.URL); err == nil {
		t.Error("Fetch() with expired context succeeded, want error")
	}
}
