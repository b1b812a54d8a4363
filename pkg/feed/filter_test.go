package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const testTimeout = 5 * time.Second

func serveFeed(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(body))
	}))
}

func TestFilter_Filter_Cutoff(t *testing.T) {
	rssXML := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Test Feed</title>
		<link>https://example.com</link>
		<item>
			<title>Old Article</title>
			<link>https://example.com/old</link>
			<pubDate>Mon, 06 Jan 2020 00:00:00 GMT</pubDate>
		</item>
		<item>
			<title>New Article</title>
			<link>https://example.com/new</link>
			<pubDate>Mon, 05 Jan 2026 00:00:00 GMT</pubDate>
		</item>
		<item>
			<title>Undated Article</title>
			<link>https://example.com/undated</link>
		</item>
	</channel>
</rss>`

	server := serveFeed(t, rssXML)
	defer server.Close()

	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	filter := NewFilter(testTimeout)

	entries, err := filter.Filter(context.Background(), server.URL, cutoff)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Title != "New Article" {
		t.Errorf("Expected 'New Article' first, got %q", entries[0].Title)
	}
	if entries[0].PublishedAt == nil {
		t.Error("Expected a timestamp on the dated entry")
	}

	// The undated entry is kept and carries no timestamp.
	if entries[1].Title != "Undated Article" {
		t.Errorf("Expected 'Undated Article', got %q", entries[1].Title)
	}
	if entries[1].PublishedAt != nil {
		t.Errorf("Expected nil timestamp, got %v", entries[1].PublishedAt)
	}
}

func TestFilter_Filter_CutoffIsStrict(t *testing.T) {
	// An entry exactly at the cutoff is kept; only strictly older
	// entries are excluded.
	rssXML := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Test Feed</title>
		<item>
			<title>At Cutoff</title>
			<link>https://example.com/at</link>
			<pubDate>Wed, 01 Jan 2025 00:00:00 GMT</pubDate>
		</item>
	</channel>
</rss>`

	server := serveFeed(t, rssXML)
	defer server.Close()

	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	filter := NewFilter(testTimeout)

	entries, err := filter.Filter(context.Background(), server.URL, cutoff)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected the at-cutoff entry to be kept, got %d entries", len(entries))
	}
}

func TestFilter_Filter_UpdatedFallback(t *testing.T) {
	atomXML := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Test Atom Feed</title>
	<entry>
		<title>Updated Only</title>
		<link href="https://example.com/updated"/>
		<updated>2026-02-01T12:00:00Z</updated>
	</entry>
</feed>`

	server := serveFeed(t, atomXML)
	defer server.Close()

	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	filter := NewFilter(testTimeout)

	entries, err := filter.Filter(context.Background(), server.URL, cutoff)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].PublishedAt == nil {
		t.Fatal("Expected the updated timestamp to be used")
	}
	if entries[0].PublishedAt.Year() != 2026 {
		t.Errorf("Unexpected timestamp: %v", entries[0].PublishedAt)
	}
}

func TestFilter_Filter_MissingTitleAndLink(t *testing.T) {
	rssXML := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Test Feed</title>
		<item>
			<description>An item with no title or link</description>
		</item>
	</channel>
</rss>`

	filter := NewFilter(testTimeout)
	entries, err := filter.FilterString(rssXML, time.Time{})
	if err != nil {
		t.Fatalf("FilterString failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Title != "Untitled" {
		t.Errorf("Expected default title 'Untitled', got %q", entries[0].Title)
	}
	if entries[0].URL != "" {
		t.Errorf("Expected empty URL, got %q", entries[0].URL)
	}
}

func TestFilter_Filter_Malformed(t *testing.T) {
	filter := NewFilter(testTimeout)
	_, err := filter.FilterString("this is not a feed", time.Time{})
	if err == nil {
		t.Error("Expected error for malformed feed, got nil")
	}
}

func TestCleanSummary(t *testing.T) {
	summary := CleanSummary("<p>Hello   world</p>" + strings.Repeat("x", 400))

	if len([]rune(summary)) != 303 {
		t.Errorf("Expected 303 characters, got %d", len([]rune(summary)))
	}
	if !strings.HasSuffix(summary, "...") {
		t.Errorf("Expected ellipsis suffix, got %q", summary[len(summary)-10:])
	}
	if !strings.HasPrefix(summary, "Hello world ") {
		t.Errorf("Expected stripped, collapsed prefix, got %q", summary[:20])
	}
	if strings.Contains(summary, "<") {
		t.Error("Expected all markup removed")
	}
}

func TestCleanSummary_Short(t *testing.T) {
	if got := CleanSummary("  <b>short</b>\n\tsummary  "); got != "short summary" {
		t.Errorf("Expected 'short summary', got %q", got)
	}
}

func TestCleanSummary_Plain(t *testing.T) {
	if got := CleanSummary("no markup here"); got != "no markup here" {
		t.Errorf("Expected passthrough, got %q", got)
	}
}
