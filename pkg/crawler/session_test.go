package crawler

import (
	"context"
	"fmt"
	"testing"

	"readnext/pkg/domain"
)

func sessionFixture() ([]domain.Source, *Crawler) {
	sources := make([]domain.Source, 6)
	feeds := make(map[string]string)
	entries := make(map[string][]domain.Entry)

	for i := range sources {
		pageURL := fmt.Sprintf("https://blog%d.example.com", i)
		sources[i] = domain.Source{Name: fmt.Sprintf("Blog %d", i), URLs: []string{pageURL}}

		// Even-numbered sources have a feed with one entry; odd ones
		// have nothing at all.
		if i%2 == 0 {
			feedURL := pageURL + "/feed"
			feeds[pageURL] = feedURL
			entries[feedURL] = []domain.Entry{entry(fmt.Sprintf("post-%d", i))}
		}
	}

	return sources, New(&fakeLocator{feeds: feeds}, &fakeFilter{entries: entries}, nil, nil)
}

func TestSession_Run_Sequential(t *testing.T) {
	sources, c := sessionFixture()
	session := NewSession(c, 1)

	result := session.Run(context.Background(), sources, cutoff, false)

	if len(result.Records) != len(sources) {
		t.Fatalf("Expected %d records, got %d", len(sources), len(result.Records))
	}
	for i, rec := range result.Records {
		if rec.Name != sources[i].Name {
			t.Errorf("Record %d out of order: %q", i, rec.Name)
		}
	}

	summary := result.Summarize()
	if summary.RSS != 3 || summary.Failed != 3 || summary.Screenshots != 0 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if summary.TotalEntries != 3 {
		t.Errorf("Expected 3 total entries, got %d", summary.TotalEntries)
	}
}

func TestSession_Run_ConcurrentPreservesOrder(t *testing.T) {
	sources, c := sessionFixture()
	session := NewSession(c, 4)

	result := session.Run(context.Background(), sources, cutoff, false)

	if len(result.Records) != len(sources) {
		t.Fatalf("Expected %d records, got %d", len(sources), len(result.Records))
	}
	for i, rec := range result.Records {
		if rec.Name != sources[i].Name {
			t.Errorf("Record %d out of order: %q", i, rec.Name)
		}
	}
}

func TestSession_Run_SummaryInvariants(t *testing.T) {
	sources, c := sessionFixture()
	session := NewSession(c, 2)

	result := session.Run(context.Background(), sources, cutoff, false)
	summary := result.Summarize()

	if summary.RSS+summary.Screenshots+summary.Failed != len(result.Records) {
		t.Errorf("Method counters do not add up: %+v over %d records", summary, len(result.Records))
	}

	total := 0
	for _, rec := range result.Records {
		total += len(rec.Entries)
	}
	if summary.TotalEntries != total {
		t.Errorf("Expected %d total entries, got %d", total, summary.TotalEntries)
	}
}

func TestSession_Run_NoSources(t *testing.T) {
	_, c := sessionFixture()
	session := NewSession(c, 4)

	result := session.Run(context.Background(), nil, cutoff, true)
	if len(result.Records) != 0 {
		t.Errorf("Expected no records, got %d", len(result.Records))
	}
	if result.CrawledAt.IsZero() {
		t.Error("Expected CrawledAt to be set")
	}
	if !result.Cutoff.Equal(cutoff) {
		t.Errorf("Expected cutoff %v, got %v", cutoff, result.Cutoff)
	}
}

func TestNewSession_ClampsWorkers(t *testing.T) {
	_, c := sessionFixture()
	session := NewSession(c, 0)
	if session.workers != 1 {
		t.Errorf("Expected workers clamped to 1, got %d", session.workers)
	}
}
