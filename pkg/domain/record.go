package domain

import "time"

// Method describes how a source's crawl concluded.
type Method string

const (
	// MethodRSS means at least one feed yielded entries after the cutoff.
	MethodRSS Method = "rss"
	// MethodScreenshot means no feed yielded entries but at least one
	// screenshot was captured.
	MethodScreenshot Method = "screenshot"
	// MethodFailed means nothing worked with screenshot fallback enabled.
	MethodFailed Method = "failed"
	// MethodNoFeed means no feed yielded entries in RSS-only mode.
	MethodNoFeed Method = "no_feed"
)

// Entry is a single feed item that survived the cutoff filter.
// PublishedAt is nil when the feed carried no usable timestamp; such
// entries are kept on purpose (see feed.Filter).
type Entry struct {
	Title       string     `json:"title" bson:"title"`
	URL         string     `json:"url" bson:"url"`
	PublishedAt *time.Time `json:"date" bson:"date,omitempty"`
	Summary     string     `json:"summary" bson:"summary"`
}

// CrawlRecord is the per-source outcome of one crawl. It is built up as
// the source's URLs are tried and is never mutated after the source's
// crawl loop ends.
type CrawlRecord struct {
	Name        string   `json:"name" bson:"name"`
	URLs        []string `json:"urls" bson:"urls"`
	Method      Method   `json:"method" bson:"method"`
	FeedURL     string   `json:"feed_url,omitempty" bson:"feed_url,omitempty"`
	Entries     []Entry  `json:"new_entries" bson:"new_entries"`
	Screenshots []string `json:"screenshots" bson:"screenshots"`
}

// Summary aggregates the per-run counters printed at the end of a crawl.
type Summary struct {
	RSS          int `json:"rss" bson:"rss"`
	Screenshots  int `json:"screenshots" bson:"screenshots"`
	Failed       int `json:"failed" bson:"failed"`
	TotalEntries int `json:"total_entries" bson:"total_entries"`
}

// Result is the full outcome of one crawl run: one record per input
// source, in input order, plus the cutoff used and when the run happened.
type Result struct {
	Cutoff    time.Time     `json:"cutoff" bson:"cutoff"`
	CrawledAt time.Time     `json:"crawled_at" bson:"crawled_at"`
	Records   []CrawlRecord `json:"sources" bson:"sources"`
}

// Summarize computes the run counters from the collected records.
func (r *Result) Summarize() Summary {
	var s Summary
	for _, rec := range r.Records {
		switch rec.Method {
		case MethodRSS:
			s.RSS++
		case MethodScreenshot:
			s.Screenshots++
		case MethodFailed, MethodNoFeed:
			s.Failed++
		}
		s.TotalEntries += len(rec.Entries)
	}
	return s
}
