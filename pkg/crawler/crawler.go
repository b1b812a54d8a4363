package crawler

import (
	"context"
	"time"

	"readnext/pkg/discovery"
	"readnext/pkg/domain"
	"readnext/pkg/logger"
	"readnext/pkg/snapshot"
)

// FeedLocator finds a feed URL for a page URL, or "" when none exists.
type FeedLocator interface {
	Locate(ctx context.Context, pageURL string) string
}

// EntryFilter fetches a feed and returns its entries at or after cutoff.
type EntryFilter interface {
	Filter(ctx context.Context, feedURL string, cutoff time.Time) ([]domain.Entry, error)
}

// Crawler checks a single source for new content. It tries every URL
// the source lists: feed discovery first, screenshot fallback second
// when enabled. Hosts on the skip list are never touched at all.
type Crawler struct {
	locator   FeedLocator
	filter    EntryFilter
	capturer  snapshot.Capturer
	skipHosts map[string]bool
}

// New creates a source crawler. capturer may be nil when screenshots
// are never wanted; Crawl then behaves as if fallback were disabled.
func New(locator FeedLocator, filter EntryFilter, capturer snapshot.Capturer, skipHosts []string) *Crawler {
	skip := make(map[string]bool, len(skipHosts))
	for _, h := range skipHosts {
		skip[h] = true
	}

	return &Crawler{
		locator:   locator,
		filter:    filter,
		capturer:  capturer,
		skipHosts: skip,
	}
}

// Crawl processes one source and always returns a finished record: its
// Method is one of rss, screenshot, failed or no_feed, never empty.
// Entries accumulate across all of the source's URLs; a feed hit on one
// URL does not stop the remaining URLs from being tried.
func (c *Crawler) Crawl(ctx context.Context, source domain.Source, cutoff time.Time, allowScreenshots bool) domain.CrawlRecord {
	record := domain.CrawlRecord{
		Name:        source.Name,
		URLs:        source.URLs,
		Entries:     []domain.Entry{},
		Screenshots: []string{},
	}

	for _, pageURL := range source.URLs {
		if c.skipHosts[discovery.Host(pageURL)] {
			logger.Infof("skipping %s (blocked domain)", pageURL)
			continue
		}

		logger.Infof("trying RSS for %s", pageURL)
		if c.tryFeed(ctx, pageURL, cutoff, &record) {
			continue
		}

		if !allowScreenshots || c.capturer == nil {
			continue
		}

		logger.Infof("no usable feed for %s, taking screenshot", pageURL)
		path, err := c.capturer.Capture(ctx, pageURL)
		if err != nil {
			// Capture failures are non-fatal and leave the method alone.
			logger.Warnf("screenshot failed for %s: %v", pageURL, err)
			continue
		}

		record.Screenshots = append(record.Screenshots, path)
		if record.Method == "" {
			record.Method = domain.MethodScreenshot
		}
	}

	if record.Method == "" {
		if allowScreenshots {
			record.Method = domain.MethodFailed
		} else {
			record.Method = domain.MethodNoFeed
		}
	}

	return record
}

// tryFeed runs feed discovery and filtering for one URL. It reports
// true only when a feed yielded entries after the cutoff, which is the
// condition that makes the URL not need the screenshot fallback.
func (c *Crawler) tryFeed(ctx context.Context, pageURL string, cutoff time.Time, record *domain.CrawlRecord) bool {
	feedURL := c.locator.Locate(ctx, pageURL)
	if feedURL == "" {
		return false
	}
	logger.Infof("found feed: %s", feedURL)

	entries, err := c.filter.Filter(ctx, feedURL, cutoff)
	if err != nil {
		logger.Warnf("failed to read feed %s: %v", feedURL, err)
		return false
	}
	if len(entries) == 0 {
		logger.Infof("feed found but no entries after cutoff")
		return false
	}

	record.Method = domain.MethodRSS
	record.FeedURL = feedURL
	record.Entries = append(record.Entries, entries...)
	logger.Infof("%d new entries since %s", len(entries), cutoff.Format("2006-01-02"))
	return true
}
