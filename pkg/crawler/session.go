package crawler

import (
	"context"
	"sync"
	"time"

	"readnext/pkg/domain"
	"readnext/pkg/logger"
)

// Session crawls a whole source catalog. Sources are independent units
// of work, so with more than one worker they run concurrently; records
// land in a pre-sized slice by source index so the output order is
// always the catalog order.
type Session struct {
	crawler *Crawler
	workers int
}

// NewSession creates a session over the given crawler. workers <= 1
// means the sources are crawled strictly in sequence.
func NewSession(crawler *Crawler, workers int) *Session {
	if workers < 1 {
		workers = 1
	}
	return &Session{crawler: crawler, workers: workers}
}

// Run crawls every source and returns one record per source, in input
// order. It is total: no failure in one source stops the others, and
// every record has a terminal method.
func (s *Session) Run(ctx context.Context, sources []domain.Source, cutoff time.Time, allowScreenshots bool) *domain.Result {
	records := make([]domain.CrawlRecord, len(sources))

	if s.workers == 1 {
		for i, source := range sources {
			logger.Infof("[%s]", source.Name)
			records[i] = s.crawler.Crawl(ctx, source, cutoff, allowScreenshots)
		}
	} else {
		s.runPool(ctx, sources, cutoff, allowScreenshots, records)
	}

	result := &domain.Result{
		Cutoff:    cutoff,
		CrawledAt: time.Now().UTC(),
		Records:   records,
	}

	summary := result.Summarize()
	logger.Infof("RSS: %d sources | Screenshots: %d | Failed: %d", summary.RSS, summary.Screenshots, summary.Failed)
	logger.Infof("Total new entries found: %d", summary.TotalEntries)

	return result
}

// runPool fans the sources out to a bounded worker pool. Workers pull
// indexes from a channel and write into their own slot, so no further
// synchronization is needed on the records slice.
func (s *Session) runPool(ctx context.Context, sources []domain.Source, cutoff time.Time, allowScreenshots bool, records []domain.CrawlRecord) {
	jobs := make(chan int, len(sources))
	for i := range sources {
		jobs <- i
	}
	close(jobs)

	workers := s.workers
	if workers > len(sources) {
		workers = len(sources)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				logger.Infof("[%s]", sources[i].Name)
				records[i] = s.crawler.Crawl(ctx, sources[i], cutoff, allowScreenshots)
			}
		}()
	}
	wg.Wait()
}
