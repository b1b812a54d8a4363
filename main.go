package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"readnext/pkg/config"
	"readnext/pkg/discovery"
	"readnext/pkg/feed"
)

// Quick feed-discovery check for a single URL. The real crawler lives
// in cmd/readnext.
func main() {
	pageURL := "https://blog.golang.org"
	if len(os.Args) > 1 {
		pageURL = os.Args[1]
	}

	cfg := config.Default()
	locator := discovery.NewDefaultLocator(cfg.Crawler.RequestTimeout(), cfg.Crawler.Platforms, cfg.Crawler.WellKnownPaths)

	ctx := context.Background()
	feedURL := locator.Locate(ctx, pageURL)
	if feedURL == "" {
		fmt.Printf("No feed found for %s\n", pageURL)
		os.Exit(1)
	}
	fmt.Printf("Feed: %s\n\n", feedURL)

	cutoff := cfg.Crawler.DefaultCutoff(time.Now())
	entries, err := feed.NewFilter(cfg.Crawler.RequestTimeout()).Filter(ctx, feedURL, cutoff)
	if err != nil {
		fmt.Printf("Failed to read feed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%d entries since %s:\n\n", len(entries), cutoff.Format("2006-01-02"))
	for i, entry := range entries {
		fmt.Printf("Entry %d:\n", i+1)
		fmt.Printf("  Title: %s\n", entry.Title)
		fmt.Printf("  URL: %s\n", entry.URL)
		if entry.PublishedAt != nil {
			fmt.Printf("  Published: %s\n", entry.PublishedAt.Format(time.RFC3339))
		}
		fmt.Println()
	}
}
