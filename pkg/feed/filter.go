package feed

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"

	"readnext/pkg/domain"
)

const (
	// maxSummaryLen caps the cleaned summary; longer summaries are cut
	// here and suffixed with an ellipsis marker.
	maxSummaryLen = 300

	userAgent = "ReadNext Crawler/1.0 (https://readnext.exe.xyz)"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Filter fetches a feed and keeps only the entries published at or
// after a cutoff instant. Entries with no parseable timestamp are kept:
// better to resurface an undated item than to silently drop a new one.
type Filter struct {
	client *http.Client
}

// NewFilter creates a feed filter whose fetches use the given timeout
func NewFilter(timeout time.Duration) *Filter {
	return &Filter{client: &http.Client{Timeout: timeout}}
}

// newParser builds a gofeed parser per call; the parser itself is not
// safe to share across the session's workers, the http.Client is.
func (f *Filter) newParser() *gofeed.Parser {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = f.client
	return parser
}

// Filter parses feedURL and returns its entries at or after cutoff, in
// feed order. Fetch and parse failures are returned as errors; the
// caller treats them as "feed yielded nothing".
func (f *Filter) Filter(ctx context.Context, feedURL string, cutoff time.Time) ([]domain.Entry, error) {
	parsed, err := f.newParser().ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	return f.filterItems(parsed.Items, cutoff), nil
}

// FilterString filters an already-fetched feed document. Used by tests
// and anywhere the bytes are in hand already.
func (f *Filter) FilterString(body string, cutoff time.Time) ([]domain.Entry, error) {
	parsed, err := f.newParser().ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	return f.filterItems(parsed.Items, cutoff), nil
}

func (f *Filter) filterItems(items []*gofeed.Item, cutoff time.Time) []domain.Entry {
	entries := make([]domain.Entry, 0, len(items))
	for _, item := range items {
		published := itemTime(item)
		if published != nil && published.Before(cutoff) {
			continue
		}

		title := item.Title
		if title == "" {
			title = "Untitled"
		}

		entries = append(entries, domain.Entry{
			Title:       title,
			URL:         item.Link,
			PublishedAt: published,
			Summary:     CleanSummary(item.Description),
		})
	}
	return entries
}

// itemTime derives the entry's instant, preferring the published field
// over updated. gofeed leaves the parsed fields nil for dates it cannot
// interpret, which is exactly the "treat as absent" rule we want.
func itemTime(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed
	}
	return item.UpdatedParsed
}

// CleanSummary strips markup from a raw feed summary, collapses runs of
// whitespace to single spaces, trims, and truncates to maxSummaryLen
// characters with a trailing "..." when longer.
func CleanSummary(raw string) string {
	text := raw
	if node, err := html.Parse(strings.NewReader(raw)); err == nil {
		var parts []string
		collectText(node, &parts)
		text = strings.Join(parts, " ")
	}

	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))

	runes := []rune(text)
	if len(runes) > maxSummaryLen {
		text = string(runes[:maxSummaryLen]) + "..."
	}
	return text
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, n.Data)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
