package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"readnext/pkg/httpclient"
)

// HTMLLinkStrategy fetches the page itself and scans its head for
// <link rel="alternate"> tags advertising an RSS or Atom feed.
type HTMLLinkStrategy struct {
	client *httpclient.HTTPClient
}

// NewHTMLLinkStrategy creates the HTML link-discovery strategy
func NewHTMLLinkStrategy(client *httpclient.HTTPClient) *HTMLLinkStrategy {
	return &HTMLLinkStrategy{client: client}
}

// Name implements Strategy
func (s *HTMLLinkStrategy) Name() string { return "html_link" }

// Discover fetches pageURL and returns the first alternate link whose
// type mentions rss or atom. Relative hrefs are resolved against the
// page's scheme and host (root-relative, not relative to the page path).
func (s *HTMLLinkStrategy) Discover(ctx context.Context, pageURL string) (string, error) {
	resp, err := s.client.Get(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var feedURL string
	doc.Find("link[rel='alternate']").EachWithBreak(func(i int, link *goquery.Selection) bool {
		linkType, _ := link.Attr("type")
		linkType = strings.ToLower(linkType)
		if !strings.Contains(linkType, "rss") && !strings.Contains(linkType, "atom") {
			return true
		}

		href, _ := link.Attr("href")
		if href == "" {
			return true
		}

		resolved, err := resolveHref(pageURL, href)
		if err != nil {
			return true
		}
		feedURL = resolved
		return false
	})

	return feedURL, nil
}

// resolveHref makes href absolute against the page's scheme and host.
// Non-rooted hrefs are anchored at the host root, matching how sites in
// practice write bare "feed.xml" style alternate links.
func resolveHref(pageURL, href string) (string, error) {
	if strings.HasPrefix(href, "http") {
		return href, nil
	}

	base, err := baseOf(pageURL)
	if err != nil {
		return "", err
	}

	if strings.HasPrefix(href, "/") {
		return base + href, nil
	}
	return base + "/" + href, nil
}
