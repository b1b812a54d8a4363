package discovery

import (
	"context"
	"strings"

	"readnext/pkg/httpclient"
)

// WellKnownStrategy probes a fixed list of common feed paths on the
// page's host. A path counts only if the response succeeds AND the
// content type looks like a feed, since many sites answer 200 with an
// HTML error page for unknown paths.
type WellKnownStrategy struct {
	client *httpclient.HTTPClient
	paths  []string
}

// NewWellKnownStrategy creates the well-known-path strategy
func NewWellKnownStrategy(client *httpclient.HTTPClient, paths []string) *WellKnownStrategy {
	return &WellKnownStrategy{client: client, paths: paths}
}

// Name implements Strategy
func (s *WellKnownStrategy) Name() string { return "well_known_path" }

// Discover tries each configured path in order and returns the first
// candidate whose HEAD response is 2xx with an xml/rss/atom content type.
func (s *WellKnownStrategy) Discover(ctx context.Context, pageURL string) (string, error) {
	base, err := baseOf(pageURL)
	if err != nil {
		return "", err
	}

	for _, path := range s.paths {
		feedURL := base + path

		resp, err := s.client.Head(ctx, feedURL)
		if err != nil {
			continue
		}
		contentType := strings.ToLower(resp.Header.Get("Content-Type"))
		resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			continue
		}
		if strings.Contains(contentType, "xml") ||
			strings.Contains(contentType, "rss") ||
			strings.Contains(contentType, "atom") {
			return feedURL, nil
		}
	}

	return "", nil
}
