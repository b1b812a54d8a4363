package discovery

import (
	"context"
	"strings"

	"readnext/pkg/httpclient"
)

// PlatformStrategy knows the conventional feed location for blog-hosting
// platforms (Medium, Substack and friends) and probes it with a HEAD
// request. The platform map is keyed by a host fragment; the value is
// the suffix appended to the page URL to build the feed URL.
type PlatformStrategy struct {
	client   *httpclient.HTTPClient
	patterns map[string]string
}

// NewPlatformStrategy creates the platform-pattern strategy
func NewPlatformStrategy(client *httpclient.HTTPClient, patterns map[string]string) *PlatformStrategy {
	return &PlatformStrategy{client: client, patterns: patterns}
}

// Name implements Strategy
func (s *PlatformStrategy) Name() string { return "platform_pattern" }

// Discover probes the platform's conventional feed URL when the page's
// host matches a known platform. Any 2xx response is accepted; the
// content type is deliberately not checked here because platforms serve
// their feeds with varying types.
func (s *PlatformStrategy) Discover(ctx context.Context, pageURL string) (string, error) {
	host := Host(pageURL)
	if host == "" {
		return "", nil
	}

	for fragment, suffix := range s.patterns {
		if !strings.Contains(host, fragment) {
			continue
		}

		feedURL := strings.TrimRight(pageURL, "/") + suffix
		resp, err := s.client.Head(ctx, feedURL)
		if err != nil {
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return feedURL, nil
		}
	}

	return "", nil
}
