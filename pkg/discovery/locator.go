package discovery

import (
	"context"
	"time"

	"readnext/pkg/httpclient"
	"readnext/pkg/logger"
)

// Locator runs an ordered list of discovery strategies and returns the
// first feed URL any of them finds. Strategy failures (network errors,
// unparsable pages) never surface past the Locator; they just mean that
// strategy found nothing.
type Locator struct {
	strategies []Strategy
}

// NewLocator creates a locator over the given strategies, tried in order
func NewLocator(strategies ...Strategy) *Locator {
	return &Locator{strategies: strategies}
}

// NewDefaultLocator wires the standard strategy order: HTML link tags,
// then platform patterns, then well-known paths.
func NewDefaultLocator(timeout time.Duration, platforms map[string]string, wellKnownPaths []string) *Locator {
	client := httpclient.NewClient(httpclient.CrawlerClient, timeout)
	return NewLocator(
		NewHTMLLinkStrategy(client),
		NewPlatformStrategy(client, platforms),
		NewWellKnownStrategy(client, wellKnownPaths),
	)
}

// Locate returns the first feed URL discovered for pageURL, or "" when
// every strategy comes up empty.
func (l *Locator) Locate(ctx context.Context, pageURL string) string {
	for _, strategy := range l.strategies {
		feedURL, err := strategy.Discover(ctx, pageURL)
		if err != nil {
			logger.Debugf("discovery %s failed for %s: %v", strategy.Name(), pageURL, err)
			continue
		}
		if feedURL != "" {
			logger.Debugf("discovery %s found %s for %s", strategy.Name(), feedURL, pageURL)
			return feedURL
		}
	}
	return ""
}
