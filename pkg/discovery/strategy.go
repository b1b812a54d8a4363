package discovery

import (
	"context"
	"net/url"
	"strings"
)

// Strategy is one way of locating a feed URL for a page URL.
// Implementations return an empty string when the page has no feed they
// can find; errors are treated the same way by the Locator.
type Strategy interface {
	// Name identifies the strategy in log output
	Name() string
	// Discover attempts to find a feed URL for the given page URL
	Discover(ctx context.Context, pageURL string) (string, error)
}

// Host returns the host of a URL with any leading "www." stripped,
// which is the form the skip-list and platform rules are keyed on.
func Host(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}

// baseOf returns scheme://host for a URL, keeping the host as written
// (www. included), for building root-relative candidate URLs.
func baseOf(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return parsed.Scheme + "://" + parsed.Host, nil
}
