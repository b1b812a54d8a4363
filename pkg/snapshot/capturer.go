package snapshot

import (
	"context"
	"fmt"
	"time"

	"readnext/pkg/discovery"
)

// Capturer takes a visual snapshot of a page and returns the path of
// the image file it wrote. The crawler falls back to this when a source
// has no usable feed.
type Capturer interface {
	Capture(ctx context.Context, pageURL string) (string, error)
}

// Viewport is the browser window size used for captures.
type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FileName builds the screenshot file name for a page: the page's host
// (www. stripped) plus the capture date. One file per host per day; a
// later capture the same day overwrites the earlier one.
func FileName(pageURL string, now time.Time) string {
	host := discovery.Host(pageURL)
	if host == "" {
		host = "unknown"
	}
	return fmt.Sprintf("%s_%s.png", host, now.Format("2006-01-02"))
}
