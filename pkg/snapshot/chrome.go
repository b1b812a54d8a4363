package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

// ChromeCapturer captures page snapshots with a headless Chrome driven
// through the DevTools protocol.
type ChromeCapturer struct {
	dir      string
	viewport Viewport
	timeout  time.Duration
}

// NewChromeCapturer creates a capturer writing PNG files into dir
func NewChromeCapturer(dir string, viewport Viewport, timeout time.Duration) *ChromeCapturer {
	if viewport.Width <= 0 {
		viewport.Width = 1280
	}
	if viewport.Height <= 0 {
		viewport.Height = 800
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &ChromeCapturer{dir: dir, viewport: viewport, timeout: timeout}
}

// Capture loads pageURL in a headless browser and writes a viewport
// screenshot. Each call runs its own browser; the crawler takes few
// screenshots per run, so startup cost beats keeping Chrome alive.
func (c *ChromeCapturer) Capture(ctx context.Context, pageURL string) (string, error) {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create screenshots directory: %w", err)
	}

	path := filepath.Join(c.dir, FileName(pageURL, time.Now()))

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, c.timeout)
	defer cancelTimeout()

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(c.viewport.Width), int64(c.viewport.Height)),
		chromedp.Navigate(pageURL),
		chromedp.CaptureScreenshot(&buf),
	)
	if err != nil {
		return "", fmt.Errorf("failed to capture %s: %w", pageURL, err)
	}

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}

	return path, nil
}
