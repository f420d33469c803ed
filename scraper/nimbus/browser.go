package nimbus

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserFetcher loads the page in headless Chrome and returns the rendered DOM.
// It is used when the bulletin is only complete after client-side scripts run.
type BrowserFetcher struct {
	chromeBin string
	userAgent string
	timeout   time.Duration
}

// NewBrowserFetcher prepares a headless fetcher. An empty chromeBin means the
// binary is looked up on PATH and in the usual install locations.
func NewBrowserFetcher(chromeBin, userAgent string, timeout time.Duration) *BrowserFetcher {
	return &BrowserFetcher{
		chromeBin: findChromeBinary(chromeBin),
		userAgent: userAgent,
		timeout:   timeout,
	}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if f.userAgent != "" {
		opts = append(opts, chromedp.UserAgent(f.userAgent))
	}
	if f.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(f.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	if f.timeout > 0 {
		var cancelTimeout context.CancelFunc
		browserCtx, cancelTimeout = context.WithTimeout(browserCtx, f.timeout)
		defer cancelTimeout()
	}

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("nimbus: render %s: %w", url, err)
	}

	return &Page{
		URL:         url,
		Body:        []byte(html),
		ContentType: "text/html; charset=utf-8",
	}, nil
}

// findChromeBinary locates Chrome/Chromium, preferring the configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
