// Package menu retrieves the cafeteria lunch menu. The menu page builds
// its content client-side, so a plain GET returns an empty shell; we
// drive a headless Chromium via chromedp and pull the rendered text out
// of the menu container instead.
package menu

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultSelector matches the menu container on the cafeteria page.
const DefaultSelector = "#menu"

// DefaultTimeout bounds the whole navigate-render-extract sequence.
const DefaultTimeout = 30 * time.Second

// Fetcher extracts the rendered week menu text from one page.
type Fetcher struct {
	url      string
	selector string
	timeout  time.Duration
}

// NewFetcher builds a Fetcher for url. selector may be empty to use
// DefaultSelector.
func NewFetcher(url, selector string) *Fetcher {
	if selector == "" {
		selector = DefaultSelector
	}
	return &Fetcher{
		url:      url,
		selector: selector,
		timeout:  DefaultTimeout,
	}
}

// FetchText navigates to the menu page, waits for the menu container to
// become visible, and returns its inner text.
func (f *Fetcher) FetchText(parentCtx context.Context) (string, error) {
	if f.url == "" {
		return "", fmt.Errorf("menu: URL is required")
	}

	ctx, cancel := chromedp.NewContext(parentCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, f.timeout)
	defer timeoutCancel()

	var text string
	tasks := chromedp.Tasks{
		chromedp.Navigate(f.url),
		chromedp.WaitVisible(f.selector, chromedp.ByQuery),
		// Brief extra delay so late-arriving rows make it into the text.
		chromedp.Sleep(500 * time.Millisecond),
		chromedp.Text(f.selector, &text, chromedp.ByQuery),
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		return "", fmt.Errorf("menu: chromedp run failed: %w", err)
	}
	return text, nil
}
