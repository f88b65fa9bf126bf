package newscrawl

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch returns the page body for the URL.
	// Transport and HTTP status failures are returned as EFETCH errors.
	// A page that was fetched but has no content returns ("", nil).
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// Renderer loads URLs in a headless browser and returns the DOM after
// JavaScript has run and the page has been scrolled to the bottom.
type Renderer interface {
	// Render acquires a browser session, navigates to the URL, scrolls to
	// the bottom of the page to trigger lazy-loaded widgets and returns the
	// rendered HTML. The session is released before Render returns.
	Render(ctx context.Context, url string) (html string, err error)

	// Close tears down the browser.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
