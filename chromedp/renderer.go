// Package chromedp renders news pages with chromedp. It is the alternative
// to the rod package for hosts where the DevTools protocol is already
// driven through chromedp.
package chromedp

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/fwojciec/newscrawl"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultMaxSessions is the default number of concurrent tabs.
	DefaultMaxSessions = 2

	// DefaultSettleDelay is how long to wait after scrolling for lazy
	// widgets to load.
	DefaultSettleDelay = time.Second

	// DefaultRenderTimeout bounds a single render including the settle delay.
	DefaultRenderTimeout = 30 * time.Second
)

const scrollToBottom = `window.scrollTo(0, document.body.scrollHeight)`

var _ newscrawl.Renderer = (*Renderer)(nil)

// Renderer renders each URL in its own tab of a shared headless Chrome.
// Renderer is safe for concurrent use.
type Renderer struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	sessions      *semaphore.Weighted

	maxSessions int64
	settle      time.Duration
	timeout     time.Duration
	execPath    string
	headless    bool

	closeOnce sync.Once
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMaxSessions bounds the number of tabs rendering at once.
func WithMaxSessions(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxSessions = int64(n)
		}
	}
}

// WithSettleDelay sets the wait after scrolling to the bottom.
func WithSettleDelay(d time.Duration) Option {
	return func(r *Renderer) {
		r.settle = d
	}
}

// WithRenderTimeout sets the per-render timeout.
func WithRenderTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithExecPath uses the Chrome binary at path.
func WithExecPath(path string) Option {
	return func(r *Renderer) {
		r.execPath = path
	}
}

// WithHeadless toggles headless mode. Defaults to true.
func WithHeadless(headless bool) Option {
	return func(r *Renderer) {
		r.headless = headless
	}
}

// NewRenderer starts Chrome and returns a Renderer. Launch failures are
// ERENDER errors. Close must be called when the Renderer is no longer needed.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		maxSessions: DefaultMaxSessions,
		settle:      DefaultSettleDelay,
		timeout:     DefaultRenderTimeout,
		headless:    true,
	}
	for _, opt := range opts {
		opt(r)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("headless", r.headless),
	)
	if r.execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Running an empty task list starts the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, newscrawl.Errorf(newscrawl.ERENDER, "launching browser: %v", err)
	}

	r.allocCancel = allocCancel
	r.browserCtx = browserCtx
	r.browserCancel = browserCancel
	r.sessions = semaphore.NewWeighted(r.maxSessions)
	return r, nil
}

// Render opens a tab, loads url, scrolls to the bottom and returns the
// outer HTML of the document. The tab is closed and the session slot
// released on every return path.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if err := r.sessions.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer r.sessions.Release(1)

	if err := r.browserCtx.Err(); err != nil {
		return "", newscrawl.Errorf(newscrawl.ERENDER, "browser is closed")
	}

	tabCtx, cancelTab := chromedp.NewContext(r.browserCtx)
	defer cancelTab()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		tabCtx, cancel = context.WithTimeout(tabCtx, r.timeout)
		defer cancel()
	}

	// Propagate caller cancellation into the tab.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(scrollToBottom, nil),
		chromedp.Sleep(r.settle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(tabCtx.Err(), context.DeadlineExceeded) {
			return "", context.DeadlineExceeded
		}
		return "", newscrawl.Errorf(newscrawl.ERENDER, "rendering %s: %v", url, err)
	}
	return html, nil
}

// Close shuts down the browser. Close is safe to call multiple times.
func (r *Renderer) Close() error {
	r.closeOnce.Do(func() {
		r.browserCancel()
		r.allocCancel()
	})
	return nil
}
