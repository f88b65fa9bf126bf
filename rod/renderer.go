package rod

import (
	"context"
	"time"

	"github.com/fwojciec/newscrawl"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultMaxSessions is the default number of concurrent browser pages.
	DefaultMaxSessions = 2

	// DefaultSettleDelay is how long to wait after scrolling for lazy
	// widgets to load.
	DefaultSettleDelay = time.Second

	// DefaultRenderTimeout bounds a single render including the settle delay.
	DefaultRenderTimeout = 30 * time.Second
)

// scrollToBottom triggers lazy loading of the comment section.
const scrollToBottom = `() => window.scrollTo(0, document.body.scrollHeight)`

// Ensure Renderer implements newscrawl.Renderer at compile time.
var _ newscrawl.Renderer = (*Renderer)(nil)

// Renderer renders pages in a shared Chrome process. Each Render opens its
// own page, which is one session; the number of open sessions is bounded.
// Renderer is safe for concurrent use.
type Renderer struct {
	manager     *BrowserManager
	sessions    *semaphore.Weighted
	maxSessions int64
	settle      time.Duration
	timeout     time.Duration
	managerOpts []ManagerOption
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMaxSessions bounds the number of pages rendering at once.
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

// WithManagerOptions passes options to the underlying BrowserManager.
func WithManagerOptions(opts ...ManagerOption) Option {
	return func(r *Renderer) {
		r.managerOpts = append(r.managerOpts, opts...)
	}
}

// NewRenderer launches Chrome and returns a Renderer.
// Close must be called when the Renderer is no longer needed.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		maxSessions: DefaultMaxSessions,
		settle:      DefaultSettleDelay,
		timeout:     DefaultRenderTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}

	manager, err := NewBrowserManager(r.managerOpts...)
	if err != nil {
		return nil, err
	}
	r.manager = manager
	r.sessions = semaphore.NewWeighted(r.maxSessions)

	return r, nil
}

// Render opens a page, loads url, scrolls to the bottom and returns the
// rendered HTML. The page is closed and the session slot released on
// every return path.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if err := r.sessions.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer r.sessions.Release(1)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	html, err := r.render(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", newscrawl.Errorf(newscrawl.ERENDER, "rendering %s: %v", url, err)
	}
	return html, nil
}

func (r *Renderer) render(ctx context.Context, url string) (string, error) {
	browser := r.manager.Browser()
	if browser == nil {
		return "", newscrawl.Errorf(newscrawl.ERENDER, "browser is closed")
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	defer r.manager.IncrementPageCount()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if _, err := page.Eval(scrollToBottom); err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(r.settle):
	}

	return page.HTML()
}

// Close tears down the browser.
func (r *Renderer) Close() error {
	return r.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (r *Renderer) LauncherPID() int {
	return r.manager.LauncherPID()
}
