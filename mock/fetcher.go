package mock

import (
	"context"

	"github.com/fwojciec/newscrawl"
)

var _ newscrawl.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of newscrawl.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ newscrawl.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of newscrawl.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string) (string, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	return r.RenderFn(ctx, url)
}

func (r *Renderer) Close() error {
	return r.CloseFn()
}

var _ newscrawl.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of newscrawl.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
