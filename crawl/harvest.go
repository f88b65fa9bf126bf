// Package crawl orchestrates harvesting of news articles. It coordinates
// fetching, static and structural extraction, author recovery, comment
// rendering and aggregation of a batch of URLs.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fwojciec/newscrawl"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of URLs processed at once when
// Harvester.Concurrency is not set.
const DefaultConcurrency = 4

// Stage names the pipeline step a per-URL failure happened in.
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageExtract   Stage = "extract"
	StageConvert   Stage = "convert"
	StageStructure Stage = "structure"
	StageComments  Stage = "comments"
)

// Harvester runs the extraction pipeline over a batch of URLs.
type Harvester struct {
	Fetcher    newscrawl.Fetcher
	Articles   newscrawl.ArticleExtractor
	Structures newscrawl.StructureExtractor

	// Comments is optional. Nil skips comment extraction.
	Comments newscrawl.CommentExtractor

	// Converter is optional. When set, the article body is rendered to
	// Markdown from the cleaned content HTML before author recovery.
	Converter newscrawl.Converter

	// RateLimiter is optional. When set, every network request waits for
	// its host's token first.
	RateLimiter newscrawl.DomainLimiter

	Concurrency int
	RetryDelays []time.Duration
	Logger      *slog.Logger
}

// Failure is a per-URL error that degraded part of a record.
type Failure struct {
	URL   string
	Stage Stage
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Stage, f.URL, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Result holds the outcome of a harvest.
type Result struct {
	// Records has one entry per processed URL in input order.
	Records []*newscrawl.Record

	// Failures lists every degraded extraction in input order.
	Failures []Failure
}

// ProgressEvent reports progress during a harvest.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting harvest progress.
type ProgressFunc func(event ProgressEvent)

// harvestResult holds the outcome of processing a single URL.
type harvestResult struct {
	position int
	url      string
	record   *newscrawl.Record
	failures []Failure
	canceled bool
}

func (r *harvestResult) fail(stage Stage, err error) {
	r.failures = append(r.failures, Failure{URL: r.url, Stage: stage, Err: err})
}

// Harvest processes urls concurrently and returns one record per URL.
// Extraction failures never abort the batch; they are reported in
// Result.Failures and leave the affected fields empty. If ctx is canceled,
// scheduling stops and the records finished so far are returned together
// with the context error.
func (h *Harvester) Harvest(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	concurrency := h.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan harvestResult, len(urls))

	var completed atomic.Int64
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				resultCh <- h.harvestURL(gctx, i, url)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]*harvestResult, len(urls))
	for result := range resultCh {
		if result.canceled {
			continue
		}
		results[result.position] = &result
		n := int(completed.Add(1))

		if progress == nil {
			continue
		}
		if len(result.failures) > 0 {
			errs := make([]error, 0, len(result.failures))
			for _, f := range result.failures {
				errs = append(errs, f)
			}
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: n,
				Total:     total,
				URL:       result.url,
				Error:     errors.Join(errs...),
			})
		} else {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: n,
				Total:     total,
				URL:       result.url,
			})
		}
	}

	out := &Result{
		Records: make([]*newscrawl.Record, 0, len(urls)),
	}
	for _, result := range results {
		if result == nil {
			continue
		}
		out.Records = append(out.Records, result.record)
		out.Failures = append(out.Failures, result.failures...)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: int(completed.Load()),
			Total:     total,
		})
	}

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}

// harvestURL runs the full pipeline for a single URL. The page is fetched
// once and shared by the static and structural extractors.
func (h *Harvester) harvestURL(ctx context.Context, position int, url string) harvestResult {
	result := harvestResult{
		position: position,
		url:      url,
	}
	if ctx.Err() != nil {
		result.canceled = true
		return result
	}

	var (
		article   *newscrawl.Article
		structure *newscrawl.Structure
		comments  []newscrawl.Comment
	)

	html, err := h.fetch(ctx, url)
	if err != nil {
		result.fail(StageFetch, err)
	} else {
		article = h.extractArticle(&result, html)
		structure, err = h.Structures.ExtractStructure(html)
		if err != nil {
			result.fail(StageStructure, err)
			structure = nil
		}
	}

	if h.Comments != nil {
		comments, err = h.extractComments(ctx, url)
		if err != nil {
			result.fail(StageComments, err)
			comments = nil
		}
	}

	if ctx.Err() != nil {
		result.canceled = true
		return result
	}

	result.record = newscrawl.Merge(url, article, structure, comments)
	return result
}

func (h *Harvester) fetch(ctx context.Context, url string) (string, error) {
	if err := h.wait(ctx, url); err != nil {
		return "", err
	}

	delays := h.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, url, h.Fetcher.Fetch, h.logRetry, delays)
}

// extractArticle returns nil when extraction fails. Conversion failures
// keep the plain text body.
func (h *Harvester) extractArticle(result *harvestResult, html string) *newscrawl.Article {
	article, err := h.Articles.ExtractArticle(html, result.url)
	if err != nil {
		result.fail(StageExtract, err)
		return nil
	}

	if h.Converter != nil && article.ContentHTML != "" {
		markdown, err := h.Converter.Convert(article.ContentHTML)
		if err != nil {
			result.fail(StageConvert, err)
		} else {
			article.Text = markdown
		}
	}

	newscrawl.ApplyAuthorRecovery(article)
	return article
}

func (h *Harvester) extractComments(ctx context.Context, url string) ([]newscrawl.Comment, error) {
	if err := h.wait(ctx, url); err != nil {
		return nil, err
	}
	return h.Comments.ExtractComments(ctx, url)
}

func (h *Harvester) wait(ctx context.Context, url string) error {
	if h.RateLimiter == nil {
		return nil
	}
	host, err := hostOf(url)
	if err != nil {
		return err
	}
	return h.RateLimiter.Wait(ctx, host)
}

func (h *Harvester) logRetry(format string, args ...any) {
	if h.Logger == nil {
		return
	}
	h.Logger.Debug(fmt.Sprintf(format, args...))
}
