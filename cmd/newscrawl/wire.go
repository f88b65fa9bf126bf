package main

import (
	"log/slog"

	"github.com/fwojciec/newscrawl"
	"github.com/fwojciec/newscrawl/chromedp"
	"github.com/fwojciec/newscrawl/crawl"
	"github.com/fwojciec/newscrawl/fs"
	"github.com/fwojciec/newscrawl/goquery"
	"github.com/fwojciec/newscrawl/htmltomarkdown"
	newshttp "github.com/fwojciec/newscrawl/http"
	"github.com/fwojciec/newscrawl/readability"
	"github.com/fwojciec/newscrawl/rod"
	newsslog "github.com/fwojciec/newscrawl/slog"
	"github.com/fwojciec/newscrawl/trafilatura"
)

// newHarvester builds the pipeline described by cfg. The returned cleanup
// closes the fetcher and the browser.
func (m *Main) newHarvester(cfg *Config, logger *slog.Logger) (*crawl.Harvester, func(), error) {
	fetcher := m.Fetcher
	if fetcher == nil {
		opts := []newshttp.Option{newshttp.WithTimeout(cfg.Timeout)}
		if cfg.UserAgent != "" {
			opts = append(opts, newshttp.WithUserAgent(cfg.UserAgent))
		}
		fetcher = newshttp.NewFetcher(opts...)
	}

	h := &crawl.Harvester{
		Fetcher:     newsslog.NewLoggingFetcher(fetcher, logger),
		Articles:    newsslog.NewLoggingArticleExtractor(newArticleExtractor(cfg.Engine), logger),
		Structures:  newsslog.NewLoggingStructureExtractor(goquery.NewStructureExtractor(cfg.Template), logger),
		Concurrency: cfg.Concurrency,
		RetryDelays: cfg.RetryDelays,
		Logger:      logger,
	}

	if cfg.ContentFormat == FormatMarkdown {
		h.Converter = htmltomarkdown.NewConverter()
	}

	if cfg.RatePerSecond > 0 {
		h.RateLimiter = crawl.NewDomainLimiter(cfg.RatePerSecond)
	}

	closers := []func() error{fetcher.Close}
	cleanup := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("cleanup", "err", err)
			}
		}
	}

	if cfg.Comments.Enabled {
		renderer := m.Renderer
		if renderer == nil {
			var err error
			renderer, err = newRenderer(cfg.Comments)
			if err != nil {
				cleanup()
				return nil, nil, err
			}
		}
		renderer = newsslog.NewLoggingRenderer(renderer, logger)
		closers = append(closers, renderer.Close)

		parser := goquery.NewCommentParser(
			goquery.WithCommentSelectors(cfg.Comments.Selectors),
			goquery.WithPlaceholders(cfg.Comments.UnknownDate, cfg.Comments.UnknownAuthor),
		)
		h.Comments = newsslog.NewLoggingCommentExtractor(&crawl.CommentExtractor{
			Renderer: renderer,
			Parser:   parser,
		}, logger)
	}

	return h, cleanup, nil
}

func newArticleExtractor(engine string) newscrawl.ArticleExtractor {
	if engine == EngineTrafilatura {
		return trafilatura.NewExtractor()
	}
	return readability.NewExtractor()
}

func newRenderer(cfg CommentsConfig) (newscrawl.Renderer, error) {
	if cfg.Browser == BrowserChromedp {
		opts := []chromedp.Option{
			chromedp.WithMaxSessions(cfg.Sessions),
			chromedp.WithSettleDelay(cfg.SettleDelay),
			chromedp.WithRenderTimeout(cfg.Timeout),
			chromedp.WithHeadless(cfg.Headless),
		}
		if cfg.BrowserBin != "" {
			opts = append(opts, chromedp.WithExecPath(cfg.BrowserBin))
		}
		return chromedp.NewRenderer(opts...)
	}

	managerOpts := []rod.ManagerOption{
		rod.WithMaxPages(cfg.MaxPages),
		rod.WithHeadless(cfg.Headless),
	}
	if cfg.BrowserBin != "" {
		managerOpts = append(managerOpts, rod.WithBrowserBin(cfg.BrowserBin))
	}
	return rod.NewRenderer(
		rod.WithMaxSessions(cfg.Sessions),
		rod.WithSettleDelay(cfg.SettleDelay),
		rod.WithRenderTimeout(cfg.Timeout),
		rod.WithManagerOptions(managerOpts...),
	)
}

func newRecordWriter(cfg *Config, logger *slog.Logger) newscrawl.RecordWriter {
	return newsslog.NewLoggingRecordWriter(fs.NewRecordWriter(cfg.Output), logger)
}
