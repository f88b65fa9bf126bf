package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/newscrawl"
	"github.com/fwojciec/newscrawl/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    *Config
	RunID     string
	Harvester *crawl.Harvester
	Writer    newscrawl.RecordWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"C" default:"newscrawl.yaml" help:"Path to YAML config file (missing file uses defaults)" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Prepare PrepareCmd `cmd:"" help:"Deduplicate and filter a CSV of article URLs in place"`
	Harvest HarvestCmd `cmd:"" help:"Harvest articles listed in a CSV into a JSON document"`
}

// PrepareCmd is the "prepare" subcommand.
type PrepareCmd struct {
	Input    string `arg:"" help:"CSV file whose first column holds article URLs" type:"path"`
	Keyword  string `short:"k" help:"Drop rows containing this text in any column"`
	NoDedupe bool   `name:"no-dedupe" help:"Keep duplicate rows"`
	Header   bool   `help:"Treat the first row as a header"`
}

// HarvestCmd is the "harvest" subcommand.
type HarvestCmd struct {
	Input       string        `arg:"" help:"CSV file whose first column holds article URLs" type:"path"`
	Output      string        `short:"o" help:"Output JSON file (default crawler.json)" type:"path"`
	Comments    bool          `help:"Render pages in a headless browser to collect reader comments"`
	Concurrency int           `short:"c" help:"Number of URLs processed at once"`
	Sessions    int           `help:"Maximum concurrent browser sessions"`
	Timeout     time.Duration `short:"t" help:"HTTP fetch timeout"`
	Engine      string        `help:"Article extraction engine (readability, trafilatura)"`
	Browser     string        `help:"Headless browser driver (rod, chromedp)"`
	Format      string        `help:"Article body format (text, markdown)"`
	Prepare     bool          `short:"p" help:"Deduplicate and filter the input CSV before harvesting"`
	Keyword     string        `short:"k" help:"Keyword filter used with --prepare"`
	Header      bool          `help:"Treat the first CSV row as a header"`
	Progress    bool          `short:"P" help:"Show a progress spinner"`
}

// apply overrides cfg with the flags that were set.
func (c *PrepareCmd) apply(cfg *Config) {
	cfg.Input = c.Input
	if c.Keyword != "" {
		cfg.Keyword = c.Keyword
	}
	if c.NoDedupe {
		cfg.Dedupe = false
	}
	if c.Header {
		cfg.Header = true
	}
}

// apply overrides cfg with the flags that were set.
func (c *HarvestCmd) apply(cfg *Config) {
	cfg.Input = c.Input
	if c.Output != "" {
		cfg.Output = c.Output
	}
	if c.Comments {
		cfg.Comments.Enabled = true
	}
	if c.Concurrency != 0 {
		cfg.Concurrency = c.Concurrency
	}
	if c.Sessions != 0 {
		cfg.Comments.Sessions = c.Sessions
	}
	if c.Timeout != 0 {
		cfg.Timeout = c.Timeout
	}
	if c.Engine != "" {
		cfg.Engine = c.Engine
	}
	if c.Browser != "" {
		cfg.Comments.Browser = c.Browser
	}
	if c.Format != "" {
		cfg.ContentFormat = c.Format
	}
	if c.Prepare {
		cfg.Prepare = true
	}
	if c.Keyword != "" {
		cfg.Keyword = c.Keyword
	}
	if c.Header {
		cfg.Header = true
	}
}
