package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/fwojciec/newscrawl"
	"github.com/fwojciec/newscrawl/crawl"
	"github.com/fwojciec/newscrawl/goquery"
	"github.com/fwojciec/newscrawl/rod"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is read when --config is not given.
const DefaultConfigPath = "newscrawl.yaml"

// Engine and browser names accepted in configuration.
const (
	EngineReadability  = "readability"
	EngineTrafilatura  = "trafilatura"
	BrowserRod         = "rod"
	BrowserChromedp    = "chromedp"
	FormatText         = "text"
	FormatMarkdown     = "markdown"
	DefaultOutputPath  = "crawler.json"
	DefaultMaxSessions = 2
)

// Config holds every tunable of a run. Values come from the YAML file and
// are overridden by command-line flags.
type Config struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	Keyword string `yaml:"keyword"`
	Dedupe  bool   `yaml:"dedupe"`
	Header  bool   `yaml:"header"`
	Prepare bool   `yaml:"prepare"`

	Concurrency   int             `yaml:"concurrency"`
	Timeout       time.Duration   `yaml:"timeout"`
	RetryDelays   []time.Duration `yaml:"retry_delays"`
	RatePerSecond float64         `yaml:"rate_per_second"`
	UserAgent     string          `yaml:"user_agent"`

	Engine        string `yaml:"engine"`
	ContentFormat string `yaml:"content_format"`

	Comments CommentsConfig   `yaml:"comments"`
	Template goquery.Template `yaml:"template"`
}

// CommentsConfig configures headless comment extraction.
type CommentsConfig struct {
	Enabled       bool                     `yaml:"enabled"`
	Browser       string                   `yaml:"browser"`
	Headless      bool                     `yaml:"headless"`
	Sessions      int                      `yaml:"sessions"`
	Timeout       time.Duration            `yaml:"timeout"`
	SettleDelay   time.Duration            `yaml:"settle_delay"`
	MaxPages      int64                    `yaml:"max_pages"`
	BrowserBin    string                   `yaml:"browser_bin"`
	Selectors     goquery.CommentSelectors `yaml:"selectors"`
	UnknownDate   string                   `yaml:"unknown_date"`
	UnknownAuthor string                   `yaml:"unknown_author"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Output:        DefaultOutputPath,
		Dedupe:        true,
		Concurrency:   crawl.DefaultConcurrency,
		Timeout:       10 * time.Second,
		RetryDelays:   crawl.DefaultRetryDelays(),
		Engine:        EngineReadability,
		ContentFormat: FormatText,
		Comments: CommentsConfig{
			Browser:       BrowserRod,
			Headless:      true,
			Sessions:      DefaultMaxSessions,
			Timeout:       rod.DefaultRenderTimeout,
			SettleDelay:   rod.DefaultSettleDelay,
			MaxPages:      rod.DefaultMaxPages,
			Selectors:     goquery.DefaultCommentSelectors(),
			UnknownDate:   newscrawl.DefaultCommentDate,
			UnknownAuthor: newscrawl.DefaultCommentAuthor,
		},
		Template: goquery.DefaultTemplate(),
	}
}

// LoadConfig reads the YAML file at path over the defaults. A missing file
// is not an error and yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, newscrawl.Errorf(newscrawl.EINVALID, "failed to parse config file %s: %v", path, err)
	}

	return cfg, nil
}

// Validate reports the first invalid setting as an EINVALID error.
func (c *Config) Validate() error {
	switch {
	case c.Concurrency <= 0:
		return newscrawl.Errorf(newscrawl.EINVALID, "concurrency must be positive, got %d", c.Concurrency)
	case c.Timeout <= 0:
		return newscrawl.Errorf(newscrawl.EINVALID, "timeout must be positive, got %s", c.Timeout)
	case c.RatePerSecond < 0:
		return newscrawl.Errorf(newscrawl.EINVALID, "rate_per_second must not be negative")
	case c.Engine != EngineReadability && c.Engine != EngineTrafilatura:
		return newscrawl.Errorf(newscrawl.EINVALID, "unknown engine %q (want %s or %s)", c.Engine, EngineReadability, EngineTrafilatura)
	case c.ContentFormat != FormatText && c.ContentFormat != FormatMarkdown:
		return newscrawl.Errorf(newscrawl.EINVALID, "unknown content format %q (want %s or %s)", c.ContentFormat, FormatText, FormatMarkdown)
	case c.Output == "":
		return newscrawl.Errorf(newscrawl.EINVALID, "output path required")
	}

	for _, d := range c.RetryDelays {
		if d < 0 {
			return newscrawl.Errorf(newscrawl.EINVALID, "retry delays must not be negative")
		}
	}

	if !c.Comments.Enabled {
		return nil
	}
	switch {
	case c.Comments.Browser != BrowserRod && c.Comments.Browser != BrowserChromedp:
		return newscrawl.Errorf(newscrawl.EINVALID, "unknown browser %q (want %s or %s)", c.Comments.Browser, BrowserRod, BrowserChromedp)
	case c.Comments.Sessions <= 0:
		return newscrawl.Errorf(newscrawl.EINVALID, "sessions must be positive, got %d", c.Comments.Sessions)
	case c.Comments.Timeout <= 0:
		return newscrawl.Errorf(newscrawl.EINVALID, "comments timeout must be positive")
	case c.Comments.SettleDelay < 0:
		return newscrawl.Errorf(newscrawl.EINVALID, "settle delay must not be negative")
	case c.Comments.Selectors.Item == "":
		return newscrawl.Errorf(newscrawl.EINVALID, "comment item selector required")
	}
	return nil
}
