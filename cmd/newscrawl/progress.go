package main

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fwojciec/newscrawl/crawl"
	"github.com/mattn/go-runewidth"
)

// progressURLWidth is the display width reserved for the URL in the
// spinner suffix.
const progressURLWidth = 48

// progressReporter renders harvest progress. With a spinner the current
// URL and count are shown on one line; without one, failures are printed
// as they happen.
type progressReporter struct {
	w       io.Writer
	spinner *spinner.Spinner
}

func newProgressReporter(w io.Writer, animated bool) *progressReporter {
	p := &progressReporter{w: w}
	if animated {
		p.spinner = spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(w))
	}
	return p
}

// Report handles one progress event.
func (p *progressReporter) Report(event crawl.ProgressEvent) {
	switch event.Type {
	case crawl.ProgressStarted:
		if p.spinner != nil {
			p.spinner.Suffix = fmt.Sprintf(" [0/%d]", event.Total)
			p.spinner.Start()
		}
	case crawl.ProgressCompleted, crawl.ProgressFailed:
		if p.spinner != nil {
			p.spinner.Lock()
			p.spinner.Suffix = fmt.Sprintf(" [%d/%d] %s", event.Completed, event.Total, truncateURL(event.URL, progressURLWidth))
			p.spinner.Unlock()
			return
		}
		if event.Type == crawl.ProgressFailed {
			fmt.Fprintf(p.w, "  degraded %s: %v\n", event.URL, event.Error)
		}
	case crawl.ProgressFinished:
		p.Stop()
	}
}

// Stop halts the spinner. Stop is safe to call more than once.
func (p *progressReporter) Stop() {
	if p.spinner != nil {
		p.spinner.Stop()
	}
}

// truncateURL shortens a URL for display by showing only the path, cut
// from the left by terminal cell width so the unique slug stays visible.
func truncateURL(rawURL string, maxWidth int) string {
	display := rawURL
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Host != "" {
		display = parsed.Path
		if display == "" {
			display = "/"
		}
	}

	if runewidth.StringWidth(display) <= maxWidth {
		return display
	}

	const ellipsis = "..."
	budget := maxWidth - len(ellipsis)
	runes := []rune(display)
	width := 0
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if width+w > budget {
			break
		}
		width += w
		start--
	}

	var b strings.Builder
	b.WriteString(ellipsis)
	b.WriteString(string(runes[start:]))
	return b.String()
}
