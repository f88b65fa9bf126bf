// Package trafilatura implements newscrawl.ArticleExtractor on top of
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/newscrawl"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements newscrawl.ArticleExtractor at compile time.
var _ newscrawl.ArticleExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract article fields from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractArticle processes raw HTML and returns the article fields.
func (e *Extractor) ExtractArticle(rawHTML string, pageURL string) (*newscrawl.Article, error) {
	if rawHTML == "" {
		return nil, newscrawl.Errorf(newscrawl.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, newscrawl.Errorf(newscrawl.EINVALID, "invalid page URL: %v", err)
		}
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &newscrawl.Article{
		TopImage:    result.Metadata.Image,
		Title:       strings.TrimSpace(result.Metadata.Title),
		Text:        strings.TrimSpace(result.ContentText),
		Authors:     strings.TrimSpace(result.Metadata.Author),
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
