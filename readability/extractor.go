// Package readability implements newscrawl.ArticleExtractor on top of
// go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/newscrawl"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements newscrawl.ArticleExtractor at compile time.
var _ newscrawl.ArticleExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract article fields from HTML.
//
// The byline is passed through as reported by go-readability. News sites
// that print the author as the last paragraph of the story end up with the
// name in Text instead; callers fix that with newscrawl.ApplyAuthorRecovery.
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

	var base *url.URL
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, newscrawl.Errorf(newscrawl.EINVALID, "invalid page URL: %v", err)
		}
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, err
	}

	text, err := PlainText(article.Content)
	if err != nil {
		return nil, err
	}

	return &newscrawl.Article{
		TopImage:    article.Image,
		Title:       strings.TrimSpace(article.Title),
		Text:        text,
		Authors:     strings.TrimSpace(article.Byline),
		ContentHTML: article.Content,
	}, nil
}
