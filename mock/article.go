package mock

import "github.com/fwojciec/newscrawl"

var _ newscrawl.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of newscrawl.ArticleExtractor.
type ArticleExtractor struct {
	ExtractArticleFn func(rawHTML, pageURL string) (*newscrawl.Article, error)
}

func (e *ArticleExtractor) ExtractArticle(rawHTML, pageURL string) (*newscrawl.Article, error) {
	return e.ExtractArticleFn(rawHTML, pageURL)
}
