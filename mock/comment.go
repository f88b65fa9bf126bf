package mock

import (
	"context"

	"github.com/fwojciec/newscrawl"
)

var _ newscrawl.CommentParser = (*CommentParser)(nil)

// CommentParser is a mock implementation of newscrawl.CommentParser.
type CommentParser struct {
	ParseCommentsFn func(html string) ([]newscrawl.Comment, error)
}

func (p *CommentParser) ParseComments(html string) ([]newscrawl.Comment, error) {
	return p.ParseCommentsFn(html)
}

var _ newscrawl.CommentExtractor = (*CommentExtractor)(nil)

// CommentExtractor is a mock implementation of newscrawl.CommentExtractor.
type CommentExtractor struct {
	ExtractCommentsFn func(ctx context.Context, url string) ([]newscrawl.Comment, error)
}

func (e *CommentExtractor) ExtractComments(ctx context.Context, url string) ([]newscrawl.Comment, error) {
	return e.ExtractCommentsFn(ctx, url)
}
