package crawl

import (
	"context"
	"fmt"

	"github.com/fwojciec/newscrawl"
)

var _ newscrawl.CommentExtractor = (*CommentExtractor)(nil)

// CommentExtractor renders a page in a headless browser and parses the
// reader comments out of the rendered DOM. Rendering is never retried.
type CommentExtractor struct {
	Renderer newscrawl.Renderer
	Parser   newscrawl.CommentParser
}

// ExtractComments renders url and returns its comments in DOM order.
func (e *CommentExtractor) ExtractComments(ctx context.Context, url string) ([]newscrawl.Comment, error) {
	html, err := e.Renderer.Render(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if newscrawl.ErrorCode(err) == newscrawl.EINTERNAL {
			return nil, newscrawl.Errorf(newscrawl.ERENDER, "rendering %s: %v", url, err)
		}
		return nil, err
	}

	comments, err := e.Parser.ParseComments(html)
	if err != nil {
		return nil, fmt.Errorf("parsing comments of %s: %w", url, err)
	}
	return comments, nil
}
