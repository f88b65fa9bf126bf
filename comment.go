package newscrawl

import "context"

// Default placeholders for comment fields whose DOM element is missing.
const (
	DefaultCommentDate   = "unknown"
	DefaultCommentAuthor = "anonymous"
)

// Comment is a single reader comment scraped from a rendered page.
type Comment struct {
	Date    string `json:"Date cmt"`
	Author  string `json:"Nickname"`
	Content string `json:"Comment"`
}

// CommentParser reads comments out of rendered HTML.
type CommentParser interface {
	ParseComments(html string) ([]Comment, error)
}

// CommentExtractor renders a URL and returns its reader comments.
type CommentExtractor interface {
	ExtractComments(ctx context.Context, url string) ([]Comment, error)
}
