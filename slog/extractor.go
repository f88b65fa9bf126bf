package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newscrawl"
)

// Ensure LoggingArticleExtractor implements newscrawl.ArticleExtractor.
var _ newscrawl.ArticleExtractor = (*LoggingArticleExtractor)(nil)

// LoggingArticleExtractor wraps an ArticleExtractor with logging.
type LoggingArticleExtractor struct {
	next   newscrawl.ArticleExtractor
	logger *slog.Logger
}

// NewLoggingArticleExtractor creates a new LoggingArticleExtractor.
func NewLoggingArticleExtractor(next newscrawl.ArticleExtractor, logger *slog.Logger) *LoggingArticleExtractor {
	return &LoggingArticleExtractor{next: next, logger: logger}
}

// ExtractArticle delegates to the wrapped extractor and logs the outcome.
func (e *LoggingArticleExtractor) ExtractArticle(rawHTML, pageURL string) (article *newscrawl.Article, err error) {
	defer func(begin time.Time) {
		var title string
		var textLen int
		if article != nil {
			title = article.Title
			textLen = len(article.Text)
		}
		log(context.Background(), e.logger, "extract article", err,
			"url", pageURL,
			"title", title,
			"text_bytes", textLen,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.ExtractArticle(rawHTML, pageURL)
}

// Ensure LoggingStructureExtractor implements newscrawl.StructureExtractor.
var _ newscrawl.StructureExtractor = (*LoggingStructureExtractor)(nil)

// LoggingStructureExtractor wraps a StructureExtractor with logging.
type LoggingStructureExtractor struct {
	next   newscrawl.StructureExtractor
	logger *slog.Logger
}

// NewLoggingStructureExtractor creates a new LoggingStructureExtractor.
func NewLoggingStructureExtractor(next newscrawl.StructureExtractor, logger *slog.Logger) *LoggingStructureExtractor {
	return &LoggingStructureExtractor{next: next, logger: logger}
}

// ExtractStructure delegates to the wrapped extractor and logs what was found.
func (e *LoggingStructureExtractor) ExtractStructure(rawHTML string) (s *newscrawl.Structure, err error) {
	defer func(begin time.Time) {
		var hasDate bool
		var categories, links int
		if s != nil {
			hasDate = s.PublishDate != nil
			categories = len(s.Category)
			links = len(s.Links)
		}
		log(context.Background(), e.logger, "extract structure", err,
			"date", hasDate,
			"categories", categories,
			"links", links,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.ExtractStructure(rawHTML)
}

// Ensure LoggingCommentExtractor implements newscrawl.CommentExtractor.
var _ newscrawl.CommentExtractor = (*LoggingCommentExtractor)(nil)

// LoggingCommentExtractor wraps a CommentExtractor with logging.
type LoggingCommentExtractor struct {
	next   newscrawl.CommentExtractor
	logger *slog.Logger
}

// NewLoggingCommentExtractor creates a new LoggingCommentExtractor.
func NewLoggingCommentExtractor(next newscrawl.CommentExtractor, logger *slog.Logger) *LoggingCommentExtractor {
	return &LoggingCommentExtractor{next: next, logger: logger}
}

// ExtractComments delegates to the wrapped extractor and logs the count.
func (e *LoggingCommentExtractor) ExtractComments(ctx context.Context, url string) (comments []newscrawl.Comment, err error) {
	defer func(begin time.Time) {
		log(ctx, e.logger, "extract comments", err,
			"url", url,
			"count", len(comments),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.ExtractComments(ctx, url)
}
