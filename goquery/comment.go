package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newscrawl"
)

// Ensure CommentParser implements newscrawl.CommentParser at compile time.
var _ newscrawl.CommentParser = (*CommentParser)(nil)

// CommentSelectors holds the CSS selectors of a comment widget.
type CommentSelectors struct {
	Item    string `yaml:"item"`
	Date    string `yaml:"date"`
	Author  string `yaml:"author"`
	Content string `yaml:"content"`
}

// DefaultCommentSelectors returns the selectors of the VnExpress comment widget.
func DefaultCommentSelectors() CommentSelectors {
	return CommentSelectors{
		Item:    ".comment_item.width_common",
		Date:    ".time-com",
		Author:  ".nickname",
		Content: ".full_content",
	}
}

// CommentParser reads comments out of a rendered page.
type CommentParser struct {
	sel           CommentSelectors
	defaultDate   string
	defaultAuthor string
}

// CommentOption configures a CommentParser.
type CommentOption func(*CommentParser)

// WithCommentSelectors replaces the widget selectors. Empty fields keep
// their defaults.
func WithCommentSelectors(sel CommentSelectors) CommentOption {
	return func(p *CommentParser) {
		if sel.Item != "" {
			p.sel.Item = sel.Item
		}
		if sel.Date != "" {
			p.sel.Date = sel.Date
		}
		if sel.Author != "" {
			p.sel.Author = sel.Author
		}
		if sel.Content != "" {
			p.sel.Content = sel.Content
		}
	}
}

// WithPlaceholders sets the values used when a comment has no date or no
// nickname element. Empty arguments keep the defaults.
func WithPlaceholders(date, author string) CommentOption {
	return func(p *CommentParser) {
		if date != "" {
			p.defaultDate = date
		}
		if author != "" {
			p.defaultAuthor = author
		}
	}
}

// NewCommentParser creates a CommentParser.
func NewCommentParser(opts ...CommentOption) *CommentParser {
	p := &CommentParser{
		sel:           DefaultCommentSelectors(),
		defaultDate:   newscrawl.DefaultCommentDate,
		defaultAuthor: newscrawl.DefaultCommentAuthor,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseComments returns one Comment per widget item in document order.
func (p *CommentParser) ParseComments(html string) ([]newscrawl.Comment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, newscrawl.Errorf(newscrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	comments := []newscrawl.Comment{}
	doc.Find(p.sel.Item).Each(func(_ int, item *goquery.Selection) {
		comments = append(comments, p.parseItem(item))
	})
	return comments, nil
}

func (p *CommentParser) parseItem(item *goquery.Selection) newscrawl.Comment {
	c := newscrawl.Comment{
		Date:   p.defaultDate,
		Author: p.defaultAuthor,
	}

	if date := item.Find(p.sel.Date).First(); date.Length() > 0 {
		c.Date = strings.TrimSpace(date.Text())
	}

	name := item.Find(p.sel.Author).First()
	if name.Length() > 0 {
		c.Author = strings.TrimSpace(name.Text())
	}

	if content := item.Find(p.sel.Content).First(); content.Length() > 0 {
		c.Content = strings.TrimSpace(content.Text())
		// The widget renders the nickname inside the content block.
		if name.Length() > 0 && c.Author != "" && strings.Contains(c.Content, c.Author) {
			c.Content = strings.TrimSpace(strings.Replace(c.Content, c.Author, "", 1))
		}
	}

	return c
}
