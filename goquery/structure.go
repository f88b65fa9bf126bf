// Package goquery implements DOM-selector based extraction of article
// structure and rendered comments using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newscrawl"
)

// Ensure StructureExtractor implements newscrawl.StructureExtractor at compile time.
var _ newscrawl.StructureExtractor = (*StructureExtractor)(nil)

// Template holds the CSS selectors for one site layout.
type Template struct {
	// Date selects the publish date node. The first match is used.
	Date string `yaml:"date"`

	// Breadcrumb selects the category list. The first match is used.
	Breadcrumb string `yaml:"breadcrumb"`

	// BreadcrumbItem selects the entries inside Breadcrumb.
	BreadcrumbItem string `yaml:"breadcrumb_item"`

	// Content selects the article body. The first match is used.
	Content string `yaml:"content"`

	// Link selects the anchors inside Content.
	Link string `yaml:"link"`
}

// DefaultTemplate returns the selectors for VnExpress-style article pages.
func DefaultTemplate() Template {
	return Template{
		Date:           "span.date",
		Breadcrumb:     "ul.breadcrumb",
		BreadcrumbItem: "li",
		Content:        "article.fck_detail",
		Link:           "a",
	}
}

// withDefaults fills empty selectors from DefaultTemplate.
func (t Template) withDefaults() Template {
	d := DefaultTemplate()
	if t.Date == "" {
		t.Date = d.Date
	}
	if t.Breadcrumb == "" {
		t.Breadcrumb = d.Breadcrumb
	}
	if t.BreadcrumbItem == "" {
		t.BreadcrumbItem = d.BreadcrumbItem
	}
	if t.Content == "" {
		t.Content = d.Content
	}
	if t.Link == "" {
		t.Link = d.Link
	}
	return t
}

// StructureExtractor reads publish date, breadcrumb category and in-body
// links using a fixed Template.
type StructureExtractor struct {
	tmpl Template
}

// NewStructureExtractor creates a StructureExtractor. Empty selectors in
// tmpl fall back to DefaultTemplate.
func NewStructureExtractor(tmpl Template) *StructureExtractor {
	return &StructureExtractor{tmpl: tmpl.withDefaults()}
}

// ExtractStructure parses rawHTML and returns the fields found. Node text is
// trimmed but otherwise kept as is. A missing node leaves its field nil or
// empty.
func (e *StructureExtractor) ExtractStructure(rawHTML string) (*newscrawl.Structure, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, newscrawl.Errorf(newscrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	s := &newscrawl.Structure{
		Category: []string{},
		Links:    []newscrawl.Link{},
	}

	if date := doc.Find(e.tmpl.Date).First(); date.Length() > 0 {
		text := strings.TrimSpace(date.Text())
		s.PublishDate = &text
	}

	if crumbs := doc.Find(e.tmpl.Breadcrumb).First(); crumbs.Length() > 0 {
		crumbs.Find(e.tmpl.BreadcrumbItem).Each(func(_ int, li *goquery.Selection) {
			s.Category = append(s.Category, strings.TrimSpace(li.Text()))
		})
	}

	if content := doc.Find(e.tmpl.Content).First(); content.Length() > 0 {
		content.Find(e.tmpl.Link).Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			s.Links = append(s.Links, newscrawl.Link{
				Text: strings.TrimSpace(a.Text()),
				Href: href,
			})
		})
	}

	return s, nil
}
