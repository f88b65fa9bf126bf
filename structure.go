package newscrawl

// Link is an anchor found inside the article body.
type Link struct {
	Text string
	Href string
}

// Structure holds the fields read from fixed page-template selectors.
// Missing DOM nodes are not errors: PublishDate stays nil and the slices
// stay empty.
type Structure struct {
	PublishDate *string
	Category    []string
	Links       []Link
}

// StructureExtractor reads publish date, breadcrumb category and in-body
// links from raw HTML.
type StructureExtractor interface {
	ExtractStructure(rawHTML string) (*Structure, error)
}
