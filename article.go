package newscrawl

// Article holds the output of readability-style extraction.
//
// Authors is unreliable: the extractors often fold the byline into the last
// line of Text and leave Authors empty or wrong. Run ApplyAuthorRecovery
// before using it.
type Article struct {
	TopImage string
	Title    string
	Text     string
	Authors  string

	// ContentHTML is the cleaned article body as HTML.
	ContentHTML string
}

// ArticleExtractor extracts article metadata and body text from raw HTML.
type ArticleExtractor interface {
	// ExtractArticle parses rawHTML and returns the article fields.
	// pageURL is used to resolve relative image URLs and may be empty.
	ExtractArticle(rawHTML string, pageURL string) (*Article, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}
