package newscrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Record is the merged output for one URL. Field order is the order of the
// keys in the serialized document. Lists that downstream consumers expect
// as strings are stored already stringified.
type Record struct {
	URL      string    `json:"-"`
	TopImage string    `json:"Top image"`
	Title    string    `json:"Title"`
	Author   string    `json:"Author"`
	Date     string    `json:"Date"`
	Content  string    `json:"Content"`
	Category string    `json:"Category"`
	Links    []string  `json:"List tag a"`
	Comments []Comment `json:"Comments"`
}

// RecordWriter persists the full output collection in one step.
type RecordWriter interface {
	// WriteRecords replaces the output artifact with records.
	// Either the whole collection is written or the previous artifact is kept.
	WriteRecords(ctx context.Context, records []*Record) error
}

// Merge combines the outputs of the extractors for url into a Record.
// Nil inputs produce empty fields. Merge is deterministic: identical inputs
// always produce identical records.
func Merge(url string, article *Article, structure *Structure, comments []Comment) *Record {
	r := &Record{
		URL:      url,
		Links:    []string{},
		Comments: []Comment{},
	}

	if article != nil {
		r.TopImage = article.TopImage
		r.Title = article.Title
		r.Author = article.Authors
		r.Content = article.Text
	}

	if structure != nil {
		if structure.PublishDate != nil {
			r.Date = *structure.PublishDate
		}
		if len(structure.Category) > 0 {
			r.Category = FormatList(structure.Category)
		}
		for _, l := range structure.Links {
			r.Links = append(r.Links, FormatList([]string{l.Text, l.Href}))
		}
	}

	r.Comments = append(r.Comments, comments...)

	return r
}

// MarshalRecords renders records as an indented JSON array with non-ASCII
// and HTML characters left unescaped.
func MarshalRecords(records []*Record) ([]byte, error) {
	if records == nil {
		records = []*Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encoding records: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatList renders items as a Python list literal, e.g. ['a', 'b'].
// The existing consumers of the output document parse this form.
func FormatList(items []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		writeQuoted(&b, item)
	}
	b.WriteByte(']')
	return b.String()
}

// writeQuoted writes s using Python's str repr quoting rules.
func writeQuoted(b *strings.Builder, s string) {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(quote):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
}
