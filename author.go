package newscrawl

import (
	"strings"
	"unicode"
)

// RecoverAuthor treats the last line of text as the author's name.
//
// It scans backward from the end of text to the last line break. When a line
// break is found and the run after it is non-empty, that run is returned as
// the author together with the text before the line break, and ok is true.
// When text has no line break, is empty, or ends with a line break, nothing
// is recovered: author is empty, remaining equals text, and ok is false.
func RecoverAuthor(text string) (author string, remaining string, ok bool) {
	i := strings.LastIndexByte(text, '\n')
	if i < 0 || i == len(text)-1 {
		return "", text, false
	}
	return text[i+1:], strings.TrimSuffix(text[:i], "\r"), true
}

// ApplyAuthorRecovery moves the trailing byline of a.Text into a.Authors.
// Blank lines left between the body and the byline are trimmed from Text.
// The article is left untouched when RecoverAuthor finds nothing.
func ApplyAuthorRecovery(a *Article) {
	if a == nil {
		return
	}
	author, remaining, ok := RecoverAuthor(a.Text)
	if !ok {
		return
	}
	a.Authors = author
	a.Text = strings.TrimRightFunc(remaining, unicode.IsSpace)
}
