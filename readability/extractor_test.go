package readability_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/newscrawl"
	"github.com/fwojciec/newscrawl/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const newsPage = `<!DOCTYPE html>
<html>
<head>
<title>Flood waters recede in the north</title>
<meta property="og:image" content="https://example.com/images/flood.jpg">
<meta name="author" content="Newsroom">
</head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/world">World Nav Link</a></nav>
<article class="fck_detail">
<p class="description">Water levels fell across the region on Monday after a week of heavy rain.</p>
<p>Residents began returning to their homes as local authorities cleared the roads and restored electricity to most districts of the province.</p>
<p>Officials said the clean-up would take several weeks and asked people to avoid low-lying areas until the inspection is complete.</p>
<p>...end of article</p>
<p>John Smith</p>
</article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.ExtractArticle("", "https://example.com/a")

	require.Error(t, err)
	assert.Equal(t, newscrawl.EINVALID, newscrawl.ErrorCode(err))
}

func TestExtractor_RejectsInvalidPageURL(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.ExtractArticle(newsPage, "http://[::1")

	require.Error(t, err)
	assert.Equal(t, newscrawl.EINVALID, newscrawl.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	article, err := ext.ExtractArticle(newsPage, "https://example.com/a")

	require.NoError(t, err)
	assert.Equal(t, "Flood waters recede in the north", article.Title)
}

func TestExtractor_ExtractsTopImage(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	article, err := ext.ExtractArticle(newsPage, "https://example.com/a")

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/images/flood.jpg", article.TopImage)
}

func TestExtractor_ExtractsBodyWithoutBoilerplate(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	article, err := ext.ExtractArticle(newsPage, "https://example.com/a")

	require.NoError(t, err)
	assert.Contains(t, article.Text, "Residents began returning to their homes")
	assert.NotContains(t, article.Text, "Home Nav Link")
	assert.NotContains(t, article.Text, "Footer copyright text")
	assert.Contains(t, article.ContentHTML, "<p")
}

func TestExtractor_LeavesBylineInBody(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	article, err := ext.ExtractArticle(newsPage, "https://example.com/a")

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(article.Text, "...end of article\n\nJohn Smith"), article.Text)

	newscrawl.ApplyAuthorRecovery(article)

	assert.Equal(t, "John Smith", article.Authors)
	assert.True(t, strings.HasSuffix(article.Text, "...end of article"), article.Text)
}

func TestExtractor_AcceptsEmptyPageURL(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	article, err := ext.ExtractArticle(newsPage, "")

	require.NoError(t, err)
	assert.NotEmpty(t, article.Text)
}
