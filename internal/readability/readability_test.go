package readability

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = `
<html><body>
<div class="sidebar"><a href="/a">nav</a><a href="/b">nav2</a><a href="/c">nav3</a></div>
<article>
<h1>Headline</h1>
<div class="content">
<p>This is the first real paragraph of the article, it has enough words to score, and commas, too.</p>
<p>This is the second real paragraph, continuing the discussion with more detail and more commas, still.</p>
<p>A third paragraph rounds out the body text nicely, adding even more detail for good measure.</p>
</div>
<div class="comments"><p>Great post!</p></div>
</article>
</body></html>
`

func TestExtractPicksArticleBody(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sampleHTML))
	require.NoError(t, err)

	result := Extract(doc, Options{Formatting: true, Ruthless: true})
	require.NotNil(t, result.Body)
	assert.Contains(t, result.Text, "first real paragraph")
	assert.Contains(t, result.Text, "second real paragraph")
	assert.Greater(t, result.Length, 50)
}

func TestExtractEmptyDocument(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body></body></html>`))
	require.NoError(t, err)

	result := Extract(doc, Options{})
	assert.Equal(t, 0, result.Length)
}

func TestClassWeightPositiveAndNegative(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><body><div class="article-content" id="x"></div><div class="sidebar-widget"></div></body></html>`))
	require.NoError(t, err)

	pos := doc.Find("div.article-content")
	neg := doc.Find("div.sidebar-widget")
	assert.Positive(t, classWeight(pos))
	assert.Negative(t, classWeight(neg))
}

func TestTransformMisusedDivs(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><body><div>plain text, no block children</div></body></html>`))
	require.NoError(t, err)

	transformMisusedDivs(doc)
	assert.Equal(t, 1, doc.Find("p").Length())
}
