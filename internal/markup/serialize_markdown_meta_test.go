package markup

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

func TestToMarkdownWithFrontMatterRoundTrips(t *testing.T) {
	body := New(Body, nil)
	p := body.Append(New(P, nil))
	p.Text = "Hello world."

	out := ToMarkdownWithFrontMatter(body, Meta{
		Title:      "My Title",
		Author:     "Jane Doe",
		URL:        "https://example.org/a",
		Categories: []string{"news"},
	})

	md := goldmark.New(goldmark.WithExtensions(meta.Meta))
	ctx := parser.NewContext()
	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte(out), &buf, parser.WithContext(ctx)))

	parsed := meta.Get(ctx)
	assert.Equal(t, "My Title", parsed["title"])
	assert.Equal(t, "Jane Doe", parsed["author"])
	assert.Contains(t, buf.String(), "Hello world")
}
