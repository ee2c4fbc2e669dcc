package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoldmark_Render(t *testing.T) {
	r := New(Options{})

	out, err := r.Render("# Title\n\nHello **world**\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)

	assert.Contains(t, out, `<h1 id="title">Title</h1>`)
	assert.Contains(t, out, "<strong>world</strong>")
	assert.Contains(t, out, "<table>")
}

func TestGoldmark_CodeBlockWrapper(t *testing.T) {
	r := New(Options{})

	out, err := r.Render("```go\nfunc main() {}\n```\n")
	require.NoError(t, err)
	assert.Contains(t, out, `<div class="code-wrapper" data-lang="go">`)

	out, err = r.Render("```\nplain\n```\n")
	require.NoError(t, err)
	assert.Contains(t, out, `data-lang="text"`)
}

func TestGoldmark_RawHTML(t *testing.T) {
	src := "<script>alert(1)</script>\n\ntext"

	safe, err := New(Options{}).Render(src)
	require.NoError(t, err)
	assert.NotContains(t, safe, "<script>")

	unsafe, err := New(Options{UnsafeHTML: true}).Render(src)
	require.NoError(t, err)
	assert.Contains(t, unsafe, "<script>")
}

func TestGoldmark_HighlightCSS(t *testing.T) {
	css := New(Options{Style: "github"}).HighlightCSS()
	assert.NotEmpty(t, css)
	assert.Contains(t, css, ".chroma")
}

func TestExcerpt(t *testing.T) {
	given := "author summary"
	assert.Equal(t, "author summary", Excerpt(&given, "# ignored", 150))

	blank := "   "
	assert.Equal(t, " Hello world...", Excerpt(&blank, "# Hello *world*", 150))

	assert.Equal(t, "abc...", Excerpt(nil, "abcdef", 3))

	long := strings.Repeat("가", 200)
	got := Excerpt(nil, long, DefaultExcerptLength)
	assert.Equal(t, DefaultExcerptLength+3, len([]rune(got)))
}
