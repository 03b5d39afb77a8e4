package goquery_test

import (
	"testing"

	"github.com/fwojciec/docingest"
	"github.com/fwojciec/docingest/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkSelector_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative links against the page url", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/docs/a">A</a>
<a href="b.html">B</a>
<a href="https://other.example.org/c">C</a>
</body></html>`

		links, err := goquery.NewLinkSelector().ExtractLinks(html, "https://docs.example.com/docs/index.html")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://docs.example.com/docs/a",
			"https://docs.example.com/docs/b.html",
			"https://other.example.org/c",
		}, links)
	})

	t.Run("drops fragment links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="#top">Top</a>
<a href="/page#section">Section</a>
<a href="/page">Page</a>
</body></html>`

		links, err := goquery.NewLinkSelector().ExtractLinks(html, "https://docs.example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://docs.example.com/page"}, links)
	})

	t.Run("drops non-http links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="mailto:a@example.com">Mail</a>
<a href="javascript:void(0)">JS</a>
<a href="tel:123">Tel</a>
<a href="ftp://files.example.com/x">FTP</a>
<a href="">Empty</a>
</body></html>`

		links, err := goquery.NewLinkSelector().ExtractLinks(html, "https://docs.example.com/")

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("reports each link once in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<nav><a href="/b">B</a><a href="/a">A</a></nav>
<main><a href="/a">A again</a><a href="/c">C</a></main>
</body></html>`

		links, err := goquery.NewLinkSelector().ExtractLinks(html, "https://docs.example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://docs.example.com/b",
			"https://docs.example.com/a",
			"https://docs.example.com/c",
		}, links)
	})

	t.Run("finds anchors inside noscript", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><noscript><a href="/static-nav">Nav</a></noscript></body></html>`

		links, err := goquery.NewLinkSelector().ExtractLinks(html, "https://docs.example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://docs.example.com/static-nav"}, links)
	})

	t.Run("rejects invalid base url", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewLinkSelector().ExtractLinks("<html></html>", "://bad")

		require.Error(t, err)
		assert.Equal(t, docingest.EINVALID, docingest.ErrorCode(err))
	})
}
