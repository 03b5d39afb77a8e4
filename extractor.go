package docingest

import (
	"regexp"
	"strings"
)

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page heading, the document title, or a name derived
	// from the URL, in that order of preference.
	Title string

	// Content is the text of the main content region with chrome
	// (navigation, footer, sidebars, scripts) removed.
	Content string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML fetched from pageURL and returns the
	// title and main content. A page without a recognizable content
	// region yields empty content, not an error.
	Extract(html string, pageURL string) (*ExtractResult, error)
}

var newlineRuns = regexp.MustCompile(`\n{3,}`)

// CollapseNewlines replaces every run of three or more newlines with
// exactly two.
func CollapseNewlines(s string) string {
	return newlineRuns.ReplaceAllString(s, "\n\n")
}

// TitleFromURL returns the last slash-separated segment of rawURL.
// It is the title of last resort for pages without headings.
func TitleFromURL(rawURL string) string {
	if i := strings.LastIndex(rawURL, "/"); i >= 0 {
		return rawURL[i+1:]
	}
	return rawURL
}
