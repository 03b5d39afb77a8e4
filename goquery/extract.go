// Package goquery implements HTML content extraction, link discovery and
// framework detection on top of github.com/PuerkitoBio/goquery.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docingest"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docingest.Extractor at compile time.
var _ docingest.Extractor = (*Extractor)(nil)

// Chrome removed before looking for content.
const (
	docSiteChrome = "nav, footer, script, style, aside"
	websiteChrome = "nav, footer, script, style, aside, header"
)

var (
	docSiteClassPattern = regexp.MustCompile(`(?i)content|document|body`)
	websiteClassPattern = regexp.MustCompile(`(?i)content|main|article|body`)
)

// Extractor isolates the main text of a page with a fixed set of
// heuristics: strip chrome, pick the first matching content root, flatten
// its text.
type Extractor struct {
	chrome       string
	roots        []string
	classPattern *regexp.Regexp
	converter    docingest.Converter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConverter renders the content root as HTML and converts it with c
// instead of flattening it to plain text.
func WithConverter(c docingest.Converter) Option {
	return func(e *Extractor) {
		e.converter = c
	}
}

// NewDocSiteExtractor returns an Extractor tuned for documentation sites.
// Content root priority: div[role=main], main, article, the first div
// whose class mentions content/document/body, then body.
func NewDocSiteExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		chrome:       docSiteChrome,
		roots:        []string{`div[role="main"]`, "main", "article"},
		classPattern: docSiteClassPattern,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewWebsiteExtractor returns an Extractor for arbitrary websites.
// Page headers are stripped as well, and there is no role=main lookup.
func NewWebsiteExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		chrome:       websiteChrome,
		roots:        []string{"main", "article"},
		classPattern: websiteClassPattern,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses rawHTML and returns its title and main content.
// The input is parsed on every call, so repeated calls are identical.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*docingest.ExtractResult, error) {
	doc, err := parseHTML(rawHTML)
	if err != nil {
		return nil, docingest.Errorf(docingest.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(e.chrome).Remove()

	result := &docingest.ExtractResult{Title: pageTitle(doc, pageURL)}

	root := e.contentRoot(doc)
	if root == nil {
		return result, nil
	}

	if e.converter != nil {
		h, err := goquery.OuterHtml(root)
		if err != nil {
			return nil, err
		}
		md, err := e.converter.Convert(h)
		if err != nil {
			return nil, err
		}
		result.Content = docingest.CollapseNewlines(strings.TrimSpace(md))
		return result, nil
	}

	result.Content = docingest.CollapseNewlines(TextContent(root.Nodes[0]))
	return result, nil
}

// contentRoot returns the subtree judged to hold the page prose, or nil.
func (e *Extractor) contentRoot(doc *goquery.Document) *goquery.Selection {
	for _, selector := range e.roots {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}

	var match *goquery.Selection
	doc.Find("div[class]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		for _, name := range strings.Fields(class) {
			if e.classPattern.MatchString(name) {
				match = sel
				return false
			}
		}
		return true
	})
	if match != nil {
		return match
	}

	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return nil
}

// parseHTML parses a page with scripting disabled, so the contents of
// <noscript> become elements rather than raw text.
func parseHTML(rawHTML string) (*goquery.Document, error) {
	root, err := html.ParseWithOptions(strings.NewReader(rawHTML), html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromNode(root), nil
}

// pageTitle prefers the first h1, then the document title, then the last
// URL segment.
func pageTitle(doc *goquery.Document, pageURL string) string {
	if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return docingest.TitleFromURL(pageURL)
}

// TextContent returns the text nodes under n, each trimmed, joined by
// newlines. Empty nodes and comments are dropped.
func TextContent(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, "\n")
}
