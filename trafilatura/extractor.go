// Package trafilatura implements docingest.Extractor with go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/docingest"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docingest.Extractor at compile time.
var _ docingest.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	converter docingest.Converter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConverter renders the extracted content node and converts it with c
// instead of using trafilatura's plain text.
func WithConverter(c docingest.Converter) Option {
	return func(e *Extractor) {
		e.converter = c
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the title and main content.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*docingest.ExtractResult, error) {
	if rawHTML == "" {
		return nil, docingest.Errorf(docingest.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	content := result.ContentText
	if e.converter != nil && result.ContentNode != nil {
		contentHTML, err := renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
		if content, err = e.converter.Convert(contentHTML); err != nil {
			return nil, err
		}
	}

	title := strings.TrimSpace(result.Metadata.Title)
	if title == "" {
		title = docingest.TitleFromURL(pageURL)
	}

	return &docingest.ExtractResult{
		Title:   title,
		Content: docingest.CollapseNewlines(strings.TrimSpace(content)),
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
