// Package readability implements docingest.Extractor with go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/docingest"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements docingest.Extractor at compile time.
var _ docingest.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct {
	converter docingest.Converter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConverter converts the article HTML with c instead of using the
// article's plain text.
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

// Extract processes raw HTML and returns the article title and text.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*docingest.ExtractResult, error) {
	if rawHTML == "" {
		return nil, docingest.Errorf(docingest.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, err
	}

	content := article.TextContent
	if e.converter != nil {
		content, err = e.converter.Convert(article.Content)
		if err != nil {
			return nil, err
		}
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = docingest.TitleFromURL(pageURL)
	}

	return &docingest.ExtractResult{
		Title:   title,
		Content: docingest.CollapseNewlines(strings.TrimSpace(content)),
	}, nil
}
