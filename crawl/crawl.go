// Package crawl provides documentation ingestion orchestration.
// It coordinates breadth-first crawling of doc sites and websites,
// repository documentation retrieval, and persistence of the collected
// documents.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/fwojciec/docingest"
)

// DefaultMaxPages is the page budget used when a crawler has none configured.
const DefaultMaxPages = 50

// Skip reasons recorded as outcomes.
var (
	ErrAlreadyVisited = errors.New("already visited")
	ErrOutOfScope     = errors.New("outside allowed domains")
)

var _ docingest.Ingester = (*Crawler)(nil)

// Crawler performs a bounded breadth-first crawl starting from a seed URL.
//
// Each crawl owns a fresh Frontier. Pages are fetched once: the same HTML
// feeds content extraction and link discovery.
type Crawler struct {
	Label    string
	Source   docingest.Source
	SeedURL  string
	MaxPages int // 0 means DefaultMaxPages

	Fetcher   docingest.Fetcher
	Extractor docingest.Extractor
	Links     docingest.LinkSelector
	Scope     docingest.Scope
	Pacer     docingest.Pacer
	Detector  docingest.FrameworkDetector

	// EnforceScope re-checks Scope when a URL is taken off the queue,
	// which also applies it to the seed.
	EnforceScope bool

	Now      func() time.Time
	Progress ProgressFunc
}

// Config holds the settings shared by the crawler constructors.
type Config struct {
	Name           string
	SeedURL        string
	MaxPages       int
	AllowedDomains []string

	Fetcher   docingest.Fetcher
	Extractor docingest.Extractor
	Links     docingest.LinkSelector
	Pacer     docingest.Pacer
	Detector  docingest.FrameworkDetector
	Progress  ProgressFunc
}

// NewDocSiteCrawler creates a crawler for a single-origin documentation
// site. Links are followed when they share the seed's host and avoid the
// utility-page deny-list.
func NewDocSiteCrawler(cfg Config) *Crawler {
	c := newCrawler(docingest.SourceDocSite, cfg)
	if scope, err := NewSameHostScope(cfg.SeedURL); err == nil {
		c.Scope = scope
	}
	return c
}

// NewWebsiteCrawler creates a crawler for an arbitrary website. Every URL,
// including the seed, must have a host in cfg.AllowedDomains, which defaults
// to the seed host.
func NewWebsiteCrawler(cfg Config) *Crawler {
	c := newCrawler(docingest.SourceWebsite, cfg)
	if scope, err := NewAllowListScope(cfg.SeedURL, cfg.AllowedDomains); err == nil {
		c.Scope = scope
	}
	c.EnforceScope = true
	return c
}

func newCrawler(source docingest.Source, cfg Config) *Crawler {
	return &Crawler{
		Label:     cfg.Name,
		Source:    source,
		SeedURL:   cfg.SeedURL,
		MaxPages:  cfg.MaxPages,
		Fetcher:   cfg.Fetcher,
		Extractor: cfg.Extractor,
		Links:     cfg.Links,
		Pacer:     cfg.Pacer,
		Detector:  cfg.Detector,
		Progress:  cfg.Progress,
	}
}

// Name implements docingest.Ingester.
func (c *Crawler) Name() string {
	if c.Label != "" {
		return c.Label
	}
	return c.SeedURL
}

// Ingest runs the crawl until the queue is empty or MaxPages documents have
// been produced. Page failures are recorded as outcomes and never stop the
// crawl. An error is returned only for an unusable seed URL or a crawler
// missing a required collaborator.
func (c *Crawler) Ingest(ctx context.Context) (*docingest.Result, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	result := &docingest.Result{Source: c.Source, Name: c.Name()}
	frontier := NewFrontier(c.SeedURL)

	for len(result.Documents) < maxPages {
		if ctx.Err() != nil {
			break
		}

		pageURL, ok := frontier.Pop()
		if !ok {
			break
		}

		if !frontier.Visit(pageURL) {
			result.Outcomes = append(result.Outcomes, docingest.Outcome{Kind: docingest.OutcomeSkipped, URL: pageURL, Err: ErrAlreadyVisited})
			continue
		}
		if c.EnforceScope && !c.Scope.Allows(pageURL) {
			result.Outcomes = append(result.Outcomes, docingest.Outcome{Kind: docingest.OutcomeSkipped, URL: pageURL, Err: ErrOutOfScope})
			continue
		}

		c.crawlPage(ctx, pageURL, frontier, result, maxPages)

		// The pause follows every processed URL, whatever its host, unless
		// the crawl is about to end.
		if c.Pacer != nil && frontier.Len() > 0 && len(result.Documents) < maxPages {
			if err := c.Pacer.Pause(ctx); err != nil {
				break
			}
		}
	}

	c.emit(ProgressEvent{Type: ProgressFinished, Name: result.Name, Completed: len(result.Documents), Total: maxPages})
	return result, nil
}

// crawlPage fetches one URL, records its outcome and queues the in-scope
// links it discovers.
func (c *Crawler) crawlPage(ctx context.Context, pageURL string, frontier *Frontier, result *docingest.Result, maxPages int) {
	doc, html, err := c.processPage(ctx, pageURL)
	if err == nil {
		err = doc.Validate()
	}
	if err != nil {
		result.Outcomes = append(result.Outcomes, docingest.Outcome{Kind: docingest.OutcomeFailed, URL: pageURL, Err: err})
		c.emit(ProgressEvent{Type: ProgressFailed, Name: result.Name, Completed: len(result.Documents), Total: maxPages, URL: pageURL, Error: err})
		return
	}

	result.Documents = append(result.Documents, doc)
	result.Outcomes = append(result.Outcomes, docingest.Outcome{Kind: docingest.OutcomeDocument, URL: pageURL})
	c.emit(ProgressEvent{Type: ProgressCompleted, Name: result.Name, Completed: len(result.Documents), Total: maxPages, URL: pageURL})

	// A page whose links cannot be read is a dead end, not a failure.
	links, err := c.Links.ExtractLinks(html, pageURL)
	if err != nil {
		return
	}
	for _, link := range links {
		if c.Scope.Allows(link) {
			frontier.Push(link)
		}
	}
}

func (c *Crawler) validate() error {
	u, err := url.Parse(c.SeedURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return docingest.Errorf(docingest.EINVALID, "invalid seed URL %q", c.SeedURL)
	}
	if !c.Source.Valid() {
		return docingest.Errorf(docingest.EINVALID, "invalid source %q", c.Source)
	}
	switch {
	case c.Fetcher == nil:
		return docingest.Errorf(docingest.EINVALID, "crawler %s has no fetcher", c.Name())
	case c.Extractor == nil:
		return docingest.Errorf(docingest.EINVALID, "crawler %s has no extractor", c.Name())
	case c.Links == nil:
		return docingest.Errorf(docingest.EINVALID, "crawler %s has no link selector", c.Name())
	case c.Scope == nil:
		return docingest.Errorf(docingest.EINVALID, "crawler %s has no scope", c.Name())
	}
	return nil
}

// processPage fetches and extracts a single URL, returning the document
// and the raw HTML for link discovery.
func (c *Crawler) processPage(ctx context.Context, pageURL string) (*docingest.Document, string, error) {
	html, err := c.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, "", err
	}

	extracted, err := c.Extractor.Extract(html, pageURL)
	if err != nil {
		return nil, "", fmt.Errorf("extract %s: %w", pageURL, err)
	}

	meta := docingest.NewPageMetadata(c.now(), extracted.Content)
	if c.Detector != nil {
		if fw := c.Detector.Detect(html); fw != docingest.FrameworkUnknown {
			meta.Set(docingest.MetaFramework, string(fw))
		}
	}

	return &docingest.Document{
		Source:   c.Source,
		URL:      pageURL,
		Title:    extracted.Title,
		Content:  extracted.Content,
		Metadata: meta,
	}, html, nil
}

func (c *Crawler) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Crawler) emit(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}
