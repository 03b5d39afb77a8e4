package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docingest"
	"github.com/fwojciec/docingest/crawl"
	"github.com/fwojciec/docingest/fs"
	"github.com/fwojciec/docingest/github"
	"github.com/fwojciec/docingest/goquery"
	"github.com/fwojciec/docingest/htmltomarkdown"
	dihttp "github.com/fwojciec/docingest/http"
	"github.com/fwojciec/docingest/readability"
	dislog "github.com/fwojciec/docingest/slog"
	"github.com/fwojciec/docingest/sqlite"
	"github.com/fwojciec/docingest/trafilatura"
)

func newFetcher(cfg *Config) *dihttp.Fetcher {
	return dihttp.NewFetcher(dihttp.WithTimeout(cfg.Timeout))
}

// newExtractor builds the extractor named by kind. website selects the
// website flavor of the heuristic extractor.
func newExtractor(kind, format string, website bool) docingest.Extractor {
	var converter docingest.Converter
	if format == FormatMarkdown {
		converter = htmltomarkdown.NewConverter()
	}

	switch kind {
	case ExtractorReadability:
		if converter != nil {
			return readability.NewExtractor(readability.WithConverter(converter))
		}
		return readability.NewExtractor()
	case ExtractorTrafilatura:
		if converter != nil {
			return trafilatura.NewExtractor(trafilatura.WithConverter(converter))
		}
		return trafilatura.NewExtractor()
	}

	var opts []goquery.Option
	if converter != nil {
		opts = append(opts, goquery.WithConverter(converter))
	}
	if website {
		return goquery.NewWebsiteExtractor(opts...)
	}
	return goquery.NewDocSiteExtractor(opts...)
}

// buildIngesters creates one ingester per configured source, in the order
// doc sites, repositories, websites. Every crawl gets its own pacer.
func buildIngesters(deps *Dependencies, progress crawl.ProgressFunc) []docingest.Ingester {
	cfg := deps.Config
	links := goquery.NewLinkSelector()
	detector := dislog.NewLoggingDetector(goquery.NewDetector(), deps.Logger)

	var ingesters []docingest.Ingester
	wrap := func(ing docingest.Ingester) {
		ingesters = append(ingesters, dislog.NewLoggingIngester(ing, deps.Logger))
	}

	for _, s := range cfg.DocSites {
		wrap(crawl.NewDocSiteCrawler(crawl.Config{
			Name:      s.Name,
			SeedURL:   s.URL,
			MaxPages:  s.MaxPages,
			Fetcher:   deps.Fetcher,
			Extractor: newExtractor(s.Extractor, s.Format, false),
			Links:     links,
			Pacer:     crawl.NewPacer(cfg.Delay),
			Detector:  detector,
			Progress:  progress,
		}))
	}

	for _, s := range cfg.Repositories {
		token := s.Token
		if token == "" {
			token = deps.GitHubToken
		}
		opts := []github.Option{github.WithToken(token), github.WithTimeout(cfg.Timeout)}
		if s.APIBase != "" {
			opts = append(opts, github.WithAPIBase(s.APIBase))
		}
		svc := dislog.NewLoggingRepositoryService(github.NewClient(s.Owner, s.Repo, opts...), deps.Logger)

		ing := crawl.NewRepositoryIngester(s.Name, svc)
		if s.DocsPath != "" {
			ing.DocsPath = s.DocsPath
		}
		ing.Progress = progress
		wrap(ing)
	}

	for _, s := range cfg.Websites {
		wrap(crawl.NewWebsiteCrawler(crawl.Config{
			Name:           s.Name,
			SeedURL:        s.URL,
			MaxPages:       s.MaxPages,
			AllowedDomains: s.AllowedDomains,
			Fetcher:        deps.Fetcher,
			Extractor:      newExtractor(s.Extractor, s.Format, true),
			Links:          links,
			Pacer:          crawl.NewPacer(cfg.Delay),
			Progress:       progress,
		}))
	}

	return ingesters
}

// storeKind classifies a destination by its extension.
type storeKind int

const (
	storeMarkdown storeKind = iota
	storeJSON
	storeSQLite
)

func kindOf(dest string) storeKind {
	switch strings.ToLower(filepath.Ext(dest)) {
	case ".json":
		return storeJSON
	case ".db", ".sqlite", ".sqlite3":
		return storeSQLite
	}
	return storeMarkdown
}

// openStore returns the store for dest and a function releasing it.
func openStore(dest string, logger *slog.Logger) (docingest.DocumentStore, func() error, error) {
	var (
		store   docingest.DocumentStore
		release = func() error { return nil }
	)

	switch kindOf(dest) {
	case storeJSON:
		store = fs.NewJSONStore(dest)
	case storeSQLite:
		db, err := openDB(dest)
		if err != nil {
			return nil, nil, err
		}
		store, release = sqlite.NewDocumentStore(db), db.Close
	default:
		store = fs.NewMarkdownStore(dest)
	}

	return dislog.NewLoggingStore(store, dest, logger), release, nil
}

func openDB(path string) (*sqlite.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db := sqlite.NewDB(path)
	if err := db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return db, nil
}
