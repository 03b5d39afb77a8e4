package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fwojciec/docingest"
	"github.com/fwojciec/docingest/crawl"
	dihttp "github.com/fwojciec/docingest/http"
	"gopkg.in/yaml.v3"
)

// DefaultOutput is where documents are written when no output is configured.
const DefaultOutput = "documents.json"

// Extractor names accepted in source configuration.
const (
	ExtractorHeuristic   = "heuristic"
	ExtractorReadability = "readability"
	ExtractorTrafilatura = "trafilatura"
)

// Content formats accepted in source configuration.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// Config describes the sources to ingest and where to write the result.
type Config struct {
	Output  string        `yaml:"output"`
	Delay   time.Duration `yaml:"delay"`
	Timeout time.Duration `yaml:"timeout"`

	DocSites     []DocSiteSource    `yaml:"readthedocs"`
	Repositories []RepositorySource `yaml:"github"`
	Websites     []WebsiteSource    `yaml:"websites"`
}

// DocSiteSource configures a documentation site crawl. A MaxPages of 0
// means the crawler default of 50 pages.
type DocSiteSource struct {
	Name      string `yaml:"name"`
	URL       string `yaml:"url"`
	MaxPages  int    `yaml:"max_pages"`
	Extractor string `yaml:"extractor"`
	Format    string `yaml:"format"`
}

// RepositorySource configures a GitHub repository.
type RepositorySource struct {
	Name     string `yaml:"name"`
	Owner    string `yaml:"owner"`
	Repo     string `yaml:"repo"`
	Token    string `yaml:"token"`
	DocsPath string `yaml:"docs_path"`
	APIBase  string `yaml:"api_base"`
}

// WebsiteSource configures a crawl restricted to an allow-list of hosts.
// A MaxPages of 0 means the crawler default of 50 pages.
type WebsiteSource struct {
	Name           string   `yaml:"name"`
	URL            string   `yaml:"url"`
	AllowedDomains []string `yaml:"allowed_domains"`
	MaxPages       int      `yaml:"max_pages"`
	Extractor      string   `yaml:"extractor"`
	Format         string   `yaml:"format"`
}

// DefaultConfig returns the built-in source table.
func DefaultConfig() *Config {
	cfg := baseConfig()
	cfg.DocSites = []DocSiteSource{
		{Name: "FastAPI", URL: "https://fastapi.tiangolo.com", MaxPages: 30},
	}
	cfg.Repositories = []RepositorySource{
		{Name: "FastAPI", Owner: "tiangolo", Repo: "fastapi"},
	}
	cfg.Websites = []WebsiteSource{
		{
			Name:           "Python Official Docs",
			URL:            "https://docs.python.org/3/tutorial/index.html",
			AllowedDomains: []string{"docs.python.org"},
			MaxPages:       10,
		},
	}
	return cfg
}

// baseConfig holds the defaults that apply whether or not a file is loaded.
func baseConfig() *Config {
	return &Config{
		Output:  DefaultOutput,
		Delay:   crawl.DefaultPoliteDelay,
		Timeout: dihttp.DefaultFetchTimeout,
	}
}

// LoadConfig reads a YAML configuration file. An empty path returns the
// built-in source table. Sources listed in a file replace the built-in
// table entirely; unset scalar settings keep their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, docingest.Errorf(docingest.ENOTFOUND, "config file %q not found", path)
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return ParseConfig(f)
}

// ParseConfig decodes and validates a YAML configuration.
// Unknown keys are rejected.
func ParseConfig(r io.Reader) (*Config, error) {
	cfg := baseConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, docingest.Errorf(docingest.EINVALID, "parse config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that cannot be deferred to ingestion.
// Seed URLs are checked by the crawlers themselves so one bad source does
// not prevent the others from running.
func (c *Config) Validate() error {
	if c.Output == "" {
		return docingest.Errorf(docingest.EINVALID, "output is required")
	}
	if c.Timeout < 0 {
		return docingest.Errorf(docingest.EINVALID, "timeout must not be negative")
	}
	if c.Delay < 0 {
		return docingest.Errorf(docingest.EINVALID, "delay must not be negative")
	}
	for i, s := range c.DocSites {
		if s.MaxPages < 0 {
			return docingest.Errorf(docingest.EINVALID, "readthedocs[%d]: max_pages must not be negative", i)
		}
		if err := validateExtraction(s.Extractor, s.Format); err != nil {
			return fmt.Errorf("readthedocs[%d]: %w", i, err)
		}
	}
	for i, s := range c.Repositories {
		if s.Owner == "" || s.Repo == "" {
			return docingest.Errorf(docingest.EINVALID, "github[%d]: owner and repo are required", i)
		}
	}
	for i, s := range c.Websites {
		if s.MaxPages < 0 {
			return docingest.Errorf(docingest.EINVALID, "websites[%d]: max_pages must not be negative", i)
		}
		if err := validateExtraction(s.Extractor, s.Format); err != nil {
			return fmt.Errorf("websites[%d]: %w", i, err)
		}
	}
	return nil
}

func validateExtraction(extractor, format string) error {
	switch extractor {
	case "", ExtractorHeuristic, ExtractorReadability, ExtractorTrafilatura:
	default:
		return docingest.Errorf(docingest.EINVALID, "unknown extractor %q", extractor)
	}
	switch format {
	case "", FormatText, FormatMarkdown:
	default:
		return docingest.Errorf(docingest.EINVALID, "unknown format %q", format)
	}
	return nil
}
