// Package github implements docingest.RepositoryService against the
// GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/docingest"
	dihttp "github.com/fwojciec/docingest/http"
)

// DefaultAPIBase is the public GitHub REST API endpoint.
const DefaultAPIBase = "https://api.github.com"

// Ensure Client implements docingest.RepositoryService at compile time.
var _ docingest.RepositoryService = (*Client)(nil)

var apiHeader = http.Header{
	"Accept":               []string{"application/vnd.github+json"},
	"X-Github-Api-Version": []string{"2022-11-28"},
}

// Client reads a single repository's readme and contents.
type Client struct {
	owner   string
	repo    string
	apiBase string
	token   string
	timeout time.Duration

	fetcher *dihttp.Fetcher
}

// Option configures a Client.
type Option func(*Client)

// WithAPIBase points the client at a different API root
// (GitHub Enterprise, test servers).
func WithAPIBase(base string) Option {
	return func(c *Client) {
		c.apiBase = strings.TrimRight(base, "/")
	}
}

// WithToken attaches a bearer token to every request.
// Without a token requests are anonymous and heavily rate-limited.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a Client for owner/repo.
func NewClient(owner, repo string, opts ...Option) *Client {
	c := &Client{
		owner:   owner,
		repo:    repo,
		apiBase: DefaultAPIBase,
		timeout: dihttp.DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.fetcher = dihttp.NewFetcher(
		dihttp.WithTimeout(c.timeout),
		dihttp.WithBearerToken(c.token),
	)
	return c
}

// Owner returns the repository owner.
func (c *Client) Owner() string { return c.owner }

// Repo returns the repository name.
func (c *Client) Repo() string { return c.repo }

// Readme resolves the repository readme.
func (c *Client) Readme(ctx context.Context) (*docingest.RepositoryEntry, error) {
	var entry docingest.RepositoryEntry
	if err := c.getJSON(ctx, c.repoURL("readme"), &entry); err != nil {
		return nil, err
	}
	if entry.DownloadURL == "" {
		return nil, docingest.Errorf(docingest.EINVALID, "readme for %s/%s has no download URL", c.owner, c.repo)
	}
	return &entry, nil
}

// ListDirectory lists the repository entries at path.
// Returns ENOTFOUND if the path does not exist and EINVALID if it names a file.
func (c *Client) ListDirectory(ctx context.Context, path string) ([]*docingest.RepositoryEntry, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, c.repoURL("contents", path), &raw); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(strings.TrimSpace(string(raw)), "[") {
		return nil, docingest.Errorf(docingest.EINVALID, "%s is not a directory", path)
	}

	var entries []*docingest.RepositoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode listing of %s: %w", path, err)
	}
	return entries, nil
}

// Download returns the raw content behind a download URL.
func (c *Client) Download(ctx context.Context, url string) (string, error) {
	return c.fetcher.Fetch(ctx, url)
}

// repoURL builds an API URL below /repos/{owner}/{repo}.
func (c *Client) repoURL(parts ...string) string {
	segments := []string{c.apiBase, "repos", url.PathEscape(c.owner), url.PathEscape(c.repo)}
	for _, p := range parts {
		for _, s := range strings.Split(strings.Trim(p, "/"), "/") {
			if s != "" {
				segments = append(segments, url.PathEscape(s))
			}
		}
	}
	return strings.Join(segments, "/")
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	body, err := c.fetcher.Get(ctx, url, apiHeader)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
