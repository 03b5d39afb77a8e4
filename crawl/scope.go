package crawl

import (
	"net/url"
	"slices"
	"strings"

	"github.com/fwojciec/docingest"
)

// Compile-time interface verification.
var (
	_ docingest.Scope = (*SameHostScope)(nil)
	_ docingest.Scope = (*AllowListScope)(nil)
)

// DefaultDenyList holds path fragments of doc-site utility pages: search,
// generated indexes and static assets.
var DefaultDenyList = []string{"search", "genindex", "_static"}

// SameHostScope admits URLs on a single host, excluding any URL whose path
// or query contains a deny-listed fragment.
type SameHostScope struct {
	Host string
	Deny []string
}

// NewSameHostScope returns a scope for the host of seedURL with the
// default deny-list.
func NewSameHostScope(seedURL string) (*SameHostScope, error) {
	u, err := url.Parse(seedURL)
	if err != nil {
		return nil, docingest.Errorf(docingest.EINVALID, "invalid seed URL %q: %v", seedURL, err)
	}
	if u.Host == "" {
		return nil, docingest.Errorf(docingest.EINVALID, "seed URL %q has no host", seedURL)
	}
	return &SameHostScope{Host: u.Host, Deny: DefaultDenyList}, nil
}

// Allows implements docingest.Scope.
func (s *SameHostScope) Allows(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host != s.Host {
		return false
	}
	rest := u.Path + "?" + u.RawQuery
	for _, d := range s.Deny {
		if strings.Contains(rest, d) {
			return false
		}
	}
	return true
}

// AllowListScope admits URLs whose host is one of Domains.
type AllowListScope struct {
	Domains []string
}

// NewAllowListScope returns a scope for domains. An empty list falls back
// to the host of seedURL.
func NewAllowListScope(seedURL string, domains []string) (*AllowListScope, error) {
	if len(domains) > 0 {
		return &AllowListScope{Domains: domains}, nil
	}
	u, err := url.Parse(seedURL)
	if err != nil {
		return nil, docingest.Errorf(docingest.EINVALID, "invalid seed URL %q: %v", seedURL, err)
	}
	if u.Host == "" {
		return nil, docingest.Errorf(docingest.EINVALID, "seed URL %q has no host", seedURL)
	}
	return &AllowListScope{Domains: []string{u.Host}}, nil
}

// Allows implements docingest.Scope.
func (s *AllowListScope) Allows(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return slices.Contains(s.Domains, u.Host)
}
