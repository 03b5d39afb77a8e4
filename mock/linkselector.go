package mock

import "github.com/fwojciec/docingest"

var _ docingest.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of docingest.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]string, error) {
	return s.ExtractLinksFn(html, baseURL)
}

var _ docingest.Scope = (*Scope)(nil)

// Scope is a mock implementation of docingest.Scope.
type Scope struct {
	AllowsFn func(rawURL string) bool
}

func (s *Scope) Allows(rawURL string) bool {
	return s.AllowsFn(rawURL)
}

var _ docingest.FrameworkDetector = (*FrameworkDetector)(nil)

// FrameworkDetector is a mock implementation of docingest.FrameworkDetector.
type FrameworkDetector struct {
	DetectFn func(html string) docingest.Framework
}

func (d *FrameworkDetector) Detect(html string) docingest.Framework {
	return d.DetectFn(html)
}
