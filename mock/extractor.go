package mock

import "github.com/fwojciec/docingest"

var _ docingest.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docingest.Extractor.
type Extractor struct {
	ExtractFn func(html string, pageURL string) (*docingest.ExtractResult, error)
}

func (e *Extractor) Extract(html string, pageURL string) (*docingest.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}
