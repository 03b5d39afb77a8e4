package mock

import "github.com/fwojciec/docingest"

var _ docingest.Converter = (*Converter)(nil)

// Converter is a mock implementation of docingest.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
