package mock

import (
	"context"

	"github.com/fwojciec/docingest"
)

var _ docingest.Pacer = (*Pacer)(nil)

// Pacer is a mock implementation of docingest.Pacer.
type Pacer struct {
	PauseFn func(ctx context.Context) error
}

func (p *Pacer) Pause(ctx context.Context) error {
	return p.PauseFn(ctx)
}
