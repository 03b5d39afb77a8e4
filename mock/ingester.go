package mock

import (
	"context"

	"github.com/fwojciec/docingest"
)

var _ docingest.Ingester = (*Ingester)(nil)

// Ingester is a mock implementation of docingest.Ingester.
type Ingester struct {
	NameFn   func() string
	IngestFn func(ctx context.Context) (*docingest.Result, error)
}

func (i *Ingester) Name() string {
	return i.NameFn()
}

func (i *Ingester) Ingest(ctx context.Context) (*docingest.Result, error) {
	return i.IngestFn(ctx)
}
