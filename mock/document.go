package mock

import (
	"context"

	"github.com/fwojciec/docingest"
)

var _ docingest.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of docingest.DocumentStore.
type DocumentStore struct {
	SaveDocumentsFn func(ctx context.Context, docs []*docingest.Document) error
}

func (s *DocumentStore) SaveDocuments(ctx context.Context, docs []*docingest.Document) error {
	return s.SaveDocumentsFn(ctx, docs)
}
