package crawl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/docingest"
	"github.com/fwojciec/docingest/crawl"
	"github.com/fwojciec/docingest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticIngester(name string, docs ...*docingest.Document) *mock.Ingester {
	return &mock.Ingester{
		NameFn: func() string { return name },
		IngestFn: func(_ context.Context) (*docingest.Result, error) {
			return &docingest.Result{Name: name, Documents: docs}, nil
		},
	}
}

func doc(url string) *docingest.Document {
	return &docingest.Document{Source: docingest.SourceWebsite, URL: url}
}

func TestPipeline_Execute(t *testing.T) {
	t.Parallel()

	t.Run("concatenates documents in ingester order", func(t *testing.T) {
		t.Parallel()

		var saved []*docingest.Document
		p := &crawl.Pipeline{
			Ingesters: []docingest.Ingester{
				staticIngester("one", doc("https://a/1"), doc("https://a/2")),
				staticIngester("two", doc("https://b/1")),
			},
			Store: &mock.DocumentStore{
				SaveDocumentsFn: func(_ context.Context, docs []*docingest.Document) error {
					saved = docs
					return nil
				},
			},
		}

		summary, err := p.Execute(context.Background())

		require.NoError(t, err)
		require.Len(t, saved, 3)
		assert.Equal(t, "https://a/1", saved[0].URL)
		assert.Equal(t, "https://a/2", saved[1].URL)
		assert.Equal(t, "https://b/1", saved[2].URL)
		require.Len(t, summary.Runs, 2)
		assert.Equal(t, "one", summary.Runs[0].Name)
		assert.Zero(t, summary.Failed())
	})

	t.Run("continues after an ingester error", func(t *testing.T) {
		t.Parallel()

		bad := &mock.Ingester{
			NameFn: func() string { return "bad" },
			IngestFn: func(_ context.Context) (*docingest.Result, error) {
				return nil, docingest.Errorf(docingest.EINVALID, "invalid seed URL")
			},
		}
		var saved []*docingest.Document
		var events []crawl.ProgressEvent
		p := &crawl.Pipeline{
			Ingesters: []docingest.Ingester{bad, staticIngester("good", doc("https://g/1"))},
			Store: &mock.DocumentStore{
				SaveDocumentsFn: func(_ context.Context, docs []*docingest.Document) error {
					saved = docs
					return nil
				},
			},
			Progress: func(e crawl.ProgressEvent) { events = append(events, e) },
		}

		summary, err := p.Execute(context.Background())

		require.NoError(t, err)
		assert.Len(t, saved, 1)
		assert.Equal(t, 1, summary.Failed())
		assert.Equal(t, docingest.EINVALID, docingest.ErrorCode(summary.Runs[0].Err))

		require.Len(t, events, 3)
		assert.Equal(t, crawl.ProgressStarted, events[0].Type)
		assert.Equal(t, crawl.ProgressFailed, events[1].Type)
		assert.Equal(t, "bad", events[1].Name)
		assert.Equal(t, crawl.ProgressStarted, events[2].Type)
	})

	t.Run("saves an empty collection", func(t *testing.T) {
		t.Parallel()

		var called bool
		var saved []*docingest.Document
		p := &crawl.Pipeline{
			Store: &mock.DocumentStore{
				SaveDocumentsFn: func(_ context.Context, docs []*docingest.Document) error {
					called = true
					saved = docs
					return nil
				},
			},
		}

		_, err := p.Execute(context.Background())

		require.NoError(t, err)
		assert.True(t, called)
		assert.NotNil(t, saved)
		assert.Empty(t, saved)
	})

	t.Run("returns save failure", func(t *testing.T) {
		t.Parallel()

		p := &crawl.Pipeline{
			Ingesters: []docingest.Ingester{staticIngester("one", doc("https://a/1"))},
			Store: &mock.DocumentStore{
				SaveDocumentsFn: func(_ context.Context, _ []*docingest.Document) error {
					return errors.New("disk full")
				},
			},
		}

		summary, err := p.Execute(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		require.NotNil(t, summary)
		assert.Len(t, summary.Documents, 1)
	})

	t.Run("requires a store", func(t *testing.T) {
		t.Parallel()

		_, err := (&crawl.Pipeline{}).Execute(context.Background())

		require.Error(t, err)
		assert.Equal(t, docingest.EINVALID, docingest.ErrorCode(err))
	})
}
