package crawl

import (
	"context"
	"fmt"

	"github.com/fwojciec/docingest"
)

// Pipeline runs ingesters one after another and persists everything they
// produced as a single collection.
type Pipeline struct {
	Ingesters []docingest.Ingester
	Store     docingest.DocumentStore
	Progress  ProgressFunc
}

// Run reports one ingester of a pipeline run.
type Run struct {
	Name   string
	Result *docingest.Result
	Err    error
}

// Summary is the outcome of a pipeline run.
type Summary struct {
	Runs      []Run
	Documents []*docingest.Document
}

// Failed returns the number of ingesters that could not run at all.
func (s *Summary) Failed() int {
	var n int
	for _, r := range s.Runs {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Execute runs every ingester in order and saves the concatenated documents.
// An ingester error is recorded in the summary and the next ingester still
// runs. The collection is saved even when it is empty; only a save failure
// is returned as an error.
func (p *Pipeline) Execute(ctx context.Context) (*Summary, error) {
	if p.Store == nil {
		return nil, docingest.Errorf(docingest.EINVALID, "pipeline has no document store")
	}

	summary := &Summary{Documents: []*docingest.Document{}}
	for _, ing := range p.Ingesters {
		name := ing.Name()
		p.emit(ProgressEvent{Type: ProgressStarted, Name: name})

		result, err := ing.Ingest(ctx)
		if err != nil {
			p.emit(ProgressEvent{Type: ProgressFailed, Name: name, Error: err})
			summary.Runs = append(summary.Runs, Run{Name: name, Err: err})
			continue
		}

		summary.Runs = append(summary.Runs, Run{Name: name, Result: result})
		summary.Documents = append(summary.Documents, result.Documents...)
	}

	if err := p.Store.SaveDocuments(ctx, summary.Documents); err != nil {
		return summary, fmt.Errorf("save documents: %w", err)
	}
	return summary, nil
}

func (p *Pipeline) emit(event ProgressEvent) {
	if p.Progress != nil {
		p.Progress(event)
	}
}
