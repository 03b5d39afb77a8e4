package docingest

import "context"

// OutcomeKind classifies what happened to a single unit of work
// (a URL, a directory listing, a file) during ingestion.
type OutcomeKind int

// Outcome kinds.
const (
	OutcomeDocument OutcomeKind = iota
	OutcomeSkipped
	OutcomeFailed
)

// String returns a short label for the kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeDocument:
		return "document"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Outcome records the result of one unit of work.
// Err carries the skip reason or failure cause and is nil for documents.
type Outcome struct {
	Kind OutcomeKind
	URL  string
	Err  error
}

// Result is everything one ingester produced in a run.
type Result struct {
	Source    Source
	Name      string
	Documents []*Document
	Outcomes  []Outcome
}

// Count returns the number of outcomes of the given kind.
func (r *Result) Count(kind OutcomeKind) int {
	var n int
	for _, o := range r.Outcomes {
		if o.Kind == kind {
			n++
		}
	}
	return n
}

// Ingester produces documents from a single configured source.
type Ingester interface {
	// Name returns a human-readable label for the source.
	Name() string

	// Ingest collects documents. Per-page and per-file failures are
	// recorded as outcomes in the result; an error is returned only when
	// the ingester cannot start at all (e.g. an invalid seed URL).
	Ingest(ctx context.Context) (*Result, error)
}
