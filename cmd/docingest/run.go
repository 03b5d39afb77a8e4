package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/docingest"
	"github.com/fwojciec/docingest/crawl"
)

// previewLen is the number of content bytes shown for the sample document.
const previewLen = 200

// Run executes the run command. Per-source failures are reported but
// only a persistence failure is returned.
func (c *RunCmd) Run(deps *Dependencies) error {
	store, closeStore, err := openStore(deps.Config.Output, deps.Logger)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer closeStore()

	progress := newProgressPrinter(deps.Stdout, deps.Stderr)
	pipeline := &crawl.Pipeline{
		Ingesters: buildIngesters(deps, progress),
		Store:     store,
		Progress:  progress,
	}

	fmt.Fprintln(deps.Stdout, "Multi-source documentation ingestion")

	summary, err := pipeline.Execute(deps.Ctx)
	if summary != nil {
		printSummary(deps.Stdout, summary)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d documents to %s\n", len(summary.Documents), deps.Config.Output)
	if len(summary.Documents) > 0 {
		printSample(deps.Stdout, summary.Documents[0])
	}
	return nil
}

func newProgressPrinter(stdout, stderr io.Writer) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(stdout, "==> %s\n", event.Name)
		case crawl.ProgressCompleted:
			if event.Total > 0 {
				fmt.Fprintf(stdout, "  [%d/%d] %s\n", event.Completed, event.Total, crawl.TruncateURL(event.URL, 60))
			} else {
				fmt.Fprintf(stdout, "  [%d] %s\n", event.Completed, crawl.TruncateURL(event.URL, 60))
			}
		case crawl.ProgressFailed:
			if event.URL == "" {
				fmt.Fprintf(stderr, "  %s failed: %s\n", event.Name, errorText(event.Error))
				return
			}
			fmt.Fprintf(stderr, "  skip %s: %s\n", event.URL, errorText(event.Error))
		case crawl.ProgressFinished:
			fmt.Fprintf(stdout, "  %d documents from %s\n", event.Completed, event.Name)
		}
	}
}

func printSummary(w io.Writer, summary *crawl.Summary) {
	fmt.Fprintf(w, "\nTotal documents collected: %d (%s)\n",
		len(summary.Documents), crawl.FormatBytes(crawl.ContentBytes(summary.Documents)))
	for _, run := range summary.Runs {
		if run.Err != nil {
			fmt.Fprintf(w, "  - %s: not run (%s)\n", run.Name, errorText(run.Err))
			continue
		}
		r := run.Result
		fmt.Fprintf(w, "  - %s (%s): %d documents, %d skipped, %d failed\n",
			run.Name, r.Source, len(r.Documents), r.Count(docingest.OutcomeSkipped), r.Count(docingest.OutcomeFailed))
	}
}

func printSample(w io.Writer, doc *docingest.Document) {
	preview := doc.Content
	if len(preview) > previewLen {
		preview = strings.ToValidUTF8(preview[:previewLen], "") + "..."
	}
	fmt.Fprintln(w, "\nSample document:")
	fmt.Fprintf(w, "  Title:  %s\n", doc.Title)
	fmt.Fprintf(w, "  Source: %s\n", doc.Source)
	fmt.Fprintf(w, "  URL:    %s\n", doc.URL)
	fmt.Fprintf(w, "  Content preview: %s\n", preview)
}

// errorText prefers the message of an application error.
func errorText(err error) string {
	if docingest.ErrorCode(err) == docingest.EINTERNAL {
		return err.Error()
	}
	return docingest.ErrorMessage(err)
}
